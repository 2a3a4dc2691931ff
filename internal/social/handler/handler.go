// Package handler exposes the social posts HTTP API.
package handler

import (
	"errors"
	"net/http"

	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/social/service"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/social/transport"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/httpkit"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest = "invalid request"
	msgInvalidPostID  = "invalid post id"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("", h.create)
	group.GET("", h.list)
	group.POST("/draft", h.draft)
	group.GET("/:id", h.get)
	group.PATCH("/:id", h.update)
	group.DELETE("/:id", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}

	var req transport.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	post, err := h.svc.Create(c.Request.Context(), caller, req)
	if handleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, post)
}

func (h *Handler) list(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}

	var req transport.ListPostsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	posts, err := h.svc.List(c.Request.Context(), caller, req)
	if handleError(c, err) {
		return
	}
	httpkit.OK(c, posts)
}

func (h *Handler) draft(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}

	var req transport.DraftPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	draft, err := h.svc.Draft(c.Request.Context(), req)
	if handleError(c, err) {
		return
	}
	httpkit.OK(c, draft)
}

func (h *Handler) get(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidPostID, nil)
		return
	}

	post, err := h.svc.Get(c.Request.Context(), caller, id)
	if handleError(c, err) {
		return
	}
	httpkit.OK(c, post)
}

func (h *Handler) update(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidPostID, nil)
		return
	}

	var req transport.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	post, err := h.svc.Update(c.Request.Context(), caller, id, req)
	if handleError(c, err) {
		return
	}
	httpkit.OK(c, post)
}

func (h *Handler) delete(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidPostID, nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), caller, id); handleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"deleted": true})
}

func handleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		httpkit.Error(c, http.StatusNotFound, "post not found", nil)
	case errors.Is(err, service.ErrForbidden):
		httpkit.Error(c, http.StatusForbidden, "access denied", nil)
	case errors.Is(err, service.ErrDraftingDisabled):
		httpkit.Error(c, http.StatusServiceUnavailable, "ai drafting is not available", nil)
	default:
		httpkit.HandleError(c, err)
	}
	return true
}
