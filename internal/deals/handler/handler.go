package handler

import (
	"errors"
	"net/http"

	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/deals/service"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/deals/transport"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/httpkit"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/logger"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid deal id"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
	log *logger.Logger
}

func New(svc *service.Service, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{svc: svc, val: val, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/pipeline", h.Pipeline)
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id", h.Update)
	rg.PATCH("/:id/stage", h.UpdateStage)
	rg.DELETE("/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}

	var req transport.CreateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	deal, err := h.svc.Create(c.Request.Context(), caller, req)
	if h.handleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, deal)
}

func (h *Handler) List(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}

	var req transport.ListDealsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	deals, err := h.svc.List(c.Request.Context(), caller, req)
	if h.handleError(c, err) {
		return
	}

	httpkit.OK(c, deals)
}

func (h *Handler) Pipeline(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}

	var req transport.PipelineRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	summary, err := h.svc.Pipeline(c.Request.Context(), caller, req)
	if h.handleError(c, err) {
		return
	}

	httpkit.OK(c, summary)
}

func (h *Handler) GetByID(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}
	id, ok := h.dealID(c)
	if !ok {
		return
	}

	deal, err := h.svc.GetByID(c.Request.Context(), caller, id)
	if h.handleError(c, err) {
		return
	}

	httpkit.OK(c, deal)
}

func (h *Handler) Update(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}
	id, ok := h.dealID(c)
	if !ok {
		return
	}

	var req transport.UpdateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	deal, err := h.svc.Update(c.Request.Context(), caller, id, req)
	if h.handleError(c, err) {
		return
	}

	httpkit.OK(c, deal)
}

func (h *Handler) UpdateStage(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}
	id, ok := h.dealID(c)
	if !ok {
		return
	}

	var req transport.UpdateDealStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	deal, err := h.svc.UpdateStage(c.Request.Context(), caller, id, req)
	if h.handleError(c, err) {
		return
	}

	httpkit.OK(c, deal)
}

func (h *Handler) Delete(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}
	id, ok := h.dealID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), caller, id); h.handleError(c, err) {
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) dealID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) handleError(c *gin.Context, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, service.ErrDealNotFound):
		httpkit.Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrForbidden):
		httpkit.Error(c, http.StatusForbidden, err.Error(), nil)
	default:
		httpkit.HandleError(c, err)
	}
	return true
}
