package handler

import (
	"errors"
	"net/http"

	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/prospects/service"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/prospects/transport"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/httpkit"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/logger"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid prospect id"
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
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id", h.Update)
	rg.PATCH("/:id/status", h.UpdateStatus)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/score", h.Rescore)
	rg.POST("/:id/enrich", h.Enrich)
	rg.POST("/:id/interactions", h.AddInteraction)
	rg.GET("/:id/interactions", h.ListInteractions)
	rg.POST("/:id/appointments", h.ScheduleAppointment)
	rg.GET("/:id/appointments", h.ListAppointments)
}

func (h *Handler) Create(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}

	var req transport.CreateProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	prospect, err := h.svc.Create(c.Request.Context(), caller, req)
	if h.handleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, prospect)
}

func (h *Handler) List(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}

	var req transport.ListProspectsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	prospects, err := h.svc.List(c.Request.Context(), caller, req)
	if h.handleError(c, err) {
		return
	}

	httpkit.OK(c, prospects)
}

func (h *Handler) GetByID(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}
	id, ok := h.prospectID(c)
	if !ok {
		return
	}

	prospect, err := h.svc.GetByID(c.Request.Context(), caller, id)
	if h.handleError(c, err) {
		return
	}

	httpkit.OK(c, prospect)
}

func (h *Handler) Update(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}
	id, ok := h.prospectID(c)
	if !ok {
		return
	}

	var req transport.UpdateProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	prospect, err := h.svc.Update(c.Request.Context(), caller, id, req)
	if h.handleError(c, err) {
		return
	}

	httpkit.OK(c, prospect)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}
	id, ok := h.prospectID(c)
	if !ok {
		return
	}

	var req transport.UpdateProspectStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	prospect, err := h.svc.UpdateStatus(c.Request.Context(), caller, id, req)
	if h.handleError(c, err) {
		return
	}

	httpkit.OK(c, prospect)
}

func (h *Handler) Delete(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}
	id, ok := h.prospectID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), caller, id); h.handleError(c, err) {
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) Rescore(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}
	id, ok := h.prospectID(c)
	if !ok {
		return
	}

	score, err := h.svc.Rescore(c.Request.Context(), caller, id)
	if h.handleError(c, err) {
		return
	}

	h.log.Info("prospect rescored",
		"prospect_id", id,
		"previous_score", score.PreviousScore,
		"new_score", score.NewScore,
	)
	httpkit.OK(c, score)
}

func (h *Handler) Enrich(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}
	id, ok := h.prospectID(c)
	if !ok {
		return
	}

	resp, err := h.svc.Enrich(c.Request.Context(), caller, id)
	if h.handleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

func (h *Handler) AddInteraction(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}
	id, ok := h.prospectID(c)
	if !ok {
		return
	}

	var req transport.AddInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	interaction, err := h.svc.AddInteraction(c.Request.Context(), caller, id, req)
	if h.handleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, interaction)
}

func (h *Handler) ListInteractions(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}
	id, ok := h.prospectID(c)
	if !ok {
		return
	}

	interactions, err := h.svc.ListInteractions(c.Request.Context(), caller, id)
	if h.handleError(c, err) {
		return
	}

	httpkit.OK(c, interactions)
}

func (h *Handler) ScheduleAppointment(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}
	id, ok := h.prospectID(c)
	if !ok {
		return
	}

	var req transport.ScheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	appointment, err := h.svc.ScheduleAppointment(c.Request.Context(), caller, id, req)
	if h.handleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, appointment)
}

func (h *Handler) ListAppointments(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}
	id, ok := h.prospectID(c)
	if !ok {
		return
	}

	appointments, err := h.svc.ListAppointments(c.Request.Context(), caller, id)
	if h.handleError(c, err) {
		return
	}

	httpkit.OK(c, appointments)
}

func (h *Handler) prospectID(c *gin.Context) (uuid.UUID, bool) {
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
	case errors.Is(err, service.ErrProspectNotFound):
		httpkit.Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrForbidden):
		httpkit.Error(c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, service.ErrEnrichmentDisabled):
		httpkit.Error(c, http.StatusServiceUnavailable, err.Error(), nil)
	default:
		httpkit.HandleError(c, err)
	}
	return true
}
