package handler

import (
	"errors"
	"net/http"

	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/dealerships/importer"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/dealerships/service"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/dealerships/transport"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/httpkit"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/logger"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid dealership id"
	msgMissingFile      = "missing csv file"
)

// maxImportSize bounds uploaded CSV files to 10 MB.
const maxImportSize = 10 << 20

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
	rg.POST("/import", h.Import)
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id", h.Update)
	rg.PATCH("/:id/status", h.UpdateStatus)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/contacts", h.AddContact)
	rg.GET("/:id/contacts", h.ListContacts)
	rg.GET("/:id/activities", h.ListActivities)
}

func (h *Handler) Create(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}

	var req transport.CreateDealershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	dealership, err := h.svc.Create(c.Request.Context(), caller, req)
	if h.handleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, dealership)
}

func (h *Handler) List(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}

	var req transport.ListDealershipsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	dealerships, err := h.svc.List(c.Request.Context(), caller, req)
	if h.handleError(c, err) {
		return
	}

	httpkit.OK(c, dealerships)
}

// Import accepts a multipart upload under the "file" field and processes it
// as a CSV of leads. Partial success is a 200 with per-row counts.
func (h *Handler) Import(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgMissingFile, nil)
		return
	}
	if fileHeader.Size > maxImportSize {
		httpkit.Error(c, http.StatusRequestEntityTooLarge, "file too large", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	defer file.Close()

	summary, err := h.svc.Import(c.Request.Context(), caller, file)
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
	id, ok := h.dealershipID(c)
	if !ok {
		return
	}

	dealership, err := h.svc.GetByID(c.Request.Context(), caller, id)
	if h.handleError(c, err) {
		return
	}

	httpkit.OK(c, dealership)
}

func (h *Handler) Update(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}
	id, ok := h.dealershipID(c)
	if !ok {
		return
	}

	var req transport.UpdateDealershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	dealership, err := h.svc.Update(c.Request.Context(), caller, id, req)
	if h.handleError(c, err) {
		return
	}

	httpkit.OK(c, dealership)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}
	id, ok := h.dealershipID(c)
	if !ok {
		return
	}

	var req transport.UpdateDealershipStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	dealership, err := h.svc.UpdateStatus(c.Request.Context(), caller, id, req)
	if h.handleError(c, err) {
		return
	}

	httpkit.OK(c, dealership)
}

func (h *Handler) Delete(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}
	id, ok := h.dealershipID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), caller, id); h.handleError(c, err) {
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) AddContact(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}
	id, ok := h.dealershipID(c)
	if !ok {
		return
	}

	var req transport.AddContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	contact, err := h.svc.AddContact(c.Request.Context(), caller, id, req)
	if h.handleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, contact)
}

func (h *Handler) ListContacts(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}
	id, ok := h.dealershipID(c)
	if !ok {
		return
	}

	contacts, err := h.svc.ListContacts(c.Request.Context(), caller, id)
	if h.handleError(c, err) {
		return
	}

	httpkit.OK(c, contacts)
}

func (h *Handler) ListActivities(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}
	id, ok := h.dealershipID(c)
	if !ok {
		return
	}

	activities, err := h.svc.ListActivities(c.Request.Context(), caller, id)
	if h.handleError(c, err) {
		return
	}

	httpkit.OK(c, activities)
}

func (h *Handler) dealershipID(c *gin.Context) (uuid.UUID, bool) {
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
	case errors.Is(err, service.ErrDealershipNotFound):
		httpkit.Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrForbidden):
		httpkit.Error(c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, service.ErrNameTaken):
		httpkit.Error(c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, service.ErrHasOpenDeals):
		httpkit.Error(c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, importer.ErrMissingHeader):
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
	default:
		httpkit.HandleError(c, err)
	}
	return true
}
