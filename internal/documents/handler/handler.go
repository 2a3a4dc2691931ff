package handler

import (
	"errors"
	"net/http"

	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/documents/service"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest = "invalid request"
	msgInvalidID      = "invalid id"
	msgMissingFile    = "missing file"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/dealerships/:id/documents", h.Upload)
	rg.GET("/dealerships/:id/documents", h.ListByDealership)
	rg.GET("/documents/:id/download", h.DownloadLink)
	rg.DELETE("/documents/:id", h.Delete)
}

// Upload accepts a multipart upload under the "file" field.
func (h *Handler) Upload(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}
	dealershipID, ok := pathID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgMissingFile, nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	defer file.Close()

	document, err := h.svc.Upload(c.Request.Context(), caller, service.UploadParams{
		DealershipID: dealershipID,
		FileName:     fileHeader.Filename,
		ContentType:  fileHeader.Header.Get("Content-Type"),
		SizeBytes:    fileHeader.Size,
		Body:         file,
	})
	if h.handleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, document)
}

func (h *Handler) ListByDealership(c *gin.Context) {
	dealershipID, ok := pathID(c)
	if !ok {
		return
	}

	documents, err := h.svc.ListByDealership(c.Request.Context(), dealershipID)
	if h.handleError(c, err) {
		return
	}

	httpkit.OK(c, documents)
}

func (h *Handler) DownloadLink(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	link, err := h.svc.DownloadLink(c.Request.Context(), id)
	if h.handleError(c, err) {
		return
	}

	httpkit.OK(c, link)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); h.handleError(c, err) {
		return
	}

	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
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
	case errors.Is(err, service.ErrDocumentNotFound):
		httpkit.Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrStorageDisabled):
		httpkit.Error(c, http.StatusServiceUnavailable, err.Error(), nil)
	default:
		httpkit.HandleError(c, err)
	}
	return true
}
