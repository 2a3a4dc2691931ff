package handler

import (
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/dashboard/service"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/httpkit"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Overview)
}

func (h *Handler) Overview(c *gin.Context) {
	caller := httpkit.MustGetIdentity(c)
	if caller == nil {
		return
	}

	overview, err := h.svc.Overview(c.Request.Context(), caller)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, overview)
}
