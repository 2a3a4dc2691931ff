// Package prospects provides the individual-lead domain module: CRUD,
// interaction logging, appointments, lead scoring and AI enrichment.
package prospects

import (
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/http"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/prospects/enrichment"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/prospects/handler"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/prospects/repository"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/prospects/service"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/ai/gemini"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/logger"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the prospects domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new prospects module with all dependencies wired.
// The Gemini client is optional; without it the enrich endpoint reports
// enrichment as unavailable.
func NewModule(pool *pgxpool.Pool, ai *gemini.Client, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	if ai != nil {
		svc.SetEnricher(enrichment.New(ai, log))
	}
	h := handler.New(svc, val, log)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "prospects"
}

// RegisterRoutes registers the module's routes under /api/v1/prospects
func (m *Module) RegisterRoutes(ctx *http.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/prospects"))
}

var _ http.Module = (*Module)(nil)
