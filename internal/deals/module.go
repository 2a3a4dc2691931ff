// Package deals provides the deal pipeline domain module: deal CRUD, stage
// transitions and the role-scoped pipeline summary.
package deals

import (
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/deals/handler"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/deals/repository"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/deals/service"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/events"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/http"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/logger"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the deals domain module
type Module struct {
	handler    *handler.Handler
	service    *service.Service
	repository *repository.Repository
}

// NewModule creates a new deals module with all dependencies wired
func NewModule(pool *pgxpool.Pool, bus events.Bus, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)
	h := handler.New(svc, val, log)

	return &Module{
		handler:    h,
		service:    svc,
		repository: repo,
	}
}

// Service exposes the deals service for cross-module wiring (dashboard).
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository exposes deal queries other modules need (dealership deletion
// guard).
func (m *Module) Repository() *repository.Repository {
	return m.repository
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "deals"
}

// RegisterRoutes registers the module's routes under /api/v1/deals
func (m *Module) RegisterRoutes(ctx *http.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/deals"))
}

var _ http.Module = (*Module)(nil)
