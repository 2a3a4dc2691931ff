// Package dashboard combines the deal pipeline and dealership status
// summaries into a single caller-scoped overview endpoint.
package dashboard

import (
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/dashboard/handler"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/dashboard/service"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/http"
)

// Module represents the dashboard module
type Module struct {
	handler *handler.Handler
}

// NewModule creates a new dashboard module wired to the deals and
// dealerships modules.
func NewModule(deals service.PipelineProvider, dealerships service.DealershipSource) *Module {
	svc := service.New(deals, dealerships)
	return &Module{handler: handler.New(svc)}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "dashboard"
}

// RegisterRoutes registers the module's routes under /api/v1/dashboard
func (m *Module) RegisterRoutes(ctx *http.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/dashboard"))
}

var _ http.Module = (*Module)(nil)
