// Package dealerships provides the account domain module: dealership CRUD,
// status lifecycle, contacts, the activity log and the CSV lead importer.
package dealerships

import (
	"context"

	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/dealerships/handler"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/dealerships/repository"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/dealerships/service"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/events"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/http"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/logger"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the dealerships domain module
type Module struct {
	handler    *handler.Handler
	service    *service.Service
	repository *repository.Repository
}

// NewModule creates a new dealerships module with all dependencies wired.
// It subscribes to deal stage changes so they land in the account activity
// log.
func NewModule(pool *pgxpool.Pool, openDeals service.OpenDealCounter, bus events.Bus, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, openDeals, bus, log)
	h := handler.New(svc, val, log)

	bus.Subscribe("deals.stage_changed", events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		stageChanged, ok := event.(events.DealStageChanged)
		if !ok {
			return nil
		}
		return svc.RecordDealStageChange(ctx, stageChanged)
	}))

	return &Module{
		handler:    h,
		service:    svc,
		repository: repo,
	}
}

// Repository exposes dealership queries other modules need (dashboard).
func (m *Module) Repository() *repository.Repository {
	return m.repository
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "dealerships"
}

// RegisterRoutes registers the module's routes under /api/v1/dealerships
func (m *Module) RegisterRoutes(ctx *http.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/dealerships"))
}

var _ http.Module = (*Module)(nil)
