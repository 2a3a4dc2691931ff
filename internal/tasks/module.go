// Package tasks provides the follow-up task domain module: task CRUD and
// due-date reminder scheduling.
package tasks

import (
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/http"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/scheduler"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/tasks/handler"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/tasks/repository"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/tasks/service"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/logger"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the tasks domain module
type Module struct {
	handler *handler.Handler
}

// NewModule creates a new tasks module with all dependencies wired. The
// scheduler client may be nil; reminders are then skipped.
func NewModule(pool *pgxpool.Pool, sched *scheduler.Client, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, sched, log)
	h := handler.New(svc, val)

	return &Module{handler: h}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "tasks"
}

// RegisterRoutes registers the module's routes under /api/v1/tasks
func (m *Module) RegisterRoutes(ctx *http.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/tasks"))
}

var _ http.Module = (*Module)(nil)
