// Package documents provides dealership document storage: uploads into
// MinIO, metadata in Postgres, downloads via presigned URLs.
package documents

import (
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/documents/handler"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/documents/repository"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/documents/service"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/documents/storage"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/http"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the documents domain module
type Module struct {
	handler *handler.Handler
}

// NewModule creates a new documents module. The storage service may be nil
// when MinIO is not configured; uploads then report storage as unavailable.
func NewModule(pool *pgxpool.Pool, store *storage.Service, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, store, log)
	h := handler.New(svc)

	return &Module{handler: h}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "documents"
}

// RegisterRoutes registers the module's routes under /api/v1
func (m *Module) RegisterRoutes(ctx *http.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected)
}

var _ http.Module = (*Module)(nil)
