// Package social provides the social media domain module: post CRUD,
// scheduling metadata, and AI-assisted drafting.
package social

import (
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/http"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/social/handler"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/social/repository"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/social/service"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/ai/gemini"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/logger"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the social domain module
type Module struct {
	handler *handler.Handler
}

// NewModule creates a new social module with all dependencies wired. The
// gemini client may be nil; the draft endpoint then returns 503.
func NewModule(pool *pgxpool.Pool, ai *gemini.Client, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)

	var drafter service.Drafter
	if ai != nil {
		drafter = ai
	}
	svc := service.New(repo, drafter, log)
	h := handler.New(svc, val)

	return &Module{handler: h}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "social"
}

// RegisterRoutes registers the module's routes under /api/v1/social/posts
func (m *Module) RegisterRoutes(ctx *http.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/social/posts"))
}

var _ http.Module = (*Module)(nil)
