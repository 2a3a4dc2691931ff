// Package auth provides the authentication domain module.
package auth

import (
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/auth/handler"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/auth/repository"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/auth/service"
	apphttp "github.com/seanmc2314/sarah-ai-sales-sub001/internal/http"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/config"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/logger"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the auth domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new auth module with all dependencies wired
func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg)
	h := handler.New(svc, val, log)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Service exposes the auth service for cross-module wiring.
func (m *Module) Service() *service.Service {
	return m.service
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "auth"
}

// RegisterRoutes registers the module's routes under /api/v1/auth
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterPublicRoutes(ctx.V1.Group("/auth"))
	m.handler.RegisterProtectedRoutes(ctx.Protected.Group("/auth"))
	m.handler.RegisterAdminRoutes(ctx.Admin)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
