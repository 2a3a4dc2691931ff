package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/auth"
	authrepo "github.com/seanmc2314/sarah-ai-sales-sub001/internal/auth/repository"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/dashboard"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/dealerships"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/deals"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/documents"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/documents/storage"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/email"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/events"
	apphttp "github.com/seanmc2314/sarah-ai-sales-sub001/internal/http"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/http/router"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/notification"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/prospects"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/scheduler"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/social"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/tasks"
	tasksrepo "github.com/seanmc2314/sarah-ai-sales-sub001/internal/tasks/repository"
	"github.com/seanmc2314/sarah-ai-sales-sub001/migrations"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/ai/gemini"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/config"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/db"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/logger"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS, migrations.Dir)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	reminderClient, closeScheduler := initReminderScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	// Email sender for domain notifications; a no-op sender keeps the
	// notification wiring intact when SMTP is not configured.
	var sender email.Sender = email.NoopSender{}
	if cfg.GetEmailEnabled() {
		sender = email.NewSMTPSender(cfg)
		log.Info("smtp email sender initialized", "host", cfg.GetSMTPHost())
	} else {
		log.Warn("email sending disabled; notifications will be logged only")
	}

	// Gemini client for prospect enrichment and social post drafting
	var aiClient *gemini.Client
	if cfg.IsAIEnabled() {
		aiClient, err = gemini.New(ctx, cfg.GetGeminiAPIKey(), cfg.GetGeminiModel())
		if err != nil {
			log.Error("failed to initialize gemini client; AI features disabled", "error", err)
			aiClient = nil
		} else {
			log.Info("gemini client initialized", "model", cfg.GetGeminiModel())
		}
	}

	// MinIO-backed document storage
	var store *storage.Service
	if cfg.IsMinIOEnabled() {
		store, err = storage.New(ctx, cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		log.Info("storage service initialized", "bucket", cfg.GetMinioBucketDocuments())
	} else {
		log.Warn("minio not configured; document uploads disabled")
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notifier subscribes to domain events (not HTTP-facing)
	notifier := notification.New(sender, authrepo.New(pool), tasksrepo.New(pool), log)
	notifier.Subscribe(eventBus)

	authModule := auth.NewModule(pool, cfg, log, val)
	prospectsModule := prospects.NewModule(pool, aiClient, log, val)
	dealsModule := deals.NewModule(pool, eventBus, log, val)
	dealershipsModule := dealerships.NewModule(pool, dealsModule.Repository(), eventBus, log, val)
	dashboardModule := dashboard.NewModule(dealsModule.Service(), dealershipsModule.Repository())
	tasksModule := tasks.NewModule(pool, reminderClient, log, val)
	documentsModule := documents.NewModule(pool, store, log)
	socialModule := social.NewModule(pool, aiClient, log, val)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			prospectsModule,
			dealershipsModule,
			dealsModule,
			dashboardModule,
			tasksModule,
			documentsModule,
			socialModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initReminderScheduler(cfg config.SchedulerConfig, log *logger.Logger) (*scheduler.Client, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; follow-up reminders disabled")
		return nil, nil
	}

	reminderClient, err := scheduler.NewClient(cfg, log)
	if err != nil {
		log.Error("failed to initialize reminder scheduler client", "error", err)
		return nil, nil
	}

	return reminderClient, func() {
		_ = reminderClient.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
