package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	authrepo "github.com/seanmc2314/sarah-ai-sales-sub001/internal/auth/repository"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/email"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/events"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/notification"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/scheduler"
	tasksrepo "github.com/seanmc2314/sarah-ai-sales-sub001/internal/tasks/repository"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/config"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/db"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	eventBus := events.NewInMemoryBus(log)

	// Reminder emails fire from this process, so the notifier subscribes here
	// just as it does in the API binary.
	var sender email.Sender = email.NoopSender{}
	if cfg.GetEmailEnabled() {
		sender = email.NewSMTPSender(cfg)
	} else {
		log.Warn("email sending disabled; reminder notifications will be logged only")
	}
	notifier := notification.New(sender, authrepo.New(pool), tasksrepo.New(pool), log)
	notifier.Subscribe(eventBus)

	worker, err := scheduler.NewWorker(cfg, tasksrepo.New(pool), eventBus, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	go func() {
		<-ctx.Done()
		log.Info("shutdown signal received, stopping worker")
		worker.Shutdown()
	}()

	if err := worker.Run(); err != nil {
		log.Error("scheduler worker stopped", "error", err)
		panic("scheduler worker stopped: " + err.Error())
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
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
