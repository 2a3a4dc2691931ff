package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/events"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/tasks/repository"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/config"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/logger"

	"github.com/hibiken/asynq"
)

// Worker consumes scheduled jobs. Reminder handling is idempotent: the
// reminder_sent flag is flipped with a conditional update, so redelivered or
// stale jobs fall through without a second notification.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	tasks  *repository.Repository
	bus    events.Bus
	log    *logger.Logger
}

// NewWorker creates the asynq consumer from config.
func NewWorker(cfg config.SchedulerConfig, tasks *repository.Repository, bus events.Bus, log *logger.Logger) (*Worker, error) {
	opt, err := RedisOpt(cfg)
	if err != nil {
		return nil, err
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: cfg.GetAsynqConcurrency(),
		Queues:      map[string]int{cfg.GetAsynqQueueName(): 1},
		Logger:      asynqLogger{log},
	})

	w := &Worker{
		server: server,
		mux:    asynq.NewServeMux(),
		tasks:  tasks,
		bus:    bus,
		log:    log,
	}
	w.mux.HandleFunc(TypeFollowUpReminder, w.handleFollowUpReminder)
	return w, nil
}

// Run blocks processing jobs until Shutdown is called.
func (w *Worker) Run() error {
	return w.server.Run(w.mux)
}

// Shutdown stops the worker, waiting for in-flight jobs.
func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

func (w *Worker) handleFollowUpReminder(ctx context.Context, t *asynq.Task) error {
	var payload FollowUpReminderPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		// Malformed payloads never become processable; drop them.
		return fmt.Errorf("unmarshal follow-up payload: %v: %w", err, asynq.SkipRetry)
	}

	task, err := w.tasks.GetByID(ctx, payload.TaskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Task deleted after scheduling; nothing to remind about.
			return nil
		}
		return fmt.Errorf("load task %s: %w", payload.TaskID, err)
	}

	marked, err := w.tasks.MarkReminderSent(ctx, task.ID)
	if err != nil {
		return fmt.Errorf("mark reminder sent: %w", err)
	}
	if !marked {
		return nil
	}

	w.bus.Publish(ctx, events.TaskReminderDue{
		BaseEvent: events.NewBaseEvent(),
		TaskID:    task.ID,
		OwnerID:   task.OwnerID,
		Title:     task.Title,
	})
	w.log.Info("follow-up reminder fired", "task_id", task.ID, "title", task.Title)
	return nil
}

// asynqLogger adapts our logger to asynq's interface.
type asynqLogger struct {
	log *logger.Logger
}

func (l asynqLogger) Debug(args ...interface{}) { l.log.Debug(fmt.Sprint(args...)) }
func (l asynqLogger) Info(args ...interface{})  { l.log.Info(fmt.Sprint(args...)) }
func (l asynqLogger) Warn(args ...interface{})  { l.log.Warn(fmt.Sprint(args...)) }
func (l asynqLogger) Error(args ...interface{}) { l.log.Error(fmt.Sprint(args...)) }
func (l asynqLogger) Fatal(args ...interface{}) { l.log.Error(fmt.Sprint(args...)) }
