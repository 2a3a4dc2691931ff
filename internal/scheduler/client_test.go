package scheduler

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type testSchedulerConfig struct {
	redisURL string
}

func (c testSchedulerConfig) GetRedisURL() string       { return c.redisURL }
func (c testSchedulerConfig) GetRedisTLSInsecure() bool { return false }
func (c testSchedulerConfig) GetAsynqQueueName() string { return "crm" }
func (c testSchedulerConfig) GetAsynqConcurrency() int  { return 1 }

func TestNewFollowUpReminderTaskPayload(t *testing.T) {
	taskID := uuid.New()
	task, err := NewFollowUpReminderTask(taskID)
	if err != nil {
		t.Fatalf("NewFollowUpReminderTask: %v", err)
	}

	if task.Type() != TypeFollowUpReminder {
		t.Errorf("type = %q, want %q", task.Type(), TypeFollowUpReminder)
	}

	var payload FollowUpReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.TaskID != taskID {
		t.Errorf("payload task id = %s, want %s", payload.TaskID, taskID)
	}
}

func TestScheduleFollowUpReminderEnqueues(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := NewClient(testSchedulerConfig{redisURL: "redis://" + srv.Addr()}, logger.New("development"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	taskID := uuid.New()
	if err := client.ScheduleFollowUpReminder(taskID, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("ScheduleFollowUpReminder: %v", err)
	}

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: srv.Addr()})
	defer inspector.Close()

	scheduled, err := inspector.ListScheduledTasks("crm")
	if err != nil {
		t.Fatalf("ListScheduledTasks: %v", err)
	}
	if len(scheduled) != 1 {
		t.Fatalf("got %d scheduled tasks, want 1", len(scheduled))
	}
	if scheduled[0].Type != TypeFollowUpReminder {
		t.Errorf("scheduled type = %q, want %q", scheduled[0].Type, TypeFollowUpReminder)
	}
}

func TestScheduleFollowUpReminderPastDueEnqueuesImmediately(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := NewClient(testSchedulerConfig{redisURL: "redis://" + srv.Addr()}, logger.New("development"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	if err := client.ScheduleFollowUpReminder(uuid.New(), time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("ScheduleFollowUpReminder: %v", err)
	}

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: srv.Addr()})
	defer inspector.Close()

	pending, err := inspector.ListPendingTasks("crm")
	if err != nil {
		t.Fatalf("ListPendingTasks: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("got %d pending tasks, want 1", len(pending))
	}
}

func TestNilClientDropsScheduling(t *testing.T) {
	var client *Client
	if err := client.ScheduleFollowUpReminder(uuid.New(), time.Now()); err != nil {
		t.Errorf("nil client should drop silently, got %v", err)
	}
}
