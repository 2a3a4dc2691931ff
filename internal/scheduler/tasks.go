// Package scheduler provides background job scheduling on asynq/redis:
// follow-up reminders for tasks with due dates.
package scheduler

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task type names routed through asynq.
const (
	TypeFollowUpReminder = "tasks:follow_up_reminder"
)

// FollowUpReminderPayload identifies the CRM task a reminder fires for.
type FollowUpReminderPayload struct {
	TaskID uuid.UUID `json:"taskId"`
}

// NewFollowUpReminderTask builds the asynq task for a follow-up reminder.
func NewFollowUpReminderTask(taskID uuid.UUID) (*asynq.Task, error) {
	payload, err := json.Marshal(FollowUpReminderPayload{TaskID: taskID})
	if err != nil {
		return nil, fmt.Errorf("marshal follow-up payload: %w", err)
	}
	return asynq.NewTask(TypeFollowUpReminder, payload, asynq.MaxRetry(3), asynq.Timeout(30*time.Second)), nil
}
