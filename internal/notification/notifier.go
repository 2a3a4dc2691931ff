// Package notification turns domain events into email notifications. It has
// no HTTP surface; it only subscribes to the event bus.
package notification

import (
	"context"
	"fmt"
	"time"

	authrepo "github.com/seanmc2314/sarah-ai-sales-sub001/internal/auth/repository"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/email"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/events"
	tasksrepo "github.com/seanmc2314/sarah-ai-sales-sub001/internal/tasks/repository"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/logger"

	"github.com/google/uuid"
)

// UserDirectory resolves notification recipients. Implemented by the auth
// repository.
type UserDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (authrepo.User, error)
}

// TaskReader loads task details for reminder emails. Implemented by the
// tasks repository.
type TaskReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (tasksrepo.Task, error)
}

// Notifier wires domain events to the email sender.
type Notifier struct {
	sender email.Sender
	users  UserDirectory
	tasks  TaskReader
	log    *logger.Logger
}

func New(sender email.Sender, users UserDirectory, tasks TaskReader, log *logger.Logger) *Notifier {
	return &Notifier{sender: sender, users: users, tasks: tasks, log: log}
}

// Subscribe registers all event handlers on the bus.
func (n *Notifier) Subscribe(bus events.Bus) {
	bus.Subscribe("dealerships.went_live", events.HandlerFunc(n.onDealershipWentLive))
	bus.Subscribe("dealerships.import_completed", events.HandlerFunc(n.onImportCompleted))
	bus.Subscribe("tasks.reminder_due", events.HandlerFunc(n.onTaskReminderDue))
}

func (n *Notifier) onDealershipWentLive(ctx context.Context, event events.Event) error {
	wentLive, ok := event.(events.DealershipWentLive)
	if !ok {
		return nil
	}
	if wentLive.AssignedUserID == nil {
		return nil
	}

	user, err := n.users.GetByID(ctx, *wentLive.AssignedUserID)
	if err != nil {
		return fmt.Errorf("resolve went-live recipient: %w", err)
	}

	if err := n.sender.SendDealershipWentLiveEmail(ctx, user.Email, wentLive.DealershipName, wentLive.MonthlyValue); err != nil {
		return err
	}
	n.log.Info("went-live notification sent", "dealership_id", wentLive.DealershipID, "to", user.Email)
	return nil
}

func (n *Notifier) onImportCompleted(ctx context.Context, event events.Event) error {
	imported, ok := event.(events.LeadImportCompleted)
	if !ok {
		return nil
	}

	user, err := n.users.GetByID(ctx, imported.ImportedByID)
	if err != nil {
		return fmt.Errorf("resolve import recipient: %w", err)
	}

	if err := n.sender.SendImportCompletedEmail(ctx, user.Email, imported.Created, imported.Skipped, imported.Failed); err != nil {
		return err
	}
	n.log.Info("import notification sent", "to", user.Email, "created", imported.Created)
	return nil
}

func (n *Notifier) onTaskReminderDue(ctx context.Context, event events.Event) error {
	reminder, ok := event.(events.TaskReminderDue)
	if !ok {
		return nil
	}

	user, err := n.users.GetByID(ctx, reminder.OwnerID)
	if err != nil {
		return fmt.Errorf("resolve reminder recipient: %w", err)
	}

	task, err := n.tasks.GetByID(ctx, reminder.TaskID)
	if err != nil {
		return fmt.Errorf("load reminded task: %w", err)
	}

	dueDate := "soon"
	if task.DueDate != nil {
		dueDate = task.DueDate.Format(time.RFC1123)
	}

	if err := n.sender.SendTaskReminderEmail(ctx, user.Email, task.Title, dueDate); err != nil {
		return err
	}
	n.log.Info("task reminder sent", "task_id", task.ID, "to", user.Email)
	return nil
}
