package notification

import (
	"context"
	"testing"
	"time"

	authrepo "github.com/seanmc2314/sarah-ai-sales-sub001/internal/auth/repository"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/events"
	tasksrepo "github.com/seanmc2314/sarah-ai-sales-sub001/internal/tasks/repository"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/logger"

	"github.com/google/uuid"
)

type fakeSender struct {
	wentLive  []string
	imports   []string
	reminders []string
}

func (s *fakeSender) SendDealershipWentLiveEmail(_ context.Context, toEmail, _ string, _ float64) error {
	s.wentLive = append(s.wentLive, toEmail)
	return nil
}

func (s *fakeSender) SendImportCompletedEmail(_ context.Context, toEmail string, _, _, _ int) error {
	s.imports = append(s.imports, toEmail)
	return nil
}

func (s *fakeSender) SendTaskReminderEmail(_ context.Context, toEmail, _, _ string) error {
	s.reminders = append(s.reminders, toEmail)
	return nil
}

type fakeUsers struct {
	users map[uuid.UUID]authrepo.User
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (authrepo.User, error) {
	user, ok := f.users[id]
	if !ok {
		return authrepo.User{}, authrepo.ErrNotFound
	}
	return user, nil
}

type fakeTasks struct {
	tasks map[uuid.UUID]tasksrepo.Task
}

func (f *fakeTasks) GetByID(_ context.Context, id uuid.UUID) (tasksrepo.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return tasksrepo.Task{}, tasksrepo.ErrNotFound
	}
	return task, nil
}

func TestWentLiveNotificationGoesToAssignedUser(t *testing.T) {
	userID := uuid.New()
	sender := &fakeSender{}
	users := &fakeUsers{users: map[uuid.UUID]authrepo.User{
		userID: {ID: userID, Email: "rep@example.com"},
	}}
	notifier := New(sender, users, &fakeTasks{}, logger.New("development"))

	err := notifier.onDealershipWentLive(context.Background(), events.DealershipWentLive{
		BaseEvent:      events.NewBaseEvent(),
		DealershipID:   uuid.New(),
		DealershipName: "Acme Motors",
		AssignedUserID: &userID,
		MonthlyValue:   1500,
	})
	if err != nil {
		t.Fatalf("onDealershipWentLive: %v", err)
	}

	if len(sender.wentLive) != 1 || sender.wentLive[0] != "rep@example.com" {
		t.Errorf("recipients = %v, want [rep@example.com]", sender.wentLive)
	}
}

func TestWentLiveWithoutAssigneeSendsNothing(t *testing.T) {
	sender := &fakeSender{}
	notifier := New(sender, &fakeUsers{}, &fakeTasks{}, logger.New("development"))

	err := notifier.onDealershipWentLive(context.Background(), events.DealershipWentLive{
		BaseEvent:      events.NewBaseEvent(),
		DealershipID:   uuid.New(),
		DealershipName: "Acme Motors",
	})
	if err != nil {
		t.Fatalf("onDealershipWentLive: %v", err)
	}
	if len(sender.wentLive) != 0 {
		t.Errorf("expected no recipients, got %v", sender.wentLive)
	}
}

func TestTaskReminderLoadsTaskDetails(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()
	due := time.Now().Add(time.Hour)

	sender := &fakeSender{}
	users := &fakeUsers{users: map[uuid.UUID]authrepo.User{
		userID: {ID: userID, Email: "owner@example.com"},
	}}
	tasks := &fakeTasks{tasks: map[uuid.UUID]tasksrepo.Task{
		taskID: {ID: taskID, OwnerID: userID, Title: "Call Acme", DueDate: &due},
	}}
	notifier := New(sender, users, tasks, logger.New("development"))

	err := notifier.onTaskReminderDue(context.Background(), events.TaskReminderDue{
		BaseEvent: events.NewBaseEvent(),
		TaskID:    taskID,
		OwnerID:   userID,
		Title:     "Call Acme",
	})
	if err != nil {
		t.Fatalf("onTaskReminderDue: %v", err)
	}
	if len(sender.reminders) != 1 || sender.reminders[0] != "owner@example.com" {
		t.Errorf("recipients = %v, want [owner@example.com]", sender.reminders)
	}
}
