package service

import (
	"context"
	"errors"
	"time"

	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/scheduler"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/tasks/repository"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/tasks/transport"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/httpkit"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrForbidden    = errors.New("forbidden")
)

type Service struct {
	repo  *repository.Repository
	sched *scheduler.Client
	log   *logger.Logger
}

func New(repo *repository.Repository, sched *scheduler.Client, log *logger.Logger) *Service {
	return &Service{repo: repo, sched: sched, log: log}
}

func (s *Service) Create(ctx context.Context, caller httpkit.Identity, req transport.CreateTaskRequest) (transport.TaskResponse, error) {
	params := repository.CreateTaskParams{
		OwnerID:      caller.UserID(),
		DealershipID: req.DealershipID,
		ProspectID:   req.ProspectID,
		Title:        req.Title,
		Priority:     req.Priority,
		DueDate:      req.DueDate,
	}
	if params.Priority == "" {
		params.Priority = "MEDIUM"
	}
	if req.Description != "" {
		params.Description = &req.Description
	}

	task, err := s.repo.Create(ctx, params)
	if err != nil {
		return transport.TaskResponse{}, err
	}

	s.scheduleReminder(task)
	return toTaskResponse(task), nil
}

func (s *Service) GetByID(ctx context.Context, caller httpkit.Identity, id uuid.UUID) (transport.TaskResponse, error) {
	task, err := s.visibleTask(ctx, caller, id)
	if err != nil {
		return transport.TaskResponse{}, err
	}
	return toTaskResponse(task), nil
}

func (s *Service) List(ctx context.Context, caller httpkit.Identity, req transport.ListTasksRequest) ([]transport.TaskResponse, error) {
	params := repository.ListTasksParams{
		Status: req.Status,
		DueBy:  req.DueBy,
	}
	if !caller.IsAdmin() {
		ownerID := caller.UserID()
		params.OwnerID = &ownerID
	}

	tasks, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	out := make([]transport.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, toTaskResponse(task))
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, caller httpkit.Identity, id uuid.UUID, req transport.UpdateTaskRequest) (transport.TaskResponse, error) {
	before, err := s.visibleTask(ctx, caller, id)
	if err != nil {
		return transport.TaskResponse{}, err
	}

	task, err := s.repo.Update(ctx, id, repository.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Status:      req.Status,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.TaskResponse{}, ErrTaskNotFound
		}
		return transport.TaskResponse{}, err
	}

	// A moved due date gets a fresh reminder; the worker drops stale ones.
	if req.DueDate != nil && (before.DueDate == nil || !before.DueDate.Equal(*req.DueDate)) {
		s.scheduleReminder(task)
	}

	return toTaskResponse(task), nil
}

func (s *Service) Delete(ctx context.Context, caller httpkit.Identity, id uuid.UUID) error {
	if _, err := s.visibleTask(ctx, caller, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	return nil
}

// scheduleReminder enqueues the follow-up reminder an hour before the due
// date. Scheduling failures are logged, not surfaced; the task itself is
// already saved.
func (s *Service) scheduleReminder(task repository.Task) {
	if task.DueDate == nil {
		return
	}
	remindAt := task.DueDate.Add(-time.Hour)
	if err := s.sched.ScheduleFollowUpReminder(task.ID, remindAt); err != nil {
		s.log.Error("schedule follow-up reminder", "error", err, "task_id", task.ID)
	}
}

func (s *Service) visibleTask(ctx context.Context, caller httpkit.Identity, id uuid.UUID) (repository.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Task{}, ErrTaskNotFound
		}
		return repository.Task{}, err
	}

	if !caller.IsAdmin() && task.OwnerID != caller.UserID() {
		return repository.Task{}, ErrForbidden
	}
	return task, nil
}

func toTaskResponse(t repository.Task) transport.TaskResponse {
	return transport.TaskResponse{
		ID:           t.ID,
		OwnerID:      t.OwnerID,
		DealershipID: t.DealershipID,
		ProspectID:   t.ProspectID,
		Title:        t.Title,
		Description:  t.Description,
		DueDate:      t.DueDate,
		Priority:     t.Priority,
		Status:       t.Status,
		ReminderSent: t.ReminderSent,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
