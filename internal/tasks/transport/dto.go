// Package transport defines request and response DTOs for the tasks module.
package transport

import (
	"time"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	DealershipID *uuid.UUID `json:"dealershipId,omitempty"`
	ProspectID   *uuid.UUID `json:"prospectId,omitempty"`
	Title        string     `json:"title" validate:"required,min=1,max=200"`
	Description  string     `json:"description,omitempty" validate:"max=2000"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	Priority     string     `json:"priority,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Priority    *string    `json:"priority,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=OPEN IN_PROGRESS DONE"`
}

type ListTasksRequest struct {
	Status *string    `form:"status" validate:"omitempty,oneof=OPEN IN_PROGRESS DONE"`
	DueBy  *time.Time `form:"dueBy"`
}

type TaskResponse struct {
	ID           uuid.UUID  `json:"id"`
	OwnerID      uuid.UUID  `json:"ownerId"`
	DealershipID *uuid.UUID `json:"dealershipId,omitempty"`
	ProspectID   *uuid.UUID `json:"prospectId,omitempty"`
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	Priority     string     `json:"priority"`
	Status       string     `json:"status"`
	ReminderSent bool       `json:"reminderSent"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
