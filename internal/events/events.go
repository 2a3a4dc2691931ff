// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var (
	NewBaseEvent   = events.NewBaseEvent
	NewInMemoryBus = events.NewInMemoryBus
)

// =============================================================================
// Dealership Domain Events
// =============================================================================

// DealershipWentLive is published the first time a dealership transitions to
// ACTIVE_CUSTOMER.
type DealershipWentLive struct {
	BaseEvent
	DealershipID   uuid.UUID  `json:"dealershipId"`
	DealershipName string     `json:"dealershipName"`
	AssignedUserID *uuid.UUID `json:"assignedUserId,omitempty"`
	MonthlyValue   float64    `json:"monthlyValue"`
}

func (e DealershipWentLive) EventName() string { return "dealerships.went_live" }

// LeadImportCompleted is published after a CSV lead import batch finishes.
type LeadImportCompleted struct {
	BaseEvent
	ImportedByID uuid.UUID `json:"importedById"`
	Created      int       `json:"created"`
	Skipped      int       `json:"skipped"`
	Failed       int       `json:"failed"`
}

func (e LeadImportCompleted) EventName() string { return "dealerships.import_completed" }

// =============================================================================
// Deal Domain Events
// =============================================================================

// DealStageChanged is published whenever a deal moves to a new stage.
type DealStageChanged struct {
	BaseEvent
	DealID       uuid.UUID `json:"dealId"`
	DealershipID uuid.UUID `json:"dealershipId"`
	OwnerID      uuid.UUID `json:"ownerId"`
	Title        string    `json:"title"`
	FromStage    string    `json:"fromStage"`
	ToStage      string    `json:"toStage"`
	Value        float64   `json:"value"`
}

func (e DealStageChanged) EventName() string { return "deals.stage_changed" }

// =============================================================================
// Task Domain Events
// =============================================================================

// TaskReminderDue is published by the scheduler worker when a task's
// follow-up reminder fires.
type TaskReminderDue struct {
	BaseEvent
	TaskID  uuid.UUID `json:"taskId"`
	OwnerID uuid.UUID `json:"ownerId"`
	Title   string    `json:"title"`
}

func (e TaskReminderDue) EventName() string { return "tasks.reminder_due" }
