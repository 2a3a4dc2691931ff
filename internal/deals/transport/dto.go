// Package transport defines request and response DTOs for the deals module.
package transport

import (
	"time"

	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/deals/domain"

	"github.com/google/uuid"
)

type CreateDealRequest struct {
	DealershipID     uuid.UUID  `json:"dealershipId" validate:"required"`
	ContactID        *uuid.UUID `json:"contactId,omitempty"`
	Title            string     `json:"title" validate:"required,min=1,max=200"`
	Value            float64    `json:"value" validate:"min=0"`
	MonthlyRecurring float64    `json:"monthlyRecurring" validate:"min=0"`
	// Probability overrides the stage default when provided.
	Probability       *int       `json:"probability,omitempty" validate:"omitempty,min=0,max=100"`
	ExpectedCloseDate *time.Time `json:"expectedCloseDate,omitempty"`
}

type UpdateDealRequest struct {
	ContactID         *uuid.UUID `json:"contactId,omitempty"`
	Title             *string    `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Value             *float64   `json:"value,omitempty" validate:"omitempty,min=0"`
	MonthlyRecurring  *float64   `json:"monthlyRecurring,omitempty" validate:"omitempty,min=0"`
	Probability       *int       `json:"probability,omitempty" validate:"omitempty,min=0,max=100"`
	ExpectedCloseDate *time.Time `json:"expectedCloseDate,omitempty"`
}

type UpdateDealStageRequest struct {
	Stage domain.Stage `json:"stage" validate:"required,oneof=LEAD QUALIFIED MEETING_SCHEDULED PROPOSAL_SENT NEGOTIATION CLOSED_WON CLOSED_LOST"`
	// Probability overrides the new stage's default when provided.
	Probability *int `json:"probability,omitempty" validate:"omitempty,min=0,max=100"`
}

type PipelineRequest struct {
	OwnerID  *uuid.UUID `form:"ownerId"`
	Search   string     `form:"search" validate:"omitempty,max=200"`
	MinValue *float64   `form:"minValue" validate:"omitempty,min=0"`
	MaxValue *float64   `form:"maxValue" validate:"omitempty,min=0"`
}

type ListDealsRequest struct {
	Stage        *domain.Stage `form:"stage" validate:"omitempty,oneof=LEAD QUALIFIED MEETING_SCHEDULED PROPOSAL_SENT NEGOTIATION CLOSED_WON CLOSED_LOST"`
	DealershipID *uuid.UUID    `form:"dealershipId"`
	OwnerID      *uuid.UUID    `form:"ownerId"`
	Search       string        `form:"search" validate:"omitempty,max=200"`
	MinValue     *float64      `form:"minValue" validate:"omitempty,min=0"`
	MaxValue     *float64      `form:"maxValue" validate:"omitempty,min=0"`
}

type DealResponse struct {
	ID                uuid.UUID    `json:"id"`
	DealershipID      uuid.UUID    `json:"dealershipId"`
	ContactID         *uuid.UUID   `json:"contactId,omitempty"`
	OwnerID           uuid.UUID    `json:"ownerId"`
	TerritoryID       *uuid.UUID   `json:"territoryId,omitempty"`
	Title             string       `json:"title"`
	Stage             domain.Stage `json:"stage"`
	Value             float64      `json:"value"`
	MonthlyRecurring  float64      `json:"monthlyRecurring"`
	Probability       int          `json:"probability"`
	ExpectedCloseDate *time.Time   `json:"expectedCloseDate,omitempty"`
	ClosedAt          *time.Time   `json:"closedAt,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}
