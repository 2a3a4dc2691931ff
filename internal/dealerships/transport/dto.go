// Package transport defines request and response DTOs for the dealerships
// module.
package transport

import (
	"time"

	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/dealerships/domain"

	"github.com/google/uuid"
)

type CreateDealershipRequest struct {
	Name           string     `json:"name" validate:"required,min=1,max=200"`
	MonthlyValue   float64    `json:"monthlyValue" validate:"min=0"`
	AssignedUserID *uuid.UUID `json:"assignedUserId,omitempty"`
	TerritoryID    *uuid.UUID `json:"territoryId,omitempty"`
	Address        string     `json:"address,omitempty" validate:"max=300"`
	City           string     `json:"city,omitempty" validate:"max=100"`
	State          string     `json:"state,omitempty" validate:"max=100"`
	ZipCode        string     `json:"zipCode,omitempty" validate:"max=20"`
	Phone          string     `json:"phone,omitempty" validate:"omitempty,min=5,max=20"`
	Website        string     `json:"website,omitempty" validate:"omitempty,url"`
	Source         string     `json:"source,omitempty" validate:"max=100"`
}

type UpdateDealershipRequest struct {
	Name           *string    `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	MonthlyValue   *float64   `json:"monthlyValue,omitempty" validate:"omitempty,min=0"`
	AssignedUserID *uuid.UUID `json:"assignedUserId,omitempty"`
	TerritoryID    *uuid.UUID `json:"territoryId,omitempty"`
	Address        *string    `json:"address,omitempty" validate:"omitempty,max=300"`
	City           *string    `json:"city,omitempty" validate:"omitempty,max=100"`
	State          *string    `json:"state,omitempty" validate:"omitempty,max=100"`
	ZipCode        *string    `json:"zipCode,omitempty" validate:"omitempty,max=20"`
	Phone          *string    `json:"phone,omitempty" validate:"omitempty,min=5,max=20"`
	Website        *string    `json:"website,omitempty" validate:"omitempty,url"`
	Source         *string    `json:"source,omitempty" validate:"omitempty,max=100"`
}

type UpdateDealershipStatusRequest struct {
	Status domain.Status `json:"status" validate:"required,oneof=PROSPECT QUALIFIED MEETING_SCHEDULED PROPOSAL_SENT NEGOTIATION ACTIVE_CUSTOMER CHURNED"`
}

type ListDealershipsRequest struct {
	Status *domain.Status `form:"status" validate:"omitempty,oneof=PROSPECT QUALIFIED MEETING_SCHEDULED PROPOSAL_SENT NEGOTIATION ACTIVE_CUSTOMER CHURNED"`
	Search string         `form:"search" validate:"max=100"`
}

type AddContactRequest struct {
	FirstName string `json:"firstName" validate:"required,min=1,max=100"`
	LastName  string `json:"lastName,omitempty" validate:"max=100"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,min=5,max=20"`
	Position  string `json:"position,omitempty" validate:"max=100"`
	IsPrimary bool   `json:"isPrimary"`
}

type DealershipResponse struct {
	ID              uuid.UUID     `json:"id"`
	Name            string        `json:"name"`
	Status          domain.Status `json:"status"`
	IsLive          bool          `json:"isLive"`
	LiveActivatedAt *time.Time    `json:"liveActivatedAt,omitempty"`
	MonthlyValue    float64       `json:"monthlyValue"`
	AssignedUserID  *uuid.UUID    `json:"assignedUserId,omitempty"`
	TerritoryID     *uuid.UUID    `json:"territoryId,omitempty"`
	Address         *string       `json:"address,omitempty"`
	City            *string       `json:"city,omitempty"`
	State           *string       `json:"state,omitempty"`
	ZipCode         *string       `json:"zipCode,omitempty"`
	Phone           *string       `json:"phone,omitempty"`
	Website         *string       `json:"website,omitempty"`
	Source          *string       `json:"source,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

type ContactResponse struct {
	ID           uuid.UUID `json:"id"`
	DealershipID uuid.UUID `json:"dealershipId"`
	FirstName    string    `json:"firstName"`
	LastName     *string   `json:"lastName,omitempty"`
	Email        *string   `json:"email,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	Position     *string   `json:"position,omitempty"`
	IsPrimary    bool      `json:"isPrimary"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ActivityResponse struct {
	ID           uuid.UUID  `json:"id"`
	DealershipID uuid.UUID  `json:"dealershipId"`
	UserID       *uuid.UUID `json:"userId,omitempty"`
	Type         string     `json:"type"`
	Description  string     `json:"description"`
	CreatedAt    time.Time  `json:"createdAt"`
}
