package transport

import (
	"time"

	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/prospects/scoring"

	"github.com/google/uuid"
)

// Enum values
type ProspectStatus string

const (
	ProspectStatusCold           ProspectStatus = "COLD"
	ProspectStatusContacted      ProspectStatus = "CONTACTED"
	ProspectStatusInterested     ProspectStatus = "INTERESTED"
	ProspectStatusAppointmentSet ProspectStatus = "APPOINTMENT_SET"
	ProspectStatusProposalSent   ProspectStatus = "PROPOSAL_SENT"
	ProspectStatusClosedWon      ProspectStatus = "CLOSED_WON"
	ProspectStatusClosedLost     ProspectStatus = "CLOSED_LOST"
)

type InteractionType string

const (
	InteractionTypeEmail              InteractionType = "EMAIL"
	InteractionTypeCall               InteractionType = "CALL"
	InteractionTypeLinkedInMessage    InteractionType = "LINKEDIN_MESSAGE"
	InteractionTypeLinkedInConnection InteractionType = "LINKEDIN_CONNECTION"
	InteractionTypeMeeting            InteractionType = "MEETING"
	InteractionTypeNote               InteractionType = "NOTE"
)

// Request DTOs
type CreateProspectRequest struct {
	FirstName     string  `json:"firstName" validate:"required,min=1,max=100"`
	LastName      string  `json:"lastName,omitempty" validate:"max=100"`
	Email         string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone         string  `json:"phone,omitempty" validate:"omitempty,min=5,max=20"`
	Company       string  `json:"company,omitempty" validate:"max=200"`
	Position      string  `json:"position,omitempty" validate:"max=100"`
	Industry      string  `json:"industry,omitempty" validate:"max=100"`
	EmployeeCount *int    `json:"employeeCount,omitempty" validate:"omitempty,min=0"`
	LinkedInURL   string  `json:"linkedinUrl,omitempty" validate:"omitempty,url"`
	Notes         *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type UpdateProspectRequest struct {
	FirstName     *string `json:"firstName,omitempty" validate:"omitempty,min=1,max=100"`
	LastName      *string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,min=5,max=20"`
	Company       *string `json:"company,omitempty" validate:"omitempty,max=200"`
	Position      *string `json:"position,omitempty" validate:"omitempty,max=100"`
	Industry      *string `json:"industry,omitempty" validate:"omitempty,max=100"`
	EmployeeCount *int    `json:"employeeCount,omitempty" validate:"omitempty,min=0"`
	LinkedInURL   *string `json:"linkedinUrl,omitempty" validate:"omitempty,url"`
	Notes         *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type UpdateProspectStatusRequest struct {
	Status ProspectStatus `json:"status" validate:"required,oneof=COLD CONTACTED INTERESTED APPOINTMENT_SET PROPOSAL_SENT CLOSED_WON CLOSED_LOST"`
}

type ListProspectsRequest struct {
	Status   *ProspectStatus `form:"status" validate:"omitempty,oneof=COLD CONTACTED INTERESTED APPOINTMENT_SET PROPOSAL_SENT CLOSED_WON CLOSED_LOST"`
	Search   string          `form:"search" validate:"max=100"`
	MinScore *int            `form:"minScore" validate:"omitempty,min=0,max=100"`
	Page     int             `form:"page" validate:"min=0"`
	PageSize int             `form:"pageSize" validate:"min=0,max=100"`
}

type AddInteractionRequest struct {
	Type    InteractionType `json:"type" validate:"required,oneof=EMAIL CALL LINKEDIN_MESSAGE LINKEDIN_CONNECTION MEETING NOTE"`
	Subject string          `json:"subject,omitempty" validate:"max=200"`
	Body    string          `json:"body,omitempty" validate:"max=5000"`
}

type ScheduleAppointmentRequest struct {
	ScheduledAt time.Time `json:"scheduledAt" validate:"required"`
	Notes       string    `json:"notes,omitempty" validate:"max=2000"`
}

// Response DTOs
type ProspectResponse struct {
	ID                  uuid.UUID      `json:"id"`
	OwnerID             uuid.UUID      `json:"ownerId"`
	FirstName           string         `json:"firstName"`
	LastName            string         `json:"lastName,omitempty"`
	Email               *string        `json:"email,omitempty"`
	Phone               *string        `json:"phone,omitempty"`
	Company             *string        `json:"company,omitempty"`
	Position            *string        `json:"position,omitempty"`
	Industry            *string        `json:"industry,omitempty"`
	EmployeeCount       *int           `json:"employeeCount,omitempty"`
	LinkedInURL         *string        `json:"linkedinUrl,omitempty"`
	LinkedInConnections *int           `json:"linkedinConnections,omitempty"`
	Status              ProspectStatus `json:"status"`
	LeadScore           int            `json:"leadScore"`
	PreviousScore       int            `json:"previousScore"`
	Enriched            bool           `json:"enriched"`
	EnrichedAt          *time.Time     `json:"enrichedAt,omitempty"`
	Notes               *string        `json:"notes,omitempty"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
}

type InteractionResponse struct {
	ID         uuid.UUID       `json:"id"`
	ProspectID uuid.UUID       `json:"prospectId"`
	UserID     uuid.UUID       `json:"userId"`
	Type       InteractionType `json:"type"`
	Subject    *string         `json:"subject,omitempty"`
	Body       *string         `json:"body,omitempty"`
	OccurredAt time.Time       `json:"occurredAt"`
}

type AppointmentResponse struct {
	ID          uuid.UUID `json:"id"`
	ProspectID  uuid.UUID `json:"prospectId"`
	UserID      uuid.UUID `json:"userId"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Status      string    `json:"status"`
	Notes       *string   `json:"notes,omitempty"`
}

// ScoreResponse is returned by the rescore endpoint; the previous score stays
// available for comparison.
type ScoreResponse struct {
	ProspectID     uuid.UUID         `json:"prospectId"`
	PreviousScore  int               `json:"previousScore"`
	NewScore       int               `json:"newScore"`
	ScoreBreakdown scoring.Breakdown `json:"scoreBreakdown"`
}

type EnrichResponse struct {
	Prospect ProspectResponse `json:"prospect"`
	Summary  string           `json:"summary,omitempty"`
}
