// Package transport defines request and response DTOs for the social API.
package transport

import (
	"time"

	"github.com/google/uuid"
)

type CreatePostRequest struct {
	Platform     string     `json:"platform" validate:"omitempty,oneof=LINKEDIN TWITTER FACEBOOK INSTAGRAM"`
	Content      string     `json:"content" validate:"required,max=5000"`
	ScheduledFor *time.Time `json:"scheduledFor"`
}

type UpdatePostRequest struct {
	Platform     *string    `json:"platform" validate:"omitempty,oneof=LINKEDIN TWITTER FACEBOOK INSTAGRAM"`
	Content      *string    `json:"content" validate:"omitempty,max=5000"`
	Status       *string    `json:"status" validate:"omitempty,oneof=DRAFT SCHEDULED POSTED FAILED"`
	ScheduledFor *time.Time `json:"scheduledFor"`
}

type ListPostsRequest struct {
	Status   string `form:"status" validate:"omitempty,oneof=DRAFT SCHEDULED POSTED FAILED"`
	Platform string `form:"platform" validate:"omitempty,oneof=LINKEDIN TWITTER FACEBOOK INSTAGRAM"`
}

type DraftPostRequest struct {
	Topic    string `json:"topic" validate:"required,max=500"`
	Platform string `json:"platform" validate:"omitempty,oneof=LINKEDIN TWITTER FACEBOOK INSTAGRAM"`
	Tone     string `json:"tone" validate:"omitempty,max=100"`
}

type DraftPostResponse struct {
	Content string `json:"content"`
}

type PostResponse struct {
	ID           uuid.UUID  `json:"id"`
	AuthorID     uuid.UUID  `json:"authorId"`
	Platform     string     `json:"platform"`
	Content      string     `json:"content"`
	Status       string     `json:"status"`
	ScheduledFor *time.Time `json:"scheduledFor,omitempty"`
	PostedAt     *time.Time `json:"postedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
