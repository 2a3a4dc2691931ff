package transport

import (
	"time"

	"github.com/google/uuid"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type RegisterRequest struct {
	Email       string     `json:"email" validate:"required,email"`
	Password    string     `json:"password" validate:"required,min=8,max=128"`
	Name        string     `json:"name" validate:"required,min=1,max=100"`
	Role        string     `json:"role" validate:"required,oneof=ADMIN USER"`
	TerritoryID *uuid.UUID `json:"territoryId,omitempty"`
}

type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	TerritoryID *uuid.UUID `json:"territoryId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	ExpiresIn   int64        `json:"expiresIn"`
	User        UserResponse `json:"user"`
}
