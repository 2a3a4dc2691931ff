// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Role names carried in access token claims.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Identity represents the authenticated user's identity.
// This interface abstracts identity extraction from the web framework,
// allowing services to reason about visibility without depending on Gin.
type Identity interface {
	// UserID returns the authenticated user's ID.
	UserID() uuid.UUID
	// Role returns the user's role (ADMIN or USER).
	Role() string
	// IsAdmin reports whether the user has the ADMIN role.
	IsAdmin() bool
	// TerritoryID returns the user's territory, if assigned.
	TerritoryID() *uuid.UUID
	// IsAuthenticated returns true if the user is authenticated.
	IsAuthenticated() bool
}

// identity is the concrete implementation of Identity.
type identity struct {
	userID        uuid.UUID
	role          string
	territoryID   *uuid.UUID
	authenticated bool
}

func (i *identity) UserID() uuid.UUID {
	return i.userID
}

func (i *identity) Role() string {
	return i.role
}

func (i *identity) IsAdmin() bool {
	return i.role == RoleAdmin
}

func (i *identity) TerritoryID() *uuid.UUID {
	return i.territoryID
}

func (i *identity) IsAuthenticated() bool {
	return i.authenticated
}

// GetIdentity extracts the Identity from a Gin context.
// Returns an unauthenticated identity if user info is not present.
func GetIdentity(c *gin.Context) Identity {
	userID, userOK := c.Get(ContextUserIDKey)
	if !userOK {
		return &identity{authenticated: false}
	}

	uid, ok := userID.(uuid.UUID)
	if !ok {
		return &identity{authenticated: false}
	}

	role := RoleUser
	if value, ok := c.Get(ContextRoleKey); ok {
		if text, ok := value.(string); ok && text != "" {
			role = text
		}
	}

	var territoryID *uuid.UUID
	if value, ok := c.Get(ContextTerritoryIDKey); ok {
		if tid, ok := value.(uuid.UUID); ok {
			territoryID = &tid
		}
	}

	return &identity{
		userID:        uid,
		role:          role,
		territoryID:   territoryID,
		authenticated: true,
	}
}

// MustGetIdentity extracts the Identity from a Gin context.
// If the user is not authenticated, it aborts with 401 Unauthorized and returns nil.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil
	}
	return id
}
