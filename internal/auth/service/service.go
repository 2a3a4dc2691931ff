package service

import (
	"context"
	"errors"
	"time"

	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/auth/repository"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/auth/transport"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/apperr"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type Service struct {
	repo *repository.Repository
	cfg  config.AuthServiceConfig
}

func New(repo *repository.Repository, cfg config.AuthServiceConfig) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// Login verifies the credentials and issues a signed access token carrying
// the user's role and territory.
func (s *Service) Login(ctx context.Context, req transport.LoginRequest) (transport.LoginResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.LoginResponse{}, ErrInvalidCredentials
		}
		return transport.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return transport.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := s.issueAccessToken(user)
	if err != nil {
		return transport.LoginResponse{}, err
	}

	return transport.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.cfg.GetAccessTokenTTL().Seconds()),
		User:        toUserResponse(user),
	}, nil
}

// Register creates a new user account. Only admins reach this path; the
// handler guards the route.
func (s *Service) Register(ctx context.Context, req transport.RegisterRequest) (transport.UserResponse, error) {
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return transport.UserResponse{}, apperr.Conflict("a user with this email already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return transport.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return transport.UserResponse{}, err
	}

	user, err := s.repo.Create(ctx, repository.CreateUserParams{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         req.Role,
		TerritoryID:  req.TerritoryID,
	})
	if err != nil {
		return transport.UserResponse{}, err
	}

	return toUserResponse(user), nil
}

// Me returns the profile of the authenticated user.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (transport.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.UserResponse{}, apperr.NotFound("user not found")
		}
		return transport.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

// ListUsers returns all users for the admin console.
func (s *Service) ListUsers(ctx context.Context) ([]transport.UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]transport.UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, toUserResponse(user))
	}
	return out, nil
}

func (s *Service) issueAccessToken(user repository.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"type": "access",
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
	}
	if user.TerritoryID != nil {
		claims["territory_id"] = user.TerritoryID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}

func toUserResponse(user repository.User) transport.UserResponse {
	return transport.UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Role:        user.Role,
		TerritoryID: user.TerritoryID,
		CreatedAt:   user.CreatedAt,
	}
}
