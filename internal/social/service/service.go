// Package service holds the business logic for social media posts,
// including AI-assisted drafting.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/social/repository"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/social/transport"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/httpkit"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrPostNotFound     = errors.New("social post not found")
	ErrForbidden        = errors.New("not allowed to access this post")
	ErrDraftingDisabled = errors.New("ai drafting is not configured")
)

// Drafter generates post copy from a short topic description.
type Drafter interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type Service struct {
	repo    *repository.Repository
	drafter Drafter
	log     *logger.Logger
}

func New(repo *repository.Repository, drafter Drafter, log *logger.Logger) *Service {
	return &Service{repo: repo, drafter: drafter, log: log}
}

func (s *Service) Create(ctx context.Context, caller httpkit.Identity, req transport.CreatePostRequest) (transport.PostResponse, error) {
	params := repository.CreateParams{
		AuthorID:     caller.UserID(),
		Platform:     defaultString(req.Platform, "LINKEDIN"),
		Content:      req.Content,
		Status:       "DRAFT",
		ScheduledFor: req.ScheduledFor,
	}
	if req.ScheduledFor != nil {
		params.Status = "SCHEDULED"
	}

	post, err := s.repo.Create(ctx, params)
	if err != nil {
		return transport.PostResponse{}, err
	}
	return toPostResponse(post), nil
}

func (s *Service) Get(ctx context.Context, caller httpkit.Identity, id uuid.UUID) (transport.PostResponse, error) {
	post, err := s.visiblePost(ctx, caller, id)
	if err != nil {
		return transport.PostResponse{}, err
	}
	return toPostResponse(post), nil
}

func (s *Service) List(ctx context.Context, caller httpkit.Identity, req transport.ListPostsRequest) ([]transport.PostResponse, error) {
	filter := repository.ListFilter{
		Status:   req.Status,
		Platform: req.Platform,
	}
	if !caller.IsAdmin() {
		authorID := caller.UserID()
		filter.AuthorID = &authorID
	}

	posts, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]transport.PostResponse, 0, len(posts))
	for _, post := range posts {
		out = append(out, toPostResponse(post))
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, caller httpkit.Identity, id uuid.UUID, req transport.UpdatePostRequest) (transport.PostResponse, error) {
	if _, err := s.visiblePost(ctx, caller, id); err != nil {
		return transport.PostResponse{}, err
	}

	post, err := s.repo.Update(ctx, id, repository.UpdateParams{
		Content:      req.Content,
		Platform:     req.Platform,
		Status:       req.Status,
		ScheduledFor: req.ScheduledFor,
	})
	if errors.Is(err, repository.ErrNotFound) {
		return transport.PostResponse{}, ErrPostNotFound
	}
	if err != nil {
		return transport.PostResponse{}, err
	}
	return toPostResponse(post), nil
}

func (s *Service) Delete(ctx context.Context, caller httpkit.Identity, id uuid.UUID) error {
	if _, err := s.visiblePost(ctx, caller, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}

// Draft asks the AI model for post copy without persisting anything. The
// caller reviews the draft and creates a post from it explicitly.
func (s *Service) Draft(ctx context.Context, req transport.DraftPostRequest) (transport.DraftPostResponse, error) {
	if s.drafter == nil {
		return transport.DraftPostResponse{}, ErrDraftingDisabled
	}

	content, err := s.drafter.GenerateText(ctx, buildDraftPrompt(req))
	if err != nil {
		return transport.DraftPostResponse{}, fmt.Errorf("generate draft: %w", err)
	}
	return transport.DraftPostResponse{Content: strings.TrimSpace(content)}, nil
}

func (s *Service) visiblePost(ctx context.Context, caller httpkit.Identity, id uuid.UUID) (repository.Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Post{}, ErrPostNotFound
	}
	if err != nil {
		return repository.Post{}, err
	}
	if post.AuthorID != caller.UserID() && !caller.IsAdmin() {
		return repository.Post{}, ErrForbidden
	}
	return post, nil
}

func buildDraftPrompt(req transport.DraftPostRequest) string {
	var b strings.Builder
	platform := defaultString(req.Platform, "LINKEDIN")
	tone := defaultString(req.Tone, "professional")

	fmt.Fprintf(&b, "Write a %s social media post for %s.\n", tone, platform)
	fmt.Fprintf(&b, "Topic: %s\n", req.Topic)
	b.WriteString("The author is a B2B sales representative selling CRM software to automotive dealerships.\n")
	b.WriteString("Keep it under 200 words. Return only the post text, no commentary.")
	return b.String()
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func toPostResponse(p repository.Post) transport.PostResponse {
	return transport.PostResponse{
		ID:           p.ID,
		AuthorID:     p.AuthorID,
		Platform:     p.Platform,
		Content:      p.Content,
		Status:       p.Status,
		ScheduledFor: p.ScheduledFor,
		PostedAt:     p.PostedAt,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
