package service

import (
	"context"
	"errors"

	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/prospects/repository"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/prospects/scoring"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/prospects/transport"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/httpkit"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/phone"

	"github.com/google/uuid"
)

var (
	ErrProspectNotFound   = errors.New("prospect not found")
	ErrForbidden          = errors.New("forbidden")
	ErrEnrichmentDisabled = errors.New("enrichment is not configured")
)

// EnrichmentResult carries the fields the enricher was able to infer.
type EnrichmentResult struct {
	Company             *string
	Industry            *string
	EmployeeCount       *int
	LinkedInConnections *int
	Summary             string
}

// Enricher infers missing firmographic fields for a prospect.
type Enricher interface {
	EnrichProspect(ctx context.Context, prospect repository.Prospect) (EnrichmentResult, error)
}

type Service struct {
	repo     *repository.Repository
	enricher Enricher
}

func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// SetEnricher wires the optional LLM-backed enricher.
func (s *Service) SetEnricher(enricher Enricher) {
	s.enricher = enricher
}

func (s *Service) Create(ctx context.Context, caller httpkit.Identity, req transport.CreateProspectRequest) (transport.ProspectResponse, error) {
	params := repository.CreateProspectParams{
		OwnerID:       caller.UserID(),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		EmployeeCount: req.EmployeeCount,
		Notes:         req.Notes,
	}

	if req.Email != "" {
		params.Email = &req.Email
	}
	if req.Phone != "" {
		normalized := phone.NormalizeE164(req.Phone)
		params.Phone = &normalized
	}
	if req.Company != "" {
		params.Company = &req.Company
	}
	if req.Position != "" {
		params.Position = &req.Position
	}
	if req.Industry != "" {
		params.Industry = &req.Industry
	}
	if req.LinkedInURL != "" {
		params.LinkedInURL = &req.LinkedInURL
	}

	prospect, err := s.repo.Create(ctx, params)
	if err != nil {
		return transport.ProspectResponse{}, err
	}

	return toProspectResponse(prospect), nil
}

func (s *Service) GetByID(ctx context.Context, caller httpkit.Identity, id uuid.UUID) (transport.ProspectResponse, error) {
	prospect, err := s.visibleProspect(ctx, caller, id)
	if err != nil {
		return transport.ProspectResponse{}, err
	}
	return toProspectResponse(prospect), nil
}

func (s *Service) List(ctx context.Context, caller httpkit.Identity, req transport.ListProspectsRequest) ([]transport.ProspectResponse, error) {
	params := repository.ListProspectsParams{
		Search:   req.Search,
		MinScore: req.MinScore,
	}

	// Non-admins only ever see their own prospects.
	if !caller.IsAdmin() {
		ownerID := caller.UserID()
		params.OwnerID = &ownerID
	}
	if req.Status != nil {
		status := string(*req.Status)
		params.Status = &status
	}
	if req.PageSize > 0 {
		params.Limit = req.PageSize
		if req.Page > 1 {
			params.Offset = (req.Page - 1) * req.PageSize
		}
	}

	prospects, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	out := make([]transport.ProspectResponse, 0, len(prospects))
	for _, prospect := range prospects {
		out = append(out, toProspectResponse(prospect))
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, caller httpkit.Identity, id uuid.UUID, req transport.UpdateProspectRequest) (transport.ProspectResponse, error) {
	if _, err := s.visibleProspect(ctx, caller, id); err != nil {
		return transport.ProspectResponse{}, err
	}

	params := repository.UpdateProspectParams{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Company:       req.Company,
		Position:      req.Position,
		Industry:      req.Industry,
		EmployeeCount: req.EmployeeCount,
		LinkedInURL:   req.LinkedInURL,
		Notes:         req.Notes,
	}
	if req.Phone != nil {
		normalized := phone.NormalizeE164(*req.Phone)
		params.Phone = &normalized
	}

	prospect, err := s.repo.Update(ctx, id, params)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.ProspectResponse{}, ErrProspectNotFound
		}
		return transport.ProspectResponse{}, err
	}

	return toProspectResponse(prospect), nil
}

func (s *Service) UpdateStatus(ctx context.Context, caller httpkit.Identity, id uuid.UUID, req transport.UpdateProspectStatusRequest) (transport.ProspectResponse, error) {
	if _, err := s.visibleProspect(ctx, caller, id); err != nil {
		return transport.ProspectResponse{}, err
	}

	prospect, err := s.repo.UpdateStatus(ctx, id, string(req.Status))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.ProspectResponse{}, ErrProspectNotFound
		}
		return transport.ProspectResponse{}, err
	}

	return toProspectResponse(prospect), nil
}

func (s *Service) Delete(ctx context.Context, caller httpkit.Identity, id uuid.UUID) error {
	if _, err := s.visibleProspect(ctx, caller, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProspectNotFound
		}
		return err
	}
	return nil
}

// Rescore recomputes the lead score from the prospect's current snapshot and
// engagement history, persists it, and reports the previous score alongside
// the breakdown.
func (s *Service) Rescore(ctx context.Context, caller httpkit.Identity, id uuid.UUID) (transport.ScoreResponse, error) {
	prospect, err := s.visibleProspect(ctx, caller, id)
	if err != nil {
		return transport.ScoreResponse{}, err
	}

	interactionTypes, err := s.repo.ListInteractionTypes(ctx, id)
	if err != nil {
		return transport.ScoreResponse{}, err
	}
	appointmentCount, err := s.repo.CountAppointments(ctx, id)
	if err != nil {
		return transport.ScoreResponse{}, err
	}

	result := scoring.Score(scoring.Input{
		Email:               deref(prospect.Email),
		Phone:               deref(prospect.Phone),
		LinkedInURL:         deref(prospect.LinkedInURL),
		Position:            deref(prospect.Position),
		Company:             deref(prospect.Company),
		Industry:            deref(prospect.Industry),
		EmployeeCount:       prospect.EmployeeCount,
		Enriched:            prospect.Enriched,
		LinkedInConnections: prospect.LinkedInConnections,
		InteractionTypes:    interactionTypes,
		AppointmentCount:    appointmentCount,
	})

	previousScore := prospect.LeadScore
	if _, err := s.repo.UpdateScore(ctx, id, result.Score); err != nil {
		return transport.ScoreResponse{}, err
	}

	return transport.ScoreResponse{
		ProspectID:     id,
		PreviousScore:  previousScore,
		NewScore:       result.Score,
		ScoreBreakdown: result.Breakdown,
	}, nil
}

// Enrich asks the LLM enricher for missing firmographics and applies them.
// enriched_at is stamped only on the first successful enrichment.
func (s *Service) Enrich(ctx context.Context, caller httpkit.Identity, id uuid.UUID) (transport.EnrichResponse, error) {
	if s.enricher == nil {
		return transport.EnrichResponse{}, ErrEnrichmentDisabled
	}

	prospect, err := s.visibleProspect(ctx, caller, id)
	if err != nil {
		return transport.EnrichResponse{}, err
	}

	result, err := s.enricher.EnrichProspect(ctx, prospect)
	if err != nil {
		return transport.EnrichResponse{}, err
	}

	enriched, err := s.repo.ApplyEnrichment(ctx, id, repository.EnrichmentParams{
		Company:             result.Company,
		Industry:            result.Industry,
		EmployeeCount:       result.EmployeeCount,
		LinkedInConnections: result.LinkedInConnections,
	})
	if err != nil {
		return transport.EnrichResponse{}, err
	}

	return transport.EnrichResponse{
		Prospect: toProspectResponse(enriched),
		Summary:  result.Summary,
	}, nil
}

func (s *Service) AddInteraction(ctx context.Context, caller httpkit.Identity, id uuid.UUID, req transport.AddInteractionRequest) (transport.InteractionResponse, error) {
	if _, err := s.visibleProspect(ctx, caller, id); err != nil {
		return transport.InteractionResponse{}, err
	}

	params := repository.CreateInteractionParams{
		ProspectID: id,
		UserID:     caller.UserID(),
		Type:       string(req.Type),
	}
	if req.Subject != "" {
		params.Subject = &req.Subject
	}
	if req.Body != "" {
		params.Body = &req.Body
	}

	interaction, err := s.repo.CreateInteraction(ctx, params)
	if err != nil {
		return transport.InteractionResponse{}, err
	}

	return toInteractionResponse(interaction), nil
}

func (s *Service) ListInteractions(ctx context.Context, caller httpkit.Identity, id uuid.UUID) ([]transport.InteractionResponse, error) {
	if _, err := s.visibleProspect(ctx, caller, id); err != nil {
		return nil, err
	}

	interactions, err := s.repo.ListInteractions(ctx, id)
	if err != nil {
		return nil, err
	}

	out := make([]transport.InteractionResponse, 0, len(interactions))
	for _, interaction := range interactions {
		out = append(out, toInteractionResponse(interaction))
	}
	return out, nil
}

func (s *Service) ScheduleAppointment(ctx context.Context, caller httpkit.Identity, id uuid.UUID, req transport.ScheduleAppointmentRequest) (transport.AppointmentResponse, error) {
	if _, err := s.visibleProspect(ctx, caller, id); err != nil {
		return transport.AppointmentResponse{}, err
	}

	params := repository.CreateAppointmentParams{
		ProspectID:  id,
		UserID:      caller.UserID(),
		ScheduledAt: req.ScheduledAt,
	}
	if req.Notes != "" {
		params.Notes = &req.Notes
	}

	appointment, err := s.repo.CreateAppointment(ctx, params)
	if err != nil {
		return transport.AppointmentResponse{}, err
	}

	return toAppointmentResponse(appointment), nil
}

func (s *Service) ListAppointments(ctx context.Context, caller httpkit.Identity, id uuid.UUID) ([]transport.AppointmentResponse, error) {
	if _, err := s.visibleProspect(ctx, caller, id); err != nil {
		return nil, err
	}

	appointments, err := s.repo.ListAppointments(ctx, id)
	if err != nil {
		return nil, err
	}

	out := make([]transport.AppointmentResponse, 0, len(appointments))
	for _, appointment := range appointments {
		out = append(out, toAppointmentResponse(appointment))
	}
	return out, nil
}

// visibleProspect loads the prospect and enforces owner visibility: a USER
// can only touch prospects they own.
func (s *Service) visibleProspect(ctx context.Context, caller httpkit.Identity, id uuid.UUID) (repository.Prospect, error) {
	prospect, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Prospect{}, ErrProspectNotFound
		}
		return repository.Prospect{}, err
	}

	if !caller.IsAdmin() && prospect.OwnerID != caller.UserID() {
		return repository.Prospect{}, ErrForbidden
	}

	return prospect, nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func toProspectResponse(p repository.Prospect) transport.ProspectResponse {
	return transport.ProspectResponse{
		ID:                  p.ID,
		OwnerID:             p.OwnerID,
		FirstName:           p.FirstName,
		LastName:            p.LastName,
		Email:               p.Email,
		Phone:               p.Phone,
		Company:             p.Company,
		Position:            p.Position,
		Industry:            p.Industry,
		EmployeeCount:       p.EmployeeCount,
		LinkedInURL:         p.LinkedInURL,
		LinkedInConnections: p.LinkedInConnections,
		Status:              transport.ProspectStatus(p.Status),
		LeadScore:           p.LeadScore,
		PreviousScore:       p.PreviousScore,
		Enriched:            p.Enriched,
		EnrichedAt:          p.EnrichedAt,
		Notes:               p.Notes,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

func toInteractionResponse(i repository.Interaction) transport.InteractionResponse {
	return transport.InteractionResponse{
		ID:         i.ID,
		ProspectID: i.ProspectID,
		UserID:     i.UserID,
		Type:       transport.InteractionType(i.Type),
		Subject:    i.Subject,
		Body:       i.Body,
		OccurredAt: i.OccurredAt,
	}
}

func toAppointmentResponse(a repository.Appointment) transport.AppointmentResponse {
	return transport.AppointmentResponse{
		ID:          a.ID,
		ProspectID:  a.ProspectID,
		UserID:      a.UserID,
		ScheduledAt: a.ScheduledAt,
		Status:      a.Status,
		Notes:       a.Notes,
	}
}
