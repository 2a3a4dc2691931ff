package service

import (
	"context"
	"errors"
	"strings"

	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/deals/domain"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/deals/pipeline"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/deals/repository"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/deals/transport"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/events"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/apperr"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/httpkit"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrDealNotFound = errors.New("deal not found")
	ErrForbidden    = errors.New("forbidden")
)

type Service struct {
	repo *repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

func New(repo *repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

func (s *Service) Create(ctx context.Context, caller httpkit.Identity, req transport.CreateDealRequest) (transport.DealResponse, error) {
	stage := domain.StageLead
	probability := stage.DefaultProbability()
	if req.Probability != nil {
		probability = *req.Probability
	}

	deal, err := s.repo.Create(ctx, repository.CreateDealParams{
		DealershipID:      req.DealershipID,
		ContactID:         req.ContactID,
		OwnerID:           caller.UserID(),
		TerritoryID:       caller.TerritoryID(),
		Title:             req.Title,
		Stage:             string(stage),
		Value:             req.Value,
		MonthlyRecurring:  req.MonthlyRecurring,
		Probability:       probability,
		ExpectedCloseDate: req.ExpectedCloseDate,
	})
	if err != nil {
		return transport.DealResponse{}, err
	}

	return toDealResponse(deal), nil
}

func (s *Service) GetByID(ctx context.Context, caller httpkit.Identity, id uuid.UUID) (transport.DealResponse, error) {
	deal, err := s.visibleDeal(ctx, caller, id)
	if err != nil {
		return transport.DealResponse{}, err
	}
	return toDealResponse(deal), nil
}

func (s *Service) List(ctx context.Context, caller httpkit.Identity, req transport.ListDealsRequest) ([]transport.DealResponse, error) {
	params := repository.ListDealsParams{
		Scope:        scopeFor(caller),
		DealershipID: req.DealershipID,
		OwnerID:      req.OwnerID,
		Search:       strings.TrimSpace(req.Search),
		MinValue:     req.MinValue,
		MaxValue:     req.MaxValue,
	}
	if req.Stage != nil {
		stage := string(*req.Stage)
		params.Stage = &stage
	}

	deals, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	out := make([]transport.DealResponse, 0, len(deals))
	for _, deal := range deals {
		out = append(out, toDealResponse(deal))
	}
	return out, nil
}

// Pipeline returns the stage-grouped summary for everything the caller can
// see, narrowed by the optional query filters. Scoping happens in the query,
// so the aggregation itself never sees out-of-scope deals.
func (s *Service) Pipeline(ctx context.Context, caller httpkit.Identity, req transport.PipelineRequest) (pipeline.Summary, error) {
	if !caller.IsAuthenticated() {
		return pipeline.Summary{}, apperr.Forbidden("no pipeline scope for caller")
	}

	rows, err := s.repo.ListForPipeline(ctx, repository.PipelineParams{
		Scope:    scopeFor(caller),
		OwnerID:  req.OwnerID,
		Search:   strings.TrimSpace(req.Search),
		MinValue: req.MinValue,
		MaxValue: req.MaxValue,
	})
	if err != nil {
		return pipeline.Summary{}, err
	}

	deals := make([]pipeline.Deal, 0, len(rows))
	for _, row := range rows {
		deals = append(deals, pipeline.Deal{
			ID:          row.ID,
			Title:       row.Title,
			Stage:       domain.Stage(row.Stage),
			Value:       row.Value,
			Probability: row.Probability,
		})
	}
	return pipeline.Aggregate(deals), nil
}

func (s *Service) Update(ctx context.Context, caller httpkit.Identity, id uuid.UUID, req transport.UpdateDealRequest) (transport.DealResponse, error) {
	if _, err := s.visibleDeal(ctx, caller, id); err != nil {
		return transport.DealResponse{}, err
	}

	deal, err := s.repo.Update(ctx, id, repository.UpdateDealParams{
		ContactID:         req.ContactID,
		Title:             req.Title,
		Value:             req.Value,
		MonthlyRecurring:  req.MonthlyRecurring,
		Probability:       req.Probability,
		ExpectedCloseDate: req.ExpectedCloseDate,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.DealResponse{}, ErrDealNotFound
		}
		return transport.DealResponse{}, err
	}

	return toDealResponse(deal), nil
}

// UpdateStage moves a deal through the pipeline. The probability resets to
// the new stage's default unless the request overrides it.
func (s *Service) UpdateStage(ctx context.Context, caller httpkit.Identity, id uuid.UUID, req transport.UpdateDealStageRequest) (transport.DealResponse, error) {
	current, err := s.visibleDeal(ctx, caller, id)
	if err != nil {
		return transport.DealResponse{}, err
	}

	probability := req.Stage.DefaultProbability()
	if req.Probability != nil {
		probability = *req.Probability
	}

	deal, err := s.repo.UpdateStage(ctx, id, string(req.Stage), probability)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.DealResponse{}, ErrDealNotFound
		}
		return transport.DealResponse{}, err
	}

	if current.Stage != deal.Stage {
		s.bus.Publish(ctx, events.DealStageChanged{
			BaseEvent:    events.NewBaseEvent(),
			DealID:       deal.ID,
			DealershipID: deal.DealershipID,
			OwnerID:      deal.OwnerID,
			Title:        deal.Title,
			FromStage:    current.Stage,
			ToStage:      deal.Stage,
			Value:        deal.Value,
		})
		s.log.Info("deal stage changed",
			"deal_id", deal.ID,
			"from", current.Stage,
			"to", deal.Stage,
		)
	}

	return toDealResponse(deal), nil
}

func (s *Service) Delete(ctx context.Context, caller httpkit.Identity, id uuid.UUID) error {
	if _, err := s.visibleDeal(ctx, caller, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDealNotFound
		}
		return err
	}
	return nil
}

// scopeFor translates the caller's identity into a repository scope. Admins
// get a nil scope, meaning no visibility filter.
func scopeFor(caller httpkit.Identity) *repository.Scope {
	if caller.IsAdmin() {
		return nil
	}
	return &repository.Scope{
		UserID:      caller.UserID(),
		TerritoryID: caller.TerritoryID(),
	}
}

func (s *Service) visibleDeal(ctx context.Context, caller httpkit.Identity, id uuid.UUID) (repository.Deal, error) {
	deal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Deal{}, ErrDealNotFound
		}
		return repository.Deal{}, err
	}

	if caller.IsAdmin() {
		return deal, nil
	}
	if deal.OwnerID == caller.UserID() {
		return deal, nil
	}
	if deal.TerritoryID != nil && caller.TerritoryID() != nil && *deal.TerritoryID == *caller.TerritoryID() {
		return deal, nil
	}
	return repository.Deal{}, ErrForbidden
}

func toDealResponse(d repository.Deal) transport.DealResponse {
	return transport.DealResponse{
		ID:                d.ID,
		DealershipID:      d.DealershipID,
		ContactID:         d.ContactID,
		OwnerID:           d.OwnerID,
		TerritoryID:       d.TerritoryID,
		Title:             d.Title,
		Stage:             domain.Stage(d.Stage),
		Value:             d.Value,
		MonthlyRecurring:  d.MonthlyRecurring,
		Probability:       d.Probability,
		ExpectedCloseDate: d.ExpectedCloseDate,
		ClosedAt:          d.ClosedAt,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}
