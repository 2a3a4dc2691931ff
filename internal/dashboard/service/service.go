package service

import (
	"context"

	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/dashboard/statuses"
	dealershipdomain "github.com/seanmc2314/sarah-ai-sales-sub001/internal/dealerships/domain"
	dealershiprepo "github.com/seanmc2314/sarah-ai-sales-sub001/internal/dealerships/repository"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/deals/pipeline"
	dealstransport "github.com/seanmc2314/sarah-ai-sales-sub001/internal/deals/transport"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/httpkit"

	"golang.org/x/sync/errgroup"
)

// PipelineProvider supplies the caller-scoped deal pipeline summary.
// Implemented by the deals service.
type PipelineProvider interface {
	Pipeline(ctx context.Context, caller httpkit.Identity, req dealstransport.PipelineRequest) (pipeline.Summary, error)
}

// DealershipSource supplies the rows for the status summary. Implemented by
// the dealerships repository.
type DealershipSource interface {
	ListForStatusSummary(ctx context.Context, scope *dealershiprepo.Scope) ([]dealershiprepo.StatusRow, error)
}

// Overview is the combined dashboard payload.
type Overview struct {
	Pipeline    pipeline.Summary `json:"pipeline"`
	Dealerships statuses.Summary `json:"dealerships"`
}

type Service struct {
	deals       PipelineProvider
	dealerships DealershipSource
}

func New(deals PipelineProvider, dealerships DealershipSource) *Service {
	return &Service{deals: deals, dealerships: dealerships}
}

// Overview fans out the two aggregations concurrently. Both queries carry
// the caller's scope, so neither side can leak cross-territory data.
func (s *Service) Overview(ctx context.Context, caller httpkit.Identity) (Overview, error) {
	var overview Overview

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := s.deals.Pipeline(gctx, caller, dealstransport.PipelineRequest{})
		if err != nil {
			return err
		}
		overview.Pipeline = summary
		return nil
	})
	g.Go(func() error {
		rows, err := s.dealerships.ListForStatusSummary(gctx, scopeFor(caller))
		if err != nil {
			return err
		}
		dealerships := make([]statuses.Dealership, 0, len(rows))
		for _, row := range rows {
			dealerships = append(dealerships, statuses.Dealership{
				Status:       dealershipdomain.Status(row.Status),
				MonthlyValue: row.MonthlyValue,
			})
		}
		overview.Dealerships = statuses.Aggregate(dealerships)
		return nil
	})

	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	return overview, nil
}

func scopeFor(caller httpkit.Identity) *dealershiprepo.Scope {
	if caller.IsAdmin() {
		return nil
	}
	return &dealershiprepo.Scope{
		UserID:      caller.UserID(),
		TerritoryID: caller.TerritoryID(),
	}
}
