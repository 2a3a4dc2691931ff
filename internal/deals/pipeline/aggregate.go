// Package pipeline computes pipeline summaries from a set of deals. The
// aggregation is pure; role scoping happens in the query that feeds it.
package pipeline

import (
	"math"

	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/deals/domain"

	"github.com/google/uuid"
)

// Deal is the slice of a deal the aggregation needs.
type Deal struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Stage       domain.Stage `json:"stage"`
	Value       float64      `json:"value"`
	Probability int          `json:"probability"`
}

// StageBucket summarizes the deals sitting in one stage, including the deals
// themselves for pipeline board views.
type StageBucket struct {
	Stage string  `json:"stage"`
	Count int     `json:"count"`
	Value float64 `json:"value"`
	Deals []Deal  `json:"deals"`
}

// Summary is the full pipeline report.
type Summary struct {
	Stages []StageBucket `json:"stages"`
	// TotalDeals and TotalValue cover every deal, including any with a
	// stage outside the known funnel.
	TotalDeals int     `json:"totalDeals"`
	TotalValue float64 `json:"totalValue"`
	// WeightedValue is Σ(value × probability/100) over open deals only.
	WeightedValue float64 `json:"weightedValue"`
	// WinRate is CLOSED_WON over all closed deals, in percent with one
	// decimal. Zero when nothing has closed yet.
	WinRate float64 `json:"winRate"`
}

// Aggregate builds a Summary. Every open stage appears in Stages in funnel
// order, with zero counts for empty stages. Closed and unknown-stage deals
// are excluded from the buckets but still counted in the totals.
func Aggregate(deals []Deal) Summary {
	byStage := make(map[domain.Stage]*StageBucket, len(domain.OpenStages))
	stages := make([]StageBucket, len(domain.OpenStages))
	for i, stage := range domain.OpenStages {
		stages[i] = StageBucket{Stage: string(stage)}
		byStage[stage] = &stages[i]
	}

	summary := Summary{}
	var won, lost int
	for _, deal := range deals {
		summary.TotalDeals++
		summary.TotalValue += deal.Value

		switch deal.Stage {
		case domain.StageClosedWon:
			won++
		case domain.StageClosedLost:
			lost++
		default:
			summary.WeightedValue += deal.Value * float64(deal.Probability) / 100
		}

		if bucket, ok := byStage[deal.Stage]; ok {
			bucket.Count++
			bucket.Value += deal.Value
			bucket.Deals = append(bucket.Deals, deal)
		}
	}

	summary.Stages = stages
	summary.WinRate = WinRate(won, lost)
	return summary
}

// WinRate returns won/(won+lost) as a percentage rounded to one decimal.
// Returns 0 when no deals have closed.
func WinRate(won, lost int) float64 {
	closed := won + lost
	if closed == 0 {
		return 0
	}
	return math.Round(float64(won)/float64(closed)*1000) / 10
}
