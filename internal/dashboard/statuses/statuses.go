// Package statuses computes dealership status summaries for the dashboard.
// The aggregation is pure; role scoping happens in the query that feeds it.
package statuses

import (
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/dealerships/domain"
)

// Dealership is the slice of a dealership the aggregation needs.
type Dealership struct {
	Status       domain.Status
	MonthlyValue float64
}

// Bucket summarizes the dealerships in one status.
type Bucket struct {
	Status string  `json:"status"`
	Count  int     `json:"count"`
	Value  float64 `json:"value"`
}

// Summary is the full status report.
type Summary struct {
	Statuses []Bucket `json:"statuses"`
	// Totals cover every dealership, including any with a status outside
	// the known lifecycle.
	TotalDealerships  int     `json:"totalDealerships"`
	TotalMonthlyValue float64 `json:"totalMonthlyValue"`
	// ActiveMonthlyValue sums monthly value over ACTIVE_CUSTOMER accounts.
	ActiveMonthlyValue float64 `json:"activeMonthlyValue"`
}

// Aggregate builds a Summary. Every known status appears in Statuses in
// lifecycle order, with zero counts for empty statuses. Unknown statuses are
// excluded from the buckets but still counted in the totals.
func Aggregate(dealerships []Dealership) Summary {
	byStatus := make(map[domain.Status]*Bucket, len(domain.FunnelOrder))
	buckets := make([]Bucket, len(domain.FunnelOrder))
	for i, status := range domain.FunnelOrder {
		buckets[i] = Bucket{Status: string(status)}
		byStatus[status] = &buckets[i]
	}

	summary := Summary{}
	for _, d := range dealerships {
		summary.TotalDealerships++
		summary.TotalMonthlyValue += d.MonthlyValue
		if d.Status == domain.StatusActiveCustomer {
			summary.ActiveMonthlyValue += d.MonthlyValue
		}

		if bucket, ok := byStatus[d.Status]; ok {
			bucket.Count++
			bucket.Value += d.MonthlyValue
		}
	}

	summary.Statuses = buckets
	return summary
}
