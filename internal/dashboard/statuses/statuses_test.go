package statuses

import (
	"testing"

	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/dealerships/domain"
)

func TestAggregateEmitsEveryStatus(t *testing.T) {
	summary := Aggregate(nil)

	if len(summary.Statuses) != len(domain.FunnelOrder) {
		t.Fatalf("got %d buckets, want %d", len(summary.Statuses), len(domain.FunnelOrder))
	}
	for i, bucket := range summary.Statuses {
		if bucket.Status != string(domain.FunnelOrder[i]) {
			t.Errorf("bucket %d is %s, want %s", i, bucket.Status, domain.FunnelOrder[i])
		}
		if bucket.Count != 0 || bucket.Value != 0 {
			t.Errorf("empty bucket %s has count=%d value=%v", bucket.Status, bucket.Count, bucket.Value)
		}
	}
}

func TestAggregateGroupsByStatus(t *testing.T) {
	summary := Aggregate([]Dealership{
		{Status: domain.StatusProspect, MonthlyValue: 0},
		{Status: domain.StatusProspect, MonthlyValue: 0},
		{Status: domain.StatusActiveCustomer, MonthlyValue: 1500},
		{Status: domain.StatusActiveCustomer, MonthlyValue: 2500},
		{Status: domain.StatusChurned, MonthlyValue: 900},
	})

	byStatus := map[string]Bucket{}
	for _, bucket := range summary.Statuses {
		byStatus[bucket.Status] = bucket
	}

	if got := byStatus["PROSPECT"]; got.Count != 2 {
		t.Errorf("PROSPECT bucket = %+v, want count=2", got)
	}
	if got := byStatus["ACTIVE_CUSTOMER"]; got.Count != 2 || got.Value != 4000 {
		t.Errorf("ACTIVE_CUSTOMER bucket = %+v, want count=2 value=4000", got)
	}
	if summary.TotalDealerships != 5 {
		t.Errorf("TotalDealerships = %d, want 5", summary.TotalDealerships)
	}
	if summary.ActiveMonthlyValue != 4000 {
		t.Errorf("ActiveMonthlyValue = %v, want 4000", summary.ActiveMonthlyValue)
	}
}

func TestAggregateUnknownStatusCountsInTotalsOnly(t *testing.T) {
	summary := Aggregate([]Dealership{
		{Status: domain.Status("LEGACY"), MonthlyValue: 100},
		{Status: domain.StatusProspect, MonthlyValue: 0},
	})

	if summary.TotalDealerships != 2 {
		t.Errorf("TotalDealerships = %d, want 2", summary.TotalDealerships)
	}
	if summary.TotalMonthlyValue != 100 {
		t.Errorf("TotalMonthlyValue = %v, want 100", summary.TotalMonthlyValue)
	}

	var bucketed int
	for _, bucket := range summary.Statuses {
		bucketed += bucket.Count
	}
	if bucketed != 1 {
		t.Errorf("status buckets hold %d dealerships, want 1", bucketed)
	}
}
