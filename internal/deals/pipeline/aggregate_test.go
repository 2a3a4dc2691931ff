package pipeline

import (
	"testing"

	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/deals/domain"

	"github.com/google/uuid"
)

func TestAggregateEmptyPipeline(t *testing.T) {
	summary := Aggregate(nil)

	if len(summary.Stages) != len(domain.OpenStages) {
		t.Fatalf("got %d stage buckets, want %d", len(summary.Stages), len(domain.OpenStages))
	}
	for i, bucket := range summary.Stages {
		if bucket.Stage != string(domain.OpenStages[i]) {
			t.Errorf("bucket %d is %s, want %s", i, bucket.Stage, domain.OpenStages[i])
		}
		if bucket.Count != 0 || bucket.Value != 0 {
			t.Errorf("empty pipeline bucket %s has count=%d value=%v", bucket.Stage, bucket.Count, bucket.Value)
		}
	}
	if summary.TotalDeals != 0 || summary.TotalValue != 0 || summary.WeightedValue != 0 || summary.WinRate != 0 {
		t.Errorf("empty pipeline totals not zero: %+v", summary)
	}
}

func TestAggregateGroupsByStage(t *testing.T) {
	summary := Aggregate([]Deal{
		{Stage: domain.StageLead, Value: 1000, Probability: 10},
		{Stage: domain.StageLead, Value: 500, Probability: 10},
		{Stage: domain.StageNegotiation, Value: 2000, Probability: 80},
		{Stage: domain.StageClosedWon, Value: 3000, Probability: 100},
	})

	byStage := map[string]StageBucket{}
	for _, bucket := range summary.Stages {
		byStage[bucket.Stage] = bucket
	}

	if got := byStage["LEAD"]; got.Count != 2 || got.Value != 1500 {
		t.Errorf("LEAD bucket = %+v, want count=2 value=1500", got)
	}
	if got := byStage["NEGOTIATION"]; got.Count != 1 || got.Value != 2000 {
		t.Errorf("NEGOTIATION bucket = %+v, want count=1 value=2000", got)
	}
	if got := byStage["QUALIFIED"]; got.Count != 0 {
		t.Errorf("QUALIFIED bucket = %+v, want empty", got)
	}
	if _, ok := byStage["CLOSED_WON"]; ok {
		t.Error("closed stages should not appear as pipeline buckets")
	}
	if summary.TotalDeals != 4 {
		t.Errorf("TotalDeals = %d, want 4", summary.TotalDeals)
	}
	if summary.TotalValue != 6500 {
		t.Errorf("TotalValue = %v, want 6500", summary.TotalValue)
	}
}

func TestAggregateBucketsCarryTheirDeals(t *testing.T) {
	leadA := Deal{ID: uuid.New(), Title: "Acme Motors training", Stage: domain.StageLead, Value: 1000, Probability: 10}
	leadB := Deal{ID: uuid.New(), Title: "Summit Auto onboarding", Stage: domain.StageLead, Value: 500, Probability: 10}
	won := Deal{ID: uuid.New(), Title: "Closed program", Stage: domain.StageClosedWon, Value: 3000, Probability: 100}

	summary := Aggregate([]Deal{leadA, won, leadB})

	var lead StageBucket
	for _, bucket := range summary.Stages {
		if bucket.Stage == "LEAD" {
			lead = bucket
		}
		for _, deal := range bucket.Deals {
			if deal.ID == won.ID {
				t.Errorf("closed deal %q appears in bucket %s", deal.Title, bucket.Stage)
			}
		}
	}

	if len(lead.Deals) != 2 {
		t.Fatalf("LEAD bucket holds %d deals, want 2", len(lead.Deals))
	}
	if lead.Deals[0].ID != leadA.ID || lead.Deals[1].ID != leadB.ID {
		t.Errorf("LEAD bucket deals out of input order: %+v", lead.Deals)
	}
	if lead.Deals[0].Title != "Acme Motors training" {
		t.Errorf("bucket deal title = %q, want full deal summary retained", lead.Deals[0].Title)
	}
}

func TestAggregateWeightedValue(t *testing.T) {
	// 1000*50% + 2000*25% = 1000
	summary := Aggregate([]Deal{
		{Stage: domain.StageLead, Value: 1000, Probability: 50},
		{Stage: domain.StageQualified, Value: 2000, Probability: 25},
	})

	if summary.WeightedValue != 1000 {
		t.Errorf("WeightedValue = %v, want 1000", summary.WeightedValue)
	}
}

func TestAggregateWeightedValueExcludesClosedDeals(t *testing.T) {
	summary := Aggregate([]Deal{
		{Stage: domain.StageNegotiation, Value: 1000, Probability: 80},
		{Stage: domain.StageClosedWon, Value: 5000, Probability: 100},
		{Stage: domain.StageClosedLost, Value: 3000, Probability: 0},
	})

	if summary.WeightedValue != 800 {
		t.Errorf("WeightedValue = %v, want 800", summary.WeightedValue)
	}
}

func TestAggregateUnknownStageCountsInTotalsOnly(t *testing.T) {
	summary := Aggregate([]Deal{
		{Stage: domain.Stage("DISCOVERY"), Value: 900, Probability: 50},
		{Stage: domain.StageLead, Value: 100, Probability: 10},
	})

	if summary.TotalDeals != 2 {
		t.Errorf("TotalDeals = %d, want 2", summary.TotalDeals)
	}
	if summary.TotalValue != 1000 {
		t.Errorf("TotalValue = %v, want 1000", summary.TotalValue)
	}

	var bucketed int
	for _, bucket := range summary.Stages {
		bucketed += bucket.Count
	}
	if bucketed != 1 {
		t.Errorf("stage buckets hold %d deals, want 1", bucketed)
	}
}

func TestWinRate(t *testing.T) {
	tests := []struct {
		won, lost int
		want      float64
	}{
		{0, 0, 0},
		{3, 1, 75},
		{1, 2, 33.3},
		{2, 1, 66.7},
		{5, 0, 100},
		{0, 4, 0},
	}

	for _, tt := range tests {
		if got := WinRate(tt.won, tt.lost); got != tt.want {
			t.Errorf("WinRate(%d, %d) = %v, want %v", tt.won, tt.lost, got, tt.want)
		}
	}
}
