package domain

import "testing"

func TestDefaultProbabilities(t *testing.T) {
	tests := []struct {
		stage Stage
		want  int
	}{
		{StageLead, 10},
		{StageQualified, 25},
		{StageMeetingScheduled, 40},
		{StageProposalSent, 60},
		{StageNegotiation, 80},
		{StageClosedWon, 100},
		{StageClosedLost, 0},
	}

	for _, tt := range tests {
		if got := tt.stage.DefaultProbability(); got != tt.want {
			t.Errorf("DefaultProbability(%s) = %d, want %d", tt.stage, got, tt.want)
		}
	}
}

func TestUnknownStageProbabilityIsZero(t *testing.T) {
	if got := Stage("DISCOVERY").DefaultProbability(); got != 0 {
		t.Errorf("DefaultProbability(DISCOVERY) = %d, want 0", got)
	}
}

func TestPipelineOrderCoversAllStages(t *testing.T) {
	if len(PipelineOrder) != len(defaultProbabilities) {
		t.Fatalf("PipelineOrder has %d stages, probability table has %d", len(PipelineOrder), len(defaultProbabilities))
	}
	seen := map[Stage]bool{}
	for _, stage := range PipelineOrder {
		if !stage.IsValid() {
			t.Errorf("PipelineOrder contains unknown stage %q", stage)
		}
		if seen[stage] {
			t.Errorf("PipelineOrder contains %q twice", stage)
		}
		seen[stage] = true
	}
}

func TestIsClosed(t *testing.T) {
	for _, stage := range PipelineOrder {
		want := stage == StageClosedWon || stage == StageClosedLost
		if got := stage.IsClosed(); got != want {
			t.Errorf("IsClosed(%s) = %v, want %v", stage, got, want)
		}
	}
}
