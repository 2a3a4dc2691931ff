// Package domain holds the deal stage model shared by the deals module and
// the dashboard.
package domain

// Stage is a deal's position in the sales pipeline.
type Stage string

const (
	StageLead             Stage = "LEAD"
	StageQualified        Stage = "QUALIFIED"
	StageMeetingScheduled Stage = "MEETING_SCHEDULED"
	StageProposalSent     Stage = "PROPOSAL_SENT"
	StageNegotiation      Stage = "NEGOTIATION"
	StageClosedWon        Stage = "CLOSED_WON"
	StageClosedLost       Stage = "CLOSED_LOST"
)

// PipelineOrder lists every stage in funnel order.
var PipelineOrder = []Stage{
	StageLead,
	StageQualified,
	StageMeetingScheduled,
	StageProposalSent,
	StageNegotiation,
	StageClosedWon,
	StageClosedLost,
}

// OpenStages lists the non-terminal stages in funnel order. Pipeline reports
// emit a bucket for each of these even when no deal sits in it; closed deals
// show up in the totals and win rate instead.
var OpenStages = []Stage{
	StageLead,
	StageQualified,
	StageMeetingScheduled,
	StageProposalSent,
	StageNegotiation,
}

// defaultProbabilities maps each stage to its close probability in percent.
// Applied when a deal enters a stage without an explicit probability.
var defaultProbabilities = map[Stage]int{
	StageLead:             10,
	StageQualified:        25,
	StageMeetingScheduled: 40,
	StageProposalSent:     60,
	StageNegotiation:      80,
	StageClosedWon:        100,
	StageClosedLost:       0,
}

// IsValid reports whether s is one of the known pipeline stages.
func (s Stage) IsValid() bool {
	_, ok := defaultProbabilities[s]
	return ok
}

// IsClosed reports whether the stage is terminal.
func (s Stage) IsClosed() bool {
	return s == StageClosedWon || s == StageClosedLost
}

// DefaultProbability returns the close probability for the stage. Unknown
// stages get 0.
func (s Stage) DefaultProbability() int {
	return defaultProbabilities[s]
}
