// Package domain holds the dealership status model.
package domain

// Status is a dealership's position in the account lifecycle.
type Status string

const (
	StatusProspect         Status = "PROSPECT"
	StatusQualified        Status = "QUALIFIED"
	StatusMeetingScheduled Status = "MEETING_SCHEDULED"
	StatusProposalSent     Status = "PROPOSAL_SENT"
	StatusNegotiation      Status = "NEGOTIATION"
	StatusActiveCustomer   Status = "ACTIVE_CUSTOMER"
	StatusChurned          Status = "CHURNED"
)

// FunnelOrder lists every status in lifecycle order. Status summaries emit a
// bucket for each of these even when no dealership sits in it.
var FunnelOrder = []Status{
	StatusProspect,
	StatusQualified,
	StatusMeetingScheduled,
	StatusProposalSent,
	StatusNegotiation,
	StatusActiveCustomer,
	StatusChurned,
}

var valid = map[Status]bool{
	StatusProspect:         true,
	StatusQualified:        true,
	StatusMeetingScheduled: true,
	StatusProposalSent:     true,
	StatusNegotiation:      true,
	StatusActiveCustomer:   true,
	StatusChurned:          true,
}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	return valid[s]
}

// ActivatesLive reports whether entering this status makes the dealership a
// live customer.
func (s Status) ActivatesLive() bool {
	return s == StatusActiveCustomer
}

// LiveTransition resolves the live-flag outcome of moving a dealership with
// the given live state into a new status. wentLive is true only on the first
// transition into a live-activating status; re-entering it changes nothing,
// and leaving it (e.g. to CHURNED) never clears the flag or its timestamp.
func LiveTransition(wasLive bool, to Status) (isLive, wentLive bool) {
	if !to.ActivatesLive() {
		return wasLive, false
	}
	return true, !wasLive
}
