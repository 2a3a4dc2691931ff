package domain

import "testing"

func TestFunnelOrderCoversAllValidStatuses(t *testing.T) {
	if len(FunnelOrder) != len(valid) {
		t.Fatalf("FunnelOrder has %d statuses, valid map has %d", len(FunnelOrder), len(valid))
	}
	for _, status := range FunnelOrder {
		if !status.IsValid() {
			t.Errorf("status %q in FunnelOrder is not valid", status)
		}
	}
}

func TestIsValidRejectsUnknownStatus(t *testing.T) {
	if Status("ONBOARDING").IsValid() {
		t.Error("unknown status reported as valid")
	}
	if Status("").IsValid() {
		t.Error("empty status reported as valid")
	}
}

func TestLiveTransition(t *testing.T) {
	tests := []struct {
		name         string
		wasLive      bool
		to           Status
		wantIsLive   bool
		wantWentLive bool
	}{
		{"first activation stamps and announces", false, StatusActiveCustomer, true, true},
		{"re-entering active customer is idempotent", true, StatusActiveCustomer, true, false},
		{"non-activating status keeps dead accounts dead", false, StatusProspect, false, false},
		{"churning a live account keeps the live flag", true, StatusChurned, true, false},
		{"moving a live account through the funnel keeps the flag", true, StatusNegotiation, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isLive, wentLive := LiveTransition(tt.wasLive, tt.to)
			if isLive != tt.wantIsLive {
				t.Errorf("isLive = %v, want %v", isLive, tt.wantIsLive)
			}
			if wentLive != tt.wantWentLive {
				t.Errorf("wentLive = %v, want %v", wentLive, tt.wantWentLive)
			}
		})
	}
}

func TestActivatesLive(t *testing.T) {
	for _, status := range FunnelOrder {
		want := status == StatusActiveCustomer
		if got := status.ActivatesLive(); got != want {
			t.Errorf("%s.ActivatesLive() = %v, want %v", status, got, want)
		}
	}
}
