package scoring

import (
	"reflect"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestScoreEmptyProspect(t *testing.T) {
	result := Score(Input{})
	if result.Score != 0 {
		t.Fatalf("expected score 0 for empty prospect, got %d", result.Score)
	}
}

func TestScoreBounds(t *testing.T) {
	// Every signal maxed out must still clamp inside [0,100].
	full := Input{
		Email:               "owner@megadealer.com",
		Phone:               "+14155550101",
		LinkedInURL:         "https://linkedin.com/in/owner",
		Position:            "Owner",
		Company:             "Mega Auto Group",
		Industry:            "Automotive",
		EmployeeCount:       intPtr(500),
		Enriched:            true,
		LinkedInConnections: intPtr(900),
		InteractionTypes: []string{
			InteractionEmail, InteractionEmail, InteractionEmail,
			InteractionLinkedInMessage,
		},
		AppointmentCount: 2,
	}

	result := Score(full)
	if result.Score < 0 || result.Score > 100 {
		t.Fatalf("score out of bounds: %d", result.Score)
	}
	if result.Score != 100 {
		t.Fatalf("expected fully signaled prospect to score 100, got %d", result.Score)
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	input := Input{
		Email:            "gm@store.com",
		Position:         "General Manager",
		Industry:         "retail",
		EmployeeCount:    intPtr(35),
		InteractionTypes: []string{InteractionEmail},
	}

	first := Score(input)
	second := Score(input)

	if first.Score != second.Score {
		t.Fatalf("score not deterministic: %d vs %d", first.Score, second.Score)
	}
	if !reflect.DeepEqual(first.Breakdown, second.Breakdown) {
		t.Fatalf("breakdown not deterministic")
	}
}

func TestTitleTierPicksHighestMatchOnly(t *testing.T) {
	// A combined title matches the top tier and never sums tiers.
	result := Score(Input{Position: "Owner and General Manager"})
	if result.Breakdown.TitleSeniority.Earned != 25 {
		t.Fatalf("expected title bucket 25, got %d", result.Breakdown.TitleSeniority.Earned)
	}
}

func TestTitleTiers(t *testing.T) {
	cases := []struct {
		position string
		want     int
	}{
		{"CEO", 25},
		{"President of Operations", 25},
		{"General Manager", 20},
		{"Sales Director", 20},
		{"F&I Manager", 15},
		{"Finance Specialist", 15},
		{"Sales Associate", 10},
		{"Receptionist", 0},
		{"", 0},
	}

	for _, tc := range cases {
		result := Score(Input{Position: tc.position})
		if got := result.Breakdown.TitleSeniority.Earned; got != tc.want {
			t.Errorf("title %q: expected %d, got %d", tc.position, tc.want, got)
		}
	}
}

func TestCompanySizeBrackets(t *testing.T) {
	cases := []struct {
		count *int
		want  int
	}{
		{intPtr(150), 15},
		{intPtr(75), 12},
		{intPtr(30), 10},
		{intPtr(15), 7},
		{intPtr(5), 5},
		{intPtr(0), 5},
		{nil, 0},
	}

	for _, tc := range cases {
		result := Score(Input{EmployeeCount: tc.count})
		if got := result.Breakdown.CompanySize.Earned; got != tc.want {
			t.Errorf("employeeCount %v: expected %d, got %d", tc.count, tc.want, got)
		}
	}
}

func TestIndustryFit(t *testing.T) {
	cases := []struct {
		position string
		industry string
		want     int
	}{
		{"", "Automotive", 10},
		{"Dealer Principal", "", 10},
		{"", "Retail", 5},
		{"Sales Rep", "", 5},
		{"", "Healthcare", 0},
	}

	for _, tc := range cases {
		result := Score(Input{Position: tc.position, Industry: tc.industry})
		if got := result.Breakdown.IndustryFit.Earned; got != tc.want {
			t.Errorf("position=%q industry=%q: expected %d, got %d", tc.position, tc.industry, tc.want, got)
		}
	}
}

func TestEngagementBuckets(t *testing.T) {
	// One email interaction earns 5; more than two earns the extra 5.
	one := Score(Input{InteractionTypes: []string{InteractionEmail}})
	if one.Breakdown.Engagement.Earned != 5 {
		t.Fatalf("expected 5 for one email, got %d", one.Breakdown.Engagement.Earned)
	}

	three := Score(Input{InteractionTypes: []string{InteractionEmail, InteractionEmail, InteractionEmail}})
	if three.Breakdown.Engagement.Earned != 10 {
		t.Fatalf("expected 10 for three emails, got %d", three.Breakdown.Engagement.Earned)
	}

	// Calls and notes are not engagement signals for this bucket.
	noise := Score(Input{InteractionTypes: []string{InteractionCall, InteractionNote}})
	if noise.Breakdown.Engagement.Earned != 0 {
		t.Fatalf("expected 0 for call/note only, got %d", noise.Breakdown.Engagement.Earned)
	}

	appt := Score(Input{AppointmentCount: 1, InteractionTypes: []string{InteractionLinkedInConnection}})
	if appt.Breakdown.Engagement.Earned != 10 {
		t.Fatalf("expected 10 for linkedin + appointment, got %d", appt.Breakdown.Engagement.Earned)
	}
}

func TestEnrichmentConnectionsTiers(t *testing.T) {
	high := Score(Input{Enriched: true, LinkedInConnections: intPtr(600)})
	if high.Breakdown.Enrichment.Earned != 10 {
		t.Fatalf("expected 10 for enriched + 600 connections, got %d", high.Breakdown.Enrichment.Earned)
	}

	mid := Score(Input{LinkedInConnections: intPtr(300)})
	if mid.Breakdown.Enrichment.Earned != 3 {
		t.Fatalf("expected 3 for 300 connections, got %d", mid.Breakdown.Enrichment.Earned)
	}

	low := Score(Input{LinkedInConnections: intPtr(100)})
	if low.Breakdown.Enrichment.Earned != 0 {
		t.Fatalf("expected 0 for 100 connections, got %d", low.Breakdown.Enrichment.Earned)
	}
}

func TestBreakdownReportsMaxPerBucket(t *testing.T) {
	result := Score(Input{})
	b := result.Breakdown

	checks := []struct {
		name string
		got  int
		want int
	}{
		{"profile", b.ProfileCompleteness.Max, MaxProfile},
		{"title", b.TitleSeniority.Max, MaxTitle},
		{"company", b.CompanySize.Max, MaxCompany},
		{"industry", b.IndustryFit.Max, MaxIndustry},
		{"engagement", b.Engagement.Max, MaxEngagement},
		{"enrichment", b.Enrichment.Max, MaxEnrichment},
	}

	for _, check := range checks {
		if check.got != check.want {
			t.Errorf("%s bucket max: expected %d, got %d", check.name, check.want, check.got)
		}
	}
}
