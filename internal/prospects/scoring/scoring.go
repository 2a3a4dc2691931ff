// Package scoring computes the 0-100 lead score for a prospect from profile,
// title, company, industry, and engagement signals. The computation is a pure
// function of its inputs; persistence is the caller's concern.
package scoring

import "strings"

// Interaction types that count as engagement signals.
const (
	InteractionEmail              = "EMAIL"
	InteractionCall               = "CALL"
	InteractionLinkedInMessage    = "LINKEDIN_MESSAGE"
	InteractionLinkedInConnection = "LINKEDIN_CONNECTION"
	InteractionMeeting            = "MEETING"
	InteractionNote               = "NOTE"
)

// Bucket maximums. These are frozen business constants; changing them changes
// every stored score's meaning.
const (
	MaxProfile    = 20
	MaxTitle      = 25
	MaxCompany    = 15
	MaxIndustry   = 10
	MaxEngagement = 20
	MaxEnrichment = 10
)

// Input is a snapshot of the prospect fields and engagement history the score
// is derived from. Empty strings and nil pointers mean "absent" and simply
// contribute nothing.
type Input struct {
	Email       string
	Phone       string
	LinkedInURL string
	Position    string
	Company     string
	Industry    string

	EmployeeCount       *int
	Enriched            bool
	LinkedInConnections *int

	InteractionTypes []string
	AppointmentCount int
}

// BucketResult reports one bucket's contribution and the evidence behind it.
type BucketResult struct {
	Earned   int      `json:"earned"`
	Max      int      `json:"max"`
	Evidence []string `json:"evidence,omitempty"`
}

// Breakdown explains how the total score was assembled.
type Breakdown struct {
	ProfileCompleteness BucketResult `json:"profileCompleteness"`
	TitleSeniority      BucketResult `json:"titleSeniority"`
	CompanySize         BucketResult `json:"companySize"`
	IndustryFit         BucketResult `json:"industryFit"`
	Engagement          BucketResult `json:"engagement"`
	Enrichment          BucketResult `json:"enrichment"`
}

// Result is the scored outcome.
type Result struct {
	Score     int       `json:"score"`
	Breakdown Breakdown `json:"breakdown"`
}

// titleTiers are checked in order; the first tier with a matching substring
// wins, so a combined title never sums multiple tiers.
var titleTiers = []struct {
	points   int
	keywords []string
	label    string
}{
	{25, []string{"owner", "president", "ceo"}, "owner/president/ceo"},
	{20, []string{"gm", "general manager", "director"}, "gm/director"},
	{15, []string{"f&i", "finance", "manager"}, "finance/manager"},
	{10, []string{"sales"}, "sales"},
}

// Score computes the lead score and its breakdown.
func Score(input Input) Result {
	breakdown := Breakdown{
		ProfileCompleteness: scoreProfile(input),
		TitleSeniority:      scoreTitle(input.Position),
		CompanySize:         scoreCompanySize(input.EmployeeCount),
		IndustryFit:         scoreIndustryFit(input.Position, input.Industry),
		Engagement:          scoreEngagement(input.InteractionTypes, input.AppointmentCount),
		Enrichment:          scoreEnrichment(input.Enriched, input.LinkedInConnections),
	}

	total := breakdown.ProfileCompleteness.Earned +
		breakdown.TitleSeniority.Earned +
		breakdown.CompanySize.Earned +
		breakdown.IndustryFit.Earned +
		breakdown.Engagement.Earned +
		breakdown.Enrichment.Earned

	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}

	return Result{Score: total, Breakdown: breakdown}
}

func scoreProfile(input Input) BucketResult {
	result := BucketResult{Max: MaxProfile}

	add := func(points int, field string) {
		result.Earned += points
		result.Evidence = append(result.Evidence, field)
	}

	if strings.TrimSpace(input.Email) != "" {
		add(5, "email")
	}
	if strings.TrimSpace(input.Phone) != "" {
		add(5, "phone")
	}
	if strings.TrimSpace(input.LinkedInURL) != "" {
		add(5, "linkedinUrl")
	}
	if strings.TrimSpace(input.Position) != "" {
		add(3, "position")
	}
	if strings.TrimSpace(input.Company) != "" {
		add(2, "company")
	}

	return result
}

func scoreTitle(position string) BucketResult {
	result := BucketResult{Max: MaxTitle}

	normalized := strings.ToLower(strings.TrimSpace(position))
	if normalized == "" {
		return result
	}

	for _, tier := range titleTiers {
		for _, keyword := range tier.keywords {
			if strings.Contains(normalized, keyword) {
				result.Earned = tier.points
				result.Evidence = []string{tier.label}
				return result
			}
		}
	}

	return result
}

func scoreCompanySize(employeeCount *int) BucketResult {
	result := BucketResult{Max: MaxCompany}
	if employeeCount == nil {
		return result
	}

	count := *employeeCount
	switch {
	case count > 100:
		result.Earned = 15
	case count > 50:
		result.Earned = 12
	case count > 20:
		result.Earned = 10
	case count > 10:
		result.Earned = 7
	default:
		result.Earned = 5
	}
	result.Evidence = []string{"employeeCount"}

	return result
}

func scoreIndustryFit(position, industry string) BucketResult {
	result := BucketResult{Max: MaxIndustry}

	text := strings.ToLower(position + " " + industry)
	switch {
	case strings.Contains(text, "automotive"), strings.Contains(text, "auto"), strings.Contains(text, "dealer"):
		result.Earned = 10
		result.Evidence = []string{"automotive"}
	case strings.Contains(text, "retail"), strings.Contains(text, "sales"):
		result.Earned = 5
		result.Evidence = []string{"retail/sales"}
	}

	return result
}

func scoreEngagement(interactionTypes []string, appointmentCount int) BucketResult {
	result := BucketResult{Max: MaxEngagement}

	emailCount := 0
	linkedinCount := 0
	for _, interactionType := range interactionTypes {
		switch interactionType {
		case InteractionEmail:
			emailCount++
		case InteractionLinkedInMessage, InteractionLinkedInConnection:
			linkedinCount++
		}
	}

	if emailCount >= 1 {
		result.Earned += 5
		result.Evidence = append(result.Evidence, "email interaction")
	}
	if emailCount > 2 {
		result.Earned += 5
		result.Evidence = append(result.Evidence, "repeated email engagement")
	}
	if linkedinCount >= 1 {
		result.Earned += 5
		result.Evidence = append(result.Evidence, "linkedin interaction")
	}
	if appointmentCount >= 1 {
		result.Earned += 5
		result.Evidence = append(result.Evidence, "appointment set")
	}

	return result
}

func scoreEnrichment(enriched bool, connections *int) BucketResult {
	result := BucketResult{Max: MaxEnrichment}

	if enriched {
		result.Earned += 5
		result.Evidence = append(result.Evidence, "enriched")
	}

	if connections != nil {
		switch {
		case *connections > 500:
			result.Earned += 5
			result.Evidence = append(result.Evidence, "500+ connections")
		case *connections > 200:
			result.Earned += 3
			result.Evidence = append(result.Evidence, "200+ connections")
		}
	}

	return result
}
