// Package enrichment fills in missing prospect firmographics using Gemini.
package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/prospects/repository"
	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/prospects/service"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/ai/gemini"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/logger"
)

type Enricher struct {
	ai  *gemini.Client
	log *logger.Logger
}

func New(ai *gemini.Client, log *logger.Logger) *Enricher {
	return &Enricher{ai: ai, log: log}
}

// payload is the JSON shape we ask the model to produce. Fields the model
// cannot infer are expected to be null.
type payload struct {
	Company             *string `json:"company"`
	Industry            *string `json:"industry"`
	EmployeeCount       *int    `json:"employee_count"`
	LinkedInConnections *int    `json:"linkedin_connections"`
	Summary             string  `json:"summary"`
}

func (e *Enricher) EnrichProspect(ctx context.Context, prospect repository.Prospect) (service.EnrichmentResult, error) {
	raw, err := e.ai.GenerateJSON(ctx, buildPrompt(prospect))
	if err != nil {
		return service.EnrichmentResult{}, fmt.Errorf("enrich prospect: %w", err)
	}

	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return service.EnrichmentResult{}, fmt.Errorf("enrich prospect: parse response: %w", err)
	}

	result := service.EnrichmentResult{
		Industry:            cleanString(p.Industry),
		Company:             cleanString(p.Company),
		EmployeeCount:       cleanCount(p.EmployeeCount),
		LinkedInConnections: cleanCount(p.LinkedInConnections),
		Summary:             strings.TrimSpace(p.Summary),
	}

	e.log.Info("prospect enriched",
		"prospect_id", prospect.ID,
		"company_found", result.Company != nil,
		"industry_found", result.Industry != nil,
	)
	return result, nil
}

func buildPrompt(p repository.Prospect) string {
	var b strings.Builder
	b.WriteString("You are a B2B sales research assistant. Based on the prospect details below, ")
	b.WriteString("infer the most likely company name, industry, employee count, and LinkedIn connection ")
	b.WriteString("count, plus a one-paragraph summary for a sales rep. Respond with a JSON object with ")
	b.WriteString(`keys "company", "industry", "employee_count", "linkedin_connections" and "summary". `)
	b.WriteString("Use null for anything you cannot infer. Do not invent specifics.\n\n")

	writeField := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, value)
		}
	}
	writeField("Name", strings.TrimSpace(p.FirstName+" "+p.LastName))
	writeField("Email", deref(p.Email))
	writeField("Company", deref(p.Company))
	writeField("Position", deref(p.Position))
	writeField("Industry", deref(p.Industry))
	writeField("LinkedIn", deref(p.LinkedInURL))
	return b.String()
}

func cleanString(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func cleanCount(value *int) *int {
	if value == nil || *value < 0 {
		return nil
	}
	return value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
