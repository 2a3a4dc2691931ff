package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/seanmc2314/sarah-ai-sales-sub001/internal/social/transport"
	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/logger"
)

type fakeDrafter struct {
	prompt string
	reply  string
	err    error
}

func (f *fakeDrafter) GenerateText(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func TestDraftWithoutDrafterReturnsDisabled(t *testing.T) {
	svc := New(nil, nil, logger.New("development"))

	_, err := svc.Draft(context.Background(), transport.DraftPostRequest{Topic: "new dealership onboarding"})
	if !errors.Is(err, ErrDraftingDisabled) {
		t.Fatalf("err = %v, want ErrDraftingDisabled", err)
	}
}

func TestDraftPromptIncludesTopicAndPlatform(t *testing.T) {
	drafter := &fakeDrafter{reply: "  Excited to share...  "}
	svc := New(nil, drafter, logger.New("development"))

	resp, err := svc.Draft(context.Background(), transport.DraftPostRequest{
		Topic:    "dealership inventory insights",
		Platform: "TWITTER",
		Tone:     "casual",
	})
	if err != nil {
		t.Fatalf("Draft: %v", err)
	}

	if resp.Content != "Excited to share..." {
		t.Errorf("content = %q, want trimmed reply", resp.Content)
	}
	for _, want := range []string{"dealership inventory insights", "TWITTER", "casual"} {
		if !strings.Contains(drafter.prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, drafter.prompt)
		}
	}
}

func TestDraftDefaultsToLinkedIn(t *testing.T) {
	drafter := &fakeDrafter{reply: "post"}
	svc := New(nil, drafter, logger.New("development"))

	if _, err := svc.Draft(context.Background(), transport.DraftPostRequest{Topic: "quarterly wins"}); err != nil {
		t.Fatalf("Draft: %v", err)
	}
	if !strings.Contains(drafter.prompt, "LINKEDIN") {
		t.Errorf("prompt missing default platform:\n%s", drafter.prompt)
	}
	if !strings.Contains(drafter.prompt, "professional") {
		t.Errorf("prompt missing default tone:\n%s", drafter.prompt)
	}
}

func TestDraftSurfacesGenerationErrors(t *testing.T) {
	drafter := &fakeDrafter{err: errors.New("model overloaded")}
	svc := New(nil, drafter, logger.New("development"))

	_, err := svc.Draft(context.Background(), transport.DraftPostRequest{Topic: "anything"})
	if err == nil || !strings.Contains(err.Error(), "model overloaded") {
		t.Fatalf("err = %v, want wrapped generation error", err)
	}
}
