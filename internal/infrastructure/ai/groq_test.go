package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/candipilot/candipilot-api/internal/core/domain"
	"github.com/candipilot/candipilot-api/internal/core/ports"
)

func TestGenerator_UnconfiguredKey(t *testing.T) {
	g := NewGenerator("", "", zerolog.Nop())

	_, err := g.GenerateFollowupEmail(context.Background(), "Acme", "Dev", nil, ports.ToneNeutral)
	if !errors.Is(err, domain.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestAppliedPhrase(t *testing.T) {
	if got := appliedPhrase(nil); got != "récemment" {
		t.Errorf("expected récemment, got %q", got)
	}

	d := time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)
	if got := appliedPhrase(&d); got != "le 2 janvier 2025" {
		t.Errorf("expected long French date, got %q", got)
	}

	aug := time.Date(2024, time.August, 15, 0, 0, 0, 0, time.UTC)
	if got := frLongDate(aug); got != "15 août 2024" {
		t.Errorf("unexpected date rendering: %q", got)
	}
}

func TestTonePrompts_AllTonesCovered(t *testing.T) {
	for _, tone := range []ports.FollowupTone{ports.ToneFormal, ports.ToneNeutral, ports.ToneShort} {
		if _, ok := tonePrompts[tone]; !ok {
			t.Errorf("missing directive for tone %s", tone)
		}
	}
}
