package ports

import (
	"context"
	"time"
)

// FollowupTone selects the style and length directive of a generated email.
type FollowupTone string

const (
	ToneFormal  FollowupTone = "formal"
	ToneNeutral FollowupTone = "neutral"
	ToneShort   FollowupTone = "short"
)

// GenerateFollowupInput carries everything needed to generate one follow-up
// email for the given user's application.
type GenerateFollowupInput struct {
	UserID    string
	Company   string
	Role      string
	AppliedAt *time.Time
	Tone      FollowupTone
}

// FollowupResult is returned after a successful generation. Remaining is
// domain.UnlimitedRemaining for pro accounts.
type FollowupResult struct {
	Email     string
	Remaining int
	Limit     int
	IsPro     bool
}

// FollowupService generates AI follow-up emails under the monthly quota.
type FollowupService interface {
	Generate(ctx context.Context, input GenerateFollowupInput) (*FollowupResult, error)
}

// FollowupGenerator is the external language-model collaborator. The quota
// check must run strictly before this call: it is the costly one.
type FollowupGenerator interface {
	GenerateFollowupEmail(ctx context.Context, company, role string, appliedAt *time.Time, tone FollowupTone) (string, error)
}
