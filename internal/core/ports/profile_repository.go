package ports

import (
	"context"
	"time"

	"github.com/candipilot/candipilot-api/internal/core/domain"
)

// ProfileRepository defines persistence for user profiles, including the
// atomic quota primitives used by the follow-up flow.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	FindByEmail(ctx context.Context, email string) (*domain.Profile, error)

	// ResetAIUsage zeroes the monthly counter and moves the reset anchor.
	ResetAIUsage(ctx context.Context, userID string, anchor time.Time) error

	// ReserveFollowupCredit atomically increments the usage counter if and
	// only if it is currently below limit, returning the new value. When the
	// counter is already at the limit it returns
	// domain.ErrFollowupQuotaExceeded without mutating anything. This single
	// conditional update is what closes the check-then-write race.
	ReserveFollowupCredit(ctx context.Context, userID string, limit int) (int, error)

	// ReleaseFollowupCredit gives back one reserved credit after a failed
	// generation so that a failure never consumes quota.
	ReleaseFollowupCredit(ctx context.Context, userID string) error

	// SetTier updates the subscription tier; a non-empty customerID is stored
	// alongside it (set on checkout completion).
	SetTier(ctx context.Context, userID string, tier domain.Tier, customerID string) error

	// SetTierByCustomer updates the tier of the profile owning the given
	// billing customer id (used by subscription webhooks).
	SetTierByCustomer(ctx context.Context, customerID string, tier domain.Tier) error
}
