package domain

import (
	"errors"
	"time"
)

// Tier is the subscription level gating quotas.
type Tier string

const (
	TierFree Tier = "free"
	TierPro  Tier = "pro"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Profile models an authenticated user and their subscription state.
// The tier field is mutated only by billing webhook events; the AI usage
// counter only by the follow-up quota flow.
type Profile struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	Tier             Tier      `json:"subscription_status"`
	StripeCustomerID string    `json:"stripe_customer_id,omitempty"`
	AIUsageCount     int       `json:"ai_usage_count"`
	AIUsageResetAt   time.Time `json:"ai_usage_reset_at"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// IsPro reports whether the profile is on the paid tier.
func (p *Profile) IsPro() bool {
	return p.Tier == TierPro
}
