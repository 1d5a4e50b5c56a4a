package domain

import "time"

const (
	// MaxFreeApplications is the lifetime application cap for free accounts.
	MaxFreeApplications = 20
	// MaxFreeFollowups is the monthly AI follow-up cap for free accounts.
	MaxFreeFollowups = 5
	// UnlimitedRemaining is the sentinel reported for pro accounts.
	UnlimitedRemaining = -1
)

// QuotaDecision is an ephemeral, per-request verdict on a gated action.
// It is derived from the profile and a resource count at the instant of the
// request and must never be cached beyond it.
type QuotaDecision struct {
	Allowed   bool
	Remaining int
	Limit     int
	IsPro     bool
}

// CheckApplicationQuota decides whether a new application may be created
// given the caller's tier and current application count. Pro accounts are
// never capped.
func CheckApplicationQuota(tier Tier, count int) QuotaDecision {
	if tier == TierPro {
		return QuotaDecision{Allowed: true, Remaining: UnlimitedRemaining, Limit: MaxFreeApplications, IsPro: true}
	}
	remaining := MaxFreeApplications - count
	if remaining < 0 {
		remaining = 0
	}
	return QuotaDecision{
		Allowed:   count < MaxFreeApplications,
		Remaining: remaining,
		Limit:     MaxFreeApplications,
	}
}

// MonthsApart returns the whole calendar-month difference between anchor and
// now, ignoring the day of month. The reset window is defined by calendar
// boundaries, not a rolling 30-day window.
func MonthsApart(anchor, now time.Time) int {
	return (now.Year()-anchor.Year())*12 + int(now.Month()) - int(anchor.Month())
}

// NeedsMonthlyReset reports whether the usage counter anchored at anchor must
// be reset at instant now.
func NeedsMonthlyReset(anchor, now time.Time) bool {
	return MonthsApart(anchor, now) >= 1
}
