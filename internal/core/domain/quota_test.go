package domain

import (
	"testing"
	"time"
)

func TestCheckApplicationQuota_Free(t *testing.T) {
	cases := []struct {
		count     int
		allowed   bool
		remaining int
	}{
		{0, true, 20},
		{1, true, 19},
		{19, true, 1},
		{20, false, 0},
		{25, false, 0},
	}

	for _, tc := range cases {
		d := CheckApplicationQuota(TierFree, tc.count)
		if d.Allowed != tc.allowed {
			t.Errorf("count=%d: expected allowed=%v, got %v", tc.count, tc.allowed, d.Allowed)
		}
		if d.Remaining != tc.remaining {
			t.Errorf("count=%d: expected remaining=%d, got %d", tc.count, tc.remaining, d.Remaining)
		}
		if d.IsPro {
			t.Errorf("count=%d: free decision must not be pro", tc.count)
		}
		if d.Limit != MaxFreeApplications {
			t.Errorf("count=%d: expected limit=%d, got %d", tc.count, MaxFreeApplications, d.Limit)
		}
	}
}

func TestCheckApplicationQuota_ProNeverCapped(t *testing.T) {
	for _, count := range []int{0, 19, 20, 1000} {
		d := CheckApplicationQuota(TierPro, count)
		if !d.Allowed {
			t.Errorf("count=%d: pro must always be allowed", count)
		}
		if d.Remaining != UnlimitedRemaining {
			t.Errorf("count=%d: expected unlimited sentinel, got %d", count, d.Remaining)
		}
		if !d.IsPro {
			t.Errorf("count=%d: expected IsPro=true", count)
		}
	}
}

func TestMonthsApart(t *testing.T) {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
	}

	cases := []struct {
		name   string
		anchor time.Time
		now    time.Time
		want   int
	}{
		{"same month", date(2025, time.March, 1), date(2025, time.March, 31), 0},
		{"next month, earlier day", date(2025, time.March, 31), date(2025, time.April, 1), 1},
		{"several months", date(2025, time.January, 15), date(2025, time.June, 15), 5},
		{"year boundary", date(2024, time.December, 20), date(2025, time.January, 3), 1},
		{"full year", date(2024, time.May, 10), date(2025, time.May, 9), 12},
	}

	for _, tc := range cases {
		if got := MonthsApart(tc.anchor, tc.now); got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestNeedsMonthlyReset_IgnoresDayOfMonth(t *testing.T) {
	// One calendar day apart but the month boundary was crossed.
	anchor := time.Date(2025, time.January, 31, 23, 0, 0, 0, time.UTC)
	now := time.Date(2025, time.February, 1, 1, 0, 0, 0, time.UTC)
	if !NeedsMonthlyReset(anchor, now) {
		t.Error("expected reset after crossing the month boundary")
	}

	// 29 elapsed days inside the same month: no reset.
	anchor = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	now = time.Date(2025, time.March, 30, 0, 0, 0, 0, time.UTC)
	if NeedsMonthlyReset(anchor, now) {
		t.Error("expected no reset within the same calendar month")
	}
}
