package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/candipilot/candipilot-api/internal/core/domain"
	"github.com/candipilot/candipilot-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories (mirror the behavior of the Mongo queries)
// ---------------------------------------------------------------------------

type stubApplicationRepo struct {
	apps      []*domain.Application // newest-created first
	createErr error
	updateErr error
	updates   []ports.ApplicationPatch
}

func (r *stubApplicationRepo) Create(_ context.Context, app *domain.Application) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *app
	r.apps = append([]*domain.Application{&clone}, r.apps...)
	return nil
}

func (r *stubApplicationRepo) FindByID(_ context.Context, id, userID string) (*domain.Application, error) {
	for _, app := range r.apps {
		if app.ID == id && app.UserID == userID {
			clone := *app
			return &clone, nil
		}
	}
	return nil, domain.ErrApplicationNotFound
}

func (r *stubApplicationRepo) List(_ context.Context, userID string) ([]*domain.Application, error) {
	var out []*domain.Application
	for _, app := range r.apps {
		if app.UserID == userID {
			clone := *app
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubApplicationRepo) Count(_ context.Context, userID string) (int, error) {
	n := 0
	for _, app := range r.apps {
		if app.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *stubApplicationRepo) Update(_ context.Context, id, userID string, patch ports.ApplicationPatch) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updates = append(r.updates, patch)
	for _, app := range r.apps {
		if app.ID != id || app.UserID != userID {
			continue
		}
		if patch.Company != nil {
			app.Company = *patch.Company
		}
		if patch.Role != nil {
			app.Role = *patch.Role
		}
		if patch.URL != nil {
			app.URL = *patch.URL
		}
		if patch.Notes != nil {
			app.Notes = *patch.Notes
		}
		if patch.Status != nil {
			app.Status = *patch.Status
		}
		if patch.AppliedAt != nil {
			app.AppliedAt = patch.AppliedAt
		}
		if patch.LastContactAt != nil {
			app.LastContactAt = patch.LastContactAt
		}
		app.UpdatedAt = time.Now().UTC()
		return nil
	}
	return domain.ErrApplicationNotFound
}

func (r *stubApplicationRepo) Delete(_ context.Context, id, userID string) error {
	for i, app := range r.apps {
		if app.ID == id && app.UserID == userID {
			r.apps = append(r.apps[:i], r.apps[i+1:]...)
			return nil
		}
	}
	return domain.ErrApplicationNotFound
}

type stubProfileRepo struct {
	profiles   map[string]*domain.Profile
	resetCalls int
	releases   int
}

func newStubProfileRepo(profiles ...*domain.Profile) *stubProfileRepo {
	r := &stubProfileRepo{profiles: make(map[string]*domain.Profile)}
	for _, p := range profiles {
		clone := *p
		r.profiles[p.ID] = &clone
	}
	return r
}

func (r *stubProfileRepo) Create(_ context.Context, profile *domain.Profile) error {
	for _, p := range r.profiles {
		if p.Email == profile.Email {
			return domain.ErrUserExists
		}
	}
	clone := *profile
	r.profiles[profile.ID] = &clone
	return nil
}

func (r *stubProfileRepo) FindByID(_ context.Context, id string) (*domain.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProfileRepo) FindByEmail(_ context.Context, email string) (*domain.Profile, error) {
	for _, p := range r.profiles {
		if p.Email == email {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubProfileRepo) ResetAIUsage(_ context.Context, userID string, anchor time.Time) error {
	p, ok := r.profiles[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	r.resetCalls++
	p.AIUsageCount = 0
	p.AIUsageResetAt = anchor
	return nil
}

func (r *stubProfileRepo) ReserveFollowupCredit(_ context.Context, userID string, limit int) (int, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	if p.AIUsageCount >= limit {
		return 0, domain.ErrFollowupQuotaExceeded
	}
	p.AIUsageCount++
	return p.AIUsageCount, nil
}

func (r *stubProfileRepo) ReleaseFollowupCredit(_ context.Context, userID string) error {
	p, ok := r.profiles[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if p.AIUsageCount > 0 {
		p.AIUsageCount--
	}
	r.releases++
	return nil
}

func (r *stubProfileRepo) SetTier(_ context.Context, userID string, tier domain.Tier, customerID string) error {
	p, ok := r.profiles[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	p.Tier = tier
	if customerID != "" {
		p.StripeCustomerID = customerID
	}
	return nil
}

func (r *stubProfileRepo) SetTierByCustomer(_ context.Context, customerID string, tier domain.Tier) error {
	for _, p := range r.profiles {
		if p.StripeCustomerID == customerID {
			p.Tier = tier
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func freeProfile(id string) *domain.Profile {
	return &domain.Profile{
		ID:             id,
		Email:          id + "@example.com",
		Tier:           domain.TierFree,
		AIUsageResetAt: time.Now().UTC(),
	}
}

func proProfile(id string) *domain.Profile {
	p := freeProfile(id)
	p.Tier = domain.TierPro
	return p
}
