package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/candipilot/candipilot-api/internal/core/domain"
	"github.com/candipilot/candipilot-api/internal/core/ports"
)

// ApplicationService implements CRUD on applications with the free-tier
// creation quota and the shared status transition policy.
type ApplicationService struct {
	apps     ports.ApplicationRepository
	profiles ports.ProfileRepository
	logger   zerolog.Logger
}

func NewApplicationService(apps ports.ApplicationRepository, profiles ports.ProfileRepository, logger zerolog.Logger) *ApplicationService {
	return &ApplicationService{apps: apps, profiles: profiles, logger: logger}
}

func (s *ApplicationService) List(ctx context.Context, userID string) ([]*domain.Application, error) {
	return s.apps.List(ctx, userID)
}

func (s *ApplicationService) Get(ctx context.Context, userID, id string) (*domain.Application, error) {
	return s.apps.FindByID(ctx, id, userID)
}

// Create inserts a new application after re-evaluating the quota. The check
// runs against a fresh count on every attempt; decisions are never reused.
func (s *ApplicationService) Create(ctx context.Context, input ports.CreateApplicationInput) (*domain.Application, error) {
	profile, err := s.profiles.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}

	count, err := s.apps.Count(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("create application: count: %w", err)
	}

	decision := domain.CheckApplicationQuota(profile.Tier, count)
	if !decision.Allowed {
		s.logger.Info().Str("user_id", input.UserID).Int("count", count).Msg("application limit reached")
		return nil, domain.ErrQuotaExceeded
	}

	status := input.Status
	if status == "" {
		status = domain.StatusTodo
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	now := time.Now().UTC()
	app := &domain.Application{
		ID:        uuid.NewString(),
		UserID:    input.UserID,
		Company:   input.Company,
		Role:      input.Role,
		URL:       input.URL,
		Notes:     input.Notes,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// Creating directly in a non-todo column counts as the first transition
	// away from todo.
	if status != domain.StatusTodo {
		app.AppliedAt = &now
	}

	if err := s.apps.Create(ctx, app); err != nil {
		s.logger.Error().Err(err).Str("user_id", input.UserID).Msg("failed to create application")
		return nil, err
	}

	s.logger.Info().Str("application_id", app.ID).Str("user_id", input.UserID).Str("company", app.Company).Msg("application created")
	return app, nil
}

// Update applies a partial update. Status changes go through the shared
// transition policy; a same-status "change" is dropped from the patch, and a
// patch that ends up empty performs no persistence call at all.
func (s *ApplicationService) Update(ctx context.Context, userID, id string, input ports.UpdateApplicationInput) (*domain.Application, error) {
	app, err := s.apps.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	patch := ports.ApplicationPatch{
		Company:       input.Company,
		Role:          input.Role,
		URL:           input.URL,
		Notes:         input.Notes,
		LastContactAt: input.LastContactAt,
	}

	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
		change, changed := domain.PlanStatusChange(app, *input.Status, time.Now())
		if changed {
			patch.Status = &change.Status
			patch.AppliedAt = change.AppliedAt
		}
	}

	if patch.Empty() {
		return app, nil
	}

	if err := s.apps.Update(ctx, id, userID, patch); err != nil {
		s.logger.Error().Err(err).Str("application_id", id).Msg("failed to update application")
		return nil, err
	}

	return s.apps.FindByID(ctx, id, userID)
}

func (s *ApplicationService) Delete(ctx context.Context, userID, id string) error {
	if err := s.apps.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.logger.Info().Str("application_id", id).Str("user_id", userID).Msg("application deleted")
	return nil
}

// Quota returns the current application quota status for the user.
func (s *ApplicationService) Quota(ctx context.Context, userID string) (*ports.QuotaStatus, error) {
	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	count, err := s.apps.Count(ctx, userID)
	if err != nil {
		return nil, err
	}

	decision := domain.CheckApplicationQuota(profile.Tier, count)
	return &ports.QuotaStatus{
		Count:     count,
		Limit:     decision.Limit,
		CanCreate: decision.Allowed,
		IsPro:     decision.IsPro,
	}, nil
}

// Stats aggregates the dashboard counters over the user's applications.
func (s *ApplicationService) Stats(ctx context.Context, userID string) (*ports.StatsOverview, error) {
	apps, err := s.apps.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[domain.ApplicationStatus]int, len(domain.KanbanColumns))
	applied := 0
	for _, app := range apps {
		byStatus[app.Status]++
		if app.Status != domain.StatusTodo {
			applied++
		}
	}

	overview := &ports.StatsOverview{
		Total:      len(apps),
		Applied:    applied,
		Interviews: byStatus[domain.StatusInterview],
		Offers:     byStatus[domain.StatusOffer],
	}
	if applied > 0 {
		overview.SuccessRate = int(math.Round(float64(overview.Offers) / float64(applied) * 100))
	}
	for _, col := range domain.KanbanColumns {
		overview.Columns = append(overview.Columns, ports.ColumnCount{Status: col, Count: byStatus[col]})
	}
	return overview, nil
}
