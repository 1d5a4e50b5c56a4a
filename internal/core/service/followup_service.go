package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/candipilot/candipilot-api/internal/core/domain"
	"github.com/candipilot/candipilot-api/internal/core/ports"
)

// FollowupService generates AI follow-up emails under the monthly free-tier
// quota. The order of operations matters:
//
//  1. Month rollover: when the reset anchor is at least one calendar month
//     behind, the counter is zeroed and persisted immediately, whether or not
//     the request ultimately succeeds.
//  2. Reserve: free accounts take one credit through an atomic conditional
//     increment at the store. Exhausted quota fails here, before any call to
//     the paid generation API.
//  3. Generate: on failure the reserved credit is released, so a failed
//     generation never consumes quota.
type FollowupService struct {
	profiles  ports.ProfileRepository
	generator ports.FollowupGenerator
	logger    zerolog.Logger
	now       func() time.Time
}

func NewFollowupService(profiles ports.ProfileRepository, generator ports.FollowupGenerator, logger zerolog.Logger) *FollowupService {
	return &FollowupService{
		profiles:  profiles,
		generator: generator,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *FollowupService) Generate(ctx context.Context, input ports.GenerateFollowupInput) (*ports.FollowupResult, error) {
	if input.Company == "" || input.Role == "" {
		return nil, fmt.Errorf("%w: company and role are required", domain.ErrValidation)
	}
	tone := input.Tone
	if tone == "" {
		tone = ports.ToneNeutral
	}

	profile, err := s.profiles.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("generate followup: %w", err)
	}

	now := s.now().UTC()
	if domain.NeedsMonthlyReset(profile.AIUsageResetAt, now) {
		if err := s.profiles.ResetAIUsage(ctx, input.UserID, now); err != nil {
			return nil, fmt.Errorf("generate followup: reset usage: %w", err)
		}
		s.logger.Info().Str("user_id", input.UserID).Time("anchor", now).Msg("monthly AI usage reset")
		profile.AIUsageCount = 0
		profile.AIUsageResetAt = now
	}

	if profile.IsPro() {
		email, err := s.generator.GenerateFollowupEmail(ctx, input.Company, input.Role, input.AppliedAt, tone)
		if err != nil {
			s.logger.Error().Err(err).Str("user_id", input.UserID).Msg("followup generation failed")
			return nil, err
		}
		return &ports.FollowupResult{
			Email:     email,
			Remaining: domain.UnlimitedRemaining,
			Limit:     domain.MaxFreeFollowups,
			IsPro:     true,
		}, nil
	}

	used, err := s.profiles.ReserveFollowupCredit(ctx, input.UserID, domain.MaxFreeFollowups)
	if err != nil {
		if errors.Is(err, domain.ErrFollowupQuotaExceeded) {
			s.logger.Info().Str("user_id", input.UserID).Msg("monthly followup limit reached")
		}
		return nil, err
	}

	email, err := s.generator.GenerateFollowupEmail(ctx, input.Company, input.Role, input.AppliedAt, tone)
	if err != nil {
		if releaseErr := s.profiles.ReleaseFollowupCredit(ctx, input.UserID); releaseErr != nil {
			s.logger.Warn().Err(releaseErr).Str("user_id", input.UserID).Msg("failed to release followup credit")
		}
		s.logger.Error().Err(err).Str("user_id", input.UserID).Msg("followup generation failed")
		return nil, err
	}

	s.logger.Info().Str("user_id", input.UserID).Int("used", used).Msg("followup generated")
	return &ports.FollowupResult{
		Email:     email,
		Remaining: domain.MaxFreeFollowups - used,
		Limit:     domain.MaxFreeFollowups,
	}, nil
}
