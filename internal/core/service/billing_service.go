package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/candipilot/candipilot-api/internal/core/domain"
	"github.com/candipilot/candipilot-api/internal/core/ports"
)

// BillingService starts checkout sessions and applies webhook events to the
// tier field. Tier transitions happen nowhere else.
type BillingService struct {
	profiles ports.ProfileRepository
	provider ports.CheckoutProvider
	logger   zerolog.Logger
}

func NewBillingService(profiles ports.ProfileRepository, provider ports.CheckoutProvider, logger zerolog.Logger) *BillingService {
	return &BillingService{profiles: profiles, provider: provider, logger: logger}
}

// CreateCheckout returns the hosted checkout URL for upgrading to pro.
func (s *BillingService) CreateCheckout(ctx context.Context, input ports.CheckoutInput) (string, error) {
	url, err := s.provider.CreateCheckoutSession(ctx, input.UserID, input.Email)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", input.UserID).Msg("failed to create checkout session")
		return "", err
	}
	s.logger.Info().Str("user_id", input.UserID).Msg("checkout session created")
	return url, nil
}

// HandleEvent applies one billing event:
//
//	checkout.session.completed      → pro (and the customer id is stored)
//	customer.subscription.deleted   → free
//	customer.subscription.updated   → pro iff the subscription is active
func (s *BillingService) HandleEvent(ctx context.Context, event ports.BillingEvent) error {
	switch event.Type {
	case ports.BillingCheckoutCompleted:
		if event.UserID == "" {
			s.logger.Warn().Str("event_id", event.ID).Msg("checkout completed without user metadata, skipping")
			return nil
		}
		if err := s.profiles.SetTier(ctx, event.UserID, domain.TierPro, event.CustomerID); err != nil {
			return fmt.Errorf("handle %s: %w", event.Type, err)
		}
		s.logger.Info().Str("user_id", event.UserID).Msg("user upgraded to pro")

	case ports.BillingSubscriptionDeleted:
		if err := s.profiles.SetTierByCustomer(ctx, event.CustomerID, domain.TierFree); err != nil {
			return fmt.Errorf("handle %s: %w", event.Type, err)
		}
		s.logger.Info().Str("customer_id", event.CustomerID).Msg("customer downgraded to free")

	case ports.BillingSubscriptionUpdated:
		tier := domain.TierFree
		if event.SubscriptionActive {
			tier = domain.TierPro
		}
		if err := s.profiles.SetTierByCustomer(ctx, event.CustomerID, tier); err != nil {
			return fmt.Errorf("handle %s: %w", event.Type, err)
		}
		s.logger.Info().Str("customer_id", event.CustomerID).Str("tier", string(tier)).Msg("subscription updated")

	default:
		s.logger.Debug().Str("type", string(event.Type)).Msg("ignoring billing event")
	}

	return nil
}
