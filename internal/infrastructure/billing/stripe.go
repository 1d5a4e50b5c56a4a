// Package billing integrates Stripe Checkout and webhooks.
package billing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/candipilot/candipilot-api/internal/core/domain"
	"github.com/candipilot/candipilot-api/internal/core/ports"
)

// Config carries the Stripe credentials and the URLs checkout redirects to.
// Empty SecretKey or PriceID leaves checkout unconfigured; empty
// WebhookSecret leaves webhook verification unconfigured.
type Config struct {
	SecretKey     string
	PriceID       string
	WebhookSecret string
	AppURL        string
}

type StripeClient struct {
	cfg    Config
	logger zerolog.Logger
}

func NewStripeClient(cfg Config, logger zerolog.Logger) *StripeClient {
	if cfg.SecretKey != "" {
		stripe.Key = cfg.SecretKey
	}
	return &StripeClient{cfg: cfg, logger: logger}
}

// CreateCheckoutSession starts a hosted subscription checkout and returns its
// URL. The user id travels in the session metadata so the completion webhook
// can find the profile to upgrade.
func (c *StripeClient) CreateCheckoutSession(ctx context.Context, userID, email string) (string, error) {
	if c.cfg.SecretKey == "" || c.cfg.PriceID == "" {
		return "", domain.ErrNotConfigured
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		CustomerEmail:      stripe.String(email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(c.cfg.PriceID), Quantity: stripe.Int64(1)},
		},
		SuccessURL: stripe.String(c.cfg.AppURL + "/dashboard?success=true"),
		CancelURL:  stripe.String(c.cfg.AppURL + "/billing?canceled=true"),
	}
	params.Context = ctx
	params.AddMetadata("userId", userID)

	s, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return s.URL, nil
}

// ParseWebhook verifies the payload signature and maps the event to the
// provider-agnostic form. Event types the core does not react to yield
// (nil, nil).
func (c *StripeClient) ParseWebhook(payload []byte, signature string) (*ports.BillingEvent, error) {
	if c.cfg.WebhookSecret == "" {
		return nil, domain.ErrNotConfigured
	}

	event, err := webhook.ConstructEvent(payload, signature, c.cfg.WebhookSecret)
	if err != nil {
		return nil, fmt.Errorf("verify webhook: %w", err)
	}

	switch event.Type {
	case "checkout.session.completed":
		var s stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
			return nil, fmt.Errorf("decode checkout session: %w", err)
		}
		out := &ports.BillingEvent{
			ID:     event.ID,
			Type:   ports.BillingCheckoutCompleted,
			UserID: s.Metadata["userId"],
		}
		if s.Customer != nil {
			out.CustomerID = s.Customer.ID
		}
		return out, nil

	case "customer.subscription.deleted", "customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("decode subscription: %w", err)
		}
		out := &ports.BillingEvent{
			ID:                 event.ID,
			Type:               ports.BillingEventType(event.Type),
			SubscriptionActive: sub.Status == stripe.SubscriptionStatusActive,
		}
		if sub.Customer != nil {
			out.CustomerID = sub.Customer.ID
		}
		return out, nil

	default:
		c.logger.Debug().Str("type", string(event.Type)).Msg("unhandled stripe event")
		return nil, nil
	}
}
