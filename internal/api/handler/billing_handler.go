package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/candipilot/candipilot-api/internal/api/metrics"
	"github.com/candipilot/candipilot-api/internal/core/domain"
	"github.com/candipilot/candipilot-api/internal/core/ports"
)

// WebhookParser verifies a raw webhook delivery and maps it to the
// provider-agnostic event form. A nil event means the type is not handled.
type WebhookParser interface {
	ParseWebhook(payload []byte, signature string) (*ports.BillingEvent, error)
}

// EventDedup records processed event ids so retried deliveries are
// acknowledged without being applied twice.
type EventDedup interface {
	Seen(ctx context.Context, eventID string) (bool, error)
}

// BillingHandler starts checkouts and receives provider webhooks.
type BillingHandler struct {
	service ports.BillingService
	parser  WebhookParser
	dedup   EventDedup
	logger  zerolog.Logger
}

func NewBillingHandler(service ports.BillingService, parser WebhookParser, dedup EventDedup, logger zerolog.Logger) *BillingHandler {
	return &BillingHandler{service: service, parser: parser, dedup: dedup, logger: logger}
}

type checkoutResponse struct {
	URL string `json:"url"`
}

// Checkout handles POST /v1/billing/checkout.
//
// @Summary      Start a pro upgrade checkout
// @Tags         billing
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  checkoutResponse
// @Failure      503  {object}  map[string]string
// @Router       /v1/billing/checkout [post]
func (h *BillingHandler) Checkout(c echo.Context) error {
	userID, email, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	url, err := h.service.CreateCheckout(c.Request().Context(), ports.CheckoutInput{
		UserID: userID,
		Email:  email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, checkoutResponse{URL: url})
}

// Webhook handles POST /v1/billing/webhook. The route is unauthenticated;
// trust comes from the provider signature. Every valid delivery is answered
// 200 so the provider stops retrying, including duplicates and types the
// service ignores.
//
// @Summary      Billing provider webhook
// @Tags         billing
// @Accept       json
// @Produce      json
// @Param        Stripe-Signature  header    string  true  "Webhook signature"
// @Success      200               {object}  map[string]bool
// @Failure      400               {object}  map[string]string
// @Router       /v1/billing/webhook [post]
func (h *BillingHandler) Webhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable payload")
	}

	event, err := h.parser.ParseWebhook(payload, c.Request().Header.Get("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, domain.ErrNotConfigured) {
			return err
		}
		h.logger.Warn().Err(err).Msg("webhook signature verification failed")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid signature")
	}
	if event == nil {
		metrics.WebhookEventsTotal.WithLabelValues("unknown", "ignored").Inc()
		return c.JSON(http.StatusOK, map[string]bool{"received": true})
	}

	seen, err := h.dedup.Seen(c.Request().Context(), event.ID)
	if err != nil {
		// Dedup is best effort: the tier updates are idempotent, so a
		// Redis outage must not drop billing events.
		h.logger.Warn().Err(err).Str("event_id", event.ID).Msg("webhook dedup unavailable")
	} else if seen {
		metrics.WebhookEventsTotal.WithLabelValues(string(event.Type), "duplicate").Inc()
		h.logger.Info().Str("event_id", event.ID).Msg("duplicate webhook delivery skipped")
		return c.JSON(http.StatusOK, map[string]bool{"received": true})
	}

	if err := h.service.HandleEvent(c.Request().Context(), *event); err != nil {
		metrics.WebhookEventsTotal.WithLabelValues(string(event.Type), "error").Inc()
		return err
	}

	metrics.WebhookEventsTotal.WithLabelValues(string(event.Type), "applied").Inc()
	return c.JSON(http.StatusOK, map[string]bool{"received": true})
}
