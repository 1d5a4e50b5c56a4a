package ports

import "context"

// BillingEventType identifies the webhook events the core reacts to.
type BillingEventType string

const (
	BillingCheckoutCompleted   BillingEventType = "checkout.session.completed"
	BillingSubscriptionDeleted BillingEventType = "customer.subscription.deleted"
	BillingSubscriptionUpdated BillingEventType = "customer.subscription.updated"
)

// BillingEvent is the provider-agnostic view of a billing webhook event.
type BillingEvent struct {
	ID   string
	Type BillingEventType
	// UserID is present on checkout completion (carried in session metadata).
	UserID string
	// CustomerID identifies the billing customer on every event type.
	CustomerID string
	// SubscriptionActive is meaningful on subscription.updated only.
	SubscriptionActive bool
}

// CheckoutInput identifies the user starting an upgrade.
type CheckoutInput struct {
	UserID string
	Email  string
}

// BillingService applies billing events to profiles and starts checkouts.
type BillingService interface {
	CreateCheckout(ctx context.Context, input CheckoutInput) (string, error)
	HandleEvent(ctx context.Context, event BillingEvent) error
}

// CheckoutProvider is the external billing collaborator used to create
// hosted checkout sessions.
type CheckoutProvider interface {
	CreateCheckoutSession(ctx context.Context, userID, email string) (string, error)
}
