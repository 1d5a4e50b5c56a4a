package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Stripe retries webhook deliveries for up to a day, so processed event ids
// are remembered slightly longer than that.
const eventTTL = 25 * time.Hour

// WebhookDedup remembers processed billing event ids so a retried delivery
// is acknowledged without being applied twice.
type WebhookDedup struct {
	client *redis.Client
}

func NewWebhookDedup(client *redis.Client) *WebhookDedup {
	return &WebhookDedup{client: client}
}

// Seen atomically records the event id and reports whether it was already
// present. SetNX keeps the check-and-mark race-free across replicas.
func (d *WebhookDedup) Seen(ctx context.Context, eventID string) (bool, error) {
	ok, err := d.client.SetNX(ctx, d.key(eventID), "1", eventTTL).Result()
	if err != nil {
		return false, fmt.Errorf("webhook dedup: %w", err)
	}
	return !ok, nil
}

func (d *WebhookDedup) key(eventID string) string {
	return "stripe:event:" + eventID
}
