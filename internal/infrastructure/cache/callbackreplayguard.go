package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	callbackKeyPrefix = "callback_seen:"
	// DefaultCallbackReplayTTL is how long a delivery is remembered.
	DefaultCallbackReplayTTL = 24 * time.Hour
)

// CallbackReplayGuard drops repeated webhook deliveries. A delivery is
// identified by transaction id and status, so a FAILED after an ACCEPTED
// still goes through.
type CallbackReplayGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCallbackReplayGuard(client *redis.Client, ttl time.Duration) *CallbackReplayGuard {
	if ttl <= 0 {
		ttl = DefaultCallbackReplayTTL
	}
	return &CallbackReplayGuard{client: client, ttl: ttl}
}

// Format: callback_seen:{transaction_id}:{status}
func (g *CallbackReplayGuard) buildKey(transactionID, status string) string {
	return fmt.Sprintf("%s%s:%s", callbackKeyPrefix, transactionID, strings.ToUpper(status))
}

// FirstDelivery atomically records the delivery with SetNX and reports
// whether it had not been seen within the TTL.
func (g *CallbackReplayGuard) FirstDelivery(ctx context.Context, transactionID, status string) (bool, error) {
	acquired, err := g.client.SetNX(ctx, g.buildKey(transactionID, status), "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to record callback delivery: %w", err)
	}
	return acquired, nil
}
