package handoff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Sessions that never reach the editor should not leak slots forever.
const slotTTL = 30 * time.Minute

// Redis is the Slot implementation for multi-node deployments. GETDEL gives
// the read-and-delete step atomically, so two concurrent engine constructions
// cannot both adopt the payload.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func slotKey(key string) string {
	return fmt.Sprintf("handoff:%s", key)
}

func (r *Redis) Put(ctx context.Context, key string, payload []byte) error {
	if err := r.client.Set(ctx, slotKey(key), payload, slotTTL).Err(); err != nil {
		return fmt.Errorf("handoff: put: %w", err)
	}
	return nil
}

func (r *Redis) Take(ctx context.Context, key string) ([]byte, error) {
	payload, err := r.client.GetDel(ctx, slotKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("handoff: take: %w", err)
	}
	return payload, nil
}
