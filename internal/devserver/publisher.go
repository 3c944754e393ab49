package devserver

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/tapppp/storeorders/internal/listener"
)

// RedisPublisher pushes new-order events over Redis pub/sub, the
// counterpart of the client's listener.
type RedisPublisher struct {
	rdb *redis.Client
}

// NewRedisPublisher creates RedisPublisher on an existing client
func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

// PublishNewOrder publishes message to the store's push channel
func (p *RedisPublisher) PublishNewOrder(ctx context.Context, storeID, message string) error {
	if err := p.rdb.Publish(ctx, listener.Channel(storeID), message).Err(); err != nil {
		return fmt.Errorf("failed to publish new order event: %w", err)
	}
	return nil
}
