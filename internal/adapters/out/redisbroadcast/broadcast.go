// Package redisbroadcast publishes live-operations events over Redis pub/sub.
// Dashboard consumers subscribe to a per-company channel and receive a JSON
// envelope for every task lifecycle event.
package redisbroadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"warehouse/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "ops:"

// publisher defines the Redis operations used by the broadcast.
type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// event is the wire envelope for one operations event.
type event struct {
	Event      string    `json:"event"`
	CompanyID  string    `json:"companyId"`
	EntityID   string    `json:"entityId"`
	EntityType string    `json:"entityType"`
	Payload    any       `json:"payload,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// RedisOperationsBroadcast implements ports.OperationsBroadcast on top of
// Redis pub/sub. Publishing is fire-and-forget: there is no delivery
// guarantee beyond subscribers that are connected at publish time, which
// matches the advisory nature of the dashboard feed.
type RedisOperationsBroadcast struct {
	client publisher
	now    func() time.Time
}

// NewRedisOperationsBroadcast creates a broadcast publishing through the
// given Redis client.
func NewRedisOperationsBroadcast(client *redis.Client) (*RedisOperationsBroadcast, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	return &RedisOperationsBroadcast{client: client, now: time.Now}, nil
}

// Notify publishes one event to the company's operations channel.
func (b *RedisOperationsBroadcast) Notify(
	ctx context.Context,
	eventName string,
	companyID kernel.UUID,
	entityID kernel.UUID,
	entityType string,
	payload any,
) error {
	if eventName == "" {
		return fmt.Errorf("event name is required")
	}
	if err := companyID.Validate(); err != nil {
		return err
	}

	message, err := json.Marshal(event{
		Event:      eventName,
		CompanyID:  companyID.String(),
		EntityID:   entityID.String(),
		EntityType: entityType,
		Payload:    payload,
		OccurredAt: b.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := b.client.Publish(ctx, channelPrefix+companyID.String(), message).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}
