package storage

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/iqbalbaharum/serum-event-tracker/internal/types"
	"github.com/redis/go-redis/v9"
)

// RedisCmd is the subset of redis commands the publisher issues. Satisfied
// by *redis.Client in production and by a mock in tests.
type RedisCmd interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// EventPublisher fans decoded events out to redis: one capped stream per
// market for catch-up consumers and one pub/sub channel for live ones.
type EventPublisher struct {
	client RedisCmd
}

func NewEventPublisher(client RedisCmd) *EventPublisher {
	return &EventPublisher{client: client}
}

func (p *EventPublisher) PublishEvent(ctx context.Context, event *types.EventEnvelope) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: STREAM_EVENTS_PREFIX + event.Market,
		MaxLen: MAX_STREAM_LEN,
		Approx: true,
		Values: map[string]interface{}{"event": payload},
	}).Err()
	if err != nil {
		return err
	}

	return p.client.Publish(ctx, CHANNEL_EVENTS_PREFIX+event.Market, payload).Err()
}

// AdvanceCursor records the next global event sequence to relay for the
// market, pairing with GetRelayCursor on the read side.
func (p *EventPublisher) AdvanceCursor(ctx context.Context, market string, seqNum uint64) error {
	return p.client.HSet(ctx, market, KEY_RELAYCURSOR, strconv.FormatUint(seqNum, 10)).Err()
}
