package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/iqbalbaharum/serum-event-tracker/internal/types"
	"github.com/redis/go-redis/v9"
)

const (
	TRACKED_TRIGGER_ONLY = "TRACKED_TRIGGER_ONLY"
	TRACKED_BOTH         = "TRACKED_BOTH"
	PAUSE                = "PAUSE"
	NOT_TRACKED          = "NOT_TRACKED"
)

func validStatus(status string) bool {
	switch status {
	case TRACKED_TRIGGER_ONLY, TRACKED_BOTH, PAUSE, NOT_TRACKED:
		return true
	default:
		return false
	}
}

func SetTracked(client *redis.Client, market string, tracked types.TrackedMarket) error {
	ctx := context.Background()

	if !validStatus(tracked.Status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, tracked.Status)
	}

	data, err := json.Marshal(tracked)
	if err != nil {
		return err
	}

	if err := client.HSet(ctx, market, KEY_TRACKEDMARKET, data).Err(); err != nil {
		return err
	}

	return nil
}

func GetTracked(client *redis.Client, market string) (*types.TrackedMarket, error) {
	ctx := context.Background()
	data, err := client.HGet(ctx, market, KEY_TRACKEDMARKET).Result()
	if err != nil {
		if err == redis.Nil {
			return &types.TrackedMarket{
				Status: NOT_TRACKED,
			}, nil
		}

		return nil, err
	}

	var tracked types.TrackedMarket
	if err := json.Unmarshal([]byte(data), &tracked); err != nil {
		return nil, err
	}

	if !validStatus(tracked.Status) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, tracked.Status)
	}

	return &tracked, nil
}

func GetAllTracked(client *redis.Client) ([]types.TrackedMarket, error) {
	ctx := context.Background()

	keys, err := client.Keys(ctx, "*").Result()
	if err != nil {
		return nil, err
	}

	var tracked []types.TrackedMarket

	for _, key := range keys {
		data, err := client.HGet(ctx, key, KEY_TRACKEDMARKET).Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, err
		}

		var t types.TrackedMarket
		if err := json.Unmarshal([]byte(data), &t); err != nil {
			return nil, err
		}

		if !validStatus(t.Status) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, t.Status)
		}

		tracked = append(tracked, t)
	}

	return tracked, nil
}

// GetRelayCursor returns the next global event sequence number to relay for
// a market. A missing cursor means nothing has been relayed yet.
func GetRelayCursor(client *redis.Client, market string) (uint64, error) {
	ctx := context.Background()
	data, err := client.HGet(ctx, market, KEY_RELAYCURSOR).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, err
	}

	cursor, err := strconv.ParseUint(data, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt relay cursor for %s: %w", market, err)
	}

	return cursor, nil
}
