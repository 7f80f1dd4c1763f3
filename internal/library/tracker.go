package relay

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/iqbalbaharum/serum-event-tracker/internal/adapter"
	"github.com/iqbalbaharum/serum-event-tracker/internal/coder"
	"github.com/iqbalbaharum/serum-event-tracker/internal/config"
	"github.com/iqbalbaharum/serum-event-tracker/internal/market"
	"github.com/iqbalbaharum/serum-event-tracker/internal/storage"
	"github.com/iqbalbaharum/serum-event-tracker/internal/types"
)

// TrackMarket resolves the market's account set, registers its event queue
// for relaying and records the tracking entry. The resolved keys are
// returned so callers can answer with them directly.
func TrackMarket(ctx context.Context, marketID solana.PublicKey, triggerOnly bool) (*types.MarketKeys, error) {
	keys, err := market.GetMarketKeys(ctx, source, programID, marketID)
	if err != nil {
		return nil, err
	}

	redisClient, err := adapter.GetRedisClient(adapter.DbTrackedMarket)
	if err != nil {
		log.Fatalf("Failed to get initialize redis instance: %v", err)
	}

	status := storage.TRACKED_BOTH
	if triggerOnly {
		status = storage.TRACKED_TRIGGER_ONLY
	}

	m := marketID
	q := keys.EventQueue
	tracked := types.TrackedMarket{
		Market:      &m,
		EventQueue:  &q,
		Status:      status,
		LastUpdated: time.Now().Unix(),
	}

	if err := storage.SetTracked(redisClient, marketID.String(), tracked); err != nil {
		return nil, err
	}

	queueIndex.Store(keys.EventQueue.String(), marketID.String())

	return keys, nil
}

// PauseMarketTracking keeps the tracking entry but stops relaying until the
// market is tracked again.
func PauseMarketTracking(marketID solana.PublicKey) error {
	redisClient, err := adapter.GetRedisClient(adapter.DbTrackedMarket)
	if err != nil {
		log.Fatalf("Failed to get initialize redis instance: %v", err)
	}

	tracked, err := storage.GetTracked(redisClient, marketID.String())
	if err != nil {
		return err
	}
	if tracked.Status == storage.NOT_TRACKED {
		return fmt.Errorf("%w: %s", storage.ErrMarketNotFound, marketID)
	}

	tracked.Status = storage.PAUSE
	tracked.LastUpdated = time.Now().Unix()

	return storage.SetTracked(redisClient, marketID.String(), *tracked)
}

// UntrackMarket drops the market from the relay path and marks its entry
// NOT_TRACKED.
func UntrackMarket(marketID solana.PublicKey) error {
	redisClient, err := adapter.GetRedisClient(adapter.DbTrackedMarket)
	if err != nil {
		log.Fatalf("Failed to get initialize redis instance: %v", err)
	}

	tracked, err := storage.GetTracked(redisClient, marketID.String())
	if err != nil {
		return err
	}
	if tracked.Status == storage.NOT_TRACKED {
		return fmt.Errorf("%w: %s", storage.ErrMarketNotFound, marketID)
	}

	if tracked.EventQueue != nil {
		queueIndex.Delete(tracked.EventQueue.String())
	}

	tracked.Status = storage.NOT_TRACKED
	tracked.LastUpdated = time.Now().Unix()

	return storage.SetTracked(redisClient, marketID.String(), *tracked)
}

func GetMarketTrackingStatus(marketID solana.PublicKey) (*types.TrackedMarket, error) {
	redisClient, err := adapter.GetRedisClient(adapter.DbTrackedMarket)
	if err != nil {
		log.Fatalf("Failed to get initialize redis instance: %v", err)
	}

	return storage.GetTracked(redisClient, marketID.String())
}

func GetAllTrackedMarkets() ([]types.TrackedMarket, error) {
	redisClient, err := adapter.GetRedisClient(adapter.DbTrackedMarket)
	if err != nil {
		log.Fatalf("Failed to get initialize redis instance: %v", err)
	}

	return storage.GetAllTracked(redisClient)
}

// LoadConfiguredMarkets tracks every market listed in the startup file. A
// bad entry is logged and skipped so one typo cannot hold the rest back.
func LoadConfiguredMarkets(ctx context.Context, entries []config.MarketEntry) {
	for _, entry := range entries {
		marketID, err := solana.PublicKeyFromBase58(entry.Address)
		if err != nil {
			log.Printf("Tracking | %s | %v", entry.Address, err)
			continue
		}

		keys, err := TrackMarket(ctx, marketID, entry.TriggerOnly)
		if err != nil {
			log.Printf("Tracking | %s | %v", entry.Address, err)
			continue
		}

		log.Printf("Tracking | %s | queue %s", entry.Address, keys.EventQueue)
	}
}

// RestoreTracked rebuilds the in-memory queue index from the tracking
// entries that survived a restart. Entries without a recorded queue address
// are skipped; tracking the market again repairs them.
func RestoreTracked() {
	redisClient, err := adapter.GetRedisClient(adapter.DbTrackedMarket)
	if err != nil {
		log.Fatalf("Failed to get initialize redis instance: %v", err)
	}

	trackedMarkets, err := storage.GetAllTracked(redisClient)
	if err != nil {
		log.Printf("Restore | %v", err)
		return
	}

	restored := 0
	for _, tracked := range trackedMarkets {
		if tracked.Status == storage.NOT_TRACKED {
			continue
		}
		if tracked.Market == nil || tracked.EventQueue == nil {
			continue
		}

		queueIndex.Store(tracked.EventQueue.String(), tracked.Market.String())
		restored++
	}

	log.Printf("Restore | %d markets", restored)
}

// ResolveMarketKeys fetches and derives the market's account set without
// touching tracking state.
func ResolveMarketKeys(ctx context.Context, marketID solana.PublicKey) (*types.MarketKeys, error) {
	return market.GetMarketKeys(ctx, source, programID, marketID)
}

// SnapshotEnvelopes reads the market's live queue region over RPC and maps
// it to envelopes, oldest first. Slot is zero here since account fetches do
// not carry one.
func SnapshotEnvelopes(ctx context.Context, marketID solana.PublicKey) (coder.EventQueueHeader, []types.EventEnvelope, error) {
	queue, err := market.LoadEventQueue(ctx, source, programID, marketID)
	if err != nil {
		return coder.EventQueueHeader{}, nil, err
	}

	sequenced := unrelayedEvents(queue, 0)
	envelopes := make([]types.EventEnvelope, 0, len(sequenced))
	for _, ev := range sequenced {
		envelopes = append(envelopes, makeEnvelope(marketID.String(), ev.View, ev.SeqNum, 0, "rpc"))
	}

	return queue.Header, envelopes, nil
}
