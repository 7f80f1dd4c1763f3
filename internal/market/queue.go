package market

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/iqbalbaharum/serum-event-tracker/internal/coder"
	"github.com/iqbalbaharum/serum-event-tracker/internal/types"
)

// GetMarketKeys fetches the market account, decodes it and derives the
// external key set.
func GetMarketKeys(ctx context.Context, src AccountSource, programID, marketID solana.PublicKey) (*types.MarketKeys, error) {
	data, err := src.FetchAccountBytes(ctx, marketID)
	if err != nil {
		return nil, fmt.Errorf("fetch market %s: %w", marketID, err)
	}

	words, err := coder.StripPadding(data)
	if err != nil {
		return nil, fmt.Errorf("market %s: %w", marketID, err)
	}

	state, err := coder.DecodeMarket(words)
	if err != nil {
		return nil, fmt.Errorf("market %s: %w", marketID, err)
	}

	keys, err := DeriveKeys(state, programID, marketID)
	if err != nil {
		return nil, fmt.Errorf("market %s: %w", marketID, err)
	}

	return keys, nil
}

// LoadEventQueue resolves the market's event-queue account and returns its
// decoded snapshot. Nothing is cached: every call re-fetches and re-decodes
// both accounts, and any stage failure aborts the whole chain.
func LoadEventQueue(ctx context.Context, src AccountSource, programID, marketID solana.PublicKey) (*coder.EventQueue, error) {
	keys, err := GetMarketKeys(ctx, src, programID, marketID)
	if err != nil {
		return nil, err
	}

	return LoadEventQueueByAddress(ctx, src, keys.EventQueue)
}

// LoadEventQueueByAddress decodes the queue account directly when its
// address is already known, as on the streaming path where keys are
// resolved once at subscribe time.
func LoadEventQueueByAddress(ctx context.Context, src AccountSource, eventQueue solana.PublicKey) (*coder.EventQueue, error) {
	data, err := src.FetchAccountBytes(ctx, eventQueue)
	if err != nil {
		return nil, fmt.Errorf("fetch event queue %s: %w", eventQueue, err)
	}

	words, err := coder.StripPadding(data)
	if err != nil {
		return nil, fmt.Errorf("event queue %s: %w", eventQueue, err)
	}

	queue, err := coder.ParseEventQueue(words)
	if err != nil {
		return nil, fmt.Errorf("event queue %s: %w", eventQueue, err)
	}

	return queue, nil
}
