package relay

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/iqbalbaharum/serum-event-tracker/internal/adapter"
	"github.com/iqbalbaharum/serum-event-tracker/internal/coder"
	"github.com/iqbalbaharum/serum-event-tracker/internal/generators"
	"github.com/iqbalbaharum/serum-event-tracker/internal/market"
	"github.com/iqbalbaharum/serum-event-tracker/internal/storage"
	"github.com/iqbalbaharum/serum-event-tracker/internal/types"
)

var (
	source    market.AccountSource
	programID solana.PublicKey
	hub       *generators.Hub
	publisher *storage.EventPublisher

	// queueIndex maps event-queue addresses back to their market. The
	// geyser subscription is program-wide, so this is how updates for
	// untracked accounts get ignored.
	queueIndex sync.Map
)

func Init(src market.AccountSource, program solana.PublicKey, h *generators.Hub, pub *storage.EventPublisher) {
	source = src
	programID = program
	hub = h
	publisher = pub
}

// SequencedEvent pairs a decoded queue event with its global sequence
// number.
type SequencedEvent struct {
	SeqNum uint64
	View   coder.EventView
}

// unrelayedEvents returns the live events at or past the relay cursor. The
// header's SeqNum counts every event ever pushed, so the i-th live event
// (oldest first) carries sequence SeqNum - len(events) + i.
func unrelayedEvents(queue *coder.EventQueue, cursor uint64) []SequencedEvent {
	count := uint64(len(queue.Events))

	var base uint64
	if queue.Header.SeqNum > count {
		base = queue.Header.SeqNum - count
	}

	var fresh []SequencedEvent
	for i, view := range queue.Events {
		seq := base + uint64(i)
		if seq < cursor {
			continue
		}
		fresh = append(fresh, SequencedEvent{SeqNum: seq, View: view})
	}

	return fresh
}

func makeEnvelope(marketAddr string, view coder.EventView, seqNum, slot uint64, sourceName string) types.EventEnvelope {
	envelope := types.EventEnvelope{
		Market:    marketAddr,
		SeqNum:    seqNum,
		Slot:      slot,
		Source:    sourceName,
		Timestamp: time.Now().Unix(),
	}

	switch v := view.(type) {
	case coder.FillEvent:
		envelope.Kind = types.EventKindFill
		envelope.Side = string(v.Side)
		envelope.Maker = v.Maker
		envelope.NativeQtyPaid = v.NativeQtyPaid
		envelope.NativeQtyReceived = v.NativeQtyReceived
		envelope.NativeFeeOrRebate = v.NativeFeeOrRebate
		envelope.FeeTier = v.FeeTier
		envelope.OrderID = v.OrderID.BigInt().String()
		envelope.Owner = v.Owner.String()
		envelope.OwnerSlot = v.OwnerSlot
		envelope.ClientOrderID = v.ClientOrderID

	case coder.OutEvent:
		envelope.Kind = types.EventKindOut
		envelope.Side = string(v.Side)
		envelope.ReleaseFunds = v.ReleaseFunds
		envelope.NativeQtyUnlocked = v.NativeQtyUnlocked
		envelope.NativeQtyStillLocked = v.NativeQtyStillLocked
		envelope.OrderID = v.OrderID.BigInt().String()
		envelope.Owner = v.Owner.String()
		envelope.OwnerSlot = v.OwnerSlot
		envelope.ClientOrderID = v.ClientOrderID
	}

	return envelope
}

// ProcessAccountUpdate relays one event-queue account update: decode the
// ring, pick the events past the cursor, persist and publish them, advance
// the cursor. Updates for accounts that are not tracked event queues are
// dropped without decoding.
func ProcessAccountUpdate(update generators.AccountUpdate) {
	value, ok := queueIndex.Load(update.Pubkey)
	if !ok {
		return
	}
	marketAddr := value.(string)

	redisClient, err := adapter.GetRedisClient(adapter.DbTrackedMarket)
	if err != nil {
		log.Fatalf("Failed to get initialize redis instance: %v", err)
	}

	tracked, err := storage.GetTracked(redisClient, marketAddr)
	if err != nil {
		log.Printf("%s | %v", marketAddr, err)
		return
	}

	if tracked.Status != storage.TRACKED_BOTH && tracked.Status != storage.TRACKED_TRIGGER_ONLY {
		return
	}

	words, err := coder.StripPadding(update.Data)
	if err != nil {
		log.Printf("%s | %s | %v", marketAddr, update.Source, err)
		return
	}

	queue, err := coder.ParseEventQueue(words)
	if err != nil {
		log.Printf("%s | %s | %v", marketAddr, update.Source, err)
		return
	}

	cursor, err := storage.GetRelayCursor(redisClient, marketAddr)
	if err != nil {
		log.Printf("%s | %v", marketAddr, err)
		return
	}

	fresh := unrelayedEvents(queue, cursor)
	if len(fresh) == 0 {
		return
	}

	ctx := context.Background()
	for _, ev := range fresh {
		envelope := makeEnvelope(marketAddr, ev.View, ev.SeqNum, update.Slot, update.Source)

		if tracked.Status == storage.TRACKED_BOTH {
			if err := storage.Events.Set(&envelope); err != nil {
				log.Printf("%s | seq %d | %v", marketAddr, ev.SeqNum, err)
			}
		}

		if err := publisher.PublishEvent(ctx, &envelope); err != nil {
			log.Printf("%s | seq %d | %v", marketAddr, ev.SeqNum, err)
		}

		if payload, err := json.Marshal(envelope); err == nil {
			hub.Broadcast(payload)
		}

		switch envelope.Kind {
		case types.EventKindFill:
			log.Printf("Fill | %s | %s | paid %d | received %d | seq %d | %s",
				marketAddr, envelope.Side, envelope.NativeQtyPaid, envelope.NativeQtyReceived, ev.SeqNum, update.Source)
		case types.EventKindOut:
			log.Printf("Out | %s | %s | unlocked %d | locked %d | seq %d | %s",
				marketAddr, envelope.Side, envelope.NativeQtyUnlocked, envelope.NativeQtyStillLocked, ev.SeqNum, update.Source)
		}
	}

	if err := publisher.AdvanceCursor(ctx, marketAddr, queue.Header.SeqNum); err != nil {
		log.Printf("%s | advance cursor | %v", marketAddr, err)
	}
}
