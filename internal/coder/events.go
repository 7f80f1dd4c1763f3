package coder

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Event flag bits. Fill and Out tag the event kind; the rest qualify it.
const (
	EventFlagFill         uint8 = 0x01
	EventFlagOut          uint8 = 0x02
	EventFlagBid          uint8 = 0x04
	EventFlagMaker        uint8 = 0x08
	EventFlagReleaseFunds uint8 = 0x10
)

const (
	queueHeaderWords = 4
	eventSize        = 88
)

// Side of the book an event belongs to.
type Side string

const (
	SideBid Side = "bid"
	SideAsk Side = "ask"
)

// EventQueueHeader is the leading fixed-layout region of a queue account.
// Head indexes the oldest live slot, Count is the number of live slots and
// SeqNum counts every event ever pushed.
type EventQueueHeader struct {
	AccountFlags uint64 `json:"accountFlags"`
	Head         uint64 `json:"head"`
	Count        uint64 `json:"count"`
	SeqNum       uint64 `json:"seqNum"`
}

// Event is one raw 88-byte queue slot.
type Event struct {
	Flags             uint8
	OwnerSlot         uint8
	FeeTier           uint8
	Unused            [5]byte
	NativeQtyReleased uint64
	NativeQtyPaid     uint64
	NativeFeeOrRebate uint64
	OrderID           bin.Uint128
	Owner             solana.PublicKey
	ClientOrderID     uint64
}

// EventView is the decoded projection of one queue slot: either a
// FillEvent or an OutEvent.
type EventView interface {
	isEventView()
}

// FillEvent is a trade execution.
type FillEvent struct {
	Side              Side
	Maker             bool
	NativeQtyPaid     uint64
	NativeQtyReceived uint64
	NativeFeeOrRebate uint64
	FeeTier           uint8
	OrderID           bin.Uint128
	Owner             solana.PublicKey
	OwnerSlot         uint8
	ClientOrderID     uint64
}

// OutEvent is funds being released or unlocked from an order.
type OutEvent struct {
	Side                 Side
	ReleaseFunds         bool
	NativeQtyUnlocked    uint64
	NativeQtyStillLocked uint64
	OrderID              bin.Uint128
	Owner                solana.PublicKey
	OwnerSlot            uint8
	ClientOrderID        uint64
}

func (FillEvent) isEventView() {}
func (OutEvent) isEventView()  {}

// View projects the raw slot into its tagged variant. Flag combinations
// outside the two known shapes are rejected rather than defaulted.
func (e *Event) View() (EventView, error) {
	side := SideAsk
	if e.Flags&EventFlagBid != 0 {
		side = SideBid
	}

	switch {
	case e.Flags&EventFlagFill != 0:
		if e.Flags&^(EventFlagFill|EventFlagBid|EventFlagMaker) != 0 {
			return nil, fmt.Errorf("%w: %#x", ErrEventFlags, e.Flags)
		}
		return FillEvent{
			Side:              side,
			Maker:             e.Flags&EventFlagMaker != 0,
			NativeQtyPaid:     e.NativeQtyPaid,
			NativeQtyReceived: e.NativeQtyReleased,
			NativeFeeOrRebate: e.NativeFeeOrRebate,
			FeeTier:           e.FeeTier,
			OrderID:           e.OrderID,
			Owner:             e.Owner,
			OwnerSlot:         e.OwnerSlot,
			ClientOrderID:     e.ClientOrderID,
		}, nil

	case e.Flags&EventFlagOut != 0:
		if e.Flags&^(EventFlagOut|EventFlagBid|EventFlagReleaseFunds) != 0 {
			return nil, fmt.Errorf("%w: %#x", ErrEventFlags, e.Flags)
		}
		return OutEvent{
			Side:                 side,
			ReleaseFunds:         e.Flags&EventFlagReleaseFunds != 0,
			NativeQtyUnlocked:    e.NativeQtyReleased,
			NativeQtyStillLocked: e.NativeQtyPaid,
			OrderID:              e.OrderID,
			Owner:                e.Owner,
			OwnerSlot:            e.OwnerSlot,
			ClientOrderID:        e.ClientOrderID,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %#x", ErrEventFlags, e.Flags)
	}
}

// EventQueue is a decoded queue snapshot: the header plus the live events
// in ring order, oldest first.
type EventQueue struct {
	Header EventQueueHeader
	Events []EventView
}

// ParseEventQueue splits the stripped interior into the queue header and
// the flat slot array, then walks the live ring region. Head is normalized
// modulo the slot capacity and Count is clamped to it, so a corrupted
// header can never read out of bounds. A slot with unknown flags fails the
// whole read.
func ParseEventQueue(words Words) (*EventQueue, error) {
	if len(words) < queueHeaderWords {
		return nil, fmt.Errorf("%w: %d words", ErrQueueSize, len(words))
	}

	data := words.Bytes()

	var header EventQueueHeader
	if err := bin.NewBinDecoder(data[:queueHeaderWords*8]).Decode(&header); err != nil {
		return nil, err
	}

	region := data[queueHeaderWords*8:]
	capacity := uint64(len(region) / eventSize)
	if capacity == 0 {
		return &EventQueue{Header: header}, nil
	}

	head := header.Head % capacity
	count := header.Count
	if count > capacity {
		count = capacity
	}

	views := make([]EventView, 0, count)
	for i := uint64(0); i < count; i++ {
		slot := (head + i) % capacity
		offset := slot * eventSize

		var event Event
		if err := bin.NewBinDecoder(region[offset : offset+eventSize]).Decode(&event); err != nil {
			return nil, err
		}

		view, err := event.View()
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", slot, err)
		}
		views = append(views, view)
	}

	return &EventQueue{Header: header, Events: views}, nil
}
