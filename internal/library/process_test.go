package relay

import (
	"bytes"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iqbalbaharum/serum-event-tracker/internal/coder"
	"github.com/iqbalbaharum/serum-event-tracker/internal/types"
)

func sampleQueue(seqNum uint64, events ...coder.EventView) *coder.EventQueue {
	return &coder.EventQueue{
		Header: coder.EventQueueHeader{
			AccountFlags: coder.FlagInitialized | coder.FlagEventQueue,
			Count:        uint64(len(events)),
			SeqNum:       seqNum,
		},
		Events: events,
	}
}

func fillView(clientID uint64) coder.EventView {
	return coder.FillEvent{Side: coder.SideBid, ClientOrderID: clientID}
}

func TestUnrelayedEvents(t *testing.T) {
	queue := sampleQueue(10, fillView(1), fillView(2), fillView(3))

	cases := []struct {
		name     string
		cursor   uint64
		wantSeqs []uint64
	}{
		{name: "no cursor relays the whole live region", cursor: 0, wantSeqs: []uint64{7, 8, 9}},
		{name: "cursor keeps only the suffix", cursor: 8, wantSeqs: []uint64{8, 9}},
		{name: "cursor at seq num relays nothing", cursor: 10, wantSeqs: nil},
		{name: "cursor past seq num relays nothing", cursor: 11, wantSeqs: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fresh := unrelayedEvents(queue, tc.cursor)

			var seqs []uint64
			for _, ev := range fresh {
				seqs = append(seqs, ev.SeqNum)
			}
			assert.Equal(t, tc.wantSeqs, seqs)
		})
	}
}

func TestUnrelayedEventsOrderMatchesRing(t *testing.T) {
	queue := sampleQueue(5, fillView(100), fillView(101))

	fresh := unrelayedEvents(queue, 0)
	require.Len(t, fresh, 2)

	first, ok := fresh[0].View.(coder.FillEvent)
	require.True(t, ok)
	assert.Equal(t, uint64(100), first.ClientOrderID)
	assert.Equal(t, uint64(3), fresh[0].SeqNum)

	second, ok := fresh[1].View.(coder.FillEvent)
	require.True(t, ok)
	assert.Equal(t, uint64(101), second.ClientOrderID)
	assert.Equal(t, uint64(4), fresh[1].SeqNum)
}

func TestUnrelayedEventsSeqNumSmallerThanCount(t *testing.T) {
	// a fresh market can report fewer pushes than live slots after a
	// clamped count; sequences restart from zero instead of wrapping
	queue := sampleQueue(2, fillView(1), fillView(2), fillView(3))

	fresh := unrelayedEvents(queue, 0)
	require.Len(t, fresh, 3)
	assert.Equal(t, uint64(0), fresh[0].SeqNum)
	assert.Equal(t, uint64(2), fresh[2].SeqNum)
}

func TestMakeEnvelopeFill(t *testing.T) {
	owner := solana.PublicKeyFromBytes(bytes.Repeat([]byte{0xaa}, 32))

	view := coder.FillEvent{
		Side:              coder.SideBid,
		Maker:             true,
		NativeQtyPaid:     1000,
		NativeQtyReceived: 2000,
		NativeFeeOrRebate: 3,
		FeeTier:           4,
		OrderID:           bin.Uint128{Lo: 0, Hi: 1},
		Owner:             owner,
		OwnerSlot:         7,
		ClientOrderID:     99,
	}

	envelope := makeEnvelope("marketAddr", view, 42, 250000000, "triton")

	assert.Equal(t, types.EventKindFill, envelope.Kind)
	assert.Equal(t, "marketAddr", envelope.Market)
	assert.Equal(t, "bid", envelope.Side)
	assert.True(t, envelope.Maker)
	assert.Equal(t, uint64(1000), envelope.NativeQtyPaid)
	assert.Equal(t, uint64(2000), envelope.NativeQtyReceived)
	assert.Equal(t, uint64(3), envelope.NativeFeeOrRebate)
	assert.Equal(t, uint8(4), envelope.FeeTier)
	assert.Equal(t, "18446744073709551616", envelope.OrderID)
	assert.Equal(t, owner.String(), envelope.Owner)
	assert.Equal(t, uint8(7), envelope.OwnerSlot)
	assert.Equal(t, uint64(99), envelope.ClientOrderID)
	assert.Equal(t, uint64(42), envelope.SeqNum)
	assert.Equal(t, uint64(250000000), envelope.Slot)
	assert.Equal(t, "triton", envelope.Source)
	assert.NotZero(t, envelope.Timestamp)
}

func TestMakeEnvelopeOut(t *testing.T) {
	owner := solana.PublicKeyFromBytes(bytes.Repeat([]byte{0xbb}, 32))

	view := coder.OutEvent{
		Side:                 coder.SideAsk,
		ReleaseFunds:         true,
		NativeQtyUnlocked:    500,
		NativeQtyStillLocked: 600,
		OrderID:              bin.Uint128{Lo: 5, Hi: 0},
		Owner:                owner,
		OwnerSlot:            2,
		ClientOrderID:        11,
	}

	envelope := makeEnvelope("marketAddr", view, 43, 0, "rpc")

	assert.Equal(t, types.EventKindOut, envelope.Kind)
	assert.Equal(t, "ask", envelope.Side)
	assert.True(t, envelope.ReleaseFunds)
	assert.Equal(t, uint64(500), envelope.NativeQtyUnlocked)
	assert.Equal(t, uint64(600), envelope.NativeQtyStillLocked)
	assert.Equal(t, "5", envelope.OrderID)
	assert.Equal(t, uint64(43), envelope.SeqNum)
	assert.Zero(t, envelope.NativeQtyPaid)
	assert.False(t, envelope.Maker)
}
