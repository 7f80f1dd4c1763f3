package coder

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rawEvent lays out one 88-byte slot by hand: flags, owner slot, fee tier,
// 5 pad bytes, three u64 quantities, the u128 order id, the 32-byte owner
// and the client order id.
func rawEvent(flags, ownerSlot, feeTier uint8, released, paid, fee uint64, orderLo, orderHi uint64, owner solana.PublicKey, clientID uint64) []byte {
	slot := make([]byte, eventSize)
	slot[0] = flags
	slot[1] = ownerSlot
	slot[2] = feeTier
	binary.LittleEndian.PutUint64(slot[8:], released)
	binary.LittleEndian.PutUint64(slot[16:], paid)
	binary.LittleEndian.PutUint64(slot[24:], fee)
	binary.LittleEndian.PutUint64(slot[32:], orderLo)
	binary.LittleEndian.PutUint64(slot[40:], orderHi)
	copy(slot[48:80], owner[:])
	binary.LittleEndian.PutUint64(slot[80:], clientID)
	return slot
}

func queueWords(t *testing.T, header EventQueueHeader, slots ...[]byte) Words {
	t.Helper()

	interior := make([]byte, queueHeaderWords*8)
	binary.LittleEndian.PutUint64(interior[0:], header.AccountFlags)
	binary.LittleEndian.PutUint64(interior[8:], header.Head)
	binary.LittleEndian.PutUint64(interior[16:], header.Count)
	binary.LittleEndian.PutUint64(interior[24:], header.SeqNum)
	for _, slot := range slots {
		interior = append(interior, slot...)
	}

	words, err := StripPadding(padded(interior))
	require.NoError(t, err)
	return words
}

func fillSlots(n int) [][]byte {
	slots := make([][]byte, n)
	for i := range slots {
		slots[i] = rawEvent(EventFlagFill, 0, 0, 0, 0, 0, uint64(i), 0, seqKey(0xaa), uint64(i))
	}
	return slots
}

func TestParseEventQueueFillView(t *testing.T) {
	owner := seqKey(0x42)
	header := EventQueueHeader{AccountFlags: FlagInitialized | FlagEventQueue, Head: 0, Count: 1, SeqNum: 9}
	slot := rawEvent(EventFlagFill|EventFlagBid|EventFlagMaker, 7, 4, 111, 222, 33, 1234, 5, owner, 99)

	queue, err := ParseEventQueue(queueWords(t, header, slot))
	require.NoError(t, err)
	assert.Equal(t, header, queue.Header)
	require.Len(t, queue.Events, 1)

	fill, ok := queue.Events[0].(FillEvent)
	require.True(t, ok)
	assert.Equal(t, SideBid, fill.Side)
	assert.True(t, fill.Maker)
	assert.Equal(t, uint64(222), fill.NativeQtyPaid)
	assert.Equal(t, uint64(111), fill.NativeQtyReceived)
	assert.Equal(t, uint64(33), fill.NativeFeeOrRebate)
	assert.Equal(t, uint8(4), fill.FeeTier)
	assert.Equal(t, uint64(1234), fill.OrderID.Lo)
	assert.Equal(t, uint64(5), fill.OrderID.Hi)
	assert.Equal(t, owner, fill.Owner)
	assert.Equal(t, uint8(7), fill.OwnerSlot)
	assert.Equal(t, uint64(99), fill.ClientOrderID)
}

func TestParseEventQueueOutView(t *testing.T) {
	owner := seqKey(0x43)
	header := EventQueueHeader{Head: 0, Count: 1, SeqNum: 3}
	slot := rawEvent(EventFlagOut|EventFlagReleaseFunds, 2, 0, 444, 555, 0, 77, 0, owner, 12)

	queue, err := ParseEventQueue(queueWords(t, header, slot))
	require.NoError(t, err)
	require.Len(t, queue.Events, 1)

	out, ok := queue.Events[0].(OutEvent)
	require.True(t, ok)
	assert.Equal(t, SideAsk, out.Side)
	assert.True(t, out.ReleaseFunds)
	assert.Equal(t, uint64(444), out.NativeQtyUnlocked)
	assert.Equal(t, uint64(555), out.NativeQtyStillLocked)
	assert.Equal(t, uint64(77), out.OrderID.Lo)
	assert.Equal(t, owner, out.Owner)
	assert.Equal(t, uint8(2), out.OwnerSlot)
	assert.Equal(t, uint64(12), out.ClientOrderID)
}

func TestParseEventQueueWraparound(t *testing.T) {
	header := EventQueueHeader{Head: 8, Count: 5, SeqNum: 105}

	queue, err := ParseEventQueue(queueWords(t, header, fillSlots(10)...))
	require.NoError(t, err)
	require.Len(t, queue.Events, 5)

	wantOrder := []uint64{8, 9, 0, 1, 2}
	for i, view := range queue.Events {
		fill, ok := view.(FillEvent)
		require.True(t, ok)
		assert.Equal(t, wantOrder[i], fill.ClientOrderID, "position %d", i)
	}
}

func TestParseEventQueueHeadBeyondCapacity(t *testing.T) {
	header := EventQueueHeader{Head: 18, Count: 3, SeqNum: 50}

	queue, err := ParseEventQueue(queueWords(t, header, fillSlots(10)...))
	require.NoError(t, err)
	require.Len(t, queue.Events, 3)

	wantOrder := []uint64{8, 9, 0}
	for i, view := range queue.Events {
		assert.Equal(t, wantOrder[i], view.(FillEvent).ClientOrderID, "position %d", i)
	}
}

func TestParseEventQueueCountClamped(t *testing.T) {
	header := EventQueueHeader{Head: 3, Count: 25, SeqNum: 400}

	queue, err := ParseEventQueue(queueWords(t, header, fillSlots(10)...))
	require.NoError(t, err)
	require.Len(t, queue.Events, 10)

	assert.Equal(t, uint64(3), queue.Events[0].(FillEvent).ClientOrderID)
	assert.Equal(t, uint64(2), queue.Events[9].(FillEvent).ClientOrderID)
}

func TestParseEventQueueTrailingBytesIgnored(t *testing.T) {
	slots := fillSlots(4)
	partial := rawEvent(EventFlagFill, 0, 0, 0, 0, 0, 9, 0, seqKey(0xaa), 9)[:40]
	slots = append(slots, partial)

	header := EventQueueHeader{Head: 3, Count: 2, SeqNum: 7}
	queue, err := ParseEventQueue(queueWords(t, header, slots...))
	require.NoError(t, err)
	require.Len(t, queue.Events, 2)

	assert.Equal(t, uint64(3), queue.Events[0].(FillEvent).ClientOrderID)
	assert.Equal(t, uint64(0), queue.Events[1].(FillEvent).ClientOrderID)
}

func TestParseEventQueueNoSlots(t *testing.T) {
	queue, err := ParseEventQueue(queueWords(t, EventQueueHeader{Count: 3}))
	require.NoError(t, err)
	assert.Empty(t, queue.Events)
}

func TestParseEventQueueTooShort(t *testing.T) {
	_, err := ParseEventQueue(Words{1, 2})
	assert.ErrorIs(t, err, ErrQueueSize)
}

func TestParseEventQueueUnknownTagAbortsBatch(t *testing.T) {
	cases := map[string]uint8{
		"no tag bits":    0,
		"unknown bit":    0x20,
		"fill with out":  EventFlagFill | EventFlagOut,
		"out with maker": EventFlagOut | EventFlagMaker,
	}

	for name, flags := range cases {
		t.Run(name, func(t *testing.T) {
			good := rawEvent(EventFlagFill, 0, 0, 1, 2, 3, 4, 0, seqKey(1), 5)
			bad := rawEvent(flags, 0, 0, 1, 2, 3, 4, 0, seqKey(1), 5)
			header := EventQueueHeader{Head: 0, Count: 2, SeqNum: 2}

			queue, err := ParseEventQueue(queueWords(t, header, good, bad))
			assert.ErrorIs(t, err, ErrEventFlags)
			assert.Nil(t, queue)
		})
	}
}
