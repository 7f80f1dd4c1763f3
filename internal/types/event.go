package types

// EventEnvelope is the wire form of one decoded queue event, published to
// the redis stream and the websocket feed and stored in MySQL. Kind is
// "fill" or "out"; fields that do not apply to the kind stay zero.
type EventEnvelope struct {
	Market               string `json:"market"`
	Kind                 string `json:"kind"`
	Side                 string `json:"side"`
	Maker                bool   `json:"maker"`
	ReleaseFunds         bool   `json:"releaseFunds"`
	NativeQtyPaid        uint64 `json:"nativeQtyPaid"`
	NativeQtyReceived    uint64 `json:"nativeQtyReceived"`
	NativeQtyUnlocked    uint64 `json:"nativeQtyUnlocked"`
	NativeQtyStillLocked uint64 `json:"nativeQtyStillLocked"`
	NativeFeeOrRebate    uint64 `json:"nativeFeeOrRebate"`
	FeeTier              uint8  `json:"feeTier"`
	OrderID              string `json:"orderId"`
	Owner                string `json:"owner"`
	OwnerSlot            uint8  `json:"ownerSlot"`
	ClientOrderID        uint64 `json:"clientOrderId"`
	SeqNum               uint64 `json:"seqNum"`
	Slot                 uint64 `json:"slot"`
	Source               string `json:"source"`
	Timestamp            int64  `json:"timestamp"`
}

const (
	EventKindFill = "fill"
	EventKindOut  = "out"
)
