package coder

import "fmt"

// Account flag bit positions, one per serum account kind plus lifecycle
// markers. Fixed by the on-chain program.
const (
	FlagInitialized uint64 = 1 << iota
	FlagMarket
	FlagOpenOrders
	FlagRequestQueue
	FlagEventQueue
	FlagBids
	FlagAsks
	FlagDisabled
	FlagClosed
	FlagPermissioned
	FlagCrankAuthorityRequired
)

const knownFlags = FlagInitialized | FlagMarket | FlagOpenOrders |
	FlagRequestQueue | FlagEventQueue | FlagBids | FlagAsks |
	FlagDisabled | FlagClosed | FlagPermissioned |
	FlagCrankAuthorityRequired

// checkFlags verifies flags carry exactly the wanted bits and nothing
// outside the known set. A set Disabled bit is tolerated, matching the
// on-chain program's own account checks.
func checkFlags(flags, want uint64) error {
	if flags&^knownFlags != 0 {
		return fmt.Errorf("%w: unknown bits in %#x", ErrInvalidFlags, flags)
	}

	if flags&^FlagDisabled != want {
		return fmt.Errorf("%w: got %#x, want %#x", ErrInvalidFlags, flags, want)
	}

	return nil
}
