package types

import "github.com/gagliardetto/solana-go"

// TrackedMarket is one market the relay follows. EventQueue is resolved from
// the market account once at track time; updates for that address drive the
// relay loop.
type TrackedMarket struct {
	Market      *solana.PublicKey `json:"market"`
	EventQueue  *solana.PublicKey `json:"eventQueue"`
	Status      string            `json:"status"`
	LastUpdated int64             `json:"lastUpdated"`
}
