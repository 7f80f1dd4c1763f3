package coder

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

const (
	marketV1Size = 376
	marketV2Size = 1464
)

// MarketState is the market descriptor common to both on-disk layouts.
// Permissioned markets wrap it with extra authority fields; both decode
// paths project into this one record.
type MarketState struct {
	AccountFlags           uint64
	OwnAddress             solana.PublicKey
	VaultSignerNonce       uint64
	CoinMint               solana.PublicKey
	PcMint                 solana.PublicKey
	CoinVault              solana.PublicKey
	CoinDepositsTotal      uint64
	CoinFeesAccrued        uint64
	PcVault                solana.PublicKey
	PcDepositsTotal        uint64
	PcFeesAccrued          uint64
	PcDustThreshold        uint64
	RequestQueue           solana.PublicKey
	EventQueue             solana.PublicKey
	Bids                   solana.PublicKey
	Asks                   solana.PublicKey
	CoinLotSize            uint64
	PcLotSize              uint64
	FeeRateBps             uint64
	ReferrerRebatesAccrued uint64
}

// MarketStateV2 is the permissioned-market layout: the plain record plus
// crank authorities and reserved space for future fields.
type MarketStateV2 struct {
	MarketState
	OpenOrdersAuthority    solana.PublicKey
	PruneAuthority         solana.PublicKey
	ConsumeEventsAuthority solana.PublicKey
	Unused                 [992]byte
}

// Permissioned reports whether the market restricts open-orders creation
// to an authority. Decided by the account-flags word.
func (m *MarketState) Permissioned() bool {
	return m.AccountFlags&FlagPermissioned != 0
}

// DecodeMarket inspects the account-flags word to pick the market layout,
// decodes it, and projects out the common record. words is the stripped
// interior from StripPadding.
func DecodeMarket(words Words) (*MarketState, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: no account flags word", ErrMarketSize)
	}

	flags := words[0]
	want := FlagInitialized | FlagMarket
	if flags&FlagPermissioned != 0 {
		want |= FlagPermissioned
	}

	data := words.Bytes()

	if flags&FlagPermissioned != 0 {
		if len(data) != marketV2Size {
			return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrMarketSize, len(data), marketV2Size)
		}

		var state MarketStateV2
		if err := bin.NewBinDecoder(data).Decode(&state); err != nil {
			return nil, err
		}

		if err := checkFlags(state.AccountFlags, want); err != nil {
			return nil, err
		}

		inner := state.MarketState
		return &inner, nil
	}

	if len(data) != marketV1Size {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrMarketSize, len(data), marketV1Size)
	}

	var state MarketState
	if err := bin.NewBinDecoder(data).Decode(&state); err != nil {
		return nil, err
	}

	if err := checkFlags(state.AccountFlags, want); err != nil {
		return nil, err
	}

	return &state, nil
}
