package market

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/iqbalbaharum/serum-event-tracker/internal/coder"
	"github.com/iqbalbaharum/serum-event-tracker/internal/types"
)

var (
	ErrOwnAddress  = errors.New("market own address does not match queried account")
	ErrVaultSigner = errors.New("vault signer derivation failed")
)

// VaultSigner recomputes the program address authorized to move funds out
// of the market's vaults. The stored nonce is the one found valid when the
// market was created, so derivation failure means a corrupt or foreign
// record.
func VaultSigner(nonce uint64, marketID, programID solana.PublicKey) (solana.PublicKey, error) {
	seed := make([]byte, 8)
	binary.LittleEndian.PutUint64(seed, nonce)

	signer, err := solana.CreateProgramAddress([][]byte{marketID.Bytes(), seed}, programID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: nonce %d: %v", ErrVaultSigner, nonce, err)
	}

	return signer, nil
}

// DeriveKeys cross-checks the decoded record against the queried market and
// assembles the full account set, with the vault signer re-derived rather
// than trusted from chain data.
func DeriveKeys(state *coder.MarketState, programID, marketID solana.PublicKey) (*types.MarketKeys, error) {
	if !state.OwnAddress.Equals(marketID) {
		return nil, fmt.Errorf("%w: decoded %s, queried %s", ErrOwnAddress, state.OwnAddress, marketID)
	}

	signer, err := VaultSigner(state.VaultSignerNonce, marketID, programID)
	if err != nil {
		return nil, err
	}

	return &types.MarketKeys{
		Market:       marketID,
		RequestQueue: state.RequestQueue,
		EventQueue:   state.EventQueue,
		Bids:         state.Bids,
		Asks:         state.Asks,
		CoinVault:    state.CoinVault,
		PcVault:      state.PcVault,
		VaultSigner:  signer,
		CoinMint:     state.CoinMint,
		PcMint:       state.PcMint,
		CoinLotSize:  state.CoinLotSize,
		PcLotSize:    state.PcLotSize,
	}, nil
}
