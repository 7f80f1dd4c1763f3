package market

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iqbalbaharum/serum-event-tracker/internal/coder"
)

var (
	testProgramID = solana.MustPublicKeyFromBase58("9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin")
	testMarketID  = solana.MustPublicKeyFromBase58("9wFFyRfZBsuAha4YcuxcXLKwMxJR43S7fPfQLusDBzvT")
)

func fillKey(b byte) solana.PublicKey {
	return solana.PublicKeyFromBytes(bytes.Repeat([]byte{b}, 32))
}

// findNonces scans the nonce range the on-chain program itself searches at
// market creation: one value that derives a valid program address and one
// that lands on the curve and must fail.
func findNonces(t *testing.T, marketID, programID solana.PublicKey) (valid, invalid uint64, signer solana.PublicKey) {
	t.Helper()

	foundValid, foundInvalid := false, false
	for nonce := uint64(0); nonce < 256 && !(foundValid && foundInvalid); nonce++ {
		seed := make([]byte, 8)
		binary.LittleEndian.PutUint64(seed, nonce)

		addr, err := solana.CreateProgramAddress([][]byte{marketID.Bytes(), seed}, programID)
		if err == nil && !foundValid {
			valid, signer, foundValid = nonce, addr, true
		}
		if err != nil && !foundInvalid {
			invalid, foundInvalid = nonce, true
		}
	}

	require.True(t, foundValid, "no nonce in range derives a valid signer")
	require.True(t, foundInvalid, "no nonce in range fails derivation")
	return valid, invalid, signer
}

func sampleState(marketID solana.PublicKey, nonce uint64) coder.MarketState {
	return coder.MarketState{
		AccountFlags:     coder.FlagInitialized | coder.FlagMarket,
		OwnAddress:       marketID,
		VaultSignerNonce: nonce,
		CoinMint:         fillKey(2),
		PcMint:           fillKey(3),
		CoinVault:        fillKey(4),
		PcVault:          fillKey(5),
		RequestQueue:     fillKey(6),
		EventQueue:       fillKey(7),
		Bids:             fillKey(8),
		Asks:             fillKey(9),
		CoinLotSize:      100_000_000,
		PcLotSize:        100,
		FeeRateBps:       22,
	}
}

func TestDeriveKeysSignerMatchesReference(t *testing.T) {
	nonce, _, wantSigner := findNonces(t, testMarketID, testProgramID)
	state := sampleState(testMarketID, nonce)

	keys, err := DeriveKeys(&state, testProgramID, testMarketID)
	require.NoError(t, err)

	assert.Equal(t, wantSigner, keys.VaultSigner)
	assert.Equal(t, testMarketID, keys.Market)
	assert.Equal(t, state.RequestQueue, keys.RequestQueue)
	assert.Equal(t, state.EventQueue, keys.EventQueue)
	assert.Equal(t, state.Bids, keys.Bids)
	assert.Equal(t, state.Asks, keys.Asks)
	assert.Equal(t, state.CoinVault, keys.CoinVault)
	assert.Equal(t, state.PcVault, keys.PcVault)
	assert.Equal(t, state.CoinMint, keys.CoinMint)
	assert.Equal(t, state.PcMint, keys.PcMint)
}

func TestDeriveKeysDifferentNonceDifferentSigner(t *testing.T) {
	nonce, _, signer := findNonces(t, testMarketID, testProgramID)

	var otherSigner solana.PublicKey
	found := false
	for candidate := nonce + 1; candidate < nonce+256; candidate++ {
		state := sampleState(testMarketID, candidate)
		keys, err := DeriveKeys(&state, testProgramID, testMarketID)
		if err != nil {
			continue
		}
		otherSigner = keys.VaultSigner
		found = true
		break
	}

	require.True(t, found, "no second valid nonce in range")
	assert.NotEqual(t, signer, otherSigner)
}

func TestDeriveKeysSignerDerivationFailed(t *testing.T) {
	_, badNonce, _ := findNonces(t, testMarketID, testProgramID)
	state := sampleState(testMarketID, badNonce)

	_, err := DeriveKeys(&state, testProgramID, testMarketID)
	assert.ErrorIs(t, err, ErrVaultSigner)
}

func TestDeriveKeysSelfReferenceMismatch(t *testing.T) {
	nonce, _, _ := findNonces(t, testMarketID, testProgramID)
	state := sampleState(testMarketID, nonce)
	state.OwnAddress = fillKey(0xee)

	_, err := DeriveKeys(&state, testProgramID, testMarketID)
	assert.ErrorIs(t, err, ErrOwnAddress)
}
