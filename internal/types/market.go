package types

import "github.com/gagliardetto/solana-go"

// MarketKeys is the account set a consumer needs to follow one market. All
// identifiers come straight from the decoded market record except
// VaultSigner, which is re-derived from the stored nonce.
type MarketKeys struct {
	Market       solana.PublicKey `json:"market"`
	RequestQueue solana.PublicKey `json:"requestQueue"`
	EventQueue   solana.PublicKey `json:"eventQueue"`
	Bids         solana.PublicKey `json:"bids"`
	Asks         solana.PublicKey `json:"asks"`
	CoinVault    solana.PublicKey `json:"coinVault"`
	PcVault      solana.PublicKey `json:"pcVault"`
	VaultSigner  solana.PublicKey `json:"vaultSigner"`
	CoinMint     solana.PublicKey `json:"coinMint"`
	PcMint       solana.PublicKey `json:"pcMint"`
	CoinLotSize  uint64           `json:"coinLotSize"`
	PcLotSize    uint64           `json:"pcLotSize"`
}
