package market

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// AccountSource fetches the full raw data of one account. Implementations
// own transport, commitment and retry policy; the decode layer passes their
// failures through untouched.
type AccountSource interface {
	FetchAccountBytes(ctx context.Context, account solana.PublicKey) ([]byte, error)
}
