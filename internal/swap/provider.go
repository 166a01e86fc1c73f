package swap

import (
	"context"
	"encoding/json"
)

// Provider is a swap aggregator that quotes a route and builds an unsigned
// transaction for it. The quote payload is opaque: its schema belongs to the
// aggregator and implementations must pass it through verbatim.
type Provider interface {
	// GetQuote fetches a routing descriptor for the given pair and amount
	GetQuote(ctx context.Context, inputMint, outputMint string, amount uint64) (json.RawMessage, error)

	// BuildSwapTransaction turns a routing descriptor plus the payer identity
	// into a base64-encoded unsigned transaction
	BuildSwapTransaction(ctx context.Context, quote json.RawMessage, userPublicKey string) (string, error)
}

type From struct {
	Amount  uint64
	AssetID string
}

type To struct {
	AssetID string
}
