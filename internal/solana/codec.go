package solana

import (
	"encoding/base64"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// ErrMalformedTransaction covers payloads that do not decode as a versioned
// transaction: invalid base64, truncated bytes, unsupported version tags.
var ErrMalformedTransaction = errors.New("solana: malformed transaction")

// DecodeTransaction parses wire bytes into a transaction. On failure no
// partial object is returned.
func DecodeTransaction(data []byte) (*solana.Transaction, error) {
	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(data))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode transaction: %w", ErrMalformedTransaction, err)
	}
	return tx, nil
}

// DecodeBase64Transaction parses the text form returned by swap providers.
func DecodeBase64Transaction(encoded string) (*solana.Transaction, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode base64: %w", ErrMalformedTransaction, err)
	}
	return DecodeTransaction(data)
}

// EncodeTransaction produces the canonical wire bytes, signature slots
// included. A transaction with empty signature slots still encodes; it is the
// caller's job to sign before treating the bytes as submittable.
func EncodeTransaction(tx *solana.Transaction) ([]byte, error) {
	data, err := tx.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction: %w", err)
	}
	return data, nil
}
