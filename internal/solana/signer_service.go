package solana

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// ErrUnauthorizedSigner is returned when a held key is not part of the
// transaction's declared signer set. The transaction is left untouched.
var ErrUnauthorizedSigner = errors.New("solana: unauthorized signer")

// SignerService holds the long-lived key material and attaches signatures to
// decoded transactions. Keys never leave this service and are never logged.
type SignerService struct {
	keys []solana.PrivateKey
}

func NewSignerService(keys ...solana.PrivateKey) (*SignerService, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("at least one signing key is required")
	}
	for i, key := range keys {
		if len(key) != 64 {
			return nil, fmt.Errorf("signing key %d has invalid length %d", i, len(key))
		}
	}
	return &SignerService{keys: keys}, nil
}

// PayerIdentity returns the base58 public key of the first held key, the
// account expected to fund and authorize the swap.
func (s *SignerService) PayerIdentity() string {
	return s.keys[0].PublicKey().String()
}

// SignTransaction signs the transaction's message with every held key and
// writes each signature into the slot indexed by that key's position in the
// required-signer set, mutating the transaction in place. If any held key is
// not a required signer the transaction's existing signatures are left
// unchanged.
func (s *SignerService) SignTransaction(tx *solana.Transaction) error {
	msgBytes, err := tx.Message.MarshalBinary()
	if err != nil {
		return fmt.Errorf("failed to marshal transaction message: %w", err)
	}

	numRequired := int(tx.Message.Header.NumRequiredSignatures)
	if numRequired > len(tx.Message.AccountKeys) {
		return fmt.Errorf(
			"%w: transaction declares %d required signatures but carries %d account keys",
			ErrMalformedTransaction,
			numRequired,
			len(tx.Message.AccountKeys),
		)
	}
	signers := tx.Message.AccountKeys[:numRequired]

	// Resolve every slot before attaching anything, so an unauthorized key
	// cannot leave the transaction half-mutated.
	slots := make([]int, len(s.keys))
	for i, key := range s.keys {
		pub := key.PublicKey()

		slot := -1
		for idx, signer := range signers {
			if signer.Equals(pub) {
				slot = idx
				break
			}
		}
		if slot < 0 {
			return fmt.Errorf("%w: %s is not in the transaction's signer set", ErrUnauthorizedSigner, pub)
		}
		slots[i] = slot
	}

	if len(tx.Signatures) < numRequired {
		sigs := make([]solana.Signature, numRequired)
		copy(sigs, tx.Signatures)
		tx.Signatures = sigs
	}

	for i, key := range s.keys {
		sig, er := key.Sign(msgBytes)
		if er != nil {
			return fmt.Errorf("failed to sign transaction message: %w", er)
		}
		tx.Signatures[slots[i]] = sig
	}

	return nil
}
