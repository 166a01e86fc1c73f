package swap

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"

	solanatx "github.com/vultisig/swaprun/internal/solana"
	"github.com/vultisig/swaprun/internal/util"
)

const DefaultCallTimeout = 10 * time.Second

// Result is the observable output of one pipeline run: the signed structured
// transaction and its wire bytes.
type Result struct {
	Quote     json.RawMessage
	Tx        *solana.Transaction
	SignedRaw []byte
}

type Service struct {
	logger      logrus.FieldLogger
	provider    Provider
	signer      *solanatx.SignerService
	callTimeout time.Duration
}

func NewService(
	logger logrus.FieldLogger,
	provider Provider,
	signer *solanatx.SignerService,
	callTimeout time.Duration,
) *Service {
	if callTimeout <= 0 {
		callTimeout = DefaultCallTimeout
	}
	return &Service{
		logger:      logger,
		provider:    provider,
		signer:      signer,
		callTimeout: callTimeout,
	}
}

// Execute runs the pipeline once: quote, build, decode, sign, encode. Each
// network call is bounded by its own timeout; any failure unwinds the run
// immediately with the failing step's context attached.
func (s *Service) Execute(ctx context.Context, from From, to To) (*Result, error) {
	inputMint := util.IfEmptyElse(from.AssetID, solana.SolMint.String())
	outputMint := util.IfEmptyElse(to.AssetID, solana.SolMint.String())

	quoteCtx, cancelQuote := context.WithTimeout(ctx, s.callTimeout)
	defer cancelQuote()

	quote, err := s.provider.GetQuote(quoteCtx, inputMint, outputMint, from.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"input_mint":  inputMint,
		"output_mint": outputMint,
		"amount":      from.Amount,
	}).Info("received quote")

	buildCtx, cancelBuild := context.WithTimeout(ctx, s.callTimeout)
	defer cancelBuild()

	encodedTx, err := s.provider.BuildSwapTransaction(buildCtx, quote, s.signer.PayerIdentity())
	if err != nil {
		return nil, fmt.Errorf("failed to build swap transaction: %w", err)
	}
	s.logger.WithField("payer", s.signer.PayerIdentity()).Info("received unsigned swap transaction")

	tx, err := solanatx.DecodeBase64Transaction(encodedTx)
	if err != nil {
		return nil, fmt.Errorf("failed to decode swap transaction: %w", err)
	}

	err = s.signer.SignTransaction(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to sign swap transaction: %w", err)
	}

	signedRaw, err := solanatx.EncodeTransaction(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize signed transaction: %w", err)
	}
	s.logger.WithField("tx_bytes", len(signedRaw)).Info("transaction signed")

	return &Result{
		Quote:     quote,
		Tx:        tx,
		SignedRaw: signedRaw,
	}, nil
}
