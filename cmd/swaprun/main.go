package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"

	"github.com/vultisig/swaprun/internal/graceful"
	"github.com/vultisig/swaprun/internal/jupiter"
	"github.com/vultisig/swaprun/internal/solana"
	"github.com/vultisig/swaprun/internal/swap"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.DebugLevel)

	cfg, err := newConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	key, err := loadSigningKey(cfg.Signer)
	if err != nil {
		logger.Fatalf("failed to load signing key: %v", err)
	}

	signer, err := solana.NewSignerService(key)
	if err != nil {
		logger.Fatalf("failed to initialize signer: %v", err)
	}

	svc := swap.NewService(
		logger,
		jupiter.NewProvider(cfg.Jupiter.URL),
		signer,
		cfg.Swap.Timeout,
	)

	sigCh := graceful.MakeSigintChan()
	go func() {
		<-sigCh
		logger.Info("shutdown signal received, cancelling run")
		cancel()
	}()

	res, err := svc.Execute(
		ctx,
		swap.From{
			Amount:  cfg.Swap.Amount,
			AssetID: cfg.Swap.InputMint,
		},
		swap.To{
			AssetID: cfg.Swap.OutputMint,
		},
	)
	if err != nil {
		logger.Fatalf("swap pipeline failed: %v", err)
	}

	logger.WithFields(logrus.Fields{
		"payer":     signer.PayerIdentity(),
		"signature": res.Tx.Signatures[0].String(),
		"tx_bytes":  len(res.SignedRaw),
	}).Info("signed swap transaction ready")

	fmt.Println(base64.StdEncoding.EncodeToString(res.SignedRaw))
}

func loadSigningKey(cfg signerConfig) (solanago.PrivateKey, error) {
	switch {
	case cfg.Key != "" && cfg.KeygenFile != "":
		return nil, fmt.Errorf("SIGNER_KEY and SIGNER_KEYGENFILE are mutually exclusive")
	case cfg.Key != "":
		key, err := solanago.PrivateKeyFromBase58(cfg.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to parse base58 key: %w", err)
		}
		return key, nil
	case cfg.KeygenFile != "":
		key, err := solanago.PrivateKeyFromSolanaKeygenFile(cfg.KeygenFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load keygen file: %w", err)
		}
		return key, nil
	default:
		return nil, fmt.Errorf("either SIGNER_KEY or SIGNER_KEYGENFILE must be set")
	}
}
