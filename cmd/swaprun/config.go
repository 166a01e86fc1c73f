package main

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type config struct {
	Jupiter jupiterConfig
	Swap    swapConfig
	Signer  signerConfig
}

type jupiterConfig struct {
	URL string `default:"https://lite-api.jup.ag"`
}

type swapConfig struct {
	InputMint  string
	OutputMint string
	Amount     uint64        `required:"true"`
	Timeout    time.Duration `default:"10s"`
}

// signerConfig supplies the key material before pipeline start. Exactly one of
// Key (base58-encoded 64-byte keypair) or KeygenFile (Solana CLI keygen JSON)
// must be set.
type signerConfig struct {
	Key        string
	KeygenFile string
}

func newConfig() (config, error) {
	var cfg config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return config{}, fmt.Errorf("failed to process env var: %w", err)
	}
	return cfg, nil
}
