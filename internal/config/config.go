// Package config loads the small set of environment variables a jab daemon
// needs to start: where to keep its block store and where to find its
// wallet secret key.
package config

import (
	"fmt"
	"os"
)

// Config holds the node's environment-derived startup parameters.
type Config struct {
	// DatabaseDir is the filesystem path to the block store.
	DatabaseDir string
	// WalletSecretKeyPath is the path to the 32-byte wallet secret key
	// file. The node does not create this file; a client tool does.
	WalletSecretKeyPath string
}

// Load reads DATABASE_DIR (or DATABASE_DIRECTORY) and WALLET_SECRET_KEY from
// the process environment. Both are required; Load fails fast if either is
// absent, since a daemon with no store path or no wallet cannot proceed.
func Load() (*Config, error) {
	dbDir := os.Getenv("DATABASE_DIR")
	if dbDir == "" {
		dbDir = os.Getenv("DATABASE_DIRECTORY")
	}
	if dbDir == "" {
		return nil, fmt.Errorf("config: DATABASE_DIR (or DATABASE_DIRECTORY) is not set")
	}

	walletPath := os.Getenv("WALLET_SECRET_KEY")
	if walletPath == "" {
		return nil, fmt.Errorf("config: WALLET_SECRET_KEY is not set")
	}
	if _, err := os.Stat(walletPath); err != nil {
		return nil, fmt.Errorf("config: wallet secret key file: %w", err)
	}

	return &Config{DatabaseDir: dbDir, WalletSecretKeyPath: walletPath}, nil
}
