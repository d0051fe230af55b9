package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeWalletFile(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "wallet.key")
	if err := os.WriteFile(path, make([]byte, 32), 0o600); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}
	return path
}

func TestLoadSucceedsWithDatabaseDir(t *testing.T) {
	walletPath := writeWalletFile(t)
	t.Setenv("DATABASE_DIR", t.TempDir())
	t.Setenv("DATABASE_DIRECTORY", "")
	t.Setenv("WALLET_SECRET_KEY", walletPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WalletSecretKeyPath != walletPath {
		t.Errorf("WalletSecretKeyPath = %q, want %q", cfg.WalletSecretKeyPath, walletPath)
	}
}

func TestLoadFallsBackToDatabaseDirectory(t *testing.T) {
	walletPath := writeWalletFile(t)
	dbDir := t.TempDir()
	t.Setenv("DATABASE_DIR", "")
	t.Setenv("DATABASE_DIRECTORY", dbDir)
	t.Setenv("WALLET_SECRET_KEY", walletPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DatabaseDir != dbDir {
		t.Errorf("DatabaseDir = %q, want %q", cfg.DatabaseDir, dbDir)
	}
}

func TestLoadFailsWithoutDatabaseDir(t *testing.T) {
	walletPath := writeWalletFile(t)
	t.Setenv("DATABASE_DIR", "")
	t.Setenv("DATABASE_DIRECTORY", "")
	t.Setenv("WALLET_SECRET_KEY", walletPath)

	if _, err := Load(); err == nil {
		t.Fatal("expected an error when no database directory is configured")
	}
}

func TestLoadFailsWhenWalletFileMissing(t *testing.T) {
	t.Setenv("DATABASE_DIR", t.TempDir())
	t.Setenv("WALLET_SECRET_KEY", filepath.Join(t.TempDir(), "missing.key"))

	if _, err := Load(); err == nil {
		t.Fatal("expected an error when the wallet secret key file does not exist")
	}
}
