package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arejula27/jab-go/internal/wallet"
)

const (
	walletPublicKeyFile = "jab.pub"
	walletSecretKeyFile = ".jab.key"
)

func generateWallet(dir string) (*wallet.Wallet, error) {
	w, err := wallet.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate wallet: %w", err)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create wallet directory %s: %w", dir, err)
	}
	secret := w.SecretKey()
	if err := writeKeyFile(dir, walletSecretKeyFile, secret[:]); err != nil {
		return nil, err
	}
	if err := writeKeyFile(dir, walletPublicKeyFile, []byte(w.PublicKey())); err != nil {
		return nil, err
	}
	return w, nil
}

func openWallet(dir string) (*wallet.Wallet, error) {
	raw, err := readKeyFile(dir, walletSecretKeyFile)
	if err != nil {
		return nil, err
	}
	if len(raw) != wallet.SecretKeySize {
		return nil, fmt.Errorf("open wallet: secret key file has %d bytes, want %d", len(raw), wallet.SecretKeySize)
	}
	var secret [wallet.SecretKeySize]byte
	copy(secret[:], raw)
	w, err := wallet.FromSecretBytes(secret)
	if err != nil {
		return nil, fmt.Errorf("open wallet: %w", err)
	}
	return w, nil
}

func writeKeyFile(dir, filename string, data []byte) error {
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func readKeyFile(dir, filename string) ([]byte, error) {
	path := filepath.Join(dir, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
