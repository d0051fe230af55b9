package testutil

import (
	"testing"
	"time"

	"github.com/arejula27/jab-go/internal/types"
	"github.com/arejula27/jab-go/internal/wallet"
)

// MustAmount parses a decimal string into a types.Amount or fails the test.
func MustAmount(t *testing.T, s string) types.Amount {
	t.Helper()
	a, err := types.ParseAmount(s)
	if err != nil {
		t.Fatalf("invalid amount %q: %v", s, err)
	}
	return a
}

// MustWallet generates a fresh wallet or fails the test.
func MustWallet(t *testing.T) *wallet.Wallet {
	t.Helper()
	w, err := wallet.Generate()
	if err != nil {
		t.Fatalf("wallet.Generate: %v", err)
	}
	return w
}

// SampleTransaction builds a single-input, single-output transaction signed
// by w, spending amount from w's own address to recipient.
func SampleTransaction(t *testing.T, w *wallet.Wallet, recipient string, amount types.Amount) types.Transaction {
	t.Helper()
	tx, err := types.NewTransactionBuilder(types.V1).
		Input(w.Address(), amount).
		Output(recipient, amount).
		SignWithWallet(w)
	if err != nil {
		t.Fatalf("SignWithWallet: %v", err)
	}
	return *tx
}

// SampleBlock wraps tx in a block at index extending parentMerkleRoot.
func SampleBlock(index uint64, parentMerkleRoot, merkleRoot string, tx types.Transaction) types.Block {
	header := types.NewBlockHeader(types.V010, &parentMerkleRoot, merkleRoot, time.Unix(0, 0).UTC())
	return types.NewBlock(index, header, tx)
}
