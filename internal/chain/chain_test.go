package chain

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/arejula27/jab-go/internal/types"
	"github.com/arejula27/jab-go/testutil"
	"go.uber.org/zap"
)

func openTestChain(t *testing.T) *Chain {
	t.Helper()
	dir := t.TempDir()
	c, err := Open(filepath.Join(dir, "chain.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func amt(t *testing.T, s string) types.Amount {
	t.Helper()
	return testutil.MustAmount(t, s)
}

func TestOpenBootstrapsGenesis(t *testing.T) {
	c := openTestChain(t)

	genesis, err := c.GetGenesisBlock()
	if err != nil {
		t.Fatalf("GetGenesisBlock: %v", err)
	}
	if genesis.Index != 0 {
		t.Errorf("genesis index = %d, want 0", genesis.Index)
	}
	if genesis.Header.PreviousBlockHeaderHash != nil {
		t.Error("genesis should have no parent hash")
	}
	if genesis.Transaction.Signature != GenesisSignature {
		t.Errorf("genesis signature = %q, want %q", genesis.Transaction.Signature, GenesisSignature)
	}
	if !genesis.Transaction.AmountReceived(GenesisAddress).Equal(GenesisAmount) {
		t.Errorf("genesis amount = %s, want %s", genesis.Transaction.AmountReceived(GenesisAddress), GenesisAmount)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chain.db")

	c1, err := Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	g1, _ := c1.GetGenesisBlock()
	_ = c1.Close()

	c2, err := Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer c2.Close()
	g2, _ := c2.GetGenesisBlock()

	if g1.Header.MerkleRootHash != g2.Header.MerkleRootHash {
		t.Error("genesis should be stable across reopen")
	}
}

func TestGetLatestBlockFallsBackToGenesis(t *testing.T) {
	c := openTestChain(t)
	latest, err := c.GetLatestBlock()
	if err != nil {
		t.Fatalf("GetLatestBlock: %v", err)
	}
	if latest.Index != 0 {
		t.Errorf("latest index = %d, want 0", latest.Index)
	}
}

func TestGenerateNextBlockExtendsChain(t *testing.T) {
	c := openTestChain(t)
	tx := *types.NewTransactionBuilder(types.V1).
		Input(GenesisAddress, amt(t, "1")).
		Output("bob", amt(t, "1")).
		Finish("sig")

	next, err := c.GenerateNextBlock(tx)
	if err != nil {
		t.Fatalf("GenerateNextBlock: %v", err)
	}
	if next.Index != 1 {
		t.Errorf("index = %d, want 1", next.Index)
	}

	latest, err := c.GetLatestBlock()
	if err != nil {
		t.Fatalf("GetLatestBlock: %v", err)
	}
	if latest.Index != 1 {
		t.Errorf("latest index = %d, want 1", latest.Index)
	}
}

func TestAddBlockRejectsWrongIndex(t *testing.T) {
	c := openTestChain(t)
	genesis, _ := c.GetGenesisBlock()
	bad := types.NewBlock(5, genesis.Header, genesis.Transaction)

	if err := c.AddBlock(bad); err == nil {
		t.Fatal("expected an error for a non-contiguous index")
	}
}

func TestAddBlockRejectsWrongParentHash(t *testing.T) {
	c := openTestChain(t)
	parent := "not-the-real-parent-hash"
	header := types.NewBlockHeader(types.V010, &parent, "root", time.Unix(0, 0))
	bad := types.NewBlock(1, header, genesisTransaction())

	if err := c.AddBlock(bad); err == nil {
		t.Fatal("expected an error for a mismatched parent hash")
	}
}

// The genesis transaction has no inputs, so its recipient never appears as
// an input address and WalletAmount does not count it.
func TestWalletAmountIgnoresGenesisRecipient(t *testing.T) {
	c := openTestChain(t)
	amount, ok, err := c.WalletAmount(GenesisAddress)
	if err != nil {
		t.Fatalf("WalletAmount: %v", err)
	}
	if ok {
		t.Fatal("expected genesis address, seen only as an output, to not be found")
	}
	if !amount.Equal(types.ZeroAmount) {
		t.Errorf("amount = %s, want 0", amount)
	}
}

func TestWalletAmountUnknownAddress(t *testing.T) {
	c := openTestChain(t)
	_, ok, err := c.WalletAmount("nobody")
	if err != nil {
		t.Fatalf("WalletAmount: %v", err)
	}
	if ok {
		t.Fatal("expected unknown address to not be found")
	}
}

func TestWalletExists(t *testing.T) {
	c := openTestChain(t)
	// a zero-amount transaction registers alice as an input address.
	register := *types.NewTransactionBuilder(types.V1).
		Input("alice", types.ZeroAmount).
		Output("alice", types.ZeroAmount).
		Finish("sig")
	if _, err := c.GenerateNextBlock(register); err != nil {
		t.Fatalf("GenerateNextBlock: %v", err)
	}

	exists, err := c.WalletExists("alice")
	if err != nil {
		t.Fatalf("WalletExists: %v", err)
	}
	if !exists {
		t.Fatal("expected registered address to exist")
	}

	exists, err = c.WalletExists("nobody")
	if err != nil {
		t.Fatalf("WalletExists: %v", err)
	}
	if exists {
		t.Fatal("expected unknown address to not exist")
	}
}

func TestWalletTransactionsIncludesOutputReferences(t *testing.T) {
	c := openTestChain(t)
	tx := *types.NewTransactionBuilder(types.V1).
		Input(GenesisAddress, amt(t, "1")).
		Output("bob", amt(t, "1")).
		Finish("sig")
	if _, err := c.GenerateNextBlock(tx); err != nil {
		t.Fatalf("GenerateNextBlock: %v", err)
	}

	txs, ok, err := c.WalletTransactions("bob")
	if err != nil {
		t.Fatalf("WalletTransactions: %v", err)
	}
	if !ok || len(txs) != 1 {
		t.Fatalf("expected one transaction referencing bob, got %d (ok=%v)", len(txs), ok)
	}
}
