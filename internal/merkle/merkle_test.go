package merkle

import (
	"encoding/hex"
	"testing"

	"github.com/arejula27/jab-go/internal/types"
)

func tx(addr string, amount string) types.Transaction {
	a, err := types.ParseAmount(amount)
	if err != nil {
		panic(err)
	}
	return *types.NewTransactionBuilder(types.V1).
		Input(addr, a).
		Finish("sig")
}

func TestRootIsDeterministic(t *testing.T) {
	txs := []types.Transaction{tx("alice", "1"), tx("bob", "2")}
	r1 := Root(txs)
	r2 := Root(txs)
	if r1 != r2 {
		t.Fatalf("root not deterministic: %q != %q", r1, r2)
	}
}

func TestRootChangesWithContent(t *testing.T) {
	r1 := Root([]types.Transaction{tx("alice", "1")})
	r2 := Root([]types.Transaction{tx("alice", "2")})
	if r1 == r2 {
		t.Fatal("expected different roots for different transaction content")
	}
}

func TestRootHandlesOddCount(t *testing.T) {
	txs := []types.Transaction{tx("a", "1"), tx("b", "2"), tx("c", "3")}
	root := Root(txs)
	if root == "" {
		t.Fatal("expected a non-empty root for an odd-length leaf set")
	}
}

func TestRootOfEmptyIsStable(t *testing.T) {
	r1 := Root(nil)
	r2 := Root([]types.Transaction{})
	if r1 != r2 {
		t.Fatalf("empty roots differ: %q != %q", r1, r2)
	}
}

func TestRootSingleLeafEqualsItsHash(t *testing.T) {
	txs := []types.Transaction{tx("alice", "1")}
	root := Root(txs)
	if len(root) != 64 {
		t.Fatalf("expected 32-byte hex root (64 chars), got %d chars", len(root))
	}
	leaf := txs[0].Digest()
	if want := hex.EncodeToString(leaf[:]); root != want {
		t.Errorf("root = %q, want the leaf hash %q", root, want)
	}
}
