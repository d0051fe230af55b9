package types

import (
	"testing"
	"time"
)

func TestNewBlockHeaderGenesisHasNoParent(t *testing.T) {
	header := NewBlockHeader(V010, nil, "root", time.Unix(0, 0))
	if header.PreviousBlockHeaderHash != nil {
		t.Fatal("expected genesis header to have no parent hash")
	}
	if header.MerkleRootHash != "root" {
		t.Errorf("MerkleRootHash = %q, want %q", header.MerkleRootHash, "root")
	}
}

func TestNewBlockHeaderCarriesParent(t *testing.T) {
	parent := "deadbeef"
	header := NewBlockHeader(V010, &parent, "root2", time.Unix(1, 0))
	if header.PreviousBlockHeaderHash == nil || *header.PreviousBlockHeaderHash != parent {
		t.Fatal("expected header to carry the parent hash")
	}
}

func TestNewBlockIndex(t *testing.T) {
	tx := NewTransactionBuilder(V1).Output("bob", dec("1")).Finish("sig")
	header := NewBlockHeader(V010, nil, "root", time.Unix(0, 0))
	block := NewBlock(0, header, *tx)
	if block.Index != 0 {
		t.Errorf("Index = %d, want 0", block.Index)
	}
	if block.Transaction.Signature != "sig" {
		t.Errorf("Transaction.Signature = %q, want sig", block.Transaction.Signature)
	}
}
