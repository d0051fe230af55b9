package node

import (
	"testing"

	"github.com/arejula27/jab-go/internal/p2p"
	"github.com/arejula27/jab-go/internal/types"
)

func TestHandleWalletQueryReturnsNotFoundForUnknownAddress(t *testing.T) {
	c, _, _ := testSetup(t)
	result := HandleWalletQuery(c, &p2p.WalletDetailsPayload{Address: "nobody"})
	if result.OK {
		t.Fatal("expected OK=false for an address that has never appeared")
	}
	if result.ErrorCode != p2p.ErrWalletNotFound {
		t.Errorf("error code = %q, want %q", result.ErrorCode, p2p.ErrWalletNotFound)
	}
}

func TestHandleWalletQueryReturnsBalanceAndHistory(t *testing.T) {
	c, _, _ := testSetup(t)
	seedWallet(t, c, "alice", amount(t, "10"))

	result := HandleWalletQuery(c, &p2p.WalletDetailsPayload{Address: "alice"})
	if !result.OK {
		t.Fatalf("expected OK=true, got error %q", result.ErrorCode)
	}
	if !result.Balance.Equal(amount(t, "10")) {
		t.Errorf("balance = %s, want 10", result.Balance)
	}
	if len(result.Transactions) != 1 {
		t.Errorf("len(Transactions) = %d, want 1", len(result.Transactions))
	}
}

func TestHandleWalletQueryZeroBalanceForAddressSeenOnlyAsOutput(t *testing.T) {
	c, _, _ := testSetup(t)
	seedWallet(t, c, "alice", amount(t, "10"))

	tx := types.NewTransactionBuilder(types.V1).
		Input("alice", amount(t, "1")).
		Output("bob", amount(t, "1")).
		Finish("unused-signature")
	if _, err := c.GenerateNextBlock(*tx); err != nil {
		t.Fatalf("GenerateNextBlock: %v", err)
	}

	// bob has appeared (as an output) but never as an input address, so
	// wallet_amount considers him unseen and balance follows that same rule.
	result := HandleWalletQuery(c, &p2p.WalletDetailsPayload{Address: "bob"})
	if !result.OK {
		t.Fatalf("expected OK=true, got error %q", result.ErrorCode)
	}
	if len(result.Transactions) != 1 {
		t.Errorf("len(Transactions) = %d, want 1", len(result.Transactions))
	}
	if !result.Balance.Equal(types.ZeroAmount) {
		t.Errorf("balance = %s, want 0", result.Balance)
	}
}
