package p2p

import (
	"testing"

	"github.com/arejula27/jab-go/internal/types"
)

func TestEncodeDecodeRequestBlock(t *testing.T) {
	msg := &Msg{Type: MsgRequestBlock, RequestBlock: &RequestBlockPayload{Index: 5}}
	data, err := Encode(msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Type != MsgRequestBlock || got.RequestBlock.Index != 5 {
		t.Errorf("round-trip mismatch: %+v", got)
	}
}

func TestDecodeRejectsUnknownType(t *testing.T) {
	if _, err := Decode([]byte(`{"type":"NOT_A_REAL_TYPE"}`)); err == nil {
		t.Fatal("expected an error for an unknown message type")
	}
}

func TestDecodeRejectsMismatchedPayload(t *testing.T) {
	if _, err := Decode([]byte(`{"type":"BLOCK"}`)); err == nil {
		t.Fatal("expected an error when BLOCK has no block payload")
	}
}

func TestDecodeRejectsInvalidJSON(t *testing.T) {
	if _, err := Decode([]byte(`not json`)); err == nil {
		t.Fatal("expected an error for invalid JSON")
	}
}

func TestEncodeDecodeTransactionResult(t *testing.T) {
	msg := &Msg{
		Type: MsgTransactionResult,
		TransactionResult: &TransactionResultPayload{
			OK:        false,
			ErrorCode: ErrInsufficientBalance,
		},
	}
	data, err := Encode(msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.TransactionResult.ErrorCode != ErrInsufficientBalance {
		t.Errorf("error code = %q, want %q", got.TransactionResult.ErrorCode, ErrInsufficientBalance)
	}
}

func TestEncodeDecodeRequestRegisteredMinersAllowsEmptyPayload(t *testing.T) {
	msg := &Msg{Type: MsgRequestRegisteredMiners}
	data, err := Encode(msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := Decode(data); err != nil {
		t.Fatalf("Decode: %v", err)
	}
}

func TestEncodeDecodeBlockPreservesTransaction(t *testing.T) {
	amount, err := types.ParseAmount("1.5")
	if err != nil {
		t.Fatalf("ParseAmount: %v", err)
	}
	tx := *types.NewTransactionBuilder(types.V1).
		Input("alice", amount).
		Output("bob", amount).
		Finish("sig")

	msg := &Msg{Type: MsgBlock, Block: &BlockPayload{Block: types.NewBlock(1, types.BlockHeader{}, tx)}}
	data, err := Encode(msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !got.Block.Block.Transaction.AmountSpent("alice").Equal(amount.Neg()) {
		t.Errorf("round-tripped amount mismatch: %s", got.Block.Block.Transaction.AmountSpent("alice"))
	}
}
