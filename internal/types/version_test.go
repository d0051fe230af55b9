package types

import "testing"

func TestParseTransactionVersion(t *testing.T) {
	v, err := ParseTransactionVersion("V1")
	if err != nil {
		t.Fatalf("ParseTransactionVersion: %v", err)
	}
	if v != V1 {
		t.Errorf("got %v, want V1", v)
	}
}

func TestParseTransactionVersionRejectsUnknown(t *testing.T) {
	if _, err := ParseTransactionVersion("V2"); err == nil {
		t.Fatal("expected an error for an unknown transaction version")
	}
}

func TestChainVersionValid(t *testing.T) {
	if !V010.Valid() {
		t.Error("V010 should be valid")
	}
	if ChainVersion("V020").Valid() {
		t.Error("unknown chain version should not be valid")
	}
}
