package util

import (
	"testing"
)

func TestIndexKeyRoundTrip(t *testing.T) {
	tests := []uint64{0, 1, 0xfc, 0x10000, 0xffffffffffffffff}
	for _, idx := range tests {
		key := IndexKey(idx)
		if len(key) != 8 {
			t.Fatalf("IndexKey(%d) len = %d, want 8", idx, len(key))
		}
		got, err := IndexFromKey(key)
		if err != nil {
			t.Fatalf("IndexFromKey: %v", err)
		}
		if got != idx {
			t.Errorf("round-trip failed: %d -> %d", idx, got)
		}
	}
}

func TestIndexKeyOrderingMatchesNumericOrdering(t *testing.T) {
	a := IndexKey(1)
	b := IndexKey(2)
	c := IndexKey(256)
	if !(string(a) < string(b) && string(b) < string(c)) {
		t.Error("lexicographic key ordering does not match numeric index ordering")
	}
}

func TestIndexFromKeyRejectsBadLength(t *testing.T) {
	if _, err := IndexFromKey([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected an error for a short key")
	}
}

func TestHexConversion(t *testing.T) {
	original := []byte{0xde, 0xad, 0xbe, 0xef}
	hexStr := BytesToHex(original)
	if hexStr != "deadbeef" {
		t.Errorf("BytesToHex = %s, want deadbeef", hexStr)
	}

	decoded, err := HexToBytes(hexStr)
	if err != nil {
		t.Errorf("HexToBytes error: %v", err)
	}
	for i := range original {
		if decoded[i] != original[i] {
			t.Errorf("HexToBytes byte %d = %x, want %x", i, decoded[i], original[i])
		}
	}

	// Invalid hex
	_, err = HexToBytes("zzzz")
	if err == nil {
		t.Error("HexToBytes should fail on invalid hex")
	}
}
