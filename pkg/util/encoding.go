package util

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// IndexKey encodes a block index as big-endian 8 bytes, so that
// lexicographic key ordering in a byte-keyed store matches numeric index
// ordering.
func IndexKey(index uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, index)
	return b
}

// IndexFromKey decodes a big-endian 8-byte key back into a block index.
func IndexFromKey(key []byte) (uint64, error) {
	if len(key) != 8 {
		return 0, fmt.Errorf("index key must be 8 bytes, got %d", len(key))
	}
	return binary.BigEndian.Uint64(key), nil
}

// HexToBytes decodes a hex string to bytes, returning an error if invalid.
func HexToBytes(s string) ([]byte, error) {
	return hex.DecodeString(s)
}

// BytesToHex encodes bytes to a hex string.
func BytesToHex(b []byte) string {
	return hex.EncodeToString(b)
}
