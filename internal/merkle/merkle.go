// Package merkle computes the merkle root over the transaction history of
// the chain: pairwise SHA-256 of leaf hashes, duplicating the final leaf
// when a level has an odd count.
package merkle

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/arejula27/jab-go/internal/types"
)

// Root computes the hex-encoded merkle root over txs, in order. An empty
// list roots to the hash of an empty input, matching the base case of the
// pairwise construction.
func Root(txs []types.Transaction) string {
	if len(txs) == 0 {
		sum := sha256.Sum256(nil)
		return hex.EncodeToString(sum[:])
	}

	level := make([][32]byte, len(txs))
	for i := range txs {
		level[i] = txs[i].Digest()
	}

	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}
		next := make([][32]byte, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			next[i/2] = hashPair(level[i], level[i+1])
		}
		level = next
	}
	return hex.EncodeToString(level[0][:])
}

func hashPair(a, b [32]byte) [32]byte {
	h := sha256.New()
	h.Write(a[:])
	h.Write(b[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
