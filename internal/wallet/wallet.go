// Package wallet implements the jab wallet primitive: a secp256k1 keypair,
// its derived address, and ECDSA sign/verify over 32-byte message digests.
package wallet

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // address derivation requires ripemd160, same as the original jab.
)

// SecretKeySize is the length in bytes of a jab secret key.
const SecretKeySize = 32

// AddressPrefix is prepended to every derived address.
const AddressPrefix = "jab"

// Wallet holds a secp256k1 keypair and exposes signing/verification over
// it. It is never mutated after construction.
type Wallet struct {
	secret *btcec.PrivateKey
	public *btcec.PublicKey
}

// Generate creates a fresh wallet from a random secp256k1 keypair.
func Generate() (*Wallet, error) {
	secret, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, newError("failed to generate keypair", err)
	}
	return &Wallet{secret: secret, public: secret.PubKey()}, nil
}

// FromSecretBytes derives a wallet from a 32-byte secret key. It fails if
// the bytes do not decode to a valid secp256k1 scalar (zero, or >= curve
// order N).
func FromSecretBytes(b [SecretKeySize]byte) (*Wallet, error) {
	var scalar secp256k1.ModNScalar
	overflow := scalar.SetByteSlice(b[:])
	if overflow || scalar.IsZero() {
		return nil, newError("not a valid secp256k1 scalar", nil)
	}
	secret, public := btcec.PrivKeyFromBytes(b[:])
	return &Wallet{secret: secret, public: public}, nil
}

// SecretKey returns the raw 32-byte secret key.
func (w *Wallet) SecretKey() [SecretKeySize]byte {
	var out [SecretKeySize]byte
	copy(out[:], w.secret.Serialize())
	return out
}

// PublicKey returns the hex-lowercase compressed public key.
func (w *Wallet) PublicKey() string {
	return hex.EncodeToString(w.public.SerializeCompressed())
}

// Address derives the printable jab address for this wallet's public key.
func (w *Wallet) Address() string {
	return addressFromPublicKeyBytes(w.public.SerializeCompressed())
}

// Sign signs a 32-byte message digest, returning a hex-lowercase ECDSA
// signature. The caller is responsible for hashing the payload beforehand;
// Sign accepts exactly a 32-byte digest.
func (w *Wallet) Sign(digest []byte) (string, error) {
	if len(digest) != sha256.Size {
		return "", newError("message digest must be exactly 32 bytes", nil)
	}
	sig := ecdsa.Sign(w.secret, digest)
	return hex.EncodeToString(sig.Serialize()), nil
}

// Verify checks whether sigHex is a valid ECDSA signature over digest by
// the key encoded in pubHex. It returns false (not an error) for a
// cryptographically invalid signature, and an error only when pubHex or
// sigHex fail to parse.
func Verify(digest []byte, sigHex, pubHex string) (bool, error) {
	if len(digest) != sha256.Size {
		return false, newError("message digest must be exactly 32 bytes", nil)
	}
	pubBytes, err := hex.DecodeString(pubHex)
	if err != nil {
		return false, newError("invalid public key hex", err)
	}
	pub, err := btcec.ParsePubKey(pubBytes)
	if err != nil {
		return false, newError("invalid public key", err)
	}
	sigBytes, err := hex.DecodeString(sigHex)
	if err != nil {
		return false, newError("invalid signature hex", err)
	}
	sig, err := ecdsa.ParseDERSignature(sigBytes)
	if err != nil {
		return false, newError("invalid signature", err)
	}
	return sig.Verify(digest, pub), nil
}

// addressFromPublicKeyBytes derives the jab address from a serialized
// (compressed) public key: "jab" || hex(RIPEMD160(SHA256(pubkey))).
func addressFromPublicKeyBytes(pub []byte) string {
	sum := sha256.Sum256(pub)
	hasher := ripemd160.New()
	hasher.Write(sum[:])
	return AddressPrefix + hex.EncodeToString(hasher.Sum(nil))
}

// AddressFromPublicKeyHex derives a jab address from a hex-encoded
// compressed public key. Transaction admission does not call it; it does
// not compare a request's input address with its public key.
func AddressFromPublicKeyHex(pubHex string) (string, error) {
	pubBytes, err := hex.DecodeString(pubHex)
	if err != nil {
		return "", newError("invalid public key hex", err)
	}
	if _, err := btcec.ParsePubKey(pubBytes); err != nil {
		return "", newError("invalid public key", err)
	}
	return addressFromPublicKeyBytes(pubBytes), nil
}
