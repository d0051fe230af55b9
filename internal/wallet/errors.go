package wallet

import "fmt"

// Error describes a failure in the wallet's cryptographic primitives:
// a malformed secret key, or a public key/signature that does not parse
// as valid hex-encoded secp256k1 material.
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("wallet: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("wallet: %s", e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(reason string, err error) *Error {
	return &Error{Reason: reason, Err: err}
}
