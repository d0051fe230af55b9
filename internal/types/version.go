package types

import "fmt"

// ChainVersion tags the format of a block header.
type ChainVersion string

// V010 is the only chain version this node understands.
const V010 ChainVersion = "V010"

func (v ChainVersion) Valid() bool {
	return v == V010
}

// TransactionVersion tags the format of a transaction.
type TransactionVersion string

// V1 is the only transaction version this node understands.
const V1 TransactionVersion = "V1"

func (v TransactionVersion) Valid() bool {
	return v == V1
}

// ParseTransactionVersion rejects anything other than V1.
func ParseTransactionVersion(s string) (TransactionVersion, error) {
	v := TransactionVersion(s)
	if !v.Valid() {
		return "", fmt.Errorf("types: invalid transaction version %q", s)
	}
	return v, nil
}
