package types

import "github.com/shopspring/decimal"

// Amount is a fixed-point decimal value of arbitrary scale, as required for
// transaction inputs and outputs. It is a thin alias over decimal.Decimal so
// callers get value semantics and JSON marshaling for free.
type Amount = decimal.Decimal

// ZeroAmount is the additive identity, used for wallet-registration
// transactions and as the starting accumulator in sum loops.
var ZeroAmount = decimal.Zero

// ParseAmount parses a decimal string into an Amount.
func ParseAmount(s string) (Amount, error) {
	return decimal.NewFromString(s)
}
