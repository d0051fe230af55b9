package types

import (
	"crypto/sha256"

	"github.com/arejula27/jab-go/internal/wallet"
)

// UnlockInput spends amount from address.
type UnlockInput struct {
	Address string `json:"address"`
	Amount  Amount `json:"amount"`
}

// LockOutput credits amount to address.
type LockOutput struct {
	Address string `json:"address"`
	Amount  Amount `json:"amount"`
}

// Transaction is the single state transition carried by a block: an ordered
// list of inputs, an ordered list of outputs, and a signature over both.
type Transaction struct {
	Version   TransactionVersion `json:"version"`
	Inputs    []UnlockInput      `json:"inputs"`
	Outputs   []LockOutput       `json:"outputs"`
	Signature string             `json:"signature"`
}

// InputAddress returns the address of the first input, or "" if there are
// none. Admission and wallet-scan logic treat the first input's address as
// the transaction's issuer.
func (t *Transaction) InputAddress() string {
	if len(t.Inputs) == 0 {
		return ""
	}
	return t.Inputs[0].Address
}

// AmountSpent returns the amount spent by addr in this transaction: the
// negated sum of its input amounts. Zero or negative by construction.
func (t *Transaction) AmountSpent(addr string) Amount {
	sum := ZeroAmount
	for _, in := range t.Inputs {
		if in.Address == addr {
			sum = sum.Sub(in.Amount)
		}
	}
	return sum
}

// AmountReceived returns the amount received by addr in this transaction:
// the sum of its output amounts. Zero or positive by construction.
func (t *Transaction) AmountReceived(addr string) Amount {
	sum := ZeroAmount
	for _, out := range t.Outputs {
		if out.Address == addr {
			sum = sum.Add(out.Amount)
		}
	}
	return sum
}

// References reports whether addr appears as the input address, any input,
// or any output of this transaction.
func (t *Transaction) References(addr string) bool {
	for _, in := range t.Inputs {
		if in.Address == addr {
			return true
		}
	}
	for _, out := range t.Outputs {
		if out.Address == addr {
			return true
		}
	}
	return false
}

// digest hashes (version, inputs, outputs) as the byte-concatenation of
// address_utf8 || amount_decimal_string_utf8 for each input and output, in
// order, prefixed by the UTF-8 bytes of the version tag (e.g. "V1"). It
// deliberately excludes the
// signature field itself.
func (t *Transaction) digest() [32]byte {
	h := sha256.New()
	h.Write([]byte(t.Version))
	for _, in := range t.Inputs {
		h.Write([]byte(in.Address))
		h.Write([]byte(in.Amount.String()))
	}
	for _, out := range t.Outputs {
		h.Write([]byte(out.Address))
		h.Write([]byte(out.Amount.String()))
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// Digest exposes the signed digest, used by admission to re-verify a
// peer-submitted signature against the transaction's own fields.
func (t *Transaction) Digest() [32]byte {
	return t.digest()
}

// TransactionBuilder composes inputs and outputs before a signature is
// attached, so a half-built transaction can never be observed outside this
// package.
type TransactionBuilder struct {
	version TransactionVersion
	inputs  []UnlockInput
	outputs []LockOutput
}

// NewTransactionBuilder starts a builder for the given transaction version.
func NewTransactionBuilder(version TransactionVersion) *TransactionBuilder {
	return &TransactionBuilder{version: version}
}

// Input appends an input to the transaction under construction.
func (b *TransactionBuilder) Input(addr string, amount Amount) *TransactionBuilder {
	b.inputs = append(b.inputs, UnlockInput{Address: addr, Amount: amount})
	return b
}

// Output appends an output to the transaction under construction.
func (b *TransactionBuilder) Output(addr string, amount Amount) *TransactionBuilder {
	b.outputs = append(b.outputs, LockOutput{Address: addr, Amount: amount})
	return b
}

// SignWithWallet computes the transaction digest and signs it with w,
// installing the resulting signature.
func (b *TransactionBuilder) SignWithWallet(w *wallet.Wallet) (*Transaction, error) {
	tx := &Transaction{Version: b.version, Inputs: b.inputs, Outputs: b.outputs}
	digest := tx.digest()
	sig, err := w.Sign(digest[:])
	if err != nil {
		return nil, err
	}
	tx.Signature = sig
	return tx, nil
}

// Finish attaches an externally supplied signature, used to rehydrate the
// genesis transaction and any transaction received already-signed over the
// wire.
func (b *TransactionBuilder) Finish(signature string) *Transaction {
	return &Transaction{
		Version:   b.version,
		Inputs:    b.inputs,
		Outputs:   b.outputs,
		Signature: signature,
	}
}
