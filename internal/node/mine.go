package node

import (
	"github.com/arejula27/jab-go/internal/types"
	"github.com/arejula27/jab-go/internal/wallet"
)

// placeholderTransaction builds a zero-value self-transaction for hostWallet.
// There is no pending-request queue in this design; a scheduled mining tick
// has no admitted transaction ready to include, so it mines this placeholder
// instead, mirroring the dummy transaction of earlier chain designs.
func placeholderTransaction(hostWallet *wallet.Wallet) (*types.Transaction, error) {
	addr := hostWallet.Address()
	return types.NewTransactionBuilder(types.V1).
		Input(addr, types.ZeroAmount).
		Output(addr, types.ZeroAmount).
		SignWithWallet(hostWallet)
}
