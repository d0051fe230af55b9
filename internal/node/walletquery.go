package node

import (
	"github.com/arejula27/jab-go/internal/chain"
	"github.com/arejula27/jab-go/internal/p2p"
)

// HandleWalletQuery answers a WalletDetailsPayload against chain c, returning
// the result to publish back to the querying peer's private topic.
func HandleWalletQuery(c *chain.Chain, req *p2p.WalletDetailsPayload) *p2p.WalletDetailsResultPayload {
	txs, found, err := c.WalletTransactions(req.Address)
	if err != nil {
		return &p2p.WalletDetailsResultPayload{
			OK:        false,
			ErrorCode: p2p.ErrWalletBlockchainError,
		}
	}
	if !found {
		return &p2p.WalletDetailsResultPayload{
			OK:        false,
			ErrorCode: p2p.ErrWalletNotFound,
		}
	}

	balance, _, err := c.WalletAmount(req.Address)
	if err != nil {
		return &p2p.WalletDetailsResultPayload{
			OK:        false,
			ErrorCode: p2p.ErrWalletBlockchainError,
		}
	}

	return &p2p.WalletDetailsResultPayload{
		OK:           true,
		Address:      req.Address,
		Transactions: txs,
		Balance:      balance,
	}
}
