package node

import (
	"github.com/arejula27/jab-go/internal/chain"
	"github.com/arejula27/jab-go/internal/mining"
	"github.com/arejula27/jab-go/internal/p2p"
	"github.com/arejula27/jab-go/internal/types"
	"github.com/arejula27/jab-go/internal/wallet"
)

// AdmitTransaction runs the seven-step admission pipeline over req against
// chain c, using hostWallet as the fee-collecting address and roster to
// rotate the mining pointer on success. It returns the newly mined block
// (nil on rejection) and the outcome to report back to req's originating
// peer.
func AdmitTransaction(c *chain.Chain, roster *mining.Roster, hostWallet *wallet.Wallet, req *p2p.TransactionPayload) (*types.Block, *p2p.TransactionResultPayload) {
	if req.Amount.IsNegative() {
		return nil, reject(p2p.ErrInsufficientBalance, "amount must not be negative")
	}

	balance, found, err := c.WalletAmount(req.InputAddr)
	if err != nil {
		return nil, reject(p2p.ErrBlockchainError, err.Error())
	}
	if !found {
		return nil, reject(p2p.ErrInputWalletNotFound, "input wallet has never appeared on chain")
	}
	if balance.LessThan(req.Amount) {
		return nil, reject(p2p.ErrInsufficientBalance, "input wallet balance is insufficient")
	}

	exists, err := c.WalletExists(req.OutputAddr)
	if err != nil {
		return nil, reject(p2p.ErrBlockchainError, err.Error())
	}
	if !exists {
		return nil, reject(p2p.ErrOutputWalletNotFound, "output wallet has never appeared on chain")
	}

	outputAmount := req.Amount
	if !req.Amount.IsZero() {
		outputAmount = req.Amount.Sub(req.Fee)
	}

	tx := types.Transaction{
		Version: types.V1,
		Inputs: []types.UnlockInput{
			{Address: req.InputAddr, Amount: req.Amount},
		},
		Outputs: []types.LockOutput{
			{Address: req.OutputAddr, Amount: outputAmount},
			{Address: hostWallet.Address(), Amount: req.Fee},
		},
		Signature: req.SignatureHex,
	}

	digest := tx.Digest()
	ok, err := wallet.Verify(digest[:], req.SignatureHex, req.PubKeyHex)
	if err != nil {
		return nil, reject(p2p.ErrBlockchainError, "could not parse signature or public key: "+err.Error())
	}
	if !ok {
		return nil, reject(p2p.ErrInvalidSignature, "signature does not match transaction contents")
	}

	roster.SetLastBlockMiner()

	block, err := c.GenerateNextBlock(tx)
	if err != nil {
		return nil, reject(p2p.ErrBlockchainError, err.Error())
	}

	return &block, &p2p.TransactionResultPayload{OK: true}
}

func reject(code p2p.TransactionErrorCode, description string) *p2p.TransactionResultPayload {
	return &p2p.TransactionResultPayload{OK: false, ErrorCode: code, Description: description}
}
