// Command jabwallet is the client tool for a jab node: it creates wallets,
// signs the genesis transaction for a fresh deployment, and queries or
// spends against a running network over the jab p2p protocol.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/arejula27/jab-go/internal/chain"
	"github.com/arejula27/jab-go/internal/p2p"
	"github.com/arejula27/jab-go/internal/types"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "jabwallet:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("jabwallet", flag.ContinueOnError)
	walletDir := fs.String("wallet", "", "wallet directory (required)")
	// the node that admits a transaction rebuilds it with its own fee
	// wallet as the second output before checking the signature, so a
	// client must already know that address to sign a matching digest.
	hostAddr := fs.String("host", "", "fee-collecting wallet address of the node handling this request (required for send)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *walletDir == "" {
		return fmt.Errorf("--wallet is required")
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return fmt.Errorf("usage: jabwallet --wallet <dir> [--host <addr>] <generate-wallet|sign-genesis|get-balance|get-balance-for <addr>|send <output_addr> <amount> [fee]> (--host is required for send)")
	}

	switch rest[0] {
	case "generate-wallet":
		return cmdGenerateWallet(*walletDir)
	case "sign-genesis":
		return cmdSignGenesis(*walletDir)
	case "get-balance":
		return cmdGetBalance(*walletDir)
	case "get-balance-for":
		if len(rest) != 2 {
			return fmt.Errorf("usage: jabwallet --wallet <dir> get-balance-for <addr>")
		}
		return cmdGetBalanceFor(*walletDir, rest[1])
	case "send":
		if len(rest) < 3 || len(rest) > 4 {
			return fmt.Errorf("usage: jabwallet --wallet <dir> --host <addr> send <output_addr> <amount> [fee]")
		}
		if *hostAddr == "" {
			return fmt.Errorf("--host <addr> is required for send (place it before the command)")
		}
		fee := "0"
		if len(rest) == 4 {
			fee = rest[3]
		}
		return cmdSend(*walletDir, *hostAddr, rest[1], rest[2], fee)
	default:
		return fmt.Errorf("unknown command %q", rest[0])
	}
}

func cmdGenerateWallet(dir string) error {
	w, err := generateWallet(dir)
	if err != nil {
		return err
	}
	fmt.Printf("created new wallet at %s\n", dir)
	fmt.Printf("your address is: %s\n", w.Address())
	return nil
}

func cmdSignGenesis(dir string) error {
	w, err := openWallet(dir)
	if err != nil {
		return err
	}
	tx, err := types.NewTransactionBuilder(types.V1).
		Output(chain.GenesisAddress, chain.GenesisAmount).
		SignWithWallet(w)
	if err != nil {
		return fmt.Errorf("sign genesis transaction: %w", err)
	}
	fmt.Printf("genesis transaction signature: %s\n", tx.Signature)
	return nil
}

func cmdGetBalance(dir string) error {
	w, err := openWallet(dir)
	if err != nil {
		return err
	}
	return cmdGetBalanceFor(dir, w.Address())
}

func cmdGetBalanceFor(dir, addr string) error {
	reply, err := requestAndWait(dir, &p2p.Msg{
		Type:          p2p.MsgWalletDetails,
		WalletDetails: &p2p.WalletDetailsPayload{Address: addr},
	}, p2p.MsgWalletDetailsResult)
	if err != nil {
		return err
	}

	result := reply.WalletDetailsResult
	if !result.OK {
		return fmt.Errorf("wallet query failed: %s", result.ErrorCode)
	}
	fmt.Printf("address: %s\n", result.Address)
	fmt.Printf("balance: %s\n", result.Balance.String())
	fmt.Printf("transactions: %d\n", len(result.Transactions))
	return nil
}

func cmdSend(dir, hostAddr, outputAddr, amountStr, feeStr string) error {
	w, err := openWallet(dir)
	if err != nil {
		return err
	}
	amount, err := types.ParseAmount(amountStr)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amountStr, err)
	}
	fee, err := types.ParseAmount(feeStr)
	if err != nil {
		return fmt.Errorf("invalid fee %q: %w", feeStr, err)
	}

	outputAmount := amount
	if !amount.IsZero() {
		outputAmount = amount.Sub(fee)
	}
	tx := types.Transaction{
		Version: types.V1,
		Inputs:  []types.UnlockInput{{Address: w.Address(), Amount: amount}},
		Outputs: []types.LockOutput{
			{Address: outputAddr, Amount: outputAmount},
			{Address: hostAddr, Amount: fee},
		},
	}
	digest := tx.Digest()
	sig, err := w.Sign(digest[:])
	if err != nil {
		return fmt.Errorf("sign transaction request: %w", err)
	}

	reply, err := requestAndWait(dir, &p2p.Msg{
		Type: p2p.MsgTransaction,
		Transaction: &p2p.TransactionPayload{
			InputAddr:    w.Address(),
			OutputAddr:   outputAddr,
			Amount:       amount,
			Fee:          fee,
			SignatureHex: sig,
			PubKeyHex:    w.PublicKey(),
		},
	}, p2p.MsgTransactionResult)
	if err != nil {
		return err
	}

	result := reply.TransactionResult
	if !result.OK {
		return fmt.Errorf("transaction rejected: %s: %s", result.ErrorCode, result.Description)
	}
	fmt.Println("transaction accepted")
	return nil
}
