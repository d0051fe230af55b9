package chain

import (
	"time"

	"github.com/arejula27/jab-go/internal/merkle"
	"github.com/arejula27/jab-go/internal/types"
)

// GenesisAddress receives the entire initial supply in the genesis block.
const GenesisAddress = "jabbe2cce18177f64c3eb2cc51f0bd640dec8b22668"

// GenesisSignature is the pre-computed signature over the genesis
// transaction, produced once by the address that controls GenesisAddress.
const GenesisSignature = "3045022100a6a9106ecbef322e967438dbc8f1bf0ea8f5ee75cd3519f55e2bb90693d67ee3022042ecad494ead5fd441814201e8ae915a934c29644984cfc3624e48290054a155"

// GenesisAmount is the initial supply minted to GenesisAddress.
var GenesisAmount = mustParseAmount("500.0")

func mustParseAmount(s string) types.Amount {
	a, err := types.ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

func genesisTransaction() types.Transaction {
	return *types.NewTransactionBuilder(types.V1).
		Output(GenesisAddress, GenesisAmount).
		Finish(GenesisSignature)
}

func genesisBlock() types.Block {
	tx := genesisTransaction()
	root := merkle.Root([]types.Transaction{tx})
	header := types.NewBlockHeader(types.V010, nil, root, time.Unix(0, 0).UTC())
	return types.NewBlock(0, header, tx)
}
