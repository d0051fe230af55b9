package chain

import (
	"time"

	"github.com/arejula27/jab-go/internal/merkle"
	"github.com/arejula27/jab-go/internal/types"
	"go.uber.org/zap"
)

// Chain is the append-only block chain: a Store opened from a filesystem
// path, bootstrapped with the genesis block on first open.
type Chain struct {
	store  *Store
	logger *zap.Logger
}

// Open opens the chain database file at path, synthesizing and persisting
// the genesis block if index 0 is absent.
func Open(path string, logger *zap.Logger) (*Chain, error) {
	store, err := OpenStore(path, logger)
	if err != nil {
		return nil, err
	}
	c := &Chain{store: store, logger: logger}

	_, found, err := store.Get(0)
	if err != nil {
		return nil, err
	}
	if !found {
		logger.Info("no genesis block found, bootstrapping")
		if err := store.Put(genesisBlock()); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Close releases the underlying store.
func (c *Chain) Close() error {
	return c.store.Close()
}

// GetGenesisBlock returns the block at index 0, which must exist by
// construction.
func (c *Chain) GetGenesisBlock() (types.Block, error) {
	block, found, err := c.store.Get(0)
	if err != nil {
		return types.Block{}, err
	}
	if !found {
		return types.Block{}, &InvalidBlockError{Index: 0, Want: 0}
	}
	return block, nil
}

// GetBlock returns the block at index, and whether it was found.
func (c *Chain) GetBlock(index uint64) (types.Block, bool, error) {
	return c.store.Get(index)
}

// GetLatestBlock probes ascending from index 1 until the first miss, and
// returns the last hit, falling back to genesis if there is none.
func (c *Chain) GetLatestBlock() (types.Block, error) {
	latest, err := c.GetGenesisBlock()
	if err != nil {
		return types.Block{}, err
	}
	for i := uint64(1); ; i++ {
		block, found, err := c.store.Get(i)
		if err != nil {
			return types.Block{}, err
		}
		if !found {
			break
		}
		latest = block
	}
	return latest, nil
}

// AddBlock accepts b iff it extends the current tip: its index must be
// exactly one past the tip's, and its previous-block hash must equal the
// tip's merkle root.
func (c *Chain) AddBlock(b types.Block) error {
	latest, err := c.GetLatestBlock()
	if err != nil {
		return err
	}
	if b.Index != latest.Index+1 {
		return &InvalidBlockError{Index: b.Index, Want: latest.Index + 1}
	}
	if b.Header.PreviousBlockHeaderHash == nil || *b.Header.PreviousBlockHeaderHash != latest.Header.MerkleRootHash {
		return &InvalidBlockError{Index: b.Index, Want: latest.Index + 1}
	}
	return c.store.Put(b)
}

// GenerateNextBlock builds a block wrapping tx on top of the current tip,
// with a merkle root computed over every transaction already in the chain
// (the new block's own transaction is not included), appends it, and
// returns the new tip.
func (c *Chain) GenerateNextBlock(tx types.Transaction) (types.Block, error) {
	latest, err := c.GetLatestBlock()
	if err != nil {
		return types.Block{}, err
	}

	history, err := c.allTransactions()
	if err != nil {
		return types.Block{}, err
	}
	root := merkle.Root(history)

	parent := latest.Header.MerkleRootHash
	header := types.NewBlockHeader(types.V010, &parent, root, time.Now().UTC())
	next := types.NewBlock(latest.Index+1, header, tx)

	if err := c.AddBlock(next); err != nil {
		return types.Block{}, err
	}
	return next, nil
}

// WalletAmount scans every block from 0 upward; for every block whose
// transaction's input address equals addr, it accumulates the algebraic
// sum received(addr) - spent(addr) (spent is already non-positive, so this
// is received + |spent|). It returns (0, false, nil) if addr never appears
// as an input address.
func (c *Chain) WalletAmount(addr string) (types.Amount, bool, error) {
	sum := types.ZeroAmount
	seen := false
	err := c.forEachBlock(func(b types.Block) {
		if b.Transaction.InputAddress() != addr {
			return
		}
		seen = true
		sum = sum.Add(b.Transaction.AmountReceived(addr)).Sub(b.Transaction.AmountSpent(addr))
	})
	if err != nil {
		return types.ZeroAmount, false, err
	}
	return sum, seen, nil
}

// WalletExists reports whether addr has ever appeared as an input address
// of any block's transaction.
func (c *Chain) WalletExists(addr string) (bool, error) {
	exists := false
	err := c.forEachBlockUntil(func(b types.Block) bool {
		if b.Transaction.InputAddress() == addr {
			exists = true
			return true
		}
		return false
	})
	return exists, err
}

// WalletTransactions collects, in chain order, every transaction that
// references addr as its input address, any input, or any output. It
// returns (nil, false, nil) if addr never appears.
func (c *Chain) WalletTransactions(addr string) ([]types.Transaction, bool, error) {
	var out []types.Transaction
	err := c.forEachBlock(func(b types.Block) {
		if b.Transaction.References(addr) {
			out = append(out, b.Transaction)
		}
	})
	if err != nil {
		return nil, false, err
	}
	return out, len(out) > 0, nil
}

func (c *Chain) allTransactions() ([]types.Transaction, error) {
	var out []types.Transaction
	err := c.forEachBlock(func(b types.Block) {
		out = append(out, b.Transaction)
	})
	return out, err
}

func (c *Chain) forEachBlock(f func(types.Block)) error {
	return c.forEachBlockUntil(func(b types.Block) bool {
		f(b)
		return false
	})
}

// forEachBlockUntil visits blocks from index 0 upward until the first miss
// or until f returns true.
func (c *Chain) forEachBlockUntil(f func(types.Block) bool) error {
	for i := uint64(0); ; i++ {
		block, found, err := c.store.Get(i)
		if err != nil {
			return err
		}
		if !found {
			return nil
		}
		if f(block) {
			return nil
		}
	}
}
