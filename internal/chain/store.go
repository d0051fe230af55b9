package chain

import (
	"encoding/json"
	"fmt"

	"github.com/arejula27/jab-go/internal/types"
	"github.com/arejula27/jab-go/pkg/util"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var blocksBucket = []byte("blocks")

// Store is the bbolt-backed ordered byte-keyed mapping index -> Block that
// backs the chain. Keys are big-endian 8-byte indices, so lexicographic
// bucket order equals numeric block order. Values are JSON-encoded blocks.
type Store struct {
	db     *bbolt.DB
	logger *zap.Logger
}

// OpenStore opens (creating if missing) the bbolt database at path and
// ensures the blocks bucket exists.
func OpenStore(path string, logger *zap.Logger) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, &DatabaseError{Err: err}
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(blocksBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, &DatabaseError{Err: err}
	}
	return &Store{db: db, logger: logger}, nil
}

// Close releases the underlying database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put writes block under its own index.
func (s *Store) Put(block types.Block) error {
	payload, err := json.Marshal(block)
	if err != nil {
		return &CodecError{Index: block.Index, Err: err}
	}
	key := util.IndexKey(block.Index)
	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(blocksBucket).Put(key, payload)
	})
	if err != nil {
		return &DatabaseError{Err: err}
	}
	s.logger.Debug("stored block", zap.Uint64("index", block.Index))
	return nil
}

// Get reads the block at index. If the stored payload fails to decode, the
// key is deleted and an error is returned; a missing key reports
// (zero-value, false, nil).
func (s *Store) Get(index uint64) (types.Block, bool, error) {
	key := util.IndexKey(index)
	var payload []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(blocksBucket).Get(key)
		if v != nil {
			payload = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return types.Block{}, false, &DatabaseError{Err: err}
	}
	if payload == nil {
		return types.Block{}, false, nil
	}

	var block types.Block
	if err := json.Unmarshal(payload, &block); err != nil {
		s.logger.Error("block has a bad payload, deleting", zap.Uint64("index", index), zap.Error(err))
		if delErr := s.delete(index); delErr != nil {
			return types.Block{}, false, fmt.Errorf("chain: failed to delete corrupt block %d: %w", index, delErr)
		}
		return types.Block{}, false, &CodecError{Index: index, Err: err}
	}
	return block, true, nil
}

func (s *Store) delete(index uint64) error {
	key := util.IndexKey(index)
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(blocksBucket).Delete(key)
	})
}
