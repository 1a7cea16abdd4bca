package chain

import (
	"fmt"

	"github.com/dgraph-io/badger"
	"github.com/mimblenetworks/mimble/src/core"
)

const (
	headKey      = "head"
	outputPrefix = "output"
)

// BadgerStore is a persistent ChainStore backed by a Badger database.
type BadgerStore struct {
	db   *badger.DB
	path string
}

// NewBadgerStore opens, or creates, the chain database at path. A fresh
// database is seeded with the genesis tip so that Head is always defined.
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.SyncWrites = false
	opts.Logger = nil

	handle, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	store := &BadgerStore{
		db:   handle,
		path: path,
	}

	if _, err := store.Head(); err != nil {
		if !IsStore(err, KeyNotFound) {
			store.Close()
			return nil, err
		}
		if err := store.SaveHead(genesisTip()); err != nil {
			store.Close()
			return nil, err
		}
	}

	return store, nil
}

// Head returns the current chain tip.
func (s *BadgerStore) Head() (*Tip, error) {
	var tipBytes []byte

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(headKey))
		if err != nil {
			return err
		}
		tipBytes, err = item.ValueCopy(nil)
		return err
	})

	if err == badger.ErrKeyNotFound {
		return nil, NewStoreErr("head", KeyNotFound, headKey)
	}
	if err != nil {
		return nil, err
	}

	tip := new(Tip)
	if err := tip.Unmarshal(tipBytes); err != nil {
		return nil, NewStoreErr("head", Corrupt, headKey)
	}

	return tip, nil
}

// GetOutputByCommit looks up an output by its commitment.
func (s *BadgerStore) GetOutputByCommit(commit core.Commitment) (*core.Output, error) {
	var outputBytes []byte
	key := outputKey(commit)

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		outputBytes, err = item.ValueCopy(nil)
		return err
	})

	if err == badger.ErrKeyNotFound {
		return nil, NewStoreErr("output", KeyNotFound, commit.Hex())
	}
	if err != nil {
		return nil, err
	}

	output := new(core.Output)
	if err := output.Unmarshal(outputBytes); err != nil {
		return nil, NewStoreErr("output", Corrupt, commit.Hex())
	}

	return output, nil
}

// SaveHead records tip as the new chain head.
func (s *BadgerStore) SaveHead(tip *Tip) error {
	tipBytes, err := tip.Marshal()
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(headKey), tipBytes)
	})
}

// SaveOutput records an output.
func (s *BadgerStore) SaveOutput(output *core.Output) error {
	outputBytes, err := output.Marshal()
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(outputKey(output.Commit), outputBytes)
	})
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func outputKey(commit core.Commitment) []byte {
	return []byte(fmt.Sprintf("%s_%s", outputPrefix, commit.Hex()))
}

func genesisTip() *Tip {
	return &Tip{
		Height:          0,
		LastBlockHash:   "",
		PrevBlockHash:   "",
		TotalDifficulty: 1,
	}
}
