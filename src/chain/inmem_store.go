package chain

import (
	"sync"

	"github.com/mimblenetworks/mimble/src/core"
)

// InmemStore keeps chain state in memory. It is used in tests and in
// lightweight runs where no database directory is wanted.
type InmemStore struct {
	mtx     sync.RWMutex
	head    *Tip
	outputs map[core.Commitment]*core.Output
}

// NewInmemStore ...
func NewInmemStore() *InmemStore {
	return &InmemStore{
		outputs: make(map[core.Commitment]*core.Output),
	}
}

// Head returns the current chain tip.
func (s *InmemStore) Head() (*Tip, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if s.head == nil {
		return nil, NewStoreErr("head", Empty, "head")
	}

	res := *s.head

	return &res, nil
}

// GetOutputByCommit looks up an output by its commitment.
func (s *InmemStore) GetOutputByCommit(commit core.Commitment) (*core.Output, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	output, ok := s.outputs[commit]
	if !ok {
		return nil, NewStoreErr("output", KeyNotFound, commit.Hex())
	}

	res := *output

	return &res, nil
}

// SaveHead records tip as the new chain head.
func (s *InmemStore) SaveHead(tip *Tip) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	res := *tip
	s.head = &res

	return nil
}

// SaveOutput records an output.
func (s *InmemStore) SaveOutput(output *core.Output) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	res := *output
	s.outputs[output.Commit] = &res

	return nil
}

// Close is a no-op for the in-memory store.
func (s *InmemStore) Close() error {
	return nil
}
