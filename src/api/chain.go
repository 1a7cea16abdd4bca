package api

import (
	"github.com/mimblenetworks/mimble/src/chain"
	"github.com/mimblenetworks/mimble/src/core"
	"github.com/sirupsen/logrus"
)

// ChainAPI exposes the current chain state as a simple JSON object.
type ChainAPI struct {
	Unimplemented[string, *chain.Tip, struct{}, struct{}]

	store chain.ChainStore
}

// NewChainAPI ...
func NewChainAPI(store chain.ChainStore) *ChainAPI {
	return &ChainAPI{store: store}
}

// Operations ...
func (a *ChainAPI) Operations() []Operation {
	return []Operation{Get}
}

// Get returns the chain tip. The identifier is ignored; there is only one
// head.
func (a *ChainAPI) Get(id string) (*chain.Tip, error) {
	tip, err := a.store.Head()
	if err != nil {
		return nil, Internal("%v", err)
	}
	return tip, nil
}

// OutputAPI exposes outputs that have been included in the chain, addressed
// by their hex-encoded commitment.
type OutputAPI struct {
	Unimplemented[core.Commitment, *core.Output, struct{}, struct{}]

	store  chain.ChainStore
	logger *logrus.Entry
}

// NewOutputAPI ...
func NewOutputAPI(store chain.ChainStore, logger *logrus.Entry) *OutputAPI {
	return &OutputAPI{
		store:  store,
		logger: logger,
	}
}

// Operations ...
func (a *OutputAPI) Operations() []Operation {
	return []Operation{Get}
}

// Get looks up an output by commitment. A commitment the store does not know
// is NotFound; a store failure is Internal.
func (a *OutputAPI) Get(commit core.Commitment) (*core.Output, error) {
	a.logger.WithField("commit", commit.Hex()).Debug("GET output")

	output, err := a.store.GetOutputByCommit(commit)
	if err != nil {
		if chain.IsStore(err, chain.KeyNotFound) {
			return nil, NotFound("no output for commitment %s", commit.Hex())
		}
		return nil, Internal("%v", err)
	}

	return output, nil
}

// CommitmentID parses the raw hex identifier of an output request. It runs
// before the store is consulted, so a malformed commitment never reaches the
// backend.
func CommitmentID(raw string) (core.Commitment, error) {
	return core.CommitmentFromHex(raw)
}

// NewChainServer mounts the chain read endpoints on a new server under /v1.
func NewChainServer(store chain.ChainStore, logger *logrus.Entry) (*Server, error) {
	srv := NewServer("/v1", logger)

	if err := Register[string, *chain.Tip, struct{}, struct{}](srv, "/chain", NewChainAPI(store), StringID); err != nil {
		return nil, err
	}

	if err := Register[core.Commitment, *core.Output, struct{}, struct{}](srv, "/chain/output", NewOutputAPI(store, logger), CommitmentID); err != nil {
		return nil, err
	}

	return srv, nil
}

// StartChainAPIs registers the chain endpoints and starts the HTTP server on
// its own goroutine. A startup failure is logged as a hard failure of the
// API subsystem; it does not terminate the caller.
func StartChainAPIs(addr string, store chain.ChainStore, logger *logrus.Entry) (*Server, error) {
	srv, err := NewChainServer(store, logger)
	if err != nil {
		return nil, err
	}

	errc := srv.Start(addr)
	go func() {
		if err := <-errc; err != nil {
			logger.WithError(err).Error("API server failed")
		}
	}()

	return srv, nil
}
