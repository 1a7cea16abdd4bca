package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mimblenetworks/mimble/src/chain"
	"github.com/mimblenetworks/mimble/src/common"
	"github.com/mimblenetworks/mimble/src/core"
)

// countingStore records how often the output lookup is hit, so tests can
// assert that bad identifiers are rejected before reaching the store.
type countingStore struct {
	chain.ChainStore
	outputLookups int
}

func (s *countingStore) GetOutputByCommit(commit core.Commitment) (*core.Output, error) {
	s.outputLookups++
	return s.ChainStore.GetOutputByCommit(commit)
}

func newChainFixture(t *testing.T) (*httptest.Server, *countingStore, core.Commitment) {
	t.Helper()

	inmem := chain.NewInmemStore()

	if err := inmem.SaveHead(&chain.Tip{Height: 5, LastBlockHash: "ab", TotalDifficulty: 1000}); err != nil {
		t.Fatalf("err: %v", err)
	}

	commit := core.CommitmentFromBytes(bytes.Repeat([]byte{1}, core.CommitmentSize))
	if err := inmem.SaveOutput(&core.Output{Features: core.DefaultOutput, Commit: commit}); err != nil {
		t.Fatalf("err: %v", err)
	}

	store := &countingStore{ChainStore: inmem}

	srv, err := NewChainServer(store, common.NewTestEntry(t))
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return ts, store, commit
}

func TestGetChainTip(t *testing.T) {
	ts, _, _ := newChainFixture(t)

	resp, err := http.Get(ts.URL + "/v1/chain")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", resp.StatusCode)
	}

	tip := new(chain.Tip)
	if err := json.NewDecoder(resp.Body).Decode(tip); err != nil {
		t.Fatalf("err: %v", err)
	}

	if tip.Height != 5 {
		t.Fatalf("tip height should be 5, not %d", tip.Height)
	}
}

func TestGetOutput(t *testing.T) {
	ts, _, commit := newChainFixture(t)

	resp, err := http.Get(ts.URL + "/v1/chain/output/" + commit.Hex())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", resp.StatusCode)
	}

	output := new(core.Output)
	if err := json.NewDecoder(resp.Body).Decode(output); err != nil {
		t.Fatalf("err: %v", err)
	}

	if output.Commit != commit {
		t.Fatalf("output commitment does not match")
	}
}

func TestGetOutputNotFound(t *testing.T) {
	ts, _, _ := newChainFixture(t)

	absent := core.CommitmentFromBytes(bytes.Repeat([]byte{2}, core.CommitmentSize))

	resp, err := http.Get(ts.URL + "/v1/chain/output/" + absent.Hex())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("an unknown commitment should be NotFound, got %d", resp.StatusCode)
	}

	apiErr := decodeAPIError(t, resp)
	if apiErr.Kind != ErrNotFound {
		t.Fatalf("kind should be NotFound, not %s", apiErr.Kind)
	}
}

func TestGetOutputBadCommitment(t *testing.T) {
	ts, store, _ := newChainFixture(t)

	resp, err := http.Get(ts.URL + "/v1/chain/output/zzzz")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("a non-hex commitment should be an Argument error, got %d", resp.StatusCode)
	}

	apiErr := decodeAPIError(t, resp)
	if apiErr.Kind != ErrArgument {
		t.Fatalf("kind should be Argument, not %s", apiErr.Kind)
	}

	if store.outputLookups != 0 {
		t.Fatalf("a bad identifier must be rejected before the store is consulted")
	}
}

func TestChainWriteRejected(t *testing.T) {
	ts, _, _ := newChainFixture(t)

	resp, err := http.Post(ts.URL+"/v1/chain", "application/json", bytes.NewReader([]byte("{}")))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("the chain endpoint is read-only, got %d", resp.StatusCode)
	}
}
