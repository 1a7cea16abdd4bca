package node

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"testing"

	"github.com/mimblenetworks/mimble/src/chain"
	"github.com/mimblenetworks/mimble/src/config"
	"github.com/mimblenetworks/mimble/src/core"
)

func testConfig(t *testing.T) *config.ServerConfig {
	dir, err := ioutil.TempDir("", "mimble")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	cfg := config.NewDefaultConfig()
	cfg.DataDir = dir
	cfg.APIAddr = "127.0.0.1:0"
	cfg.LogLevel = "error"

	return cfg
}

func TestServerStart(t *testing.T) {
	srv := NewServer(testConfig(t))

	if err := srv.Start(); err != nil {
		t.Fatalf("err: %v", err)
	}
	defer srv.Shutdown()

	resp, err := http.Get(fmt.Sprintf("http://%s/v1/chain", srv.APIAddr()))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /v1/chain returned %s", resp.Status)
	}

	var tip chain.Tip
	if err := json.NewDecoder(resp.Body).Decode(&tip); err != nil {
		t.Fatalf("err: %v", err)
	}

	if tip.Height != 0 {
		t.Fatalf("a fresh node should be at the genesis tip, got height %d", tip.Height)
	}
}

func TestServerServesOutputs(t *testing.T) {
	srv := NewServer(testConfig(t))

	if err := srv.Start(); err != nil {
		t.Fatalf("err: %v", err)
	}
	defer srv.Shutdown()

	commit, err := core.CommitmentFromHex("09815a0537082ef6b15bcba6b28d4aee88bd6e57b0a6d87e2cf66b2e0fd24c7bd1")
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	output := &core.Output{Features: core.CoinbaseOutput, Commit: commit}
	if err := srv.Store().SaveOutput(output); err != nil {
		t.Fatalf("err: %v", err)
	}

	resp, err := http.Get(fmt.Sprintf("http://%s/v1/chain/output/%s", srv.APIAddr(), commit.Hex()))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET output returned %s", resp.Status)
	}

	var got core.Output
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("err: %v", err)
	}

	if got.Commit != commit {
		t.Fatalf("served output does not match the stored one")
	}
}
