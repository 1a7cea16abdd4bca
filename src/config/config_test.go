package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/pflag"
)

// serverFlags mirrors the flag set the server command registers.
func serverFlags(datadir string) *pflag.FlagSet {
	flags := pflag.NewFlagSet("server", pflag.ContinueOnError)
	flags.String("datadir", datadir, "")
	flags.StringP("config", "c", "", "")
	flags.IntP("port", "p", DefaultP2PPort, "")
	flags.StringSliceP("seed", "s", nil, "")
	flags.BoolP("mine", "m", false, "")
	return flags
}

func writeConfigFile(t *testing.T, dir, content string) {
	t.Helper()
	if err := ioutil.WriteFile(filepath.Join(dir, "mimble.json"), []byte(content), 0644); err != nil {
		t.Fatalf("err: %v", err)
	}
}

func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := ioutil.TempDir("", "mimble")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func TestResolveDefaults(t *testing.T) {
	dir := tempDir(t)

	cfg, err := Resolve(serverFlags(dir))
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	if cfg.P2P.Port != DefaultP2PPort {
		t.Fatalf("port should be %d, not %d", DefaultP2PPort, cfg.P2P.Port)
	}
	if cfg.Mining.EnableMining {
		t.Fatalf("mining should be disabled by default")
	}
	if cfg.Seeding.Type != WebStatic {
		t.Fatalf("seeding should default to WebStatic")
	}
	if cfg.CuckooSize != DefaultCuckooSize {
		t.Fatalf("cuckoo_size should be %d, not %d", DefaultCuckooSize, cfg.CuckooSize)
	}
	if cfg.DataDir != dir {
		t.Fatalf("datadir should be %s, not %s", dir, cfg.DataDir)
	}
}

func TestResolvePrecedence(t *testing.T) {
	dir := tempDir(t)
	writeConfigFile(t, dir, `{"p2p_config": {"port": 10}}`)

	// File overrides default
	cfg, err := Resolve(serverFlags(dir))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if cfg.P2P.Port != 10 {
		t.Fatalf("file port should win over default, got %d", cfg.P2P.Port)
	}

	// CLI overrides file
	flags := serverFlags(dir)
	if err := flags.Parse([]string{"--port", "20"}); err != nil {
		t.Fatalf("err: %v", err)
	}
	cfg, err = Resolve(flags)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if cfg.P2P.Port != 20 {
		t.Fatalf("cli port should win over file, got %d", cfg.P2P.Port)
	}
}

func TestResolveMineFlag(t *testing.T) {
	dir := tempDir(t)
	writeConfigFile(t, dir, `{"mining_config": {"enable_mining": false}}`)

	flags := serverFlags(dir)
	if err := flags.Parse([]string{"--mine"}); err != nil {
		t.Fatalf("err: %v", err)
	}

	cfg, err := Resolve(flags)
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	if !cfg.Mining.EnableMining {
		t.Fatalf("--mine should force-enable mining")
	}
}

func TestResolveSeedReplacement(t *testing.T) {
	dir := tempDir(t)
	writeConfigFile(t, dir, `{"seeding_type": {"List": ["a.com", "b.com"]}}`)

	// Without CLI override the file list applies.
	cfg, err := Resolve(serverFlags(dir))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if cfg.Seeding.Type != List {
		t.Fatalf("seeding should be List, not %s", cfg.Seeding)
	}
	if !reflect.DeepEqual(cfg.Seeding.Peers, []string{"a.com", "b.com"}) {
		t.Fatalf("seed peers should come from the file, got %v", cfg.Seeding.Peers)
	}

	// --seed replaces the whole strategy, it does not merge.
	flags := serverFlags(dir)
	if err := flags.Parse([]string{"--seed", "c.com"}); err != nil {
		t.Fatalf("err: %v", err)
	}
	cfg, err = Resolve(flags)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !reflect.DeepEqual(cfg.Seeding.Peers, []string{"c.com"}) {
		t.Fatalf("cli seeds should replace file seeds, got %v", cfg.Seeding.Peers)
	}
}

func TestResolveWebStaticFromFile(t *testing.T) {
	dir := tempDir(t)
	writeConfigFile(t, dir, `{"seeding_type": "WebStatic", "cuckoo_size": 16}`)

	cfg, err := Resolve(serverFlags(dir))
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	if cfg.Seeding.Type != WebStatic {
		t.Fatalf("seeding should be WebStatic, not %s", cfg.Seeding)
	}
	if cfg.CuckooSize != 16 {
		t.Fatalf("cuckoo_size should be 16, not %d", cfg.CuckooSize)
	}
}

func TestResolveMalformedFile(t *testing.T) {
	dir := tempDir(t)
	writeConfigFile(t, dir, `{"p2p_config": `)

	if _, err := Resolve(serverFlags(dir)); err == nil {
		t.Fatalf("a malformed config file should be an error, not a fallback to defaults")
	}
}

func TestResolveExplicitConfigFile(t *testing.T) {
	dir := tempDir(t)
	file := filepath.Join(dir, "custom.json")
	if err := ioutil.WriteFile(file, []byte(`{"p2p_config": {"port": 33}}`), 0644); err != nil {
		t.Fatalf("err: %v", err)
	}

	flags := serverFlags(dir)
	if err := flags.Parse([]string{"--config", file}); err != nil {
		t.Fatalf("err: %v", err)
	}

	cfg, err := Resolve(flags)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if cfg.P2P.Port != 33 {
		t.Fatalf("port should be 33, not %d", cfg.P2P.Port)
	}

	// An explicit --config pointing nowhere is an error.
	flags = serverFlags(dir)
	if err := flags.Parse([]string{"--config", filepath.Join(dir, "missing.json")}); err != nil {
		t.Fatalf("err: %v", err)
	}
	if _, err := Resolve(flags); err == nil {
		t.Fatalf("an explicit missing config file should be an error")
	}
}
