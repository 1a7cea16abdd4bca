package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Resolve builds the immutable ServerConfig for this invocation. Defaults
// apply first, then the JSON config file if one exists, then CLI flags, each
// layer overriding the previous one at field granularity. A missing config
// file is not an error; a file that exists but cannot be parsed is, and is
// never papered over with defaults.
//
// The data directory comes in through the flag set rather than a buried
// home-directory lookup, so the resolver can be pointed anywhere in tests.
func Resolve(flags *pflag.FlagSet) (*ServerConfig, error) {
	cfg := NewDefaultConfig()

	if datadir, err := flags.GetString("datadir"); err == nil && datadir != "" {
		cfg.DataDir = datadir
	}

	v := viper.New()
	if file, err := flags.GetString("config"); err == nil && file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.AddConfigPath(cfg.DataDir)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %v", err)
		}
	} else {
		if err := v.Unmarshal(cfg, viper.DecodeHook(SeedingHookFunc())); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %v", v.ConfigFileUsed(), err)
		}
	}

	// CLI overrides apply last. An explicit --seed replaces the seeding
	// strategy entirely, regardless of what the file specified.
	if flags.Changed("port") {
		if port, err := flags.GetInt("port"); err == nil {
			cfg.P2P.Port = port
		}
	}

	if mine, err := flags.GetBool("mine"); err == nil && mine {
		cfg.Mining.EnableMining = true
	}

	if flags.Changed("seed") {
		if seeds, err := flags.GetStringSlice("seed"); err == nil {
			cfg.Seeding = SeedList(seeds)
		}
	}

	return cfg, nil
}
