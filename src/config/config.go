package config

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"

	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// Default filenames.
const (
	// DefaultChainFile is the default name of the folder containing the
	// chain database.
	DefaultChainFile = "chain_db"

	// DefaultConfigName is the base name of the JSON config file looked up
	// in the data directory.
	DefaultConfigName = "mimble"

	// DefaultPidFile is where the daemonized server records its PID.
	DefaultPidFile = "/tmp/mimble.pid"
)

// Default configuration values.
const (
	DefaultLogLevel           = "debug"
	DefaultAPIAddr            = "127.0.0.1:13413"
	DefaultP2PPort            = 13414
	DefaultWalletReceiverAddr = "127.0.0.1:13416"
	DefaultCuckooSize         = 12
	DefaultEnableMining       = false
)

// P2PConfig groups the peer-to-peer networking settings.
type P2PConfig struct {
	// Port is the port the p2p server binds to.
	Port int `mapstructure:"port" json:"port"`
}

// MiningConfig groups the mining settings.
type MiningConfig struct {
	// EnableMining starts the debugging mining loop.
	EnableMining bool `mapstructure:"enable_mining" json:"enable_mining"`
}

// ServerConfig contains all the configuration properties of a mimble node.
// It is resolved once per process invocation and never mutated afterwards;
// a run mode that spawns another execution context receives its own copy.
type ServerConfig struct {
	// DataDir is the top-level directory containing configuration and data.
	DataDir string `mapstructure:"datadir" json:"-"`

	// LogLevel determines the chattiness of the log output.
	LogLevel string `mapstructure:"log_level" json:"log_level,omitempty"`

	// LogFile optionally copies info-and-above log lines to a file.
	LogFile string `mapstructure:"log_file" json:"log_file,omitempty"`

	// APIAddr is the address:port the HTTP API binds to.
	APIAddr string `mapstructure:"api_addr" json:"api_addr,omitempty"`

	// P2P is the peer-to-peer networking configuration.
	P2P P2PConfig `mapstructure:"p2p_config" json:"p2p_config"`

	// Mining is the mining configuration.
	Mining MiningConfig `mapstructure:"mining_config" json:"mining_config"`

	// Seeding selects the strategy used to discover peers at startup.
	Seeding Seeding `mapstructure:"seeding_type" json:"seeding_type"`

	// CuckooSize is the size of the cuckoo graph used by proof-of-work.
	CuckooSize int `mapstructure:"cuckoo_size" json:"cuckoo_size"`

	logger *logrus.Logger
}

// NewDefaultConfig returns a config object with default values.
func NewDefaultConfig() *ServerConfig {
	return &ServerConfig{
		DataDir:  DefaultDataDir(),
		LogLevel: DefaultLogLevel,
		APIAddr:  DefaultAPIAddr,
		P2P: P2PConfig{
			Port: DefaultP2PPort,
		},
		Mining: MiningConfig{
			EnableMining: DefaultEnableMining,
		},
		Seeding:    SeedWebStatic(),
		CuckooSize: DefaultCuckooSize,
	}
}

// ChainDir returns the directory containing the chain database.
func (c *ServerConfig) ChainDir() string {
	return filepath.Join(c.DataDir, DefaultChainFile)
}

// Logger returns a formatted logrus Entry, with prefix set to "mimble". When
// a log file is configured, info-and-above lines are copied to it.
func (c *ServerConfig) Logger() *logrus.Entry {
	if c.logger == nil {
		c.logger = logrus.New()
		c.logger.Level = LogLevel(c.LogLevel)
		c.logger.Formatter = new(prefixed.TextFormatter)

		if c.LogFile != "" {
			f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
			if err != nil {
				c.logger.Infof("Failed to open log file %s, using default stderr", c.LogFile)
			} else {
				f.Close()

				pathMap := lfshook.PathMap{}
				for _, lvl := range []logrus.Level{
					logrus.InfoLevel,
					logrus.WarnLevel,
					logrus.ErrorLevel,
					logrus.FatalLevel,
				} {
					pathMap[lvl] = c.LogFile
				}

				c.logger.Hooks.Add(lfshook.NewHook(
					pathMap,
					&logrus.TextFormatter{},
				))
			}
		}
	}

	return c.logger.WithField("prefix", "mimble")
}

// DefaultDataDir returns the default directory name for top-level mimble
// config based on the underlying OS, attempting to respect conventions.
func DefaultDataDir() string {
	// Try to place the data folder in the user's home dir
	home := HomeDir()
	if home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, ".Mimble")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "Mimble")
		} else {
			return filepath.Join(home, ".mimble")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

// HomeDir returns the user's home directory.
func HomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// LogLevel parses a string into a Logrus log level.
func LogLevel(l string) logrus.Level {
	switch l {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.DebugLevel
	}
}
