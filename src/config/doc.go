// Package config defines the configuration of a mimble node and the rules
// for resolving it.
//
// A configuration is resolved exactly once per process invocation, in three
// layers of strictly increasing precedence: hard-coded defaults, an optional
// JSON config file (mimble.json in the data directory, or a file named with
// --config), and explicit CLI flags. Once resolved, the ServerConfig is
// treated as immutable.
package config
