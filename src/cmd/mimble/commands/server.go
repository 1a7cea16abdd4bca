package commands

import (
	"fmt"
	"time"

	"github.com/mimblenetworks/mimble/src/config"
	"github.com/mimblenetworks/mimble/src/daemon"
	"github.com/mimblenetworks/mimble/src/node"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

//NewServerCmd returns the command that controls the mimble server
func NewServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:              "server",
		Short:            "Control the mimble server",
		TraverseChildren: true,
	}

	AddServerFlags(cmd)

	cmd.AddCommand(
		newRunCmd(),
		newStartCmd(),
		newStopCmd(),
	)

	return cmd
}

//AddServerFlags adds the configuration flags shared by the server run modes
func AddServerFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("datadir", config.DefaultDataDir(), "Top-level directory for configuration and data")
	cmd.PersistentFlags().StringP("config", "c", "", "Custom json configuration file")
	cmd.PersistentFlags().IntP("port", "p", config.DefaultP2PPort, "Port to start the p2p server on")
	cmd.PersistentFlags().StringSliceP("seed", "s", nil, "Override seed node(s) to connect to")
	cmd.PersistentFlags().BoolP("mine", "m", false, "Start the debugging mining loop")
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the mimble server in this console",
		RunE:  runServer,
	}
}

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the mimble server as a daemon",
		RunE:  startServer,
	}
}

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the mimble server daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Deliberately left unimplemented.
			fmt.Printf("stop is not implemented yet; kill the process recorded in %s\n", config.DefaultPidFile)
			return nil
		},
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Resolve(cmd.InheritedFlags())
	if err != nil {
		return err
	}

	logger := cfg.Logger()

	logger.WithFields(logrus.Fields{
		"datadir":     cfg.DataDir,
		"port":        cfg.P2P.Port,
		"mine":        cfg.Mining.EnableMining,
		"seeding":     cfg.Seeding.String(),
		"cuckoo_size": cfg.CuckooSize,
	}).Debug("RUN")

	server := node.NewServer(cfg)

	if err := server.Start(); err != nil {
		logger.WithError(err).Error("Cannot start server")
		return err
	}

	// Keep the process alive. Termination comes from outside.
	for {
		time.Sleep(60 * time.Second)
	}
}

func startServer(cmd *cobra.Command, args []string) error {
	flags := cmd.InheritedFlags()

	// Resolve before detaching so configuration errors surface on the
	// invoking terminal, not in a log file nobody is watching.
	cfg, err := config.Resolve(flags)
	if err != nil {
		return err
	}

	logger := cfg.Logger()

	daemonArgs := append([]string{"server", "run"}, forwardedFlags(flags)...)

	pid, err := daemon.Daemonize(config.DefaultPidFile, daemonArgs...)
	if err != nil {
		logger.WithError(err).Error("Error starting mimble server daemon")
		return err
	}

	logger.WithFields(logrus.Fields{
		"pid":      pid,
		"pid_file": config.DefaultPidFile,
	}).Info("Mimble server successfully started")

	return nil
}

// forwardedFlags rebuilds the explicitly-set server flags as command line
// arguments for the detached process, so both processes resolve the same
// configuration.
func forwardedFlags(flags *pflag.FlagSet) []string {
	var forwarded []string

	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "seed":
			seeds, err := flags.GetStringSlice("seed")
			if err != nil {
				return
			}
			for _, s := range seeds {
				forwarded = append(forwarded, "--seed", s)
			}
		case "mine":
			forwarded = append(forwarded, "--mine")
		default:
			forwarded = append(forwarded, "--"+f.Name, f.Value.String())
		}
	})

	return forwarded
}
