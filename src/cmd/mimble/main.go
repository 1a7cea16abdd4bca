package main

import (
	"os"

	"github.com/mimblenetworks/mimble/src/cmd/mimble/commands"
)

func main() {
	rootCmd := commands.RootCmd

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
