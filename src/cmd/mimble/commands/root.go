package commands

import (
	"github.com/spf13/cobra"
)

//RootCmd is the root command for mimble
var RootCmd = &cobra.Command{
	Use:              "mimble",
	Short:            "Lightweight implementation of the MimbleWimble protocol",
	TraverseChildren: true,
}

func init() {
	RootCmd.AddCommand(
		NewServerCmd(),
		NewClientCmd(),
		NewWalletCmd(),
		NewVersionCmd(),
	)
}
