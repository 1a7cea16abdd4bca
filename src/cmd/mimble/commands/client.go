package commands

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mimblenetworks/mimble/src/chain"
	"github.com/mimblenetworks/mimble/src/config"
	"github.com/spf13/cobra"
)

//NewClientCmd returns the command that communicates with a running server
func NewClientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:              "client",
		Short:            "Communicate with the mimble server",
		TraverseChildren: true,
	}

	cmd.PersistentFlags().String("api", config.DefaultAPIAddr, "IP:Port of the server HTTP API")

	cmd.AddCommand(newStatusCmd())

	return cmd
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Current status of the mimble chain",
		RunE:  chainStatus,
	}
}

func chainStatus(cmd *cobra.Command, args []string) error {
	addr, err := cmd.InheritedFlags().GetString("api")
	if err != nil {
		return err
	}

	resp, err := http.Get(fmt.Sprintf("http://%s/v1/chain", addr))
	if err != nil {
		return fmt.Errorf("cannot reach server API at %s: %v", addr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server API at %s returned %s", addr, resp.Status)
	}

	tip := new(chain.Tip)
	if err := json.NewDecoder(resp.Body).Decode(tip); err != nil {
		return err
	}

	fmt.Printf("height:           %d\n", tip.Height)
	fmt.Printf("last block:       %s\n", tip.LastBlockHash)
	fmt.Printf("total difficulty: %d\n", tip.TotalDifficulty)

	return nil
}
