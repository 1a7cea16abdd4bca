package commands

import (
	"fmt"
	"strconv"

	"github.com/mimblenetworks/mimble/src/api"
	"github.com/mimblenetworks/mimble/src/config"
	"github.com/mimblenetworks/mimble/src/wallet"
	"github.com/spf13/cobra"
)

//NewWalletCmd returns the wallet command group
func NewWalletCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:              "wallet",
		Short:            "Wallet software for mimble",
		TraverseChildren: true,
	}

	cmd.PersistentFlags().StringP("pass", "p", "", "Wallet passphrase used to generate the private key seed")

	cmd.AddCommand(
		newReceiveCmd(),
		newSendCmd(),
	)

	return cmd
}

// walletKey derives the wallet's extended key from the --pass flag. A
// missing passphrase or a failed derivation aborts the subcommand.
func walletKey(cmd *cobra.Command) (*wallet.ExtendedKey, error) {
	pass, err := cmd.InheritedFlags().GetString("pass")
	if err != nil {
		return nil, err
	}
	return wallet.KeyFromPassphrase(pass)
}

func newReceiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "receive",
		Short: "Run the wallet in receiving mode",
		RunE:  runReceiver,
	}
}

func runReceiver(cmd *cobra.Command, args []string) error {
	key, err := walletKey(cmd)
	if err != nil {
		return err
	}

	logger := config.NewDefaultConfig().Logger()

	logger.Info("Starting the mimble wallet receiving daemon")

	srv := api.NewServer("/v1", logger)

	receiver := &wallet.WalletReceiver{Key: key}
	if err := api.Register[string, struct{}, wallet.CoinbaseRequest, wallet.CoinbaseResponse](
		srv, "/receive_coinbase", receiver, api.StringID); err != nil {
		return err
	}

	txReceiver := wallet.NewTxReceiver(key, logger)
	if err := api.Register[string, struct{}, wallet.Transaction, wallet.TxAck](
		srv, "/receive_transaction", txReceiver, api.StringID); err != nil {
		return err
	}

	// Blocks while serving; only a bind or serve failure unblocks it.
	if err := <-srv.Start(config.DefaultWalletReceiverAddr); err != nil {
		logger.WithError(err).Error("Failed to start mimble wallet receiver")
		return err
	}

	return nil
}

func newSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send AMOUNT",
		Short: "Build a transaction to send someone some coins",
		Long: `Builds a transaction to send someone some coins. By default the
transaction is printed to stdout. If a destination is provided, the command
contacts the receiver at that address and sends the transaction directly.`,
		Args: cobra.ExactArgs(1),
		RunE: sendTx,
	}

	cmd.Flags().StringP("dest", "d", "stdout", "Send the transaction to the provided server")

	return cmd
}

func sendTx(cmd *cobra.Command, args []string) error {
	key, err := walletKey(cmd)
	if err != nil {
		return err
	}

	amount, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("could not parse amount %q as a whole number", args[0])
	}

	dest, err := cmd.Flags().GetString("dest")
	if err != nil {
		return err
	}

	return wallet.IssueSendTx(key, amount, dest)
}
