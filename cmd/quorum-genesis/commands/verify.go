package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/airchains-network/quorum-genesis/eth"
	"github.com/airchains-network/quorum-genesis/genesis"
	"github.com/spf13/cobra"
)

// VerifyCmd represents the verify command
var VerifyCmd = &cobra.Command{
	Use:   "verify [genesis-file]",
	Short: "Compare a running node's genesis state with a genesis file",
	Long: `Query the node at --rpc-url for the balance and storage of every account in
the genesis file at block 0 and report each value that differs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return verifyCommand(cmd, args)
	},
}

func init() {
	addConfigFlags(VerifyCmd)
	VerifyCmd.Flags().String("rpc-url", "", "Node RPC URL")
	VerifyCmd.Flags().Int("timeout", 0, "Timeout in seconds (overrides the config file)")
}

func verifyCommand(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	overrideString(cmd, "rpc-url", &cfg.Verify.RPCURL)
	if cmd.Flags().Changed("timeout") {
		cfg.Verify.TimeoutSeconds, _ = cmd.Flags().GetInt("timeout")
	}

	path := cfg.General.OutputFile
	if len(args) == 1 {
		path = args[0]
	}
	doc, err := genesis.ReadDocument(path)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Verify.TimeoutSeconds)*time.Second)
	defer cancel()

	client, err := eth.NewClient(ctx, cfg.Verify.RPCURL)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", cfg.Verify.RPCURL, err)
	}
	defer client.Close()

	mismatches, err := eth.VerifyAlloc(ctx, client.Eth, doc.Alloc, log)
	if err != nil {
		return err
	}
	for _, m := range mismatches {
		log.Warn(m.String())
	}
	if len(mismatches) > 0 {
		return fmt.Errorf("node state differs from %s in %d places", path, len(mismatches))
	}

	log.Infof("Node at %s matches %s (%d accounts)", cfg.Verify.RPCURL, path, len(doc.Alloc))
	return nil
}
