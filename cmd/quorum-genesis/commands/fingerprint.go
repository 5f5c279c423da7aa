package commands

import (
	"fmt"

	"github.com/airchains-network/quorum-genesis/genesis"
	"github.com/spf13/cobra"
)

// FingerprintCmd represents the fingerprint command
var FingerprintCmd = &cobra.Command{
	Use:   "fingerprint [genesis-file]",
	Short: "Print the state fingerprint of a genesis file",
	Long: `Load the alloc of a genesis file into the account store and print the root of
the prefix tree built over it. Two files with the same accounts, balances, code and
storage words have the same fingerprint.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return fingerprintCommand(cmd, args)
	},
}

func init() {
	addConfigFlags(FingerprintCmd)
	FingerprintCmd.Flags().String("state-dir", "", "Keep fingerprint state in this directory")
}

func fingerprintCommand(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	overrideString(cmd, "state-dir", &cfg.General.StateDir)

	path := cfg.General.OutputFile
	if len(args) == 1 {
		path = args[0]
	}

	doc, err := genesis.ReadDocument(path)
	if err != nil {
		return err
	}
	log.Debugf("Read %s with %d accounts", path, len(doc.Alloc))

	fp, err := fingerprintDocument(doc, cfg.General.StateDir)
	if err != nil {
		return err
	}
	fmt.Println(fp)
	return nil
}
