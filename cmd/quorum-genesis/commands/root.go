package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewRootCmd returns the quorum-genesis command with every subcommand added
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "quorum-genesis",
		Short: "Genesis generator for Quorum block voting networks",
		Long: `Generate a Quorum genesis file whose alloc carries the initial storage of the
block voting contract (0x...20) and the governance contract (0x...2a), and funds every
voter, maker, owner and observer listed in quorum-config.json.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(InitCmd)
	rootCmd.AddCommand(GenerateCmd)
	rootCmd.AddCommand(FingerprintCmd)
	rootCmd.AddCommand(VerifyCmd)
	return rootCmd
}

// Execute runs args and returns the process exit code. A failure is
// reported on out as " > message".
func Execute(args []string, out io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(out, " > %v\n", err)
		return 1
	}
	return 0
}
