package commands

import (
	"fmt"

	"github.com/airchains-network/quorum-genesis/genesis"
	"github.com/airchains-network/quorum-genesis/state"
	"github.com/spf13/cobra"
)

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the genesis file",
	Long: `Read the input file, derive the storage of the block voting and governance
contracts, fund every participant and write the genesis file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return generateCommand(cmd)
	},
}

func init() {
	addConfigFlags(GenerateCmd)
	GenerateCmd.Flags().String("input", "", "Input file with threshold and addresses")
	GenerateCmd.Flags().String("output", "", "Genesis file to write")
	GenerateCmd.Flags().String("template", "", "Genesis template (empty uses the built-in one)")
	GenerateCmd.Flags().String("mode", "", "Input rules: quorum, explicit-owners or legacy")
	GenerateCmd.Flags().String("state-dir", "", "Keep fingerprint state in this directory")
}

func generateCommand(cmd *cobra.Command) error {
	cfg, log, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	overrideString(cmd, "input", &cfg.General.InputFile)
	overrideString(cmd, "output", &cfg.General.OutputFile)
	overrideString(cmd, "template", &cfg.General.TemplateFile)
	overrideString(cmd, "mode", &cfg.General.Mode)
	overrideString(cmd, "state-dir", &cfg.General.StateDir)

	in, err := genesis.LoadInput(cfg.General.InputFile, genesis.Mode(cfg.General.Mode))
	if err != nil {
		return err
	}
	log.Infof("Loaded %s: threshold %d, %d voters, %d makers, %d owners, %d observers",
		cfg.General.InputFile, in.Threshold, len(in.Voters), len(in.Makers), len(in.Owners), len(in.FundedObservers))

	tpl, err := genesis.LoadTemplate(cfg.General.TemplateFile)
	if err != nil {
		return err
	}

	doc, err := genesis.Build(tpl, in, log)
	if err != nil {
		return err
	}

	// nothing is written unless the alloc also loads into the state store
	fp, err := fingerprintDocument(doc, cfg.General.StateDir)
	if err != nil {
		return err
	}

	if err := doc.Write(cfg.General.OutputFile); err != nil {
		return err
	}
	log.Infof("Wrote %s with %d accounts", cfg.General.OutputFile, len(doc.Alloc))
	log.Infof("State fingerprint: %s", fp)
	return nil
}

func fingerprintDocument(doc *genesis.Document, stateDir string) (string, error) {
	s, err := state.NewGenesisState(stateDir)
	if err != nil {
		return "", fmt.Errorf("failed to open state: %w", err)
	}
	defer s.Close()

	if err := s.LoadAlloc(doc.Alloc); err != nil {
		return "", err
	}
	return s.Fingerprint()
}
