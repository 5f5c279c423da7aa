package commands

import (
	"fmt"
	"os"

	"github.com/airchains-network/quorum-genesis/config"
	"github.com/airchains-network/quorum-genesis/genesis"
	"github.com/spf13/cobra"
)

// InitCmd represents the init command
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default quorum-genesis.toml",
	Long: `Write the tool configuration with default file names, mode and log level.
Flags given here are stored in the file so later runs of generate and verify pick them up.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(cmd)
	},
}

func init() {
	InitCmd.Flags().String("config", config.FileName, "Where to write the configuration")
	InitCmd.Flags().String("input", "", "Input file with threshold and addresses")
	InitCmd.Flags().String("output", "", "Genesis file to write")
	InitCmd.Flags().String("template", "", "Genesis template (empty uses the built-in one)")
	InitCmd.Flags().String("mode", "", "Input rules: quorum, explicit-owners or legacy")
	InitCmd.Flags().String("rpc-url", "", "Node RPC URL used by verify")
	InitCmd.Flags().Bool("force", false, "Overwrite an existing configuration file")
}

func initCommand(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	force, _ := cmd.Flags().GetBool("force")

	log, err := newLogger("info")
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite it", configPath)
	}

	cfg := config.DefaultConfig()
	overrideString(cmd, "input", &cfg.General.InputFile)
	overrideString(cmd, "output", &cfg.General.OutputFile)
	overrideString(cmd, "template", &cfg.General.TemplateFile)
	overrideString(cmd, "mode", &cfg.General.Mode)
	overrideString(cmd, "rpc-url", &cfg.Verify.RPCURL)

	if _, err := genesis.Mode(cfg.General.Mode).Capabilities(); err != nil {
		return err
	}

	if err := cfg.Save(configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	log.Infof("Created config file at: %s", configPath)

	fmt.Println("\n=== Configuration Summary ===")
	fmt.Printf("Input File: %s\n", cfg.General.InputFile)
	fmt.Printf("Output File: %s\n", cfg.General.OutputFile)
	if cfg.General.TemplateFile == "" {
		fmt.Println("Template: built-in")
	} else {
		fmt.Printf("Template: %s\n", cfg.General.TemplateFile)
	}
	fmt.Printf("Mode: %s\n", cfg.General.Mode)
	fmt.Printf("RPC URL: %s\n", cfg.Verify.RPCURL)

	log.Infof("Create %s and run: quorum-genesis generate", cfg.General.InputFile)
	return nil
}
