package commands

import (
	"fmt"

	"github.com/airchains-network/quorum-genesis/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", config.FileName, "Tool configuration file")
	cmd.Flags().String("log-level", "", "Log level (overrides the config file)")
}

// loadSettings reads the tool configuration named by --config and applies
// --log-level on top of it
func loadSettings(cmd *cobra.Command) (config.Config, *logrus.Logger, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}

	log, err := newLogger(cfg.Log.Level)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, log, nil
}

func newLogger(level string) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %v", level, err)
	}
	log.SetLevel(lvl)
	return log, nil
}

// overrideString replaces *dst with the named flag when the user set it
func overrideString(cmd *cobra.Command, name string, dst *string) {
	if cmd.Flags().Changed(name) {
		*dst, _ = cmd.Flags().GetString(name)
	}
}
