package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// FileName is where the tool looks for its settings by default
const FileName = "quorum-genesis.toml"

// Config holds the application configuration
type Config struct {
	General GeneralConfig `toml:"general"`
	Log     LogConfig     `toml:"log"`
	Verify  VerifyConfig  `toml:"verify"`
}

// GeneralConfig holds file locations and input rules
type GeneralConfig struct {
	InputFile    string `toml:"input_file"`
	OutputFile   string `toml:"output_file"`
	TemplateFile string `toml:"template_file"` // empty uses the embedded template
	Mode         string `toml:"mode"`          // "quorum", "explicit-owners" or "legacy"
	StateDir     string `toml:"state_dir"`     // empty keeps fingerprint state in memory
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `toml:"level"`
}

// VerifyConfig holds settings for checking a running node
type VerifyConfig struct {
	RPCURL         string `toml:"rpc_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// DefaultConfig returns the settings used when no file is present
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			InputFile:  "quorum-config.json",
			OutputFile: "quorum-genesis.json",
			Mode:       "quorum",
		},
		Log: LogConfig{
			Level: "info",
		},
		Verify: VerifyConfig{
			RPCURL:         "http://127.0.0.1:8545",
			TimeoutSeconds: 30,
		},
	}
}

// LoadConfig reads path on top of the defaults. A missing file yields the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	file, err := os.ReadFile(path) //nolint:gosec
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %v", err)
	}

	err = toml.Unmarshal(file, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %v", err)
	}

	return cfg, nil
}

// Save writes the configuration to path
func (c Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec
		return fmt.Errorf("failed to write config file: %v", err)
	}
	return nil
}
