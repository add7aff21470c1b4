// Package config loads the assistant configuration.
// Values are read by viper from polo.yaml or POLO_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
type Config struct {
	Timeout       time.Duration `mapstructure:"timeout"`        // bound for shell command execution
	MaxFileSize   int64         `mapstructure:"max_file_size"`  // read_file ceiling in bytes
	ContextWindow int           `mapstructure:"context_window"` // turns of chat context
	StoragePath   string        `mapstructure:"storage_path"`   // conversation log location
	ToolPrefix    string        `mapstructure:"tool_prefix"`    // leading character for tool commands
	WorkspaceRoot string        `mapstructure:"workspace_root"` // optional path confinement, "" = none
	HistoryFile   string        `mapstructure:"history_file"`   // REPL line history
	FindLimit     int           `mapstructure:"find_limit"`     // find_files result cap
	Observe       bool          `mapstructure:"observe"`        // JSONL telemetry emission
	LogLevel      string        `mapstructure:"log_level"`
}

// Load reads configuration from configPath, or from polo.yaml in the usual
// locations when empty. A missing config file is not an error; defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "polo"))
		}
		v.SetConfigName("polo")
		v.SetConfigType("yaml")
	}

	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("max_file_size", 5<<20)
	v.SetDefault("context_window", 5)
	v.SetDefault("storage_path", "polo_memory.jsonl")
	v.SetDefault("tool_prefix", "!")
	v.SetDefault("workspace_root", "")
	v.SetDefault("history_file", defaultHistoryFile())
	v.SetDefault("find_limit", 50)
	v.SetDefault("observe", false)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("POLO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// The default search tolerates a missing file; anything else is fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.ToolPrefix == "" {
		cfg.ToolPrefix = "!"
	}
	return &cfg, nil
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".polo_history"
	}
	return filepath.Join(home, ".polo_history")
}
