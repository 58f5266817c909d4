// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Leaderboard backends.
const (
	BackendSQLite = "sqlite"
	BackendYAML   = "yaml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Test        TestConfig        `toml:"test"`
	Leaderboard LeaderboardConfig `toml:"leaderboard"`
	Log         LogConfig         `toml:"log"`
}

// TestConfig maps the default test settings.
type TestConfig struct {
	Mode       *string `toml:"mode"`
	Difficulty *string `toml:"difficulty"`
	Type       *string `toml:"type"`
	Time       *int    `toml:"time"`
	Words      *int    `toml:"words"`
	CustomText *string `toml:"custom-text"`
	Sound      *bool   `toml:"sound"`
}

// LeaderboardConfig maps leaderboard persistence settings.
type LeaderboardConfig struct {
	Username *string `toml:"username"`
	Backend  *string `toml:"backend"`
}

// LogConfig maps logger settings.
type LogConfig struct {
	Level  *string `toml:"level"`
	Format *string `toml:"format"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	if b := cfg.Leaderboard.Backend; b != nil && *b != BackendSQLite && *b != BackendYAML {
		return FileConfig{}, fmt.Errorf("leaderboard backend must be %q or %q, got %q", BackendSQLite, BackendYAML, *b)
	}
	return cfg, nil
}
