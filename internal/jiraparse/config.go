package jiraparse

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the shape of <config dir>/jira.toml.
type Config struct {
	Mode string `toml:"mode"`
}

// LoadConfig reads jira.toml from configDir. A missing file is not an
// error: it returns the default config (ModeStrict).
func LoadConfig(configDir string) (Config, error) {
	path := filepath.Join(configDir, "jira.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{Mode: "strict"}, nil
		}
		return Config{}, err
	}
	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, err
	}
	if cfg.Mode == "" {
		cfg.Mode = "strict"
	}
	return cfg, nil
}

// ParserMode converts the config's string mode to a Mode, defaulting to
// ModeStrict for anything other than exactly "flexible".
func (c Config) ParserMode() Mode {
	if c.Mode == "flexible" {
		return ModeFlexible
	}
	return ModeStrict
}
