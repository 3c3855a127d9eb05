package main

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// replConfig is the REPL's optional on-disk configuration, read from
// ~/.koto/config.toml if present.
type replConfig struct {
	Prompt      string `toml:"prompt"`
	HistoryFile string `toml:"history_file"`
	Color       bool   `toml:"color"`
}

func defaultConfig() replConfig {
	home, _ := os.UserHomeDir()
	return replConfig{
		Prompt:      "» ",
		HistoryFile: filepath.Join(home, ".koto", "history"),
		Color:       true,
	}
}

// loadConfig overlays ~/.koto/config.toml onto the defaults. A missing
// file is not an error; a malformed one is reported so the user notices a
// typo rather than silently running with defaults.
func loadConfig() (replConfig, error) {
	cfg := defaultConfig()
	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil
	}
	path := filepath.Join(home, ".koto", "config.toml")
	if _, err := os.Stat(path); err != nil {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
