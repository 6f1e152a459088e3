package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/wardenctl/internal/shell"
)

// defaultSocketPath is where a packaged warden engine exposes its
// control socket. Overridden by config file or --socket.
const defaultSocketPath = "/var/run/warden/warden-command.socket"

type cliConfig struct {
	Socket      string
	Prompt      string
	HistoryFile string
	NoColor     bool
	Verbose     bool
}

func defaultCLIConfig() cliConfig {
	return cliConfig{
		Socket: defaultSocketPath,
		Prompt: shell.DefaultPrompt,
	}
}

type fileConfig struct {
	Socket      string `toml:"socket"`
	Prompt      string `toml:"prompt"`
	HistoryFile string `toml:"history_file"`
	NoColor     bool   `toml:"no_color"`
	Verbose     bool   `toml:"verbose"`
}

// loadFileConfig overlays keys present in the TOML file onto cfg.
// Absent keys keep their compiled defaults; flags are applied on top
// by the caller.
func loadFileConfig(path string, cfg cliConfig) (cliConfig, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return cliConfig{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("socket") {
		if v := strings.TrimSpace(raw.Socket); v != "" {
			cfg.Socket = v
		}
	}
	if meta.IsDefined("prompt") && raw.Prompt != "" {
		cfg.Prompt = raw.Prompt
	}
	if meta.IsDefined("history_file") {
		cfg.HistoryFile = strings.TrimSpace(raw.HistoryFile)
	}
	if meta.IsDefined("no_color") {
		cfg.NoColor = raw.NoColor
	}
	if meta.IsDefined("verbose") {
		cfg.Verbose = raw.Verbose
	}
	return cfg, nil
}
