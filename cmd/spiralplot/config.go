package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// renderConfig holds render defaults loaded from a YAML file. Flags set
// explicitly on the command line win over file values.
type renderConfig struct {
	Keys   []string `yaml:"keys"`
	Window int      `yaml:"window"`
	Log    bool     `yaml:"log"`
	Grid   string   `yaml:"grid"`
	Title  string   `yaml:"title"`
	YLabel string   `yaml:"ylabel"`
	Format string   `yaml:"format"`
	Width  int      `yaml:"width"`
	Height int      `yaml:"height"`
}

func loadConfig(path string) (*renderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg renderConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// applyConfig copies file values into the flag variables for every flag
// the user did not set explicitly.
func applyConfig(cmd *cobra.Command, cfg *renderConfig) {
	set := func(name string) bool { return cmd.Flags().Changed(name) }
	if !set("keys") && len(cfg.Keys) > 0 {
		keysFlag = strings.Join(cfg.Keys, ",")
	}
	if !set("window") && cfg.Window > 0 {
		windowFlag = cfg.Window
	}
	if !set("log") && cfg.Log {
		logYFlag = true
	}
	if !set("grid") && cfg.Grid != "" {
		gridFlag = cfg.Grid
	}
	if !set("title") && cfg.Title != "" {
		titleFlag = cfg.Title
	}
	if !set("ylabel") && cfg.YLabel != "" {
		ylabelFlag = cfg.YLabel
	}
	if !set("format") && cfg.Format != "" {
		formatFlag = cfg.Format
	}
	if !set("width") && cfg.Width > 0 {
		widthFlag = cfg.Width
	}
	if !set("height") && cfg.Height > 0 {
		heightFlag = cfg.Height
	}
}
