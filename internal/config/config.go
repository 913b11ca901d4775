// Package config handles loading and saving user settings for Orbital Architect.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/f3rmion/orbital/internal/elements"
	"github.com/f3rmion/orbital/internal/orbital"
)

// SettingsFile is the name of the settings file inside the config directory.
const SettingsFile = "settings.yaml"

// Config holds all user settings.
type Config struct {
	Mode             string `yaml:"mode"`               // sandbox or campaign
	StartElement     int    `yaml:"start_element"`      // atomic number opened in sandbox
	DBPath           string `yaml:"db_path"`            // progress database; relative to the config dir
	ShowCoreNotation bool   `yaml:"show_core_notation"` // [Ne] 3s¹ instead of the full configuration
	TutorModel       string `yaml:"tutor_model"`        // model id for tutor explanations
	LogFile          string `yaml:"log_file"`           // relative to the config dir
}

// Default returns the settings used when no file exists.
func Default() *Config {
	return &Config{
		Mode:             "campaign",
		StartElement:     6,
		DBPath:           "progress.db",
		ShowCoreNotation: true,
		TutorModel:       "claude-sonnet-4-20250514",
		LogFile:          "orbital.log",
	}
}

// Validate checks the settings for values the game cannot use.
func (c *Config) Validate() error {
	if _, err := orbital.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("mode: %w", err)
	}
	if _, err := elements.Lookup(c.StartElement); err != nil {
		return fmt.Errorf("start_element: %w", err)
	}
	return nil
}

// GameMode returns the parsed mode, falling back to campaign.
func (c *Config) GameMode() orbital.Mode {
	m, err := orbital.ParseMode(c.Mode)
	if err != nil {
		return orbital.Campaign
	}
	return m
}

// Resolve returns p relative to dir unless it is absolute.
func Resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Load loads settings from dir. A missing file yields the defaults; fields
// absent from the file keep their default values.
func Load(dir string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(filepath.Join(dir, SettingsFile))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading settings file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing settings file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

// Save writes settings to dir.
func Save(dir string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, SettingsFile), out, 0644); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}

	return nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "orbital"), nil
}

// EnsureConfigDir creates dir if it doesn't exist.
func EnsureConfigDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return nil
}
