// Package config handles configuration loading and validation for regform.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/regform/internal/core/registration"
	"github.com/colonyops/regform/internal/core/styles"
)

// Config holds the application configuration.
type Config struct {
	Endpoint  string          `yaml:"endpoint"`   // submission URL; may be overridden by --endpoint
	TeamSizes TeamSizesConfig `yaml:"team_sizes"` // allowed team sizes
	Domains   []string        `yaml:"domains"`    // known domains; empty accepts free text
	Abstract  AbstractConfig  `yaml:"abstract"`
	Submit    SubmitConfig    `yaml:"submit"`
	TUI       TUIConfig       `yaml:"tui"`
}

// TeamSizesConfig is the bounded set of selectable team sizes.
type TeamSizesConfig struct {
	Options []int `yaml:"options"`
	Default int   `yaml:"default"`
}

// AbstractConfig holds the rules for the uploaded abstract.
type AbstractConfig struct {
	MimeType  string `yaml:"mime_type"`
	TypeLabel string `yaml:"type_label"` // shown in "Please upload a X file"; derived from mime_type when empty
	MaxSizeMB int    `yaml:"max_size_mb"`
}

// SubmitConfig controls the submission request.
type SubmitConfig struct {
	Timeout time.Duration `yaml:"timeout"` // 0 waits indefinitely
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	sizes := registration.DefaultTeamSizes()
	rules := registration.DefaultFileRules()

	return Config{
		TeamSizes: TeamSizesConfig{
			Options: sizes.Options,
			Default: sizes.Default,
		},
		Domains: []string{},
		Abstract: AbstractConfig{
			MimeType:  rules.MimeType,
			TypeLabel: rules.TypeLabel,
			MaxSizeMB: rules.MaxSizeMB,
		},
		TUI: TUIConfig{
			Theme: styles.DefaultTheme,
		},
	}
}

// Load reads configuration from the given path. If configPath is empty or
// doesn't exist, the defaults are returned.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// not found is fine, using defaults
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if len(c.TeamSizes.Options) == 0 {
		c.TeamSizes.Options = defaults.TeamSizes.Options
	}
	if c.TeamSizes.Default == 0 {
		c.TeamSizes.Default = slices.Max(c.TeamSizes.Options)
	}
	if c.Abstract.MimeType == "" {
		c.Abstract.MimeType = defaults.Abstract.MimeType
	}
	if c.Abstract.TypeLabel == "" {
		c.Abstract.TypeLabel = registration.TypeLabelFor(c.Abstract.MimeType)
	}
	if c.Abstract.MaxSizeMB == 0 {
		c.Abstract.MaxSizeMB = defaults.Abstract.MaxSizeMB
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if len(c.TeamSizes.Options) == 0 {
		return fmt.Errorf("team_sizes.options cannot be empty")
	}

	seen := make(map[int]bool, len(c.TeamSizes.Options))
	for _, n := range c.TeamSizes.Options {
		if n < 1 {
			return fmt.Errorf("team_sizes.options: size %d must be at least 1", n)
		}
		if seen[n] {
			return fmt.Errorf("team_sizes.options: duplicate size %d", n)
		}
		seen[n] = true
	}

	if !seen[c.TeamSizes.Default] {
		return fmt.Errorf("team_sizes.default %d is not one of the options", c.TeamSizes.Default)
	}

	if c.Abstract.MaxSizeMB < 1 {
		return fmt.Errorf("abstract.max_size_mb must be at least 1")
	}

	if c.Submit.Timeout < 0 {
		return fmt.Errorf("submit.timeout cannot be negative")
	}

	return nil
}

// FormSettings converts the configuration into form engine settings.
func (c *Config) FormSettings() registration.Settings {
	return registration.Settings{
		Sizes: registration.TeamSizes{
			Options: slices.Clone(c.TeamSizes.Options),
			Default: c.TeamSizes.Default,
		},
		File: registration.FileRules{
			MimeType:  c.Abstract.MimeType,
			TypeLabel: c.Abstract.TypeLabel,
			MaxSizeMB: c.Abstract.MaxSizeMB,
		},
	}
}
