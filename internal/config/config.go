// Package config persists the interpolator settings between runs.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leandrodaf/midiinterp/internal/params"
)

const appDir = "midiinterp"

// Config is the on-disk configuration. Channels are 1-based.
type Config struct {
	Mix        float32 `json:"mix"`
	ChannelA   int     `json:"channelA"`
	ChannelB   int     `json:"channelB"`
	InputID    int     `json:"inputDevice"`
	OutputPort string  `json:"outputPort,omitempty"`
	SampleRate float64 `json:"sampleRate,omitempty"`
	BlockSize  int     `json:"blockSize,omitempty"`
	LogLevel   string  `json:"logLevel,omitempty"`
	LogFile    string  `json:"logFile,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Mix:        params.DefaultMix,
		ChannelA:   params.DefaultChannelA,
		ChannelB:   params.DefaultChannelB,
		SampleRate: 48000,
		BlockSize:  256,
		LogLevel:   "info",
	}
}

// Dir returns the config directory path
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appDir), nil
}

// Path returns the full path to config.json
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from the default path, or returns defaults if not found.
// It fails when the home directory cannot be resolved, like Save.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. Fields missing from the file keep
// their default values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the parameter ranges and the block timing.
func (c *Config) Validate() error {
	return errors.Join(
		params.ValidateMix(c.Mix),
		params.ValidateChannel(c.ChannelA),
		params.ValidateChannel(c.ChannelB),
		params.ValidateTiming(c.SampleRate, c.BlockSize),
	)
}

// Save writes the config to the default path.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating its directory if needed.
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
