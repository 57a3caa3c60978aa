// Package config provides configuration loading and management for vinyl2wav.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Audio parameters
	Audio struct {
		// RPM is the rotation rate of the scanned disc in revolutions
		// per minute, used to derive the playing duration
		RPM float64 `yaml:"rpm"`

		// SampleRate is the playback rate written into the output
		// container in samples per second
		SampleRate int `yaml:"sampleRate"`
	} `yaml:"audio"`

	// Output parameters
	Output struct {
		// SaveOverlay determines whether extraction records the
		// visited-pixel overlay and writes it next to the audio
		SaveOverlay bool `yaml:"saveOverlay"`

		// OverlayFile is the filename the overlay raster is saved as
		OverlayFile string `yaml:"overlayFile"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default audio parameters
	cfg.Audio.RPM = 120
	cfg.Audio.SampleRate = 44100

	// Set default output parameters
	cfg.Output.SaveOverlay = false
	cfg.Output.OverlayFile = "overlay.png"
	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
