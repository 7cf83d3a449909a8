package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Color modes for diagnostic output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds plc settings loaded from a JSON file. Command-line flags
// override individual fields.
type Config struct {
	Verbose     bool   `json:"verbose"`
	Debug       bool   `json:"debug"`
	OutDir      string `json:"out_dir"`
	LLVMVersion string `json:"llvm_version"`
	Jobs        int    `json:"jobs"`
	Color       string `json:"color"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		OutDir: ".",
		Jobs:   1,
		Color:  ColorAuto,
	}
}

// LoadConfig loads configuration from file. A missing file yields the
// defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil // Default config if file doesn't exist
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig saves configuration to file
func (c *Config) SaveConfig(configPath string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks field values and fills in defaults for empty ones.
func (c *Config) Validate() error {
	if c.OutDir == "" {
		c.OutDir = "."
	}
	if c.Jobs == 0 {
		c.Jobs = 1
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must be positive, got %d", c.Jobs)
	}
	switch c.Color {
	case "":
		c.Color = ColorAuto
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always or never)", c.Color)
	}
	return nil
}

// UseColor reports whether output to the file descriptor fd should be
// colored.
func (c *Config) UseColor(fd uintptr) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return IsTerminal(fd)
	}
}
