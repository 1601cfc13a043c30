package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config represents the sieve configuration
type Config struct {
	// Sieve settings
	Sieve struct {
		SegmentBytes uint64 `toml:"segment_bytes"` // packed bytes per segment (spans 30x that many integers)
	} `toml:"sieve"`

	// Output settings
	Output struct {
		Quiet       bool   `toml:"quiet"`        // suppress the prime list, keep totals and timing
		EnableStats bool   `toml:"enable_stats"` // collect run statistics
		StatsFile   string `toml:"stats_file"`   // statistics output file ("" = stdout)
		StatsFormat string `toml:"stats_format"` // json, csv
	} `toml:"output"`

	// API server settings
	API struct {
		Port     int    `toml:"port"`
		MaxSpan  uint64 `toml:"max_span"`  // widest [lo, hi] a single request may sieve
		MaxList  int    `toml:"max_list"`  // most primes returned in one response
		BindAddr string `toml:"bind_addr"` // interface to listen on
	} `toml:"api"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Sieve defaults: 256KiB packed per segment, L2-resident
	cfg.Sieve.SegmentBytes = 256 * 1024

	// Output defaults
	cfg.Output.Quiet = false
	cfg.Output.EnableStats = false
	cfg.Output.StatsFile = ""
	cfg.Output.StatsFormat = "json"

	// API defaults
	cfg.API.Port = 8080
	cfg.API.MaxSpan = 100_000_000
	cfg.API.MaxList = 100_000
	cfg.API.BindAddr = "127.0.0.1"

	return cfg
}

// Validate checks the configuration for unusable values
func (c *Config) Validate() error {
	if c.Sieve.SegmentBytes == 0 {
		return fmt.Errorf("sieve.segment_bytes must be positive")
	}
	if c.Output.StatsFormat != "json" && c.Output.StatsFormat != "csv" {
		return fmt.Errorf("output.stats_format must be json or csv, got %q", c.Output.StatsFormat)
	}
	if c.API.Port < 1 || c.API.Port > 65535 {
		return fmt.Errorf("api.port must be in 1..65535, got %d", c.API.Port)
	}
	if c.API.MaxSpan == 0 {
		return fmt.Errorf("api.max_span must be positive")
	}
	if c.API.MaxList < 1 {
		return fmt.Errorf("api.max_list must be positive")
	}
	return nil
}

// GetConfigPath returns the platform-specific config file path
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		// Windows: %APPDATA%\fastsieve\config.toml
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "fastsieve")

	case "darwin", "linux":
		// macOS/Linux: ~/.config/fastsieve/config.toml
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to current directory
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "fastsieve")

	default:
		// Unknown platform: use current directory
		return "config.toml"
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0750); err != nil {
		// If we can't create the directory, fall back to current directory
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	// If file doesn't exist, return default config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read and parse config file
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves configuration to the default config file
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create file
	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close config file: %w", closeErr)
		}
	}()

	// Encode to TOML
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
