package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the optional tool configuration. Every field has a working
// default, so running without a config file is fully supported.
type Config struct {
	// ProdID is the PRODID property written into generated calendars.
	ProdID string `yaml:"prodid" json:"prodid"`

	// OutputDir, if set, receives all generated .ics files instead of the
	// default of writing next to each input document.
	OutputDir string `yaml:"output_dir" json:"output_dir"`

	// LogLevel is the minimum log level: "debug", "info" or "error".
	LogLevel string `yaml:"log_level" json:"log_level"`
}

const defaultProdID = "-//coursecal//Course Schedule Generator//EN"

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		ProdID:   defaultProdID,
		LogLevel: "info",
	}
}

// Normalize fills in missing/zero values with defaults so partially-filled
// config files still behave correctly.
func (c *Config) Normalize() {
	if c.ProdID == "" {
		c.ProdID = defaultProdID
	}
	switch c.LogLevel {
	case "debug", "info", "error":
		// ok
	default:
		c.LogLevel = "info"
	}
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist, a default config is written there (0600,
//     parent directory created) and returned.
//   - If the file exists, it is unmarshalled and normalized.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Return cfg with the error so the caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the configuration to path atomically (temp file + rename) with
// 0600 permissions, creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".coursecal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
