package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AndreyAkinshin/ndkpkg/internal/schema"
)

// Load reads and parses an ndkpkg.json configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithDefaults reads a config file and applies default values.
func LoadWithDefaults(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	ApplyDefaults(cfg)
	return cfg, nil
}

// LoadAndValidate reads a config file, checks it against the JSON schema,
// applies defaults, validates, and returns warnings.
func LoadAndValidate(path string) (*Config, []string, error) {
	cfg, warnings, err := read(path)
	if err != nil {
		return nil, nil, err
	}
	return finish(cfg, warnings)
}

// Options controls how a project configuration is assembled.
type Options struct {
	// Lookup resolves NDKPKG_* variables; nil means the process environment
	// overlaid on the project's .env file.
	Lookup LookupFunc
	// Override is applied after environment variables and before defaults.
	// Command-line flags use it.
	Override func(*Config)
}

// LoadProject assembles the configuration for a project root: ndkpkg.json if
// present, then NDKPKG_* variables, then opts.Override, then defaults.
func LoadProject(root string, opts Options) (*Config, []string, error) {
	cfg := &Config{}
	var warnings []string

	path := filepath.Join(root, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		cfg, warnings, err = read(path)
		if err != nil {
			return nil, nil, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}

	lookup := opts.Lookup
	if lookup == nil {
		var err error
		lookup, err = EnvLookup(root)
		if err != nil {
			return nil, nil, err
		}
	}
	if err := ApplyEnv(cfg, lookup); err != nil {
		return nil, warnings, err
	}
	if opts.Override != nil {
		opts.Override(cfg)
	}
	return finish(cfg, warnings)
}

func read(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := schema.ValidateConfig(data); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return LoadWithWarnings(path, data)
}

func finish(cfg *Config, warnings []string) (*Config, []string, error) {
	ApplyDefaults(cfg)

	validationWarnings, err := Validate(cfg)

	allWarnings := make([]string, 0, len(warnings)+len(validationWarnings))
	allWarnings = append(allWarnings, warnings...)
	allWarnings = append(allWarnings, validationWarnings...)

	if err != nil {
		return nil, allWarnings, err
	}
	return cfg, allWarnings, nil
}
