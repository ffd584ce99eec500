package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/bianoble/direct-url/internal/digest"
)

// Load reads and validates a single configuration file.
func Load(path string) (*Config, error) {
	cfg, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	if errs := Validate(cfg); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	return cfg, nil
}

// decodeFile reads path as TOML when it ends in .toml and as YAML otherwise.
func decodeFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return &cfg, nil
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks a Config for semantic correctness.
// Returns a list of validation error messages (empty if valid).
func Validate(cfg *Config) []string {
	var errs []string

	if cfg.Version != 1 {
		errs = append(errs, fmt.Sprintf("unsupported version %d — only version 1 is supported", cfg.Version))
	}

	for i, p := range cfg.SearchPaths {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, fmt.Sprintf("search_paths[%d]: path is empty", i))
		}
	}

	switch cfg.Output {
	case "", OutputJSON, OutputYAML, OutputTOML, OutputText:
		// valid
	default:
		errs = append(errs, fmt.Sprintf("invalid output '%s' — must be one of: %s", cfg.Output, strings.Join(OutputFormats, ", ")))
	}

	for i, alg := range cfg.HashAlgorithms {
		if !digest.Supported(alg) {
			errs = append(errs, fmt.Sprintf("hash_algorithms[%d]: unsupported algorithm '%s' — must be one of: %s", i, alg, strings.Join(digest.Names(), ", ")))
		}
	}

	return errs
}

// HierarchicalOptions controls LoadHierarchical.
type HierarchicalOptions struct {
	ProjectPath      string
	SystemConfigPath string
	UserConfigPath   string

	// NoInherit skips the system and user layers.
	NoInherit bool
}

// HierarchicalResult is the merged configuration and the layers considered.
type HierarchicalResult struct {
	Config *Config
	Layers []ConfigLayerInfo
}

// LoadHierarchical loads every discovered layer that exists, merges them from
// lowest to highest precedence and validates the result. Missing files are
// skipped; when none exists the result is Default().
func LoadHierarchical(opts HierarchicalOptions) (*HierarchicalResult, error) {
	var layers []ConfigLayerInfo
	if opts.NoInherit {
		if opts.ProjectPath != "" {
			layers = []ConfigLayerInfo{{Path: opts.ProjectPath, Level: LevelProject}}
		}
	} else {
		layers = DiscoverPaths(DiscoverOptions{
			ProjectPath:      opts.ProjectPath,
			SystemConfigPath: opts.SystemConfigPath,
			UserConfigPath:   opts.UserConfigPath,
		})
	}

	var loaded []*Config
	for i := range layers {
		if _, err := os.Stat(layers[i].Path); os.IsNotExist(err) {
			continue
		}
		cfg, err := decodeFile(layers[i].Path)
		if err != nil {
			layers[i].Err = err
			return nil, err
		}
		layers[i].Loaded = true
		loaded = append(loaded, cfg)
	}

	result := &HierarchicalResult{Layers: layers}
	if len(loaded) == 0 {
		result.Config = Default()
		return result, nil
	}

	merged, err := MergeAll(loaded)
	if err != nil {
		return nil, err
	}
	if errs := Validate(merged); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	result.Config = merged
	return result, nil
}
