package config

// Config represents a direct-url.yaml (or direct-url.toml) configuration file.
type Config struct {
	Version int `yaml:"version" toml:"version"`

	// SearchPaths are directories holding *.dist-info metadata directories,
	// searched in order.
	SearchPaths []string `yaml:"search_paths,omitempty" toml:"search_paths,omitempty"`

	// Output is the default output format: json, yaml, toml or text.
	Output string `yaml:"output,omitempty" toml:"output,omitempty"`

	// HashAlgorithms are computed when an archive record is written from a file.
	HashAlgorithms []string `yaml:"hash_algorithms,omitempty" toml:"hash_algorithms,omitempty"`
}

// Output formats.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
	OutputTOML = "toml"
	OutputText = "text"
)

// OutputFormats lists the accepted values of Config.Output.
var OutputFormats = []string{OutputJSON, OutputYAML, OutputTOML, OutputText}

// DefaultHashAlgorithms is used when no layer sets hash_algorithms.
var DefaultHashAlgorithms = []string{"sha256"}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Version:        1,
		Output:         OutputText,
		HashAlgorithms: append([]string(nil), DefaultHashAlgorithms...),
	}
}

// Algorithms returns the configured hash algorithms, or the defaults.
func (c *Config) Algorithms() []string {
	if len(c.HashAlgorithms) == 0 {
		return append([]string(nil), DefaultHashAlgorithms...)
	}
	return c.HashAlgorithms
}

// OutputFormat returns the configured output format, or text.
func (c *Config) OutputFormat() string {
	if c.Output == "" {
		return OutputText
	}
	return c.Output
}
