package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const configFileName = "direct-url.yaml"
const configDirName = "direct-url"

// ConfigLevel represents the precedence level of a configuration file.
type ConfigLevel string

const (
	LevelSystem  ConfigLevel = "system"
	LevelUser    ConfigLevel = "user"
	LevelProject ConfigLevel = "project"
)

// ConfigLayerInfo describes a discovered config file and its load status.
type ConfigLayerInfo struct {
	Err    error // non-nil if the file exists but failed to load
	Path   string
	Level  ConfigLevel
	Loaded bool
}

// DiscoverOptions controls how config paths are discovered.
type DiscoverOptions struct {
	// ProjectPath is the project-level config path.
	ProjectPath string

	// SystemConfigPath overrides the default system config path.
	// Empty means use the OS default. Set to a nonexistent path to skip.
	SystemConfigPath string

	// UserConfigPath overrides the default user config path.
	// Empty means use the OS default. Set to a nonexistent path to skip.
	UserConfigPath string
}

// DiscoverPaths returns the ordered list of config file paths to check,
// from lowest precedence (system) to highest (project).
// Paths are deduplicated by resolved absolute path.
func DiscoverPaths(opts DiscoverOptions) []ConfigLayerInfo {
	var layers []ConfigLayerInfo
	seen := make(map[string]bool)

	addLayer := func(level ConfigLevel, path string) {
		if path == "" {
			return
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if seen[abs] {
			return
		}
		seen[abs] = true
		layers = append(layers, ConfigLayerInfo{
			Path:  path,
			Level: level,
		})
	}

	sysPath := opts.SystemConfigPath
	if sysPath == "" {
		sysPath = defaultSystemConfigPath()
	}
	addLayer(LevelSystem, sysPath)

	userPath := opts.UserConfigPath
	if userPath == "" {
		userPath = defaultUserConfigPath()
	}
	addLayer(LevelUser, userPath)

	// Project config is always last, highest precedence.
	addLayer(LevelProject, opts.ProjectPath)

	return layers
}

// defaultSystemConfigPath returns the platform-standard system config path.
func defaultSystemConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		pd := os.Getenv("ProgramData")
		if pd == "" {
			pd = `C:\ProgramData`
		}
		return filepath.Join(pd, configDirName, configFileName)
	default:
		return filepath.Join("/etc", configDirName, configFileName)
	}
}

// defaultUserConfigPath returns the platform-standard user config path.
func defaultUserConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, configDirName, configFileName)
}

// EnvNoInherit returns true if DIRECT_URL_NO_INHERIT is set to "1" or "true".
func EnvNoInherit() bool {
	return envBoolTrue("DIRECT_URL_NO_INHERIT")
}

// envBoolTrue returns true if the env var is set to "1" or "true" (case-insensitive).
func envBoolTrue(key string) bool {
	v := os.Getenv(key)
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "1" || v == "true"
}

// EnvSearchPaths splits DIRECT_URL_PATH on the OS path list separator.
func EnvSearchPaths() []string {
	return splitPathList(os.Getenv("DIRECT_URL_PATH"))
}

func splitPathList(v string) []string {
	var out []string
	for _, p := range filepath.SplitList(v) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// VirtualEnvSearchPaths returns the site-packages directories of the active
// virtual environment (VIRTUAL_ENV), or nil when none is active.
func VirtualEnvSearchPaths() []string {
	venv := os.Getenv("VIRTUAL_ENV")
	if venv == "" {
		return nil
	}

	patterns := []string{
		filepath.Join(venv, "lib", "python3*", "site-packages"),
		filepath.Join(venv, "lib64", "python3*", "site-packages"),
		filepath.Join(venv, "Lib", "site-packages"),
	}

	var out []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			continue
		}
		for _, m := range matches {
			resolved, err := filepath.EvalSymlinks(m)
			if err != nil {
				resolved = m
			}
			if seen[resolved] {
				continue
			}
			seen[resolved] = true
			out = append(out, m)
		}
	}
	return out
}

// ResolveSearchPaths returns the effective search order: DIRECT_URL_PATH
// entries first, then cfg.SearchPaths. When both are empty the active
// virtual environment's site-packages are used.
func ResolveSearchPaths(cfg *Config) []string {
	var paths []string
	paths = append(paths, EnvSearchPaths()...)
	if cfg != nil {
		paths = append(paths, cfg.SearchPaths...)
	}
	if len(paths) == 0 {
		paths = VirtualEnvSearchPaths()
	}
	return dedupe(paths)
}

func dedupe(paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		key := filepath.Clean(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}
