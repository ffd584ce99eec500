package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/bianoble/direct-url/internal/config"
	"github.com/bianoble/direct-url/internal/dist"
)

// Output streams, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// loadConfigHierarchical loads system, user and project config layers.
// Missing files are skipped.
func loadConfigHierarchical() (*config.HierarchicalResult, error) {
	hr, err := config.LoadHierarchical(config.HierarchicalOptions{
		ProjectPath: configPath,
		NoInherit:   noInherit || config.EnvNoInherit(),
	})
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", configPath, err)
	}
	return hr, nil
}

// loadConfig returns the merged configuration.
func loadConfig() (*config.Config, error) {
	hr, err := loadConfigHierarchical()
	if err != nil {
		return nil, err
	}
	return hr.Config, nil
}

// resolveSearchPaths returns --search-path values when given, and the
// environment and config search order otherwise.
func resolveSearchPaths(cfg *config.Config) []string {
	if len(searchPaths) > 0 {
		return searchPaths
	}
	return config.ResolveSearchPaths(cfg)
}

// newFinder creates a Finder over the effective search paths.
func newFinder(cfg *config.Config) *dist.Finder {
	paths := resolveSearchPaths(cfg)
	detail("search paths: %s", strings.Join(paths, string(os.PathListSeparator)))
	return &dist.Finder{Paths: paths}
}

// openDistribution opens distInfo when set and looks up name otherwise.
func openDistribution(cfg *config.Config, args []string, distInfo string) (*dist.PathDistribution, error) {
	if distInfo != "" {
		return dist.Open(distInfo)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("a distribution name or --dist-info is required")
	}
	return newFinder(cfg).Find(args[0])
}

// resolveOutput returns the --output flag, or the configured default.
func resolveOutput(cfg *config.Config) (string, error) {
	format := outputFormat
	if format == "" && cfg != nil {
		format = cfg.OutputFormat()
	}
	if format == "" {
		format = config.OutputText
	}
	for _, f := range config.OutputFormats {
		if f == format {
			return format, nil
		}
	}
	return "", fmt.Errorf("invalid output '%s' — must be one of: %s", format, strings.Join(config.OutputFormats, ", "))
}

// newLogger returns a text logger on stderr. Verbose enables debug records
// and quiet keeps only errors.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

// colorEnabled reports whether stdout is a terminal that should get colors.
func colorEnabled() bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := stdout.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func colorize(code, s string) string {
	if !colorEnabled() {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

// info prints a line unless quiet mode is active.
func info(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(stdout, format+"\n", args...)
	}
}

// detail prints a line only in verbose mode.
func detail(format string, args ...any) {
	if verbose {
		fmt.Fprintf(stdout, "  "+format+"\n", args...)
	}
}

// errorf prints an error message to stderr.
func errorf(format string, args ...any) {
	fmt.Fprintf(stderr, "error: "+format+"\n", args...)
}

func humanSize(bytes int64) string {
	if bytes == 0 {
		return "0 B"
	}
	units := []string{"B", "KB", "MB", "GB"}
	size := float64(bytes)
	i := 0
	for size >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d B", bytes)
	}
	return fmt.Sprintf("%.1f %s", size, units[i])
}
