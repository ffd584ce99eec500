package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

// Build-time variables set via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	configPath   string
	searchPaths  []string
	outputFormat string
	noInherit    bool
	verbose      bool
	quiet        bool
	noColor      bool
)

var rootCmd = &cobra.Command{
	Use:   "direct-url",
	Short: "Inspect and edit direct_url.json in installed Python distributions",
	Long: `direct-url reads and writes direct_url.json, the file an installer leaves in a
distribution's .dist-info directory to record where the package came from:
a VCS checkout, a downloaded archive, or a local directory.

Distributions are looked up in the directories given by --search-path,
DIRECT_URL_PATH, the search_paths config setting, or the active virtual
environment, in that order.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		info("direct-url %s", version)
		info("  commit:  %s", commit)
		info("  built:   %s", date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "direct-url.yaml", "path to config file (.yaml or .toml)")
	rootCmd.PersistentFlags().StringArrayVar(&searchPaths, "search-path", nil, "directory holding .dist-info directories (repeatable)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: json, yaml, toml or text")
	rootCmd.PersistentFlags().BoolVar(&noInherit, "no-inherit", false, "ignore system and user config files")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "detailed output")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "minimal output (errors only)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errNotEditable) {
			errorf("%v", err)
		}
		return err
	}
	return nil
}
