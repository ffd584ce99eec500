package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/bianoble/direct-url/internal/config"
	"github.com/bianoble/direct-url/internal/engine"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show information about direct-url configuration and search paths",
	Long: `Displays the direct-url version, the config chain, the effective search paths
with the number of distributions and descriptors found in each, and the
hash algorithms in use.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Load config with hierarchy to capture layer metadata.
		hr, err := loadConfigHierarchical()
		if err != nil {
			errorf("%v", err)
		}
		var cfg *config.Config
		var layers []config.ConfigLayerInfo
		if hr != nil {
			cfg = hr.Config
			layers = hr.Layers
		}

		result := engine.Info(version, configPath, cfg, layers, resolveSearchPaths(cfg))

		info("direct-url %s", result.Version)

		// Show config chain if hierarchical loading was used.
		if len(result.ConfigChain) > 1 {
			info("  config chain:")
			for _, layer := range result.ConfigChain {
				status := "not found"
				if layer.Loaded {
					status = "loaded"
				}
				info("    %-10s %s (%s)", layer.Level+":", layer.Path, status)
			}
		} else {
			info("  config:        %s", result.ConfigPath)
		}

		if result.Output != "" {
			info("  output:        %s", result.Output)
		}
		if len(result.HashAlgorithms) > 0 {
			info("  hashes:        %s", strings.Join(result.HashAlgorithms, ", "))
		}
		detail("guaranteed:    %s", strings.Join(result.Guaranteed, ", "))

		if len(result.SearchPaths) == 0 {
			info("\nNo search paths. Set --search-path, DIRECT_URL_PATH, search_paths, or activate a virtual environment.")
			return nil
		}

		info("\nSearch paths:")
		for _, p := range result.SearchPaths {
			if p.Err != nil {
				info("  %s (error: %v)", p.Path, p.Err)
				continue
			}
			info("  %s (%d distributions, %d with direct_url.json)", p.Path, p.Distributions, p.Descriptors)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
