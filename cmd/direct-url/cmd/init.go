package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initForce bool

// initTemplate is the default direct-url.yaml scaffold.
const initTemplate = `# direct-url configuration
version: 1

# Directories holding .dist-info directories, searched in order.
# DIRECT_URL_PATH entries are searched first. When nothing is set, the
# site-packages of the active virtual environment are used.
# search_paths:
#   - .venv/lib/python3.12/site-packages

# Default output format: text, json, yaml or toml.
output: text

# Algorithms computed by 'hash' and 'write archive --file'.
hash_algorithms:
  - sha256
`

// initTOMLTemplate is used when --config names a .toml file.
const initTOMLTemplate = `# direct-url configuration
version = 1

# Directories holding .dist-info directories, searched in order.
# search_paths = [".venv/lib/python3.12/site-packages"]

# Default output format: text, json, yaml or toml.
output = "text"

# Algorithms computed by 'hash' and 'write archive --file'.
hash_algorithms = ["sha256"]
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter direct-url.yaml configuration",
	Long: `Creates a direct-url.yaml file (or the file named by --config) with a
commented template. A --config path ending in .toml gets a TOML template.

Use --force to overwrite an existing configuration file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath := configPath
		if !filepath.IsAbs(outPath) {
			abs, err := filepath.Abs(outPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			outPath = abs
		}

		if !initForce {
			if _, err := os.Stat(outPath); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", outPath)
			}
		}

		content := initTemplate
		if strings.EqualFold(filepath.Ext(outPath), ".toml") {
			content = initTOMLTemplate
		}

		if err := os.WriteFile(outPath, []byte(content), 0644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		info("Created %s", outPath)
		info("")
		info("Next steps:")
		info("  1. Set search_paths, or rely on the active virtual environment")
		info("  2. Run 'direct-url list' to see where packages came from")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	rootCmd.AddCommand(initCmd)
}
