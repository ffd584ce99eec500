package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bianoble/direct-url/internal/dist"
	"github.com/bianoble/direct-url/internal/engine"
)

var (
	removeDistInfo string
	removeDryRun   bool
)

var removeCmd = &cobra.Command{
	Use:   "remove [distribution]",
	Short: "Delete direct_url.json from an installed distribution",
	Long: `Deletes the direct_url.json of a distribution, leaving it as if it had been
installed from an index. A missing file is not an error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		d, err := openDistribution(cfg, args, removeDistInfo)
		if err != nil {
			return err
		}

		eng := &engine.RemoveEngine{Logger: newLogger()}
		result, err := eng.Remove(cmd.Context(), d, engine.RemoveOptions{DryRun: removeDryRun})
		if err != nil {
			return err
		}

		switch result.Action {
		case "absent":
			info("%s: no %s", d, dist.MetadataName)
		case "would-remove":
			info("%s: would remove %s", d, dist.MetadataName)
		default:
			info("%s: removed %s", d, dist.MetadataName)
		}
		if result.Before != nil {
			detail("was: %s", result.Before.JSON)
		}
		return nil
	},
}

func init() {
	removeCmd.Flags().StringVar(&removeDistInfo, "dist-info", "", "path to a .dist-info directory")
	removeCmd.Flags().BoolVar(&removeDryRun, "dry-run", false, "show what would be removed")
	rootCmd.AddCommand(removeCmd)
}
