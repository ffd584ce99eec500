package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bianoble/direct-url/internal/record"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file|-]",
	Short: "Parse a direct_url.json document and print its canonical form",
	Long: `Parses a direct_url.json document from a file, or from stdin when the argument
is "-" or missing, and prints it normalized: keys sorted, legacy fields
re-encoded, absent optional fields dropped.

A document with none of archive_info, dir_info or vcs_info has no known
shape; this is reported but is not an error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		format, err := resolveOutput(cfg)
		if err != nil {
			return err
		}

		source := "-"
		if len(args) == 1 {
			source = args[0]
		}

		var data []byte
		if source == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
			source = "<stdin>"
		} else {
			data, err = os.ReadFile(source)
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", source, err)
		}

		rec, err := record.Decode(data, source)
		if err != nil {
			return err
		}
		if rec == nil {
			info("%s: no known direct URL shape", source)
			return nil
		}

		detail("kind: %s", rec.Kind())
		return renderRecord(stdout, format, rec)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
