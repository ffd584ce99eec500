package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bianoble/direct-url/internal/engine"
	"github.com/bianoble/direct-url/internal/record"
)

var (
	editableDistInfo string
	editableCheck    bool
)

// errNotEditable makes --check exit non-zero without an error message.
var errNotEditable = errors.New("not editable")

var editableCmd = &cobra.Command{
	Use:   "editable [distribution]",
	Short: "Report whether a distribution is an editable install",
	Long: `Prints true when the distribution was installed in editable mode from a local
directory and false otherwise. With --check nothing is printed and the exit
status is 0 for editable installs and 1 otherwise.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		d, err := openDistribution(cfg, args, editableDistInfo)
		if err != nil {
			return err
		}

		s, err := (&engine.ShowEngine{Logger: newLogger()}).Show(cmd.Context(), d)
		if err != nil {
			return err
		}
		editable := s.Kind == record.KindDirectory && s.Editable

		if editableCheck {
			if !editable {
				return errNotEditable
			}
			return nil
		}
		fmt.Fprintln(stdout, editable)
		return nil
	},
}

func init() {
	editableCmd.Flags().StringVar(&editableDistInfo, "dist-info", "", "path to a .dist-info directory")
	editableCmd.Flags().BoolVar(&editableCheck, "check", false, "exit with status 1 unless editable")
	rootCmd.AddCommand(editableCmd)
}
