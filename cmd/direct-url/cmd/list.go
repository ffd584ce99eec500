package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bianoble/direct-url/internal/config"
	"github.com/bianoble/direct-url/internal/engine"
	"github.com/bianoble/direct-url/internal/record"
)

var (
	listKind     string
	listEditable bool
	listAll      bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed distributions and where they came from",
	Long: `Lists every distribution on the search paths that has a direct_url.json.
Use --all to include distributions installed without one, --kind to keep
only vcs, archive or dir installs, and --editable to keep only editable ones.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		format, err := resolveOutput(cfg)
		if err != nil {
			return err
		}

		kind, err := parseKind(listKind)
		if err != nil {
			return err
		}

		eng := &engine.ListEngine{Finder: newFinder(cfg), Logger: newLogger()}
		result, err := eng.List(cmd.Context(), engine.ListOptions{
			Kind:         kind,
			EditableOnly: listEditable,
			All:          listAll,
		})
		if err != nil {
			return err
		}

		if format != config.OutputText {
			view := listView{Distributions: []summaryView{}}
			for i := range result.Entries {
				view.Distributions = append(view.Distributions, newSummaryView(&result.Entries[i]))
			}
			for _, e := range result.Errors {
				view.Errors = append(view.Errors, e.Error())
			}
			return render(stdout, format, view)
		}

		for _, e := range result.Errors {
			errorf("%v", e)
		}
		if len(result.Entries) == 0 {
			info("No matching distributions.")
			return nil
		}

		fmt.Fprintf(stdout, "%-30s %-12s %-8s %s\n", "NAME", "VERSION", "KIND", "URL")
		for _, s := range result.Entries {
			k := string(s.Kind)
			if k == "" {
				k = "-"
			}
			url := s.URL
			if s.Editable {
				url += " " + colorize("32", "(editable)")
			}
			fmt.Fprintf(stdout, "%-30s %-12s %-8s %s\n", s.Name, s.Version, k, url)
		}
		return nil
	},
}

func parseKind(s string) (record.Kind, error) {
	switch k := record.Kind(strings.ToLower(s)); k {
	case record.KindUnknown, record.KindVCS, record.KindArchive, record.KindDirectory:
		return k, nil
	default:
		return "", fmt.Errorf("invalid kind '%s' — must be one of: vcs, archive, dir", s)
	}
}

func init() {
	listCmd.Flags().StringVar(&listKind, "kind", "", "only show this kind: vcs, archive or dir")
	listCmd.Flags().BoolVar(&listEditable, "editable", false, "only show editable installs")
	listCmd.Flags().BoolVar(&listAll, "all", false, "include distributions without direct_url.json")
	rootCmd.AddCommand(listCmd)
}
