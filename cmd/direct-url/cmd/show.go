package cmd

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/bianoble/direct-url/internal/config"
	"github.com/bianoble/direct-url/internal/dist"
	"github.com/bianoble/direct-url/internal/engine"
	"github.com/bianoble/direct-url/internal/record"
)

var showDistInfo string

var showCmd = &cobra.Command{
	Use:   "show [distribution]",
	Short: "Show where an installed distribution came from",
	Long: `Reads direct_url.json of the named distribution, or of the .dist-info
directory given with --dist-info, and prints its kind, source URL, commit or
hashes, and Package URL.`,
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

		d, err := openDistribution(cfg, args, showDistInfo)
		if err != nil {
			return err
		}

		eng := &engine.ShowEngine{Logger: newLogger()}
		s, err := eng.Show(cmd.Context(), d)
		if err != nil {
			return err
		}

		if format != config.OutputText {
			return render(stdout, format, newSummaryView(s))
		}
		printSummary(s)
		return nil
	},
}

func printSummary(s *engine.Summary) {
	title := s.Name
	if s.Version != "" {
		title += " " + s.Version
	}
	info("%s", title)
	info("  path:      %s", s.Path)

	switch {
	case !s.Present:
		info("  source:    (no %s)", dist.MetadataName)
	case s.Record == nil:
		info("  source:    (unrecognized %s)", dist.MetadataName)
	default:
		info("  kind:      %s", s.Kind)
		info("  url:       %s", s.URL)
	}

	if s.Commit != "" {
		info("  commit:    %s", s.Commit)
	}
	if s.Kind == record.KindDirectory {
		info("  editable:  %t", s.Editable)
	}
	if len(s.Hashes) > 0 {
		algs := make([]string, 0, len(s.Hashes))
		for alg := range s.Hashes {
			algs = append(algs, alg)
		}
		sort.Strings(algs)
		for _, alg := range algs {
			info("  hash:      %s=%s", alg, s.Hashes[alg])
		}
		if !s.SecureHash {
			info("  warning:   no hash uses a guaranteed algorithm")
		}
	}
	info("  purl:      %s", s.PURL)

	if s.JSON != "" {
		detail("%s", s.JSON)
	}
}

func init() {
	showCmd.Flags().StringVar(&showDistInfo, "dist-info", "", "path to a .dist-info directory")
	rootCmd.AddCommand(showCmd)
}
