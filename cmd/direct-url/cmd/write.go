package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bianoble/direct-url/internal/config"
	"github.com/bianoble/direct-url/internal/dist"
	"github.com/bianoble/direct-url/internal/engine"
	"github.com/bianoble/direct-url/internal/record"
)

// Flags shared by the write subcommands.
var (
	writeDistInfo string
	writeDryRun   bool
	writeURL      string
)

var (
	vcsName                 string
	vcsCommitID             string
	vcsRequestedRevision    string
	vcsResolvedRevision     string
	vcsResolvedRevisionType string

	archiveHashes     []string
	archiveLegacyHash string
	archiveFile       string
	archiveAlgorithms []string

	dirEditable bool
)

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Write direct_url.json for an installed distribution",
	Long: `Replaces the direct_url.json of an installed distribution with a new VCS,
archive or directory record. The file is written in canonical form and
replaced atomically. An identical existing file is left untouched.`,
}

var writeVCSCmd = &cobra.Command{
	Use:   "vcs [distribution]",
	Short: "Record a VCS checkout as the source",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if vcsName == "" || vcsCommitID == "" {
			return fmt.Errorf("--vcs and --commit are required")
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		rec := &record.VCSRecord{
			URL: writeURL,
			VCSInfo: record.VCSInfo{
				VCS:                  vcsName,
				CommitID:             vcsCommitID,
				RequestedRevision:    optional(vcsRequestedRevision),
				ResolvedRevision:     optional(vcsResolvedRevision),
				ResolvedRevisionType: optional(vcsResolvedRevisionType),
			},
		}
		return runWrite(cmd, cfg, args, rec)
	},
}

var writeArchiveCmd = &cobra.Command{
	Use:   "archive [distribution]",
	Short: "Record a downloaded archive as the source",
	Long: `Records an archive URL with its hashes. Hashes are given with --hash
algorithm=value, or computed from a local copy with --file using the
configured hash_algorithms (or --algorithm).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		rec := &record.ArchiveRecord{URL: writeURL}
		if archiveFile != "" {
			algs := archiveAlgorithms
			if len(algs) == 0 {
				algs = cfg.Algorithms()
			}
			rec, err = engine.ArchiveFromFile(writeURL, archiveFile, algs)
			if err != nil {
				return err
			}
		}

		for _, h := range archiveHashes {
			pair, ok := record.ParseHashPair(h)
			if !ok {
				return fmt.Errorf("invalid --hash '%s' — expected algorithm=value", h)
			}
			if rec.ArchiveInfo.Hashes == nil {
				rec.ArchiveInfo.Hashes = map[string]string{}
			}
			rec.ArchiveInfo.Hashes[pair.Algorithm] = pair.Value
		}

		if archiveLegacyHash != "" {
			pair, ok := record.ParseHashPair(archiveLegacyHash)
			if !ok {
				return fmt.Errorf("invalid --legacy-hash '%s' — expected algorithm=value", archiveLegacyHash)
			}
			rec.ArchiveInfo.LegacyHash = &pair
		}

		if !rec.ArchiveInfo.HasSecureHash() {
			newLogger().Warn("no hash uses a guaranteed algorithm", "url", rec.URL)
		}
		return runWrite(cmd, cfg, args, rec)
	},
}

var writeDirCmd = &cobra.Command{
	Use:   "dir [distribution]",
	Short: "Record a local directory as the source",
	Long: `Records a local directory URL. The editable flag is written only when
--editable is given, as true or false.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		rec := &record.DirectoryRecord{URL: writeURL}
		if cmd.Flags().Changed("editable") {
			rec.DirInfo.SetEditable(&dirEditable)
		}
		return runWrite(cmd, cfg, args, rec)
	},
}

func runWrite(cmd *cobra.Command, cfg *config.Config, args []string, rec record.Record) error {
	if rec.SourceURL() == "" {
		return fmt.Errorf("--url is required")
	}

	d, err := openDistribution(cfg, args, writeDistInfo)
	if err != nil {
		return err
	}

	eng := &engine.WriteEngine{Logger: newLogger()}
	result, err := eng.Write(cmd.Context(), d, rec, engine.WriteOptions{DryRun: writeDryRun})
	if err != nil {
		return err
	}

	printWriteResult(d, result)
	return nil
}

func printWriteResult(d *dist.PathDistribution, result *engine.WriteResult) {
	switch result.Action {
	case "unchanged":
		info("%s: %s unchanged", d, dist.MetadataName)
	case "would-write":
		info("%s: would write %s (%d bytes)", d, dist.MetadataName, result.Bytes)
	default:
		info("%s: wrote %s (%d bytes)", d, dist.MetadataName, result.Bytes)
	}

	if result.Before != nil {
		detail("before: %s", result.Before.JSON)
	}
	detail("after:  %s", result.After.JSON)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return record.String(s)
}

func init() {
	writeCmd.PersistentFlags().StringVar(&writeDistInfo, "dist-info", "", "path to a .dist-info directory")
	writeCmd.PersistentFlags().BoolVar(&writeDryRun, "dry-run", false, "show what would be written")
	writeCmd.PersistentFlags().StringVar(&writeURL, "url", "", "source URL")

	writeVCSCmd.Flags().StringVar(&vcsName, "vcs", "git", "version control system: git, hg, bzr or svn")
	writeVCSCmd.Flags().StringVar(&vcsCommitID, "commit", "", "exact commit or revision id")
	writeVCSCmd.Flags().StringVar(&vcsRequestedRevision, "requested-revision", "", "revision requested by the user")
	writeVCSCmd.Flags().StringVar(&vcsResolvedRevision, "resolved-revision", "", "revision it resolved to")
	writeVCSCmd.Flags().StringVar(&vcsResolvedRevisionType, "resolved-revision-type", "", "kind of resolved revision")

	writeArchiveCmd.Flags().StringArrayVar(&archiveHashes, "hash", nil, "archive hash as algorithm=value (repeatable)")
	writeArchiveCmd.Flags().StringVar(&archiveLegacyHash, "legacy-hash", "", "deprecated single hash as algorithm=value")
	writeArchiveCmd.Flags().StringVar(&archiveFile, "file", "", "local copy of the archive to hash")
	writeArchiveCmd.Flags().StringArrayVar(&archiveAlgorithms, "algorithm", nil, "hash algorithm for --file (repeatable)")

	writeDirCmd.Flags().BoolVar(&dirEditable, "editable", false, "record an editable install")

	writeCmd.AddCommand(writeVCSCmd, writeArchiveCmd, writeDirCmd)
	rootCmd.AddCommand(writeCmd)
}
