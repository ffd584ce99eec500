package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/bianoble/direct-url/internal/digest"
)

var hashAlgorithms []string

var hashCmd = &cobra.Command{
	Use:   "hash <file>...",
	Short: "Compute archive hashes in direct_url.json form",
	Long: `Prints algorithm=value lines for each file, ready for 'write archive --hash'.
Algorithms default to the configured hash_algorithms.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		algs := hashAlgorithms
		if len(algs) == 0 {
			algs = cfg.Algorithms()
		}

		for _, path := range args {
			st, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			sums, err := digest.File(path, algs...)
			if err != nil {
				return err
			}

			names := make([]string, 0, len(sums))
			for name := range sums {
				names = append(names, name)
			}
			sort.Strings(names)

			if len(args) > 1 {
				info("%s (%s)", path, humanSize(st.Size()))
			} else {
				detail("%s (%s)", path, humanSize(st.Size()))
			}
			for _, name := range names {
				fmt.Fprintf(stdout, "%s=%s\n", name, sums[name])
			}
		}
		return nil
	},
}

func init() {
	hashCmd.Flags().StringArrayVar(&hashAlgorithms, "algorithm", nil, "hash algorithm (repeatable)")
	rootCmd.AddCommand(hashCmd)
}
