package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var countsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Show per-platform record counts",
	Args:  cobra.NoArgs,
	RunE:  runCounts,
}

func init() {
	rootCmd.AddCommand(countsCmd)
}

func runCounts(cmd *cobra.Command, _ []string) error {
	if datasetService == nil {
		return errors.New("dataset service not configured")
	}

	counts, err := datasetService.Counts(cmd.Context())
	if err != nil {
		return fmt.Errorf("counts: %w", err)
	}

	platforms := make([]string, 0, len(counts))
	for p := range counts {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)

	total := 0
	for _, p := range platforms {
		cmd.Printf("  %-12s %d\n", p, counts[p])
		total += counts[p]
	}
	cmd.Printf("  %-12s %d\n", "Total", total)
	return nil
}
