package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var curateCmd = &cobra.Command{
	Use:   "curate",
	Short: "Export the curated dataset for analysis",
	Long: `Exports the top feedback records from every platform store into a
single curated JSON file. Each record keeps its full citation ID, so
insights produced from this file stay verifiable against the stores.`,
	Args: cobra.NoArgs,
	RunE: runCurate,
}

func init() {
	rootCmd.AddCommand(curateCmd)
}

func runCurate(cmd *cobra.Command, _ []string) error {
	if curationService == nil {
		return errors.New("curation service not configured")
	}

	count, err := curationService.Export(cmd.Context())
	if err != nil {
		return fmt.Errorf("curate: %w", err)
	}

	cmd.Printf("Exported %d records to %s\n", count, cfg.CuratedPath())
	return nil
}
