package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search [prompt]",
	Short: "Search the feedback dataset with a natural-language prompt",
	Long: `Scans the full curated dataset with the LLM and prints the records
that match the prompt, resolved back into verifiable citations.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if datasetService == nil {
		return errors.New("dataset service not configured")
	}

	results, err := datasetService.SemanticSearch(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrLLMUnavailable) {
			return errLLMNotConfigured()
		}
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(results) == 0 {
		cmd.Println("No matching records found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		cmd.Printf("  [%d] %s (%s, %s)\n", i+1, results[i].ID, results[i].Platform, results[i].Date)
		cmd.Printf("      %s\n", results[i].Text)
		if results[i].URL != "" {
			cmd.Printf("      %s\n", results[i].URL)
		}
		cmd.Println()
	}
	return nil
}
