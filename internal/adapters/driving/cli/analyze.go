package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Summarize the curated dataset with the LLM",
	Long: `Submits the curated dataset to the configured model and writes the
raw analysis text it returns. The text cites records as [[ID, ID]]
groups; run "echolens report generate" to turn it into the structured
report.`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if analysisService == nil {
		return errLLMNotConfigured()
	}

	if _, err := analysisService.Analyze(cmd.Context()); err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	cmd.Printf("Analysis written to %s\n", cfg.InputPath())
	return nil
}
