package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
)

var reportJSON bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate and inspect the citation-backed report",
}

var reportGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build the report from the analysis text",
	Long: `Parses the raw LLM analysis text, resolves every cited ID against
the platform stores, and writes the structured report artifact. IDs
that cannot be verified are kept in the report with a diagnostic
placeholder rather than dropped.`,
	Args: cobra.NoArgs,
	RunE: runReportGenerate,
}

var reportShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the generated report",
	Args:  cobra.NoArgs,
	RunE:  runReportShow,
}

func init() {
	reportShowCmd.Flags().BoolVar(&reportJSON, "json", false, "output the report as JSON")
	reportCmd.AddCommand(reportGenerateCmd)
	reportCmd.AddCommand(reportShowCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReportGenerate(cmd *cobra.Command, _ []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	insights, err := reportService.Generate(cmd.Context())
	if err != nil {
		if errors.Is(err, domain.ErrMissingInput) {
			return fmt.Errorf("no analysis text at %s: run \"echolens analyze\" first", cfg.InputPath())
		}
		return fmt.Errorf("report generate: %w", err)
	}

	cmd.Printf("Wrote %d insights to %s\n", len(insights), cfg.OutputPath())
	return nil
}

func runReportShow(cmd *cobra.Command, _ []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	insights, err := reportService.Load()
	if err != nil {
		return fmt.Errorf("report show: %w", err)
	}

	if reportJSON {
		data, err := json.MarshalIndent(insights, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printInsights(cmd, insights)
	return nil
}

func printInsights(cmd *cobra.Command, insights []domain.Insight) {
	if len(insights) == 0 {
		cmd.Println("Report is empty.")
		return
	}

	for i := range insights {
		cmd.Printf("[%d] %s\n", i+1, insights[i].Topic)
		cmd.Printf("    %s\n", insights[i].Text)
		for _, c := range insights[i].Citations {
			cmd.Printf("      %s (%s, %s)\n", c.ID, c.Platform, c.Date)
		}
		cmd.Println()
	}
}
