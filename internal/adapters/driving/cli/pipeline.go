package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/echolens-labs/echolens-cli/internal/logger"
)

var (
	pipelineSkipScrape  bool
	pipelineSkipAnalyze bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: scrape, curate, analyze, report",
	Long: `Runs every pipeline stage in order. Scraping failures on
individual platforms are logged and skipped; curation, analysis and
report generation failures stop the run.`,
	Args: cobra.NoArgs,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().BoolVar(&pipelineSkipScrape, "skip-scrape", false, "reuse existing store data")
	runCmd.Flags().BoolVar(&pipelineSkipAnalyze, "skip-analyze", false, "reuse the existing analysis text")
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if !pipelineSkipScrape {
		if ingestService == nil {
			return errors.New("ingest service not configured")
		}
		logger.Section("Scraping platforms")
		if err := ingestService.ScrapeAll(ctx); err != nil {
			return fmt.Errorf("scrape: %w", err)
		}
	}

	if curationService == nil {
		return errors.New("curation service not configured")
	}
	logger.Section("Curating dataset")
	count, err := curationService.Export(ctx)
	if err != nil {
		return fmt.Errorf("curate: %w", err)
	}
	cmd.Printf("Curated %d records.\n", count)

	if !pipelineSkipAnalyze {
		if analysisService == nil {
			return errLLMNotConfigured()
		}
		logger.Section("Running LLM analysis")
		if _, err := analysisService.Analyze(ctx); err != nil {
			return fmt.Errorf("analyze: %w", err)
		}
	}

	if reportService == nil {
		return errors.New("report service not configured")
	}
	logger.Section("Generating report")
	insights, err := reportService.Generate(ctx)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}

	cmd.Printf("Pipeline complete: %d insights written to %s\n", len(insights), cfg.OutputPath())
	return nil
}
