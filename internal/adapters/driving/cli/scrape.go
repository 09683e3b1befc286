package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape [platform]",
	Short: "Collect feedback from the source platforms",
	Long: `Runs the platform scrapers and writes the records into their
per-platform stores. With no argument every configured platform is
scraped in order; a platform that fails is logged and the rest still
run. With a platform argument (Reddit, Youtube, "App Store",
"Google Play") only that scraper runs and its failure is fatal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx := cmd.Context()

	if len(args) == 1 {
		if err := ingestService.Scrape(ctx, args[0]); err != nil {
			return fmt.Errorf("scrape %s: %w", args[0], err)
		}
		cmd.Printf("Scrape of %s complete.\n", args[0])
		return nil
	}

	if err := ingestService.ScrapeAll(ctx); err != nil {
		return fmt.Errorf("scrape: %w", err)
	}
	cmd.Println("Scrape complete.")
	return nil
}
