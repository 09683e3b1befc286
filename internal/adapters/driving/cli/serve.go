package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/echolens-labs/echolens-cli/internal/adapters/driving/httpapi"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the report and dataset API over HTTP",
	Long: `Serves the generated report at /report_with_sources.json plus the
dataset endpoints /api/source_counts and /api/nl_sql_search for
dashboard frontends. With --watch the analysis input file is watched
and the report regenerated on every change.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "regenerate the report when the analysis file changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.Serve.Addr
	}

	server, err := httpapi.NewServer(reportService, datasetService, cfg.OutputPath())
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	ctx := cmd.Context()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(ctx, addr)
	})
	if serveWatch {
		g.Go(func() error {
			return server.Watch(ctx, cfg.InputPath())
		})
	}

	cmd.Printf("Serving report on http://%s (Ctrl+C to stop)\n", addr)
	return g.Wait()
}
