package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/echolens-labs/echolens-cli/internal/adapters/driving/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Browse the report in an interactive terminal viewer",
	Args:  cobra.NoArgs,
	RunE:  runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, _ []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	app, err := tui.NewApp(tui.NewPorts(reportService))
	if err != nil {
		return fmt.Errorf("view: %w", err)
	}

	return app.WithContext(cmd.Context()).Run()
}
