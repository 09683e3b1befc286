package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [citation-id]",
	Short: "Resolve a citation ID against the source stores",
	Long: `Looks a citation ID (R_..., YT_..., AS_..., GP_...) up in its
platform store and prints the enriched record. Resolution never fails:
an unknown or malformed ID yields a placeholder record whose text says
why it could not be verified.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	if resolverService == nil {
		return errors.New("resolver service not configured")
	}

	citation := resolverService.Resolve(cmd.Context(), args[0])

	data, err := json.MarshalIndent(citation, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal citation: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
