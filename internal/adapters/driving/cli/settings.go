package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage configuration",
	Long: `View and configure the pipeline: data locations, platform
credentials, and the LLM endpoint. Secrets entered here are written to
the config file; environment variables still take precedence.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runSettingsShow,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure the LLM endpoint",
	RunE:  runSettingsLLM,
}

var settingsCredentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Configure platform API credentials",
	RunE:  runSettingsCredentials,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsCredentialsCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if cfg == nil {
		return errors.New("configuration not loaded")
	}

	cmd.Println("Current Configuration")
	cmd.Println("=====================")
	cmd.Println()

	cmd.Println("[Pipeline]")
	cmd.Printf("  Data dir: %s\n", cfg.DataDir)
	cmd.Printf("  Analysis input: %s\n", cfg.InputPath())
	cmd.Printf("  Report output: %s\n", cfg.OutputPath())
	cmd.Printf("  Curated dataset: %s\n", cfg.CuratedPath())
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Base URL: %s\n", cfg.LLM.BaseURL)
	cmd.Printf("  Model: %s\n", cfg.LLM.Model)
	if cfg.LLM.SearchModel != "" {
		cmd.Printf("  Search model: %s\n", cfg.LLM.SearchModel)
	}
	if cfg.LLM.APIKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(cfg.LLM.APIKey))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
	cmd.Println()

	cmd.Println("[Reddit]")
	cmd.Printf("  Subreddit: r/%s\n", cfg.Reddit.Subreddit)
	cmd.Printf("  Post limit: %d\n", cfg.Reddit.PostLimit)
	if cfg.Reddit.ClientID != "" {
		cmd.Printf("  Client ID: %s\n", maskAPIKey(cfg.Reddit.ClientID))
	} else {
		cmd.Printf("  Client ID: (not set)\n")
	}
	cmd.Println()

	cmd.Println("[YouTube]")
	cmd.Printf("  Channel: %s\n", cfg.YouTube.ChannelID)
	cmd.Printf("  Lookback: %d days\n", cfg.YouTube.LookbackDays)
	if cfg.YouTube.APIKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(cfg.YouTube.APIKey))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
	cmd.Println()

	cmd.Println("[App Store]")
	cmd.Printf("  App ID: %s (%s)\n", cfg.AppStore.AppID, cfg.AppStore.Country)
	cmd.Println()

	cmd.Println("[Google Play]")
	cmd.Printf("  App ID: %s (%s/%s)\n", cfg.GooglePlay.AppID, cfg.GooglePlay.Country, cfg.GooglePlay.Language)

	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if cfg == nil {
		return errors.New("configuration not loaded")
	}

	reader := bufio.NewReader(os.Stdin)

	cmd.Printf("Enter model name [%s]: ", cfg.LLM.Model)
	if model := readLine(reader); model != "" {
		cfg.LLM.Model = model
	}

	cmd.Printf("Enter search model name [%s]: ", cfg.LLM.Model)
	if model := readLine(reader); model != "" {
		cfg.LLM.SearchModel = model
	}

	cmd.Print("Enter OpenRouter API key: ")
	apiKey := readPassword()
	cmd.Println()
	if apiKey != "" {
		cfg.LLM.APIKey = apiKey
	}

	if err := cfg.Save(cfgPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	cmd.Printf("LLM settings saved to %s\n", cfgPath)
	return nil
}

func runSettingsCredentials(cmd *cobra.Command, _ []string) error {
	if cfg == nil {
		return errors.New("configuration not loaded")
	}

	reader := bufio.NewReader(os.Stdin)

	cmd.Printf("Reddit client ID [%s]: ", maskAPIKey(cfg.Reddit.ClientID))
	if id := readLine(reader); id != "" {
		cfg.Reddit.ClientID = id
	}
	cmd.Print("Reddit client secret: ")
	if secret := readPassword(); secret != "" {
		cfg.Reddit.ClientSecret = secret
	}
	cmd.Println()

	cmd.Print("YouTube API key: ")
	if key := readPassword(); key != "" {
		cfg.YouTube.APIKey = key
	}
	cmd.Println()

	if err := cfg.Save(cfgPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	cmd.Printf("Credentials saved to %s\n", cfgPath)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
