// Package cli implements the echolens command-line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/echolens-labs/echolens-cli/internal/adapters/driven/config/file"
	"github.com/echolens-labs/echolens-cli/internal/adapters/driven/llm/openrouter"
	"github.com/echolens-labs/echolens-cli/internal/adapters/driven/storage/sqlite"
	"github.com/echolens-labs/echolens-cli/internal/connectors/appstore"
	"github.com/echolens-labs/echolens-cli/internal/connectors/googleplay"
	"github.com/echolens-labs/echolens-cli/internal/connectors/reddit"
	"github.com/echolens-labs/echolens-cli/internal/connectors/youtube"
	"github.com/echolens-labs/echolens-cli/internal/core/ports/driven"
	"github.com/echolens-labs/echolens-cli/internal/core/ports/driving"
	"github.com/echolens-labs/echolens-cli/internal/core/services"
	"github.com/echolens-labs/echolens-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	cfgPath string
	verbose bool

	cfg *file.Config

	// Stores double as citation sources and dataset readers.
	redditStore   *sqlite.Reddit
	youtubeStore  *sqlite.YouTube
	appStoreStore *sqlite.AppStore
	playStore     *sqlite.GooglePlay

	resolverService driving.CitationResolver
	reportService   driving.ReportService
	curationService driving.CurationService
	analysisService driving.AnalysisService
	datasetService  driving.DatasetService
	ingestService   driving.IngestOrchestrator
)

var rootCmd = &cobra.Command{
	Use:   "echolens",
	Short: "User feedback analysis pipeline",
	Long: `EchoLens collects user feedback from Reddit, YouTube, the App Store
and Google Play, summarizes it with an LLM, and rebuilds the model's
free-text output into a structured report where every insight links
back to verifiable source records.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "echolens.toml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context. Commands
// that block (serve, mcp, view) stop when it is cancelled.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// initServices loads configuration and wires the service graph. The
// LLM-backed services stay nil without an API key; commands that need
// them say so instead of failing deep inside a run.
func initServices() error {
	loaded, err := file.Load(cfgPath)
	if err != nil {
		return err
	}
	cfg = loaded

	redditStore = sqlite.NewReddit(cfg.PathIn(cfg.Reddit.DB))
	youtubeStore = sqlite.NewYouTube(cfg.PathIn(cfg.YouTube.DB))
	appStoreStore = sqlite.NewAppStore(cfg.PathIn(cfg.AppStore.DB), cfg.AppStore.Table)
	playStore = sqlite.NewGooglePlay(cfg.PathIn(cfg.GooglePlay.DB), cfg.GooglePlay.Table)

	resolverService = services.NewResolverService(
		redditStore, youtubeStore, appStoreStore, playStore)

	reportService = services.NewReporterService(
		resolverService, cfg.InputPath(), cfg.OutputPath())

	curationService = services.NewCuratorService(cfg.CuratedPath(),
		services.CurationEntry{Reader: redditStore, Limit: cfg.Reddit.CurateLimit},
		services.CurationEntry{Reader: youtubeStore, Limit: cfg.YouTube.CurateLimit},
		services.CurationEntry{Reader: appStoreStore, Limit: cfg.AppStore.CurateLimit},
		services.CurationEntry{Reader: playStore, Limit: cfg.GooglePlay.CurateLimit},
	)

	var llm driven.LLMService
	if cfg.LLM.APIKey != "" {
		llm, err = openrouter.NewLLMService(openrouter.LLMConfig{
			APIKey:  cfg.LLM.APIKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
			Referer: cfg.LLM.Referer,
			Title:   "EchoLens",
		})
		if err != nil {
			return err
		}
	}
	if llm != nil {
		analysisService = services.NewAnalyzerService(llm, cfg.CuratedPath(), cfg.InputPath())
	}

	datasetService = services.NewDatasetStatsService(resolverService, searchLLM(llm),
		redditStore, youtubeStore, appStoreStore, playStore)

	ingestService = services.NewIngestService(
		reddit.New(reddit.Config{
			Subreddit:         cfg.Reddit.Subreddit,
			PostLimit:         cfg.Reddit.PostLimit,
			ClientID:          cfg.Reddit.ClientID,
			ClientSecret:      cfg.Reddit.ClientSecret,
			UserAgent:         cfg.Reddit.UserAgent,
			RequestsPerMinute: cfg.Reddit.RequestsPerMinute,
		}, redditStore),
		youtube.New(youtube.Config{
			APIKey:              cfg.YouTube.APIKey,
			ChannelID:           cfg.YouTube.ChannelID,
			LookbackDays:        cfg.YouTube.LookbackDays,
			MaxCommentsPerVideo: cfg.YouTube.MaxCommentsPerVideo,
		}, youtubeStore),
		appstore.New(appstore.Config{
			AppID:        cfg.AppStore.AppID,
			AppSlug:      cfg.AppStore.AppSlug,
			Country:      cfg.AppStore.Country,
			LookbackDays: cfg.AppStore.LookbackDays,
			MaxReviews:   cfg.AppStore.MaxReviews,
		}, appStoreStore),
		googleplay.New(googleplay.Config{
			AppID:        cfg.GooglePlay.AppID,
			Language:     cfg.GooglePlay.Language,
			Country:      cfg.GooglePlay.Country,
			LookbackDays: cfg.GooglePlay.LookbackDays,
		}, playStore),
	)

	return nil
}

// searchLLM returns the semantic-search LLM: the configured search
// model when set, else the summarization one.
func searchLLM(base driven.LLMService) driven.LLMService {
	if base == nil || cfg.LLM.SearchModel == "" || cfg.LLM.SearchModel == cfg.LLM.Model {
		return base
	}
	svc, err := openrouter.NewLLMService(openrouter.LLMConfig{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.SearchModel,
		Referer: cfg.LLM.Referer,
		Title:   "EchoLens",
	})
	if err != nil {
		logger.Error("Search model config: %v", err)
		return base
	}
	return svc
}

// errLLMNotConfigured is the shared message for commands that need an
// API key.
func errLLMNotConfigured() error {
	return fmt.Errorf("no LLM configured: set OPENROUTER_API_KEY or llm.api_key in %s", cfgPath)
}
