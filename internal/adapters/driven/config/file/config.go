package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Default pipeline file locations, relative to DataDir unless absolute.
const (
	DefaultDataDir     = "data"
	DefaultInputFile   = "llm_analysis_output.txt"
	DefaultOutputFile  = "report_with_sources.json"
	DefaultCuratedFile = "curated_data_for_llm.json"
)

// Config is the explicit configuration object passed into the resolver,
// parser, curation, and scrape components at construction time. It
// replaces the original system's scattered global constants.
type Config struct {
	// DataDir holds the four store databases and the pipeline files.
	DataDir string `toml:"data_dir"`

	// InputFile is the raw LLM analysis text consumed by report
	// generation.
	InputFile string `toml:"input_file"`

	// OutputFile is the report artifact.
	OutputFile string `toml:"output_file"`

	// CuratedFile is the curated dataset exported for the LLM.
	CuratedFile string `toml:"curated_file"`

	LLM        LLMConfig        `toml:"llm"`
	Reddit     RedditConfig     `toml:"reddit"`
	YouTube    YouTubeConfig    `toml:"youtube"`
	AppStore   AppStoreConfig   `toml:"app_store"`
	GooglePlay GooglePlayConfig `toml:"google_play"`
	Serve      ServeConfig      `toml:"serve"`
}

// LLMConfig configures the OpenRouter (OpenAI-compatible) endpoint.
type LLMConfig struct {
	// APIKey authenticates against the endpoint. Overridden by
	// OPENROUTER_API_KEY.
	APIKey string `toml:"api_key"`

	// BaseURL is the chat-completions API root.
	BaseURL string `toml:"base_url"`

	// Model is the summarization model.
	Model string `toml:"model"`

	// SearchModel is the large-context model used for semantic search
	// over the full dataset. Defaults to Model when empty.
	SearchModel string `toml:"search_model"`

	// Referer is sent as the HTTP Referer header, which OpenRouter uses
	// for app attribution.
	Referer string `toml:"referer"`
}

// RedditConfig configures the Reddit store and scraper.
type RedditConfig struct {
	// DB is the store database file name within DataDir.
	DB string `toml:"db"`

	// Subreddit to scrape, without the /r/ prefix.
	Subreddit string `toml:"subreddit"`

	// PostLimit caps the number of top posts fetched per scrape.
	PostLimit int `toml:"post_limit"`

	// RequestsPerMinute paces scraper requests.
	RequestsPerMinute int `toml:"requests_per_minute"`

	// ClientID / ClientSecret are OAuth2 app credentials. Overridden by
	// REDDIT_CLIENT_ID / REDDIT_CLIENT_SECRET.
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`

	// UserAgent identifies the scraper to the Reddit API.
	UserAgent string `toml:"user_agent"`

	// CurateLimit is the number of top posts whose comments are
	// exported by curation.
	CurateLimit int `toml:"curate_limit"`
}

// YouTubeConfig configures the YouTube store and scraper.
type YouTubeConfig struct {
	DB string `toml:"db"`

	// ChannelID is the channel whose recent uploads are scanned.
	ChannelID string `toml:"channel_id"`

	// LookbackDays bounds how old a video may be to have its comments
	// scraped.
	LookbackDays int `toml:"lookback_days"`

	// MaxCommentsPerVideo caps top-level comments fetched per video.
	MaxCommentsPerVideo int `toml:"max_comments_per_video"`

	// APIKey is the YouTube Data API key. Overridden by YOUTUBE_API_KEY.
	APIKey string `toml:"api_key"`

	// CurateLimit is the number of most-liked comments exported by
	// curation.
	CurateLimit int `toml:"curate_limit"`
}

// AppStoreConfig configures the App Store store and scraper.
type AppStoreConfig struct {
	DB string `toml:"db"`

	// Table is the reviews table name. Configurable because existing
	// deployments carry app-specific names.
	Table string `toml:"table"`

	// AppID is the numeric App Store application ID.
	AppID string `toml:"app_id"`

	// AppSlug is the URL slug of the app ("the-economist" style).
	AppSlug string `toml:"app_slug"`

	// Country is the storefront country code.
	Country string `toml:"country"`

	// LookbackDays bounds review age.
	LookbackDays int `toml:"lookback_days"`

	// MaxReviews caps reviews fetched per scrape.
	MaxReviews int `toml:"max_reviews"`

	// CurateLimit is the number of most recent reviews exported by
	// curation.
	CurateLimit int `toml:"curate_limit"`
}

// GooglePlayConfig configures the Google Play store and scraper.
type GooglePlayConfig struct {
	DB string `toml:"db"`

	// Table is the reviews table name.
	Table string `toml:"table"`

	// AppID is the application package name ("com.example.app").
	AppID string `toml:"app_id"`

	// Country and Language select the storefront.
	Country  string `toml:"country"`
	Language string `toml:"language"`

	// LookbackDays bounds review age.
	LookbackDays int `toml:"lookback_days"`

	// CurateLimit is the number of most recent reviews exported by
	// curation.
	CurateLimit int `toml:"curate_limit"`
}

// ServeConfig configures the report HTTP server.
type ServeConfig struct {
	// Addr is the listen address.
	Addr string `toml:"addr"`
}

// Default returns a Config populated with working defaults for every
// non-secret field.
func Default() *Config {
	return &Config{
		DataDir:     DefaultDataDir,
		InputFile:   DefaultInputFile,
		OutputFile:  DefaultOutputFile,
		CuratedFile: DefaultCuratedFile,
		LLM: LLMConfig{
			BaseURL: "https://openrouter.ai/api/v1",
			Model:   "tngtech/deepseek-r1t2-chimera:free",
		},
		Reddit: RedditConfig{
			DB:                "reddit_data.db",
			Subreddit:         "theeconomist",
			PostLimit:         100,
			RequestsPerMinute: 80,
			UserAgent:         "echolens feedback scraper v1.0",
			CurateLimit:       200,
		},
		YouTube: YouTubeConfig{
			DB:                  "youtube_comments.db",
			LookbackDays:        30,
			MaxCommentsPerVideo: 50,
			CurateLimit:         200,
		},
		AppStore: AppStoreConfig{
			DB:           "app_reviews.db",
			Table:        "app_store_reviews",
			Country:      "us",
			LookbackDays: 30,
			MaxReviews:   5000,
			CurateLimit:  500,
		},
		GooglePlay: GooglePlayConfig{
			DB:           "google_play_reviews.db",
			Table:        "google_play_reviews",
			Country:      "us",
			Language:     "en",
			LookbackDays: 30,
			CurateLimit:  500,
		},
		Serve: ServeConfig{
			Addr: "127.0.0.1:5000",
		},
	}
}

// Load reads the config file at path, layered over defaults and under
// environment overrides. A missing file is not an error: defaults plus
// environment apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// Save writes the config to path, creating parent directories. Intended
// for the settings command; secrets set via environment are not echoed
// into the file unless they were set on the struct explicitly.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays secret-bearing fields from the environment.
func (c *Config) applyEnv() {
	if v := os.Getenv("PERSISTENT_STORAGE_PATH"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("REDDIT_CLIENT_ID"); v != "" {
		c.Reddit.ClientID = v
	}
	if v := os.Getenv("REDDIT_CLIENT_SECRET"); v != "" {
		c.Reddit.ClientSecret = v
	}
	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		c.YouTube.APIKey = v
	}
}

// PathIn resolves a pipeline file name against DataDir unless it is
// already absolute.
func (c *Config) PathIn(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// InputPath is the resolved analysis input file location.
func (c *Config) InputPath() string { return c.PathIn(c.InputFile) }

// OutputPath is the resolved report artifact location.
func (c *Config) OutputPath() string { return c.PathIn(c.OutputFile) }

// CuratedPath is the resolved curated dataset location.
func (c *Config) CuratedPath() string { return c.PathIn(c.CuratedFile) }
