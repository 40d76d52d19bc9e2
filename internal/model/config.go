package model

import "time"

// Config holds all pipeline configuration
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Cache       CacheConfig       `yaml:"cache"`
	Providers   ProvidersConfig   `yaml:"providers"`
	Classifier  ClassifierConfig  `yaml:"classifier"`
	Verifier    VerifierConfig    `yaml:"verifier"`
	LLM         LLMConfig         `yaml:"llm"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// HTTPConfig configures outbound HTTP behavior shared by providers
type HTTPConfig struct {
	UserAgent  string `yaml:"user_agent"`
	HTTPProxy  string `yaml:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy"`
	NoProxy    string `yaml:"no_proxy"`
}

// CacheConfig configures the TTL cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// ProvidersConfig configures the fallback chain.
// Order lists provider IDs in the sequence they are tried.
type ProvidersConfig struct {
	Order         []string      `yaml:"order"`
	Timeout       time.Duration `yaml:"timeout"`       // Per-call timeout, mandatory
	LookbackDays  int           `yaml:"lookback_days"` // How far back to search for a player's game
	TrendGames    int           `yaml:"trend_games"`   // Recent games sampled for trend answers
	RatePerSecond float64       `yaml:"rate_per_second"`
	RateBurst     int           `yaml:"rate_burst"`
	ESPNBaseURL   string        `yaml:"espn_base_url"`
	BDLBaseURL    string        `yaml:"bdl_base_url"`
	BDLAPIKey     string        `yaml:"-"` // From BALLDONTLIE_API_KEY, never persisted
	CommunityURL  string        `yaml:"community_url"`
	ArchiveDir    string        `yaml:"archive_dir"`
	RespectRobots bool          `yaml:"respect_robots"`
}

// ClassifierConfig exposes the classifier's empirically chosen thresholds.
// The defaults are tuned values, not derived constants.
type ClassifierConfig struct {
	MixedSpread      int     `yaml:"mixed_spread"`      // Max spread within the high-score set to call it mixed
	HighScoreRatio   float64 `yaml:"high_score_ratio"`  // Fraction of max a score needs to join that set
	FallbackCategory string  `yaml:"fallback_category"` // Returned when every score is zero
}

// VerifierConfig configures the plausibility check battery
type VerifierConfig struct {
	VerifiedCutoff float64 `yaml:"verified_cutoff"` // Min confidence to mark verified
	MaxPoints      int     `yaml:"max_points"`
	MaxRebounds    int     `yaml:"max_rebounds"`
	MaxAssists     int     `yaml:"max_assists"`
}

// LLMConfig configures the optional phrasing layer.
// Provider empty means disabled; the deterministic path always runs.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "openai", "ollama", ""
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"` // From environment, never persisted
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
	// StrictStats enforces that every number in LLM output exists in the
	// payload. Should always be true.
	StrictStats bool `yaml:"strict_stats"`
}

// ConcurrencyConfig configures worker counts for batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// OutputConfig configures CLI output behavior
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			UserAgent: "statline/0.1 (+https://github.com/statlinehq/statline)",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     30 * time.Minute,
		},
		Providers: ProvidersConfig{
			Order:         []string{"espn", "balldontlie", "community", "archive"},
			Timeout:       5 * time.Second,
			LookbackDays:  14,
			TrendGames:    5,
			RatePerSecond: 4,
			RateBurst:     5,
			ESPNBaseURL:   "https://site.api.espn.com/apis/site/v2/sports/basketball/nba",
			BDLBaseURL:    "https://api.balldontlie.io/v1",
			CommunityURL:  "",
			ArchiveDir:    "",
			RespectRobots: true,
		},
		Classifier: ClassifierConfig{
			MixedSpread:      2,
			HighScoreRatio:   0.5,
			FallbackCategory: string(IntentArticles),
		},
		Verifier: VerifierConfig{
			VerifiedCutoff: 0.6,
			MaxPoints:      150,
			MaxRebounds:    60,
			MaxAssists:     50,
		},
		LLM: LLMConfig{
			Provider:    "",
			Timeout:     30,
			MaxTokens:   400,
			StrictStats: true,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
	}
}
