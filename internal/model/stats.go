package model

import "time"

// ProviderID identifies a data source in the fallback chain
type ProviderID string

const (
	ProviderESPN        ProviderID = "espn"        // Authoritative, slower
	ProviderBallDontLie ProviderID = "balldontlie" // Faster, less complete
	ProviderCommunity   ProviderID = "community"   // Scraped community page
	ProviderArchive     ProviderID = "archive"     // Local historical snapshots
	ProviderCache       ProviderID = "cache"       // Entry served from the TTL cache
	ProviderNone        ProviderID = "none"        // Failure sentinel: no provider yielded data
)

// StatLine is the common payload shape every provider maps into.
// Zero metric values are rendered as "zero but omittable" downstream;
// the responder decides what to show, never this struct.
type StatLine struct {
	PlayerName string `json:"player_name"`
	Points     int    `json:"points"`
	Rebounds   int    `json:"rebounds"`
	Assists    int    `json:"assists"`
	Steals     int    `json:"steals"`
	Blocks     int    `json:"blocks"`
	MatchDate  string `json:"match_date"` // YYYY-MM-DD
	Team1      string `json:"team1_name"` // Away side as reported by the source
	Team2      string `json:"team2_name"` // Home side
	PlayerTeam string `json:"player_team,omitempty"`
}

// Empty reports whether the line carries no usable metric at all.
// A fetch that "succeeds" with an empty line is treated as a failure.
func (s StatLine) Empty() bool {
	return s.Points == 0 && s.Rebounds == 0 && s.Assists == 0 &&
		s.Steals == 0 && s.Blocks == 0
}

// SeasonAverages is the per-game summary payload variant.
type SeasonAverages struct {
	PlayerName  string  `json:"player_name"`
	GamesPlayed int     `json:"games_played"`
	Points      float64 `json:"points_per_game"`
	Rebounds    float64 `json:"rebounds_per_game"`
	Assists     float64 `json:"assists_per_game"`
	Steals      float64 `json:"steals_per_game"`
	Blocks      float64 `json:"blocks_per_game"`
	Season      string  `json:"season,omitempty"`
}

// TrendReport compares a player's recent-game averages against their season
// averages. A metric trends up when the recent average exceeds the season one.
type TrendReport struct {
	PlayerName     string  `json:"player_name"`
	GamesSampled   int     `json:"games_sampled"`
	RecentPoints   float64 `json:"recent_points_per_game"`
	RecentRebounds float64 `json:"recent_rebounds_per_game"`
	RecentAssists  float64 `json:"recent_assists_per_game"`
	SeasonPoints   float64 `json:"season_points_per_game"`
	SeasonRebounds float64 `json:"season_rebounds_per_game"`
	SeasonAssists  float64 `json:"season_assists_per_game"`
	PointsUp       bool    `json:"points_up"`
	ReboundsUp     bool    `json:"rebounds_up"`
	AssistsUp      bool    `json:"assists_up"`
}

// FetchResult carries the outcome of one provider-chain pass.
// Failure is an ordinary value here, never a panic or sentinel-free error:
// the chain loop composes over it.
type FetchResult struct {
	Success   bool       `json:"success"`
	Data      *StatLine  `json:"data,omitempty"`
	Source    ProviderID `json:"source"`
	Error     string     `json:"error,omitempty"` // Concatenated per-provider diagnostics on exhaustion
	FetchedAt time.Time  `json:"fetched_at"`
}

// VerificationReport rates a fetched payload's plausibility.
// Advisory only: it is attached to the response, never gates it.
type VerificationReport struct {
	Verified   bool    `json:"verified"`
	Confidence float64 `json:"confidence"` // checks passed / checks total
	Notes      string  `json:"notes"`
}
