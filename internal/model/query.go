package model

import (
	"time"

	"github.com/google/uuid"
)

// Query is a single user question flowing through the pipeline.
// It is immutable after creation and discarded once answered.
type Query struct {
	ID      uuid.UUID `json:"id"`       // Stamped into provenance for tracing
	Text    string    `json:"text"`     // Raw question as typed
	AskedAt time.Time `json:"asked_at"` // Arrival timestamp
}

// NewQuery creates a query for the given question text.
func NewQuery(text string) Query {
	return Query{
		ID:      uuid.New(),
		Text:    text,
		AskedAt: time.Now().UTC(),
	}
}

// Intent is the closed-vocabulary category a question is routed to
type Intent string

const (
	IntentGeneral           Intent = "general"             // Greetings and capability questions
	IntentMatchStats        Intent = "match_stats"         // Game results and scores
	IntentPlayerStats       Intent = "player_stats"        // Per-player statistics (full pipeline)
	IntentSchedule          Intent = "schedule"            // Upcoming games, no explicit date
	IntentDateSchedule      Intent = "date_schedule"       // Games on a specific day
	IntentArticles          Intent = "articles"            // News/opinion/analysis text
	IntentLiveGame          Intent = "live_game"           // Games in progress
	IntentStandings         Intent = "standings"           // Rankings, seeds, records
	IntentInjuries          Intent = "injuries"            // Injury/status reports
	IntentPlayerTrend       Intent = "player_trend"        // Recent-form direction
	IntentSeasonAverages    Intent = "season_averages"     // Per-game season summary
	IntentTeamNews          Intent = "team_news"           // Roster/trade/announcement news
	IntentTeamScoringLeader Intent = "team_scoring_leader" // Top scorer of a team's game
	IntentMixed             Intent = "mixed"               // Ambiguous: several categories tied
)

// EntityReference is a canonicalized subject produced by the resolver.
// ExternalID starts empty; providers fill it in lazily when a fetch
// actually needs one. The resolver itself never performs network lookups.
type EntityReference struct {
	CanonicalName string   `json:"canonical_name"`
	Aliases       []string `json:"aliases"`
	ExternalID    string   `json:"external_id,omitempty"`
	Known         bool     `json:"known"` // True when found in the known-entity table
}

// Provenance records where an answer's data came from.
type Provenance struct {
	QueryID   uuid.UUID  `json:"query_id"`
	Intent    Intent     `json:"intent"`
	Source    ProviderID `json:"source"`
	CacheHit  bool       `json:"cache_hit"`
	FetchedAt time.Time  `json:"fetched_at,omitempty"`
}

// Response is the terminal result for one query.
type Response struct {
	Text         string              `json:"text"`
	Payload      any                 `json:"payload,omitempty"`
	Provenance   Provenance          `json:"provenance"`
	Verification *VerificationReport `json:"verification,omitempty"` // Absent for cache hits and failures
}
