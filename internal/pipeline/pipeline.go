package pipeline

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/statlinehq/statline/internal/cache"
	"github.com/statlinehq/statline/internal/intent"
	"github.com/statlinehq/statline/internal/llm"
	"github.com/statlinehq/statline/internal/model"
	"github.com/statlinehq/statline/internal/provider"
	"github.com/statlinehq/statline/internal/resolve"
	"github.com/statlinehq/statline/internal/respond"
	"github.com/statlinehq/statline/internal/verify"
)

// Fetcher is the provider-chain surface the engine needs.
type Fetcher interface {
	Fetch(ctx context.Context, entity model.EntityReference, opponent string) model.FetchResult
}

// ScheduleSource lists scoreboard games for a date.
type ScheduleSource interface {
	Games(ctx context.Context, date time.Time) ([]provider.Game, error)
}

// AveragesSource returns a player's per-game season averages.
type AveragesSource interface {
	SeasonAverages(ctx context.Context, entity model.EntityReference) (*model.SeasonAverages, error)
}

// LeaderSource finds the top scorer of a team's latest game.
type LeaderSource interface {
	TeamTopScorer(ctx context.Context, team string) (*model.StatLine, error)
}

// TrendSource returns a player's recent stat rows, newest first.
type TrendSource interface {
	RecentLines(ctx context.Context, entity model.EntityReference, n int) ([]model.StatLine, error)
}

// Deps are the injected collaborators. Everything that performs I/O comes in
// through here; the engine builds only the pure stages itself.
type Deps struct {
	Fetcher  Fetcher
	Store    *cache.StatStore // nil disables caching
	Schedule ScheduleSource   // nil disables schedule answers
	Averages AveragesSource   // nil disables season-average answers
	Leaders  LeaderSource     // nil disables scoring-leader answers
	Trends   TrendSource      // nil reduces trend answers to the single-game path
	Phraser  *llm.Phraser
	Logger   *zap.Logger
}

// Engine routes a question to its handler and orchestrates the stat
// pipeline. One engine serves many queries concurrently; it holds no
// per-query state.
type Engine struct {
	cfg        *model.Config
	classifier *intent.Classifier
	resolver   *resolve.Resolver
	verifier   *verify.Verifier
	responder  *respond.Responder
	deps       Deps
	logger     *zap.Logger
}

// NewEngine creates an engine with the given configuration and collaborators.
func NewEngine(cfg *model.Config, deps Deps) *Engine {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Phraser == nil {
		deps.Phraser = llm.NewPhraser(nil, deps.Logger)
	}

	return &Engine{
		cfg:        cfg,
		classifier: intent.NewClassifier(cfg.Classifier),
		resolver:   resolve.NewResolver(),
		verifier:   verify.NewVerifier(cfg.Verifier),
		responder:  respond.NewResponder(),
		deps:       deps,
		logger:     deps.Logger,
	}
}

// Answer classifies the question and runs the matching handler. The engine
// always answers; handler failures become apologetic text, never errors.
// The only error returned is context cancellation.
func (e *Engine) Answer(ctx context.Context, question string) (*model.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := model.NewQuery(question)
	category := e.classifier.Classify(question)
	if category == model.IntentMixed {
		category = rerouteMixed(question)
	}

	e.logger.Debug("routed question",
		zap.String("query_id", query.ID.String()),
		zap.String("intent", string(category)))

	switch category {
	case model.IntentGeneral:
		return e.general(query), nil
	case model.IntentPlayerStats:
		return e.playerStats(ctx, query, model.IntentPlayerStats)
	case model.IntentPlayerTrend:
		return e.playerTrend(ctx, query)
	case model.IntentSeasonAverages:
		return e.seasonAverages(ctx, query)
	case model.IntentSchedule:
		return e.schedule(ctx, query, time.Now())
	case model.IntentDateSchedule:
		return e.schedule(ctx, query, scheduleDate(question, time.Now()))
	case model.IntentLiveGame:
		return e.liveGames(ctx, query)
	case model.IntentMatchStats:
		return e.matchStats(ctx, query)
	case model.IntentTeamScoringLeader:
		return e.teamScoringLeader(ctx, query)
	default:
		return e.reduced(query, category), nil
	}
}

// rerouteMixed resolves an ambiguous classification by keyword priority.
// The order is the priority order.
func rerouteMixed(question string) model.Intent {
	q := strings.ToLower(question)
	switch {
	case containsAny(q, "what does", "what do", "say about", "says about", "article", "articles"):
		return model.IntentArticles
	case containsAny(q, "schedule", "fixtures", "upcoming games"):
		return model.IntentSchedule
	case containsAny(q, "points", "rebounds", "assists", "blocks", "steals"):
		return model.IntentPlayerStats
	case containsAny(q, "score", "result", "won", "lost", "win", "lose", "outcome", "final score"):
		return model.IntentMatchStats
	case containsAny(q, "next", "upcoming", "when", "today", "tomorrow"):
		return model.IntentSchedule
	case containsAny(q, "live", "currently", "in progress"):
		return model.IntentLiveGame
	case containsAny(q, "standings", "ranking", "rank", "record", "playoff"):
		return model.IntentStandings
	case containsAny(q, "injury", "injured"):
		return model.IntentInjuries
	case containsAny(q, "trend", "recently", "lately"):
		return model.IntentPlayerTrend
	case containsAny(q, "season average", "averages"):
		return model.IntentSeasonAverages
	case containsAny(q, "news", "update", "breaking"):
		return model.IntentTeamNews
	default:
		return model.IntentArticles
	}
}

// scheduleDate maps the question's temporal phrase onto a concrete date.
func scheduleDate(question string, now time.Time) time.Time {
	q := strings.ToLower(question)
	switch {
	case strings.Contains(q, "day after"):
		return now.AddDate(0, 0, 2)
	case containsAny(q, "tomorrow", "tommorow", "tomorow", "tomarrow", "tommorrow"):
		return now.AddDate(0, 0, 1)
	case strings.Contains(q, "yesterday"):
		return now.AddDate(0, 0, -1)
	}
	return now
}

func containsAny(q string, phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(q, p) {
			return true
		}
	}
	return false
}

// findTeam returns the first known team name mentioned in the question.
func findTeam(question string) string {
	q := strings.ToLower(question)
	for _, team := range resolve.TeamNames() {
		if strings.Contains(q, team) {
			return team
		}
	}
	return ""
}

// textResponse builds a data-free response for a category.
func textResponse(query model.Query, category model.Intent, text string) *model.Response {
	return &model.Response{
		Text: text,
		Provenance: model.Provenance{
			QueryID: query.ID,
			Intent:  category,
			Source:  model.ProviderNone,
		},
	}
}
