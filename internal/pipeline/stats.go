package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/statlinehq/statline/internal/model"
	"github.com/statlinehq/statline/internal/resolve"
)

// playerStats is the full five-stage path: resolve, cache, fetch, verify,
// respond. Every other handler is a reduction of this one.
func (e *Engine) playerStats(ctx context.Context, query model.Query, category model.Intent) (*model.Response, error) {
	subject := resolve.ExtractSubject(query.Text)
	if subject == "" {
		// No subject means no provider is worth calling.
		return textResponse(query, category,
			"I couldn't tell which player you're asking about. Try using their full name."), nil
	}

	entity, err := e.resolver.Resolve(subject)
	if err != nil {
		return textResponse(query, category,
			"I couldn't tell which player you're asking about. Try using their full name."), nil
	}
	opponent := resolve.ExtractOpponent(query.Text, subject)

	// A fresh cache entry answers without touching a provider, and without
	// re-verifying: the entry was already checked when it was stored.
	if e.deps.Store != nil {
		if line, ok := e.deps.Store.Get(entity, opponent); ok {
			e.logger.Debug("cache hit",
				zap.String("player", entity.CanonicalName),
				zap.String("opponent", opponent))

			result := model.FetchResult{
				Success:   true,
				Data:      line,
				Source:    model.ProviderCache,
				FetchedAt: time.Now(),
			}
			text := e.responder.Respond(query.Text, entity, result)
			text = e.deps.Phraser.Rephrase(ctx, query.Text, text, line)
			return &model.Response{
				Text:    text,
				Payload: line,
				Provenance: model.Provenance{
					QueryID:   query.ID,
					Intent:    category,
					Source:    model.ProviderCache,
					CacheHit:  true,
					FetchedAt: result.FetchedAt,
				},
			}, nil
		}
	}

	result := e.deps.Fetcher.Fetch(ctx, entity, opponent)

	var report *model.VerificationReport
	if result.Success {
		r := e.verifier.Check(result.Data)
		report = &r
		if !r.Verified {
			e.logger.Warn("payload failed verification",
				zap.String("player", entity.CanonicalName),
				zap.Float64("confidence", r.Confidence),
				zap.String("notes", r.Notes))
		}
		if e.deps.Store != nil {
			if err := e.deps.Store.Put(entity, opponent, result.Data); err != nil {
				e.logger.Warn("cache store failed", zap.Error(err))
			}
		}
	}

	text := e.responder.Respond(query.Text, entity, result)
	if result.Success {
		text = e.deps.Phraser.Rephrase(ctx, query.Text, text, result.Data)
	}

	resp := &model.Response{
		Text: text,
		Provenance: model.Provenance{
			QueryID:   query.ID,
			Intent:    category,
			Source:    result.Source,
			FetchedAt: result.FetchedAt,
		},
		Verification: report,
	}
	if result.Success {
		resp.Payload = result.Data
	}
	return resp, nil
}

// playerTrend compares recent-game averages with the season averages and
// reports the direction per metric.
func (e *Engine) playerTrend(ctx context.Context, query model.Query) (*model.Response, error) {
	// Without a game log or a season baseline the single-game path still
	// gives a useful answer.
	if e.deps.Trends == nil || e.deps.Averages == nil {
		return e.playerStats(ctx, query, model.IntentPlayerTrend)
	}

	subject := resolve.ExtractSubject(query.Text)
	if subject == "" {
		return textResponse(query, model.IntentPlayerTrend,
			"I couldn't tell which player you're asking about. Try using their full name."), nil
	}
	entity, err := e.resolver.Resolve(subject)
	if err != nil {
		return textResponse(query, model.IntentPlayerTrend,
			"I couldn't tell which player you're asking about. Try using their full name."), nil
	}

	games := e.cfg.Providers.TrendGames
	if games <= 0 {
		games = 5
	}

	lines, err := e.deps.Trends.RecentLines(ctx, entity, games)
	if err != nil || len(lines) == 0 {
		e.logger.Debug("recent lines fetch failed",
			zap.String("player", entity.CanonicalName), zap.Error(err))
		return textResponse(query, model.IntentPlayerTrend,
			fmt.Sprintf("Sorry, I couldn't retrieve recent games for %s right now.", entity.CanonicalName)), nil
	}
	avg, err := e.deps.Averages.SeasonAverages(ctx, entity)
	if err != nil {
		e.logger.Debug("season averages fetch failed",
			zap.String("player", entity.CanonicalName), zap.Error(err))
		return textResponse(query, model.IntentPlayerTrend,
			fmt.Sprintf("Sorry, I couldn't retrieve season averages for %s right now.", entity.CanonicalName)), nil
	}

	report := buildTrend(avg, lines)
	direction := "%s is trending down. Recent average: %.1f PPG vs season average: %.1f PPG."
	if report.PointsUp {
		direction = "%s is trending up! Recent average: %.1f PPG vs season average: %.1f PPG."
	}
	text := fmt.Sprintf(direction, report.PlayerName, report.RecentPoints, report.SeasonPoints)

	return &model.Response{
		Text:    text,
		Payload: report,
		Provenance: model.Provenance{
			QueryID:   query.ID,
			Intent:    model.IntentPlayerTrend,
			Source:    model.ProviderBallDontLie,
			FetchedAt: time.Now(),
		},
	}, nil
}

// buildTrend averages the recent rows and marks each metric's direction
// against the season baseline.
func buildTrend(avg *model.SeasonAverages, lines []model.StatLine) model.TrendReport {
	var pts, reb, ast float64
	for _, l := range lines {
		pts += float64(l.Points)
		reb += float64(l.Rebounds)
		ast += float64(l.Assists)
	}
	n := float64(len(lines))
	pts, reb, ast = pts/n, reb/n, ast/n

	return model.TrendReport{
		PlayerName:     avg.PlayerName,
		GamesSampled:   len(lines),
		RecentPoints:   pts,
		RecentRebounds: reb,
		RecentAssists:  ast,
		SeasonPoints:   avg.Points,
		SeasonRebounds: avg.Rebounds,
		SeasonAssists:  avg.Assists,
		PointsUp:       pts > avg.Points,
		ReboundsUp:     reb > avg.Rebounds,
		AssistsUp:      ast > avg.Assists,
	}
}

// seasonAverages answers with the per-game payload variant.
func (e *Engine) seasonAverages(ctx context.Context, query model.Query) (*model.Response, error) {
	if e.deps.Averages == nil {
		return textResponse(query, model.IntentSeasonAverages,
			"Season averages aren't available right now."), nil
	}

	subject := resolve.ExtractSubject(query.Text)
	if subject == "" {
		return textResponse(query, model.IntentSeasonAverages,
			"I couldn't tell which player you're asking about. Try using their full name."), nil
	}
	entity, err := e.resolver.Resolve(subject)
	if err != nil {
		return textResponse(query, model.IntentSeasonAverages,
			"I couldn't tell which player you're asking about. Try using their full name."), nil
	}

	avg, err := e.deps.Averages.SeasonAverages(ctx, entity)
	if err != nil {
		e.logger.Debug("season averages fetch failed",
			zap.String("player", entity.CanonicalName), zap.Error(err))
		return textResponse(query, model.IntentSeasonAverages,
			fmt.Sprintf("Sorry, I couldn't retrieve season averages for %s right now.", entity.CanonicalName)), nil
	}

	text := fmt.Sprintf("This season %s is averaging %.1f points, %.1f rebounds and %.1f assists per game over %d games.",
		avg.PlayerName, avg.Points, avg.Rebounds, avg.Assists, avg.GamesPlayed)

	return &model.Response{
		Text:    text,
		Payload: avg,
		Provenance: model.Provenance{
			QueryID:   query.ID,
			Intent:    model.IntentSeasonAverages,
			Source:    model.ProviderBallDontLie,
			FetchedAt: time.Now(),
		},
	}, nil
}
