package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/statlinehq/statline/internal/model"
	"github.com/statlinehq/statline/internal/provider"
	"github.com/statlinehq/statline/internal/resolve"
)

const capabilitiesText = `I'm a basketball stats assistant. Here's what I can help with:

Game information:
- Match scores and results
- Live game updates
- Schedules for today, tomorrow, or a specific day

Player statistics:
- Recent game stat lines (points, rebounds, assists, steals, blocks)
- Season averages
- Top scorer of a team's latest game

Ask me something like:
- "How many points did LeBron James score?"
- "Did the Knicks win their last game?"
- "What games are on tomorrow?"`

// general answers greetings and capability questions with canned text.
func (e *Engine) general(query model.Query) *model.Response {
	q := strings.ToLower(strings.TrimSpace(query.Text))

	var text string
	switch {
	case containsAny(q, "hello", "hi", "hey", "greetings", "good morning", "good afternoon", "good evening"):
		text = "Hello! I'm your basketball stats assistant. Ask me about game scores, player statistics, or schedules."
	case containsAny(q, "what can you do", "what do you do", "what are you", "who are you",
		"capabilities", "features", "what questions", "what can i ask", "how can you help",
		"what do you know", "what information", "tell me about yourself", "introduce yourself", "help"):
		text = capabilitiesText
	default:
		text = "I'm a basketball stats assistant. Ask me about game scores, player stats, or schedules."
	}

	return textResponse(query, model.IntentGeneral, text)
}

// schedule lists the scoreboard for a date.
func (e *Engine) schedule(ctx context.Context, query model.Query, date time.Time) (*model.Response, error) {
	category := model.IntentSchedule
	if !sameDay(date, time.Now()) {
		category = model.IntentDateSchedule
	}

	if e.deps.Schedule == nil {
		return textResponse(query, category, "Schedule lookups aren't available right now."), nil
	}

	games, err := e.deps.Schedule.Games(ctx, date)
	if err != nil {
		e.logger.Debug("schedule fetch failed", zap.Error(err))
		return textResponse(query, category,
			"Sorry, I couldn't retrieve the schedule right now."), nil
	}

	day := date.Format("2006-01-02")
	if len(games) == 0 {
		return textResponse(query, category,
			fmt.Sprintf("No NBA games scheduled for %s.", day)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "NBA games for %s:\n", day)
	for _, g := range games {
		if g.AwayScore != "" || g.HomeScore != "" {
			fmt.Fprintf(&b, "- %s: %s %s, %s %s (%s)\n", g.Short, g.Away, g.AwayScore, g.Home, g.HomeScore, g.Status)
		} else {
			fmt.Fprintf(&b, "- %s (%s)\n", g.Short, g.Status)
		}
	}

	resp := textResponse(query, category, strings.TrimRight(b.String(), "\n"))
	resp.Payload = games
	resp.Provenance.Source = model.ProviderESPN
	resp.Provenance.FetchedAt = time.Now()
	return resp, nil
}

// liveGames lists games currently in progress.
func (e *Engine) liveGames(ctx context.Context, query model.Query) (*model.Response, error) {
	if e.deps.Schedule == nil {
		return textResponse(query, model.IntentLiveGame, "Live game lookups aren't available right now."), nil
	}

	games, err := e.deps.Schedule.Games(ctx, time.Now())
	if err != nil {
		e.logger.Debug("live game fetch failed", zap.Error(err))
		return textResponse(query, model.IntentLiveGame,
			"Sorry, I couldn't check the live games right now."), nil
	}

	var b strings.Builder
	count := 0
	for _, g := range games {
		if !g.Live {
			continue
		}
		count++
		fmt.Fprintf(&b, "- %s: %s %s, %s %s (%s)\n", g.Short, g.Away, g.AwayScore, g.Home, g.HomeScore, g.Status)
	}

	if count == 0 {
		return textResponse(query, model.IntentLiveGame, "No games are live right now."), nil
	}

	resp := textResponse(query, model.IntentLiveGame,
		fmt.Sprintf("Live right now:\n%s", strings.TrimRight(b.String(), "\n")))
	resp.Provenance.Source = model.ProviderESPN
	resp.Provenance.FetchedAt = time.Now()
	return resp, nil
}

// matchStats reports a team's most recent final result.
func (e *Engine) matchStats(ctx context.Context, query model.Query) (*model.Response, error) {
	team := findTeam(query.Text)
	if team == "" {
		return textResponse(query, model.IntentMatchStats,
			"I couldn't tell which team you're asking about."), nil
	}
	if e.deps.Schedule == nil {
		return textResponse(query, model.IntentMatchStats, "Game result lookups aren't available right now."), nil
	}

	abbrev := resolve.TeamAbbrev(team)
	lookback := e.cfg.Providers.LookbackDays
	if lookback <= 0 {
		lookback = 14
	}

	for day := 0; day <= lookback; day++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		games, err := e.deps.Schedule.Games(ctx, time.Now().AddDate(0, 0, -day))
		if err != nil {
			continue
		}
		for _, g := range games {
			if !g.Final || !gameInvolves(g, team, abbrev) {
				continue
			}

			text := describeResult(g, abbrev)
			resp := textResponse(query, model.IntentMatchStats, text)
			resp.Payload = g
			resp.Provenance.Source = model.ProviderESPN
			resp.Provenance.FetchedAt = time.Now()
			return resp, nil
		}
	}

	return textResponse(query, model.IntentMatchStats,
		fmt.Sprintf("I couldn't find a recent final result for the %s.", titleWord(team))), nil
}

// teamScoringLeader reports the top scorer of a team's latest game.
func (e *Engine) teamScoringLeader(ctx context.Context, query model.Query) (*model.Response, error) {
	team := findTeam(query.Text)
	if team == "" {
		return textResponse(query, model.IntentTeamScoringLeader,
			"I couldn't tell which team you're asking about."), nil
	}
	if e.deps.Leaders == nil {
		return textResponse(query, model.IntentTeamScoringLeader,
			"Scoring leader lookups aren't available right now."), nil
	}

	line, err := e.deps.Leaders.TeamTopScorer(ctx, team)
	if err != nil {
		e.logger.Debug("top scorer lookup failed",
			zap.String("team", team), zap.Error(err))
		return textResponse(query, model.IntentTeamScoringLeader,
			fmt.Sprintf("Sorry, I couldn't find the scoring leader for the %s's latest game.", titleWord(team))), nil
	}

	text := fmt.Sprintf("%s led all scorers with %d points (%d rebounds, %d assists) in %s vs %s on %s.",
		line.PlayerName, line.Points, line.Rebounds, line.Assists, line.Team1, line.Team2, line.MatchDate)

	resp := textResponse(query, model.IntentTeamScoringLeader, text)
	resp.Payload = line
	resp.Provenance.Source = model.ProviderESPN
	resp.Provenance.FetchedAt = time.Now()
	return resp, nil
}

// reduced covers the categories with no data source wired in. The answer is
// honest about scope instead of guessing.
func (e *Engine) reduced(query model.Query, category model.Intent) *model.Response {
	var text string
	switch category {
	case model.IntentStandings:
		text = "I don't have standings data wired up yet. I can answer game results, player stats, and schedules."
	case model.IntentInjuries:
		text = "I don't have injury reports wired up yet. I can answer game results, player stats, and schedules."
	case model.IntentTeamNews, model.IntentArticles:
		text = "I don't have a news or article source configured. I can answer game results, player stats, and schedules."
	default:
		text = "I'm not sure how to answer that. Ask me about game results, player stats, or schedules."
	}
	return textResponse(query, category, text)
}

func gameInvolves(g provider.Game, team, abbrev string) bool {
	return strings.Contains(strings.ToLower(g.Name), team) ||
		strings.EqualFold(g.Away, abbrev) || strings.EqualFold(g.Home, abbrev)
}

// describeResult renders a final score from the named team's perspective.
func describeResult(g provider.Game, abbrev string) string {
	awayScore, err1 := strconv.Atoi(g.AwayScore)
	homeScore, err2 := strconv.Atoi(g.HomeScore)
	if err1 != nil || err2 != nil {
		return fmt.Sprintf("%s finished %s-%s on %s (%s).", g.Short, g.AwayScore, g.HomeScore, g.Date, g.Status)
	}

	teamIsAway := strings.EqualFold(g.Away, abbrev)
	teamScore, oppScore := awayScore, homeScore
	teamName, oppName := g.Away, g.Home
	if !teamIsAway {
		teamScore, oppScore = homeScore, awayScore
		teamName, oppName = g.Home, g.Away
	}

	if teamScore > oppScore {
		return fmt.Sprintf("%s beat %s %d-%d on %s.", teamName, oppName, teamScore, oppScore, g.Date)
	}
	if teamScore < oppScore {
		return fmt.Sprintf("%s lost to %s %d-%d on %s.", teamName, oppName, oppScore, teamScore, g.Date)
	}
	return fmt.Sprintf("%s and %s finished level at %d on %s.", teamName, oppName, teamScore, g.Date)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
