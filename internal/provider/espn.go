package provider

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/statlinehq/statline/internal/model"
)

// ESPN is the authoritative source. It has no per-player endpoint, so a
// fetch walks the daily scoreboards backwards and searches each game's
// box score for the player.
type ESPN struct {
	client    *http.Client
	baseURL   string
	userAgent string
	lookback  int
	logger    *zap.Logger
}

// NewESPN creates the ESPN provider. baseURL is overridable for tests.
func NewESPN(client *http.Client, baseURL, userAgent string, lookbackDays int, logger *zap.Logger) *ESPN {
	if lookbackDays <= 0 {
		lookbackDays = 14
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ESPN{
		client:    client,
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		lookback:  lookbackDays,
		logger:    logger,
	}
}

// Name implements Provider.
func (e *ESPN) Name() model.ProviderID { return model.ProviderESPN }

// FetchLatest walks day by day from today back through the lookback window.
// The first game containing the player wins; an opponent hint narrows the
// walk to games involving that team.
func (e *ESPN) FetchLatest(ctx context.Context, entity model.EntityReference, opponent string) (*model.StatLine, error) {
	for day := 0; day <= e.lookback; day++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		date := time.Now().AddDate(0, 0, -day)
		sb, err := e.scoreboard(ctx, date)
		if err != nil {
			e.logger.Debug("scoreboard fetch failed",
				zap.String("date", date.Format("2006-01-02")), zap.Error(err))
			continue
		}

		for _, event := range sb.Events {
			if opponent != "" && !eventInvolves(event, opponent) {
				continue
			}
			line, err := e.boxscore(ctx, event, entity)
			if err != nil {
				e.logger.Debug("boxscore fetch failed",
					zap.String("event", event.ID), zap.Error(err))
				continue
			}
			if line != nil {
				return line, nil
			}
		}
	}
	return nil, ErrNotFound
}

// Games returns the scoreboard entries for a date, for schedule and live
// game questions.
func (e *ESPN) Games(ctx context.Context, date time.Time) ([]Game, error) {
	sb, err := e.scoreboard(ctx, date)
	if err != nil {
		return nil, err
	}

	games := make([]Game, 0, len(sb.Events))
	for _, ev := range sb.Events {
		game := Game{
			Name:   ev.Name,
			Short:  ev.ShortName,
			Date:   truncateDate(ev.Date),
			Status: ev.Status.Type.Description,
			Live:   ev.Status.Type.State == "in",
			Final:  ev.Status.Type.State == "post",
		}
		for _, comp := range ev.Competitions {
			for _, c := range comp.Competitors {
				switch c.HomeAway {
				case "away":
					game.Away, game.AwayScore = c.Team.Abbreviation, c.Score
				case "home":
					game.Home, game.HomeScore = c.Team.Abbreviation, c.Score
				}
			}
		}
		games = append(games, game)
	}
	return games, nil
}

// TeamTopScorer finds the team's most recent completed game and returns the
// stat line of its highest scorer, searching both rosters.
func (e *ESPN) TeamTopScorer(ctx context.Context, team string) (*model.StatLine, error) {
	for day := 0; day <= e.lookback; day++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		date := time.Now().AddDate(0, 0, -day)
		sb, err := e.scoreboard(ctx, date)
		if err != nil {
			continue
		}

		for _, event := range sb.Events {
			if !eventInvolves(event, team) || event.Status.Type.State != "post" {
				continue
			}
			line, err := e.topScorer(ctx, event)
			if err != nil {
				e.logger.Debug("boxscore fetch failed",
					zap.String("event", event.ID), zap.Error(err))
				continue
			}
			if line != nil {
				return line, nil
			}
		}
	}
	return nil, ErrNotFound
}

func (e *ESPN) topScorer(ctx context.Context, event espnEvent) (*model.StatLine, error) {
	url := fmt.Sprintf("%s/summary?event=%s", e.baseURL, event.ID)
	var summary espnSummary
	if err := getJSON(ctx, e.client, url, e.userAgent, nil, &summary); err != nil {
		return nil, err
	}

	away, home := event.sides()
	gameDate := truncateDate(event.Date)

	var best *model.StatLine
	for _, teamBox := range summary.Boxscore.Players {
		for _, group := range teamBox.Statistics {
			idx := statIndexes(group.Names, group.Labels)
			for _, a := range group.Athletes {
				line := &model.StatLine{
					PlayerName: pickName(a.Athlete.FullName, a.Athlete.DisplayName),
					Points:     statAt(a.Stats, idx.points),
					Rebounds:   statAt(a.Stats, idx.rebounds),
					Assists:    statAt(a.Stats, idx.assists),
					Steals:     statAt(a.Stats, idx.steals),
					Blocks:     statAt(a.Stats, idx.blocks),
					MatchDate:  gameDate,
					Team1:      away,
					Team2:      home,
					PlayerTeam: teamBox.Team.Abbreviation,
				}
				if best == nil || line.Points > best.Points {
					best = line
				}
			}
		}
	}
	if best == nil || best.PlayerName == "" {
		return nil, nil
	}
	return best, nil
}

// Game is one scoreboard entry.
type Game struct {
	Name      string `json:"name"`
	Short     string `json:"short_name"`
	Date      string `json:"date"`
	Status    string `json:"status"`
	Live      bool   `json:"live"`
	Final     bool   `json:"final"`
	Away      string `json:"away"`
	Home      string `json:"home"`
	AwayScore string `json:"away_score"`
	HomeScore string `json:"home_score"`
}

func (e *ESPN) scoreboard(ctx context.Context, date time.Time) (*espnScoreboard, error) {
	url := fmt.Sprintf("%s/scoreboard?dates=%s", e.baseURL, date.Format("20060102"))
	var sb espnScoreboard
	if err := getJSON(ctx, e.client, url, e.userAgent, nil, &sb); err != nil {
		return nil, err
	}
	return &sb, nil
}

// boxscore fetches the event summary and searches it for the player.
// Returns (nil, nil) when the game simply doesn't feature them.
func (e *ESPN) boxscore(ctx context.Context, event espnEvent, entity model.EntityReference) (*model.StatLine, error) {
	url := fmt.Sprintf("%s/summary?event=%s", e.baseURL, event.ID)
	var summary espnSummary
	if err := getJSON(ctx, e.client, url, e.userAgent, nil, &summary); err != nil {
		return nil, err
	}

	away, home := event.sides()
	gameDate := truncateDate(event.Date)

	for _, teamBox := range summary.Boxscore.Players {
		for _, group := range teamBox.Statistics {
			idx := statIndexes(group.Names, group.Labels)
			for _, a := range group.Athletes {
				if !nameMatches(a.Athlete.DisplayName, entity.CanonicalName) &&
					!nameMatches(a.Athlete.FullName, entity.CanonicalName) {
					continue
				}

				line := &model.StatLine{
					PlayerName: pickName(a.Athlete.FullName, a.Athlete.DisplayName, entity.CanonicalName),
					Points:     statAt(a.Stats, idx.points),
					Rebounds:   statAt(a.Stats, idx.rebounds),
					Assists:    statAt(a.Stats, idx.assists),
					Steals:     statAt(a.Stats, idx.steals),
					Blocks:     statAt(a.Stats, idx.blocks),
					MatchDate:  gameDate,
					Team1:      away,
					Team2:      home,
					PlayerTeam: teamBox.Team.Abbreviation,
				}

				// A row of zeros means the player dressed but didn't
				// play; keep searching.
				if line.Empty() {
					continue
				}
				return line, nil
			}
		}
	}
	return nil, nil
}

// eventInvolves reports whether the opponent plays in this event.
func eventInvolves(event espnEvent, opponent string) bool {
	opp := strings.ToLower(opponent)
	for _, comp := range event.Competitions {
		for _, c := range comp.Competitors {
			if strings.Contains(strings.ToLower(c.Team.DisplayName), opp) ||
				strings.EqualFold(c.Team.Abbreviation, opponent) {
				return true
			}
		}
	}
	return false
}

type espnScoreboard struct {
	Events []espnEvent `json:"events"`
}

type espnEvent struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Status    struct {
		Type struct {
			State       string `json:"state"`
			Description string `json:"description"`
		} `json:"type"`
	} `json:"status"`
	Competitions []struct {
		Competitors []struct {
			HomeAway string   `json:"homeAway"`
			Score    string   `json:"score"`
			Team     espnTeam `json:"team"`
		} `json:"competitors"`
	} `json:"competitions"`
}

type espnTeam struct {
	Abbreviation string `json:"abbreviation"`
	DisplayName  string `json:"displayName"`
}

// sides returns (away, home) team abbreviations.
func (ev espnEvent) sides() (string, string) {
	var away, home string
	for _, comp := range ev.Competitions {
		for _, c := range comp.Competitors {
			switch c.HomeAway {
			case "away":
				away = c.Team.Abbreviation
			case "home":
				home = c.Team.Abbreviation
			}
		}
	}
	return away, home
}

type espnSummary struct {
	Boxscore struct {
		Players []struct {
			Team       espnTeam `json:"team"`
			Statistics []struct {
				Names    []string `json:"names"`
				Labels   []string `json:"labels"`
				Athletes []struct {
					Athlete struct {
						ID          string `json:"id"`
						DisplayName string `json:"displayName"`
						FullName    string `json:"fullName"`
					} `json:"athlete"`
					Stats []string `json:"stats"`
				} `json:"athletes"`
			} `json:"statistics"`
		} `json:"players"`
	} `json:"boxscore"`
}

type statIndex struct {
	points, rebounds, assists, steals, blocks int
}

// statIndexes locates the metric columns. The feed sometimes carries
// lowercase names and sometimes display labels; both are tried.
func statIndexes(names, labels []string) statIndex {
	idx := statIndex{points: -1, rebounds: -1, assists: -1, steals: -1, blocks: -1}
	cols := names
	if len(cols) == 0 {
		cols = labels
	}
	for i, col := range cols {
		switch strings.ToLower(col) {
		case "points", "pts":
			idx.points = i
		case "rebounds", "totalrebounds", "reb":
			idx.rebounds = i
		case "assists", "ast":
			idx.assists = i
		case "steals", "stl":
			idx.steals = i
		case "blocks", "blk":
			idx.blocks = i
		}
	}
	return idx
}

func statAt(stats []string, i int) int {
	if i < 0 || i >= len(stats) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(stats[i]))
	if err != nil {
		return 0
	}
	return n
}

func pickName(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

// truncateDate keeps the YYYY-MM-DD prefix of an ISO timestamp.
func truncateDate(iso string) string {
	if len(iso) >= 10 {
		return iso[:10]
	}
	return iso
}
