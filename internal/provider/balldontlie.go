package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/statlinehq/statline/internal/model"
)

// BallDontLie is the first fallback. It has a proper per-player API, so a
// fetch is two calls: search the player, then pull their recent stat rows.
type BallDontLie struct {
	client    *http.Client
	baseURL   string
	apiKey    string
	userAgent string
	logger    *zap.Logger
}

// NewBallDontLie creates the Ball Don't Lie provider.
func NewBallDontLie(client *http.Client, baseURL, apiKey, userAgent string, logger *zap.Logger) *BallDontLie {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BallDontLie{
		client:    client,
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		userAgent: userAgent,
		logger:    logger,
	}
}

// Name implements Provider.
func (b *BallDontLie) Name() model.ProviderID { return model.ProviderBallDontLie }

// FetchLatest returns the player's most recent stat row. The opponent hint
// is ignored here; the chain filters afterwards.
func (b *BallDontLie) FetchLatest(ctx context.Context, entity model.EntityReference, _ string) (*model.StatLine, error) {
	lines, err := b.gameLog(ctx, entity.CanonicalName)
	if err != nil {
		return nil, err
	}
	return &lines[0], nil
}

// RecentLines returns up to n of the player's most recent stat rows, newest
// first. The trend handler compares them against season averages.
func (b *BallDontLie) RecentLines(ctx context.Context, entity model.EntityReference, n int) ([]model.StatLine, error) {
	lines, err := b.gameLog(ctx, entity.CanonicalName)
	if err != nil {
		return nil, err
	}
	if n > 0 && len(lines) > n {
		lines = lines[:n]
	}
	return lines, nil
}

// gameLog pulls the player's current-season stat rows sorted newest first.
// Returns ErrNotFound rather than an empty slice.
func (b *BallDontLie) gameLog(ctx context.Context, name string) ([]model.StatLine, error) {
	player, err := b.searchPlayer(ctx, name)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("player_ids[]", fmt.Sprintf("%d", player.ID))
	q.Set("seasons[]", fmt.Sprintf("%d", currentSeason(time.Now())))
	q.Set("per_page", "25")

	var stats bdlStatsResponse
	if err := b.get(ctx, "/stats?"+q.Encode(), &stats); err != nil {
		return nil, fmt.Errorf("fetch stats: %w", err)
	}
	if len(stats.Data) == 0 {
		return nil, ErrNotFound
	}

	// Rows are not guaranteed to arrive sorted.
	sort.Slice(stats.Data, func(i, j int) bool {
		return stats.Data[i].Game.Date > stats.Data[j].Game.Date
	})

	lines := make([]model.StatLine, 0, len(stats.Data))
	for _, row := range stats.Data {
		lines = append(lines, model.StatLine{
			PlayerName: player.FullName(),
			Points:     row.Pts,
			Rebounds:   row.Reb,
			Assists:    row.Ast,
			Steals:     row.Stl,
			Blocks:     row.Blk,
			MatchDate:  truncateDate(row.Game.Date),
			Team1:      row.Game.VisitorTeam.Abbreviation,
			Team2:      row.Game.HomeTeam.Abbreviation,
			PlayerTeam: row.Team.Abbreviation,
		})
	}
	return lines, nil
}

// SeasonAverages returns the player's per-game averages for the current
// season. Not part of the Provider interface; the season-averages handler
// uses it directly.
func (b *BallDontLie) SeasonAverages(ctx context.Context, entity model.EntityReference) (*model.SeasonAverages, error) {
	player, err := b.searchPlayer(ctx, entity.CanonicalName)
	if err != nil {
		return nil, err
	}

	season := currentSeason(time.Now())
	q := url.Values{}
	q.Set("player_ids[]", fmt.Sprintf("%d", player.ID))
	q.Set("season", fmt.Sprintf("%d", season))

	var resp bdlSeasonAveragesResponse
	if err := b.get(ctx, "/season_averages?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("fetch season averages: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, ErrNotFound
	}

	avg := resp.Data[0]
	return &model.SeasonAverages{
		PlayerName:  player.FullName(),
		GamesPlayed: avg.GamesPlayed,
		Points:      avg.Pts,
		Rebounds:    avg.Reb,
		Assists:     avg.Ast,
		Steals:      avg.Stl,
		Blocks:      avg.Blk,
		Season:      fmt.Sprintf("%d-%d", season, season+1),
	}, nil
}

// searchPlayer finds the player record, preferring an exact name match and
// falling back to all-parts containment.
func (b *BallDontLie) searchPlayer(ctx context.Context, name string) (*bdlPlayer, error) {
	q := url.Values{}
	q.Set("search", name)
	q.Set("per_page", "50")

	var resp bdlPlayersResponse
	if err := b.get(ctx, "/players?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("search player: %w", err)
	}

	target := strings.ToLower(name)
	for i := range resp.Data {
		if strings.ToLower(resp.Data[i].FullName()) == target {
			return &resp.Data[i], nil
		}
	}
	for i := range resp.Data {
		if nameMatches(resp.Data[i].FullName(), name) {
			return &resp.Data[i], nil
		}
	}
	return nil, ErrNotFound
}

func (b *BallDontLie) get(ctx context.Context, path string, out any) error {
	headers := map[string]string{}
	if b.apiKey != "" {
		headers["Authorization"] = b.apiKey
	}
	return getJSON(ctx, b.client, b.baseURL+path, b.userAgent, headers, out)
}

// currentSeason returns the starting year of the season containing now.
// Seasons roll over in October.
func currentSeason(now time.Time) int {
	if now.Month() >= time.October {
		return now.Year()
	}
	return now.Year() - 1
}

type bdlPlayersResponse struct {
	Data []bdlPlayer `json:"data"`
}

type bdlPlayer struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (p bdlPlayer) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

type bdlTeam struct {
	Abbreviation string `json:"abbreviation"`
	FullName     string `json:"full_name"`
}

type bdlStatsResponse struct {
	Data []struct {
		Pts  int `json:"pts"`
		Reb  int `json:"reb"`
		Ast  int `json:"ast"`
		Stl  int `json:"stl"`
		Blk  int `json:"blk"`
		Game struct {
			Date        string  `json:"date"`
			HomeTeam    bdlTeam `json:"home_team"`
			VisitorTeam bdlTeam `json:"visitor_team"`
		} `json:"game"`
		Team bdlTeam `json:"team"`
	} `json:"data"`
}

type bdlSeasonAveragesResponse struct {
	Data []struct {
		GamesPlayed int     `json:"games_played"`
		Pts         float64 `json:"pts"`
		Reb         float64 `json:"reb"`
		Ast         float64 `json:"ast"`
		Stl         float64 `json:"stl"`
		Blk         float64 `json:"blk"`
	} `json:"data"`
}
