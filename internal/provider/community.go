package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/statlinehq/statline/internal/model"
	"github.com/statlinehq/statline/internal/util"
	"github.com/statlinehq/statline/internal/worker"
)

// Community scrapes a community-maintained box score page. It is the only
// provider doing HTML work, so it alone carries the robots.txt gate and the
// per-host rate limiter.
//
// Expected table row layout: player, date, matchup ("AWY @ HOM"), pts, reb,
// ast, stl, blk.
type Community struct {
	client        *http.Client
	pageURL       string
	userAgent     string
	respectRobots bool
	robots        *util.RobotsChecker
	limiter       *worker.Limiter
	logger        *zap.Logger
}

// NewCommunity creates the community scraper provider.
func NewCommunity(client *http.Client, pageURL, userAgent string, respectRobots bool,
	robots *util.RobotsChecker, limiter *worker.Limiter, logger *zap.Logger) *Community {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Community{
		client:        client,
		pageURL:       pageURL,
		userAgent:     userAgent,
		respectRobots: respectRobots,
		robots:        robots,
		limiter:       limiter,
		logger:        logger,
	}
}

// Name implements Provider.
func (c *Community) Name() model.ProviderID { return model.ProviderCommunity }

// FetchLatest scrapes the page and returns the newest row for the player.
func (c *Community) FetchLatest(ctx context.Context, entity model.EntityReference, _ string) (*model.StatLine, error) {
	if c.pageURL == "" {
		return nil, fmt.Errorf("no community source configured")
	}

	if c.respectRobots && c.robots != nil {
		allowed, delay, err := c.robots.CanFetch(ctx, c.pageURL)
		if err != nil {
			return nil, fmt.Errorf("robots check: %w", err)
		}
		if !allowed {
			return nil, fmt.Errorf("disallowed by robots.txt")
		}
		if c.limiter != nil {
			if err := c.limiter.WaitWithDelay(ctx, c.pageURL, delay); err != nil {
				return nil, err
			}
		}
	} else if c.limiter != nil {
		if err := c.limiter.Wait(ctx, c.pageURL); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	var best *model.StatLine
	for _, row := range tableRows(doc) {
		line := rowToLine(row)
		if line == nil || !nameMatches(line.PlayerName, entity.CanonicalName) {
			continue
		}
		if best == nil || line.MatchDate > best.MatchDate {
			best = line
		}
	}
	if best == nil {
		return nil, ErrNotFound
	}
	return best, nil
}

// tableRows collects the cell texts of every <tr> in the document.
func tableRows(doc *html.Node) [][]string {
	var rows [][]string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var cells []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					cells = append(cells, strings.TrimSpace(nodeText(c)))
				}
			}
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return rows
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}

// rowToLine maps one table row into a stat line. Header rows and rows with
// non-numeric metric cells come back nil.
func rowToLine(cells []string) *model.StatLine {
	if len(cells) < 8 {
		return nil
	}

	metrics := make([]int, 5)
	for i := 0; i < 5; i++ {
		n := statAt(cells[3:8], i)
		if cells[3+i] != "" && cells[3+i] != "0" && n == 0 {
			// Non-numeric cell, likely a header row.
			return nil
		}
		metrics[i] = n
	}

	team1, team2 := splitMatchup(cells[2])
	return &model.StatLine{
		PlayerName: cells[0],
		Points:     metrics[0],
		Rebounds:   metrics[1],
		Assists:    metrics[2],
		Steals:     metrics[3],
		Blocks:     metrics[4],
		MatchDate:  cells[1],
		Team1:      team1,
		Team2:      team2,
	}
}

// splitMatchup splits "AWY @ HOM" or "AWY vs HOM" into its two sides.
func splitMatchup(matchup string) (string, string) {
	for _, sep := range []string{"@", " vs ", " v "} {
		if parts := strings.SplitN(matchup, sep, 2); len(parts) == 2 {
			return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		}
	}
	return strings.TrimSpace(matchup), ""
}
