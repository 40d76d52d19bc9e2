package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/statlinehq/statline/internal/model"
	"github.com/statlinehq/statline/internal/resolve"
)

// Chain tries providers strictly in configured order and returns the first
// usable payload. Every provider failure is recorded, never raised: the
// caller always gets a FetchResult, and on exhaustion its Error field holds
// the per-provider diagnostics in the order they were tried.
type Chain struct {
	providers []Provider
	timeout   time.Duration
	logger    *zap.Logger
}

// NewChain creates a fallback chain over the given providers. The slice
// order is the try order.
func NewChain(timeout time.Duration, logger *zap.Logger, providers ...Provider) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chain{
		providers: providers,
		timeout:   timeout,
		logger:    logger,
	}
}

// Fetch walks the chain until one provider yields a non-empty stat line
// that survives the opponent filter. A provider returning an empty line is
// a failure like any other; the walk continues.
func (c *Chain) Fetch(ctx context.Context, entity model.EntityReference, opponent string) model.FetchResult {
	var diags []string

	for _, p := range c.providers {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		line, err := p.FetchLatest(callCtx, entity, opponent)
		cancel()

		switch {
		case err != nil:
			diags = append(diags, fmt.Sprintf("%s: %v", p.Name(), err))
			c.logger.Debug("provider failed",
				zap.String("provider", string(p.Name())),
				zap.String("player", entity.CanonicalName),
				zap.Error(err))
			continue
		case line == nil || line.Empty():
			diags = append(diags, fmt.Sprintf("%s: %v", p.Name(), ErrEmptyPayload))
			continue
		}

		// The opponent filter runs here so every provider gets the same
		// treatment, including ones that ignore the opponent hint.
		if opponent != "" && !matchesOpponent(line, opponent) {
			diags = append(diags, fmt.Sprintf("%s: no recent game against %s", p.Name(), opponent))
			continue
		}

		c.logger.Debug("provider succeeded",
			zap.String("provider", string(p.Name())),
			zap.String("player", line.PlayerName),
			zap.String("date", line.MatchDate))
		return model.FetchResult{
			Success:   true,
			Data:      line,
			Source:    p.Name(),
			FetchedAt: time.Now(),
		}
	}

	return model.FetchResult{
		Success:   false,
		Source:    model.ProviderNone,
		Error:     strings.Join(diags, "; "),
		FetchedAt: time.Now(),
	}
}

// matchesOpponent checks whether the line's game actually involved the
// requested opponent. The player's own team never counts.
func matchesOpponent(line *model.StatLine, opponent string) bool {
	opp := strings.ToLower(strings.TrimSpace(opponent))
	abbrev := strings.ToLower(resolve.TeamAbbrev(opponent))
	own := strings.ToLower(line.PlayerTeam)

	for _, team := range []string{line.Team1, line.Team2} {
		t := strings.ToLower(team)
		if t == "" || (own != "" && t == own) {
			continue
		}
		if strings.Contains(t, opp) || t == abbrev {
			return true
		}
	}
	return false
}
