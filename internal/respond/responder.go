package respond

import (
	"fmt"
	"strings"

	"github.com/statlinehq/statline/internal/model"
)

// Responder turns a fetch outcome into the final answer text. Every number
// in the output is copied from the payload; nothing is ever estimated or
// filled in to smooth the phrasing.
type Responder struct{}

// NewResponder creates a new responder.
func NewResponder() *Responder {
	return &Responder{}
}

// Respond renders the answer for a stat query. Failures render an apology
// chosen by failure class; successful payloads pick a template from the
// question's phrasing.
func (r *Responder) Respond(question string, entity model.EntityReference, result model.FetchResult) string {
	if !result.Success || result.Data == nil {
		return r.failureMessage(entity, result.Error)
	}

	line := result.Data
	if line.Empty() {
		return fmt.Sprintf(
			"I found a recent game for %s but the box score did not include usable stats, so I can't give you numbers I'm not sure about.",
			displayName(entity, line),
		)
	}

	stats := statClause(line)
	name := displayName(entity, line)
	q := strings.ToLower(question)

	switch {
	case strings.Contains(q, " vs ") || strings.Contains(q, " versus ") || strings.Contains(q, "against"):
		if line.Team1 != "" && line.Team2 != "" {
			if line.MatchDate != "" {
				return fmt.Sprintf("%s scored %s in the %s vs %s game on %s.", name, stats, line.Team1, line.Team2, line.MatchDate)
			}
			return fmt.Sprintf("%s scored %s in the %s vs %s game.", name, stats, line.Team1, line.Team2)
		}
	case strings.Contains(q, "recent") || strings.Contains(q, "last game") || strings.Contains(q, "latest"):
		if line.PlayerTeam != "" && line.Team1 != "" && line.Team2 != "" && line.MatchDate != "" {
			return fmt.Sprintf("%s scored %s when %s played %s on %s.", name, stats, line.PlayerTeam, opponentName(line), line.MatchDate)
		}
		if line.MatchDate != "" {
			return fmt.Sprintf("%s scored %s in their game on %s.", name, stats, line.MatchDate)
		}
		return fmt.Sprintf("%s scored %s in their most recent game.", name, stats)
	}

	switch {
	case line.Team1 != "" && line.Team2 != "" && line.MatchDate != "":
		return fmt.Sprintf("%s scored %s in the %s vs %s game on %s.", name, stats, line.Team1, line.Team2, line.MatchDate)
	case line.Team1 != "" && line.Team2 != "":
		return fmt.Sprintf("%s scored %s in the %s vs %s game.", name, stats, line.Team1, line.Team2)
	case line.MatchDate != "":
		return fmt.Sprintf("%s scored %s in their game on %s.", name, stats, line.MatchDate)
	}
	return fmt.Sprintf("%s scored %s.", name, stats)
}

// failureMessage picks the apology by failure class. The canonical name is
// always echoed back so the user can see what was looked up.
func (r *Responder) failureMessage(entity model.EntityReference, diag string) string {
	name := entity.CanonicalName
	if name == "" {
		name = "that player"
	}

	d := strings.ToLower(diag)
	switch {
	case strings.Contains(d, "not found") || strings.Contains(d, "no recent"):
		return fmt.Sprintf("Sorry, I couldn't find any recent game stats for %s. They may not have played recently.", name)
	case strings.Contains(d, "timeout") || strings.Contains(d, "deadline exceeded"):
		return fmt.Sprintf("Sorry, the stats services are responding slowly right now. Please try asking about %s again in a moment.", name)
	default:
		return fmt.Sprintf("Sorry, I wasn't able to retrieve stats for %s right now.", name)
	}
}

// statClause renders the comma-joined metric list. Points, rebounds and
// assists always appear; steals and blocks appear only when positive.
func statClause(line *model.StatLine) string {
	parts := []string{
		plural(line.Points, "point"),
		plural(line.Rebounds, "rebound"),
		plural(line.Assists, "assist"),
	}
	if line.Steals > 0 {
		parts = append(parts, plural(line.Steals, "steal"))
	}
	if line.Blocks > 0 {
		parts = append(parts, plural(line.Blocks, "block"))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// opponentName returns the team the player faced, falling back to the home
// side when the player's own team is unknown.
func opponentName(line *model.StatLine) string {
	if line.PlayerTeam != "" {
		if strings.EqualFold(line.PlayerTeam, line.Team1) {
			return line.Team2
		}
		return line.Team1
	}
	if line.Team2 != "" {
		return line.Team2
	}
	return line.Team1
}

func displayName(entity model.EntityReference, line *model.StatLine) string {
	if line != nil && line.PlayerName != "" {
		return line.PlayerName
	}
	return entity.CanonicalName
}
