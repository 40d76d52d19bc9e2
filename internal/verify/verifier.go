package verify

import (
	"fmt"
	"strings"

	"github.com/statlinehq/statline/internal/model"
)

// Verifier runs the plausibility checks on a fetched stat line and produces
// a verification report. Checks never call out anywhere; the whole pass is
// pure so the same line always yields the same report.
type Verifier struct {
	cfg model.VerifierConfig
}

// NewVerifier creates a new verifier with the given bounds.
func NewVerifier(cfg model.VerifierConfig) *Verifier {
	return &Verifier{cfg: cfg}
}

// Check runs every check and returns the aggregate report. Confidence is the
// fraction of checks that passed; a line is verified when confidence reaches
// the configured cutoff.
func (v *Verifier) Check(line *model.StatLine) model.VerificationReport {
	var notes []string
	passed := 0
	total := 0

	run := func(ok bool, note string) {
		total++
		if ok {
			passed++
			return
		}
		notes = append(notes, note)
	}

	if line == nil {
		return model.VerificationReport{Notes: "no stat line to verify"}
	}

	// 1. Identity: the line must name a player.
	run(line.PlayerName != "", "missing player name")

	// 2. Presence: at least one core metric carries a usable value.
	run(!line.Empty(), "no usable metric values")

	// 3. Sanity: every metric sits inside plausible bounds.
	run(v.inBounds(line), v.boundsNote(line))

	// 4. Temporal: a game date must be attached.
	run(line.MatchDate != "", "missing match date")

	// 5. Context: both participating teams must be identified.
	run(line.Team1 != "" && line.Team2 != "", "missing team context")

	confidence := float64(passed) / float64(total)
	return model.VerificationReport{
		Verified:   confidence >= v.cfg.VerifiedCutoff,
		Confidence: confidence,
		Notes:      strings.Join(notes, "; "),
	}
}

func (v *Verifier) inBounds(line *model.StatLine) bool {
	if line.Points < 0 || line.Points > v.cfg.MaxPoints {
		return false
	}
	if line.Rebounds < 0 || line.Rebounds > v.cfg.MaxRebounds {
		return false
	}
	if line.Assists < 0 || line.Assists > v.cfg.MaxAssists {
		return false
	}
	return line.Steals >= 0 && line.Blocks >= 0
}

func (v *Verifier) boundsNote(line *model.StatLine) string {
	switch {
	case line.Points > v.cfg.MaxPoints:
		return fmt.Sprintf("points %d above plausible maximum %d", line.Points, v.cfg.MaxPoints)
	case line.Rebounds > v.cfg.MaxRebounds:
		return fmt.Sprintf("rebounds %d above plausible maximum %d", line.Rebounds, v.cfg.MaxRebounds)
	case line.Assists > v.cfg.MaxAssists:
		return fmt.Sprintf("assists %d above plausible maximum %d", line.Assists, v.cfg.MaxAssists)
	case line.Points < 0 || line.Rebounds < 0 || line.Assists < 0 || line.Steals < 0 || line.Blocks < 0:
		return "negative metric value"
	}
	return "metric out of bounds"
}
