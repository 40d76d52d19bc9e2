package intent

import (
	"regexp"
	"strings"

	"github.com/statlinehq/statline/internal/model"
	"github.com/statlinehq/statline/internal/resolve"
)

var topNPattern = regexp.MustCompile(`top\s+\d+`)

// Classifier routes a raw question to exactly one intent category.
// Classification is pure string work: no I/O, no retries, O(categories ×
// keywords) per question.
type Classifier struct {
	cfg model.ClassifierConfig
}

// NewClassifier creates a classifier with the given thresholds.
func NewClassifier(cfg model.ClassifierConfig) *Classifier {
	return &Classifier{cfg: cfg}
}

// Classify returns the single best category for the question. It always
// returns something: an empty scoreboard yields the configured fallback
// category, and a close multi-way tie yields IntentMixed.
func (c *Classifier) Classify(question string) model.Intent {
	q := strings.ToLower(strings.TrimSpace(question))

	if intent, ok := c.shortCircuit(q); ok {
		return intent
	}

	return c.resolveScores(q, c.score(q))
}

// shortCircuit evaluates the fixed-priority rules that return immediately.
// The order here is the priority order; reordering entries changes behavior.
func (c *Classifier) shortCircuit(q string) (model.Intent, bool) {
	// 1. Greetings and capability questions always win.
	if containsAny(q, greetingTriggers) || q == "hi" || q == "hi!" {
		return model.IntentGeneral, true
	}

	// 2. "Top N" plus a statistic name is always an aggregate stats query.
	hasTop := strings.Contains(q, "top")
	if hasTop && (strings.Contains(q, "player") || containsAny(q, statNames)) {
		return model.IntentPlayerStats, true
	}

	// 3. Triple/double-double phrasing near a recognized subject.
	if containsAny(q, doubleTriggers) && hasKnownSubject(q) {
		return model.IntentPlayerStats, true
	}

	// 4. "Tomorrow" (including common misspellings) bypasses scoring
	// entirely, even when stat keywords are also present.
	if containsAny(q, tomorrowVariants) || strings.Contains(q, "day after") {
		return model.IntentDateSchedule, true
	}

	// 5. Composite aggregate-leader rule: a leader phrase, a game
	// reference, and a known team simultaneously.
	if containsAny(q, scoringLeaderTriggers) &&
		containsAny(q, gameRefTriggers) && hasKnownTeam(q) {
		return model.IntentTeamScoringLeader, true
	}
	// A direct leader phrase alone still wins over keyword counting,
	// which would otherwise let "game" pull these toward match_stats.
	if containsAny(q, scoringLeaderTriggers[:7]) {
		return model.IntentTeamScoringLeader, true
	}

	// 6. "Top N" with a team or conference is a standings question.
	if topNPattern.MatchString(q) && (hasKnownTeam(q) || containsAny(q, conferenceWords)) {
		return model.IntentStandings, true
	}

	// 7. "Did <team> win their last game" and its variants.
	if hasKnownTeam(q) && c.isTeamResultQuery(q) {
		return model.IntentMatchStats, true
	}

	return "", false
}

func (c *Classifier) isTeamResultQuery(q string) bool {
	hasRecentGame := containsAny(q, []string{
		"most recent game", "last game", "latest game", "most recent",
		"last match", "latest match",
	})
	hasDidWin := containsAny(q, []string{"did", "win", "won", "lose", "lost"})
	if hasDidWin && hasRecentGame {
		return true
	}

	// "last 5 games" style requests for multiple results.
	hasMultiple := containsAny(q, []string{"last", "recent", "previous", "past"}) &&
		containsAny(q, []string{"games", "game results", "results", "matches", "matchups"}) &&
		(containsAny(q, []string{"3", "4", "5", "10", "three", "four", "five", "ten"}) ||
			containsAny(q, []string{"show me", "give me", "what are"}))
	if hasMultiple {
		return true
	}

	// Point-differential losses ("lose by", "lost by").
	hasLoseBy := containsAny(q, []string{"lose by", "lost by", "losing by", "points did", "how many points"}) &&
		(strings.Contains(q, "lose") || strings.Contains(q, "lost"))
	return hasLoseBy
}

// score runs the uniform counting loop and applies the structural boosts.
func (c *Classifier) score(q string) map[model.Intent]int {
	scores := make(map[model.Intent]int, len(ruleTable)+1)
	for _, r := range ruleTable {
		n := 0
		for _, trigger := range r.Triggers {
			if strings.Contains(q, trigger) {
				n++
			}
		}
		scores[r.Category] = n
	}

	hasSubject := hasKnownSubject(q)
	hasSeason := strings.Contains(q, "season")
	hasRecent := strings.Contains(q, "recent") || strings.Contains(q, "latest")
	hasDate := containsAny(q, dateKeywords)

	if hasSubject && !hasSeason {
		scores[model.IntentPlayerStats] += 2
	}
	if hasSubject && hasRecent {
		scores[model.IntentPlayerStats] += 3
	}
	if hasSubject {
		scores[model.IntentPlayerTrend] += 2
		if hasSeason {
			scores[model.IntentSeasonAverages] += 5
		} else {
			scores[model.IntentSeasonAverages] += 2
		}
	}
	if strings.Contains(q, "live") {
		scores[model.IntentLiveGame] += 2
	}
	if containsAny(q, explicitArticlePhrases) {
		scores[model.IntentArticles] += 5
	}

	// A date keyword moves all schedule weight onto date_schedule.
	scores[model.IntentDateSchedule] = scores[model.IntentSchedule]
	if hasDate {
		scores[model.IntentDateSchedule] += 5
		scores[model.IntentSchedule] = 0
	}

	return scores
}

// categoryOrder fixes iteration order so argmax ties break deterministically.
var categoryOrder = []model.Intent{
	model.IntentMatchStats,
	model.IntentPlayerStats,
	model.IntentSchedule,
	model.IntentDateSchedule,
	model.IntentLiveGame,
	model.IntentStandings,
	model.IntentInjuries,
	model.IntentPlayerTrend,
	model.IntentSeasonAverages,
	model.IntentTeamNews,
	model.IntentArticles,
}

func (c *Classifier) resolveScores(q string, scores map[model.Intent]int) model.Intent {
	maxScore := 0
	best := model.Intent(c.cfg.FallbackCategory)
	for _, cat := range categoryOrder {
		if scores[cat] > maxScore {
			maxScore = scores[cat]
			best = cat
		}
	}

	if maxScore == 0 {
		// The system always classifies something.
		return model.Intent(c.cfg.FallbackCategory)
	}

	// An explicit articles mention is a user assertion of intent and
	// overrides any other positive score.
	explicitArticle := containsAny(q, explicitArticlePhrases)
	if explicitArticle && scores[model.IntentArticles] > 0 {
		return model.IntentArticles
	}

	// Collect categories scoring at least ratio×max, excluding zeros.
	ratio := c.cfg.HighScoreRatio
	if ratio <= 0 {
		ratio = 0.5
	}
	cutoff := float64(maxScore) * ratio
	minHigh := maxScore
	highCount := 0
	for _, cat := range categoryOrder {
		s := scores[cat]
		if s > 0 && float64(s) >= cutoff {
			highCount++
			if s < minHigh {
				minHigh = s
			}
		}
	}

	// Close scores are truly mixed; a clear leader wins despite company.
	if highCount > 1 && !explicitArticle && maxScore-minHigh <= c.cfg.MixedSpread {
		return model.IntentMixed
	}

	return best
}

func containsAny(q string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(q, p) {
			return true
		}
	}
	return false
}

// hasKnownSubject reports whether the question mentions any player from the
// shared table, by full name or by a single name part.
func hasKnownSubject(q string) bool {
	for _, name := range resolve.KnownPlayerNames() {
		if strings.Contains(q, name) {
			return true
		}
		for _, part := range strings.Fields(name) {
			if len(part) > 3 && strings.Contains(q, part) {
				return true
			}
		}
	}
	return false
}

func hasKnownTeam(q string) bool {
	for _, team := range resolve.TeamNames() {
		if strings.Contains(q, team) {
			return true
		}
	}
	return false
}
