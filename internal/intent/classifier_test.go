package intent

import (
	"testing"

	"github.com/statlinehq/statline/internal/model"
)

func newTestClassifier() *Classifier {
	return NewClassifier(model.DefaultConfig().Classifier)
}

func TestClassify_GreetingAlwaysWins(t *testing.T) {
	c := newTestClassifier()

	// Priority invariant: an explicit greeting beats every other keyword
	// in the question.
	questions := []string{
		"hello",
		"hi",
		"hey, how many points did LeBron James score yesterday?",
		"good morning, show me the standings",
		"what can you do",
	}

	for _, q := range questions {
		if got := c.Classify(q); got != model.IntentGeneral {
			t.Errorf("Classify(%q) = %q, want general", q, got)
		}
	}
}

func TestClassify_TomorrowShortCircuitSkipsScoring(t *testing.T) {
	c := newTestClassifier()

	// Even with stat keywords present, the temporal rule returns before
	// the scoring phase runs.
	questions := []string{
		"show me schedules for tomorrow and how many points did Curry score",
		"games tommorow",
		"any games tomorow?",
		"what about the day after tomorrow",
	}

	for _, q := range questions {
		if got := c.Classify(q); got != model.IntentDateSchedule {
			t.Errorf("Classify(%q) = %q, want date_schedule", q, got)
		}
	}
}

func TestClassify_TopNStats(t *testing.T) {
	c := newTestClassifier()

	questions := []string{
		"top 5 players by points",
		"who are the top 10 in assists",
		"top players in rebounds this year",
	}

	for _, q := range questions {
		if got := c.Classify(q); got != model.IntentPlayerStats {
			t.Errorf("Classify(%q) = %q, want player_stats", q, got)
		}
	}
}

func TestClassify_TopNWithTeamIsStandings(t *testing.T) {
	c := newTestClassifier()

	questions := []string{
		"are the thunder still in the top 3 of the west?",
		"is the team in the top 5 of the eastern conference",
	}

	for _, q := range questions {
		if got := c.Classify(q); got != model.IntentStandings {
			t.Errorf("Classify(%q) = %q, want standings", q, got)
		}
	}
}

func TestClassify_TeamScoringLeader(t *testing.T) {
	c := newTestClassifier()

	questions := []string{
		"who led the scoring in the lakers game",
		"leading scorer for the celtics last game",
	}

	for _, q := range questions {
		if got := c.Classify(q); got != model.IntentTeamScoringLeader {
			t.Errorf("Classify(%q) = %q, want team_scoring_leader", q, got)
		}
	}
}

func TestClassify_TripleDoubleWithSubject(t *testing.T) {
	c := newTestClassifier()

	q := "how many triple-doubles does Jokic have"
	if got := c.Classify(q); got != model.IntentPlayerStats {
		t.Errorf("Classify(%q) = %q, want player_stats", q, got)
	}
}

func TestClassify_DidTeamWin(t *testing.T) {
	c := newTestClassifier()

	q := "did the knicks win their most recent game?"
	if got := c.Classify(q); got != model.IntentMatchStats {
		t.Errorf("Classify(%q) = %q, want match_stats", q, got)
	}
}

func TestClassify_SeasonAverages(t *testing.T) {
	c := newTestClassifier()

	q := "what are jokic's season averages"
	if got := c.Classify(q); got != model.IntentSeasonAverages {
		t.Errorf("Classify(%q) = %q, want season_averages", q, got)
	}
}

func TestClassify_ExplicitArticlesOverride(t *testing.T) {
	c := newTestClassifier()

	q := "what do the articles say about the lakers defense"
	if got := c.Classify(q); got != model.IntentArticles {
		t.Errorf("Classify(%q) = %q, want articles", q, got)
	}
}

func TestClassify_FallbackOnZeroScores(t *testing.T) {
	c := newTestClassifier()

	if got := c.Classify("zzzz qqqq"); got != model.IntentArticles {
		t.Errorf("Classify(gibberish) = %q, want fallback articles", got)
	}
}

func TestClassify_FallbackIsConfigurable(t *testing.T) {
	cfg := model.DefaultConfig().Classifier
	cfg.FallbackCategory = string(model.IntentSeasonAverages)
	c := NewClassifier(cfg)

	if got := c.Classify("zzzz qqqq"); got != model.IntentSeasonAverages {
		t.Errorf("Classify(gibberish) = %q, want configured fallback", got)
	}
}

func TestClassify_MixedOnCloseScores(t *testing.T) {
	c := newTestClassifier()

	// Player-stat keywords and a player subject spread points across
	// player_stats, season_averages, and player_trend within the mixed
	// threshold.
	q := "how many points did lebron james score?"
	if got := c.Classify(q); got != model.IntentMixed {
		t.Errorf("Classify(%q) = %q, want mixed", q, got)
	}
}

func TestClassify_ClearWinnerDespiteCompany(t *testing.T) {
	cfg := model.DefaultConfig().Classifier
	cfg.MixedSpread = 0 // any spread resolves to the winner
	c := NewClassifier(cfg)

	q := "how many points did lebron james score?"
	if got := c.Classify(q); got != model.IntentPlayerStats {
		t.Errorf("Classify(%q) = %q, want player_stats with spread 0", q, got)
	}
}

func TestClassify_NoIO(t *testing.T) {
	// Classification of a long question must stay cheap; this is a smoke
	// test that nothing blocks.
	c := newTestClassifier()
	q := "tell me the full breakdown of every statistic for every player in the league"
	for i := 0; i < 1000; i++ {
		c.Classify(q)
	}
}
