package intent

import "github.com/statlinehq/statline/internal/model"

// The classifier is a uniform scoring loop over this table plus an ordered
// short-circuit list, not a cascade of hand-written conditionals. Priority
// lives in the shortCircuits slice where it can be read and tested.

// rule binds a category to its trigger phrases. Triggers are matched as
// substrings of the normalized question; each hit counts one point.
type rule struct {
	Category model.Intent
	Triggers []string
}

var ruleTable = []rule{
	{
		Category: model.IntentMatchStats,
		Triggers: []string{
			"score", "result", "game", "match", "won", "lost", "beat", "defeated",
			"final score", "who won", "outcome", "victory", "defeat", "results",
			"yesterday", "yesterday games", "yesterday results",
		},
	},
	{
		Category: model.IntentPlayerStats,
		Triggers: []string{
			"points", "rebounds", "assists", "steals", "blocks", "stats", "statistics",
			"performance", "how many", "how much", "scored", "player", "players",
			"stat line", "triple-double", "double-double", "double double",
			"triple double", "recent", "latest", "top", "leading", "leader", "leaders",
		},
	},
	{
		Category: model.IntentSchedule,
		Triggers: []string{
			"schedule", "upcoming", "next game", "when", "date", "time", "fixture",
			"play", "match", "game", "upcoming match", "next match", "tomorrow",
			"today", "schedules", "fixtures", "games schedule", "games for today",
			"games today",
		},
	},
	{
		Category: model.IntentArticles,
		Triggers: []string{
			"analysis", "opinion", "news", "article", "articles", "breakdown",
			"explain", "why", "what happened", "story", "report", "coverage",
			"insight", "perspective", "what does", "what do", "say about",
			"says about", "mentioned", "discussed",
		},
	},
	{
		Category: model.IntentLiveGame,
		Triggers: []string{
			"live", "currently playing", "in progress", "right now",
			"happening now", "current game", "ongoing", "playing now",
		},
	},
	{
		Category: model.IntentStandings,
		Triggers: []string{
			"standings", "ranking", "rank", "position", "record", "wins", "losses",
			"conference", "division", "top team", "best record", "seed", "seeds",
			"play-in", "playin", "playoff", "playoffs", "playoff spot",
			"eliminated", "league standings",
		},
	},
	{
		Category: model.IntentInjuries,
		Triggers: []string{
			"injury", "injured", "hurt", "questionable", "probable",
			"injury report", "health", "status", "day-to-day",
		},
	},
	{
		Category: model.IntentPlayerTrend,
		Triggers: []string{
			"trend", "trending", "recent form", "lately", "recently", "improving",
			"declining", "hot streak", "cold streak", "performance trend",
		},
	},
	{
		Category: model.IntentSeasonAverages,
		Triggers: []string{
			"season average", "season stats", "averages", "per game", "season long",
			"yearly", "overall", "total stats", "season averages", "ppg", "rpg",
			"apg", "this season", "season total",
		},
	},
	{
		Category: model.IntentTeamNews,
		Triggers: []string{
			"news", "update", "report", "announcement", "breaking", "trade",
			"signing", "roster", "coaching", "transaction",
		},
	},
}

// greetingTriggers short-circuit to the general category before any scoring.
var greetingTriggers = []string{
	"hello", "hi ", "hey", "greetings", "good morning", "good afternoon",
	"good evening", "what can you do", "what do you do", "what are you",
	"who are you", "help", "capabilities", "features", "what questions",
	"what can i ask", "how can you help", "what do you know",
	"what information", "tell me about yourself", "introduce yourself",
}

// statNames recognize a statistic mention for the top-N short-circuit.
var statNames = []string{
	"points", "assists", "rebounds", "blocks", "steals", "ppg", "rpg", "apg",
	"field goal", "fg%", "shooting percentage", "3 pointer", "three pointer",
	"3-pointers made", "three-pointers made", "3pm", "3pt percentage", "3pt%",
	"3p%",
}

// doubleTriggers recognize the double-category pattern (triple/double-double).
var doubleTriggers = []string{
	"triple-double", "triple double", "double-double", "double double",
}

// scoringLeaderTriggers recognize the aggregate-leader phrasing.
var scoringLeaderTriggers = []string{
	"led the scoring", "led scoring", "leading scorer", "top scorer",
	"most points", "highest scorer", "scoring leader", "who led", "who scored",
}

// gameRefTriggers recognize a game reference for the composite
// scoring-leader rule.
var gameRefTriggers = []string{
	"game", "match", "latest game", "recent game", "last game",
}

// tomorrowVariants cover the temporal phrase and its common misspellings.
// Any hit routes straight to date_schedule, bypassing scoring entirely.
var tomorrowVariants = []string{
	"tomorrow", "tommorow", "tomorow", "tomarrow", "tommorrow",
}

// dateKeywords boost date_schedule and zero out plain schedule.
var dateKeywords = []string{
	"today", "tomorrow", "yesterday", "next week", "this week",
}

// explicitArticlePhrases are an explicit assertion of the articles intent
// and override any other positive score.
var explicitArticlePhrases = []string{
	"what does", "what do", "say about", "says about", "article", "articles",
}

// conferenceWords recognize a conference mention for the top-N standings rule.
var conferenceWords = []string{
	"west", "east", "western", "eastern", "conference",
}
