package resolve

import "sort"

// The single shared lookup table for player and team names. Every component
// depends on this package so the lists cannot diverge.

// knownPlayers maps a lower-cased full name to its alias set. Aliases are
// matched as substrings of user input, so they stay lower-case.
var knownPlayers = map[string][]string{
	"lebron james":            {"lebron", "james", "lebron james"},
	"stephen curry":           {"curry", "steph curry", "stephen curry"},
	"kevin durant":            {"durant", "kd", "kevin durant"},
	"giannis antetokounmpo":   {"giannis", "antetokounmpo"},
	"jayson tatum":            {"jayson", "tatum", "jayson tatum"},
	"jaylen brown":            {"jaylen", "jaylen brown"},
	"nikola jokic":            {"jokic", "nikola jokic", "joker"},
	"jamal murray":            {"jamal murray", "murray"},
	"luka doncic":             {"luka", "doncic", "luka doncic"},
	"kyrie irving":            {"kyrie", "kyrie irving"},
	"joel embiid":             {"embiid", "joel embiid"},
	"tyrese maxey":            {"maxey", "tyrese maxey"},
	"jimmy butler":            {"butler", "jimmy butler"},
	"bam adebayo":             {"bam", "adebayo"},
	"anthony davis":           {"davis", "anthony davis", "ad"},
	"devin booker":            {"booker", "devin booker"},
	"chris paul":              {"chris paul", "cp3"},
	"james harden":            {"harden", "james harden"},
	"kawhi leonard":           {"kawhi", "leonard", "kawhi leonard"},
	"damian lillard":          {"lillard", "dame", "damian lillard"},
	"donovan mitchell":        {"mitchell", "donovan mitchell"},
	"darius garland":          {"garland", "darius garland"},
	"anthony edwards":         {"edwards", "anthony edwards"},
	"karl-anthony towns":      {"towns", "kat", "karl-anthony towns"},
	"shai gilgeous-alexander": {"shai", "gilgeous-alexander", "sga"},
	"trae young":              {"trae", "trae young"},
	"jalen brunson":           {"brunson", "jalen brunson"},
	"julius randle":           {"randle", "julius randle"},
	"pascal siakam":           {"siakam", "pascal siakam"},
	"demar derozan":           {"derozan", "demar derozan"},
	"zach lavine":             {"lavine", "zach lavine"},
	"cade cunningham":         {"cunningham", "cade cunningham"},
	"tyrese haliburton":       {"haliburton", "tyrese haliburton"},
	"de'aaron fox":            {"fox", "de'aaron fox"},
	"domantas sabonis":        {"sabonis", "domantas sabonis"},
	"ja morant":               {"morant", "ja morant"},
	"zion williamson":         {"zion", "zion williamson"},
	"brandon ingram":          {"ingram", "brandon ingram"},
	"victor wembanyama":       {"wembanyama", "victor", "wemby"},
	"chet holmgren":           {"holmgren", "chet holmgren"},
	"paolo banchero":          {"banchero", "paolo banchero"},
	"austin reaves":           {"reaves", "austin reaves"},
	"paul george":             {"paul george", "pg13"},
	"russell westbrook":       {"westbrook", "russ", "russell westbrook"},
	"klay thompson":           {"klay", "klay thompson"},
}

// abbreviations maps common shorthand to a known player's full name.
var abbreviations = map[string]string{
	"lbj": "lebron james",
	"kd":  "kevin durant",
	"ad":  "anthony davis",
	"cp3": "chris paul",
	"sga": "shai gilgeous-alexander",
	"kat": "karl-anthony towns",
}

// teamAbbrevs maps a lower-cased team nickname to its scoreboard abbreviation.
var teamAbbrevs = map[string]string{
	"hawks":         "ATL",
	"celtics":       "BOS",
	"nets":          "BKN",
	"hornets":       "CHA",
	"bulls":         "CHI",
	"cavaliers":     "CLE",
	"mavericks":     "DAL",
	"nuggets":       "DEN",
	"pistons":       "DET",
	"warriors":      "GS",
	"rockets":       "HOU",
	"pacers":        "IND",
	"clippers":      "LAC",
	"lakers":        "LAL",
	"grizzlies":     "MEM",
	"heat":          "MIA",
	"bucks":         "MIL",
	"timberwolves":  "MIN",
	"pelicans":      "NO",
	"knicks":        "NYK",
	"thunder":       "OKC",
	"magic":         "ORL",
	"76ers":         "PHI",
	"suns":          "PHX",
	"trail blazers": "POR",
	"kings":         "SAC",
	"spurs":         "SA",
	"raptors":       "TOR",
	"jazz":          "UTA",
	"wizards":       "WSH",
}

// playerNames and teamNames are sorted once at startup so every scan over
// the tables resolves ties the same way on every run.
var (
	playerNames = sortedKeys(knownPlayers)
	teamNames   = sortedKeys(teamAbbrevs)
)

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// KnownPlayerNames returns the lower-cased full names of every table entry,
// in sorted order.
func KnownPlayerNames() []string {
	return playerNames
}

// TeamNames returns every team nickname in the shared table, in sorted order.
func TeamNames() []string {
	return teamNames
}

// TeamAbbrev returns the scoreboard abbreviation for a team nickname,
// or a best-effort three-letter fallback for unknown names.
func TeamAbbrev(name string) string {
	if abbrev, ok := teamAbbrevs[normalize(name)]; ok {
		return abbrev
	}
	n := normalize(name)
	if len(n) > 3 {
		n = n[:3]
	}
	return upper(n)
}

// IsTeamName reports whether the input names a team in the shared table.
func IsTeamName(name string) bool {
	_, ok := teamAbbrevs[normalize(name)]
	return ok
}
