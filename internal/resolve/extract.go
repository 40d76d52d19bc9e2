package resolve

import "strings"

// questionWords are capitalized tokens that never start a player name.
var questionWords = map[string]bool{
	"How": true, "What": true, "Who": true, "When": true, "Where": true,
	"The": true, "A": true, "An": true, "Is": true, "In": true, "For": true,
	"Did": true, "Show": true, "Give": true, "Tell": true,
}

// vsPatterns mark an opponent qualifier in the question text, checked in
// order so the longer forms win.
var vsPatterns = []string{
	" versus the ", " against the ", " vs. the ", " vs the ",
	"scored against the ", "played against the ", "faced the ",
	"scored against ", "played against ", "faced ",
	" versus ", " against ", " vs. ", " vs ",
}

// ExtractSubject pulls the most likely player name out of a free-text
// question. Matching passes, in order: abbreviation, known full name, fuzzy
// two-word window, exact single token, fuzzy single token, capitalized pair.
// Returns "" when nothing plausible is found.
func ExtractSubject(question string) string {
	lower := strings.ToLower(question)

	// Abbreviations first: they are exact and unambiguous.
	for _, word := range strings.Fields(lower) {
		clean := strings.Trim(word, ".,!?;:'\"")
		if full, ok := abbreviations[clean]; ok {
			return full
		}
	}

	// Known full names as substrings.
	for _, name := range playerNames {
		if strings.Contains(lower, name) {
			return name
		}
	}

	// Fuzzy two-word windows for typo'd full names.
	words := strings.Fields(question)
	for i := 0; i+1 < len(words); i++ {
		pair := strings.ToLower(words[i] + " " + words[i+1])
		if best := bestFuzzyMatch(pair); best != "" {
			return best
		}
	}

	// Exact single-token hits on any name part.
	for _, word := range strings.Fields(lower) {
		clean := strings.Trim(word, ".,!?;:'\"")
		if len(clean) <= 2 {
			continue
		}
		for _, name := range playerNames {
			for _, part := range strings.Fields(name) {
				if clean == part {
					return name
				}
			}
		}
	}

	// Fuzzy single tokens.
	for _, word := range strings.Fields(lower) {
		clean := strings.Trim(word, ".,!?;:'\"")
		if len(clean) <= 2 {
			continue
		}
		if best := bestFuzzyMatch(clean); best != "" {
			return best
		}
	}

	// Last resort: a pair of capitalized tokens that are not question words
	// and not team names.
	var caps []string
	for _, w := range words {
		trimmed := strings.Trim(w, ".,!?;:'\"")
		if trimmed == "" || questionWords[trimmed] {
			continue
		}
		if trimmed[0] >= 'A' && trimmed[0] <= 'Z' && !IsTeamName(trimmed) {
			caps = append(caps, trimmed)
		}
	}
	if len(caps) >= 2 {
		return strings.ToLower(caps[0] + " " + caps[1])
	}
	if len(caps) == 1 {
		return strings.ToLower(caps[0])
	}

	return ""
}

// bestFuzzyMatch returns the known name most similar to the candidate,
// or "" when nothing clears the threshold. Score ties keep the first name
// in sorted order.
func bestFuzzyMatch(candidate string) string {
	best := ""
	bestScore := SimilarityThreshold
	for _, name := range playerNames {
		if score := Similarity(candidate, name); score > bestScore {
			bestScore = score
			best = name
		}
	}
	return best
}

// ExtractOpponent finds the opponent-team qualifier in a question, looking
// first after an explicit vs/against pattern and then at any team mention
// that is not part of the subject's own name. Returns "" when the question
// carries no qualifier.
func ExtractOpponent(question, subject string) string {
	lower := strings.ToLower(question)

	for _, pattern := range vsPatterns {
		idx := strings.Index(lower, pattern)
		if idx < 0 {
			continue
		}
		after := strings.TrimSpace(lower[idx+len(pattern):])
		after = strings.TrimPrefix(after, "the ")
		for _, team := range teamNames {
			if strings.HasPrefix(after, team) ||
				strings.Contains(after, " "+team+" ") ||
				strings.HasSuffix(after, " "+team) {
				return team
			}
		}
	}

	subjectLower := strings.ToLower(subject)
	for _, team := range teamNames {
		if strings.Contains(lower, team) && !strings.Contains(subjectLower, team) {
			return team
		}
	}

	return ""
}
