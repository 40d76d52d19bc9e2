package resolve

import (
	"strings"
	"testing"
)

func TestResolver_ExactHit(t *testing.T) {
	r := NewResolver()

	ref, err := r.Resolve("LeBron James")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if ref.CanonicalName != "LeBron James" && ref.CanonicalName != "Lebron James" {
		t.Errorf("Unexpected canonical name: %q", ref.CanonicalName)
	}
	if !ref.Known {
		t.Error("Expected known entity")
	}
	if len(ref.Aliases) == 0 {
		t.Error("Expected aliases for a known entity")
	}
	if ref.ExternalID != "" {
		t.Errorf("Resolver must not set external IDs, got %q", ref.ExternalID)
	}
}

func TestResolver_AliasHit(t *testing.T) {
	r := NewResolver()

	ref, err := r.Resolve("steph curry")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(strings.ToLower(ref.CanonicalName), "curry") {
		t.Errorf("Expected Curry, got %q", ref.CanonicalName)
	}
	if !ref.Known {
		t.Error("Expected known entity from alias match")
	}
}

func TestResolver_SyntheticFallbackIsTotal(t *testing.T) {
	r := NewResolver()

	ref, err := r.Resolve("rando benchwarmer")
	if err != nil {
		t.Fatalf("Synthetic fallback must not fail, got %v", err)
	}
	if ref.CanonicalName != "Rando Benchwarmer" {
		t.Errorf("Expected capitalized tokens, got %q", ref.CanonicalName)
	}
	if ref.Known {
		t.Error("Synthetic reference must not be marked known")
	}
	if ref.ExternalID != "" {
		t.Error("Synthetic reference must leave ExternalID unset")
	}
	if len(ref.Aliases) == 0 {
		t.Error("Expected aliases synthesized from raw tokens")
	}
}

func TestResolver_EmptyInput(t *testing.T) {
	r := NewResolver()

	if _, err := r.Resolve("   "); err != ErrEmptyName {
		t.Errorf("Expected ErrEmptyName, got %v", err)
	}
}

func TestResolver_SurnameAloneNeedsCrossCheck(t *testing.T) {
	r := NewResolver()

	// "murray portland" contains the alias "murray" but no fragment of it
	// maps into "jamal murray" beyond the alias itself; the cross-check
	// still accepts it because "murray" is a canonical fragment.
	ref, err := r.Resolve("murray")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !ref.Known {
		t.Errorf("Expected alias-only single token to resolve, got synthetic %q", ref.CanonicalName)
	}
}

func TestResolver_AliasTieIsDeterministic(t *testing.T) {
	r := NewResolver()

	// "harden james" carries aliases of two entities; sorted table order
	// must pick the same one on every run.
	for i := 0; i < 20; i++ {
		ref, err := r.Resolve("harden james")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if ref.CanonicalName != "James Harden" {
			t.Fatalf("Resolve(harden james) = %q on run %d, want James Harden", ref.CanonicalName, i)
		}
	}
}

func TestSimilarity_OrderedSubsequence(t *testing.T) {
	tests := []struct {
		a, b string
		min  float64
		max  float64
	}{
		{"lebron james", "lebron james", 1.0, 1.0},
		{"lebron jmes", "lebron james", 0.85, 1.0}, // dropped char, order kept
		{"stephen curry", "stephen curry", 1.0, 1.0},
		{"xyz", "lebron james", 0.0, 0.3},
	}

	for _, tt := range tests {
		got := Similarity(tt.a, tt.b)
		if got < tt.min || got > tt.max {
			t.Errorf("Similarity(%q, %q) = %.2f, want in [%.2f, %.2f]", tt.a, tt.b, got, tt.min, tt.max)
		}
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	if Similarity("curry", "stephen curry") != Similarity("stephen curry", "curry") {
		t.Error("Similarity must not depend on argument order")
	}
}

func TestExtractSubject(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"How many points did LeBron James score?", "lebron james"},
		{"How many points did lebron jmes score?", "lebron james"}, // typo
		{"stats for KD please", "kevin durant"},                    // abbreviation
		{"How did Giannis do last night?", "giannis antetokounmpo"},
		{"How many points did Rando Benchwarmer score?", "rando benchwarmer"},
	}

	for _, tt := range tests {
		if got := ExtractSubject(tt.question); got != tt.want {
			t.Errorf("ExtractSubject(%q) = %q, want %q", tt.question, got, tt.want)
		}
	}
}

func TestExtractSubject_NothingFound(t *testing.T) {
	if got := ExtractSubject("what is the schedule"); got != "" {
		t.Errorf("Expected empty subject, got %q", got)
	}
}

func TestExtractOpponent(t *testing.T) {
	tests := []struct {
		question string
		subject  string
		want     string
	}{
		{"How many points did LeBron score against the Spurs?", "lebron james", "spurs"},
		{"Luka Doncic vs Celtics", "luka doncic", "celtics"},
		{"How many points did LeBron James score?", "lebron james", ""},
	}

	for _, tt := range tests {
		if got := ExtractOpponent(tt.question, tt.subject); got != tt.want {
			t.Errorf("ExtractOpponent(%q) = %q, want %q", tt.question, got, tt.want)
		}
	}
}

func TestTeamAbbrev(t *testing.T) {
	if got := TeamAbbrev("Spurs"); got != "SA" {
		t.Errorf("TeamAbbrev(Spurs) = %q, want SA", got)
	}
	if got := TeamAbbrev("lakers"); got != "LAL" {
		t.Errorf("TeamAbbrev(lakers) = %q, want LAL", got)
	}
	// Unknown teams degrade to a three-letter prefix.
	if got := TeamAbbrev("sonics"); got != "SON" {
		t.Errorf("TeamAbbrev(sonics) = %q, want SON", got)
	}
}
