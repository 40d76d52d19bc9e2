package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/statlinehq/statline/internal/model"
)

type fakeProvider struct {
	text string
	err  error
}

func (f *fakeProvider) Name() string                         { return "fake" }
func (f *fakeProvider) IsAvailable(ctx context.Context) bool { return true }

func (f *fakeProvider) Phrase(ctx context.Context, req PhraseRequest) (*PhraseResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	// Mimic a real provider: strict numbers are enforced on the way out.
	if err := enforceStrictNumbers(f.text, req.Line); err != nil {
		return nil, err
	}
	return &PhraseResponse{Text: f.text, Model: "fake"}, nil
}

func testLine() *model.StatLine {
	return &model.StatLine{
		PlayerName: "LeBron James",
		Points:     30,
		Rebounds:   8,
		Assists:    5,
		MatchDate:  "2025-01-10",
		Team1:      "LAL",
		Team2:      "SA",
	}
}

const deterministic = "LeBron James had 30 points, 8 rebounds and 5 assists against the SA on 2025-01-10."

func TestPhraser_UsesProviderOutput(t *testing.T) {
	p := NewPhraser(&fakeProvider{text: "LeBron dropped 30 with 8 boards and 5 dimes on January 10!"}, nil)

	got := p.Rephrase(context.Background(), "lebron stats", deterministic, testLine())
	if got == deterministic {
		t.Error("Expected the rephrased text")
	}
}

func TestPhraser_InventedNumberFallsBack(t *testing.T) {
	// 42 appears nowhere in the payload; strict mode must reject it.
	p := NewPhraser(&fakeProvider{text: "LeBron dropped 42 points!"}, nil)

	got := p.Rephrase(context.Background(), "lebron stats", deterministic, testLine())
	if got != deterministic {
		t.Errorf("Expected deterministic fallback, got %q", got)
	}
}

func TestPhraser_ProviderErrorFallsBack(t *testing.T) {
	p := NewPhraser(&fakeProvider{err: errors.New("connection refused")}, nil)

	got := p.Rephrase(context.Background(), "lebron stats", deterministic, testLine())
	if got != deterministic {
		t.Errorf("Expected deterministic fallback, got %q", got)
	}
}

func TestPhraser_NilProviderIsIdentity(t *testing.T) {
	p := NewPhraser(nil, nil)

	if p.Enabled() {
		t.Error("Phraser with nil provider must report disabled")
	}
	got := p.Rephrase(context.Background(), "lebron stats", deterministic, testLine())
	if got != deterministic {
		t.Errorf("Expected identity, got %q", got)
	}
}

func TestEnforceStrictNumbers(t *testing.T) {
	line := testLine()

	tests := []struct {
		text string
		ok   bool
	}{
		{"LeBron had 30 points and 8 rebounds on 2025-01-10.", true},
		{"30 and 5, what a night on January 10.", true},
		{"He scored 31 points.", false},          // off by one
		{"About 3 quarters of the game.", false}, // unjustified number
		{"No numbers at all here.", true},
	}

	for _, tt := range tests {
		err := enforceStrictNumbers(tt.text, line)
		if tt.ok && err != nil {
			t.Errorf("enforceStrictNumbers(%q) = %v, want nil", tt.text, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("enforceStrictNumbers(%q) passed, want leak error", tt.text)
		}
	}
}

func TestNewProvider_EmptyMeansDisabled(t *testing.T) {
	p, err := NewProvider(model.LLMConfig{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p != nil {
		t.Error("Empty provider name must return nil provider")
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	if _, err := NewProvider(model.LLMConfig{Provider: "skynet"}); err == nil {
		t.Error("Expected error for unknown provider")
	}
}
