package llm

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/statlinehq/statline/internal/model"
)

// Provider defines the interface for LLM phrasing providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Phrase rewrites a deterministic answer conversationally with strict
	// numbers mode
	Phrase(ctx context.Context, req PhraseRequest) (*PhraseResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// PhraseRequest contains the input for LLM phrasing
type PhraseRequest struct {
	// Question is the user's original question
	Question string

	// Answer is the deterministic answer text to rephrase
	Answer string

	// Line is the verified payload. It is the STRICT allowlist of numbers
	// the LLM may use; this prevents hallucinated statistics.
	Line *model.StatLine

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// PhraseResponse contains the LLM's phrasing output
type PhraseResponse struct {
	// Text is the rephrased answer
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// NewProvider creates a new LLM provider based on configuration.
// An empty provider name means phrasing is disabled; (nil, nil) is returned.
func NewProvider(cfg model.LLMConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIProvider(cfg)

	case "ollama":
		return NewOllamaProvider(cfg)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", cfg.Provider)
	}
}

// BuildPrompt constructs the phrasing prompt with strict numbers mode
func BuildPrompt(req PhraseRequest) string {
	line := req.Line
	return fmt.Sprintf(`You are rephrasing a basketball stats answer conversationally.

CRITICAL RULES:
1. You MUST ONLY use numbers from the data below. Never invent, estimate, or adjust any value.
2. DO NOT mention statistics that are not listed.
3. Keep it to one or two sentences.

Data:
- Player: %s
- Points: %d, Rebounds: %d, Assists: %d, Steals: %d, Blocks: %d
- Game date: %s
- Matchup: %s vs %s

Question: %s

Base answer: %s

Rephrase the base answer.`,
		line.PlayerName,
		line.Points, line.Rebounds, line.Assists, line.Steals, line.Blocks,
		line.MatchDate, line.Team1, line.Team2,
		req.Question, req.Answer)
}

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// enforceStrictNumbers verifies that every number in the generated text
// exists in the payload. Any number outside the allowlist is a leak and
// fails the whole output.
func enforceStrictNumbers(text string, line *model.StatLine) error {
	allowed := allowedNumbers(line)
	for _, num := range numberPattern.FindAllString(text, -1) {
		if !allowed[normalizeNumber(num)] {
			return fmt.Errorf("NUMBER LEAK: LLM produced value not in payload: %s", num)
		}
	}
	return nil
}

// allowedNumbers collects every numeric token the payload justifies:
// the five metrics and the parts of the game date.
func allowedNumbers(line *model.StatLine) map[string]bool {
	allowed := make(map[string]bool)
	if line == nil {
		return allowed
	}

	for _, n := range []int{line.Points, line.Rebounds, line.Assists, line.Steals, line.Blocks} {
		allowed[strconv.Itoa(n)] = true
	}
	for _, part := range strings.FieldsFunc(line.MatchDate, func(r rune) bool {
		return r < '0' || r > '9'
	}) {
		allowed[normalizeNumber(part)] = true
	}
	return allowed
}

// normalizeNumber strips leading zeros so "08" and "8" compare equal.
func normalizeNumber(s string) string {
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" || strings.HasPrefix(trimmed, ".") {
		return "0" + trimmed
	}
	return trimmed
}
