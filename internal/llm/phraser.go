package llm

import (
	"context"

	"go.uber.org/zap"

	"github.com/statlinehq/statline/internal/model"
)

// Phraser is the safe wrapper the pipeline talks to. The deterministic
// answer is always computed first; phrasing can only replace it when the
// provider succeeds and the strict-numbers guard passes. Any failure falls
// back silently to the deterministic text.
type Phraser struct {
	provider Provider
	logger   *zap.Logger
}

// NewPhraser creates a phraser over an optional provider. A nil provider
// makes Rephrase the identity function.
func NewPhraser(provider Provider, logger *zap.Logger) *Phraser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Phraser{provider: provider, logger: logger}
}

// Enabled reports whether a provider is configured.
func (p *Phraser) Enabled() bool {
	return p.provider != nil
}

// Rephrase returns a conversational rendering of the answer, or the answer
// unchanged when phrasing is disabled or fails.
func (p *Phraser) Rephrase(ctx context.Context, question, answer string, line *model.StatLine) string {
	if p.provider == nil || line == nil {
		return answer
	}

	resp, err := p.provider.Phrase(ctx, PhraseRequest{
		Question: question,
		Answer:   answer,
		Line:     line,
	})
	if err != nil {
		p.logger.Debug("phrasing fell back to deterministic answer",
			zap.String("provider", p.provider.Name()),
			zap.Error(err))
		return answer
	}
	if resp.Text == "" {
		return answer
	}
	return resp.Text
}
