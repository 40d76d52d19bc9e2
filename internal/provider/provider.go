package provider

import (
	"context"
	"errors"
	"strings"

	"github.com/statlinehq/statline/internal/model"
)

// Provider fetches the most recent stat line for a player from one source.
// Implementations map their native payloads into model.StatLine; they never
// decide fallback order, caching, or verification.
type Provider interface {
	Name() model.ProviderID
	FetchLatest(ctx context.Context, entity model.EntityReference, opponent string) (*model.StatLine, error)
}

var (
	// ErrNotFound means the source answered but had no recent game for
	// the player.
	ErrNotFound = errors.New("player not found")

	// ErrEmptyPayload means the source returned a line with no usable
	// metric values. Treated exactly like a failure by the chain.
	ErrEmptyPayload = errors.New("empty payload")
)

// nameMatches reports whether a source-reported player name refers to the
// resolved entity. Either the whole canonical name appears in the candidate
// or every part of it does.
func nameMatches(candidate, canonical string) bool {
	cand := strings.ToLower(candidate)
	canon := strings.ToLower(strings.TrimSpace(canonical))
	if canon == "" {
		return false
	}
	if strings.Contains(cand, canon) {
		return true
	}
	for _, part := range strings.Fields(canon) {
		if !strings.Contains(cand, part) {
			return false
		}
	}
	return true
}
