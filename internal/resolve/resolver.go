package resolve

import (
	"errors"
	"strings"

	"github.com/statlinehq/statline/internal/model"
)

// ErrEmptyName is returned when resolution is attempted on blank input.
var ErrEmptyName = errors.New("resolve: empty name")

// Resolver canonicalizes free-text subject names against the shared
// known-player table. It performs no network or database I/O: external ID
// enrichment belongs to the provider chain, so resolution stays O(table size).
type Resolver struct{}

// NewResolver creates a new resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve maps a raw name to an EntityReference. It is total for non-empty
// input: when no table entry matches, a synthetic reference is built from the
// raw tokens with ExternalID left unset.
func (r *Resolver) Resolve(raw string) (model.EntityReference, error) {
	name := normalize(raw)
	if name == "" {
		return model.EntityReference{}, ErrEmptyName
	}

	// 1. Exact table hit.
	if aliases, ok := knownPlayers[name]; ok {
		return model.EntityReference{
			CanonicalName: titleCase(name),
			Aliases:       aliases,
			Known:         true,
		}, nil
	}

	// 2. Alias containment, cross-checked against the canonical name so a
	// shared surname alone does not claim the entity. Iteration follows the
	// sorted name list so ties resolve the same way on every run.
	parts := strings.Fields(name)
	for _, canonical := range playerNames {
		aliases := knownPlayers[canonical]
		if !anyAliasIn(aliases, name) {
			continue
		}
		if len(parts) >= 2 && !anyPartIn(parts, canonical) {
			continue
		}
		return model.EntityReference{
			CanonicalName: titleCase(canonical),
			Aliases:       aliases,
			Known:         true,
		}, nil
	}

	// 3. Synthetic fallback: capitalize tokens, derive aliases from them.
	canonical := titleCase(strings.Join(parts, " "))
	aliases := make([]string, 0, len(parts)+1)
	aliases = append(aliases, strings.ToLower(canonical))
	for _, p := range parts {
		if p != strings.ToLower(canonical) {
			aliases = append(aliases, p)
		}
	}

	return model.EntityReference{
		CanonicalName: canonical,
		Aliases:       aliases,
		Known:         false,
	}, nil
}

func anyAliasIn(aliases []string, input string) bool {
	for _, a := range aliases {
		if strings.Contains(input, a) {
			return true
		}
	}
	return false
}

func anyPartIn(parts []string, canonical string) bool {
	for _, p := range parts {
		if strings.Contains(canonical, p) {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
