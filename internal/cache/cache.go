package cache

import (
	"strings"
	"time"

	"github.com/statlinehq/statline/internal/model"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates the composite cache key for a subject and an optional
// opponent qualifier. Identity segments are delimited so that distinct
// qualifiers can never collide: the same subject with and without an
// opponent filter are different cache entries.
func Key(entity model.EntityReference, qualifier string) string {
	var b strings.Builder
	if entity.ExternalID != "" {
		b.WriteString("id:")
		b.WriteString(entity.ExternalID)
	} else {
		b.WriteString("name:")
		b.WriteString(strings.ToLower(entity.CanonicalName))
	}
	if qualifier != "" {
		b.WriteString("|vs:")
		b.WriteString(strings.ToLower(qualifier))
	}
	return b.String()
}
