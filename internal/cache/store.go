package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/statlinehq/statline/internal/model"
)

// StatStore wraps a Cache with typed access to fetched stat lines. Only
// successful fetches are stored; failures always retry the providers.
type StatStore struct {
	cache Cache
	ttl   time.Duration
}

// NewStatStore creates a stat store over the given cache backend.
func NewStatStore(c Cache, ttl time.Duration) *StatStore {
	return &StatStore{cache: c, ttl: ttl}
}

// Get returns the cached stat line for the entity and qualifier, if present
// and unexpired.
func (s *StatStore) Get(entity model.EntityReference, qualifier string) (*model.StatLine, bool) {
	data, found := s.cache.Get(Key(entity, qualifier))
	if !found {
		return nil, false
	}

	var line model.StatLine
	if err := json.Unmarshal(data, &line); err != nil {
		// A corrupt entry behaves like a miss.
		_ = s.cache.Delete(Key(entity, qualifier))
		return nil, false
	}
	return &line, true
}

// Put stores a stat line under the entity and qualifier for the store TTL.
func (s *StatStore) Put(entity model.EntityReference, qualifier string, line *model.StatLine) error {
	data, err := json.Marshal(line)
	if err != nil {
		return fmt.Errorf("marshal stat line: %w", err)
	}
	return s.cache.Set(Key(entity, qualifier), data, s.ttl)
}

// TTL returns the store's configured entry lifetime.
func (s *StatStore) TTL() time.Duration {
	return s.ttl
}
