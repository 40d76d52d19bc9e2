package cache

import (
	"testing"
	"time"

	"github.com/statlinehq/statline/internal/model"
)

func TestKey_QualifierNeverCollides(t *testing.T) {
	entity := model.EntityReference{CanonicalName: "LeBron James"}

	plain := Key(entity, "")
	vsSpurs := Key(entity, "SA")
	vsSuns := Key(entity, "PHX")

	if plain == vsSpurs || vsSpurs == vsSuns || plain == vsSuns {
		t.Errorf("qualified keys must be distinct: %q %q %q", plain, vsSpurs, vsSuns)
	}
}

func TestKey_PrefersExternalID(t *testing.T) {
	named := model.EntityReference{CanonicalName: "LeBron James"}
	withID := model.EntityReference{CanonicalName: "LeBron James", ExternalID: "1966"}

	if Key(named, "") == Key(withID, "") {
		t.Error("identity segment must switch to the external ID when present")
	}
	if got := Key(withID, "sa"); got != "id:1966|vs:sa" {
		t.Errorf("Key = %q, want id:1966|vs:sa", got)
	}
	if got := Key(named, ""); got != "name:lebron james" {
		t.Errorf("Key = %q, want name:lebron james", got)
	}
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute)

	if err := c.Set("k", []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, found := c.Get("k")
	if !found {
		t.Fatal("Expected cache hit")
	}
	if string(got) != "payload" {
		t.Errorf("Got %q, want payload", got)
	}
}

func TestMemoryCache_ExpiryEvicts(t *testing.T) {
	c := NewMemoryCache(time.Minute)

	if err := c.Set("k", []byte("payload"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	time.Sleep(30 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("Expected expired entry to behave as a miss")
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	_ = c.Set("a", []byte("1"), time.Minute)
	_ = c.Set("b", []byte("2"), time.Minute)

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, found := c.Get("a"); found {
		t.Error("Expected miss after clear")
	}
}

func TestStatStore_RoundTrip(t *testing.T) {
	store := NewStatStore(NewMemoryCache(time.Minute), time.Minute)
	entity := model.EntityReference{CanonicalName: "Nikola Jokic", Known: true}
	line := &model.StatLine{
		PlayerName: "Nikola Jokic",
		Points:     30,
		Rebounds:   12,
		Assists:    10,
		MatchDate:  "2025-01-10",
		Team1:      "Denver Nuggets",
		Team2:      "Phoenix Suns",
	}

	if err := store.Put(entity, "", line); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, found := store.Get(entity, "")
	if !found {
		t.Fatal("Expected cache hit")
	}
	if got.Points != 30 || got.MatchDate != "2025-01-10" {
		t.Errorf("Cached line mutated: %+v", got)
	}

	// Same subject against an opponent is a different entry.
	if _, found := store.Get(entity, "PHX"); found {
		t.Error("Qualifier must partition the keyspace")
	}
}

func TestStatStore_CorruptEntryIsMiss(t *testing.T) {
	backend := NewMemoryCache(time.Minute)
	store := NewStatStore(backend, time.Minute)
	entity := model.EntityReference{CanonicalName: "Luka Doncic"}

	_ = backend.Set(Key(entity, ""), []byte("{not json"), time.Minute)

	if _, found := store.Get(entity, ""); found {
		t.Error("Expected corrupt entry to behave as a miss")
	}
}
