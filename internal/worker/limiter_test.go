package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_AllowWithinBurst(t *testing.T) {
	l := NewLimiter(1, 3)

	url := "https://site.api.espn.com/scoreboard"
	for i := 0; i < 3; i++ {
		if !l.Allow(url) {
			t.Fatalf("Request %d within burst was denied", i)
		}
	}
	if l.Allow(url) {
		t.Error("Request beyond burst was allowed immediately")
	}
}

func TestLimiter_HostsAreIndependent(t *testing.T) {
	l := NewLimiter(1, 1)

	if !l.Allow("https://site.api.espn.com/a") {
		t.Fatal("First request to espn denied")
	}
	// Exhausting one host's budget must not affect another host.
	if !l.Allow("https://api.balldontlie.io/a") {
		t.Error("First request to balldontlie denied")
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	l := NewLimiter(0.001, 1)

	url := "https://example.com/x"
	_ = l.Wait(context.Background(), url) // consume burst

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx, url); err == nil {
		t.Error("Expected context error while waiting out the rate limit")
	}
}

func TestLimiter_SetHostRate(t *testing.T) {
	l := NewLimiter(1, 1)
	l.SetHostRate("slow.example.com", 0.001, 1)

	if !l.Allow("https://slow.example.com/a") {
		t.Fatal("Burst request denied")
	}
	if l.Allow("https://slow.example.com/b") {
		t.Error("Host-specific rate not applied")
	}
}
