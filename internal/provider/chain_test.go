package provider

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/statlinehq/statline/internal/model"
)

type fakeProvider struct {
	id    model.ProviderID
	line  *model.StatLine
	err   error
	block bool
	calls int
}

func (f *fakeProvider) Name() model.ProviderID { return f.id }

func (f *fakeProvider) FetchLatest(ctx context.Context, entity model.EntityReference, opponent string) (*model.StatLine, error) {
	f.calls++
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.line, f.err
}

func goodLine() *model.StatLine {
	return &model.StatLine{
		PlayerName: "LeBron James",
		Points:     30,
		Rebounds:   8,
		Assists:    5,
		MatchDate:  "2025-01-10",
		Team1:      "LAL",
		Team2:      "SA",
		PlayerTeam: "LAL",
	}
}

func entity() model.EntityReference {
	return model.EntityReference{CanonicalName: "LeBron James", Known: true}
}

func TestChain_FirstSuccessWins(t *testing.T) {
	first := &fakeProvider{id: model.ProviderESPN, err: errors.New("service unavailable")}
	second := &fakeProvider{id: model.ProviderBallDontLie, line: &model.StatLine{PlayerName: "LeBron James"}}
	third := &fakeProvider{id: model.ProviderCommunity, line: goodLine()}
	fourth := &fakeProvider{id: model.ProviderArchive, line: goodLine()}

	chain := NewChain(time.Second, nil, first, second, third, fourth)
	result := chain.Fetch(context.Background(), entity(), "")

	if !result.Success {
		t.Fatalf("Expected success, got %+v", result)
	}
	if result.Source != model.ProviderCommunity {
		t.Errorf("Source = %q, want community", result.Source)
	}
	if first.calls != 1 || second.calls != 1 || third.calls != 1 {
		t.Errorf("Earlier providers must each be tried once: %d %d %d", first.calls, second.calls, third.calls)
	}
	if fourth.calls != 0 {
		t.Errorf("Providers after the first success must not run, got %d calls", fourth.calls)
	}
}

func TestChain_EmptyPayloadIsFailure(t *testing.T) {
	// The second provider answered but with an all-zero line; the chain
	// must keep walking.
	empty := &fakeProvider{id: model.ProviderESPN, line: &model.StatLine{PlayerName: "LeBron James"}}
	good := &fakeProvider{id: model.ProviderBallDontLie, line: goodLine()}

	chain := NewChain(time.Second, nil, empty, good)
	result := chain.Fetch(context.Background(), entity(), "")

	if !result.Success || result.Source != model.ProviderBallDontLie {
		t.Fatalf("Expected balldontlie to serve, got %+v", result)
	}
}

func TestChain_OpponentFilter(t *testing.T) {
	wrongGame := goodLine()
	wrongGame.Team2 = "GS"

	first := &fakeProvider{id: model.ProviderESPN, line: wrongGame}
	second := &fakeProvider{id: model.ProviderBallDontLie, line: goodLine()}

	chain := NewChain(time.Second, nil, first, second)
	result := chain.Fetch(context.Background(), entity(), "spurs")

	if !result.Success {
		t.Fatalf("Expected success, got %+v", result)
	}
	if result.Source != model.ProviderBallDontLie {
		t.Errorf("Game against the wrong team must be filtered, source = %q", result.Source)
	}
}

func TestChain_ExhaustionCollectsDiagnostics(t *testing.T) {
	first := &fakeProvider{id: model.ProviderESPN, err: errors.New("connection refused")}
	second := &fakeProvider{id: model.ProviderBallDontLie, err: ErrNotFound}

	chain := NewChain(time.Second, nil, first, second)
	result := chain.Fetch(context.Background(), entity(), "")

	if result.Success {
		t.Fatal("Expected failure")
	}
	if result.Source != model.ProviderNone {
		t.Errorf("Source = %q, want none", result.Source)
	}
	if result.Data != nil {
		t.Error("Failure result must carry no data")
	}

	// Diagnostics name each provider in try order.
	espnIdx := strings.Index(result.Error, "espn: connection refused")
	bdlIdx := strings.Index(result.Error, "balldontlie: player not found")
	if espnIdx < 0 || bdlIdx < 0 || espnIdx > bdlIdx {
		t.Errorf("Diagnostics incomplete or misordered: %q", result.Error)
	}
}

func TestChain_PerCallTimeout(t *testing.T) {
	slow := &fakeProvider{id: model.ProviderESPN, block: true}
	good := &fakeProvider{id: model.ProviderBallDontLie, line: goodLine()}

	chain := NewChain(20*time.Millisecond, nil, slow, good)

	start := time.Now()
	result := chain.Fetch(context.Background(), entity(), "")
	elapsed := time.Since(start)

	if !result.Success || result.Source != model.ProviderBallDontLie {
		t.Fatalf("Expected fallback after timeout, got %+v", result)
	}
	if elapsed > time.Second {
		t.Errorf("Slow provider held the chain for %v", elapsed)
	}
}

func TestMatchesOpponent_OwnTeamDoesNotCount(t *testing.T) {
	line := goodLine() // LAL @ SA, player on LAL

	if !matchesOpponent(line, "spurs") {
		t.Error("Spurs are the opponent in this game")
	}
	if matchesOpponent(line, "lakers") {
		t.Error("The player's own team must not match as opponent")
	}
}
