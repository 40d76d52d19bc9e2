package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/statlinehq/statline/internal/model"
)

const scoreboardFixture = `{
  "events": [
    {
      "id": "401705050",
      "date": "2025-01-10T03:00Z",
      "name": "Los Angeles Lakers at San Antonio Spurs",
      "shortName": "LAL @ SA",
      "status": {"type": {"state": "post", "description": "Final"}},
      "competitions": [
        {
          "competitors": [
            {"homeAway": "home", "score": "105", "team": {"abbreviation": "SA", "displayName": "San Antonio Spurs"}},
            {"homeAway": "away", "score": "110", "team": {"abbreviation": "LAL", "displayName": "Los Angeles Lakers"}}
          ]
        }
      ]
    }
  ]
}`

const summaryFixture = `{
  "boxscore": {
    "players": [
      {
        "team": {"abbreviation": "LAL", "displayName": "Los Angeles Lakers"},
        "statistics": [
          {
            "names": ["minutes", "points", "rebounds", "assists", "steals", "blocks"],
            "athletes": [
              {
                "athlete": {"id": "1966", "displayName": "LeBron James", "fullName": "LeBron James"},
                "stats": ["38", "30", "8", "5", "0", "0"]
              },
              {
                "athlete": {"id": "4432", "displayName": "Austin Reaves", "fullName": "Austin Reaves"},
                "stats": ["35", "18", "4", "7", "2", "0"]
              }
            ]
          }
        ]
      }
    ]
  }
}`

func newESPNServer(t *testing.T, scoreboard, summary string) (*httptest.Server, *int) {
	t.Helper()
	requests := new(int)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*requests++
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/scoreboard":
			_, _ = w.Write([]byte(scoreboard))
		case "/summary":
			_, _ = w.Write([]byte(summary))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server, requests
}

func TestESPN_FetchLatest(t *testing.T) {
	server, _ := newESPNServer(t, scoreboardFixture, summaryFixture)
	espn := NewESPN(server.Client(), server.URL, "statline-test", 3, nil)

	line, err := espn.FetchLatest(context.Background(), entity(), "")
	if err != nil {
		t.Fatalf("FetchLatest failed: %v", err)
	}

	if line.PlayerName != "LeBron James" {
		t.Errorf("PlayerName = %q", line.PlayerName)
	}
	if line.Points != 30 || line.Rebounds != 8 || line.Assists != 5 {
		t.Errorf("Metrics wrong: %+v", line)
	}
	if line.MatchDate != "2025-01-10" {
		t.Errorf("MatchDate = %q, want the scoreboard date", line.MatchDate)
	}
	if line.Team1 != "LAL" || line.Team2 != "SA" {
		t.Errorf("Teams = %q/%q, want LAL/SA", line.Team1, line.Team2)
	}
	if line.PlayerTeam != "LAL" {
		t.Errorf("PlayerTeam = %q, want LAL", line.PlayerTeam)
	}
}

func TestESPN_PlayerNotInBoxscore(t *testing.T) {
	server, _ := newESPNServer(t, scoreboardFixture, summaryFixture)
	espn := NewESPN(server.Client(), server.URL, "statline-test", 2, nil)

	unknown := model.EntityReference{CanonicalName: "Rando Benchwarmer"}
	if _, err := espn.FetchLatest(context.Background(), unknown, ""); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestESPN_OpponentHintSkipsOtherGames(t *testing.T) {
	server, requests := newESPNServer(t, scoreboardFixture, summaryFixture)
	espn := NewESPN(server.Client(), server.URL, "statline-test", 0, nil)

	// The only game involves the Spurs; asking about the Warriors must
	// skip it without fetching its box score.
	if _, err := espn.FetchLatest(context.Background(), entity(), "warriors"); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if *requests != 1 {
		t.Errorf("Expected only the scoreboard request, got %d", *requests)
	}
}

func TestESPN_Games(t *testing.T) {
	server, _ := newESPNServer(t, scoreboardFixture, summaryFixture)
	espn := NewESPN(server.Client(), server.URL, "statline-test", 3, nil)

	games, err := espn.Games(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("Games failed: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("Got %d games, want 1", len(games))
	}
	if games[0].Short != "LAL @ SA" || games[0].Status != "Final" || games[0].Live {
		t.Errorf("Unexpected game: %+v", games[0])
	}
	if !games[0].Final || games[0].AwayScore != "110" || games[0].HomeScore != "105" {
		t.Errorf("Score fields not mapped: %+v", games[0])
	}
}

func TestESPN_TeamTopScorer(t *testing.T) {
	server, _ := newESPNServer(t, scoreboardFixture, summaryFixture)
	espn := NewESPN(server.Client(), server.URL, "statline-test", 3, nil)

	line, err := espn.TeamTopScorer(context.Background(), "lakers")
	if err != nil {
		t.Fatalf("TeamTopScorer failed: %v", err)
	}
	if line.PlayerName != "LeBron James" || line.Points != 30 {
		t.Errorf("Top scorer = %q with %d points, want LeBron James with 30", line.PlayerName, line.Points)
	}
}

func TestESPN_ContextCancellation(t *testing.T) {
	server, _ := newESPNServer(t, scoreboardFixture, summaryFixture)
	espn := NewESPN(server.Client(), server.URL, "statline-test", 14, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := espn.FetchLatest(ctx, entity(), ""); err == nil {
		t.Error("Expected context error")
	}
}
