package provider

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeSnapshot(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestArchive_PicksNewestAcrossSnapshots(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "2024-12.json", `[
		{"player_name": "LeBron James", "points": 22, "rebounds": 7, "assists": 6,
		 "match_date": "2024-12-20", "team1_name": "LAL", "team2_name": "GS"}
	]`)
	writeSnapshot(t, dir, "2025-01.json", `[
		{"player_name": "LeBron James", "points": 30, "rebounds": 8, "assists": 5,
		 "match_date": "2025-01-10", "team1_name": "LAL", "team2_name": "SA"},
		{"player_name": "Anthony Davis", "points": 25, "rebounds": 12, "assists": 3,
		 "match_date": "2025-01-10", "team1_name": "LAL", "team2_name": "SA"}
	]`)

	archive := NewArchive(dir, nil)
	line, err := archive.FetchLatest(context.Background(), entity(), "")
	if err != nil {
		t.Fatalf("FetchLatest failed: %v", err)
	}
	if line.Points != 30 || line.MatchDate != "2025-01-10" {
		t.Errorf("Expected the newest snapshot row, got %+v", line)
	}
}

func TestArchive_UnreadableSnapshotIsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "broken.json", `{not an array`)
	writeSnapshot(t, dir, "good.json", `[
		{"player_name": "LeBron James", "points": 18, "rebounds": 5, "assists": 9,
		 "match_date": "2025-01-05", "team1_name": "LAL", "team2_name": "PHX"}
	]`)

	archive := NewArchive(dir, nil)
	line, err := archive.FetchLatest(context.Background(), entity(), "")
	if err != nil {
		t.Fatalf("FetchLatest failed: %v", err)
	}
	if line.Points != 18 {
		t.Errorf("Got %+v", line)
	}
}

func TestArchive_PlayerMissing(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "good.json", `[
		{"player_name": "Anthony Davis", "points": 25, "rebounds": 12, "assists": 3,
		 "match_date": "2025-01-10", "team1_name": "LAL", "team2_name": "SA"}
	]`)

	archive := NewArchive(dir, nil)
	if _, err := archive.FetchLatest(context.Background(), entity(), ""); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestArchive_Unconfigured(t *testing.T) {
	archive := NewArchive("", nil)
	if _, err := archive.FetchLatest(context.Background(), entity(), ""); err == nil {
		t.Error("Expected error when no directory is configured")
	}
}
