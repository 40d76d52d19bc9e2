package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/statlinehq/statline/internal/model"
)

// Archive is the last resort: local JSON snapshots of past box scores.
// It never touches the network, so it can still answer when everything
// upstream is down, at the cost of freshness.
type Archive struct {
	dir    string
	logger *zap.Logger
}

// NewArchive creates the archive provider over a snapshot directory.
// Each *.json file in the directory holds an array of stat lines.
func NewArchive(dir string, logger *zap.Logger) *Archive {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Archive{dir: dir, logger: logger}
}

// Name implements Provider.
func (a *Archive) Name() model.ProviderID { return model.ProviderArchive }

// FetchLatest scans every snapshot and returns the player's newest line.
func (a *Archive) FetchLatest(ctx context.Context, entity model.EntityReference, _ string) (*model.StatLine, error) {
	if a.dir == "" {
		return nil, fmt.Errorf("no archive directory configured")
	}

	paths, err := filepath.Glob(filepath.Join(a.dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	var best *model.StatLine
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		lines, err := readSnapshot(path)
		if err != nil {
			a.logger.Debug("skipping unreadable snapshot",
				zap.String("path", path), zap.Error(err))
			continue
		}

		for i := range lines {
			if !nameMatches(lines[i].PlayerName, entity.CanonicalName) {
				continue
			}
			if best == nil || lines[i].MatchDate > best.MatchDate {
				line := lines[i]
				best = &line
			}
		}
	}

	if best == nil {
		return nil, ErrNotFound
	}
	return best, nil
}

func readSnapshot(path string) ([]model.StatLine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var lines []model.StatLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return lines, nil
}
