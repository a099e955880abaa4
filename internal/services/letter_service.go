// Package services orchestrates ledger operations over the donor store.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"mailroom/internal/core"
)

// SnapshotSource is the persistent-store read side the services need.
type SnapshotSource interface {
	Snapshot(ctx context.Context) ([]core.DonorRecord, error)
}

// LetterService writes one thank-you letter file per donor. Filenames are
// derived from the normalized donor key, so re-running overwrites earlier
// output instead of duplicating it.
type LetterService struct {
	source SnapshotSource
	dir    string
}

func NewLetterService(source SnapshotSource, dir string) *LetterService {
	return &LetterService{source: source, dir: dir}
}

// LetterFilename maps a donor key to its output artifact name.
func LetterFilename(key string) string {
	return strings.ReplaceAll(key, " ", "_") + ".txt"
}

// WriteAll loads a fresh ledger snapshot and writes a letter for every
// donor with at least one donation. It returns the number of letters
// written; an empty store is a no-op, not an error.
func (s *LetterService) WriteAll(ctx context.Context) (int, error) {
	records, err := s.source.Snapshot(ctx)
	if err != nil {
		return 0, fmt.Errorf("load snapshot: %w", err)
	}

	ledger := core.FromSnapshot(records)
	names := ledger.DonorNames()
	if len(names) == 0 {
		return 0, nil
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return 0, fmt.Errorf("create letters directory: %w", err)
	}

	written := 0
	for _, name := range names {
		body, err := ledger.Letter(name)
		if errors.Is(err, core.ErrNoDonations) {
			slog.WarnContext(ctx, "Skipping donor without donations", "donor", name)
			continue
		}
		if err != nil {
			return written, fmt.Errorf("compose letter for %s: %w", name, err)
		}

		path := filepath.Join(s.dir, LetterFilename(name))
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			return written, fmt.Errorf("write letter for %s: %w", name, err)
		}
		written++
	}

	slog.InfoContext(ctx, "Letters written", "count", written, "dir", s.dir)
	return written, nil
}
