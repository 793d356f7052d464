package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/carebridge/cms-proxy/pkg/logging"
)

// ErrNoCache indicates that no usable snapshot exists: either nothing has
// been written yet, or the stored document failed validation.
var ErrNoCache = errors.New("no cache")

// DefaultPath is the fixed relative location of the snapshot document.
const DefaultPath = ".cache/cms-data.json"

// Store persists the latest snapshot as a single JSON document.
type Store struct {
	path   string
	logger zerolog.Logger
}

// NewStore creates a store rooted at path. An empty path uses DefaultPath.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{
		path:   path,
		logger: logging.NewLogger("snapshot-store"),
	}
}

// Path returns the location of the snapshot document.
func (s *Store) Path() string {
	return s.path
}

// Write durably persists snap, replacing any prior snapshot as a single
// atomic unit. The storage directory is created if absent.
func (s *Store) Write(snap *Snapshot) error {
	if snap == nil {
		return fmt.Errorf("snapshot cannot be nil")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		CacheErrors.WithLabelValues("write").Inc()
		return fmt.Errorf("create cache dir: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		CacheErrors.WithLabelValues("write").Inc()
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	// Write to a temp file in the same directory, then rename over the old
	// document. Rename within one filesystem is atomic, so readers see
	// either the previous snapshot or the new one, never a torn file.
	tmp, err := os.CreateTemp(dir, "cms-data-*.json.tmp")
	if err != nil {
		CacheErrors.WithLabelValues("write").Inc()
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		CacheErrors.WithLabelValues("write").Inc()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		CacheErrors.WithLabelValues("write").Inc()
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		CacheErrors.WithLabelValues("write").Inc()
		return fmt.Errorf("replace snapshot: %w", err)
	}

	CacheSize.Set(float64(len(data)))

	s.logger.Info().
		Str("path", s.path).
		Int("entries", snap.TotalCoverageEntries).
		Int("states", snap.TotalCoverageStates).
		Str("last_updated", snap.LastUpdated).
		Msg("Snapshot written")

	return nil
}

// Read returns the most recently written snapshot. It returns ErrNoCache
// when no document exists or the stored data fails validation; every call
// unmarshals a fresh copy, so the returned value is the caller's to keep.
func (s *Store) Read() (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			CacheMisses.Inc()
			return nil, ErrNoCache
		}
		CacheErrors.WithLabelValues("read").Inc()
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("Invalid cache file, treating as absent")
		CacheMisses.Inc()
		return nil, ErrNoCache
	}

	if !snap.valid() {
		s.logger.Warn().Str("path", s.path).Msg("Cache file missing required fields, treating as absent")
		CacheMisses.Inc()
		return nil, ErrNoCache
	}

	CacheHits.Inc()
	return &snap, nil
}

// Exists reports whether a snapshot document is present on disk.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Stats describes the current cache state. Tolerant of a missing snapshot:
// absent caches yield zero values, not an error.
type Stats struct {
	Exists      bool    `json:"exists"`
	ItemCount   int     `json:"itemCount"`
	LastUpdated *string `json:"lastUpdated"`
}

// Stats returns statistics about the stored snapshot.
func (s *Store) Stats() Stats {
	snap, err := s.Read()
	if err != nil {
		return Stats{Exists: false, ItemCount: 0, LastUpdated: nil}
	}
	last := snap.LastUpdated
	return Stats{
		Exists:      true,
		ItemCount:   snap.TotalCoverageEntries,
		LastUpdated: &last,
	}
}
