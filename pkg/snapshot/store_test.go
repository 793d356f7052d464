package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func testSnapshot() *Snapshot {
	states := []ReferenceState{
		{ID: "st-ca", Name: "California", Slug: "california", Abbreviation: "CA", Active: true},
		{ID: "st-tx", Name: "Texas", Slug: "texas", Abbreviation: "TX", Active: false},
	}
	entries := []CoverageEntry{
		{
			ID:                        "entry-1",
			Name:                      "Sunrise Health",
			Slug:                      "sunrise-health",
			CoverageType:              "Insurance",
			RequiresStateConfirmation: true,
			SupportedStates:           []ReferenceState{states[0]},
		},
		{
			ID:              "entry-2",
			Name:            "Acme Employer",
			CoverageType:    "Employer",
			SupportedStates: []ReferenceState{},
		},
	}
	return New(entries, states, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
}

func TestNewDerivesCounts(t *testing.T) {
	snap := testSnapshot()

	if snap.TotalCoverageEntries != len(snap.CoverageEntries) {
		t.Errorf("TotalCoverageEntries = %d, len = %d", snap.TotalCoverageEntries, len(snap.CoverageEntries))
	}
	if snap.TotalCoverageStates != len(snap.CoverageStates) {
		t.Errorf("TotalCoverageStates = %d, len = %d", snap.TotalCoverageStates, len(snap.CoverageStates))
	}
	if snap.LastUpdated != "2024-06-01T12:00:00Z" {
		t.Errorf("LastUpdated = %q", snap.LastUpdated)
	}
}

func TestNewNilSlicesBecomeEmpty(t *testing.T) {
	snap := New(nil, nil, time.Now())

	if snap.CoverageEntries == nil || snap.CoverageStates == nil {
		t.Error("nil inputs must serialize as empty sequences, never null")
	}
}

func TestWriteThenRead(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "cms-data.json"))
	want := testSnapshot()

	if err := store.Write(want); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := store.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestWriteCreatesCacheDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ".cache", "cms-data.json")
	store := NewStore(path)

	if err := store.Write(testSnapshot()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !store.Exists() {
		t.Error("snapshot file missing after write")
	}
}

func TestWriteReplacesPrevious(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "cms-data.json"))

	first := testSnapshot()
	if err := store.Write(first); err != nil {
		t.Fatalf("Write: %v", err)
	}

	second := New(nil, first.CoverageStates, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
	if err := store.Write(second); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := store.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.TotalCoverageEntries != 0 || got.LastUpdated != "2024-07-01T00:00:00Z" {
		t.Errorf("read returned stale snapshot: %+v", got)
	}
}

func TestReadMissingFileReturnsErrNoCache(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "cms-data.json"))

	if _, err := store.Read(); !errors.Is(err, ErrNoCache) {
		t.Errorf("err = %v, want ErrNoCache", err)
	}
}

func TestReadCorruptFileReturnsErrNoCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cms-data.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(path)
	if _, err := store.Read(); !errors.Is(err, ErrNoCache) {
		t.Errorf("err = %v, want ErrNoCache", err)
	}
}

func TestReadIncompleteDocumentReturnsErrNoCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cms-data.json")
	// Valid JSON, but the state sequence is missing.
	doc := `{"coverageEntries": [], "totalCoverageEntries": 0, "lastUpdated": "2024-06-01T12:00:00Z"}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(path)
	if _, err := store.Read(); !errors.Is(err, ErrNoCache) {
		t.Errorf("err = %v, want ErrNoCache", err)
	}
}

func TestStats(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "cms-data.json"))

	stats := store.Stats()
	if stats.Exists || stats.ItemCount != 0 || stats.LastUpdated != nil {
		t.Errorf("empty cache stats = %+v", stats)
	}

	if err := store.Write(testSnapshot()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	stats = store.Stats()
	if !stats.Exists || stats.ItemCount != 2 {
		t.Errorf("stats after write = %+v", stats)
	}
	if stats.LastUpdated == nil || *stats.LastUpdated != "2024-06-01T12:00:00Z" {
		t.Errorf("LastUpdated = %v", stats.LastUpdated)
	}
}
