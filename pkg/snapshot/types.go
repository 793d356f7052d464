package snapshot

import "time"

// ReferenceState is one coverage region with its active flag resolved.
// The full set is rebuilt from raw CMS data on every refresh and replaced
// atomically; individual states are never mutated in place.
type ReferenceState struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Abbreviation string `json:"abbreviation"`
	Active       bool   `json:"active"`
}

// CoverageEntry is one coverage-program record with every reference resolved.
//
// SupportedStates is computed, not independently settable: it is always empty
// when RequiresStateConfirmation is false, and contains only active states
// otherwise.
type CoverageEntry struct {
	ID                        string           `json:"id"`
	Name                      string           `json:"name"`
	Slug                      string           `json:"slug"`
	CoverageType              string           `json:"coverageType"`
	PayerParameter            string           `json:"payerParameter"`
	DirectorySlug             string           `json:"directorySlug"`
	Notes                     string           `json:"notes"`
	IsCensusLess              bool             `json:"isCensusLess"`
	RequiresStateConfirmation bool             `json:"requiresStateConfirmation"`
	RequireState              bool             `json:"requireState"`
	SupportedStates           []ReferenceState `json:"supportedStates"`
}

// Snapshot is the cache payload: one denormalized copy of the coverage
// collections plus its creation timestamp.
type Snapshot struct {
	CoverageEntries      []CoverageEntry  `json:"coverageEntries"`
	CoverageStates       []ReferenceState `json:"coverageStateMap"`
	TotalCoverageEntries int              `json:"totalCoverageEntries"`
	TotalCoverageStates  int              `json:"totalCoverageStateMap"`
	LastUpdated          string           `json:"lastUpdated"`
}

// New assembles a snapshot, deriving the counts so they always equal the
// length of their sequences.
func New(entries []CoverageEntry, states []ReferenceState, now time.Time) *Snapshot {
	if entries == nil {
		entries = []CoverageEntry{}
	}
	if states == nil {
		states = []ReferenceState{}
	}
	return &Snapshot{
		CoverageEntries:      entries,
		CoverageStates:       states,
		TotalCoverageEntries: len(entries),
		TotalCoverageStates:  len(states),
		LastUpdated:          now.UTC().Format(time.RFC3339),
	}
}

// valid reports whether a stored document carries the required fields.
// Mirrors the read-side validation of the persisted layout: both sequences
// must be present (possibly empty, never null).
func (s *Snapshot) valid() bool {
	return s != nil && s.CoverageEntries != nil && s.CoverageStates != nil
}
