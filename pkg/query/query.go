// Package query implements read-side filtering and pagination over a
// coverage snapshot.
//
// Searches are pure functions of the snapshot: they never touch the upstream
// CMS or the on-disk cache, and they operate on whatever snapshot the caller
// passes in. Matching is a case-insensitive substring test on the entry name.
package query

import (
	"strings"

	"github.com/carebridge/cms-proxy/pkg/snapshot"
)

// Params are the caller-facing search knobs.
type Params struct {
	// Query is the name substring to match, case-insensitively.
	Query string

	// Limit caps the returned page. Zero or negative means unbounded.
	Limit int

	// Offset skips matches before pagination. Applied before Limit.
	Offset int

	// ShowAll makes an empty Query match every entry instead of none.
	ShowAll bool
}

// Result is one search page plus its pagination envelope. Limit echoes the
// effective page size: the requested limit, or the total match count when no
// limit was given.
type Result struct {
	Entries  []snapshot.CoverageEntry `json:"coverageEntries"`
	Total    int                      `json:"total"`
	Limit    int                      `json:"limit"`
	Offset   int                      `json:"offset"`
	Returned int                      `json:"returned"`
}

// Search filters snap's coverage entries by p and paginates the matches.
// Snapshot order is preserved; Total counts matches before pagination.
func Search(snap *snapshot.Snapshot, p Params) Result {
	matches := match(snap.CoverageEntries, p.Query, p.ShowAll)

	total := len(matches)

	offset := p.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	page := matches[offset:]

	if p.Limit > 0 && p.Limit < len(page) {
		page = page[:p.Limit]
	}

	limit := p.Limit
	if limit <= 0 {
		limit = total
	}

	// Copy so callers can hold the page without pinning the match slice.
	entries := make([]snapshot.CoverageEntry, len(page))
	copy(entries, page)

	return Result{
		Entries:  entries,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
		Returned: len(entries),
	}
}

func match(entries []snapshot.CoverageEntry, q string, showAll bool) []snapshot.CoverageEntry {
	// Whitespace-only queries count as empty, and padding never takes part
	// in matching.
	needle := strings.ToLower(strings.TrimSpace(q))
	if needle == "" {
		if !showAll {
			return nil
		}
		return entries
	}
	var matched []snapshot.CoverageEntry
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.Name), needle) {
			matched = append(matched, entry)
		}
	}
	return matched
}
