package normalize

import (
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/carebridge/cms-proxy/pkg/logging"
	"github.com/carebridge/cms-proxy/pkg/refmap"
	"github.com/carebridge/cms-proxy/pkg/snapshot"
	"github.com/carebridge/cms-proxy/pkg/webflow"
)

// Engine resolves raw CMS items into domain objects using injected
// reference maps.
type Engine struct {
	maps   refmap.Table
	logger zerolog.Logger
}

// NewEngine creates an engine bound to the given reference maps.
func NewEngine(maps refmap.Table) *Engine {
	return &Engine{
		maps:   maps,
		logger: logging.NewLogger("normalize"),
	}
}

// States resolves raw coverage-state items. Input order is preserved; the
// active flag is reference-mapped with unknown raw values defaulting to
// inactive.
func (e *Engine) States(raw []webflow.RawItem) []snapshot.ReferenceState {
	states := make([]snapshot.ReferenceState, 0, len(raw))
	for _, item := range raw {
		fields := gjson.ParseBytes(item.FieldData)
		states = append(states, snapshot.ReferenceState{
			ID:           item.ID,
			Name:         fields.Get("name").String(),
			Slug:         fields.Get("slug").String(),
			Abbreviation: fields.Get("state-abbreviation").String(),
			Active:       e.resolveFlag(e.maps.ActiveState, fields.Get("active").String(), "active"),
		})
	}
	return states
}

// CoverageEntries resolves raw entry items against an already-resolved state
// sequence, applying the supported-states rule table per entry.
func (e *Engine) CoverageEntries(raw []webflow.RawItem, states []snapshot.ReferenceState) []snapshot.CoverageEntry {
	stateByID := make(map[string]snapshot.ReferenceState, len(states))
	activeStates := make([]snapshot.ReferenceState, 0, len(states))
	for _, st := range states {
		stateByID[st.ID] = st
		if st.Active {
			activeStates = append(activeStates, st)
		}
	}

	entries := make([]snapshot.CoverageEntry, 0, len(raw))
	for _, item := range raw {
		fields := gjson.ParseBytes(item.FieldData)

		requiresConfirmation := e.resolveFlag(e.maps.RequiresStateConfirmation, fields.Get("requires-state-confirmation").String(), "requires-state-confirmation")
		requireState := e.resolveFlag(e.maps.RequireState, fields.Get("require-state").String(), "require-state")

		entries = append(entries, snapshot.CoverageEntry{
			ID:                        item.ID,
			Name:                      fields.Get("name").String(),
			Slug:                      fields.Get("slug").String(),
			CoverageType:              e.maps.CoverageType.Resolve(fields.Get("coverage-type").String(), refmap.CoverageTypeEmployer),
			PayerParameter:            fields.Get("payer-parameter").String(),
			DirectorySlug:             fields.Get("insurance-directory-slug").String(),
			Notes:                     fields.Get("coverage-notes").String(),
			IsCensusLess:              e.resolveFlag(e.maps.IsCensusLess, fields.Get("is-insurance-census-less").String(), "is-insurance-census-less"),
			RequiresStateConfirmation: requiresConfirmation,
			RequireState:              requireState,
			SupportedStates:           e.supportedStates(fields, requiresConfirmation, requireState, stateByID, activeStates),
		})
	}
	return entries
}

// supportedStates applies the rule table:
//
//	!requiresConfirmation                  → empty
//	requiresConfirmation && !requireState  → copy of all active states
//	requiresConfirmation && requireState   → linked IDs resolved, unknown
//	                                         dropped, inactive filtered out
func (e *Engine) supportedStates(fields gjson.Result, requiresConfirmation, requireState bool, stateByID map[string]snapshot.ReferenceState, activeStates []snapshot.ReferenceState) []snapshot.ReferenceState {
	if !requiresConfirmation {
		return []snapshot.ReferenceState{}
	}

	if !requireState {
		out := make([]snapshot.ReferenceState, len(activeStates))
		copy(out, activeStates)
		return out
	}

	linked := fields.Get("supported-states").Array()
	out := make([]snapshot.ReferenceState, 0, len(linked))
	for _, idResult := range linked {
		st, ok := stateByID[idResult.String()]
		if !ok {
			e.logger.Debug().Str("state_id", idResult.String()).Msg("Linked state not found, dropping")
			continue
		}
		if !st.Active {
			continue
		}
		out = append(out, st)
	}
	return out
}

// resolveFlag maps a raw yes/no option ID to a bool, defaulting to false for
// unknown values.
func (e *Engine) resolveFlag(m refmap.Map, rawID, field string) bool {
	label, known := m[rawID]
	if !known {
		if rawID != "" {
			e.logger.Debug().Str("field", field).Str("raw_id", rawID).Msg("Unknown option id, using default")
		}
		return false
	}
	return label == refmap.Yes
}
