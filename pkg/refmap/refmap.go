// Package refmap provides the static mapping tables that translate opaque
// CMS option IDs into semantic labels.
//
// The CMS models enum-like fields (coverage type, yes/no flags, text
// direction, country) as references to option items; the raw values are
// meaningless 32-character hex IDs. The tables here are the only place those
// IDs are known. They are plain immutable data injected into the
// normalization engine at construction, never consulted as package globals by
// the engine itself, which keeps the core testable with synthetic tables.
package refmap

// Map translates one option field's raw CMS IDs to labels.
type Map map[string]string

// Resolve returns the label for id, or fallback when the id is unknown.
// Unknown IDs are a lenient-degradation case: one unrecognized option value
// must not abort a refresh.
func (m Map) Resolve(id, fallback string) string {
	if label, ok := m[id]; ok {
		return label
	}
	return fallback
}

// ResolvePassthrough returns the label for id, or the raw id unchanged when
// unknown. Used for fields (text direction) where the upstream value is still
// meaningful to callers.
func (m Map) ResolvePassthrough(id string) string {
	if label, ok := m[id]; ok {
		return label
	}
	return id
}

// Yes and No are the labels used by every boolean option map.
const (
	Yes = "Yes"
	No  = "No"
)

// Coverage type labels.
const (
	CoverageTypeInsurance = "Insurance"
	CoverageTypeEmployer  = "Employer"
)

// Table bundles every reference map the denormalization engine needs.
type Table struct {
	CoverageType              Map
	RequiresStateConfirmation Map
	IsCensusLess              Map
	RequireState              Map
	ActiveState               Map
	TextDirection             Map
	Country                   Map
}

// Defaults returns the production reference maps for the configured CMS site.
func Defaults() Table {
	return Table{
		CoverageType: Map{
			"c8270edd86a0eb63a90120a822d41326": CoverageTypeInsurance,
			"b84c9bf1367293298afe87887c7e73bb": CoverageTypeEmployer,
		},
		RequiresStateConfirmation: Map{
			"b774603e40818123b3a49ac43f5e7034": Yes,
			"ed61b92c476ce35de7f6493560a2c935": No,
		},
		IsCensusLess: Map{
			"2543f0ece89a6a83f0fa959bd84c2c2c": Yes,
			"2c93e5dd9a59f9be16ce54b2e1545ed8": No,
		},
		RequireState: Map{
			"5a073343a2b278ef5d8c16b38cc713a1": Yes,
			"26e5f0e84cc4132e34edb4ae2312d5c6": No,
		},
		ActiveState: Map{
			"a8ac7e938f24222d6ea8f86dd22eba91": Yes,
			"46d3df70e583c3309c7429b9549b7160": No,
		},
		TextDirection: Map{
			"8173290e3491968bfc59920118921eb7": "LTR",
			"36902cbe0d00e36708fa7da106ead1a4": "RTL",
		},
		Country: Map{
			"74d2f4a0c1b8e95d3f6a8b07c2e41d95": "Global",
			"e1c59b3a7f2d4680b9c3d5a1f08e6274": "United States",
		},
	}
}
