package normalize

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/carebridge/cms-proxy/pkg/webflow"
)

// Language is one localization with its text direction resolved. Unknown
// text-direction IDs pass through unchanged rather than defaulting.
type Language struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	LanguageCode  string `json:"languageCode"`
	TextDirection string `json:"textDirection"`
}

// LegalDoc is one localized legal text projected to a single requested
// document type: exactly one content field and its matching date are
// surfaced. Unrecognized raw fields ride along in Extra as an explicit
// bounded bag rather than being spread into the object dynamically.
type LegalDoc struct {
	ID              string                     `json:"id"`
	Name            string                     `json:"name"`
	Slug            string                     `json:"slug"`
	Country         string                     `json:"country,omitempty"`
	Language        *Language                  `json:"language,omitempty"`
	Content         string                     `json:"content"`
	LastUpdatedDate string                     `json:"lastUpdatedDate"`
	Extra           map[string]json.RawMessage `json:"extra,omitempty"`
}

// LegalDocPolicy selects between the two upstream projection generations.
type LegalDocPolicy string

const (
	// PolicyIncludeEmpty is the older generation: every country-matched
	// document is included, substituting an empty string when the requested
	// content field is blank.
	PolicyIncludeEmpty LegalDocPolicy = "include-empty"

	// PolicyDropEmpty is the newer generation: documents whose requested
	// content field is blank are dropped entirely, and a language-exclusion
	// filter is available.
	PolicyDropEmpty LegalDocPolicy = "drop-empty"
)

// ParsePolicy validates a configured policy name. Empty input selects the
// newer generation.
func ParsePolicy(s string) (LegalDocPolicy, error) {
	switch LegalDocPolicy(s) {
	case "":
		return PolicyDropEmpty, nil
	case PolicyIncludeEmpty, PolicyDropEmpty:
		return LegalDocPolicy(s), nil
	default:
		return "", fmt.Errorf("unknown legal-docs policy %q", s)
	}
}

// LegalDocRequest holds the per-request projection filters.
type LegalDocRequest struct {
	DocType DocType

	// Country filters documents by resolved country label. Only honored by
	// PolicyIncludeEmpty; the newer generation removed the filter.
	Country string

	// ExcludeByLanguages is a comma-separated, case-insensitive list of
	// language codes to remove. Only honored by PolicyDropEmpty. Documents
	// with no resolved language are always kept.
	ExcludeByLanguages string
}

// Languages resolves raw language items, preserving input order.
func (e *Engine) Languages(raw []webflow.RawItem) []Language {
	langs := make([]Language, 0, len(raw))
	for _, item := range raw {
		fields := gjson.ParseBytes(item.FieldData)
		langs = append(langs, Language{
			ID:            item.ID,
			Name:          fields.Get("name").String(),
			Slug:          fields.Get("slug").String(),
			LanguageCode:  fields.Get("language-code").String(),
			TextDirection: e.maps.TextDirection.ResolvePassthrough(fields.Get("text-direction").String()),
		})
	}
	return langs
}

// LegalDocs projects raw legal-document items to the requested document type
// under the given policy. The second return value is the maximum top-level
// lastUpdated timestamp seen across all raw items, independent of filtering;
// empty when no item carries one.
func (e *Engine) LegalDocs(raw []webflow.RawItem, languages []Language, req LegalDocRequest, policy LegalDocPolicy) ([]LegalDoc, string) {
	fieldNames, ok := docTypeTable[req.DocType]
	if !ok {
		// Callers validate the doc type at the boundary; an unknown type
		// here projects nothing.
		return []LegalDoc{}, maxLastUpdated(raw)
	}

	langByID := make(map[string]Language, len(languages))
	for _, lang := range languages {
		langByID[lang.ID] = lang
	}

	excluded := parseLanguageFilter(req.ExcludeByLanguages)

	docs := make([]LegalDoc, 0, len(raw))
	for _, item := range raw {
		fields := gjson.ParseBytes(item.FieldData)

		doc := LegalDoc{
			ID:              item.ID,
			Name:            fields.Get("name").String(),
			Slug:            fields.Get("slug").String(),
			Content:         fields.Get(fieldNames.content).String(),
			LastUpdatedDate: fields.Get(fieldNames.lastUpdated).String(),
			Extra:           e.extraFields(fields),
		}

		if countryID := fields.Get("country").String(); countryID != "" {
			doc.Country = e.maps.Country.ResolvePassthrough(countryID)
		}
		if lang, ok := langByID[fields.Get("language").String()]; ok {
			langCopy := lang
			doc.Language = &langCopy
		}

		switch policy {
		case PolicyIncludeEmpty:
			if req.Country != "" && doc.Country != req.Country {
				continue
			}
		default: // PolicyDropEmpty
			if doc.Content == "" {
				continue
			}
			if doc.Language != nil && excluded[strings.ToLower(doc.Language.LanguageCode)] {
				continue
			}
		}

		docs = append(docs, doc)
	}

	return docs, maxLastUpdated(raw)
}

// knownLegalDocFields are the raw keys handled explicitly; everything else
// lands in the Extra bag. The formatting switch field is internal to the CMS
// editors and never surfaced.
var knownLegalDocFields = func() map[string]bool {
	known := map[string]bool{
		"name":     true,
		"slug":     true,
		"country":  true,
		"language": true,
		"switch-this-to-yes-if-all-three-docs-are-formatted": true,
	}
	for _, f := range docTypeTable {
		known[f.content] = true
		known[f.lastUpdated] = true
	}
	return known
}()

func (e *Engine) extraFields(fields gjson.Result) map[string]json.RawMessage {
	var extra map[string]json.RawMessage
	fields.ForEach(func(key, value gjson.Result) bool {
		if knownLegalDocFields[key.String()] {
			return true
		}
		if extra == nil {
			extra = make(map[string]json.RawMessage)
		}
		extra[key.String()] = json.RawMessage(value.Raw)
		return true
	})
	return extra
}

// parseLanguageFilter splits a comma-separated language-code list into a
// lowercase lookup set.
func parseLanguageFilter(s string) map[string]bool {
	set := make(map[string]bool)
	for _, code := range strings.Split(s, ",") {
		code = strings.ToLower(strings.TrimSpace(code))
		if code != "" {
			set[code] = true
		}
	}
	return set
}

// maxLastUpdated returns the raw timestamp string of the latest top-level
// lastUpdated across items. Unparseable values are ignored.
func maxLastUpdated(items []webflow.RawItem) string {
	var maxTime time.Time
	var maxRaw string
	for _, item := range items {
		if item.LastUpdated == "" {
			continue
		}
		ts, err := time.Parse(time.RFC3339, item.LastUpdated)
		if err != nil {
			continue
		}
		if ts.After(maxTime) {
			maxTime = ts
			maxRaw = item.LastUpdated
		}
	}
	return maxRaw
}
