package normalize

import (
	"testing"

	"github.com/carebridge/cms-proxy/pkg/webflow"
)

func testLanguages(t *testing.T) []Language {
	t.Helper()
	engine := NewEngine(testTable())
	return engine.Languages([]webflow.RawItem{
		rawItem(t, "lang-en", "", map[string]any{
			"name": "English", "slug": "english", "language-code": "en", "text-direction": "opt-ltr",
		}),
		rawItem(t, "lang-ar", "", map[string]any{
			"name": "Arabic", "slug": "arabic", "language-code": "ar", "text-direction": "opt-rtl",
		}),
	})
}

func TestLanguages(t *testing.T) {
	langs := testLanguages(t)

	if len(langs) != 2 {
		t.Fatalf("expected 2 languages, got %d", len(langs))
	}
	if langs[0].TextDirection != "LTR" || langs[1].TextDirection != "RTL" {
		t.Errorf("text directions = %q, %q", langs[0].TextDirection, langs[1].TextDirection)
	}
}

func TestLanguagesUnknownDirectionPassesThrough(t *testing.T) {
	engine := NewEngine(testTable())

	langs := engine.Languages([]webflow.RawItem{
		rawItem(t, "lang-x", "", map[string]any{"name": "X", "text-direction": "opt-unmapped"}),
	})

	if langs[0].TextDirection != "opt-unmapped" {
		t.Errorf("unknown text direction = %q, want raw id", langs[0].TextDirection)
	}
}

func testLegalDocItems(t *testing.T) []webflow.RawItem {
	t.Helper()
	return []webflow.RawItem{
		rawItem(t, "doc-en", "2024-05-01T10:00:00Z", map[string]any{
			"name":     "Privacy Policy (EN)",
			"slug":     "privacy-en",
			"country":  "opt-global",
			"language": "lang-en",
			"body":     "<p>english privacy text</p>",
			"last-updated-date-privacy-policy": "May 1, 2024",
			"terms-of-services":                "<p>english terms</p>",
			"internal-review-status":           "approved",
		}),
		rawItem(t, "doc-ar", "2024-06-15T08:30:00Z", map[string]any{
			"name":     "Privacy Policy (AR)",
			"slug":     "privacy-ar",
			"country":  "opt-global",
			"language": "lang-ar",
			"body":     "<p>arabic privacy text</p>",
			"last-updated-date-privacy-policy": "June 15, 2024",
		}),
		rawItem(t, "doc-empty", "2024-04-20T12:00:00Z", map[string]any{
			"name":    "Privacy Policy (US draft)",
			"slug":    "privacy-us",
			"country": "opt-us",
			"body":    "",
		}),
	}
}

func TestLegalDocsDropEmpty(t *testing.T) {
	engine := NewEngine(testTable())
	langs := testLanguages(t)

	docs, _ := engine.LegalDocs(testLegalDocItems(t), langs,
		LegalDocRequest{DocType: DocTypePrivacyPolicy}, PolicyDropEmpty)

	if len(docs) != 2 {
		t.Fatalf("expected 2 docs (blank content dropped), got %d", len(docs))
	}
	for _, doc := range docs {
		if doc.Content == "" {
			t.Errorf("doc %s has empty content under drop-empty policy", doc.ID)
		}
	}
}

func TestLegalDocsIncludeEmptyKeepsBlankContent(t *testing.T) {
	engine := NewEngine(testTable())
	langs := testLanguages(t)

	docs, _ := engine.LegalDocs(testLegalDocItems(t), langs,
		LegalDocRequest{DocType: DocTypePrivacyPolicy, Country: "United States"}, PolicyIncludeEmpty)

	if len(docs) != 1 {
		t.Fatalf("expected 1 US doc, got %d", len(docs))
	}
	if docs[0].ID != "doc-empty" {
		t.Errorf("got doc %s, want doc-empty", docs[0].ID)
	}
	if docs[0].Content != "" {
		t.Errorf("blank content must survive include-empty policy, got %q", docs[0].Content)
	}
}

func TestLegalDocsExcludeByLanguages(t *testing.T) {
	engine := NewEngine(testTable())
	langs := testLanguages(t)
	items := testLegalDocItems(t)

	tests := []struct {
		name    string
		exclude string
		wantIDs []string
	}{
		{"single code", "ar", []string{"doc-en"}},
		{"case insensitive with spaces", " AR , FR ", []string{"doc-en"}},
		{"no match keeps all", "de", []string{"doc-en", "doc-ar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, _ := engine.LegalDocs(items, langs,
				LegalDocRequest{DocType: DocTypePrivacyPolicy, ExcludeByLanguages: tt.exclude}, PolicyDropEmpty)

			gotIDs := make([]string, 0, len(docs))
			for _, doc := range docs {
				gotIDs = append(gotIDs, doc.ID)
			}
			if len(gotIDs) != len(tt.wantIDs) {
				t.Fatalf("doc IDs = %v, want %v", gotIDs, tt.wantIDs)
			}
			for i, id := range tt.wantIDs {
				if gotIDs[i] != id {
					t.Errorf("doc IDs = %v, want %v", gotIDs, tt.wantIDs)
				}
			}
		})
	}
}

func TestLegalDocsNoLanguageSurvivesExclusion(t *testing.T) {
	engine := NewEngine(testTable())

	docs, _ := engine.LegalDocs([]webflow.RawItem{
		rawItem(t, "doc-nolang", "", map[string]any{
			"name": "Unlocalized", "body": "<p>text</p>",
		}),
	}, nil, LegalDocRequest{DocType: DocTypePrivacyPolicy, ExcludeByLanguages: "en,ar"}, PolicyDropEmpty)

	if len(docs) != 1 {
		t.Fatal("document without a language must never be excluded by language filter")
	}
	if docs[0].Language != nil {
		t.Error("expected nil language")
	}
}

func TestLegalDocsProjection(t *testing.T) {
	engine := NewEngine(testTable())
	langs := testLanguages(t)

	docs, _ := engine.LegalDocs(testLegalDocItems(t), langs,
		LegalDocRequest{DocType: DocTypePrivacyPolicy}, PolicyDropEmpty)

	doc := docs[0]
	if doc.Content != "<p>english privacy text</p>" {
		t.Errorf("privacy content must come from the legacy body field, got %q", doc.Content)
	}
	if doc.LastUpdatedDate != "May 1, 2024" {
		t.Errorf("LastUpdatedDate = %q", doc.LastUpdatedDate)
	}
	if doc.Country != "Global" {
		t.Errorf("Country = %q, want Global", doc.Country)
	}
	if doc.Language == nil || doc.Language.LanguageCode != "en" {
		t.Errorf("Language = %+v", doc.Language)
	}

	// Fields belonging to other doc types are handled, not spilled into
	// the extra bag; genuinely unknown fields are.
	if _, ok := doc.Extra["terms-of-services"]; ok {
		t.Error("other doc-type content leaked into Extra")
	}
	if _, ok := doc.Extra["internal-review-status"]; !ok {
		t.Error("unrecognized field missing from Extra")
	}
}

func TestLegalDocsMaxLastUpdated(t *testing.T) {
	engine := NewEngine(testTable())
	langs := testLanguages(t)

	// doc-ar carries the latest timestamp; the dropped blank doc still
	// participates in the computation.
	docs, last := engine.LegalDocs(testLegalDocItems(t), langs,
		LegalDocRequest{DocType: DocTypePrivacyPolicy, ExcludeByLanguages: "ar"}, PolicyDropEmpty)

	if len(docs) != 1 {
		t.Fatalf("expected 1 doc after exclusion, got %d", len(docs))
	}
	if last != "2024-06-15T08:30:00Z" {
		t.Errorf("lastUpdated = %q, want the maximum across all raw items", last)
	}
}

func TestLegalDocsMaxLastUpdatedIgnoresUnparseable(t *testing.T) {
	engine := NewEngine(testTable())

	_, last := engine.LegalDocs([]webflow.RawItem{
		rawItem(t, "doc-a", "not-a-timestamp", map[string]any{"body": "x"}),
		rawItem(t, "doc-b", "2024-01-02T00:00:00Z", map[string]any{"body": "y"}),
	}, nil, LegalDocRequest{DocType: DocTypePrivacyPolicy}, PolicyDropEmpty)

	if last != "2024-01-02T00:00:00Z" {
		t.Errorf("lastUpdated = %q", last)
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    LegalDocPolicy
		wantErr bool
	}{
		{"", PolicyDropEmpty, false},
		{"drop-empty", PolicyDropEmpty, false},
		{"include-empty", PolicyIncludeEmpty, false},
		{"bogus", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePolicy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDocTypes(t *testing.T) {
	all := DocTypes()
	if len(all) != 7 {
		t.Fatalf("expected 7 document types, got %d", len(all))
	}
	for _, dt := range all {
		if !dt.Valid() {
			t.Errorf("%s reported invalid", dt)
		}
	}
	if DocType("nonsense").Valid() {
		t.Error("unknown doc type reported valid")
	}
}
