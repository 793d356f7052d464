// Package testutil provides testing utilities for the CMS cache proxy.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
)

// MockItem is one raw collection item served by the mock CMS.
type MockItem struct {
	ID          string         `json:"id"`
	LastUpdated string         `json:"lastUpdated,omitempty"`
	FieldData   map[string]any `json:"fieldData"`
}

// MockCMS is a configurable mock Webflow-like CMS server for testing. It
// serves /v2/collections/{id}/items/live honoring limit/offset pagination,
// and tracks request counts per collection.
type MockCMS struct {
	server *httptest.Server

	mu          sync.RWMutex
	collections map[string][]MockItem
	handlers    map[string]http.HandlerFunc
	failAfter   map[string]int // collection → request number at which to start failing

	RequestCounts map[string]int
	LastAuth      string
}

// NewMockCMS creates a new mock CMS server.
func NewMockCMS() *MockCMS {
	mock := &MockCMS{
		collections:   make(map[string][]MockItem),
		handlers:      make(map[string]http.HandlerFunc),
		failAfter:     make(map[string]int),
		RequestCounts: make(map[string]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(mock.serve))
	return mock
}

// URL returns the mock server URL.
func (m *MockCMS) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockCMS) Close() {
	m.server.Close()
}

// SetCollection configures the items served for a collection ID.
func (m *MockCMS) SetCollection(collectionID string, items []MockItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[collectionID] = items
}

// SetHandler overrides handling for one collection entirely.
func (m *MockCMS) SetHandler(collectionID string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[collectionID] = handler
}

// FailAfter makes the collection return 500 starting with the nth request
// (1-based). Used to exercise partial-pagination failures.
func (m *MockCMS) FailAfter(collectionID string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failAfter[collectionID] = n
}

// GetRequestCount returns the number of list calls made for a collection.
func (m *MockCMS) GetRequestCount(collectionID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCounts[collectionID]
}

// Reset clears tracking counters.
func (m *MockCMS) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCounts = make(map[string]int)
	m.LastAuth = ""
}

func (m *MockCMS) serve(w http.ResponseWriter, r *http.Request) {
	collectionID, ok := parseCollectionPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	m.mu.Lock()
	m.RequestCounts[collectionID]++
	count := m.RequestCounts[collectionID]
	m.LastAuth = r.Header.Get("Authorization")
	handler := m.handlers[collectionID]
	failAt := m.failAfter[collectionID]
	items := m.collections[collectionID]
	m.mu.Unlock()

	if handler != nil {
		handler(w, r)
		return
	}

	if failAt > 0 && count >= failAt {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"message": "internal error"}`)
		return
	}

	limit := queryInt(r, "limit", 100)
	offset := queryInt(r, "offset", 0)

	page := paginate(items, offset, limit)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{"items": page})
}

// parseCollectionPath extracts the collection ID from
// /v2/collections/{id}/items/live.
func parseCollectionPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 5 || parts[0] != "v2" || parts[1] != "collections" || parts[3] != "items" || parts[4] != "live" {
		return "", false
	}
	return parts[2], true
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func paginate(items []MockItem, offset, limit int) []MockItem {
	if offset >= len(items) {
		return []MockItem{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// CoverageStateItem builds a raw coverage-state item with the given active
// option ID.
func CoverageStateItem(id, name, abbrev, activeID string) MockItem {
	return MockItem{
		ID: id,
		FieldData: map[string]any{
			"name":               name,
			"slug":               strings.ToLower(name),
			"state-abbreviation": abbrev,
			"active":             activeID,
		},
	}
}
