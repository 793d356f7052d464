package server

import (
	"net/http"

	"github.com/carebridge/cms-proxy/pkg/normalize"
)

// Route describes one API endpoint for the explorer UI.
type Route struct {
	Method      string   `json:"method"`
	Path        string   `json:"path"`
	Description string   `json:"description"`
	Query       []string `json:"queryParams,omitempty"`
}

// apiRoutes is the machine-readable route catalog served at /api/routes and
// rendered by the explorer page.
var apiRoutes = []Route{
	{
		Method:      http.MethodGet,
		Path:        "/api/cms/fetch",
		Description: "Fetch and resolve the coverage collections live, bypassing the cache",
	},
	{
		Method:      http.MethodGet,
		Path:        "/api/cms/coverage-entries/fetch",
		Description: "Fetch and resolve the coverage collections live",
	},
	{
		Method:      http.MethodGet,
		Path:        "/api/cms/coverage-entries/cached",
		Description: "Return the persisted coverage snapshot",
	},
	{
		Method:      http.MethodGet,
		Path:        "/api/cms/search",
		Description: "Search coverage entries against live data; empty queries match nothing",
		Query:       []string{"q", "limit", "offset"},
	},
	{
		Method:      http.MethodGet,
		Path:        "/api/cms/coverage-entries/search",
		Description: "Search coverage entries against the cached snapshot",
		Query:       []string{"q", "limit", "offset", "showAll"},
	},
	{
		Method:      http.MethodGet,
		Path:        "/api/cms/legal-docs/fetch",
		Description: "Fetch legal documents projected to one document type",
		Query:       []string{"docType", "country", "excludeByLanguages"},
	},
	{
		Method:      http.MethodPost,
		Path:        "/api/cms/webhook",
		Description: "Refresh the coverage snapshot; authenticated via bearer secret when configured",
	},
	{
		Method:      http.MethodGet,
		Path:        "/api/cms/stats",
		Description: "Report cache presence, entry count, and last refresh time",
	},
	{
		Method:      http.MethodGet,
		Path:        "/health",
		Description: "Liveness probe",
	},
	{
		Method:      http.MethodGet,
		Path:        "/metrics",
		Description: "Prometheus metrics",
	},
}

func handleRoutes(w http.ResponseWriter, r *http.Request) {
	writeData(w, map[string]any{
		"routes":   apiRoutes,
		"docTypes": normalize.DocTypes(),
	})
}
