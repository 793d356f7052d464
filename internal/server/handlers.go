package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/carebridge/cms-proxy/pkg/normalize"
	"github.com/carebridge/cms-proxy/pkg/query"
	"github.com/carebridge/cms-proxy/pkg/service"
	"github.com/carebridge/cms-proxy/pkg/snapshot"
	"github.com/carebridge/cms-proxy/pkg/webflow"
)

// CoverageService is the service surface the HTTP layer depends on.
type CoverageService interface {
	FetchLive(ctx context.Context) (*snapshot.Snapshot, error)
	Cached() (*snapshot.Snapshot, error)
	SearchLive(ctx context.Context, p query.Params) (query.Result, error)
	SearchCache(p query.Params) (query.Result, error)
	FetchLegalDocs(ctx context.Context, req normalize.LegalDocRequest) (service.LegalDocsResult, error)
	Refresh(ctx context.Context) (service.RefreshSummary, error)
	AuthorizeRefresh(authorization string) error
	CacheStats() snapshot.Stats
}

type handlers struct {
	svc CoverageService
}

// handleLiveFetch serves a freshly fetched, fully resolved snapshot without
// touching the cache.
func (h *handlers) handleLiveFetch(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.FetchLive(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, snap)
}

// handleCachedFetch serves the persisted snapshot.
func (h *handlers) handleCachedFetch(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Cached()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, snap)
}

func (h *handlers) handleLiveSearch(w http.ResponseWriter, r *http.Request) {
	params, ok := searchParams(w, r)
	if !ok {
		return
	}

	res, err := h.svc.SearchLive(r.Context(), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, res)
}

func (h *handlers) handleCachedSearch(w http.ResponseWriter, r *http.Request) {
	params, ok := searchParams(w, r)
	if !ok {
		return
	}
	params.ShowAll = r.URL.Query().Get("showAll") == "true"

	res, err := h.svc.SearchCache(params)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, res)
}

func (h *handlers) handleLegalDocs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	docType := normalize.DocType(q.Get("docType"))
	if docType == "" {
		docType = normalize.DocTypePrivacyPolicy
	}
	if !docType.Valid() {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("invalid docType %q, must be one of %v", string(docType), normalize.DocTypes()))
		return
	}

	country := q.Get("country")
	if country == "" {
		country = "Global"
	}

	res, err := h.svc.FetchLegalDocs(r.Context(), normalize.LegalDocRequest{
		DocType:            docType,
		Country:            country,
		ExcludeByLanguages: q.Get("excludeByLanguages"),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, res)
}

// webhookPayload is the publish notification body. Only the trigger type is
// of interest; it is echoed back for the CMS's delivery log.
type webhookPayload struct {
	TriggerType string `json:"triggerType"`
}

// handleWebhook triggers a snapshot refresh. The CMS calls this on publish.
func (h *handlers) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.AuthorizeRefresh(r.Header.Get("Authorization")); err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	// The body is informational; a missing or malformed payload still
	// triggers the refresh.
	var payload webhookPayload
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	summary, err := h.svc.Refresh(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "cache refreshed",
		Data: map[string]any{
			"triggerType": payload.TriggerType,
			"entryCount":  summary.EntryCount,
			"stateCount":  summary.StateCount,
			"lastUpdated": summary.LastUpdated,
		},
	})
}

func (h *handlers) handleStats(w http.ResponseWriter, r *http.Request) {
	writeData(w, h.svc.CacheStats())
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "ok"})
}

// searchParams parses q, limit, and offset. Reports false after writing a
// 400 response for malformed numbers.
func searchParams(w http.ResponseWriter, r *http.Request) (query.Params, bool) {
	q := r.URL.Query()

	limit, err := intParam(q.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "limit must be an integer")
		return query.Params{}, false
	}
	offset, err := intParam(q.Get("offset"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "offset must be an integer")
		return query.Params{}, false
	}

	return query.Params{Query: q.Get("q"), Limit: limit, Offset: offset}, true
}

func intParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// writeServiceError maps service-layer failures to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, snapshot.ErrNoCache):
		writeError(w, http.StatusNotFound, "no cached data available, trigger a refresh first")
	case errors.Is(err, service.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	default:
		var upstream *webflow.UpstreamError
		if errors.As(err, &upstream) {
			writeError(w, http.StatusBadGateway, upstream.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
