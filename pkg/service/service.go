package service

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/carebridge/cms-proxy/pkg/logging"
	"github.com/carebridge/cms-proxy/pkg/normalize"
	"github.com/carebridge/cms-proxy/pkg/query"
	"github.com/carebridge/cms-proxy/pkg/snapshot"
	"github.com/carebridge/cms-proxy/pkg/webflow"
)

// CMS is the upstream surface the service needs: a full paginated fetch of
// one collection.
type CMS interface {
	FetchAll(ctx context.Context, collectionID string) ([]webflow.RawItem, error)
}

// Collections holds the CMS collection IDs the service operates on.
type Collections struct {
	CoverageEntries string
	CoverageStates  string
	LegalDocs       string
	Languages       string
}

// Config holds the service configuration.
type Config struct {
	Collections Collections

	// WebhookSecret guards the refresh webhook. Empty disables
	// authentication.
	WebhookSecret string

	// LegalDocPolicy selects the legal-docs projection generation.
	LegalDocPolicy normalize.LegalDocPolicy
}

// Service wires the CMS client, normalization engine, and snapshot store
// into the exposed operations.
type Service struct {
	cms    CMS
	engine *normalize.Engine
	store  *snapshot.Store
	config Config
	logger zerolog.Logger
	now    func() time.Time
}

// New creates a service. The store may be shared with other processes; the
// last completed refresh wins.
func New(cms CMS, engine *normalize.Engine, store *snapshot.Store, cfg Config) *Service {
	return &Service{
		cms:    cms,
		engine: engine,
		store:  store,
		config: cfg,
		logger: logging.NewLogger("service"),
		now:    time.Now,
	}
}

// fetchCoverage pulls and normalizes both coverage collections. States are
// fetched first because entry resolution links against them.
func (s *Service) fetchCoverage(ctx context.Context) (*snapshot.Snapshot, error) {
	rawStates, err := s.cms.FetchAll(ctx, s.config.Collections.CoverageStates)
	if err != nil {
		return nil, err
	}
	rawEntries, err := s.cms.FetchAll(ctx, s.config.Collections.CoverageEntries)
	if err != nil {
		return nil, err
	}

	states := s.engine.States(rawStates)
	entries := s.engine.CoverageEntries(rawEntries, states)
	return snapshot.New(entries, states, s.now()), nil
}

// FetchLive fetches and resolves the coverage collections without touching
// the cache. The returned snapshot exists only in memory.
func (s *Service) FetchLive(ctx context.Context) (*snapshot.Snapshot, error) {
	return s.fetchCoverage(ctx)
}

// RefreshSummary describes one completed refresh.
type RefreshSummary struct {
	EntryCount  int           `json:"entryCount"`
	StateCount  int           `json:"stateCount"`
	LastUpdated string        `json:"lastUpdated"`
	Duration    time.Duration `json:"-"`
}

// Refresh rebuilds the snapshot from the upstream CMS and persists it. On
// any fetch or write error the previous snapshot remains in place.
func (s *Service) Refresh(ctx context.Context) (RefreshSummary, error) {
	start := time.Now()

	snap, err := s.fetchCoverage(ctx)
	if err != nil {
		RefreshTotal.WithLabelValues("fetch_error").Inc()
		s.logger.Error().Err(err).Msg("Refresh aborted, keeping previous snapshot")
		return RefreshSummary{}, err
	}

	if err := s.store.Write(snap); err != nil {
		RefreshTotal.WithLabelValues("write_error").Inc()
		return RefreshSummary{}, err
	}

	duration := time.Since(start)
	RefreshTotal.WithLabelValues("success").Inc()
	RefreshDuration.Observe(duration.Seconds())

	s.logger.Info().
		Int("entries", snap.TotalCoverageEntries).
		Int("states", snap.TotalCoverageStates).
		Dur("duration", duration).
		Msg("Snapshot refreshed")

	return RefreshSummary{
		EntryCount:  snap.TotalCoverageEntries,
		StateCount:  snap.TotalCoverageStates,
		LastUpdated: snap.LastUpdated,
		Duration:    duration,
	}, nil
}

// AuthorizeRefresh checks a webhook Authorization header against the
// configured secret. With no secret configured every caller is authorized.
func (s *Service) AuthorizeRefresh(authorization string) error {
	if s.config.WebhookSecret == "" {
		return nil
	}

	token, ok := strings.CutPrefix(authorization, "Bearer ")
	if !ok {
		return ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.config.WebhookSecret)) != 1 {
		return ErrUnauthorized
	}
	return nil
}

// Cached returns the persisted snapshot, or snapshot.ErrNoCache when none
// has been written yet.
func (s *Service) Cached() (*snapshot.Snapshot, error) {
	return s.store.Read()
}

// SearchCache runs a search against the persisted snapshot. Returns
// snapshot.ErrNoCache when no snapshot has been persisted yet.
func (s *Service) SearchCache(p query.Params) (query.Result, error) {
	snap, err := s.store.Read()
	if err != nil {
		return query.Result{}, err
	}
	SearchTotal.WithLabelValues("cache").Inc()
	return query.Search(snap, p), nil
}

// SearchLive fetches fresh coverage data and searches it. The live route
// never honors showAll: an empty query yields an empty result.
func (s *Service) SearchLive(ctx context.Context, p query.Params) (query.Result, error) {
	snap, err := s.fetchCoverage(ctx)
	if err != nil {
		return query.Result{}, err
	}
	p.ShowAll = false
	SearchTotal.WithLabelValues("live").Inc()
	return query.Search(snap, p), nil
}

// LegalDocsResult is one projected legal-document set plus the latest
// upstream modification timestamp across the whole collection. The count
// covers only the documents that survived projection.
type LegalDocsResult struct {
	Docs        []normalize.LegalDoc `json:"legalDocs"`
	TotalDocs   int                  `json:"totalLegalDocs"`
	LastUpdated string               `json:"lastUpdated,omitempty"`
}

// FetchLegalDocs fetches and projects the legal-document collection for one
// document type. Always live; legal docs are not snapshotted.
func (s *Service) FetchLegalDocs(ctx context.Context, req normalize.LegalDocRequest) (LegalDocsResult, error) {
	rawLangs, err := s.cms.FetchAll(ctx, s.config.Collections.Languages)
	if err != nil {
		return LegalDocsResult{}, err
	}
	rawDocs, err := s.cms.FetchAll(ctx, s.config.Collections.LegalDocs)
	if err != nil {
		return LegalDocsResult{}, err
	}

	languages := s.engine.Languages(rawLangs)
	docs, lastUpdated := s.engine.LegalDocs(rawDocs, languages, req, s.config.LegalDocPolicy)
	return LegalDocsResult{Docs: docs, TotalDocs: len(docs), LastUpdated: lastUpdated}, nil
}

// CacheStats reports the persisted snapshot state.
func (s *Service) CacheStats() snapshot.Stats {
	return s.store.Stats()
}
