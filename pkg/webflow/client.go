package webflow

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/carebridge/cms-proxy/pkg/logging"
)

// Prometheus metrics for CMS API operations.
var (
	cmsRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cms_requests_total",
		Help: "Total CMS API requests by collection and status",
	}, []string{"collection", "status"})

	cmsRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cms_request_duration_seconds",
		Help:    "CMS API request duration in seconds by collection",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"collection"})

	cmsErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cms_errors_total",
		Help: "Total CMS API errors by class",
	}, []string{"class"})
)

// RawItem is one unprocessed CMS collection item. FieldData is kept as raw
// JSON; the normalization engine extracts typed values from it.
type RawItem struct {
	ID          string          `json:"id"`
	LastUpdated string          `json:"lastUpdated,omitempty"`
	FieldData   json.RawMessage `json:"fieldData"`
}

// listResponse is the wire shape of a live-items list call.
type listResponse struct {
	Items []RawItem `json:"items"`
}

// ListOptions control one list call.
type ListOptions struct {
	Limit     int
	Offset    int
	SortBy    string
	SortOrder string
}

// Config holds the client configuration.
type Config struct {
	// Token is the API bearer token (required).
	Token string

	// BaseURL is the API host, overridable for self-hosted gateways and tests.
	BaseURL string

	// PageSize is the page size used by FetchAll. The API caps pages at 100.
	PageSize int

	// HTTPTimeout bounds a single list call.
	HTTPTimeout time.Duration

	// MaxRetries is the number of transport-level retries per call.
	MaxRetries int
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(token string) Config {
	return Config{
		Token:       token,
		BaseURL:     "https://api.webflow.com",
		PageSize:    100,
		HTTPTimeout: 30 * time.Second,
		MaxRetries:  3,
	}
}

// Client is the CMS API client.
type Client struct {
	httpClient *retryablehttp.Client
	config     Config
	logger     zerolog.Logger
}

// New creates a new CMS client.
func New(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("api token is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.webflow.com"
	}
	if cfg.PageSize <= 0 || cfg.PageSize > 100 {
		cfg.PageSize = 100
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}

	logger := logging.NewLogger("cms-client")

	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = cfg.MaxRetries
	httpClient.RetryWaitMin = 1 * time.Second
	httpClient.RetryWaitMax = 10 * time.Second
	httpClient.HTTPClient.Timeout = cfg.HTTPTimeout
	httpClient.Logger = nil

	return &Client{
		httpClient: httpClient,
		config:     cfg,
		logger:     logger,
	}, nil
}

// ListItemsLive fetches a single page of live items from a collection.
func (c *Client) ListItemsLive(ctx context.Context, collectionID string, opts ListOptions) ([]RawItem, error) {
	startTime := time.Now()
	defer func() {
		cmsRequestDuration.WithLabelValues(collectionID).Observe(time.Since(startTime).Seconds())
	}()

	endpoint := fmt.Sprintf("%s/v2/collections/%s/items/live", c.config.BaseURL, url.PathEscape(collectionID))

	query := url.Values{}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		query.Set("offset", strconv.Itoa(opts.Offset))
	}
	if opts.SortBy != "" {
		query.Set("sortBy", opts.SortBy)
	}
	if opts.SortOrder != "" {
		query.Set("sortOrder", opts.SortOrder)
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		cmsErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		cmsRequestsTotal.WithLabelValues(collectionID, "network_error").Inc()
		c.logger.Error().Err(err).Str("collection", collectionID).Msg("CMS request failed")
		return nil, &UpstreamError{ErrorClass: ErrorClassNetwork, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		cmsErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		return nil, &UpstreamError{ErrorClass: ErrorClassNetwork, Message: "read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		errClass := classifyStatus(resp.StatusCode)
		cmsErrorsTotal.WithLabelValues(string(errClass)).Inc()
		cmsRequestsTotal.WithLabelValues(collectionID, strconv.Itoa(resp.StatusCode)).Inc()

		c.logger.Warn().
			Str("collection", collectionID).
			Int("status", resp.StatusCode).
			Str("error_class", string(errClass)).
			Msg("CMS request error")

		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			ErrorClass: errClass,
			Message:    resp.Status,
		}
	}

	cmsRequestsTotal.WithLabelValues(collectionID, strconv.Itoa(resp.StatusCode)).Inc()

	var list listResponse
	if err := json.Unmarshal(body, &list); err != nil {
		cmsErrorsTotal.WithLabelValues(string(ErrorClassDecode)).Inc()
		return nil, &UpstreamError{ErrorClass: ErrorClassDecode, Message: "decode response", Err: err}
	}

	return list.Items, nil
}

// classifyStatus categorizes an HTTP status for observability.
func classifyStatus(status int) ErrorClass {
	switch {
	case status >= 400 && status < 500:
		return ErrorClassClient
	case status >= 500:
		return ErrorClassServer
	default:
		return ""
	}
}

// SetHTTPClient replaces the underlying HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient.HTTPClient = client
}
