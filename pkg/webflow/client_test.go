package webflow

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/carebridge/cms-proxy/internal/testutil"
)

const testCollection = "col-coverage"

func testClient(t *testing.T, mock *testutil.MockCMS, pageSize int) *Client {
	t.Helper()
	cfg := DefaultConfig("test-token")
	cfg.BaseURL = mock.URL()
	cfg.PageSize = pageSize
	cfg.MaxRetries = 0

	client, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

func seedItems(mock *testutil.MockCMS, n int) {
	items := make([]testutil.MockItem, n)
	for i := range items {
		items[i] = testutil.MockItem{
			ID:        fmt.Sprintf("item-%03d", i),
			FieldData: map[string]any{"name": fmt.Sprintf("Item %03d", i)},
		}
	}
	mock.SetCollection(testCollection, items)
}

func TestNewRequiresToken(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for missing token")
	}
}

func TestListItemsLiveSendsBearerAuth(t *testing.T) {
	mock := testutil.NewMockCMS()
	defer mock.Close()
	seedItems(mock, 1)

	client := testClient(t, mock, 100)
	if _, err := client.ListItemsLive(context.Background(), testCollection, ListOptions{Limit: 100}); err != nil {
		t.Fatalf("ListItemsLive: %v", err)
	}

	if mock.LastAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q", mock.LastAuth)
	}
}

func TestFetchAllPaginates(t *testing.T) {
	mock := testutil.NewMockCMS()
	defer mock.Close()
	seedItems(mock, 10)

	client := testClient(t, mock, 4)
	items, err := client.FetchAll(context.Background(), testCollection)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}

	if len(items) != 10 {
		t.Fatalf("got %d items, want 10", len(items))
	}
	// Pages of 4, 4, 2; the short page terminates.
	if got := mock.GetRequestCount(testCollection); got != 3 {
		t.Errorf("request count = %d, want 3", got)
	}
	if items[0].ID != "item-000" || items[9].ID != "item-009" {
		t.Errorf("unexpected item order: first=%s last=%s", items[0].ID, items[9].ID)
	}
}

func TestFetchAllExactPageBoundary(t *testing.T) {
	mock := testutil.NewMockCMS()
	defer mock.Close()
	seedItems(mock, 8)

	client := testClient(t, mock, 4)
	items, err := client.FetchAll(context.Background(), testCollection)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}

	if len(items) != 8 {
		t.Fatalf("got %d items, want 8", len(items))
	}
	// A final page of exactly PageSize cannot prove completion, so one
	// more (empty) page is requested.
	if got := mock.GetRequestCount(testCollection); got != 3 {
		t.Errorf("request count = %d, want 3", got)
	}
}

func TestFetchAllEmptyCollection(t *testing.T) {
	mock := testutil.NewMockCMS()
	defer mock.Close()
	mock.SetCollection(testCollection, nil)

	client := testClient(t, mock, 4)
	items, err := client.FetchAll(context.Background(), testCollection)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("got %d items, want 0", len(items))
	}
	if got := mock.GetRequestCount(testCollection); got != 1 {
		t.Errorf("request count = %d, want 1", got)
	}
}

func TestFetchAllAbortsOnPageError(t *testing.T) {
	mock := testutil.NewMockCMS()
	defer mock.Close()
	seedItems(mock, 10)
	mock.FailAfter(testCollection, 2)

	client := testClient(t, mock, 4)
	_, err := client.FetchAll(context.Background(), testCollection)
	if err == nil {
		t.Fatal("expected error when a page fails")
	}

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("error %v is not an UpstreamError", err)
	}
	if upstream.ErrorClass != ErrorClassServer {
		t.Errorf("ErrorClass = %q, want %q", upstream.ErrorClass, ErrorClassServer)
	}
}

func TestListItemsLiveClassifiesClientErrors(t *testing.T) {
	mock := testutil.NewMockCMS()
	defer mock.Close()
	mock.SetHandler(testCollection, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "collection not found"}`)
	})

	client := testClient(t, mock, 100)
	_, err := client.ListItemsLive(context.Background(), testCollection, ListOptions{Limit: 100})
	if err == nil {
		t.Fatal("expected error")
	}

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("error %v is not an UpstreamError", err)
	}
	if upstream.ErrorClass != ErrorClassClient {
		t.Errorf("ErrorClass = %q, want %q", upstream.ErrorClass, ErrorClassClient)
	}
	if upstream.StatusCode != 404 {
		t.Errorf("StatusCode = %d, want 404", upstream.StatusCode)
	}
}
