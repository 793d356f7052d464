// Package webflow provides the HTTP client for the Webflow CMS content API.
//
// The API is consumed as a black-box paginated list endpoint: each call to
// ListItemsLive returns up to PageSize raw items of one collection, and
// FetchAll repeats calls, advancing the offset by the number of items
// returned, until a short page signals end-of-data. Items are returned in
// upstream order under the requested sort; no deduplication or reordering is
// done here.
//
// Example usage:
//
//	client, err := webflow.New(webflow.DefaultConfig(token))
//	if err != nil {
//		return err
//	}
//	items, err := client.FetchAll(ctx, collectionID)
//
// Any transport or API error aborts the whole fetch and propagates to the
// caller: a refresh either fully succeeds or fully fails, leaving the
// previous snapshot intact.
//
// Pages are fetched strictly sequentially. Total fetch latency scales
// linearly with item count over page size, which also bounds upstream load.
package webflow
