package webflow

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Default sort applied by FetchAll. The upstream sort is part of the fetch
// contract: snapshot determinism depends on requesting the same order every
// refresh.
const (
	defaultSortBy    = "name"
	defaultSortOrder = "asc"
)

// FetchAll accumulates every item of one collection by repeating list calls
// with an advancing offset. Termination is the short-page rule: a page with
// fewer than PageSize items (or no items) is the last one. A page of exactly
// PageSize items therefore always triggers one more call.
func (c *Client) FetchAll(ctx context.Context, collectionID string) ([]RawItem, error) {
	start := time.Now()

	var all []RawItem
	offset := 0

	for {
		items, err := c.ListItemsLive(ctx, collectionID, ListOptions{
			Limit:     c.config.PageSize,
			Offset:    offset,
			SortBy:    defaultSortBy,
			SortOrder: defaultSortOrder,
		})
		if err != nil {
			return nil, fmt.Errorf("fetch collection %s at offset %d: %w", collectionID, offset, err)
		}

		log.Debug().
			Str("collection", collectionID).
			Int("offset", offset).
			Int("returned", len(items)).
			Msg("Fetched page")

		all = append(all, items...)
		offset += len(items)

		if len(items) < c.config.PageSize {
			break
		}
	}

	log.Info().
		Str("collection", collectionID).
		Int("count", len(all)).
		Dur("duration", time.Since(start)).
		Msg("Fetch complete")

	return all, nil
}
