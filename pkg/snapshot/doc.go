// Package snapshot defines the denormalized domain model and the durable
// store for the latest snapshot.
//
// A Snapshot is one complete, internally consistent, point-in-time copy of
// the source collections with every reference ID resolved. The Store persists
// exactly one snapshot as a single JSON document at a fixed path, replacing
// it atomically on every refresh: the document is written to a temp file in
// the same directory and renamed over the old one, so no reader ever observes
// a half-written snapshot. Concurrent writers degrade to last-writer-wins,
// which is the accepted policy for externally triggered refreshes.
//
// Reads always unmarshal a fresh copy, so callers can never mutate the stored
// snapshot through the values they receive.
//
// A stored document that is missing its required fields is treated as no
// cache at all (ErrNoCache), not as a hard failure.
//
// The store deliberately holds full collections in memory; the data volumes
// are tens to low hundreds of items. Collections growing into the thousands
// would call for a different storage design.
package snapshot
