// Package service composes the CMS client, the normalization engine, the
// snapshot store, and the query layer into the operations the HTTP surface
// and the CLI expose.
//
// The refresh path is all-or-nothing: if any collection fetch fails, the
// previously persisted snapshot is left untouched. Read paths never trigger
// a refresh implicitly; cache population happens only through Refresh.
package service
