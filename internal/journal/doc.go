// Package journal records the history of executed runs.
//
// A Journal stores one Record per run. Bolt persists records as JSON in a
// bbolt database file so that `recoseq history` can list earlier runs;
// Noop discards them when no journal file is configured.
package journal
