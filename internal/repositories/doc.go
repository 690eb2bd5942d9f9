// Package repositories implements SQLite persistence for locally cached entities.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
// All repositories support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
//
// Key Implementations:
//   - [MovieRepository] : Movie summary caching with remote-id based upserts
//   - [HistoryRepository] : Watch-history mirror deduplicated per (user, movie)
//
// The cache is an offline convenience; the remote API stays authoritative and
// rows are refreshed on every fetch rather than edited locally.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
