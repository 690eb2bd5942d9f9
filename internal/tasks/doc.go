// Package tasks orchestrates account library operations with real-time progress reporting.
//
// # Core Operations
//
// The [Engine] interface defines three operations:
//
//  1. [Engine.Dump] : Fetch a full account snapshot
//     - Retrieves health, profile, lists, list contents, recommendations,
//       and genre-popular movies
//     - Collects per-endpoint errors instead of aborting, so a partial
//       snapshot is still returned
//
//  2. [Engine.SyncHistory] : Mirror the remote watch history locally
//     - Fetches the profile's checked movies
//     - Records each entry through [HistoryCacher]; duplicates are no-ops
//
//  3. [Engine.BulkExport] : Export lists to files concurrently
//     - Resolves each list's movies through the catalog service
//     - Rate-limits API requests and fans jobs out to a worker pool
//     - Writes an export_manifest.json summarizing results
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Implementation
//
// [LibraryEngine] implements [Engine] with dependencies on:
//   - [services.Service] : movie catalog API client
//   - [APIClient] : raw HTTP client for untyped endpoints
//   - [HistoryCacher] : optional persistence layer (repositories.HistoryRepository)
package tasks
