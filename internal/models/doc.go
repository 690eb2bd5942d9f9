// Package models defines domain entities and persistence interfaces for the cinex movie client.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs representing remote API data
//   - [MovieSummary] : Compact movie record from list endpoints
//   - [MovieDetail] : Full movie record with cast
//   - [List], [Comment], [UserProfile], [RecommendationSet] : Server-owned entities
//     the client holds only ephemeral copies of
//
// 2. Persistent Entities: Cache-backed models with full lifecycle management
//   - [CachedMovie] : Locally cached movie summaries keyed by remote id
//   - [HistoryEntry] : Local copy of remote watch-history records
//
// All persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
