// Package models defines the domain entities for the mixtape playlist builder.
//
// The package contains two categories of types:
//
// 1. Pipeline values: Lightweight structs that live for the duration of a single run
//   - [SongRequest] : One parsed "Artist - Title" input line
//   - [Track] : A search candidate returned by a music service
//   - [MatchResult] : The outcome of resolving one request
//   - [BuildReport] : The aggregate result of a full playlist build
//
// 2. Persistent entities: Database-backed models used by the search cache
//   - [CachedTrack] : A previously resolved search query cached in SQLite
//
// Persistent entities implement the [Model] interface providing ID generation,
// timestamps, validation, and soft delete support.
package models
