// Package repositories implements SQLite-backed persistence for the search cache.
//
// [TrackRepository] provides CRUD access to cached search results with soft
// delete support. [TrackCacheAdapter] wraps it behind the tasks.TrackCacher
// interface so the build engine stays decoupled from database/sql.
//
// The cache stores resolved search lookups only; build reports are never
// persisted and each run's results remain ephemeral.
package repositories
