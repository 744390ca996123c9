// Package store persists named integer datasets in SQLite and serves
// them back as lazy sources for the sequence engine.
//
// Streaming is cursor-backed: Stream opens a row cursor ordered by
// position and pulls one row per iteration step, so an early break
// from the consuming range loop stops row pulls at that boundary -
// the same minimality contract the in-memory engine gives.
//
// The database is a single-writer SQLite file in WAL mode; the
// connection pool is clamped to one connection to avoid SQLITE_BUSY
// surprises.
package store
