// Package store provides SQLite-backed storage for the certification
// audit trail.
//
// The engine itself never persists anything; recording outcomes is the
// calling infrastructure's job, and this package is that infrastructure
// for the CLI and the HTTP server. Each certification run is appended as
// one row: run ID, wall time, snapshot content hash, outcome, trust
// score, violation counts, and the full canonical report JSON.
//
// Snapshot hashes are content-addressed (canonical JSON, SHA-256 with
// domain separation), so identical snapshots are recognizable across
// runs regardless of when or where they were certified.
//
// Database configuration:
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON
package store
