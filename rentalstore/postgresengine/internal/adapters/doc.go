// Package adapters provides database adapter implementations for the
// PostgreSQL rental store.
//
// This package implements the adapter pattern to support multiple
// PostgreSQL database libraries: pgxpool.Pool, sql.DB, and sqlx.DB. All
// adapters provide equivalent functionality through a common DBAdapter
// interface, including explicit transactions with commit/rollback and the
// normalization of the driver-specific lock-timeout error (SQLSTATE 55P03).
//
// The adapters handle the specifics of each database library while
// presenting a unified interface for query execution, transaction control,
// and result handling.
package adapters
