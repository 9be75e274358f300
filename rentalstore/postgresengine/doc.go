// Package postgresengine implements rentalstore.Store on PostgreSQL.
//
// The engine works with three database drivers through a small adapter
// layer: pgx (pgxpool.Pool), database/sql (sql.DB with lib/pq), and
// sqlx (sqlx.DB). Use the matching constructor:
//
//	store, err := postgresengine.NewStoreFromPGXPool(pool)
//	store, err := postgresengine.NewStoreFromSQLDB(db)
//	store, err := postgresengine.NewStoreFromSQLX(db)
//
// All SQL is built with goqu and interpolated before execution. Exclusive
// reads lock rows with SELECT ... FOR UPDATE, and every transaction sets a
// local lock_timeout so contended operations fail fast with
// rentalstore.ErrLockTimeout instead of blocking indefinitely.
package postgresengine
