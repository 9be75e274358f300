package adapters

import "context"

// DBAdapter defines the interface for database operations needed by the store.
// Query runs on a pooled auto-commit connection; Begin checks a connection
// out of the pool and opens an explicit transaction on it.
type DBAdapter interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Begin(ctx context.Context) (DBTx, error)

	// IsLockTimeout reports whether the driver error means a row lock could
	// not be acquired within the configured lock_timeout (SQLSTATE 55P03).
	IsLockTimeout(err error) bool
}

// DBTx defines the interface for operations inside one open transaction.
// Rollback after a successful Commit is a no-op, so callers can always
// defer it.
type DBTx interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
}
