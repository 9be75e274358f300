// Package postgreswrapper abstracts the database driver choice for the
// live-database tests. The ADAPTER_TYPE environment variable selects the
// driver: "pgx.pool" (default), "sql.db", or "sqlx.db".
package postgreswrapper
