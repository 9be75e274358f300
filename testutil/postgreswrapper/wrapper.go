package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/soundgood/rentalstore-go/rentalstore/postgresengine"
	"github.com/soundgood/rentalstore-go/testutil/config"
)

// Engine type constants
const (
	typePGXPool = "pgx.pool"
	typeSQLDB   = "sql.db"
	typeSQLXDB  = "sqlx.db"
)

// Wrapper interface to abstract over different engine types
type Wrapper interface {
	GetStore() *postgresengine.Store
	Exec(t testing.TB, query string)
	QueryInt(t testing.TB, query string) int
	Close()
}

// PGXPoolWrapper wraps pgxpool-based testing
type PGXPoolWrapper struct {
	pool  *pgxpool.Pool
	store *postgresengine.Store
}

func (w *PGXPoolWrapper) GetStore() *postgresengine.Store {
	return w.store
}

func (w *PGXPoolWrapper) Exec(t testing.TB, query string) {
	_, err := w.pool.Exec(context.Background(), query)
	assert.NoError(t, err, "error executing statement in test setup")
}

func (w *PGXPoolWrapper) QueryInt(t testing.TB, query string) int {
	var value int
	err := w.pool.QueryRow(context.Background(), query).Scan(&value)
	assert.NoError(t, err, "error querying value in test setup")

	return value
}

func (w *PGXPoolWrapper) Close() {
	w.pool.Close()
}

// SQLDBWrapper wraps sql.DB-based testing
type SQLDBWrapper struct {
	db    *sql.DB
	store *postgresengine.Store
}

func (w *SQLDBWrapper) GetStore() *postgresengine.Store {
	return w.store
}

func (w *SQLDBWrapper) Exec(t testing.TB, query string) {
	_, err := w.db.Exec(query)
	assert.NoError(t, err, "error executing statement in test setup")
}

func (w *SQLDBWrapper) QueryInt(t testing.TB, query string) int {
	var value int
	err := w.db.QueryRow(query).Scan(&value)
	assert.NoError(t, err, "error querying value in test setup")

	return value
}

func (w *SQLDBWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// SQLXWrapper wraps sqlx.DB-based testing
type SQLXWrapper struct {
	db    *sqlx.DB
	store *postgresengine.Store
}

func (w *SQLXWrapper) GetStore() *postgresengine.Store {
	return w.store
}

func (w *SQLXWrapper) Exec(t testing.TB, query string) {
	_, err := w.db.Exec(query)
	assert.NoError(t, err, "error executing statement in test setup")
}

func (w *SQLXWrapper) QueryInt(t testing.TB, query string) int {
	var value int
	err := w.db.QueryRow(query).Scan(&value)
	assert.NoError(t, err, "error querying value in test setup")

	return value
}

func (w *SQLXWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// CreateWrapperWithTestConfig creates the appropriate wrapper based on the environment variable
func CreateWrapperWithTestConfig(t testing.TB, options ...postgresengine.Option) Wrapper {
	engineTypeFromEnv := strings.ToLower(os.Getenv("ADAPTER_TYPE"))

	switch engineTypeFromEnv {
	case typePGXPool, "":
		connPool, err := pgxpool.NewWithConfig(context.Background(), config.PostgresPGXPoolConfig())
		assert.NoError(t, err, "error connecting to DB pool in test setup")

		store, err := postgresengine.NewStoreFromPGXPool(connPool, options...)
		assert.NoError(t, err, "error creating store")

		return &PGXPoolWrapper{pool: connPool, store: store}

	case typeSQLDB:
		db := config.PostgresSQLDBConfig()

		store, err := postgresengine.NewStoreFromSQLDB(db, options...)
		assert.NoError(t, err, "error creating store")

		return &SQLDBWrapper{db: db, store: store}

	case typeSQLXDB:
		db := config.PostgresSQLXConfig()

		store, err := postgresengine.NewStoreFromSQLX(db, options...)
		assert.NoError(t, err, "error creating store")

		return &SQLXWrapper{db: db, store: store}

	default: // neither one of the known types nor empty
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", engineTypeFromEnv))
	}
}

// EnsureSchema creates the tables if they do not exist yet.
// One statement per call: pgx prepares statements, and multiple commands
// cannot share one prepared statement.
func EnsureSchema(t testing.TB, wrapper Wrapper) {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS holder (
			holder_id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS account (
			account_no TEXT PRIMARY KEY,
			balance BIGINT NOT NULL DEFAULT 0 CHECK (balance >= 0),
			holder_id BIGINT NOT NULL REFERENCES holder (holder_id)
		)`,
		`CREATE TABLE IF NOT EXISTS student (
			student_id TEXT PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS rental_instrument (
			rental_instrument_id TEXT PRIMARY KEY,
			instrument TEXT NOT NULL,
			brand TEXT NOT NULL,
			category TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS instrument_fee (
			rental_instrument_id TEXT PRIMARY KEY REFERENCES rental_instrument (rental_instrument_id),
			fee TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS rental_agreement (
			rental_agreement_id UUID PRIMARY KEY,
			date_rented TIMESTAMPTZ NOT NULL,
			date_returned TIMESTAMPTZ NULL,
			student_id TEXT NOT NULL REFERENCES student (student_id),
			rental_instrument_id TEXT NOT NULL REFERENCES rental_instrument (rental_instrument_id)
		)`,
		`CREATE INDEX IF NOT EXISTS rental_agreement_active_per_student
			ON rental_agreement (student_id) WHERE date_returned IS NULL`,
		`CREATE INDEX IF NOT EXISTS rental_agreement_active_per_instrument
			ON rental_agreement (rental_instrument_id) WHERE date_returned IS NULL`,
	}

	for _, statement := range statements {
		wrapper.Exec(t, statement)
	}
}

// CleanUp empties all tables between tests, keeping the schema.
func CleanUp(t testing.TB, wrapper Wrapper) {
	wrapper.Exec(t, "TRUNCATE TABLE rental_agreement, instrument_fee, rental_instrument, student, account, holder RESTART IDENTITY CASCADE")
}

// SeedStudent inserts a student row.
func SeedStudent(t testing.TB, wrapper Wrapper, studentID string, name string) {
	wrapper.Exec(t, fmt.Sprintf(
		`INSERT INTO student (student_id, name) VALUES ('%s', '%s')`, studentID, name))
}

// SeedInstrument inserts an instrument row with its fee.
func SeedInstrument(t testing.TB, wrapper Wrapper, instrumentID, instrumentType, brand, category, fee string) {
	wrapper.Exec(t, fmt.Sprintf(
		`INSERT INTO rental_instrument (rental_instrument_id, instrument, brand, category) VALUES ('%s', '%s', '%s', '%s')`,
		instrumentID, instrumentType, brand, category))
	wrapper.Exec(t, fmt.Sprintf(
		`INSERT INTO instrument_fee (rental_instrument_id, fee) VALUES ('%s', '%s')`, instrumentID, fee))
}

// CountActiveAgreements reports how many open rental agreements a student has.
func CountActiveAgreements(t testing.TB, wrapper Wrapper, studentID string) int {
	return wrapper.QueryInt(t, fmt.Sprintf(
		`SELECT count(*) FROM rental_agreement WHERE student_id = '%s' AND date_returned IS NULL`, studentID))
}
