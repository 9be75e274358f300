package postgresengine_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/lib/pq" // postgres driver
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundgood/rentalstore-go/rentalstore/postgresengine"
	"github.com/soundgood/rentalstore-go/testutil/config"
)

func Test_NewStoreFromPGXPool_RejectsNilConnection(t *testing.T) {
	// act
	_, err := postgresengine.NewStoreFromPGXPool(nil)

	// assert
	assert.ErrorIs(t, err, postgresengine.ErrNilDatabaseConnection)
}

func Test_NewStoreFromSQLDB_RejectsNilConnection(t *testing.T) {
	// act
	_, err := postgresengine.NewStoreFromSQLDB(nil)

	// assert
	assert.ErrorIs(t, err, postgresengine.ErrNilDatabaseConnection)
}

func Test_NewStoreFromSQLX_RejectsNilConnection(t *testing.T) {
	// act
	_, err := postgresengine.NewStoreFromSQLX(nil)

	// assert
	assert.ErrorIs(t, err, postgresengine.ErrNilDatabaseConnection)
}

func Test_WithLockTimeout_RejectsNonPositiveTimeout(t *testing.T) {
	// act
	zeroErr := tryCreateStoreWithOptions(t, postgresengine.WithLockTimeout(0))
	negativeErr := tryCreateStoreWithOptions(t, postgresengine.WithLockTimeout(-time.Second))

	// assert
	assert.ErrorIs(t, zeroErr, postgresengine.ErrInvalidLockTimeout)
	assert.ErrorIs(t, negativeErr, postgresengine.ErrInvalidLockTimeout)
}

func Test_WithLogger_RejectsNilLogger(t *testing.T) {
	// act
	err := tryCreateStoreWithOptions(t, postgresengine.WithLogger(nil))

	// assert
	assert.ErrorIs(t, err, postgresengine.ErrNilLogger)
}

// Test setup helpers.
// tryCreateStoreWithOptions uses a lazily opened sql.DB, so option
// validation can be tested without a running database.
func tryCreateStoreWithOptions(t *testing.T, options ...postgresengine.Option) error {
	t.Helper()

	db, openErr := sql.Open("postgres", config.PostgresDSN())
	require.NoError(t, openErr, "error opening lazy database handle in test setup")
	defer func() { _ = db.Close() }()

	_, err := postgresengine.NewStoreFromSQLDB(db, options...)

	return err
}
