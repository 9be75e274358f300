package rentalstore

import (
	"context"
	"time"
)

// Store is the relational persistence boundary the Coordinator runs against.
//
// Contract: Begin checks a connection out of the underlying pool and opens
// an explicit transaction; every Tx reaches exactly one of Commit or
// Rollback before the business operation returns. The read-only methods run
// on pooled auto-commit connections and hold no transaction open after they
// return.
//
// Exclusive reads inside a Tx must use the database's explicit locking read
// (SELECT ... FOR UPDATE semantics), not optimistic retry: two transactions
// locking the same row are strictly serialized, and the second sees the
// first's committed state. Implementations should bound the lock wait and
// surface ErrLockTimeout instead of blocking indefinitely.
type Store interface {
	// Begin opens a new business transaction.
	Begin(ctx context.Context) (Tx, error)

	// GetAccount retrieves an account without locking it.
	// Returns ErrAccountNotFound if no such account exists.
	GetAccount(ctx context.Context, accountNo string) (Account, error)

	// ListInstruments retrieves instruments that have no active rental
	// agreement. An empty typeFilter lists all types.
	ListInstruments(ctx context.Context, typeFilter string) ([]Instrument, error)
}

// Tx is one open business transaction. All reads with exclusive=true block
// until the row lock is acquired or the bounded wait expires.
//
// Get methods return the matching ErrXxxNotFound sentinel when no row
// exists; write methods return the number of rows affected so the caller
// can verify the expected effect before committing.
type Tx interface {
	GetAccount(ctx context.Context, accountNo string, exclusive bool) (Account, error)
	UpdateAccountBalance(ctx context.Context, accountNo string, newBalance int64) (int64, error)
	InsertAccount(ctx context.Context, accountNo string, balance int64, holderID int64) (int64, error)
	DeleteAccount(ctx context.Context, accountNo string) (int64, error)

	// FindOrCreateHolder resolves the holder identity for a name, creating
	// it atomically if absent (insert-if-absent, not find-then-insert).
	FindOrCreateHolder(ctx context.Context, name string) (int64, error)

	GetInstrument(ctx context.Context, instrumentID string, exclusive bool) (Instrument, error)
	GetStudent(ctx context.Context, studentID string, exclusive bool) (Student, error)

	// GetActiveRentals retrieves the student's agreements with no return date.
	GetActiveRentals(ctx context.Context, studentID string, exclusive bool) ([]RentalAgreement, error)

	// ActiveRentalExistsForInstrument reports whether any agreement on the
	// instrument has no return date. Callers must hold the instrument's row
	// lock for the answer to stay true until commit.
	ActiveRentalExistsForInstrument(ctx context.Context, instrumentID string) (bool, error)

	InsertRentalAgreement(ctx context.Context, agreement RentalAgreement) (int64, error)

	// CloseRentalAgreement sets the return date of an active agreement.
	// Affects zero rows if the agreement is unknown or already returned;
	// the return date is immutable once set.
	CloseRentalAgreement(ctx context.Context, agreementID string, returnedAt time.Time) (int64, error)

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
