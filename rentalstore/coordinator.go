package rentalstore

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

const (
	defaultAccountNoAttempts = 10

	opCreateAccount     = "create_account"
	opDeleteAccount     = "delete_account"
	opDeposit           = "deposit"
	opWithdraw          = "withdraw"
	opRent              = "rent"
	opReturnInstrument  = "return_instrument"
	logMsgCommitted     = "business transaction committed"
	logMsgRolledBack    = "business transaction rolled back"
	logMsgStoreFailure  = "store operation failed"
	logMsgRollbackError = "rollback failed after error"
	logAttrOperation    = "operation"
	logAttrError        = "error"
	logAttrAudit        = "audit"
)

// Logger interface for operational logging, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Coordinator runs every externally visible operation as one atomic
// business transaction against the Store: it acquires the needed locked
// entity snapshots, applies the pure decision logic, and either persists
// the result and commits, or aborts and rolls back.
//
// Every path through an operation terminates the open transaction in
// exactly one of Commit or Rollback before the operation returns; no
// operation returns while holding a row lock.
type Coordinator struct {
	store             Store
	logger            Logger
	clock             func() time.Time
	accountNoAttempts int
}

// CoordinatorOption defines a functional option for configuring a Coordinator.
type CoordinatorOption func(*Coordinator) error

// ErrNilStore is returned when NewCoordinator is called without a store.
var ErrNilStore = errors.New("store must not be nil")

// ErrNilClock is returned when WithClock is called with a nil clock function.
var ErrNilClock = errors.New("clock must not be nil")

// WithLogger sets the logger for the Coordinator.
//
// Debug level: per-operation progress (development use)
// Info level: committed transactions with their audit record (production-safe)
// Warn level: non-critical issues like a failed rollback after an error
// Error level: store failures that cause operation failures.
func WithLogger(logger Logger) CoordinatorOption {
	return func(c *Coordinator) error {
		c.logger = logger
		return nil
	}
}

// WithClock sets the time source used for rental and return dates.
// Intended for tests; defaults to time.Now.
func WithClock(clock func() time.Time) CoordinatorOption {
	return func(c *Coordinator) error {
		if clock == nil {
			return ErrNilClock
		}

		c.clock = clock

		return nil
	}
}

// NewCoordinator creates a new Coordinator with optional configuration.
func NewCoordinator(store Store, options ...CoordinatorOption) (Coordinator, error) {
	if store == nil {
		return Coordinator{}, ErrNilStore
	}

	c := Coordinator{
		store:             store,
		clock:             time.Now,
		accountNoAttempts: defaultAccountNoAttempts,
	}

	for _, option := range options {
		if err := option(&c); err != nil {
			return Coordinator{}, err
		}
	}

	return c, nil
}

// CreateAccount creates an account with balance zero for the named holder.
// The holder identity is resolved or created atomically; the account number
// is freshly generated and collision-checked inside the same transaction.
func (c Coordinator) CreateAccount(ctx context.Context, holderName string) (Account, error) {
	if holderName == "" {
		return Account{}, errors.Join(ErrValidation, ErrEmptyHolderName)
	}

	tx, beginErr := c.store.Begin(ctx)
	if beginErr != nil {
		return Account{}, c.storeFailure(opCreateAccount, beginErr)
	}

	holderID, holderErr := tx.FindOrCreateHolder(ctx, holderName)
	if holderErr != nil {
		return Account{}, c.abort(ctx, tx, opCreateAccount, errors.Join(ErrPersistence, holderErr))
	}

	accountNo, genErr := c.unusedAccountNo(ctx, tx)
	if genErr != nil {
		return Account{}, c.abort(ctx, tx, opCreateAccount, genErr)
	}

	rows, insertErr := tx.InsertAccount(ctx, accountNo, 0, holderID)
	if insertErr != nil {
		return Account{}, c.abort(ctx, tx, opCreateAccount, errors.Join(ErrPersistence, insertErr))
	}

	if rows != 1 {
		return Account{}, c.abort(ctx, tx, opCreateAccount, errors.Join(ErrPersistence, ErrUnexpectedRowCount))
	}

	if commitErr := c.commit(ctx, tx, opCreateAccount); commitErr != nil {
		return Account{}, commitErr
	}

	account := BuildAccount(accountNo, holderName, 0)
	c.audit(auditRecord{Operation: opCreateAccount, AccountNo: accountNo, Holder: holderName})

	return account, nil
}

// Deposit adds the amount to the balance of the given account.
// The account row is locked exclusively for the whole transaction, so two
// concurrent deposits or withdrawals on the same account are serialized.
func (c Coordinator) Deposit(ctx context.Context, accountNo string, amount int64) error {
	return c.changeBalance(ctx, opDeposit, accountNo, amount, Deposit)
}

// Withdraw takes the amount from the balance of the given account, rejecting
// the operation if it would make the balance negative.
func (c Coordinator) Withdraw(ctx context.Context, accountNo string, amount int64) error {
	return c.changeBalance(ctx, opWithdraw, accountNo, amount, Withdraw)
}

// changeBalance is the shared deposit/withdraw workflow: lock the account
// row, apply the ledger decision, write back the new balance, commit.
// A ledger rejection still releases the lock by rolling back.
func (c Coordinator) changeBalance(
	ctx context.Context,
	operation string,
	accountNo string,
	amount int64,
	decide func(balance int64, amount int64) (int64, error),
) error {

	if accountNo == "" {
		return errors.Join(ErrValidation, ErrEmptyAccountNumber)
	}

	// Non-positive amounts never open a transaction; the ledger would
	// reject them anyway once the row is locked.
	if amount <= 0 {
		return errors.Join(ErrRejected, ErrNonPositiveAmount)
	}

	tx, beginErr := c.store.Begin(ctx)
	if beginErr != nil {
		return c.storeFailure(operation, beginErr)
	}

	account, readErr := tx.GetAccount(ctx, accountNo, true)
	if readErr != nil {
		return c.abort(ctx, tx, operation, c.escalateAbsentRow(readErr, ErrAccountNotFound))
	}

	newBalance, decideErr := decide(account.Balance, amount)
	if decideErr != nil {
		return c.abort(ctx, tx, operation, decideErr)
	}

	rows, writeErr := tx.UpdateAccountBalance(ctx, accountNo, newBalance)
	if writeErr != nil {
		return c.abort(ctx, tx, operation, errors.Join(ErrPersistence, writeErr))
	}

	if rows != 1 {
		return c.abort(ctx, tx, operation, errors.Join(ErrPersistence, ErrUnexpectedRowCount))
	}

	if commitErr := c.commit(ctx, tx, operation); commitErr != nil {
		return commitErr
	}

	c.audit(auditRecord{Operation: operation, AccountNo: accountNo, Amount: amount, NewBalance: newBalance})

	return nil
}

// Rent creates a new active rental agreement for the student and instrument.
// The instrument and student rows are locked exclusively, the eligibility
// decision runs on the freshly re-derived state, and the whole transaction
// rolls back on rejection or failure.
func (c Coordinator) Rent(ctx context.Context, instrumentID string, studentID string) (RentalAgreement, error) {
	var empty RentalAgreement

	if instrumentID == "" {
		return empty, errors.Join(ErrValidation, ErrEmptyInstrumentID)
	}

	if studentID == "" {
		return empty, errors.Join(ErrValidation, ErrEmptyStudentID)
	}

	tx, beginErr := c.store.Begin(ctx)
	if beginErr != nil {
		return empty, c.storeFailure(opRent, beginErr)
	}

	instrument, instErr := tx.GetInstrument(ctx, instrumentID, true)
	if instErr != nil {
		return empty, c.abort(ctx, tx, opRent, c.escalateAbsentRow(instErr, ErrInstrumentNotFound))
	}

	// The student row is the serialization point for the rental cap: locking
	// only the agreement rows would not serialize two first-time rentals.
	student, studentErr := tx.GetStudent(ctx, studentID, true)
	if studentErr != nil {
		return empty, c.abort(ctx, tx, opRent, c.escalateAbsentRow(studentErr, ErrStudentNotFound))
	}

	activeRentals, rentalsErr := tx.GetActiveRentals(ctx, student.ID, true)
	if rentalsErr != nil {
		return empty, c.abort(ctx, tx, opRent, errors.Join(ErrPersistence, rentalsErr))
	}

	instrumentActive, activeErr := tx.ActiveRentalExistsForInstrument(ctx, instrument.ID)
	if activeErr != nil {
		return empty, c.abort(ctx, tx, opRent, errors.Join(ErrPersistence, activeErr))
	}

	if decideErr := CanRent(len(activeRentals), instrumentActive); decideErr != nil {
		return empty, c.abort(ctx, tx, opRent, decideErr)
	}

	agreement := NewRentalAgreement(instrument.ID, student.ID, c.clock())

	rows, insertErr := tx.InsertRentalAgreement(ctx, agreement)
	if insertErr != nil {
		return empty, c.abort(ctx, tx, opRent, errors.Join(ErrPersistence, insertErr))
	}

	if rows != 1 {
		return empty, c.abort(ctx, tx, opRent, errors.Join(ErrPersistence, ErrUnexpectedRowCount))
	}

	if commitErr := c.commit(ctx, tx, opRent); commitErr != nil {
		return empty, commitErr
	}

	c.audit(auditRecord{Operation: opRent, InstrumentID: instrument.ID, StudentID: student.ID, AgreementID: agreement.ID.String()})

	return agreement, nil
}

// ReturnInstrument closes an active rental agreement, setting its return
// date to the current instant. The return date is immutable: returning an
// already-returned agreement is rejected and changes nothing.
func (c Coordinator) ReturnInstrument(ctx context.Context, agreementID string) error {
	if agreementID == "" {
		return errors.Join(ErrValidation, ErrEmptyAgreementID)
	}

	tx, beginErr := c.store.Begin(ctx)
	if beginErr != nil {
		return c.storeFailure(opReturnInstrument, beginErr)
	}

	rows, closeErr := tx.CloseRentalAgreement(ctx, agreementID, c.clock())
	if closeErr != nil {
		return c.abort(ctx, tx, opReturnInstrument, errors.Join(ErrPersistence, closeErr))
	}

	// Zero rows means the agreement is unknown or was already returned;
	// both are domain-level rejections, not store faults.
	if rows != 1 {
		return c.abort(ctx, tx, opReturnInstrument, errors.Join(ErrRejected, ErrAgreementAlreadyReturned))
	}

	if commitErr := c.commit(ctx, tx, opReturnInstrument); commitErr != nil {
		return commitErr
	}

	c.audit(auditRecord{Operation: opReturnInstrument, AgreementID: agreementID})

	return nil
}

// DeleteAccount deletes the account with the given number.
// A missing account surfaces as a persistence failure wrapping
// ErrAccountNotFound, mirroring the zero-rows-affected store signal.
func (c Coordinator) DeleteAccount(ctx context.Context, accountNo string) error {
	if accountNo == "" {
		return errors.Join(ErrValidation, ErrEmptyAccountNumber)
	}

	tx, beginErr := c.store.Begin(ctx)
	if beginErr != nil {
		return c.storeFailure(opDeleteAccount, beginErr)
	}

	rows, deleteErr := tx.DeleteAccount(ctx, accountNo)
	if deleteErr != nil {
		return c.abort(ctx, tx, opDeleteAccount, errors.Join(ErrPersistence, deleteErr))
	}

	if rows != 1 {
		return c.abort(ctx, tx, opDeleteAccount, errors.Join(ErrPersistence, ErrAccountNotFound))
	}

	if commitErr := c.commit(ctx, tx, opDeleteAccount); commitErr != nil {
		return commitErr
	}

	c.audit(auditRecord{Operation: opDeleteAccount, AccountNo: accountNo})

	return nil
}

// GetAccount retrieves the account with the given number without locking it.
// Returns ErrAccountNotFound if no such account exists.
func (c Coordinator) GetAccount(ctx context.Context, accountNo string) (Account, error) {
	if accountNo == "" {
		return Account{}, errors.Join(ErrValidation, ErrEmptyAccountNumber)
	}

	account, err := c.store.GetAccount(ctx, accountNo)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return Account{}, err
		}

		return Account{}, c.storeFailure("get_account", err)
	}

	return account, nil
}

// ListInstruments retrieves all instruments that are currently available
// for rent, of every type.
func (c Coordinator) ListInstruments(ctx context.Context) ([]Instrument, error) {
	instruments, err := c.store.ListInstruments(ctx, "")
	if err != nil {
		return nil, c.storeFailure("list_instruments", err)
	}

	return instruments, nil
}

// FindInstrumentsByType retrieves the currently available instruments of
// one type. An empty type yields an empty result, not an error.
func (c Coordinator) FindInstrumentsByType(ctx context.Context, instrumentType string) ([]Instrument, error) {
	if instrumentType == "" {
		return []Instrument{}, nil
	}

	instruments, err := c.store.ListInstruments(ctx, instrumentType)
	if err != nil {
		return nil, c.storeFailure("find_instruments_by_type", err)
	}

	return instruments, nil
}

// unusedAccountNo generates a fresh account number and verifies inside the
// open transaction that it is not taken, retrying on collision.
func (c Coordinator) unusedAccountNo(ctx context.Context, tx Tx) (string, error) {
	for attempt := 0; attempt < c.accountNoAttempts; attempt++ {
		candidate := newAccountNo()

		_, err := tx.GetAccount(ctx, candidate, false)
		if errors.Is(err, ErrAccountNotFound) {
			return candidate, nil
		}

		if err != nil {
			return "", errors.Join(ErrPersistence, err)
		}
	}

	return "", errors.Join(ErrPersistence, ErrAccountNumberExhausted)
}

// newAccountNo returns a random 8-digit account number.
func newAccountNo() string {
	return fmt.Sprintf("%08d", rand.Intn(100000000)) //nolint:gosec // account numbers are not secrets
}

// escalateAbsentRow turns an absent-row error into a rejection, because the
// operation requires the row to proceed; other errors become persistence failures.
func (c Coordinator) escalateAbsentRow(err error, notFound error) error {
	if errors.Is(err, notFound) {
		return errors.Join(ErrRejected, notFound)
	}

	return errors.Join(ErrPersistence, err)
}

// commit finalizes the transaction. A failed commit is rolled back and
// surfaced as a persistence failure.
func (c Coordinator) commit(ctx context.Context, tx Tx, operation string) error {
	if commitErr := tx.Commit(ctx); commitErr != nil {
		return c.abort(ctx, tx, operation, errors.Join(ErrPersistence, commitErr))
	}

	if c.logger != nil {
		c.logger.Debug(logMsgCommitted, logAttrOperation, operation)
	}

	return nil
}

// abort rolls the transaction back and returns the already classified error.
// Every error path of every operation funnels through here, so no operation
// can return with the transaction still open.
func (c Coordinator) abort(ctx context.Context, tx Tx, operation string, err error) error {
	if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
		if c.logger != nil {
			c.logger.Warn(logMsgRollbackError, logAttrOperation, operation, logAttrError, rollbackErr.Error())
		}
	}

	if c.logger != nil && errors.Is(err, ErrPersistence) {
		c.logger.Error(logMsgRolledBack, logAttrOperation, operation, logAttrError, err.Error())
	}

	return err
}

// storeFailure classifies an error from a read-only store call or a failed
// Begin, where no transaction is open and nothing needs rolling back.
func (c Coordinator) storeFailure(operation string, err error) error {
	if c.logger != nil {
		c.logger.Error(logMsgStoreFailure, logAttrOperation, operation, logAttrError, err.Error())
	}

	return errors.Join(ErrPersistence, err)
}
