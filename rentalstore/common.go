package rentalstore

import (
	"errors"
)

// Validation failures are the caller's fault: no store transaction was
// opened when one of these is returned.
var (
	// ErrValidation is the root of all input-validation failures.
	ErrValidation = errors.New("invalid input")

	// ErrEmptyHolderName is returned when an account is created without a holder name.
	ErrEmptyHolderName = errors.New("holder name must not be empty")

	// ErrEmptyAccountNumber is returned when an account operation receives no account number.
	ErrEmptyAccountNumber = errors.New("account number must not be empty")

	// ErrEmptyInstrumentID is returned when a rental operation receives no instrument id.
	ErrEmptyInstrumentID = errors.New("instrument id must not be empty")

	// ErrEmptyStudentID is returned when a rental operation receives no student id.
	ErrEmptyStudentID = errors.New("student id must not be empty")

	// ErrEmptyAgreementID is returned when a return operation receives no agreement id.
	ErrEmptyAgreementID = errors.New("agreement id must not be empty")
)

// Rejections are expected, recoverable business outcomes, not system faults.
// Any transaction that was open has been rolled back before one of these is surfaced.
var (
	// ErrRejected is the root of all domain-rule rejections.
	ErrRejected = errors.New("rejected by domain rule")

	// ErrNonPositiveAmount is returned when a deposit or withdrawal amount is zero or negative.
	ErrNonPositiveAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the account balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrStudentRentalLimitReached is returned when a student already has the
	// maximum number of active rental agreements.
	ErrStudentRentalLimitReached = errors.New("student rental limit reached")

	// ErrInstrumentUnavailable is returned when the instrument already has an
	// active rental agreement.
	ErrInstrumentUnavailable = errors.New("instrument unavailable")

	// ErrAgreementAlreadyReturned is returned when a return targets an
	// agreement whose date returned is already set.
	ErrAgreementAlreadyReturned = errors.New("agreement already returned")
)

// Persistence failures always trigger a rollback and wrap the store cause for diagnostics.
var (
	// ErrPersistence is the root of all store failures surfaced by the Coordinator.
	ErrPersistence = errors.New("persistence failure")

	// ErrLockTimeout is returned when a row lock could not be acquired within the bounded wait.
	ErrLockTimeout = errors.New("lock acquisition timed out")

	// ErrUnexpectedRowCount is returned when a write affected a different
	// number of rows than the operation requires.
	ErrUnexpectedRowCount = errors.New("unexpected number of rows affected")

	// ErrAccountNumberExhausted is returned when no collision-free account
	// number could be generated within the attempt budget.
	ErrAccountNumberExhausted = errors.New("could not generate an unused account number")
)

// Absent rows. GetAccount surfaces these as-is; operations that require an
// existing row to proceed escalate them to ErrRejected.
var (
	// ErrAccountNotFound is returned when no account exists for the given number.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInstrumentNotFound is returned when no instrument exists for the given id.
	ErrInstrumentNotFound = errors.New("instrument not found")

	// ErrStudentNotFound is returned when no student exists for the given id.
	ErrStudentNotFound = errors.New("student not found")
)
