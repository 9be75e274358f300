package rentalstore

import (
	"errors"
)

// Deposit implements the business logic deciding whether an amount may be
// added to a balance. This is a pure function with no side effects; the
// Coordinator is responsible for persisting the result.
//
// Business Rules:
//
//	GIVEN: An account balance and an amount, both in currency minor units
//	WHEN: A deposit of the amount is requested
//	THEN: The new balance is balance + amount; no upper bound is enforced
//	ERROR: "amount must be positive" if amount <= 0
func Deposit(balance int64, amount int64) (int64, error) {
	if amount <= 0 {
		return balance, errors.Join(ErrRejected, ErrNonPositiveAmount)
	}

	return balance + amount, nil
}

// Withdraw implements the business logic deciding whether an amount may be
// taken from a balance. This is a pure function with no side effects; the
// Coordinator is responsible for persisting the result.
//
// Business Rules:
//
//	GIVEN: An account balance and an amount, both in currency minor units
//	WHEN: A withdrawal of the amount is requested
//	THEN: The new balance is balance - amount and is never negative
//	ERROR: "amount must be positive" if amount <= 0
//	ERROR: "insufficient funds" if amount > balance
func Withdraw(balance int64, amount int64) (int64, error) {
	if amount <= 0 {
		return balance, errors.Join(ErrRejected, ErrNonPositiveAmount)
	}

	if amount > balance {
		return balance, errors.Join(ErrRejected, ErrInsufficientFunds)
	}

	return balance - amount, nil
}
