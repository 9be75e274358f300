package rentalstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soundgood/rentalstore-go/rentalstore"
)

func Test_Deposit_AddsAmountToBalance(t *testing.T) {
	// act
	newBalance, err := rentalstore.Deposit(100, 400)

	// assert
	assert.NoError(t, err, "deposit of a positive amount should succeed")
	assert.Equal(t, int64(500), newBalance, "should add the amount to the balance")
}

func Test_Deposit_OnEmptyAccount(t *testing.T) {
	// act
	newBalance, err := rentalstore.Deposit(0, 500)

	// assert
	assert.NoError(t, err, "deposit on a zero balance should succeed")
	assert.Equal(t, int64(500), newBalance, "should set the balance to the amount")
}

func Test_Deposit_RejectsZeroAmount(t *testing.T) {
	// act
	_, err := rentalstore.Deposit(100, 0)

	// assert
	assert.ErrorIs(t, err, rentalstore.ErrRejected, "zero amount should be rejected")
	assert.ErrorIs(t, err, rentalstore.ErrNonPositiveAmount, "should name the non-positive amount")
}

func Test_Deposit_RejectsNegativeAmount(t *testing.T) {
	// act
	_, err := rentalstore.Deposit(100, -50)

	// assert
	assert.ErrorIs(t, err, rentalstore.ErrRejected, "negative amount should be rejected")
	assert.ErrorIs(t, err, rentalstore.ErrNonPositiveAmount, "should name the non-positive amount")
}

func Test_Withdraw_TakesAmountFromBalance(t *testing.T) {
	// act
	newBalance, err := rentalstore.Withdraw(500, 200)

	// assert
	assert.NoError(t, err, "withdrawal within the balance should succeed")
	assert.Equal(t, int64(300), newBalance, "should subtract the amount from the balance")
}

func Test_Withdraw_AllowsEmptyingTheAccount(t *testing.T) {
	// act
	newBalance, err := rentalstore.Withdraw(500, 500)

	// assert
	assert.NoError(t, err, "withdrawing the full balance should succeed")
	assert.Equal(t, int64(0), newBalance, "should leave a zero balance")
}

func Test_Withdraw_RejectsOverdraft(t *testing.T) {
	// act
	_, err := rentalstore.Withdraw(500, 700)

	// assert
	assert.ErrorIs(t, err, rentalstore.ErrRejected, "overdraft should be rejected")
	assert.ErrorIs(t, err, rentalstore.ErrInsufficientFunds, "should name the insufficient funds")
}

func Test_Withdraw_RejectsOverdraftByOne(t *testing.T) {
	// act
	_, err := rentalstore.Withdraw(500, 501)

	// assert
	assert.ErrorIs(t, err, rentalstore.ErrInsufficientFunds, "one over the balance is still an overdraft")
}

func Test_Withdraw_RejectsNonPositiveAmount(t *testing.T) {
	// act
	_, zeroErr := rentalstore.Withdraw(500, 0)
	_, negativeErr := rentalstore.Withdraw(500, -1)

	// assert
	assert.ErrorIs(t, zeroErr, rentalstore.ErrNonPositiveAmount, "zero amount should be rejected")
	assert.ErrorIs(t, negativeErr, rentalstore.ErrNonPositiveAmount, "negative amount should be rejected")
}
