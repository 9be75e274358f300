package rentalstore_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/soundgood/rentalstore-go/rentalstore"
)

func Test_NewRentalAgreement_IsActiveWithUniqueID(t *testing.T) {
	// setup
	rentedAt := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	// act
	agreement := rentalstore.NewRentalAgreement("inst-1", "stud-1", rentedAt)
	other := rentalstore.NewRentalAgreement("inst-1", "stud-1", rentedAt)

	// assert
	assert.NotEqual(t, uuid.Nil, agreement.ID, "should assign an ID")
	assert.NotEqual(t, agreement.ID, other.ID, "each agreement should get its own ID")
	assert.Equal(t, "inst-1", agreement.InstrumentID)
	assert.Equal(t, "stud-1", agreement.StudentID)
	assert.Equal(t, rentedAt, agreement.DateRented)
	assert.True(t, agreement.IsActive(), "a new agreement should be active")
}

func Test_RentalAgreement_IsNoLongerActiveOnceReturned(t *testing.T) {
	// setup
	agreement := rentalstore.NewRentalAgreement("inst-1", "stud-1", time.Now())
	returnedAt := time.Now()

	// act
	agreement.DateReturned = &returnedAt

	// assert
	assert.False(t, agreement.IsActive(), "a returned agreement should not be active")
}
