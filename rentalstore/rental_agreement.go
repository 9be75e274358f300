package rentalstore

import (
	"time"

	"github.com/google/uuid"
)

// RentalAgreement records that one student rented one instrument.
// An agreement is "active" while DateReturned is nil; once set, the return
// date is immutable. Agreements are never deleted.
type RentalAgreement struct {
	ID           uuid.UUID
	InstrumentID string
	StudentID    string
	DateRented   time.Time
	DateReturned *time.Time
}

// NewRentalAgreement creates an active agreement with a fresh id,
// DateRented set to the given instant and no return date.
func NewRentalAgreement(instrumentID string, studentID string, rentedAt time.Time) RentalAgreement {
	return RentalAgreement{
		ID:           uuid.New(),
		InstrumentID: instrumentID,
		StudentID:    studentID,
		DateRented:   rentedAt,
	}
}

// IsActive reports whether the agreement has no return date yet.
func (a RentalAgreement) IsActive() bool {
	return a.DateReturned == nil
}
