package rentalstore

import (
	"errors"
)

// MaxActiveRentalsPerStudent is the cap on simultaneous active rental
// agreements per student.
const MaxActiveRentalsPerStudent = 2

// CanRent implements the business logic deciding whether a new rental
// agreement may be created. This is a pure function with no side effects;
// the Coordinator loads the locked inputs and persists the outcome.
//
// Business Rules:
//
//	GIVEN: The student's current number of active rental agreements and
//	       whether the instrument already has an active agreement
//	WHEN: A new rental is requested
//	THEN: The rental is admitted
//	ERROR: "student rental limit reached" if the student already has 2 active rentals
//	ERROR: "instrument unavailable" if another agreement on this instrument has no return date
func CanRent(activeRentalCount int, instrumentAlreadyActive bool) error {
	if activeRentalCount >= MaxActiveRentalsPerStudent {
		return errors.Join(ErrRejected, ErrStudentRentalLimitReached)
	}

	if instrumentAlreadyActive {
		return errors.Join(ErrRejected, ErrInstrumentUnavailable)
	}

	return nil
}
