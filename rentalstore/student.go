package rentalstore

// Student is a snapshot of one student. Students are reference data created
// outside this core; their active rental agreements are loaded on demand by
// the Coordinator and never persisted on the student itself.
type Student struct {
	ID   string
	Name string
}
