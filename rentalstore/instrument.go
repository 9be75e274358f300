package rentalstore

// Instrument is a snapshot of one rental instrument.
// Instruments are immutable reference data created outside this core;
// availability is derived from the active rental agreements, not stored.
// The fee is opaque display text; billing is out of scope.
type Instrument struct {
	ID       string
	Type     string
	Brand    string
	Category string
	Fee      string
}

// BuildInstrument creates an Instrument snapshot.
func BuildInstrument(id string, instrumentType string, brand string, category string, fee string) Instrument {
	return Instrument{
		ID:       id,
		Type:     instrumentType,
		Brand:    brand,
		Category: category,
		Fee:      fee,
	}
}
