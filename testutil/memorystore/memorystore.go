package memorystore

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/soundgood/rentalstore-go/rentalstore"
)

const defaultLockTimeout = 2 * time.Second

// ErrDuplicateAccountNumber is returned when an insert collides with an
// existing account number, mirroring a unique constraint violation.
var ErrDuplicateAccountNumber = errors.New("duplicate account number")

// MemoryStore is an in-memory rentalstore.Store with real blocking row
// locks, so concurrency behavior can be tested deterministically without
// a database. Exclusive reads block until the competing transaction
// commits or rolls back, or fail with rentalstore.ErrLockTimeout after
// the configured wait.
type MemoryStore struct {
	mu          sync.Mutex
	lockTimeout time.Duration

	holders      map[string]int64
	nextHolderID int64
	accounts     map[string]*accountRow
	students     map[string]rentalstore.Student
	instruments  map[string]rentalstore.Instrument
	agreements   map[string]*agreementRow

	locks map[string]chan struct{}
}

type accountRow struct {
	balance  int64
	holderID int64
}

type agreementRow struct {
	id           uuid.UUID
	instrumentID string
	studentID    string
	dateRented   time.Time
	dateReturned *time.Time
}

// New creates an empty MemoryStore with the default lock timeout.
func New() *MemoryStore {
	return &MemoryStore{
		lockTimeout: defaultLockTimeout,
		holders:     make(map[string]int64),
		accounts:    make(map[string]*accountRow),
		students:    make(map[string]rentalstore.Student),
		instruments: make(map[string]rentalstore.Instrument),
		agreements:  make(map[string]*agreementRow),
		locks:       make(map[string]chan struct{}),
	}
}

// WithLockTimeout changes how long an exclusive read waits for a
// conflicting lock before failing with rentalstore.ErrLockTimeout.
func (s *MemoryStore) WithLockTimeout(timeout time.Duration) *MemoryStore {
	s.lockTimeout = timeout
	return s
}

// SeedStudent adds a student row.
func (s *MemoryStore) SeedStudent(student rentalstore.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students[student.ID] = student
}

// SeedInstrument adds an instrument row.
func (s *MemoryStore) SeedInstrument(instrument rentalstore.Instrument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.instruments[instrument.ID] = instrument
}

// SeedAccount adds an account row for the named holder with the given balance.
func (s *MemoryStore) SeedAccount(accountNo string, holderName string, balance int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	holderID, known := s.holders[holderName]
	if !known {
		s.nextHolderID++
		holderID = s.nextHolderID
		s.holders[holderName] = holderID
	}

	s.accounts[accountNo] = &accountRow{balance: balance, holderID: holderID}
}

// HolderCount reports how many distinct holders exist.
func (s *MemoryStore) HolderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.holders)
}

// AgreementCount reports how many rental agreements exist, open or closed.
func (s *MemoryStore) AgreementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.agreements)
}

// Begin opens a new transaction. Writes apply immediately and are undone
// on rollback; row locks taken by exclusive reads are held until the
// transaction terminates.
//
// Isolation caveat: because writes are not buffered until Commit, a
// non-locking read from another transaction can observe uncommitted
// state, which read-committed Postgres never shows. Tests asserting on
// state another transaction wrote must read after that transaction has
// terminated, or read under an exclusive lock.
func (s *MemoryStore) Begin(_ context.Context) (rentalstore.Tx, error) {
	return &memoryTx{store: s}, nil
}

// GetAccount reads an account without locking it.
func (s *MemoryStore) GetAccount(_ context.Context, accountNo string) (rentalstore.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readAccount(accountNo)
}

// ListInstruments returns the instruments with no open rental agreement,
// optionally restricted to one type.
func (s *MemoryStore) ListInstruments(_ context.Context, typeFilter string) ([]rentalstore.Instrument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	available := make([]rentalstore.Instrument, 0)

	for id, instrument := range s.instruments {
		if typeFilter != "" && instrument.Type != typeFilter {
			continue
		}

		if s.hasOpenAgreement(id) {
			continue
		}

		available = append(available, instrument)
	}

	return available, nil
}

// readAccount must be called with s.mu held.
func (s *MemoryStore) readAccount(accountNo string) (rentalstore.Account, error) {
	row, found := s.accounts[accountNo]
	if !found {
		return rentalstore.Account{}, rentalstore.ErrAccountNotFound
	}

	holderName := ""
	for name, id := range s.holders {
		if id == row.holderID {
			holderName = name
			break
		}
	}

	return rentalstore.BuildAccount(accountNo, holderName, row.balance), nil
}

// hasOpenAgreement must be called with s.mu held.
func (s *MemoryStore) hasOpenAgreement(instrumentID string) bool {
	for _, agreement := range s.agreements {
		if agreement.instrumentID == instrumentID && agreement.dateReturned == nil {
			return true
		}
	}

	return false
}

// lockChannel returns the lock for a row key, creating it on first use.
func (s *MemoryStore) lockChannel(key string) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, found := s.locks[key]
	if !found {
		lock = make(chan struct{}, 1)
		s.locks[key] = lock
	}

	return lock
}

type memoryTx struct {
	store    *MemoryStore
	held     []chan struct{}
	heldKeys map[string]bool
	undo     []func()
	done     bool
}

// acquireLock blocks until the row lock for key is free, the timeout
// elapses, or the context ends. Re-acquiring a key this transaction
// already holds is a no-op, matching how a database transaction can
// re-lock its own rows.
func (t *memoryTx) acquireLock(ctx context.Context, key string) error {
	if t.heldKeys[key] {
		return nil
	}

	lock := t.store.lockChannel(key)

	select {
	case lock <- struct{}{}:
		if t.heldKeys == nil {
			t.heldKeys = make(map[string]bool)
		}

		t.heldKeys[key] = true
		t.held = append(t.held, lock)

		return nil

	case <-time.After(t.store.lockTimeout):
		return errors.Join(rentalstore.ErrLockTimeout, errors.New("lock wait timed out on "+key))

	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *memoryTx) GetAccount(ctx context.Context, accountNo string, exclusive bool) (rentalstore.Account, error) {
	if exclusive {
		if lockErr := t.acquireLock(ctx, "account/"+accountNo); lockErr != nil {
			return rentalstore.Account{}, lockErr
		}
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	return t.store.readAccount(accountNo)
}

func (t *memoryTx) UpdateAccountBalance(_ context.Context, accountNo string, newBalance int64) (int64, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	row, found := t.store.accounts[accountNo]
	if !found {
		return 0, nil
	}

	previous := row.balance
	row.balance = newBalance
	t.undo = append(t.undo, func() { row.balance = previous })

	return 1, nil
}

func (t *memoryTx) InsertAccount(_ context.Context, accountNo string, balance int64, holderID int64) (int64, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if _, exists := t.store.accounts[accountNo]; exists {
		return 0, ErrDuplicateAccountNumber
	}

	t.store.accounts[accountNo] = &accountRow{balance: balance, holderID: holderID}
	t.undo = append(t.undo, func() { delete(t.store.accounts, accountNo) })

	return 1, nil
}

func (t *memoryTx) DeleteAccount(_ context.Context, accountNo string) (int64, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	row, found := t.store.accounts[accountNo]
	if !found {
		return 0, nil
	}

	delete(t.store.accounts, accountNo)
	t.undo = append(t.undo, func() { t.store.accounts[accountNo] = row })

	return 1, nil
}

func (t *memoryTx) FindOrCreateHolder(_ context.Context, name string) (int64, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if holderID, known := t.store.holders[name]; known {
		return holderID, nil
	}

	t.store.nextHolderID++
	holderID := t.store.nextHolderID
	t.store.holders[name] = holderID
	t.undo = append(t.undo, func() { delete(t.store.holders, name) })

	return holderID, nil
}

func (t *memoryTx) GetInstrument(ctx context.Context, instrumentID string, exclusive bool) (rentalstore.Instrument, error) {
	if exclusive {
		if lockErr := t.acquireLock(ctx, "instrument/"+instrumentID); lockErr != nil {
			return rentalstore.Instrument{}, lockErr
		}
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	instrument, found := t.store.instruments[instrumentID]
	if !found {
		return rentalstore.Instrument{}, rentalstore.ErrInstrumentNotFound
	}

	return instrument, nil
}

func (t *memoryTx) GetStudent(ctx context.Context, studentID string, exclusive bool) (rentalstore.Student, error) {
	if exclusive {
		if lockErr := t.acquireLock(ctx, "student/"+studentID); lockErr != nil {
			return rentalstore.Student{}, lockErr
		}
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	student, found := t.store.students[studentID]
	if !found {
		return rentalstore.Student{}, rentalstore.ErrStudentNotFound
	}

	return student, nil
}

func (t *memoryTx) GetActiveRentals(ctx context.Context, studentID string, exclusive bool) ([]rentalstore.RentalAgreement, error) {
	if exclusive {
		if lockErr := t.acquireLock(ctx, "rentals/"+studentID); lockErr != nil {
			return nil, lockErr
		}
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	active := make([]rentalstore.RentalAgreement, 0)

	for _, agreement := range t.store.agreements {
		if agreement.studentID != studentID || agreement.dateReturned != nil {
			continue
		}

		active = append(active, rentalstore.RentalAgreement{
			ID:           agreement.id,
			InstrumentID: agreement.instrumentID,
			StudentID:    agreement.studentID,
			DateRented:   agreement.dateRented,
		})
	}

	return active, nil
}

func (t *memoryTx) ActiveRentalExistsForInstrument(_ context.Context, instrumentID string) (bool, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	return t.store.hasOpenAgreement(instrumentID), nil
}

func (t *memoryTx) InsertRentalAgreement(_ context.Context, agreement rentalstore.RentalAgreement) (int64, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	key := agreement.ID.String()

	t.store.agreements[key] = &agreementRow{
		id:           agreement.ID,
		instrumentID: agreement.InstrumentID,
		studentID:    agreement.StudentID,
		dateRented:   agreement.DateRented,
		dateReturned: agreement.DateReturned,
	}
	t.undo = append(t.undo, func() { delete(t.store.agreements, key) })

	return 1, nil
}

func (t *memoryTx) CloseRentalAgreement(_ context.Context, agreementID string, returnedAt time.Time) (int64, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	agreement, found := t.store.agreements[agreementID]
	if !found || agreement.dateReturned != nil {
		return 0, nil
	}

	agreement.dateReturned = &returnedAt
	t.undo = append(t.undo, func() { agreement.dateReturned = nil })

	return 1, nil
}

func (t *memoryTx) Commit(_ context.Context) error {
	t.finish()
	return nil
}

func (t *memoryTx) Rollback(_ context.Context) error {
	if t.done {
		return nil
	}

	t.store.mu.Lock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.store.mu.Unlock()

	t.finish()

	return nil
}

// finish releases every held row lock and marks the transaction terminated.
func (t *memoryTx) finish() {
	if t.done {
		return
	}

	t.done = true
	t.undo = nil

	for _, lock := range t.held {
		<-lock
	}

	t.held = nil
	t.heldKeys = nil
}
