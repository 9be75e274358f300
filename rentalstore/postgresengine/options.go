package postgresengine

import (
	"errors"
	"time"

	"github.com/soundgood/rentalstore-go/rentalstore"
)

var (
	// ErrNilLogger is returned when a nil logger is supplied as an option.
	ErrNilLogger = errors.New("logger must not be nil")

	// ErrInvalidLockTimeout is returned for a zero or negative lock timeout.
	ErrInvalidLockTimeout = errors.New("lock timeout must be positive")
)

// Option defines a functional option for configuring the Store.
type Option func(*Store) error

// WithLogger sets a logger for the Store. Without it the store is silent.
func WithLogger(logger rentalstore.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			return ErrNilLogger
		}

		s.logger = logger

		return nil
	}
}

// WithLockTimeout bounds how long a transaction waits for a row lock
// before failing with rentalstore.ErrLockTimeout. Defaults to 5 seconds.
func WithLockTimeout(timeout time.Duration) Option {
	return func(s *Store) error {
		if timeout <= 0 {
			return ErrInvalidLockTimeout
		}

		s.lockTimeout = timeout

		return nil
	}
}
