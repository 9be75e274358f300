// Package memorystore provides an in-memory rentalstore.Store for tests.
//
// Its exclusive reads take real blocking row locks that are held until
// Commit or Rollback, so lock serialization, lock release on rejection,
// and lock-timeout behavior can be exercised deterministically without a
// running database. Writes are applied immediately with an undo log, not
// buffered until Commit; see the isolation caveat on MemoryStore.Begin.
package memorystore
