// Package rentalstore provides the core types and the transactional
// consistency layer for a school that operates simple bank-style accounts
// and lends musical instruments to students.
//
// The package enforces the domain invariants under concurrent execution:
// non-negative balances, at most two simultaneous active rentals per
// student, and a single active rental agreement per instrument. All
// cross-operation coordination happens through the row locks of the Store;
// no entity state is ever shared or cached in memory across operations.
//
// Key types:
//   - Account, Instrument, Student, RentalAgreement: entity snapshots
//   - Store / Tx: the relational persistence contract with pessimistic
//     row-level locking (SELECT ... FOR UPDATE semantics)
//   - Coordinator: runs every externally visible operation as one atomic
//     business transaction against the Store
//
// The pure decision logic (account ledger, rental eligibility) lives in
// side-effect-free functions; the Coordinator acquires locked snapshots,
// applies the decisions, and either persists and commits or rolls back.
//
// Common usage pattern:
//
//	store, err := postgresengine.NewStoreFromPGXPool(pool)
//	if err != nil {
//		// handle error
//	}
//
//	coordinator, err := rentalstore.NewCoordinator(store)
//	if err != nil {
//		// handle error
//	}
//
//	account, err := coordinator.CreateAccount(ctx, "Ada")
//	if err != nil {
//		// handle error
//	}
//
//	if err := coordinator.Deposit(ctx, account.AccountNo, 500); err != nil {
//		switch {
//		case errors.Is(err, rentalstore.ErrRejected):
//			// expected business outcome
//		case errors.Is(err, rentalstore.ErrPersistence):
//			// store failure, transaction was rolled back
//		}
//	}
package rentalstore
