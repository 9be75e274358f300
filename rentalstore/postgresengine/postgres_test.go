package postgresengine_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundgood/rentalstore-go/rentalstore"
	"github.com/soundgood/rentalstore-go/rentalstore/postgresengine"
	"github.com/soundgood/rentalstore-go/testutil/postgreswrapper"
)

func Test_CreateAccount_PersistsAccountAndHolder(t *testing.T) {
	// setup
	ctx, wrapper, coordinator, cleanup := setupTestEnvironment(t)
	defer cleanup()

	// act
	account, err := coordinator.CreateAccount(ctx, "Ada Lovelace")

	// assert
	require.NoError(t, err, "creating an account should succeed")

	stored, getErr := coordinator.GetAccount(ctx, account.AccountNo)
	assert.NoError(t, getErr, "the account should be readable after commit")
	assert.Equal(t, int64(0), stored.Balance, "a new account starts empty")
	assert.Equal(t, "Ada Lovelace", stored.HolderName, "the holder name should come from the holder table")

	holderCount := wrapper.QueryInt(t, `SELECT count(*) FROM holder`)
	assert.Equal(t, 1, holderCount)
}

func Test_CreateAccount_ReusesExistingHolder(t *testing.T) {
	// setup
	ctx, wrapper, coordinator, cleanup := setupTestEnvironment(t)
	defer cleanup()

	// act
	_, firstErr := coordinator.CreateAccount(ctx, "Ada Lovelace")
	_, secondErr := coordinator.CreateAccount(ctx, "Ada Lovelace")

	// assert
	require.NoError(t, firstErr)
	require.NoError(t, secondErr)

	holderCount := wrapper.QueryInt(t, `SELECT count(*) FROM holder`)
	assert.Equal(t, 1, holderCount, "the same holder name must not create a second holder row")

	accountCount := wrapper.QueryInt(t, `SELECT count(*) FROM account`)
	assert.Equal(t, 2, accountCount)
}

func Test_CreateAccount_ConcurrentCreationsShareOneHolder(t *testing.T) {
	// setup
	ctx, wrapper, coordinator, cleanup := setupTestEnvironment(t)
	defer cleanup()

	// act - two concurrent creations race the holder upsert for a new name
	var wg sync.WaitGroup
	results := make([]error, 2)

	for i := range results {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_, results[slot] = coordinator.CreateAccount(ctx, "Ada Lovelace")
		}(i)
	}

	wg.Wait()

	// assert - both succeed against a single holder row
	for _, err := range results {
		assert.NoError(t, err, "concurrent account creation should not fail on a new holder name")
	}

	holderCount := wrapper.QueryInt(t, `SELECT count(*) FROM holder`)
	assert.Equal(t, 1, holderCount, "the racing creations must resolve to one holder row")

	accountCount := wrapper.QueryInt(t, `SELECT count(*) FROM account`)
	assert.Equal(t, 2, accountCount)
}

func Test_DepositAndWithdraw_AgainstTheDatabase(t *testing.T) {
	// setup
	ctx, _, coordinator, cleanup := setupTestEnvironment(t)
	defer cleanup()

	account, createErr := coordinator.CreateAccount(ctx, "Ada Lovelace")
	require.NoError(t, createErr)

	// act + assert, step by step
	require.NoError(t, coordinator.Deposit(ctx, account.AccountNo, 500))

	overdraftErr := coordinator.Withdraw(ctx, account.AccountNo, 700)
	assert.ErrorIs(t, overdraftErr, rentalstore.ErrInsufficientFunds, "overdraft should be rejected")

	afterOverdraft, _ := coordinator.GetAccount(ctx, account.AccountNo)
	assert.Equal(t, int64(500), afterOverdraft.Balance, "a rejected withdrawal must not change the balance")

	require.NoError(t, coordinator.Withdraw(ctx, account.AccountNo, 500))

	final, _ := coordinator.GetAccount(ctx, account.AccountNo)
	assert.Equal(t, int64(0), final.Balance)
}

func Test_RentAndReturn_FullLifecycle(t *testing.T) {
	// setup
	ctx, wrapper, coordinator, cleanup := setupTestEnvironment(t)
	defer cleanup()

	postgreswrapper.SeedStudent(t, wrapper, "stud-1", "Grace Hopper")
	postgreswrapper.SeedInstrument(t, wrapper, "inst-1", "trumpet", "Yamaha", "brass", "100")

	// act
	agreement, rentErr := coordinator.Rent(ctx, "inst-1", "stud-1")

	// assert
	require.NoError(t, rentErr, "renting an available instrument should succeed")
	assert.Equal(t, 1, postgreswrapper.CountActiveAgreements(t, wrapper, "stud-1"))

	available, listErr := coordinator.ListInstruments(ctx)
	require.NoError(t, listErr)
	assert.Empty(t, available, "the rented instrument should no longer be listed")

	require.NoError(t, coordinator.ReturnInstrument(ctx, agreement.ID.String()))
	assert.Equal(t, 0, postgreswrapper.CountActiveAgreements(t, wrapper, "stud-1"))

	availableAgain, listAgainErr := coordinator.ListInstruments(ctx)
	require.NoError(t, listAgainErr)
	assert.Len(t, availableAgain, 1, "the returned instrument should be listed again")
	assert.Equal(t, "100", availableAgain[0].Fee, "the fee should come from the fee table")
}

func Test_ReturnInstrument_SecondReturnIsRejected(t *testing.T) {
	// setup
	ctx, wrapper, coordinator, cleanup := setupTestEnvironment(t)
	defer cleanup()

	postgreswrapper.SeedStudent(t, wrapper, "stud-1", "Grace Hopper")
	postgreswrapper.SeedInstrument(t, wrapper, "inst-1", "trumpet", "Yamaha", "brass", "100")

	agreement, rentErr := coordinator.Rent(ctx, "inst-1", "stud-1")
	require.NoError(t, rentErr)
	require.NoError(t, coordinator.ReturnInstrument(ctx, agreement.ID.String()))

	// act
	err := coordinator.ReturnInstrument(ctx, agreement.ID.String())

	// assert
	assert.ErrorIs(t, err, rentalstore.ErrRejected)
	assert.ErrorIs(t, err, rentalstore.ErrAgreementAlreadyReturned)
}

func Test_Rent_StudentRentalLimitHoldsAgainstTheDatabase(t *testing.T) {
	// setup
	ctx, wrapper, coordinator, cleanup := setupTestEnvironment(t)
	defer cleanup()

	postgreswrapper.SeedStudent(t, wrapper, "stud-1", "Grace Hopper")
	postgreswrapper.SeedInstrument(t, wrapper, "inst-1", "trumpet", "Yamaha", "brass", "100")
	postgreswrapper.SeedInstrument(t, wrapper, "inst-2", "violin", "Stentor", "strings", "120")
	postgreswrapper.SeedInstrument(t, wrapper, "inst-3", "flute", "Pearl", "woodwind", "90")

	_, err := coordinator.Rent(ctx, "inst-1", "stud-1")
	require.NoError(t, err)
	_, err = coordinator.Rent(ctx, "inst-2", "stud-1")
	require.NoError(t, err)

	// act
	_, err = coordinator.Rent(ctx, "inst-3", "stud-1")

	// assert
	assert.ErrorIs(t, err, rentalstore.ErrStudentRentalLimitReached)
	assert.Equal(t, 2, postgreswrapper.CountActiveAgreements(t, wrapper, "stud-1"))
}

func Test_Rent_InstrumentExclusivityHoldsAgainstTheDatabase(t *testing.T) {
	// setup
	ctx, wrapper, coordinator, cleanup := setupTestEnvironment(t)
	defer cleanup()

	postgreswrapper.SeedStudent(t, wrapper, "stud-1", "Grace Hopper")
	postgreswrapper.SeedStudent(t, wrapper, "stud-2", "Alan Turing")
	postgreswrapper.SeedInstrument(t, wrapper, "inst-1", "trumpet", "Yamaha", "brass", "100")

	_, firstErr := coordinator.Rent(ctx, "inst-1", "stud-1")
	require.NoError(t, firstErr)

	// act
	_, secondErr := coordinator.Rent(ctx, "inst-1", "stud-2")

	// assert
	assert.ErrorIs(t, secondErr, rentalstore.ErrInstrumentUnavailable)
}

func Test_FindInstrumentsByType_FiltersAgainstTheDatabase(t *testing.T) {
	// setup
	ctx, wrapper, coordinator, cleanup := setupTestEnvironment(t)
	defer cleanup()

	postgreswrapper.SeedInstrument(t, wrapper, "inst-1", "trumpet", "Yamaha", "brass", "100")
	postgreswrapper.SeedInstrument(t, wrapper, "inst-2", "violin", "Stentor", "strings", "120")

	// act
	violins, err := coordinator.FindInstrumentsByType(ctx, "violin")

	// assert
	require.NoError(t, err)
	require.Len(t, violins, 1)
	assert.Equal(t, "inst-2", violins[0].ID)
	assert.Equal(t, "Stentor", violins[0].Brand)
}

func Test_Withdraw_ConflictingTransactionFailsWithLockTimeout(t *testing.T) {
	// setup - a short lock timeout so the blocked transaction fails fast
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t, withShortLockTimeout()...)
	defer wrapper.Close()

	postgreswrapper.EnsureSchema(t, wrapper)
	postgreswrapper.CleanUp(t, wrapper)

	store := wrapper.GetStore()
	coordinator, err := rentalstore.NewCoordinator(store)
	require.NoError(t, err)

	account, createErr := coordinator.CreateAccount(ctx, "Ada Lovelace")
	require.NoError(t, createErr)
	require.NoError(t, coordinator.Deposit(ctx, account.AccountNo, 100))

	// a competing transaction locks the account row and does not commit
	blockingTx, beginErr := store.Begin(ctx)
	require.NoError(t, beginErr)
	_, lockErr := blockingTx.GetAccount(ctx, account.AccountNo, true)
	require.NoError(t, lockErr)
	defer func() { _ = blockingTx.Rollback(ctx) }()

	// act
	withdrawErr := coordinator.Withdraw(ctx, account.AccountNo, 10)

	// assert
	assert.ErrorIs(t, withdrawErr, rentalstore.ErrLockTimeout, "the blocked transaction should fail with a lock timeout")
	assert.NotErrorIs(t, withdrawErr, rentalstore.ErrRejected, "a lock timeout is a failure, not a rejection")
}

func Test_GetAccount_UnknownAccountNumber(t *testing.T) {
	// setup
	ctx, _, coordinator, cleanup := setupTestEnvironment(t)
	defer cleanup()

	// act
	_, err := coordinator.GetAccount(ctx, "99999999")

	// assert
	assert.ErrorIs(t, err, rentalstore.ErrAccountNotFound)
}

// Test setup helpers.
func withShortLockTimeout() []postgresengine.Option {
	return []postgresengine.Option{postgresengine.WithLockTimeout(200 * time.Millisecond)}
}

func setupTestEnvironment(t *testing.T) (context.Context, postgreswrapper.Wrapper, rentalstore.Coordinator, func()) {
	t.Helper()

	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)

	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	postgreswrapper.EnsureSchema(t, wrapper)
	postgreswrapper.CleanUp(t, wrapper)

	coordinator, err := rentalstore.NewCoordinator(wrapper.GetStore())
	require.NoError(t, err, "error creating coordinator in test setup")

	cleanup := func() {
		cancel()
		wrapper.Close()
	}

	return ctxWithTimeout, wrapper, coordinator, cleanup
}
