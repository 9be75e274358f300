package memorystore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundgood/rentalstore-go/rentalstore"
	"github.com/soundgood/rentalstore-go/testutil/memorystore"
)

func Test_ExclusiveRead_BlocksUntilTheHoldingTransactionEnds(t *testing.T) {
	// setup
	ctx := context.Background()
	store := memorystore.New()
	store.SeedAccount("10000001", "Ada Lovelace", 100)

	first, err := store.Begin(ctx)
	require.NoError(t, err)
	_, err = first.GetAccount(ctx, "10000001", true)
	require.NoError(t, err)

	second, err := store.Begin(ctx)
	require.NoError(t, err)

	// act - the second transaction blocks until the first commits
	unblocked := make(chan int64, 1)
	go func() {
		account, readErr := second.GetAccount(ctx, "10000001", true)
		if readErr != nil {
			unblocked <- -1
			return
		}
		unblocked <- account.Balance
	}()

	_, err = first.UpdateAccountBalance(ctx, "10000001", 40)
	require.NoError(t, err)
	require.NoError(t, first.Commit(ctx))

	// assert - the waiter sees the committed balance
	select {
	case balance := <-unblocked:
		assert.Equal(t, int64(40), balance, "the blocked reader should see the committed state")
	case <-time.After(2 * time.Second):
		t.Fatal("the blocked reader never woke up")
	}

	require.NoError(t, second.Rollback(ctx))
}

func Test_ExclusiveRead_FailsWithLockTimeout(t *testing.T) {
	// setup
	ctx := context.Background()
	store := memorystore.New().WithLockTimeout(50 * time.Millisecond)
	store.SeedAccount("10000001", "Ada Lovelace", 100)

	holder, err := store.Begin(ctx)
	require.NoError(t, err)
	_, err = holder.GetAccount(ctx, "10000001", true)
	require.NoError(t, err)
	defer func() { _ = holder.Rollback(ctx) }()

	waiter, err := store.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = waiter.Rollback(ctx) }()

	// act
	_, err = waiter.GetAccount(ctx, "10000001", true)

	// assert
	assert.ErrorIs(t, err, rentalstore.ErrLockTimeout)
}

func Test_Rollback_UndoesEveryWriteOfTheTransaction(t *testing.T) {
	// setup
	ctx := context.Background()
	store := memorystore.New()
	store.SeedAccount("10000001", "Ada Lovelace", 100)

	tx, err := store.Begin(ctx)
	require.NoError(t, err)

	_, err = tx.UpdateAccountBalance(ctx, "10000001", 999)
	require.NoError(t, err)
	_, err = tx.InsertAccount(ctx, "20000002", 50, 1)
	require.NoError(t, err)

	// act
	require.NoError(t, tx.Rollback(ctx))

	// assert
	account, getErr := store.GetAccount(ctx, "10000001")
	require.NoError(t, getErr)
	assert.Equal(t, int64(100), account.Balance, "the balance update must be undone")

	_, insertedErr := store.GetAccount(ctx, "20000002")
	assert.ErrorIs(t, insertedErr, rentalstore.ErrAccountNotFound, "the insert must be undone")
}

func Test_Rollback_AfterCommitIsTolerated(t *testing.T) {
	// setup
	ctx := context.Background()
	store := memorystore.New()
	store.SeedAccount("10000001", "Ada Lovelace", 100)

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.UpdateAccountBalance(ctx, "10000001", 40)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	// act
	rollbackErr := tx.Rollback(ctx)

	// assert - mirrors how database drivers tolerate rollback on a closed tx
	assert.NoError(t, rollbackErr)

	account, getErr := store.GetAccount(ctx, "10000001")
	require.NoError(t, getErr)
	assert.Equal(t, int64(40), account.Balance, "the committed write must survive")
}
