package postgresengine_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundgood/rentalstore-go/rentalstore"
	"github.com/soundgood/rentalstore-go/rentalstore/postgresengine"
	"github.com/soundgood/rentalstore-go/testutil/helper"
	"github.com/soundgood/rentalstore-go/testutil/postgreswrapper"
)

func Test_Store_LogsExecutedSQLWithDuration(t *testing.T) {
	// setup
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	spy := helper.NewLogHandlerSpy(false)

	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t, postgresengine.WithLogger(slog.New(spy)))
	defer wrapper.Close()

	postgreswrapper.EnsureSchema(t, wrapper)
	postgreswrapper.CleanUp(t, wrapper)
	spy.Reset()

	// act
	_, err := wrapper.GetStore().GetAccount(ctx, "10000001")

	// assert
	require.ErrorIs(t, err, rentalstore.ErrAccountNotFound)
	assert.True(t,
		spy.HasDebugLogWithMessage("executed sql for: query").WithDurationMS().Assert(),
		"the executed query should be logged with its duration")
}

func Test_Store_SilentWithoutLogger(t *testing.T) {
	// setup
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()

	postgreswrapper.EnsureSchema(t, wrapper)
	postgreswrapper.CleanUp(t, wrapper)

	// act - must not panic with a nil logger
	_, err := wrapper.GetStore().GetAccount(ctx, "10000001")

	// assert
	assert.ErrorIs(t, err, rentalstore.ErrAccountNotFound)
}
