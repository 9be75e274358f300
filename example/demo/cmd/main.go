package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soundgood/rentalstore-go/rentalstore"
	"github.com/soundgood/rentalstore-go/rentalstore/postgresengine"
	"github.com/soundgood/rentalstore-go/testutil/config"
)

// A scripted walkthrough of the rental store operations against a live
// database: open an account, move money, rent an instrument, return it.
func main() {
	dsn := flag.String("dsn", config.PostgresDSN(), "postgres connection string")
	lockTimeout := flag.Duration("lock-timeout", 5*time.Second, "row lock wait bound")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(*dsn)
	if err != nil {
		log.Fatalf("Failed to parse DSN: %v", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatalf("Failed to create pgx pool: %v", err)
	}
	defer pool.Close()

	if pingErr := pool.Ping(ctx); pingErr != nil {
		log.Fatalf("Failed to connect to database: %v", pingErr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	store, err := postgresengine.NewStoreFromPGXPool(
		pool,
		postgresengine.WithLogger(logger),
		postgresengine.WithLockTimeout(*lockTimeout),
	)
	if err != nil {
		log.Fatalf("Failed to create store: %v", err)
	}

	coordinator, err := rentalstore.NewCoordinator(store, rentalstore.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to create coordinator: %v", err)
	}

	account, err := coordinator.CreateAccount(ctx, "Ada Lovelace")
	if err != nil {
		log.Fatalf("CreateAccount failed: %v", err)
	}
	log.Printf("Created account %s for %s", account.AccountNo, account.HolderName)

	if err = coordinator.Deposit(ctx, account.AccountNo, 500); err != nil {
		log.Fatalf("Deposit failed: %v", err)
	}

	if err = coordinator.Withdraw(ctx, account.AccountNo, 700); err != nil {
		log.Printf("Withdrawal of 700 rejected as expected: %v", err)
	}

	if err = coordinator.Withdraw(ctx, account.AccountNo, 500); err != nil {
		log.Fatalf("Withdraw failed: %v", err)
	}

	account, err = coordinator.GetAccount(ctx, account.AccountNo)
	if err != nil {
		log.Fatalf("GetAccount failed: %v", err)
	}
	log.Printf("Final balance: %d", account.Balance)

	instruments, err := coordinator.ListInstruments(ctx)
	if err != nil {
		log.Fatalf("ListInstruments failed: %v", err)
	}
	log.Printf("Available instruments: %d", len(instruments))

	if len(instruments) == 0 {
		log.Printf("No instruments seeded; skipping the rental walkthrough")
		return
	}

	// The rental walkthrough needs a seeded student as well.
	const studentID = "demo-student"

	agreement, err := coordinator.Rent(ctx, instruments[0].ID, studentID)
	if err != nil {
		log.Printf("Rent skipped: %v", err)
		return
	}
	log.Printf("Rented %s (%s) under agreement %s", instruments[0].Type, instruments[0].Brand, agreement.ID)

	if err = coordinator.ReturnInstrument(ctx, agreement.ID.String()); err != nil {
		log.Fatalf("ReturnInstrument failed: %v", err)
	}
	log.Printf("Returned agreement %s", agreement.ID)
}
