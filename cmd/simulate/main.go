// Command simulate runs one batch of synthetic tuition payments against
// DATABASE_URL and reports how many committed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/josh-kwaku/campus-ledger/internal/config"
	"github.com/josh-kwaku/campus-ledger/internal/logging"
	"github.com/josh-kwaku/campus-ledger/internal/repository"
	"github.com/josh-kwaku/campus-ledger/internal/service/simulation"
	"github.com/josh-kwaku/campus-ledger/internal/service/txn"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	n := flag.Int("n", cfg.Simulation.DefaultCount, "number of payments to attempt")
	term := flag.String("term", cfg.Simulation.TermCode, "term code to pay against")
	flag.Parse()

	logger := logging.Init("campus-simulate", cfg.LogLevel, cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.NewPostgresDB(ctx, cfg.DatabaseURL, repository.PoolConfig{
		MaxOpenConns:     cfg.DBMaxOpenConns,
		MaxIdleConns:     cfg.DBMaxIdleConns,
		ConnMaxLifetimeS: cfg.DBConnMaxLifetimeS,
		ConnMaxIdleTimeS: cfg.DBConnMaxIdleTimeS,
		ConnectAttempts:  cfg.DBConnectAttempts,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	coordinator := txn.NewCoordinator(db, txn.Repositories{
		Terms:      repository.NewTermRepository(db),
		Charges:    repository.NewChargeRepository(db),
		Wallets:    repository.NewWalletRepository(db),
		Receipts:   repository.NewReceiptRepository(db),
		Enrolments: repository.NewEnrolRepository(db),
		Audits:     repository.NewMarkAuditRepository(db),
	}, txn.WithLockTimeout(cfg.LockTimeout))

	sim := cfg.Simulation
	generator := simulation.NewGenerator(coordinator, simulation.Config{
		TermCode:     *term,
		Population:   sim.Population,
		MinAmount:    sim.MinAmount,
		AmountSpread: sim.AmountSpread,
		MaxCount:     sim.MaxCount,
		RatePerSec:   sim.RatePerSec,
	}, logger)

	res, err := generator.RunBatch(ctx, *n)
	if err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("committed %d of %d payments\n", res.Committed, res.Attempted())
}
