package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/josh-kwaku/campus-ledger/internal/config"
	"github.com/josh-kwaku/campus-ledger/internal/handler"
	"github.com/josh-kwaku/campus-ledger/internal/logging"
	"github.com/josh-kwaku/campus-ledger/internal/metrics"
	"github.com/josh-kwaku/campus-ledger/internal/middleware"
	"github.com/josh-kwaku/campus-ledger/internal/repository"
	"github.com/josh-kwaku/campus-ledger/internal/service"
	"github.com/josh-kwaku/campus-ledger/internal/service/simulation"
	"github.com/josh-kwaku/campus-ledger/internal/service/txn"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.Init("campus-api", cfg.LogLevel, cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, cfg.DatabaseURL, repository.PoolConfig{
		MaxOpenConns:     cfg.DBMaxOpenConns,
		MaxIdleConns:     cfg.DBMaxIdleConns,
		ConnMaxLifetimeS: cfg.DBConnMaxLifetimeS,
		ConnMaxIdleTimeS: cfg.DBConnMaxIdleTimeS,
		ConnectAttempts:  cfg.DBConnectAttempts,
	}, cfg.MigrateOnStart)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var recorder *metrics.Recorder
	if cfg.MetricsEnabled {
		recorder = metrics.NewRecorder()
		recorder.RegisterDB(db, "campus")
	}

	terms := repository.NewTermRepository(db)
	charges := repository.NewChargeRepository(db)
	wallets := repository.NewWalletRepository(db)
	receipts := repository.NewReceiptRepository(db)
	enrolments := repository.NewEnrolRepository(db)
	audits := repository.NewMarkAuditRepository(db)

	coordinator := txn.NewCoordinator(db, txn.Repositories{
		Terms:      terms,
		Charges:    charges,
		Wallets:    wallets,
		Receipts:   receipts,
		Enrolments: enrolments,
		Audits:     audits,
	}, txn.WithLockTimeout(cfg.LockTimeout), txn.WithMetrics(recorder))

	sim := cfg.Simulation
	generator := simulation.NewGenerator(coordinator, simulation.Config{
		TermCode:     sim.TermCode,
		Population:   sim.Population,
		MinAmount:    sim.MinAmount,
		AmountSpread: sim.AmountSpread,
		MaxCount:     sim.MaxCount,
		RatePerSec:   sim.RatePerSec,
	}, logger, simulation.WithMetrics(recorder))

	if sim.Interval > 0 {
		scheduler := simulation.NewScheduler(generator, sim.DefaultCount, sim.Interval, logger)
		go scheduler.Start(ctx)
	}

	lookups := service.NewLookupService(wallets, receipts, enrolments, audits)

	healthH := handler.NewHealthHandler(db, version)
	tuitionH := handler.NewTuitionHandler(coordinator)
	gradeH := handler.NewGradeHandler(coordinator)
	simulationH := handler.NewSimulationHandler(generator, sim.DefaultCount)
	lookupH := handler.NewLookupHandler(lookups)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthH.Liveness)
	mux.HandleFunc("GET /health/ready", healthH.Readiness)
	if recorder != nil {
		mux.Handle("GET /metrics", recorder.Handler())
	}

	mux.HandleFunc("POST /api/txn/pay-tuition", tuitionH.Pay)
	mux.HandleFunc("POST /api/txn/post-grade", gradeH.Post)
	mux.HandleFunc("POST /api/simulate", simulationH.Run)

	mux.HandleFunc("GET /api/wallet/{student_id}", lookupH.Wallet)
	mux.HandleFunc("GET /api/grades/{student_id}", lookupH.Grades)
	mux.HandleFunc("GET /api/grades/{student_id}/{offering_id}/audit", lookupH.AuditTrail)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           middleware.Chain(mux, middleware.RequestID, middleware.Logging, middleware.Recovery),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
