package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/fkaradag/digital-wallet/internal/clock"
	"github.com/fkaradag/digital-wallet/internal/config"
	"github.com/fkaradag/digital-wallet/internal/handler"
	"github.com/fkaradag/digital-wallet/internal/logging"
	"github.com/fkaradag/digital-wallet/internal/middleware"
	"github.com/fkaradag/digital-wallet/internal/repository"
	"github.com/fkaradag/digital-wallet/internal/seed"
	"github.com/fkaradag/digital-wallet/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logging.Init("wallet-api", cfg.LogLevel, cfg.AppEnv)

	pool, err := connectDB(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.SeedDemoData {
		if err := seed.Run(context.Background(), pool, log); err != nil {
			slog.Error("failed to seed demo data", "error", err)
			os.Exit(1)
		}
	}

	db := repository.NewDB(pool)
	wallets := repository.NewWalletRepository(pool)
	transactions := repository.NewTransactionRepository(pool)
	customers := repository.NewCustomerRepository(pool)

	now := clock.System()
	walletSvc := service.NewWalletService(wallets, customers, now)
	ledgerSvc := service.NewLedgerService(wallets, transactions, walletSvc, db, now)
	approvalSvc := service.NewApprovalService(transactions, wallets, db, now)

	jwtExpiry := time.Duration(cfg.JWTExpiryM) * time.Minute
	authHandler := handler.NewAuthHandler(customers, cfg.JWTSecret, jwtExpiry)
	walletHandler := handler.NewWalletHandler(walletSvc, ledgerSvc)
	txHandler := handler.NewTransactionHandler(ledgerSvc, approvalSvc)
	healthHandler := handler.NewHealthHandler(pool)

	authed := middleware.Auth(cfg.JWTSecret)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler.Check)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.Handle("POST /api/v1/wallets", authed(http.HandlerFunc(walletHandler.Create)))
	mux.Handle("GET /api/v1/wallets", authed(http.HandlerFunc(walletHandler.List)))
	mux.Handle("GET /api/v1/wallets/{id}/transactions", authed(http.HandlerFunc(walletHandler.ListTransactions)))
	mux.Handle("POST /api/v1/transactions/deposit", authed(http.HandlerFunc(txHandler.Deposit)))
	mux.Handle("POST /api/v1/transactions/withdraw", authed(http.HandlerFunc(txHandler.Withdraw)))
	mux.Handle("POST /api/v1/transactions/{id}/decision", authed(http.HandlerFunc(txHandler.Decide)))

	root := middleware.Tracing(middleware.Logging(middleware.Recovery(mux)))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           root,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func connectDB(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connectDB: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeS) * time.Second)
	db.SetConnMaxIdleTime(time.Duration(cfg.DBConnMaxIdleTimeS) * time.Second)

	for i := range 30 {
		if err = db.Ping(); err == nil {
			return db, nil
		}
		slog.Info("waiting for database", "attempt", i+1)
		time.Sleep(time.Second)
	}

	db.Close()
	return nil, fmt.Errorf("connectDB: gave up after 30 attempts: %w", err)
}
