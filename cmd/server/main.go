package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CaboRojo/stockfolio/internal/auth"
	"github.com/CaboRojo/stockfolio/internal/common/clients/alphavantage"
	"github.com/CaboRojo/stockfolio/internal/common/config"
	"github.com/CaboRojo/stockfolio/internal/common/repositories/postgres"
	"github.com/CaboRojo/stockfolio/internal/ledger"
	"github.com/CaboRojo/stockfolio/internal/server"
	"github.com/CaboRojo/stockfolio/pkg/dictionary"
	"github.com/CaboRojo/stockfolio/pkg/goosemigrate"
	"github.com/CaboRojo/stockfolio/pkg/log"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "prod.yaml", "service config path")
	flag.Parse()

	_ = godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())

	cfg := config.GetConfig(configPath)

	// Monetary fields serialize as JSON numbers, matching the API contract.
	decimal.MarshalJSONWithoutQuotes = true

	log.Info("service starting...")

	log.Info("init companies dictionary...")
	companies, err := dictionary.New(cfg.CompaniesPath)
	if err != nil {
		log.Fatal("dictionary init failed", zap.Error(err))
	}

	log.Info("init postgres...")
	pool, err := pgxpool.New(ctx, cfg.GetPostgresURL())
	if err != nil {
		log.Fatal("postgres init failed", zap.Error(err))
	}

	if err := goosemigrate.NewMigrator(cfg.GetPostgresURL(), "migrations", cfg.Postgres.Schema).Up(); err != nil {
		log.Fatal("migrations up failed", zap.Error(err))
	}

	usersRepository := postgres.NewUsersRepository(pool)
	portfolioRepository := postgres.NewPortfolioRepository(pool)

	log.Info("init alpha vantage...")
	prices := alphavantage.NewClient(&cfg.AlphaVantage)

	tokens := auth.NewTokenService(&cfg.Auth)
	authService := auth.NewService(tokens, usersRepository)

	ledgerService := ledger.NewService(&ledger.Dependencies{
		Users:      usersRepository,
		Portfolios: portfolioRepository,
		Prices:     prices,
		Companies:  companies,
	})

	srv := server.New(&cfg.HTTP, authService, tokens, ledgerService)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	log.Info("service starting complete")

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-done
	log.Info("service shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", zap.Error(err))
	}

	pool.Close()

	if err := log.Sync(); err != nil {
		log.Error("log sync failed", zap.Error(err))
	}

	cancel()

	log.Info("service shut down complete")
}
