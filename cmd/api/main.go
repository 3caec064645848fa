package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "fuelprice/api/swagger" // swagger docs
	"fuelprice/internal/app"
	"fuelprice/internal/config"
	"fuelprice/internal/database"
	"fuelprice/internal/logger"

	"go.uber.org/zap"
)

// @title           Fuel Price API
// @version         1.0
// @description     Rack price ingestion, daily operator price emails and admin CRUD.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Must(cfg.Log)
	defer func() { _ = log.Sync() }()

	db, err := app.Open(cfg, log)
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}
	log.Info("connected to PostgreSQL")

	if err := database.Migrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	a := app.New(cfg, log, db)
	defer func() { _ = a.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Serve(ctx); err != nil {
		log.Error("server stopped", zap.Error(err))
	}
}
