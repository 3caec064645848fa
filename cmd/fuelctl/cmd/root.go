// Package cmd provides the fuelctl commands used from cron and by operators
// of the service.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	_ "fuelprice/api/swagger" // swagger docs for serve
	"fuelprice/internal/app"
	"fuelprice/internal/config"
	"fuelprice/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	envFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "fuelctl",
	Short: "Run and administer the fuel price service",
	Long: `fuelctl runs the fuel price jobs outside the HTTP API.

Examples:
  fuelctl migrate
  fuelctl fetch-prices
  fuelctl send-prices --dry-run
  fuelctl export --format pdf --out prices.pdf
  fuelctl create-admin --email admin@example.com --password 'changeme123'`,
	SilenceUsage: true,
}

// Execute runs the CLI until it finishes or the process is interrupted
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", config.DefaultEnvFile, "dotenv file to load before reading the environment")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(fetchPricesCmd)
	rootCmd.AddCommand(sendPricesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(createAdminCmd)
}

// bootstrap loads config, the logger and the database, and builds the app.
func bootstrap() (*app.App, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	log := logger.Must(cfg.Log)

	db, err := app.Open(cfg, log)
	if err != nil {
		return nil, err
	}
	return app.New(cfg, log, db), nil
}

// withApp runs fn against a bootstrapped app and releases it afterwards.
func withApp(ctx context.Context, fn func(ctx context.Context, a *app.App) error) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() {
		_ = a.Log.Sync()
		if cerr := a.Close(); cerr != nil {
			a.Log.Warn("closing database", zap.Error(cerr))
		}
	}()
	return fn(ctx, a)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
