package cmd

import (
	"context"
	"fmt"
	"os"

	"fuelprice/internal/app"
	"fuelprice/internal/database"
	"fuelprice/internal/export"

	"github.com/spf13/cobra"
)

var (
	dryRun       bool
	exportFormat string
	exportOut    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			if err := database.Migrate(a.DB); err != nil {
				return err
			}
			return a.Serve(ctx)
		})
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			if err := database.Migrate(a.DB); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		})
	},
}

var fetchPricesCmd = &cobra.Command{
	Use:   "fetch-prices",
	Short: "Download today's rack price feed and store it",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			res, err := a.Services.Ingest.FetchAndStore(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		})
	},
}

var sendPricesCmd = &cobra.Command{
	Use:   "send-prices",
	Short: "Calculate today's prices and email every operator",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			if dryRun {
				preview, err := a.Services.Daily.Preview(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), preview)
			}
			res, err := a.Services.Daily.CalculateAndSend(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write today's price sheet as XLSX or PDF",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
			file, err := a.Services.Daily.PriceSheet(ctx, exportFormat)
			if err != nil {
				return err
			}
			out := exportOut
			if out == "" {
				out = file.Name
			}
			if err := os.WriteFile(out, file.Data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, len(file.Data))
			return nil
		})
	},
}

func init() {
	sendPricesCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the calculated prices without sending")
	exportCmd.Flags().StringVar(&exportFormat, "format", export.FormatXLSX, "xlsx or pdf")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (default fuel-prices-<date>.<format>)")
}
