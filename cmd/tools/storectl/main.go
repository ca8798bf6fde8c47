// Command storectl runs one-off operator tasks against the store: schema
// migration, catalog seeding, bucket setup and CSV imports.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"urbantide.com/store/internal/app"
	"urbantide.com/store/internal/config"
)

var (
	verbose bool
	timeout time.Duration

	logger *slog.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "storectl",
	Short: "Operator tasks for the Urban Tide store",
	Long: `storectl talks to the same database and image storage as the web server.

Available subcommands:
  migrate      - Create or update the tables
  seed         - Upsert the built-in product list
  setup-bucket - Create the product image bucket
  import-csv   - Upsert products from a CSV file`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Operation timeout")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(setupBucketCmd)
	rootCmd.AddCommand(importCSVCmd)
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withInfra loads config, opens the shared infrastructure and runs fn
// under the --timeout deadline.
func withInfra(cmd *cobra.Command, fn func(ctx context.Context, cfg config.Config, in *app.Infra) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	in, err := app.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer in.Close()

	return fn(ctx, cfg, in)
}
