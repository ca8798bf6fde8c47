package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"urbantide.com/store/internal/app"
	"urbantide.com/store/internal/config"
	"urbantide.com/store/internal/database"
	"urbantide.com/store/internal/modules/admin"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the tables",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert the built-in product list",
	Long: `Upsert the built-in product list by id.

Existing rows with the same id are overwritten; other rows are left alone.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

var setupBucketCmd = &cobra.Command{
	Use:   "setup-bucket",
	Short: "Create the product image bucket",
	Args:  cobra.NoArgs,
	RunE:  runSetupBucket,
}

var importCSVCmd = &cobra.Command{
	Use:   "import-csv <file>",
	Short: "Upsert products from a CSV file",
	Long: `Upsert products from a CSV file.

Required columns: name, brand, ref, price, category. Rows are upserted
by id; invalid rows are skipped and reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runImportCSV,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	return withInfra(cmd, func(ctx context.Context, _ config.Config, in *app.Infra) error {
		if err := database.Migrate(ctx, in.DB, app.Models()...); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
		return nil
	})
}

func runSeed(cmd *cobra.Command, args []string) error {
	return withInfra(cmd, func(ctx context.Context, cfg config.Config, in *app.Infra) error {
		svc := admin.NewService(in.Products, in.Storage.Storage, admin.Options{Bucket: cfg.Storage.Bucket}, logger)
		n, fl, err := svc.Sync(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%d)\n", fl.Message, n)
		return nil
	})
}

func runSetupBucket(cmd *cobra.Command, args []string) error {
	return withInfra(cmd, func(ctx context.Context, cfg config.Config, in *app.Infra) error {
		svc := admin.NewService(in.Products, in.Storage.Storage, admin.Options{Bucket: cfg.Storage.Bucket}, logger)
		fl, err := svc.SetupStorage(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), fl.Message)
		return nil
	})
}

func runImportCSV(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	return withInfra(cmd, func(ctx context.Context, _ config.Config, in *app.Infra) error {
		rep, err := admin.Import(ctx, in.Products, f, logger)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, re := range rep.Errors {
			fmt.Fprintln(out, re.Error())
		}
		fmt.Fprintf(out, "imported %d, skipped %d\n", rep.Imported, rep.Skipped)
		return nil
	})
}
