// Command importer is an AWS Lambda that upserts products from CSV files
// dropped into S3, or from a csv_data payload on direct invocation.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"

	"urbantide.com/store/internal/config"
	"urbantide.com/store/internal/database"
	"urbantide.com/store/internal/modules/products"
	"urbantide.com/store/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.Any("err", err))
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx := context.Background()
	db, err := database.Open(ctx, cfg.DB, logger)
	if err != nil {
		logger.Error("database unavailable", slog.Any("err", err))
		os.Exit(1)
	}

	h := &handler{store: products.NewRepo(db), log: logger}
	if cfg.Storage.S3Region != "" {
		client, err := storage.NewS3Client(ctx, cfg.Storage.S3Region)
		if err != nil {
			logger.Error("s3 client", slog.Any("err", err))
			os.Exit(1)
		}
		h.objects = &storage.S3{Client: client, Region: cfg.Storage.S3Region}
	}

	lambda.Start(h.Handle)
}
