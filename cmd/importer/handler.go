package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"urbantide.com/store/internal/modules/admin"
	"urbantide.com/store/internal/modules/products"
)

// Event is either an S3 notification or a direct invocation carrying the
// CSV inline.
type Event struct {
	Records []events.S3EventRecord `json:"Records,omitempty"`
	CSVData string                 `json:"csv_data,omitempty"`
}

type objectOpener interface {
	Open(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

type handler struct {
	store   products.Store
	objects objectOpener
	log     *slog.Logger
}

var errEmptyEvent = errors.New("no S3 record or csv_data in payload")

// Handle imports every CSV the event points at. The first failing object
// stops the batch.
func (h *handler) Handle(ctx context.Context, ev Event) (admin.ImportReport, error) {
	if len(ev.Records) == 0 {
		if strings.TrimSpace(ev.CSVData) == "" {
			return admin.ImportReport{}, errEmptyEvent
		}
		return admin.Import(ctx, h.store, strings.NewReader(ev.CSVData), h.log)
	}

	var total admin.ImportReport
	for _, rec := range ev.Records {
		rep, err := h.importObject(ctx, rec.S3.Bucket.Name, rec.S3.Object.Key)
		total.Imported += rep.Imported
		total.Skipped += rep.Skipped
		total.Errors = append(total.Errors, rep.Errors...)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (h *handler) importObject(ctx context.Context, bucket, rawKey string) (admin.ImportReport, error) {
	if h.objects == nil {
		return admin.ImportReport{}, errors.New("S3 client not configured")
	}
	// Keys in S3 notifications arrive form-encoded.
	key, err := url.QueryUnescape(rawKey)
	if err != nil {
		return admin.ImportReport{}, fmt.Errorf("decode key %q: %w", rawKey, err)
	}

	h.log.Info("importing csv object", slog.String("bucket", bucket), slog.String("key", key))
	body, err := h.objects.Open(ctx, bucket, key)
	if err != nil {
		return admin.ImportReport{}, err
	}
	defer body.Close()

	return admin.Import(ctx, h.store, body, h.log)
}
