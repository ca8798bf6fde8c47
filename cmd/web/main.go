package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"urbantide.com/store/internal/app"
	"urbantide.com/store/internal/config"
	"urbantide.com/store/internal/database"
	apphttp "urbantide.com/store/internal/http"
	"urbantide.com/store/internal/http/flash"
	"urbantide.com/store/internal/http/middleware"
	"urbantide.com/store/internal/modules/admin"
	"urbantide.com/store/internal/modules/auth"
	"urbantide.com/store/internal/modules/catalog"
	"urbantide.com/store/internal/modules/checkout"
	"urbantide.com/store/internal/modules/coupon"
	"urbantide.com/store/internal/modules/promo"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; production uses real env vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.Any("err", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	infra, err := app.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer infra.Close()

	if cfg.IsDev() {
		if err := database.Migrate(ctx, infra.DB, app.Models()...); err != nil {
			return err
		}
	}

	broker := auth.NewBroker()
	defer broker.Close()
	provider := auth.NewProvider(infra.DB, broker, auth.Options{
		AdminEmail: cfg.AdminEmail,
		SessionTTL: cfg.Session.TTL,
	}, logger)

	ev := coupon.New(cfg.CouponCode, cfg.CouponPercent)

	deps := apphttp.Deps{
		Logger:    logger,
		DistDir:   cfg.DistDir,
		Session:   middleware.SessionCfg{CookieName: cfg.Session.CookieName, Secure: cfg.Session.Secure},
		Flash:     flash.NewCodec(cfg.Session.FlashSecret, cfg.Session.FlashCookie, cfg.Session.Secure),
		Auth:      provider,
		Catalog:   catalog.NewService(infra.Products, logger),
		Assembler: checkout.NewAssembler(cfg.WhatsAppNumber, ev),
		Coupon:    ev,
		Admin:     admin.NewService(infra.Products, infra.Storage.Storage, admin.Options{Bucket: cfg.Storage.Bucket}, logger),
		Promo:     promo.NewRotator(promo.DefaultSlides, cfg.PromoInterval),
	}
	if infra.Storage.Driver == "local" {
		deps.UploadsPrefix = cfg.Storage.LocalURLPrefix
		deps.UploadsDir = cfg.Storage.LocalDir
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           apphttp.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr), slog.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error { return auth.LogEvents(gctx, broker, logger) })

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
