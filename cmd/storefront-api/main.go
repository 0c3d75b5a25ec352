// cmd/storefront-api/main.go
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"storefront/internal/api"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/eventstore"
	"storefront/internal/membership"
	"storefront/internal/storage"
	"storefront/internal/telemetry"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "storefront-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadEnv(); err != nil {
		return err
	}
	cfg := config.LoadServer()

	logger, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, "storefront-api", cfg.OTLPEndpoint, logger)
	if err != nil {
		return err
	}
	defer shutdownTracing(context.Background())

	var (
		products catalog.Service
		carts    cart.Store
		users    membership.Repository
	)
	if cfg.DatabaseURL != "" {
		db, err := storage.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := storage.Migrate(ctx, db); err != nil {
			return err
		}

		es := eventstore.NewEventStore(db)
		products = catalog.NewPostgresService(db)
		carts = cart.NewPostgresStore(db, es)
		users = membership.NewPostgresRepository(db, es)
		logger.Info("using postgres storage")
	} else {
		products = catalog.NewMemoryService()
		carts = cart.NewMemoryStore()
		users = membership.NewMemoryRepository()
		logger.Warn("DATABASE_URL not set, using in-memory storage")
	}

	seeded, err := catalog.Seed(ctx, products)
	if err != nil {
		return err
	}
	if seeded > 0 {
		logger.Info("seeded catalog", zap.Int("products", seeded))
	}

	secret := cfg.JWTSecret
	if secret == "" {
		secret, err = randomSecret()
		if err != nil {
			return err
		}
		logger.Warn("JWT_SECRET not set, tokens will not survive a restart")
	}
	tokens, err := membership.NewTokenIssuer(secret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	router := api.NewRouter(api.Deps{
		Catalog:   products,
		Cart:      cart.NewService(carts, products),
		Members:   membership.NewService(users, rate.NewLimiter(rate.Limit(cfg.AuthRateLimit), cfg.AuthRateBurst)),
		Tokens:    tokens,
		Logger:    logger,
		RateLimit: rate.Limit(cfg.RateLimit),
		RateBurst: cfg.RateBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting storefront api", zap.String("addr", srv.Addr), zap.String("prefix", api.Prefix))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
