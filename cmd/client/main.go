package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"storefront-client/internal/checkout"
	"storefront-client/internal/config"
	"storefront-client/internal/gateway"
	"storefront-client/internal/httpserver"
	"storefront-client/internal/orders"
	"storefront-client/internal/storage"
	cartstore "storefront-client/internal/store/cart"
	sessionstore "storefront-client/internal/store/session"
)

func main() {
	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[client] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()

	store, cleanup, err := openStorage(ctx, cfg)
	if err != nil {
		logger.Fatalf("open %s storage: %v", cfg.StorageBackend, err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	cart, err := cartstore.New(ctx, store, logger)
	if err != nil {
		logger.Fatalf("init cart store: %v", err)
	}
	session, err := sessionstore.New(ctx, store, logger)
	if err != nil {
		logger.Fatalf("init session store: %v", err)
	}

	gw := gateway.New(cfg.RemoteBaseURL, cfg.RequestTimeout, logger)
	orchestrator := checkout.New(session, cart, gw, logger)
	orderView := orders.New(gw, logger)

	srv := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Cart:     cart,
		Session:  session,
		Checkout: orchestrator,
		Orders:   orderView,
	}, cfg.AllowedOrigins)

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http facade on %s (storage: %s, remote: %s)",
			cfg.HTTPAddr, cfg.StorageBackend, cfg.RemoteBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

func openStorage(ctx context.Context, cfg config.Config) (storage.Store, func(), error) {
	switch cfg.StorageBackend {
	case "file":
		st, err := storage.NewFile(cfg.StateDir)
		if err != nil {
			return nil, nil, err
		}
		return st, nil, nil
	case "postgres":
		st, err := storage.ConnectPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return st, st.Close, nil
	case "redis":
		st, err := storage.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPrefix)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { st.Close() }, nil
	default:
		return nil, nil, errors.New("unknown storage backend " + cfg.StorageBackend)
	}
}
