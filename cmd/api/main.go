package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geocoder89/vallas-api/internal/cache"
	"github.com/geocoder89/vallas-api/internal/config"
	"github.com/geocoder89/vallas-api/internal/db"
	"github.com/geocoder89/vallas-api/internal/docstore"
	httpx "github.com/geocoder89/vallas-api/internal/http"
	"github.com/geocoder89/vallas-api/internal/observability"
	"github.com/geocoder89/vallas-api/internal/repo"
	"github.com/geocoder89/vallas-api/internal/service"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	// Load the config set up
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	if cfg.OTELEndpoint != "" {
		shutdownTracer, err := observability.InitTracer(context.Background(), cfg.ServiceName, cfg.Env, cfg.OTELEndpoint)
		if err != nil {
			log.Error("tracer init failed", "err", err)
		} else {
			defer func() {
				ctx, cancel := config.WithTimeout(5 * time.Second)
				defer cancel()
				_ = shutdownTracer(ctx)
			}()
		}
	}

	raw, err := openStore(cfg, log)
	if err != nil {
		log.Error("store init failed", "driver", cfg.StoreDriver, "err", err)
		os.Exit(1)
	}
	defer raw.Close()

	prom := observability.NewProm(prometheus.DefaultRegisterer)

	var store docstore.Store = docstore.WithMetrics(raw, prom)
	store, closeCache := withCache(store, cfg, prom, log)
	defer closeCache()

	seedCtx, cancelSeed := config.WithTimeout(10 * time.Second)
	err = db.EnsureAdminUser(seedCtx, service.NewUsuariosService(repo.NewUsuarios(store), log), cfg, log)
	cancelSeed()
	if err != nil {
		log.Error("admin bootstrap failed", "err", err)
	}

	// set up routers with the log
	router := httpx.NewRouter(log, store, cfg, prom)

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.StoreDriver, "cache", cfg.CacheDriver)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)

		defer cancel()

		err := srv.Shutdown(ctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)

			return
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}

func openStore(cfg config.Config, log *slog.Logger) (docstore.Store, error) {
	switch cfg.StoreDriver {
	case "postgres":
		pool, err := db.NewPool(cfg.DBURL)
		if err != nil {
			return nil, err
		}

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		if err := db.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return docstore.NewPostgres(pool), nil

	case "firestore":
		// the client keeps using this context for its connections
		fs, err := docstore.NewFirestore(context.Background(), cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
		if err != nil {
			return nil, err
		}
		return fs, nil

	default:
		log.Warn("using in-memory store, data is lost on restart")
		return docstore.NewMemory(), nil
	}
}

func withCache(store docstore.Store, cfg config.Config, prom *observability.Prom, log *slog.Logger) (docstore.Store, func()) {
	switch cfg.CacheDriver {
	case "memory":
		return docstore.Cached(store, cache.NewMemory(cfg.CacheTTL), prom, log), func() {}

	case "redis":
		rdb := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL, log)

		ctx, cancel := config.WithTimeout(2 * time.Second)
		defer cancel()

		if err := rdb.Ping(ctx); err != nil {
			log.Warn("redis unavailable, list cache disabled", "addr", cfg.RedisAddr, "err", err)
			_ = rdb.Close()
			return store, func() {}
		}
		return docstore.Cached(store, rdb, prom, log), func() { _ = rdb.Close() }

	default:
		return store, func() {}
	}
}
