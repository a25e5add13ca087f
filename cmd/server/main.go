// Package main boots the cart and catalog HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/cc-monolith/internal/cart"
	"github.com/nikolayk812/cc-monolith/internal/catalog"
	"github.com/nikolayk812/cc-monolith/internal/config"
	"github.com/nikolayk812/cc-monolith/internal/httpapi"
	"github.com/nikolayk812/cc-monolith/internal/logger"
	"github.com/nikolayk812/cc-monolith/internal/port"
	"github.com/nikolayk812/cc-monolith/internal/repository"
	"github.com/nikolayk812/cc-monolith/internal/repository/memory"
	cartredis "github.com/nikolayk812/cc-monolith/internal/repository/redis"
)

type stores struct {
	products port.ProductStore
	carts    port.CartStore
	closers  []func()
}

func (s stores) close() {
	for _, c := range s.closers {
		c()
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("service_failed", "error", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, log *logger.Logger) error {
	log.Info("service_starting", "product_store", cfg.ProductStore, "cart_store", cfg.CartStore)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := openStores(ctx, cfg)
	if err != nil {
		return fmt.Errorf("openStores: %w", err)
	}
	defer st.close()

	catalogSvc := catalog.NewService(st.products, log)
	cartSvc := cart.NewService(st.carts, catalogSvc, cfg.Currency, log)

	if cfg.LogMode == "production" || cfg.LogMode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpapi.NewRouter(httpapi.NewApp(catalogSvc, cartSvc, log))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("http_listen", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sigc:
		log.Info("shutdown_signal", "signal", s.String())
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("srv.ListenAndServe: %w", err)
		}
	}

	ctxSrv, cancelSrv := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelSrv()
	if err := srv.Shutdown(ctxSrv); err != nil {
		log.Error("http_shutdown_error", "error", err)
	}

	log.Info("service_stopped")
	return nil
}

func openStores(ctx context.Context, cfg config.Config) (stores, error) {
	var (
		st   stores
		mem  *memory.Store
		pool *pgxpool.Pool
	)

	inMemory := func() *memory.Store {
		if mem == nil {
			mem = memory.New()
		}
		return mem
	}

	if cfg.ProductStore == config.StorePostgres || cfg.CartStore == config.StorePostgres {
		var err error
		pool, err = pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return stores{}, fmt.Errorf("pgxpool.New: %w", err)
		}
		st.closers = append(st.closers, pool.Close)

		if err := pool.Ping(ctx); err != nil {
			st.close()
			return stores{}, fmt.Errorf("pool.Ping: %w", err)
		}
	}

	switch cfg.ProductStore {
	case config.StorePostgres:
		st.products = repository.NewProduct(pool)
	default:
		st.products = inMemory()
	}

	switch cfg.CartStore {
	case config.StorePostgres:
		st.carts = repository.NewCart(pool)
	case config.StoreRedis:
		rdb, err := cartredis.Dial(ctx, cfg.RedisAddr)
		if err != nil {
			st.close()
			return stores{}, fmt.Errorf("cartredis.Dial: %w", err)
		}
		st.closers = append(st.closers, func() { _ = rdb.Close() })
		st.carts = cartredis.NewCart(rdb)
	default:
		st.carts = inMemory()
	}

	return st, nil
}
