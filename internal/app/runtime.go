package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/arcadia-pos/arcadia-pos/internal/auth"
	"github.com/arcadia-pos/arcadia-pos/internal/catalog"
	"github.com/arcadia-pos/arcadia-pos/internal/platform/cache"
	"github.com/arcadia-pos/arcadia-pos/internal/platform/db"
	"github.com/arcadia-pos/arcadia-pos/internal/printdoc"
	"github.com/arcadia-pos/arcadia-pos/internal/receiving"
	"github.com/arcadia-pos/arcadia-pos/internal/sales/invoices"
	"github.com/arcadia-pos/arcadia-pos/internal/sales/quotations"
	"github.com/arcadia-pos/arcadia-pos/internal/statestore"
	"github.com/arcadia-pos/arcadia-pos/jobs"
	"github.com/arcadia-pos/arcadia-pos/report"
)

// Run boots the API server and blocks until shutdown.
func Run() error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	logger := NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.New(ctx, cfg.PostgresDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	authService, err := auth.NewService(cfg.AdminEmail, cfg.AdminPassword, redisClient, cfg.SessionTTL, logger)
	if err != nil {
		return err
	}

	catalogCache := catalog.NewCache(redisClient)
	catalogService := catalog.NewService(catalog.NewRepository(pool), catalogCache, logger)
	quotationService := quotations.NewService(
		quotations.NewRepository(pool), catalogService, logger)
	invoiceService := invoices.NewService(
		invoices.NewRepository(pool), catalogService, quotationService, logger)
	receivingService := receiving.NewService(
		receiving.NewRepository(pool), catalogCache, logger)

	issuer := printdoc.Issuer{
		Name:    cfg.CompanyName,
		Address: cfg.CompanyAddress,
		Phone:   cfg.CompanyPhone,
	}
	printService := printdoc.NewService(
		quotationService, invoiceService, issuer,
		report.NewGotenbergClient(cfg.GotenbergURL), redisClient, logger)

	stateService := statestore.New(redisClient, logger)
	registerSnapshots(stateService, catalogService, quotationService, invoiceService, receivingService)

	// Warm the snapshot before accepting traffic; a cold store is not
	// fatal, clients just fall back to the per-list endpoints.
	if err := stateService.RefreshAll(ctx); err != nil {
		logger.Warn("snapshot warm failed", "error", err)
	}

	enqueuer := jobs.NewEnqueuer(cfg.RedisAddr, logger)
	defer enqueuer.Close()

	router := NewRouter(cfg, logger, Services{
		Auth:       authService,
		Catalog:    catalogService,
		Quotations: quotationService,
		Invoices:   invoiceService,
		Receiving:  receivingService,
		Printer:    printService,
		State:      stateService,
		Enqueuer:   enqueuer,
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.Addr, "env", cfg.Env)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("app: serve: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("app: shutdown: %w", err)
		}
	}

	return nil
}

func registerSnapshots(state *statestore.Service, cat *catalog.Service, quotes *quotations.Service, invs *invoices.Service, recv *receiving.Service) {
	state.Register(statestore.Products, func(ctx context.Context) (any, error) {
		return cat.List(ctx)
	})
	state.Register(statestore.Quotations, func(ctx context.Context) (any, error) {
		return quotes.List(ctx)
	})
	state.Register(statestore.Invoices, func(ctx context.Context) (any, error) {
		return invs.List(ctx)
	})
	state.Register(statestore.Suppliers, func(ctx context.Context) (any, error) {
		return recv.List(ctx)
	})
}
