// The worker consumes background tasks: snapshot refreshes and print
// artifact pre-warming.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/arcadia-pos/arcadia-pos/internal/app"
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

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg)

	ctx := context.Background()

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
	stateService.Register(statestore.Products, func(ctx context.Context) (any, error) {
		return catalogService.List(ctx)
	})
	stateService.Register(statestore.Quotations, func(ctx context.Context) (any, error) {
		return quotationService.List(ctx)
	})
	stateService.Register(statestore.Invoices, func(ctx context.Context) (any, error) {
		return invoiceService.List(ctx)
	})
	stateService.Register(statestore.Suppliers, func(ctx context.Context) (any, error) {
		return receivingService.List(ctx)
	})

	handlers := &jobs.Handlers{
		State:   stateService,
		Printer: printService,
		Logger:  logger,
	}

	logger.Info("worker starting", "redis", cfg.RedisAddr)
	server := jobs.NewServer(cfg.RedisAddr, logger)
	return server.Run(handlers.Mux())
}
