// Package main initializes and starts the storefront REST gateway,
// setting up configuration, logging, the Storefront and Admin API
// clients, repositories, services, handlers, and the router.
package main

import (
	"cmp"
	"fmt"

	nethttp "net/http"

	"github.com/regenefi/storefront/internal/config"
	"github.com/regenefi/storefront/internal/logger"
	"github.com/regenefi/storefront/internal/repository"
	"github.com/regenefi/storefront/internal/server/handler/http"
	"github.com/regenefi/storefront/internal/service"
	"github.com/regenefi/storefront/internal/shopify"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize the Storefront API client.
	storefront := shopify.NewClient(options.GraphQLURL(), options.StorefrontToken, zapLogger)

	// Initialize repositories over the platform clients.
	cartRepo := repository.NewShopifyCartRepository(storefront)
	customerRepo := repository.NewShopifyCustomerRepository(storefront)
	catalogRepo := repository.NewShopifyCatalogRepository(storefront)
	blogRepo := repository.NewShopifyBlogRepository(storefront)

	// Initialize business-logic services.
	catalogService := service.NewCatalogService(catalogRepo)
	blogService := service.NewBlogService(blogRepo, zapLogger)

	handlers := http.Handlers{
		Cart:    &http.CartHandler{Cart: cartRepo},
		Auth:    &http.AuthHandler{Customers: customerRepo},
		Catalog: &http.CatalogHandler{Catalog: catalogService},
		Blog:    &http.BlogHandler{Blog: blogService},
	}

	// The wholesale lead flow needs the Admin API; without a token the
	// route is not mounted at all.
	if options.AdminToken != "" {
		admin := shopify.NewAdminClient(options.AdminURL(), options.AdminToken, zapLogger)
		wholesaleService := service.NewWholesaleService(admin, zapLogger)
		handlers.Wholesale = &http.WholesaleHandler{Wholesale: wholesaleService}
	} else {
		zapLogger.Warn("admin token not configured, wholesale capture disabled")
	}

	// Build the router with middleware and routes.
	router := http.NewRouter(handlers, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
