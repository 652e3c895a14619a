package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saasrevops/revenue-gateway/internal"
	"github.com/saasrevops/revenue-gateway/internal/adminaccess"
	"github.com/saasrevops/revenue-gateway/internal/auth"
	"github.com/saasrevops/revenue-gateway/internal/cache"
	"github.com/saasrevops/revenue-gateway/internal/catalog"
	"github.com/saasrevops/revenue-gateway/internal/ledger"
	"github.com/saasrevops/revenue-gateway/internal/payments"
	"github.com/saasrevops/revenue-gateway/internal/revenue"
	"github.com/saasrevops/revenue-gateway/internal/transport/rest"
	"github.com/saasrevops/revenue-gateway/internal/transport/swagger"
	"github.com/saasrevops/revenue-gateway/internal/upstream"
	"github.com/saasrevops/revenue-gateway/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

const openAPISpecPath = "./api/openapi.yml"

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	Upstream *upstream.Client
	Store    *cache.Store
	Router   *chi.Mux
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	appLogger := logger.LoggerWrapper()

	if err := swagger.ValidateSpec(openAPISpecPath); err != nil {
		return nil, fmt.Errorf("failed to validate openapi spec: %w", err)
	}

	apiClient := upstream.NewClient(upstream.Config{
		BaseURL: config.Upstream.BaseURL,
		Timeout: config.Upstream.Timeout,
	}, appLogger)

	store := cache.NewStore(config.Cache.MaxEntries, config.Cache.TTL)
	bus := cache.NewBus(appLogger)

	guard := auth.NewGuard(appLogger)

	adminAccessService := adminaccess.NewService(adminaccess.NewClient(apiClient), store, bus, appLogger)
	catalogService := catalog.NewService(catalog.NewClient(apiClient), store, bus, appLogger)
	revenueService := revenue.NewService(revenue.NewClient(apiClient), store, bus, appLogger)
	paymentsService := payments.NewService(payments.NewClient(apiClient), store, bus, appLogger)
	ledgerService := ledger.NewService(ledger.NewClient(apiClient), store, bus, appLogger)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, rest.RouterDeps{
		Config:             config,
		Upstream:           apiClient,
		Guard:              guard,
		AdminAccessHandler: adminaccess.NewHandler(adminAccessService),
		CatalogHandler:     catalog.NewHandler(catalogService),
		RevenueHandler:     revenue.NewHandler(revenueService),
		PaymentsHandler:    payments.NewHandler(paymentsService),
		LedgerHandler:      ledger.NewHandler(ledgerService),
		Logger:             appLogger,
	})

	return &Dependencies{
		Config:   config,
		Upstream: apiClient,
		Store:    store,
		Router:   router,
		Logger:   appLogger,
	}, nil
}
