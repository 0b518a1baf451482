package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
	"github.com/rs/cors"

	cfg "github.com/sand/crypto-exchanger-app/backend/config"
	"github.com/sand/crypto-exchanger-app/backend/internal/handlers"
	"github.com/sand/crypto-exchanger-app/backend/internal/rates"
	"github.com/sand/crypto-exchanger-app/backend/internal/usecases"
	repository "github.com/sand/crypto-exchanger-app/backend/internal/usecases/repository"
	"github.com/sand/crypto-exchanger-app/backend/internal/workers"
	"github.com/sand/crypto-exchanger-app/backend/pkg/database"
)

// Server timeout constants.
const (
	readTimeoutSeconds     = 15
	writeTimeoutSeconds    = 15
	idleTimeoutSeconds     = 60
	shutdownTimeoutSeconds = 5
)

func main() {
	time.Local = time.UTC

	// Parse configuration
	config, err := cfg.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	// Setup logging
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if config.App.Debug {
		opts.Level = slog.LevelDebug
	}

	ctx := context.Background()

	logger := slog.New(slog.NewTextHandler(os.Stdout, opts))
	logger.Warn("Starting application with configuration",
		"debug", config.App.Debug,
		"server_port", config.HTTP.Port,
		"database_configured", config.DB.DatabaseURL != "")

	// A missing connection string is a diagnostic, not a crash: the server
	// still comes up and every store operation reports the failure clearly.
	if config.DB.DatabaseURL == "" {
		logger.Error("DATABASE_URL is not set, store operations will fail until it is configured")
	}

	// Connect to Database (the pool connects lazily)
	pg, err := database.New(config,
		database.MaxPoolSize(config.DB.PoolMax),
		database.ConnTimeout(config.DB.ConnectTimeout),
		database.HealthCheckPeriod(config.DB.HealthCheckPeriod),
		database.Isolation(pgx.ReadCommitted),
	)
	if err != nil {
		logger.Error("postgres pool setup failed", slog.String("error", err.Error()))
		return
	}
	defer pg.Close()

	// Определяем путь к миграциям
	migrationsPath := "./migrations"
	if workDir, err := os.Getwd(); err == nil {
		// Пробуем сначала относительный путь
		if _, err := os.Stat(filepath.Join(workDir, "migrations")); !os.IsNotExist(err) {
			migrationsPath = filepath.Join(workDir, "migrations")
		} else if _, err := os.Stat(filepath.Join(workDir, "..", "migrations")); !os.IsNotExist(err) {
			// Если не нашли, пробуем на уровень выше
			migrationsPath = filepath.Join(workDir, "..", "migrations")
		}
	}

	// Run database migrations
	if config.DB.DatabaseURL != "" {
		logger.Info("Running database migrations", "path", migrationsPath)
		if err = database.RunMigrations(logger, config.DB.DatabaseURL, migrationsPath); err != nil {
			// Keep serving: the store surfaces the problem on first use.
			logger.Error("Failed to run database migrations", "error", err)
		}
	} else {
		logger.Warn("Skipping database migrations: no database configured")
	}

	// Create repositories
	ordersRepository := repository.NewOrdersRepository(logger, pg)
	walletsRepository := repository.NewWalletsRepository(logger, pg)

	// Create usecases and components
	orderService := usecases.NewOrderService(ordersRepository)
	walletService := usecases.NewWalletService(walletsRepository)

	// Exchange rates are fixed at startup and shared read-only.
	calculator := rates.NewCalculator(rates.NewTable())

	// Initialize and run workers
	pendingMonitor := workers.NewPendingOrdersMonitor(
		logger,
		orderService,
		time.Duration(config.Workers.PendingReportInterval)*time.Minute,
	)

	go func() {
		logger.Info("Starting pending orders monitor")
		pendingMonitor.Start(ctx)
	}()

	// Create handlers
	websocketManager := handlers.NewWebSocketManager(logger)
	httpHandler := handlers.NewHTTPHandler(logger, walletService, orderService, calculator)
	wsHandler := handlers.NewWebSocketHandler(logger, calculator, websocketManager)

	// Create router
	router := mux.NewRouter()

	// Register WebSocket routes before HTTP routes
	wsHandler.RegisterRoutes(router)
	httpHandler.RegisterRoutes(router)

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	// Wrap router in CORS middleware
	handler := c.Handler(router)

	// Create HTTP server with timeouts
	server := &http.Server{
		Addr:         ":" + config.HTTP.Port,
		Handler:      handler,
		ReadTimeout:  readTimeoutSeconds * time.Second,
		WriteTimeout: writeTimeoutSeconds * time.Second,
		IdleTimeout:  idleTimeoutSeconds * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", "address", server.Addr)
		if err = server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			log.Fatal(err)
		}
	}()

	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Give 5 seconds to complete current requests
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeoutSeconds*time.Second)
	defer cancel()

	if err = server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		return
	}

	logger.Info("Server exited properly")
}
