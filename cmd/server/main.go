// Package main is the entry point for the LJean IMS API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/auth"
	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/catalogs/product"
	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/registers/stock"
	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/sales"
	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/units"
	v1 "github.com/Bench-10/LJean-IMS-sub002/internal/infrastructure/http/v1"
	"github.com/Bench-10/LJean-IMS-sub002/internal/infrastructure/storage/postgres"
	"github.com/Bench-10/LJean-IMS-sub002/internal/infrastructure/storage/postgres/auth_repo"
	"github.com/Bench-10/LJean-IMS-sub002/internal/infrastructure/storage/postgres/catalog_repo"
	"github.com/Bench-10/LJean-IMS-sub002/internal/infrastructure/storage/postgres/document_repo"
	"github.com/Bench-10/LJean-IMS-sub002/internal/infrastructure/storage/postgres/register_repo"
	"github.com/Bench-10/LJean-IMS-sub002/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting ljean-ims server")

	// --- Database ---
	dsn := mustEnv("DATABASE_URL")
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Repositories ---
	productRepo := catalog_repo.NewProductRepo(txManager)
	saleRepo := document_repo.NewSaleRepo(txManager)
	stockRepo := register_repo.NewStockRepo(txManager)
	userRepo := auth_repo.NewUserRepo(txManager)

	// --- Domain services ---
	registry := units.NewRegistry()
	productService := product.NewService(productRepo, registry)
	stockService := stock.NewService(stockRepo)
	receivingService := stock.NewReceivingService(stockService, productRepo, txManager)
	saleService := sales.NewService(saleRepo, productRepo, stockService, txManager)

	// --- Auth ---
	jwtSecret := getEnv("JWT_SECRET", "your-secret-key-change-in-production")
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(jwtSecret))
	authService := auth.NewService(userRepo, jwtService, auth.DefaultServiceConfig())

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:             pool,
		Logger:           log,
		JWTValidator:     jwtService,
		AuthService:      authService,
		UnitRegistry:     registry,
		ProductService:   productService,
		SaleService:      saleService,
		ReceivingService: receivingService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}
