// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/auth"
	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/catalogs/product"
	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/registers/stock"
	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/sales"
	"github.com/Bench-10/LJean-IMS-sub002/internal/domain/units"
	"github.com/Bench-10/LJean-IMS-sub002/internal/infrastructure/http/v1/handlers"
	"github.com/Bench-10/LJean-IMS-sub002/internal/infrastructure/http/v1/middleware"
	"github.com/Bench-10/LJean-IMS-sub002/internal/infrastructure/storage/postgres"
	"github.com/Bench-10/LJean-IMS-sub002/pkg/logger"
)

// RouterConfig holds everything the router wires together.
type RouterConfig struct {
	Pool   *postgres.Pool
	Logger *logger.Logger

	JWTValidator middleware.JWTValidator
	AuthService  *auth.Service

	UnitRegistry     *units.Registry
	ProductService   *product.Service
	SaleService      *sales.Service
	ReceivingService *stock.ReceivingService
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	base := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(base, cfg.AuthService)
	unitHandler := handlers.NewUnitHandler(base, cfg.UnitRegistry)
	productHandler := handlers.NewProductHandler(base, cfg.ProductService)
	saleHandler := handlers.NewSaleHandler(base, cfg.SaleService)
	stockHandler := handlers.NewStockHandler(base, cfg.ReceivingService)

	apiV1 := router.Group("/api/v1")
	{
		// Public auth endpoints
		apiV1.POST("/auth/login", authHandler.Login)

		protected := apiV1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		protected.GET("/auth/me", authHandler.Me)
		protected.POST("/auth/register",
			middleware.RequireRole(auth.RoleOwner), authHandler.Register)

		// Unit registry
		protected.GET("/units", unitHandler.List)
		protected.GET("/units/:symbol", unitHandler.Get)
		protected.POST("/units/validate-quantity", unitHandler.ValidateQuantity)

		// Product catalog
		protected.GET("/products", productHandler.List)
		protected.POST("/products",
			middleware.RequireRole(auth.RoleOwner, auth.RoleBranchManager, auth.RoleInventoryStaff),
			productHandler.Create)
		protected.GET("/products/:id", productHandler.Get)
		protected.PUT("/products/:id",
			middleware.RequireRole(auth.RoleOwner, auth.RoleBranchManager, auth.RoleInventoryStaff),
			productHandler.Update)
		protected.DELETE("/products/:id",
			middleware.RequireRole(auth.RoleOwner, auth.RoleBranchManager),
			productHandler.Delete)
		protected.GET("/products/:id/selling-units", productHandler.SellableUnits)

		// Stock register
		protected.GET("/products/:id/stock", stockHandler.Available)
		protected.POST("/products/:id/stock",
			middleware.RequireRole(auth.RoleOwner, auth.RoleBranchManager, auth.RoleInventoryStaff),
			stockHandler.Receive)

		// Sales
		protected.GET("/sales", saleHandler.List)
		protected.POST("/sales",
			middleware.RequireRole(auth.RoleOwner, auth.RoleBranchManager, auth.RoleSalesAssociate),
			saleHandler.Create)
		protected.GET("/sales/:id", saleHandler.Get)
		protected.GET("/sales/:id/items", saleHandler.Items)
		protected.POST("/sales/:id/cancel",
			middleware.RequireRole(auth.RoleOwner, auth.RoleBranchManager),
			saleHandler.Cancel)
	}

	return router
}
