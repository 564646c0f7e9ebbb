package router

import (
	"database/sql"

	"stocktrade_backend/internal/handlers"
	"stocktrade_backend/internal/middleware"
	"stocktrade_backend/internal/repositories"
	"stocktrade_backend/internal/services"
	"stocktrade_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Setup wires repositories, services and handlers and registers all routes.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	supplierRepo := repositories.NewSupplierRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	productRepo := repositories.NewProductRepository(db)
	purchaseRepo := repositories.NewPurchaseRepository(db)
	txManager := repositories.NewTxManager(db)

	// Services
	uploadDir := utils.Getenv("UPLOAD_DIR", "uploads")
	fileService := services.NewFileService(uploadDir)

	authService := services.NewAuthService(userRepo, db)
	categoryService := services.NewCategoryService(categoryRepo, productRepo, fileService, db, txManager)
	supplierService := services.NewSupplierService(supplierRepo, productRepo, db, txManager)
	customerService := services.NewCustomerService(customerRepo, db)
	productService := services.NewProductService(productRepo, categoryRepo, supplierRepo, db)
	purchaseService := services.NewPurchaseService(purchaseRepo, productRepo, txManager)
	reportService := services.NewReportService(purchaseRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	supplierHandler := handlers.NewSupplierHandler(supplierService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	productHandler := handlers.NewProductHandler(productService)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService)
	reportHandler := handlers.NewReportHandler(reportService)

	apiV1 := engine.Group("/api/v1")

	SetupAuthRoutes(apiV1, authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupCategoryRoutes(authenticated, categoryHandler)
		SetupSupplierRoutes(authenticated, supplierHandler)
		SetupCustomerRoutes(authenticated, customerHandler)
		SetupProductRoutes(authenticated, productHandler)
		SetupPurchaseRoutes(authenticated, purchaseHandler)
		SetupReportRoutes(authenticated, reportHandler)
	}
}
