package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"stockflow-api/internal/handler"
	"stockflow-api/internal/middleware"
	"stockflow-api/internal/model"
	"stockflow-api/internal/repository"
	"stockflow-api/internal/service"
	"stockflow-api/internal/ws"
	"stockflow-api/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (use a dedicated migration tool in production)
	db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.SubCategory{},
		&model.Variant{},
		&model.VariantOption{},
		&model.Product{},
		&model.ProductVariantItem{},
		&model.ProductConfiguration{},
		&model.StockTransaction{},
		&model.LowStockAlert{},
	)

	// 3. Seed default admin user
	seedAdmin(db)

	// 4. Setup WebSocket Hub (low-stock notification channel)
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	categoryRepo := repository.NewCategoryRepo(db)
	subCategoryRepo := repository.NewSubCategoryRepo(db)
	variantRepo := repository.NewVariantRepo(db)
	optionRepo := repository.NewVariantOptionRepo(db)
	productRepo := repository.NewProductRepo(db)
	itemRepo := repository.NewVariantItemRepo(db)
	configRepo := repository.NewConfigurationRepo(db)
	stockTxRepo := repository.NewStockTransactionRepo(db)
	alertRepo := repository.NewAlertRepo(db)
	userRepo := repository.NewUserRepo(db)

	catalogService := service.NewCatalogService(categoryRepo, subCategoryRepo, variantRepo, optionRepo, db)
	productService := service.NewProductService(productRepo, itemRepo, db)
	configService := service.NewConfigurationService(configRepo, itemRepo, optionRepo)
	stockService := service.NewStockService(itemRepo, productRepo, stockTxRepo, alertRepo, db, wsHub)
	authService := service.NewAuthService(userRepo)

	catalogHandler := handler.NewCatalogHandler(catalogService)
	productHandler := handler.NewProductHandler(productService)
	itemHandler := handler.NewVariantItemHandler(productService)
	configHandler := handler.NewConfigurationHandler(configService)
	stockHandler := handler.NewStockHandler(stockService)
	authHandler := handler.NewAuthHandler(authService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "StockFlow API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	// All routes below require an authenticated acting user
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Catalog hierarchy
	protected.Get("/categories", catalogHandler.GetCategories)
	protected.Post("/categories", catalogHandler.CreateCategory)
	protected.Get("/categories/:id", catalogHandler.GetCategory)
	protected.Put("/categories/:id", catalogHandler.UpdateCategory)
	protected.Delete("/categories/:id", catalogHandler.DeleteCategory)

	protected.Get("/sub-categories", catalogHandler.GetSubCategories)
	protected.Post("/sub-categories", catalogHandler.CreateSubCategory)
	protected.Get("/sub-categories/:id", catalogHandler.GetSubCategory)
	protected.Put("/sub-categories/:id", catalogHandler.UpdateSubCategory)
	protected.Delete("/sub-categories/:id", catalogHandler.DeleteSubCategory)

	protected.Get("/variants", catalogHandler.GetVariants)
	protected.Post("/variants", catalogHandler.CreateVariant)
	protected.Get("/variants/:id", catalogHandler.GetVariant)
	protected.Put("/variants/:id", catalogHandler.UpdateVariant)
	protected.Delete("/variants/:id", catalogHandler.DeleteVariant)

	protected.Get("/variant-options", catalogHandler.GetVariantOptions)
	protected.Post("/variant-options", catalogHandler.CreateVariantOption)
	protected.Get("/variant-options/:id", catalogHandler.GetVariantOption)
	protected.Put("/variant-options/:id", catalogHandler.UpdateVariantOption)
	protected.Delete("/variant-options/:id", catalogHandler.DeleteVariantOption)

	// Products
	protected.Get("/products", productHandler.GetProducts)
	protected.Post("/products", productHandler.CreateProduct)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Put("/products/:id", productHandler.UpdateProduct)
	protected.Delete("/products/:id", productHandler.DeleteProduct)

	// Product variant items
	protected.Get("/product-variants", itemHandler.GetItems)
	protected.Post("/product-variants", itemHandler.CreateItem)
	protected.Post("/product-variants/bulk-create", itemHandler.BulkCreate)
	protected.Post("/product-variants/add-to-product/:productId", itemHandler.AddToProduct)
	protected.Get("/product-variants/by-product/:productId", itemHandler.ByProduct)
	protected.Put("/product-variants/adjust-stock/:id", itemHandler.AdjustStock)
	protected.Get("/product-variants/:id", itemHandler.GetItem)
	protected.Put("/product-variants/:id", itemHandler.UpdateItem)
	protected.Delete("/product-variants/:id", itemHandler.DeleteItem)

	// Product configurations
	protected.Get("/product-configurations", configHandler.GetConfigurations)
	protected.Post("/product-configurations", configHandler.CreateConfiguration)
	protected.Get("/product-configurations/by-variant-item/:itemId", configHandler.ByVariantItem)
	protected.Get("/product-configurations/:id", configHandler.GetConfiguration)
	protected.Put("/product-configurations/:id", configHandler.UpdateConfiguration)
	protected.Delete("/product-configurations/:id", configHandler.DeleteConfiguration)

	// Stock ledger
	protected.Post("/stock/add-stock", stockHandler.AddStock)
	protected.Post("/stock/remove-stock", stockHandler.RemoveStock)
	protected.Get("/stock/stock-history/:itemId", stockHandler.StockHistory)
	protected.Get("/stock/transactions/:id", stockHandler.GetTransaction)

	// Low-stock alerts
	protected.Get("/low-stock-alerts/current-alerts", stockHandler.CurrentAlerts)
	protected.Get("/low-stock-alerts", stockHandler.GetAlerts)
	protected.Post("/low-stock-alerts", stockHandler.CreateAlert)
	protected.Get("/low-stock-alerts/:id", stockHandler.GetAlert)
	protected.Put("/low-stock-alerts/:id", stockHandler.UpdateAlert)
	protected.Delete("/low-stock-alerts/:id", stockHandler.DeleteAlert)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedAdmin creates the default admin user if it doesn't exist
func seedAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	if _, err := userRepo.FindByEmail("admin@example.com"); err == nil {
		return
	}

	admin := &model.User{
		Email:    "admin@example.com",
		FullName: "Administrator",
		IsActive: true,
	}
	if err := admin.SetPassword("admin123"); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}
	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		log.Println("✅ Admin user created: admin@example.com / admin123")
	}
}
