package main

import (
	"fmt"
	"net/http"
	"time"

	_ "github.com/booay/pizza-shop-api/docs" // Import generated docs
	"github.com/booay/pizza-shop-api/internal/auth"
	"github.com/booay/pizza-shop-api/internal/config"
	"github.com/booay/pizza-shop-api/internal/controllers"
	"github.com/booay/pizza-shop-api/internal/database"
	"github.com/booay/pizza-shop-api/internal/middleware"
	"github.com/booay/pizza-shop-api/internal/models"
	"github.com/booay/pizza-shop-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

var (
	db            *gorm.DB
	configuration *config.Config

	categoryService     services.CategoryService
	pizzaService        services.PizzaService
	orderService        services.OrderService
	userService         services.UserService
	catalogAdminService services.CatalogAdminService
	orderAdminService   services.OrderAdminService

	categoryController     controllers.CategoryController
	pizzaController        controllers.PizzaController
	orderController        controllers.OrderController
	authController         *controllers.AuthController
	catalogAdminController controllers.CatalogAdminController
	orderAdminController   controllers.OrderAdminController
)

// @title Booay Pizza API
// @version 1.0
// @description Catalog and order management backend for the Booay pizza shop
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Set JWT secret from configuration
	middleware.SetJWTSecret(configuration.JWTSecret)

	// Initialize database connection
	setupDatabase(configuration)

	// Initialize services and controllers
	wireServices()

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase initializes the database connection, migrates the schema and
// seeds it when empty
func setupDatabase(conf *config.Config) *gorm.DB {
	var err error
	db, err = database.InitDatabase(database.FromAppConfig(conf))
	checkPanicErr(err)

	// Migrate the schema
	checkPanicErr(db.AutoMigrate(
		&models.Category{},
		&models.Pizza{},
		&models.Order{},
		&models.User{},
	))

	// Seed the catalog only if it is empty
	var count int64
	db.Model(&models.Category{}).Count(&count)
	if count == 0 {
		log.Info("Database is empty, seeding initial data")
		seedDatabase()
	} else {
		log.Info("Database already seeded with initial data")
	}
	return db
}

// seedDatabase seeds the database with an initial catalog
func seedDatabase() {
	categories := []models.Category{
		{Name: "Classic"},
		{Name: "Spicy"},
		{Name: "Vegetarian"},
	}
	for i := range categories {
		db.Create(&categories[i])
	}
	pizzas := []models.Pizza{
		{Name: "Margherita", CategoryID: categories[0].ID, BasePrice: decimal.NewFromFloat(10.99), Stock: 20},
		{Name: "Pepperoni", CategoryID: categories[0].ID, BasePrice: decimal.NewFromFloat(12.99), Stock: 15},
		{Name: "Diavola", CategoryID: categories[1].ID, BasePrice: decimal.NewFromFloat(13.49), Stock: 10, Discount: 10},
		{Name: "Quattro Formaggi", CategoryID: categories[2].ID, BasePrice: decimal.NewFromFloat(11.99), Stock: 8},
	}
	for i := range pizzas {
		db.Create(&pizzas[i])
	}
	log.Info("Database seeded successfully")
}

// wireServices builds the service and controller graph
func wireServices() {
	categoryService = services.NewCategoryService(db)
	pizzaService = services.NewPizzaService(db)
	orderService = services.NewOrderService(db)
	userService = services.NewUserService(db)
	catalogAdminService = services.NewCatalogAdminService(db)
	orderAdminService = services.NewOrderAdminService(db)

	checkPanicErr(userService.EnsureAdmin(configuration.AdminEmail, configuration.AdminPassword))

	issuer := auth.NewTokenIssuer(configuration.JWTSecret)
	categoryController = controllers.NewCategoryController(categoryService)
	pizzaController = controllers.NewPizzaController(pizzaService, configuration.MediaBaseURL)
	orderController = controllers.NewOrderController(orderService)
	authController = controllers.NewAuthController(userService, issuer)
	catalogAdminController = controllers.NewCatalogAdminController(
		catalogAdminService, categoryService, pizzaService,
		configuration.MediaRoot, configuration.MediaBaseURL)
	orderAdminController = controllers.NewOrderAdminController(orderAdminService, orderService)
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	router := gin.Default()
	setupRoutes(router)
	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	// Pizza images
	router.Static("/media", configuration.MediaRoot)

	// REST API: resource-per-entity CRUD
	api := router.Group("/api")
	{
		api.GET("/categories", categoryController.GetAllCategories)
		api.POST("/categories", categoryController.CreateCategory)
		api.GET("/categories/:id", categoryController.GetCategoryByID)
		api.PUT("/categories/:id", categoryController.UpdateCategory)
		api.PATCH("/categories/:id", categoryController.PatchCategory)
		api.DELETE("/categories/:id", categoryController.DeleteCategory)

		api.GET("/pizzas", pizzaController.GetAllPizzas)
		api.POST("/pizzas", pizzaController.CreatePizza)
		api.GET("/pizzas/:id", pizzaController.GetPizzaByID)
		api.PUT("/pizzas/:id", pizzaController.UpdatePizza)
		api.PATCH("/pizzas/:id", pizzaController.PatchPizza)
		api.DELETE("/pizzas/:id", pizzaController.DeletePizza)

		api.GET("/orders", orderController.GetAllOrders)
		api.POST("/orders", orderController.CreateOrder)
		api.GET("/orders/:id", orderController.GetOrderByID)
		api.PUT("/orders/:id", orderController.UpdateOrder)
		api.PATCH("/orders/:id", orderController.PatchOrder)
		api.DELETE("/orders/:id", orderController.DeleteOrder)
	}

	// Admin surface: list views and bulk actions behind JWT + admin role
	router.POST("/admin/login", authController.Login)

	admin := router.Group("/admin")
	admin.Use(middleware.JWTAuth())
	admin.Use(middleware.RequireRole("admin"))
	{
		admin.GET("/categories", catalogAdminController.ListCategories)
		admin.POST("/categories/actions/duplicate", catalogAdminController.DuplicateCategories)
		admin.POST("/categories/actions/merge", catalogAdminController.MergeCategories)
		admin.POST("/categories/export", catalogAdminController.ExportCategories)

		admin.GET("/pizzas", catalogAdminController.ListPizzas)
		admin.POST("/pizzas/actions/set-stock-zero", catalogAdminController.SetStockToZero)
		admin.POST("/pizzas/actions/increase-price", catalogAdminController.IncreasePrices)
		admin.POST("/pizzas/actions/decrease-price", catalogAdminController.DecreasePrices)
		admin.POST("/pizzas/actions/apply-discount", catalogAdminController.ApplyDiscount)
		admin.POST("/pizzas/actions/remove-discount", catalogAdminController.RemoveDiscount)
		admin.POST("/pizzas/export", catalogAdminController.ExportPizzas)
		admin.POST("/pizzas/:id/image", catalogAdminController.UploadPizzaImage)

		admin.GET("/orders", orderAdminController.ListOrders)
		admin.POST("/orders/actions/mark-express", orderAdminController.MarkAsExpress)
		admin.POST("/orders/actions/mark-shipped", orderAdminController.MarkAsShipped)
		admin.POST("/orders/actions/mark-delivered", orderAdminController.MarkAsDelivered)
		admin.POST("/orders/actions/cancel", orderAdminController.CancelOrders)
		admin.POST("/orders/export", orderAdminController.ExportOrders)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "pizza-shop-api",
	})
}
