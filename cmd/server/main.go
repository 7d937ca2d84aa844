package main

import (
	"log"
	"os"
	"time"

	"sari-pos-agent/internal/catalog"
	"sari-pos-agent/internal/database"
	"sari-pos-agent/internal/handlers"
	"sari-pos-agent/internal/ledger"
	"sari-pos-agent/internal/middleware"
	"sari-pos-agent/internal/sales"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatal("❌ Database setup failed: ", err)
	}
	if err := database.SeedProducts(db); err != nil {
		log.Fatal("❌ Catalog seed failed: ", err)
	}

	// POS_PERMISSIVE_STOCK=true restores the legacy behavior of letting
	// stock go negative on oversell. Strict checking is the default.
	permissive := os.Getenv("POS_PERMISSIVE_STOCK") == "true"
	if permissive {
		log.Println("⚠️ WARNING: Permissive stock mode is ON. Sales may drive stock negative!")
	}

	catalogStore := catalog.NewStore(db, permissive)
	ledgerStore := ledger.NewStore(db)
	recorder := sales.NewRecorder(db, catalogStore, ledgerStore)

	authHandler := handlers.NewAuthHandler(db)
	productHandler := handlers.NewProductHandler(catalogStore)
	saleHandler := handlers.NewSaleHandler(recorder)
	customerHandler := handlers.NewCustomerHandler(ledgerStore)
	reportHandler := handlers.NewReportHandler(catalogStore, recorder)
	exportHandler := handlers.NewExportHandler(catalogStore, ledgerStore, recorder)
	aiHandler := handlers.NewAIHandler(catalogStore, recorder)
	systemHandler := handlers.NewSystemHandler(db)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"}, // Allow React dev server
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/login", authHandler.Login)

	// --- FEATURE FLAG: Registration ---
	// Only opens if we explicitly allow it in .env
	if os.Getenv("ALLOW_REGISTRATION") == "true" {
		r.POST("/register", authHandler.Register)
		log.Println("⚠️ WARNING: Registration route is OPEN. Disable this in production!")
	} else {
		log.Println("🔒 Registration route is safely DISABLED.")
	}

	// --- PROTECTED ROUTES ---
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		// PUBLIC TO STAFF & ADMIN
		api.GET("/products", productHandler.List)
		api.GET("/products/scan/:barcode", productHandler.Scan)
		api.POST("/checkout", saleHandler.Checkout)
		api.GET("/sales", saleHandler.List)

		// The utang book lives at the counter too
		api.GET("/customers", customerHandler.List)
		api.POST("/customers", customerHandler.Register)
		api.PUT("/customers/:id", customerHandler.Update)
		api.GET("/customers/:id/transactions", customerHandler.Transactions)
		api.POST("/customers/:id/payments", customerHandler.RecordPayment)

		// ADMIN ONLY
		admin := api.Group("/")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.POST("/products", productHandler.Add)
			admin.PUT("/products/:id", productHandler.Update)
			admin.DELETE("/products/:id", productHandler.Delete)

			admin.GET("/reports", reportHandler.GetSalesReport)
			admin.GET("/reports/valuation", reportHandler.GetStockValuation)

			admin.GET("/export/inventory", exportHandler.Inventory)
			admin.GET("/export/sales", exportHandler.Sales)
			admin.GET("/export/debtors", exportHandler.Debtors)

			admin.GET("/insights", aiHandler.GetInsights)

			admin.GET("/system/status", systemHandler.Status)
			admin.POST("/system/reset", systemHandler.Reset)
		}
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	log.Println("🚀 Server starting on " + baseURL)
	if err := r.Run(":8080"); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
