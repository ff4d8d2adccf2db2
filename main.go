package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tourism-pricing-backend/config"
	"tourism-pricing-backend/controllers"
	"tourism-pricing-backend/routes"
	"tourism-pricing-backend/services"
	"tourism-pricing-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// Required admin key guarding catalog/discount mutations
	adminKey := os.Getenv("ADMIN_API_KEY")
	if adminKey == "" {
		log.Fatal("❌ ERROR: ADMIN_API_KEY environment variable is not set. Cannot guard admin routes.")
	}
	log.Println("✅ ADMIN_API_KEY detected.")

	// Connect database (config.ConnectDatabase should set config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Initialize services; the calculator is a single explicit instance
	// shared by everything that touches the discount registry.
	calculator := services.NewPriceCalculator()
	catalogService := services.NewCatalogService(db)
	discountService := services.NewDiscountService(db, calculator)
	quoteService := services.NewQuoteService(db, calculator, catalogService)

	if err := discountService.LoadRegistry(); err != nil {
		log.Fatalf("❌ Failed to load discount registry: %v", err)
	}
	log.Println("✅ Discount registry loaded.")

	// Initialize controllers
	pricingController := controllers.NewPricingController(quoteService, catalogService, calculator)
	discountController := controllers.NewDiscountController(discountService)
	resourceController := controllers.NewResourceController(catalogService)

	// Build router
	router := routes.SetupRouter(pricingController, discountController, resourceController, adminKey)

	// Port from env (prefer), fallback to 8080
	addr := ":" + utils.EnvOrDefault("PORT", "8080")

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
