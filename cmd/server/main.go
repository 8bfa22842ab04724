package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"meatstore-backend/internal/billing"
	"meatstore-backend/internal/cache"
	"meatstore-backend/internal/config"
	"meatstore-backend/internal/database"
	"meatstore-backend/internal/db"
	"meatstore-backend/internal/feed"
	"meatstore-backend/internal/handlers"
	"meatstore-backend/internal/health"
	h "meatstore-backend/internal/http"
	"meatstore-backend/internal/middleware"
	"meatstore-backend/internal/repositories"
	"meatstore-backend/internal/services"
	"meatstore-backend/migrations"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect database
	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (catalog reads go to Postgres)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations from the embedded filesystem
	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool, migrations.FS, ".")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize health checker
	healthChecker := health.NewHealthChecker(pool)

	// Initialize repositories
	productRepo := repositories.NewProductRepository(pool)
	orderRepo := repositories.NewOrderRepository(pool)

	// Order feed and live summary hub
	orderFeed := feed.New()
	hub := feed.NewHub()

	// Billing policy from config
	policy := billing.Policy{
		AllowNegativePayable: cfg.Billing.AllowNegativePayable,
		AllowZeroPrice:       cfg.Billing.AllowZeroPrice,
	}

	// Initialize services
	catalogService := services.NewCatalogService(productRepo)
	billingService := services.NewBillingService(policy, orderRepo, orderFeed)
	summaryService := services.NewSummaryService(orderRepo, orderFeed, hub)
	exportService := services.NewExportService(cfg)
	paymentLinkService := services.NewPaymentLinkService(
		cfg.Razorpay.KeyID,
		cfg.Razorpay.KeySecret,
		cfg.Razorpay.WebhookSecret,
	)

	// Live summary recomputes on every feed change. Subscribe before
	// the initial load so the first broadcast carries real data.
	orderFeed.Subscribe(summaryService)
	if err := summaryService.LoadFeed(ctx); err != nil {
		log.Fatalf("Failed to load order feed: %v", err)
	}

	// Initialize handlers
	billingHandler := handlers.NewBillingHandler(billingService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	orderHandler := handlers.NewOrderHandler(orderRepo, orderFeed, summaryService)
	summaryHandler := handlers.NewSummaryHandler(summaryService, exportService)
	paymentHandler := handlers.NewPaymentHandler(paymentLinkService, billingService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	// Build router and middleware chain
	corsMiddleware := middleware.NewCORS(cfg)
	router := h.NewRouter(billingHandler, catalogHandler, orderHandler, summaryHandler, paymentHandler, healthHandler, hub)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
