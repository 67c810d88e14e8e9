// @title           Event Ticketing Backoffice API
// @version         1.0.0
// @description     Backend API for ticket order fulfillment. Customers submit orders with a payment reference, operators approve them, bulk-assign ticket files and email the tickets.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"event-ticketing-backend/docs"
	"event-ticketing-backend/internal/config"
	"event-ticketing-backend/internal/database"
	"event-ticketing-backend/internal/handlers"
	"event-ticketing-backend/internal/middleware"
	"event-ticketing-backend/internal/notify"
	"event-ticketing-backend/internal/orders"
	"event-ticketing-backend/internal/settings"
	"event-ticketing-backend/internal/storage"
	"event-ticketing-backend/internal/supabase"
	"event-ticketing-backend/internal/tickets"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Update Swagger docs with dynamic base URL
	if baseURL, err := url.Parse(cfg.BaseURL); err == nil && baseURL.Host != "" {
		docs.SwaggerInfo.Host = baseURL.Host
		if baseURL.Scheme == "https" {
			docs.SwaggerInfo.Schemes = []string{"https", "http"}
		} else {
			docs.SwaggerInfo.Schemes = []string{"http", "https"}
		}
	}

	ctx := context.Background()

	var dbClient *supabase.DatabaseClient
	if cfg.NeedsDatabase() {
		migrator, err := database.NewMigrator(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize migrator: %v", err)
		}
		if err := migrator.Run(ctx); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		migrator.Close()
		log.Println("Migrations completed successfully")

		dbClient, err = supabase.NewDatabaseClient(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize database client: %v", err)
		}
		defer dbClient.Close()
	}

	// Order store
	var orderStore orders.Store
	switch cfg.OrderStore {
	case config.BackendPostgres:
		orderStore = dbClient.OrderStore()
	default:
		log.Println("Warning: ORDER_STORE=memory, orders are lost on restart")
		orderStore = orders.NewMemoryStore()
	}
	manager := orders.NewManager(orderStore, orders.WithDeleteConfirmTTL(cfg.DeleteConfirmTTL))

	// Payment settings
	var settingsStore settings.Store
	switch cfg.SettingsStore {
	case config.BackendPostgres:
		settingsStore = dbClient.SettingsStore()
	case config.BackendSupabase:
		supabaseClient, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabasePublishableKey)
		if err != nil {
			log.Fatalf("Failed to initialize Supabase client: %v", err)
		}
		settingsStore = supabaseClient.SettingsStore()
	default:
		settingsStore = settings.NewMemoryStore()
	}
	registry := settings.NewRegistry(settingsStore)

	// Ticket storage
	var uploader tickets.Uploader
	var mockBackend *storage.MemoryBackend
	switch cfg.TicketStorage {
	case config.BackendSupabase:
		storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket, cfg.UploadTimeout)
		if err != nil {
			log.Fatalf("Failed to initialize storage client: %v", err)
		}
		uploader = storageClient
	default:
		log.Println("Warning: TICKET_STORAGE=mock, ticket links only resolve while this process runs")
		mockBackend = storage.NewMemoryBackend(cfg.BaseURL)
		uploader = mockBackend
	}
	engine := tickets.NewEngine(manager, uploader)

	// Mail
	var mailer notify.Mailer
	switch cfg.Mailer {
	case config.BackendEmailJS:
		mailer = notify.NewEmailJSClient(cfg.EmailJSURL, cfg.EmailJSServiceID, cfg.EmailJSTemplateID, cfg.EmailJSPublicKey, cfg.EmailJSAccessToken)
	default:
		mailer = notify.NewLogMailer(slog.Default())
	}
	dispatcher := notify.NewDispatcher(mailer, manager, cfg.EventTitle)

	// Redis is optional; without it operator requests are not deduplicated
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Printf("Warning: Failed to connect to redis at %s: %v", cfg.RedisAddr, err)
			log.Println("Idempotency keys will be ignored.")
			redisClient.Close()
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
		cancel()
	}

	ordersHandler := handlers.NewOrdersHandler(manager, dispatcher)
	ticketsHandler := handlers.NewTicketsHandler(engine, cfg.MaxUploadBytes)
	settingsHandler := handlers.NewSettingsHandler(registry)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", handlers.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if mockBackend != nil {
		router.GET("/tickets/mock/*key", handlers.NewMockTicketsHandler(mockBackend).GetTicket)
	}

	// Public routes used by the storefront
	api := router.Group("/api/v1")
	api.POST("/orders", ordersHandler.SubmitOrder)
	api.GET("/settings/payment", settingsHandler.GetPaymentSettings)
	api.GET("/settings/payment/preview", settingsHandler.PreviewPayment)
	api.GET("/settings/payment/qr", settingsHandler.PreviewPaymentQR)

	// Operator routes
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.Idempotency(redisClient, cfg.IdempotencyTTL))

	admin.GET("/orders", ordersHandler.ListOrders)
	admin.GET("/orders/grouped", ordersHandler.ListGroupedOrders)
	admin.GET("/orders/:order_id", ordersHandler.GetOrder)
	admin.POST("/orders/:order_id/approve", ordersHandler.ApproveOrder)
	admin.POST("/orders/:order_id/reject", ordersHandler.RejectOrder)
	admin.POST("/orders/:order_id/delete-request", ordersHandler.RequestDelete)
	admin.DELETE("/orders/:order_id", ordersHandler.DeleteOrder)
	admin.POST("/orders/:order_id/dispatch", ordersHandler.DispatchTicket)

	admin.POST("/tickets/assign", ticketsHandler.AssignTickets)
	admin.PUT("/settings/payment", settingsHandler.UpdatePaymentSettings)

	handler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.IdempotencyHeader},
		ExposedHeaders:   []string{"X-Idempotency-Hit"},
		AllowCredentials: true,
		MaxAge:           300,
	})(router)

	log.Printf("Server starting on port %s (orders=%s settings=%s storage=%s mailer=%s)",
		cfg.Port, cfg.OrderStore, cfg.SettingsStore, cfg.TicketStorage, cfg.Mailer)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
