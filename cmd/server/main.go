package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/Chakshita2123/Campus-Marketplace/internal/cache"
	"github.com/Chakshita2123/Campus-Marketplace/internal/events"
	"github.com/Chakshita2123/Campus-Marketplace/internal/handlers"
	"github.com/Chakshita2123/Campus-Marketplace/internal/metrics"
	"github.com/Chakshita2123/Campus-Marketplace/internal/middleware"
	"github.com/Chakshita2123/Campus-Marketplace/internal/repository"
	"github.com/Chakshita2123/Campus-Marketplace/internal/service"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName:   "Campus Marketplace Backend",
		BodyLimit: 1 * 1024 * 1024, // 1MB; listings carry image URLs, not uploads
	})

	// Middleware
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv("ALLOWED_ORIGINS"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize database connection
	db, err := repository.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis cache
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if parsedDB, err := strconv.Atoi(dbStr); err == nil {
			redisDB = parsedDB
		}
	}

	redisCache := cache.NewRedisCache(redisAddr, redisPassword, redisDB)
	if err := redisCache.Ping(); err != nil {
		log.Printf("WARNING: Redis connection failed: %v. Running without cache.", err)
		redisCache = nil
	} else {
		log.Println("Redis cache connected successfully")
		defer redisCache.Close()
	}

	chatCache := cache.NewChatCache(redisCache)
	userCache := cache.NewUserCache(redisCache)

	// Event publisher (audit trail); noop when AMQP is not configured
	publisher := events.NewPublisher(os.Getenv("AMQP_URL"), os.Getenv("AMQP_EXCHANGE"))
	defer publisher.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	threadRepo := repository.NewThreadRepository(db)
	productRepo := repository.NewProductRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	pickupRepo := repository.NewPickupRepository(db)

	// Initialize services
	userService := service.NewUserService(userRepo)
	chatService := service.NewChatService(threadRepo)
	productService := service.NewProductService(productRepo)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo)
	orderService := service.NewOrderService(orderRepo, productRepo)
	pickupService := service.NewPickupService(pickupRepo, productRepo)

	// Initialize handlers
	wsHandler := handlers.NewWebSocketHandler(chatService, userService, chatCache, userCache, publisher)
	chatHandler := handlers.NewChatHandler(chatService, chatCache, wsHandler.GetBroadcaster())
	userHandler := handlers.NewUserHandler(userService, userCache)
	productHandler := handlers.NewProductHandler(productService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	orderHandler := handlers.NewOrderHandler(orderService, publisher)
	pickupHandler := handlers.NewPickupHandler(pickupService, publisher)
	adminHandler := handlers.NewAdminHandler(userService, productService, orderService, userCache, wsHandler.GetHub())

	// Public routes
	api := app.Group("/api", middleware.OriginAllowed())

	// Listings are browsable without signing in
	api.Get("/products", productHandler.ListProducts)
	api.Get("/products/:id", productHandler.GetProduct)

	// Protected routes: token check, then local profile provisioning
	protected := api.Group("/", middleware.AuthRequired(), middleware.EnsureProfile(userService, userCache))

	protected.Get("/users/me", userHandler.GetCurrentUser)
	protected.Get("/users/search", userHandler.SearchUsers)
	protected.Get("/users/:id", userHandler.GetUser)

	// Chat
	chatWrites := limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
	})
	protected.Post("/chats/start", chatWrites, chatHandler.StartChat)
	protected.Post("/chats/send", chatWrites, chatHandler.SendMessage)
	protected.Get("/chats", chatHandler.ListConversations)
	protected.Get("/chats/unread", chatHandler.GetUnread)
	protected.Get("/chats/unread/total", chatHandler.GetUnreadTotal)
	protected.Get("/chats/:peer_id/messages", chatHandler.GetMessages)
	protected.Post("/chats/:peer_id/read", chatHandler.MarkRead)

	// Marketplace
	protected.Post("/products", productHandler.CreateProduct)
	protected.Put("/products/:id", productHandler.UpdateProduct)
	protected.Delete("/products/:id", productHandler.DeleteProduct)

	protected.Get("/wishlist", wishlistHandler.GetWishlist)
	protected.Post("/wishlist", wishlistHandler.AddToWishlist)
	protected.Delete("/wishlist/:product_id", wishlistHandler.RemoveFromWishlist)

	protected.Post("/orders", orderHandler.CreateOrder)
	protected.Get("/orders", orderHandler.ListOrders)
	protected.Post("/orders/:id/pay", orderHandler.ConfirmPayment)

	protected.Post("/pickups", pickupHandler.SchedulePickup)
	protected.Get("/pickups", pickupHandler.ListPickups)
	protected.Get("/pickups/selling", pickupHandler.ListSellerPickups)
	protected.Post("/pickups/:id/complete", pickupHandler.CompletePickup)
	protected.Post("/pickups/:id/cancel", pickupHandler.CancelPickup)

	// Admin
	admin := protected.Group("/admin", middleware.RequireRole("admin"))
	admin.Get("/stats", adminHandler.GetStats)
	admin.Get("/orders", adminHandler.ListAllOrders)

	// WebSocket route (websocket upgrade needs special handling)
	app.Use(
		"/ws",
		middleware.OriginAllowed(),
		middleware.AuthRequired(),
		middleware.EnsureProfile(userService, userCache),
		func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		},
	)
	app.Get("/ws", websocket.New(wsHandler.HandleWebSocket))

	// Prometheus metrics
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Campus Marketplace is running",
		})
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s...", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
