// internal/router/router.go
package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/solarsavers/solarsavers-api/internal/assistant"
	"github.com/solarsavers/solarsavers-api/internal/calculator"
	"github.com/solarsavers/solarsavers-api/internal/config"
	"github.com/solarsavers/solarsavers-api/internal/handlers"
	"github.com/solarsavers/solarsavers-api/internal/middleware"
	"github.com/solarsavers/solarsavers-api/internal/repository"
	"github.com/solarsavers/solarsavers-api/internal/services"
)

// Dependencies are the collaborators the API is built from. Only Store and
// Config are required.
type Dependencies struct {
	Store         *repository.Store
	Config        *config.Config
	Notifications *services.NotificationService
	Responder     assistant.Responder
	Weather       services.WeatherProvider
	Payments      services.PaymentGateway
}

func Initialize(deps Dependencies) (*gin.Engine, error) {
	cfg := deps.Config
	store := deps.Store

	// Initialize services
	notificationService := deps.Notifications
	if notificationService == nil {
		notificationService = services.NewNotificationService(cfg)
	}
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	weather := deps.Weather
	if weather == nil {
		weather = services.NewWeatherService(cfg.Weather, calculator.DefaultConstants())
	}

	authService := services.NewAuthService(store.Users, cfg)
	userService := services.NewUserService(store)
	adminService := services.NewAdminService(store, notificationService)
	productService := services.NewProductService(store.Products)
	inventoryService := services.NewInventoryService(store.Inventory)
	suggestionService := services.NewSuggestionService(store.Suggestions)
	reviewService := services.NewReviewService(store.Reviews)
	orderService := services.NewOrderService(store, notificationService)
	paymentService := services.NewPaymentService(store.Orders, cfg.Payment, deps.Payments)
	ticketService := services.NewTicketService(store.Tickets, notificationService)
	blogService := services.NewBlogService(store.Blogs)
	contactService := services.NewContactService(store.Contacts)
	chatService := services.NewChatService(store.Chat, deps.Responder, cfg.AI.HistoryTurns)
	calculatorService := services.NewCalculatorService(calculator.DefaultConstants(), weather)
	seedService := services.NewSeedService(store)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, productService)
	adminHandler := handlers.NewAdminHandler(adminService)
	productHandler := handlers.NewProductHandler(productService, reviewService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, suggestionService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	ticketHandler := handlers.NewTicketHandler(ticketService)
	blogHandler := handlers.NewBlogHandler(blogService)
	contactHandler := handlers.NewContactHandler(contactService)
	chatHandler := handlers.NewChatHandler(chatService)
	calculatorHandler := handlers.NewCalculatorHandler(calculatorService)
	seedHandler := handlers.NewSeedHandler(seedService)
	uploadHandler := handlers.NewUploadHandler(storageService)

	limiters := &middleware.Limiters{}
	if cfg.RateLimit.Enabled {
		limiters = middleware.NewLimiters()
	}

	authRequired := middleware.AuthRequired(authService)
	optionalAuth := middleware.OptionalAuth(authService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))
	r.Use(limiters.General.Middleware())

	r.GET("/health", handlers.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if !storageService.UsesS3() {
		r.Static("/uploads", cfg.AWS.LocalUploadDir)
	}

	api := r.Group("/api")
	{
		api.GET("/", handlers.Root)
		api.POST("/seed", seedHandler.Seed)

		// Authentication routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", limiters.Auth.Middleware(), authHandler.Register)
			auth.POST("/login", limiters.Auth.Middleware(), authHandler.Login)
			auth.GET("/me", authRequired, authHandler.Me)
		}

		// Vendor directory
		vendors := api.Group("/vendors")
		{
			vendors.POST("/register", limiters.Auth.Middleware(), authHandler.RegisterVendor)
			vendors.GET("", userHandler.ListVendors)
			vendors.GET("/:id", userHandler.GetVendor)
		}

		// Product routes
		products := api.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/featured", productHandler.GetFeaturedProducts)
			products.GET("/:id", productHandler.GetProduct)

			protected := products.Group("")
			protected.Use(authRequired, middleware.VendorRequired())
			{
				protected.POST("", productHandler.CreateProduct)
				protected.PUT("/:id", productHandler.UpdateProduct)
				protected.DELETE("/:id", productHandler.DeleteProduct)
			}
		}
		api.GET("/brands", productHandler.GetBrands)
		api.POST("/reviews", authRequired, productHandler.CreateReview)
		api.GET("/reviews/:product_id", productHandler.GetReviews)

		// Calculator
		api.POST("/calculator", calculatorHandler.Calculate)
		api.POST("/calculator/calculate", calculatorHandler.Calculate)

		// Order routes
		orders := api.Group("/orders")
		orders.Use(authRequired)
		{
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.PUT("/:id/status", orderHandler.UpdateOrderStatus)
		}

		// Payment routes
		payments := api.Group("/payments")
		payments.Use(authRequired)
		{
			payments.POST("/orders/:id/intent", paymentHandler.CreatePaymentIntent)
			payments.POST("/orders/:id/confirm", paymentHandler.ConfirmPayment)
		}

		// Support routes
		tickets := api.Group("/tickets")
		tickets.Use(authRequired)
		{
			tickets.POST("", ticketHandler.CreateTicket)
			tickets.GET("", ticketHandler.MyTickets)
			tickets.GET("/:id", ticketHandler.GetTicket)
			tickets.POST("/:id/reply", ticketHandler.Reply)
		}
		api.POST("/contact", limiters.Contact.Middleware(), contactHandler.Submit)
		api.POST("/chat", limiters.Chat.Middleware(), optionalAuth, chatHandler.Chat)

		// Blog routes
		blogs := api.Group("/blogs")
		{
			blogs.GET("", blogHandler.ListBlogs)
			blogs.GET("/:id", blogHandler.GetBlog)
		}

		// Uploads
		api.POST("/uploads/images", authRequired, middleware.VendorRequired(), limiters.Upload.Middleware(), uploadHandler.UploadImage)

		// Vendor workspace
		vendor := api.Group("/vendor")
		vendor.Use(authRequired, middleware.VendorRequired())
		{
			vendor.GET("/dashboard", userHandler.VendorDashboard)
			vendor.GET("/products", userHandler.VendorProducts)
			vendor.GET("/orders", orderHandler.VendorOrders)
			vendor.GET("/assigned-orders", orderHandler.AssignedOrders)

			vendor.GET("/inventory", inventoryHandler.ListInventory)
			vendor.POST("/inventory", inventoryHandler.AddInventory)
			vendor.PUT("/inventory/:id", inventoryHandler.UpdateInventory)
			vendor.DELETE("/inventory/:id", inventoryHandler.DeleteInventory)

			vendor.POST("/suggest-product", inventoryHandler.SuggestProduct)
			vendor.GET("/suggestions", inventoryHandler.MySuggestions)
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(authRequired, middleware.AdminRequired())
		{
			admin.GET("/dashboard", adminHandler.GetDashboardStats)
			admin.GET("/users", adminHandler.GetUsers)
			admin.PUT("/vendors/:id/approve", adminHandler.ApproveVendor)

			admin.GET("/product-suggestions", inventoryHandler.PendingSuggestions)
			admin.PUT("/product-suggestions/:id/approve", inventoryHandler.ApproveSuggestion)
			admin.PUT("/product-suggestions/:id/reject", inventoryHandler.RejectSuggestion)

			admin.GET("/orders/pending-assignment", orderHandler.PendingAssignment)
			admin.GET("/orders/:id/available-vendors", orderHandler.AvailableVendors)
			admin.PUT("/orders/:id/assign", orderHandler.AssignOrder)

			admin.GET("/tickets", ticketHandler.AllTickets)
			admin.PUT("/tickets/:id/status", ticketHandler.UpdateStatus)
			admin.PUT("/tickets/:id/priority", ticketHandler.UpdatePriority)

			admin.GET("/blogs", blogHandler.AllBlogs)
			admin.POST("/blogs", blogHandler.CreateBlog)
			admin.PUT("/blogs/:id", blogHandler.UpdateBlog)
			admin.DELETE("/blogs/:id", blogHandler.DeleteBlog)

			admin.GET("/contacts", contactHandler.List)
		}
	}

	return r, nil
}
