package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NYTimes/gziphandler"

	"tiestyle-backend/config"
	"tiestyle-backend/internal/delivery/http/middleware"
	v1 "tiestyle-backend/internal/delivery/http/v1"
	"tiestyle-backend/internal/domain"
	"tiestyle-backend/internal/infrastructure/cache"
	"tiestyle-backend/internal/payment/razorpay"
	"tiestyle-backend/internal/repository/filecfg"
	memrepo "tiestyle-backend/internal/repository/memory"
	"tiestyle-backend/internal/repository/postgres"
	"tiestyle-backend/internal/usecase"
	"tiestyle-backend/pkg/logger"
	"tiestyle-backend/pkg/storage"
	"tiestyle-backend/pkg/utils"
)

func main() {
	cfg := config.LoadConfig()
	utils.SetSecret(cfg.JWTSecret)

	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	pgxPool, err := postgres.NewPgxPool(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	log.Info().Msg("Connected to PostgreSQL")

	// Repositories
	userRepo := postgres.NewUserRepository(pgxPool)
	productRepo := postgres.NewProductRepository(pgxPool)
	orderRepo := postgres.NewOrderRepository(pgxPool)
	configRepo := postgres.NewStoreConfigRepository(pgxPool)
	newsRepo := postgres.NewNewsRepository(pgxPool)
	statsRepo := postgres.NewStatsRepository(pgxPool)
	txManager := postgres.NewTransactionManager(pgxPool)

	// Cart storage is pluggable: Postgres survives restarts, memory is for
	// single-node setups and local dev.
	var cartRepo domain.CartRepository
	switch cfg.CartBackend {
	case "memory":
		cartRepo = memrepo.NewCartRepository()
		log.Info().Msg("Using in-memory cart backend")
	default:
		cartRepo = postgres.NewCartRepository(pgxPool)
	}

	// In-memory cache: default expiration 30m, cleanup every 60m
	memCache := cache.NewMemoryCache(30*time.Minute, 60*time.Minute)

	mux := http.NewServeMux()

	// --- Modules ---

	// Store settings: DB first, static file as read-only fallback.
	fallbackRepo := filecfg.NewStoreConfigRepository(cfg.StoreConfigFile)
	configUC := usecase.NewStoreConfigUsecase(configRepo, fallbackRepo, memCache, cfg)
	configHandler := v1.NewConfigHandler(configUC)
	adminConfigHandler := v1.NewAdminConfigHandler(configUC)

	// Auth
	authUC := usecase.NewAuthUsecase(userRepo, cfg.AccessTokenExpiry, cfg.RefreshTokenExpiry)
	authHandler := v1.NewAuthHandler(authUC)

	// Storage (R2)
	r2Storage, err := storage.NewR2Storage(
		context.Background(),
		cfg.R2AccountID,
		cfg.R2AccessKeyID,
		cfg.R2AccessKeySecret,
		cfg.R2BucketName,
		cfg.R2PublicURL,
		cfg.R2UploadTimeout,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize R2 storage")
	}
	uploadHandler := v1.NewUploadHandler(r2Storage, cfg.MaxUploadSizeMB)

	// Catalog
	catalogUC := usecase.NewCatalogUsecase(productRepo, memCache, cfg)
	catalogHandler := v1.NewCatalogHandler(catalogUC)
	adminCatalogHandler := v1.NewAdminCatalogHandler(catalogUC)
	searchHandler := v1.NewSearchHandler(catalogUC)

	// Cart
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo, configUC, cfg.MaxCartQuantity)
	cartHandler := v1.NewCartHandler(cartUC)

	// Orders
	orderUC := usecase.NewOrderUsecase(orderRepo, cartRepo, productRepo, configUC, txManager)
	orderHandler := v1.NewOrderHandler(orderUC)
	adminOrderHandler := v1.NewAdminOrderHandler(orderUC)

	// Payments
	gateway := razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayBaseURL)
	paymentUC := usecase.NewPaymentUsecase(gateway, orderRepo)
	paymentHandler := v1.NewPaymentHandler(paymentUC)

	// News
	newsUC := usecase.NewNewsUsecase(newsRepo, memCache, cfg)
	newsHandler := v1.NewNewsHandler(newsUC)
	adminNewsHandler := v1.NewAdminNewsHandler(newsUC)

	// Sitemap
	sitemapUC := usecase.NewSitemapUsecase(productRepo, cfg.FrontendURL, memCache, cfg)
	sitemapHandler := v1.NewSitemapHandler(sitemapUC)

	// Stats
	statsUC := usecase.NewStatsUsecase(statsRepo, memCache, cfg)
	adminStatsHandler := v1.NewAdminStatsHandler(statsUC)

	// --- Routes ---

	adminOnly := func(h http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(middleware.AdminMiddleware(h))
	}

	// Store settings (public)
	mux.HandleFunc("GET /api/v1/config", configHandler.GetStoreConfig)
	mux.HandleFunc("GET /api/v1/config/enums", configHandler.GetEnums)

	// Auth
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh", authHandler.Refresh)
	mux.HandleFunc("POST /api/v1/auth/logout", authHandler.Logout)
	mux.Handle("GET /api/v1/auth/me", middleware.AuthMiddleware(http.HandlerFunc(authHandler.Me)))
	mux.Handle("PUT /api/v1/user/profile", middleware.AuthMiddleware(http.HandlerFunc(authHandler.UpdateProfile)))

	// Catalog (public)
	mux.HandleFunc("GET /sitemap.xml", sitemapHandler.ServeHTTP)
	mux.HandleFunc("GET /api/v1/categories", catalogHandler.GetCategories)
	mux.HandleFunc("GET /api/v1/subcategories", catalogHandler.GetSubcategories)
	mux.HandleFunc("GET /api/v1/products", catalogHandler.ListProducts)
	mux.HandleFunc("GET /api/v1/products/{slug}", catalogHandler.GetProduct)
	mux.HandleFunc("GET /api/v1/search", searchHandler.Search)
	mux.HandleFunc("GET /api/v1/news", newsHandler.ListActive)

	// Cart (anonymous, token-based)
	mux.HandleFunc("POST /api/v1/cart", cartHandler.CreateCart)
	mux.HandleFunc("GET /api/v1/cart/{id}", cartHandler.GetCart)
	mux.HandleFunc("POST /api/v1/cart/{id}/items", cartHandler.AddItem)
	mux.HandleFunc("PUT /api/v1/cart/{id}/items/{sku}", cartHandler.SetQuantity)
	mux.HandleFunc("DELETE /api/v1/cart/{id}/items/{sku}", cartHandler.RemoveItem)
	mux.HandleFunc("DELETE /api/v1/cart/{id}", cartHandler.ClearCart)
	mux.HandleFunc("GET /api/v1/cart/{id}/quote", cartHandler.Quote)

	// Checkout & tracking (public)
	mux.HandleFunc("POST /api/v1/checkout", orderHandler.Checkout)
	mux.HandleFunc("GET /api/v1/orders/track/{ref}", orderHandler.Track)
	mux.HandleFunc("GET /api/v1/orders/my", orderHandler.MyOrders)

	// Payments (public: the widget drives these)
	mux.HandleFunc("POST /api/v1/payments/razorpay/order", paymentHandler.CreateGatewayOrder)
	mux.HandleFunc("POST /api/v1/payments/razorpay/verify", paymentHandler.VerifyPayment)

	// Uploads (back office)
	mux.Handle("POST /api/v1/upload", adminOnly(uploadHandler.UploadFile))
	mux.Handle("DELETE /api/v1/upload", adminOnly(uploadHandler.DeleteFile))

	// Admin: catalog
	mux.Handle("POST /api/v1/admin/products", adminOnly(adminCatalogHandler.CreateProduct))
	mux.Handle("PUT /api/v1/admin/products/{id}", adminOnly(adminCatalogHandler.UpdateProduct))
	mux.Handle("DELETE /api/v1/admin/products/{id}", adminOnly(adminCatalogHandler.DeleteProduct))
	mux.Handle("PATCH /api/v1/admin/products/{id}/stock", adminOnly(adminCatalogHandler.AdjustStock))

	mux.Handle("GET /api/v1/admin/categories", adminOnly(adminCatalogHandler.ListCategories))
	mux.Handle("POST /api/v1/admin/categories", adminOnly(adminCatalogHandler.CreateCategory))
	mux.Handle("PUT /api/v1/admin/categories/{id}", adminOnly(adminCatalogHandler.UpdateCategory))
	mux.Handle("DELETE /api/v1/admin/categories/{id}", adminOnly(adminCatalogHandler.DeleteCategory))

	mux.Handle("POST /api/v1/admin/subcategories", adminOnly(adminCatalogHandler.CreateSubcategory))
	mux.Handle("PUT /api/v1/admin/subcategories/{id}", adminOnly(adminCatalogHandler.UpdateSubcategory))
	mux.Handle("DELETE /api/v1/admin/subcategories/{id}", adminOnly(adminCatalogHandler.DeleteSubcategory))

	// Admin: orders
	mux.Handle("GET /api/v1/admin/orders", adminOnly(adminOrderHandler.ListOrders))
	mux.Handle("GET /api/v1/admin/orders/{id}", adminOnly(adminOrderHandler.GetOrder))
	mux.Handle("PATCH /api/v1/admin/orders/{id}/status", adminOnly(adminOrderHandler.UpdateStatus))
	mux.Handle("PATCH /api/v1/admin/orders/{id}/payment-status", adminOnly(adminOrderHandler.UpdatePaymentStatus))
	mux.Handle("PATCH /api/v1/admin/orders/{id}/delivery-charge", adminOnly(adminOrderHandler.SetDeliveryCharge))
	mux.Handle("GET /api/v1/admin/orders/{id}/history", adminOnly(adminOrderHandler.GetOrderHistory))

	// Admin: news
	mux.Handle("GET /api/v1/admin/news", adminOnly(adminNewsHandler.ListAll))
	mux.Handle("GET /api/v1/admin/news/{id}", adminOnly(adminNewsHandler.Get))
	mux.Handle("POST /api/v1/admin/news", adminOnly(adminNewsHandler.Create))
	mux.Handle("PUT /api/v1/admin/news/{id}", adminOnly(adminNewsHandler.Update))
	mux.Handle("DELETE /api/v1/admin/news/{id}", adminOnly(adminNewsHandler.Delete))

	// Admin: settings & stats
	mux.Handle("GET /api/v1/admin/config", adminOnly(adminConfigHandler.GetStoreConfig))
	mux.Handle("PUT /api/v1/admin/config", adminOnly(adminConfigHandler.UpdateStoreConfig))
	mux.Handle("PUT /api/v1/admin/config/delivery-rates", adminOnly(adminConfigHandler.UpdateDeliveryRates))

	mux.Handle("GET /api/v1/admin/stats/summary", adminOnly(adminStatsHandler.GetSummary))
	mux.Handle("GET /api/v1/admin/stats/daily-sales", adminOnly(adminStatsHandler.GetDailySales))
	mux.Handle("GET /api/v1/admin/stats/top-products", adminOnly(adminStatsHandler.GetTopProducts))

	mux.Handle("GET /api/v1/admin/users", adminOnly(authHandler.ListUsers))

	// Health
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler)

	addr := fmt.Sprintf(":%s", cfg.Port)

	// 50 req/s per IP, burst 100, cleanup every minute, TTL 3 minutes
	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		50,
		100,
		time.Minute,
		3*time.Minute,
	)

	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	log.Info().Msgf("Server starting on %s", addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	pgxPool.Close()
	log.Info().Msg("Server exited properly")
}
