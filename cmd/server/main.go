package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/consignhq/backend/internal/application/billing"
	catalogapp "github.com/consignhq/backend/internal/application/catalog"
	consignmentapp "github.com/consignhq/backend/internal/application/consignment"
	financeapp "github.com/consignhq/backend/internal/application/finance"
	identityapp "github.com/consignhq/backend/internal/application/identity"
	storefrontapp "github.com/consignhq/backend/internal/application/storefront"
	tradeapp "github.com/consignhq/backend/internal/application/trade"
	"github.com/consignhq/backend/internal/domain/identity"
	"github.com/consignhq/backend/internal/infrastructure/auth"
	"github.com/consignhq/backend/internal/infrastructure/config"
	"github.com/consignhq/backend/internal/infrastructure/logger"
	"github.com/consignhq/backend/internal/infrastructure/persistence"
	"github.com/consignhq/backend/internal/infrastructure/telemetry"
	"github.com/consignhq/backend/internal/interfaces/http/handler"
	"github.com/consignhq/backend/internal/interfaces/http/middleware"
	"github.com/consignhq/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			ConsignHQ API
//	@version		1.0
//	@description	Multi-tenant consignment shop management API

//	@contact.name	API Support
//	@contact.email	support@consignhq.example.com

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting ConsignHQ backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Token blacklist backed by Redis; logout falls back to an
	// in-process blacklist when Redis is unreachable
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		defer func() {
			if err := redisBlacklist.Close(); err != nil {
				log.Error("Error closing Redis connection", zap.Error(err))
			}
		}()
		log.Info("Redis token blacklist connected")
	}

	// Tracing (if enabled)
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Initialize repositories
	orgRepo := persistence.NewGormOrganizationRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	consignorRepo := persistence.NewGormConsignorRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	txnRepo := persistence.NewGormTransactionRepository(db.DB)
	payoutRepo := persistence.NewGormPayoutRepository(db.DB)
	statementRepo := persistence.NewGormStatementRepository(db.DB)

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, identityapp.DefaultAuthServiceConfig(), log)
	orgService := identityapp.NewOrganizationService(orgRepo, userRepo, cfg.Billing.TrialDays, log)
	webhookService := billingapp.NewStripeWebhookService(cfg.Billing.StripeWebhookSecret, orgRepo, log)
	consignorService := consignmentapp.NewConsignorService(consignorRepo, txnRepo, log)
	itemService := catalogapp.NewItemService(itemRepo, consignorRepo, log)
	saleService := tradeapp.NewSaleService(txnRepo, itemRepo, log)
	payoutService := financeapp.NewPayoutService(payoutRepo, txnRepo, consignorRepo, log)
	statementService := financeapp.NewStatementService(statementRepo, payoutRepo, txnRepo, consignorRepo, log)
	storefrontService := storefrontapp.NewStorefrontService(orgRepo, itemRepo, log)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	orgHandler := handler.NewOrganizationHandler(orgService)
	webhookHandler := handler.NewStripeWebhookHandler(webhookService, log)
	consignorHandler := handler.NewConsignorHandler(consignorService)
	itemHandler := handler.NewItemHandler(itemService)
	saleHandler := handler.NewSaleHandler(saleService)
	payoutHandler := handler.NewPayoutHandler(payoutService)
	statementHandler := handler.NewStatementHandler(statementService)
	storefrontHandler := handler.NewStorefrontHandler(storefrontService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing - OTEL spans (if enabled)
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if tracerProvider.IsEnabled() {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Swagger documentation endpoint
	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes.
	// Public surface: login/refresh, organization signup, the Stripe
	// webhook, the storefront, and system probes.
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/organizations",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		SkipPathPrefixes: []string{
			"/api/v1/shops",
			"/api/v1/billing/stripe",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Auth routes, with a tighter per-IP rate limit on credential endpoints
	authRoutes := router.NewDomainGroup("auth", "/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRoutes.Use(middleware.RateLimitByKey(authLimiter, func(c *gin.Context) string {
			return "auth:" + c.ClientIP()
		}))
	}
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.GetCurrentUser)
	authRoutes.PUT("/password", authHandler.ChangePassword)

	// Organization signup is the one unauthenticated POST
	signupRoutes := router.NewDomainGroup("signup", "/organizations")
	signupRoutes.POST("", orgHandler.Register)

	// Organization management, owner only
	orgRoutes := router.NewDomainGroup("organization", "/organization")
	orgRoutes.Use(middleware.RequireOwner())
	orgRoutes.GET("", orgHandler.GetCurrent)
	orgRoutes.PUT("", orgHandler.Update)
	orgRoutes.PUT("/subscription", orgHandler.ChangeTier)

	// Staff accounts, owner only
	userRoutes := router.NewDomainGroup("users", "/users")
	userRoutes.Use(middleware.RequireOwner())
	userRoutes.POST("", orgHandler.CreateUser)
	userRoutes.GET("", orgHandler.ListUsers)
	userRoutes.POST("/:id/deactivate", orgHandler.DeactivateUser)

	// Consignment domain
	consignorRoutes := router.NewDomainGroup("consignment", "/consignors")
	consignorRoutes.Use(middleware.RequireStaff())
	consignorRoutes.POST("", consignorHandler.Create)
	consignorRoutes.GET("", consignorHandler.List)
	consignorRoutes.GET("/code/:code", consignorHandler.GetByCode)
	consignorRoutes.GET("/:id", consignorHandler.GetByID)
	consignorRoutes.PUT("/:id", consignorHandler.Update)
	consignorRoutes.DELETE("/:id", consignorHandler.Delete)
	consignorRoutes.POST("/:id/approve", consignorHandler.Approve)
	consignorRoutes.POST("/:id/reject", consignorHandler.Reject)
	consignorRoutes.POST("/:id/activate", consignorHandler.Activate)
	consignorRoutes.POST("/:id/deactivate", consignorHandler.Deactivate)
	consignorRoutes.POST("/:id/close", consignorHandler.Close)
	consignorRoutes.GET("/:id/unpaid-sales", saleHandler.ListUnpaid)

	// Statements hang off the consignor but are Pro-gated
	requirePro := middleware.RequireTier(orgRepo, identity.TierPro, log)
	consignorRoutes.POST("/:id/statements", requirePro, statementHandler.Generate)
	consignorRoutes.GET("/:id/statements", requirePro, statementHandler.ListByConsignor)
	consignorRoutes.GET("/:id/statements/period", requirePro, statementHandler.GetByPeriod)

	// Catalog domain
	itemRoutes := router.NewDomainGroup("catalog", "/items")
	itemRoutes.Use(middleware.RequireStaff())
	itemRoutes.POST("", itemHandler.Create)
	itemRoutes.GET("", itemHandler.List)
	itemRoutes.GET("/sku/:sku", itemHandler.GetBySKU)
	itemRoutes.GET("/:id", itemHandler.GetByID)
	itemRoutes.PUT("/:id", itemHandler.Update)
	itemRoutes.POST("/:id/remove", itemHandler.Remove)
	itemRoutes.POST("/:id/relist", itemHandler.Relist)

	// Trade domain
	saleRoutes := router.NewDomainGroup("trade", "/sales")
	saleRoutes.Use(middleware.RequireStaff())
	saleRoutes.POST("", saleHandler.RecordSale)
	saleRoutes.GET("", saleHandler.List)
	saleRoutes.GET("/number/:number", saleHandler.GetByNumber)
	saleRoutes.GET("/:id", saleHandler.GetByID)

	// Finance domain, Pro tier and up; ledger sync needs Enterprise
	payoutRoutes := router.NewDomainGroup("finance", "/payouts")
	payoutRoutes.Use(middleware.RequireStaff(), requirePro)
	payoutRoutes.POST("", payoutHandler.Create)
	payoutRoutes.GET("", payoutHandler.List)
	payoutRoutes.GET("/number/:number", payoutHandler.GetByNumber)
	payoutRoutes.GET("/:id", payoutHandler.GetByID)
	payoutRoutes.GET("/:id/transactions", payoutHandler.ListTransactions)
	payoutRoutes.POST("/:id/process", payoutHandler.StartProcessing)
	payoutRoutes.POST("/:id/pay", payoutHandler.MarkPaid)
	payoutRoutes.POST("/:id/cancel", payoutHandler.Cancel)
	payoutRoutes.POST("/:id/ledger-sync",
		middleware.RequireTier(orgRepo, identity.TierEnterprise, log),
		payoutHandler.MarkSyncedToLedger)

	statementRoutes := router.NewDomainGroup("statements", "/statements")
	statementRoutes.Use(middleware.RequireStaff(), requirePro)
	statementRoutes.GET("/:id", statementHandler.GetByID)

	// Billing webhook, authenticated by Stripe signature instead of JWT
	billingRoutes := router.NewDomainGroup("billing", "/billing")
	billingRoutes.POST("/stripe/webhook", webhookHandler.HandleWebhook)

	// Public storefront
	shopRoutes := router.NewDomainGroup("storefront", "/shops")
	shopRoutes.GET("/:slug", storefrontHandler.GetShop)
	shopRoutes.GET("/:slug/items", storefrontHandler.ListItems)
	shopRoutes.GET("/:slug/items/:id", storefrontHandler.GetItem)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(authRoutes).
		Register(signupRoutes).
		Register(orgRoutes).
		Register(userRoutes).
		Register(consignorRoutes).
		Register(itemRoutes).
		Register(saleRoutes).
		Register(payoutRoutes).
		Register(statementRoutes).
		Register(billingRoutes).
		Register(shopRoutes).
		Register(systemRoutes)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
