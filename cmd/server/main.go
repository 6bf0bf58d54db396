package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/tinymillion/backend/docs"
	cartapp "github.com/tinymillion/backend/internal/application/cart"
	catalogapp "github.com/tinymillion/backend/internal/application/catalog"
	eventapp "github.com/tinymillion/backend/internal/application/event"
	identityapp "github.com/tinymillion/backend/internal/application/identity"
	marketingapp "github.com/tinymillion/backend/internal/application/marketing"
	orderapp "github.com/tinymillion/backend/internal/application/order"
	storefrontapp "github.com/tinymillion/backend/internal/application/storefront"
	"github.com/tinymillion/backend/internal/domain/shared"
	"github.com/tinymillion/backend/internal/infrastructure/auth"
	"github.com/tinymillion/backend/internal/infrastructure/cache"
	"github.com/tinymillion/backend/internal/infrastructure/config"
	"github.com/tinymillion/backend/internal/infrastructure/event"
	"github.com/tinymillion/backend/internal/infrastructure/logger"
	"github.com/tinymillion/backend/internal/infrastructure/payment"
	"github.com/tinymillion/backend/internal/infrastructure/persistence"
	"github.com/tinymillion/backend/internal/infrastructure/storage"
	"github.com/tinymillion/backend/internal/infrastructure/telemetry"
	"github.com/tinymillion/backend/internal/interfaces/http/handler"
	"github.com/tinymillion/backend/internal/interfaces/http/middleware"
	"github.com/tinymillion/backend/internal/interfaces/http/router"
)

//	@title			TinyMillion Storefront API
//	@version		1.0
//	@description	Storefront backend: catalog, carts, orders with Stripe and Razorpay payments, and curated mini stores.

//	@BasePath	/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

const (
	serviceVersion  = "1.0.0"
	shutdownTimeout = 30 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx := context.Background()

	telemetryCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    serviceVersion,
		Insecure:          cfg.Telemetry.Insecure,
	}

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer shutdown(log, "tracer provider", tracerProvider.Shutdown)

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer shutdown(log, "meter provider", meterProvider.Shutdown)

	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	defer shutdown(log, "logger provider", loggerProvider.Shutdown)
	if loggerProvider.IsEnabled() {
		log = logger.WithOTel(log, loggerProvider.ZapCore(logger.ParseLevel(cfg.Log.Level)))
	}

	log.Info("Starting TinyMillion backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database, log,
		persistence.WithLogLevel(logger.MapGormLogLevel(cfg.Log.Level)),
		persistence.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
		persistence.WithTracing(telemetry.DBTracingConfig{
			Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
			DBName:          cfg.Database.DBName,
		}),
	)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Redis backs the token blacklist, webhook de-duplication and the sitemap
	// cache; without it each falls back to process memory.
	caches, err := cache.NewFactory(ctx, cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.App.IsProduction()),
	)
	if err != nil {
		log.Fatal("Failed to initialize cache", zap.Error(err))
	}
	defer func() {
		if err := caches.Close(); err != nil {
			log.Error("Error closing cache", zap.Error(err))
		}
	}()

	var blacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	if caches.UsesRedis() {
		blacklist = auth.NewRedisTokenBlacklist(caches.Client())
	}

	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	storeRepo := persistence.NewGormMiniStoreRepository(db.DB)
	subscriberRepo := persistence.NewGormSubscriberRepository(db.DB)

	var uploader catalogapp.ImageUploader = storage.NewStubImageUploader()
	if cfg.Storage.Enabled() {
		s3Uploader, err := storage.NewS3ImageUploader(ctx, cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize image storage", zap.Error(err))
		}
		if err := s3Uploader.EnsureBucket(ctx); err != nil {
			log.Warn("Image bucket check failed", zap.Error(err))
		}
		uploader = s3Uploader
	} else {
		log.Warn("Image storage not configured, uploads are kept as placeholder URLs")
	}

	stripeGateway := payment.NewStripeGateway(cfg.Stripe, log)
	razorpayGateway := payment.NewRazorpayGateway(cfg.Razorpay, log)

	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(eventapp.NewOrderAuditHandler(log))

	if cfg.Messaging.Enabled() {
		serializer := event.NewEventSerializer(cfg.App.Name)
		event.RegisterStoreEvents(serializer)
		publisher, err := event.NewAMQPPublisher(cfg.Messaging.AMQPURL, cfg.Messaging.Exchange, serializer, log)
		if err != nil {
			log.Fatal("Failed to connect to message broker", zap.Error(err))
		}
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Error("Error closing message broker connection", zap.Error(err))
			}
		}()
		forwarder := event.NewIdempotentHandler(
			eventapp.NewIntegrationForwarder(publisher, log),
			caches.IdempotencyStore("events:forwarded:"),
			log,
			event.WithIdempotencyConfig(shared.IdempotencyConfig{TTL: cfg.Messaging.DedupTTL, Enabled: true}),
		)
		eventBus.Subscribe(forwarder)
		log.Info("Integration events forwarded", zap.String("exchange", cfg.Messaging.Exchange))
	}

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	storeMetrics, err := telemetry.NewStoreMetrics(meterProvider.Meter("tinymillion/store"))
	if err != nil {
		log.Fatal("Failed to create store metrics", zap.Error(err))
	}
	if err := telemetry.ObserveDBPool(meterProvider.Meter("tinymillion/db"), db.PoolStats); err != nil {
		log.Warn("Database pool metrics unavailable", zap.Error(err))
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	authService := identityapp.NewAuthService(identityapp.AuthServiceConfig{
		Users:     userRepo,
		Tokens:    jwtService,
		Blacklist: blacklist,
		Admin:     cfg.Admin,
		Events:    eventBus,
		Logger:    log,
	})
	productService := catalogapp.NewProductService(productRepo, uploader, eventBus, log)
	cartService := cartapp.NewCartService(userRepo, log)
	orderService := orderapp.NewOrderService(orderapp.OrderServiceConfig{
		Orders:      orderRepo,
		Products:    productRepo,
		Stripe:      stripeGateway,
		Razorpay:    razorpayGateway,
		Deliveries:  caches.IdempotencyStore("webhook:delivered:"),
		DeliveryTTL: cfg.Messaging.WebhookDedupTTL,
		Events:      eventBus,
		Metrics:     storeMetrics,
		FrontendURL: cfg.App.FrontendURL,
		Currency:    cfg.Stripe.Currency,
		Logger:      log,
	})
	storeService := storefrontapp.NewStoreService(storefrontapp.StoreServiceConfig{
		Stores: storeRepo,
		Users:  userRepo,
		Orders: orderRepo,
		Events: eventBus,
		Logger: log,
	})
	subAdminService := storefrontapp.NewSubAdminService(storefrontapp.SubAdminServiceConfig{
		Users:    userRepo,
		Stores:   storeRepo,
		Products: productRepo,
		Orders:   orderRepo,
		Tokens:   jwtService,
		Uploader: uploader,
		Events:   eventBus,
		Logger:   log,
	})
	newsletterService := marketingapp.NewNewsletterService(subscriberRepo, log)
	seoService := marketingapp.NewSEOService(productRepo, caches.TextCache(), cfg.App.BaseURL, log)

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Order matters: the request id and recovery wrap everything, tracing
	// starts before the logger so log lines carry the trace id.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
		SkipPaths:   []string{"/health", "/api/health"},
	}))
	engine.Use(middleware.SpanEnricher())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		Enabled:       cfg.Telemetry.Enabled,
		Logger:        log,
	}))

	securityCfg := middleware.DefaultSecurityConfig()
	securityCfg.HSTSEnabled = cfg.App.IsProduction()
	engine.Use(middleware.SecureWithConfig(securityCfg))

	allowOrigins := cfg.HTTP.CORSAllowOrigins
	if cfg.App.FrontendURL != "" {
		allowOrigins = append(allowOrigins, cfg.App.FrontendURL)
	}
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     allowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		AllowLocalhost:   cfg.HTTP.CORSAllowLocalhost && !cfg.App.IsProduction(),
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Stop()
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	authCfg := middleware.AuthConfig{
		Tokens:    jwtService,
		Blacklist: blacklist,
		Users:     userRepo,
		Logger:    log,
	}
	guards := router.Guards{
		Auth:     middleware.AuthUser(authCfg),
		Admin:    middleware.AdminOnly(authCfg),
		SubAdmin: middleware.SubAdminOnly(authCfg),
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		defer authLimiter.Stop()
		guards.AuthLimit = middleware.AuthRateLimiter(authLimiter)
	}

	handlers := router.Handlers{
		System:     handler.NewSystemHandler(),
		SEO:        handler.NewSEOHandler(seoService),
		User:       handler.NewUserHandler(authService),
		Product:    handler.NewProductHandler(productService),
		Cart:       handler.NewCartHandler(cartService),
		Order:      handler.NewOrderHandler(orderService),
		Newsletter: handler.NewNewsletterHandler(newsletterService),
		MiniStore:  handler.NewMiniStoreHandler(storeService),
		SubAdmin:   handler.NewSubAdminHandler(subAdminService),
		Webhook:    handler.NewWebhookHandler(orderService),
	}
	if cfg.Swagger.Enabled {
		handlers.Docs = ginSwagger.WrapHandler(swaggerFiles.Handler)
		guards.Docs = middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		}, guards.Admin)
	}
	router.Mount(engine, handlers, guards)

	logPaymentSetup(log, cfg)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

// logPaymentSetup reports which payment paths are live. Secrets are masked.
func logPaymentSetup(log *zap.Logger, cfg *config.Config) {
	log.Info("Payment configuration",
		zap.Bool("stripe", cfg.Stripe.Enabled()),
		zap.Bool("stripe_webhook", cfg.Stripe.WebhookSecret != ""),
		zap.Bool("razorpay", cfg.Razorpay.Enabled()),
		zap.String("razorpay_key", payment.Mask(cfg.Razorpay.KeyID)),
		zap.Bool("razorpay_webhook", cfg.Razorpay.WebhookSecret != ""),
	)
	if !cfg.Admin.Configured() {
		log.Warn("Admin credentials not configured, admin login is disabled")
	}
}

func shutdown(log *zap.Logger, name string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		log.Error("Error shutting down "+name, zap.Error(err))
	}
}
