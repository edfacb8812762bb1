package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/aryant0/mithila-bazaar/external/abstractapi"
	"github.com/aryant0/mithila-bazaar/external/catalogapi"
	"github.com/aryant0/mithila-bazaar/external/resend"

	"github.com/aryant0/mithila-bazaar/internal/config"
	"github.com/aryant0/mithila-bazaar/internal/db"
	"github.com/aryant0/mithila-bazaar/internal/events"
	"github.com/aryant0/mithila-bazaar/internal/middleware"
	"github.com/aryant0/mithila-bazaar/internal/repository"
	"github.com/aryant0/mithila-bazaar/internal/services"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
)

const storeTimeZone = "Asia/Kolkata"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	config.SetupLogging(cfg.LogLevel)

	loc, err := time.LoadLocation(storeTimeZone)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ======================
	// INFRA
	// ======================
	var redisClient *redis.Client
	if cfg.CartStore == config.CartStoreRedis {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatalf("redis ping: %v", err)
		}
	}

	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatal(err)
		}
		pool, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pool.Close()
	}

	var amqpConn *amqp.Connection
	if cfg.OrderDispatch == config.DispatchQueue {
		amqpConn, err = amqp.Dial(cfg.RabbitMQURL)
		if err != nil {
			log.Fatalf("rabbitmq dial: %v", err)
		}
		defer amqpConn.Close()
	}

	profile, err := config.LoadStoreProfile(cfg.StoreProfilePath)
	if err != nil {
		log.Fatal(err)
	}

	// ======================
	// EXTERNALS
	// ======================
	var catalogSource services.CatalogSource
	if cfg.CatalogSource == config.CatalogSourceRemote {
		catalogSource = catalogapi.NewClient(cfg.CatalogBaseURL, cfg.CatalogAuthToken, cfg.CatalogTimeout)
	} else {
		catalogSource = catalogapi.NewMock()
	}

	var emailValidator services.EmailValidator
	if cfg.UseEmailReputation {
		emailValidator, err = abstractapi.NewAbstractReputationValidator(cfg.AbstractEmailAPIKey)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		emailValidator = services.NewLocalValidator()
	}

	mailer := resend.NewResendMailer(cfg.ResendAPIKey, cfg.OrderEmailFrom)

	// ======================
	// REPOSITORIES
	// ======================
	productRepo := repository.NewProductRepository()

	var cartRepo repository.CartRepository
	var visitorRepo repository.VisitorRepository
	if redisClient != nil {
		cartRepo = repository.NewRedisCartRepository(redisClient, cfg.CartTTL)
		visitorRepo = repository.NewRedisVisitorRepository(redisClient)
	} else {
		cartRepo = repository.NewMemoryCartRepository()
		visitorRepo = repository.NewMemoryVisitorRepository()
	}

	var orderLog *repository.OrderLogRepository
	var orderHistoryRepo orderHistory
	if pool != nil {
		orderLog = repository.NewOrderLogRepository(pool)
		orderHistoryRepo = orderLog
	}

	// ======================
	// SERVICES
	// ======================
	browser := services.NewProductBrowser(catalogSource, productRepo, cfg.CategoryAxis, cfg.CategoryCacheTTL)
	defer browser.Close()

	cartSvc := services.NewCartService(cartRepo, browser)

	var dispatcher services.OrderDispatcher
	switch cfg.OrderDispatch {
	case config.DispatchEmail:
		to := cfg.OrderEmailTo
		if to == "" {
			to = profile.OrderEmail
		}
		if !mailer.Configured() {
			slog.Warn("RESEND_API_KEY not set; checkout will fail until it is configured")
		}
		dispatcher = services.NewEmailDispatcher(mailer, to, loc)
	case config.DispatchQueue:
		pub, err := events.NewPublisher(amqpConn)
		if err != nil {
			log.Fatal(err)
		}
		defer pub.Close()
		dispatcher = services.NewQueueDispatcher(pub)
	default:
		dispatcher = services.NewLogDispatcher(orderLog)
	}

	orderSvc := services.NewOrderService(cartSvc, dispatcher, emailValidator, profile.WhatsAppNumber, loc)
	importSvc := services.NewImportService(productRepo)
	visitorSvc := services.NewVisitorService(visitorRepo, loc)

	adminSvc, err := services.NewAdminAuthService(cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		log.Fatal(err)
	}

	tokens := middleware.NewTokenManager(cfg.JWTSecret, middleware.AdminTokenTTL)
	defer tokens.Close()

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api", middleware.Session(visitorSvc))

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerProductRoutes(api, browser)
	registerSearchSocketRoutes(api, browser, cfg.SearchDebounce)
	registerCartRoutes(api, cartSvc)
	registerCheckoutRoutes(api, orderSvc)
	registerAdminRoutes(api, tokens, adminSvc, importSvc, browser, visitorSvc, orderHistoryRepo)
	registerStoreRoutes(api, profile)

	// ======================
	// SERVER
	// ======================
	for _, r := range e.Routes() {
		slog.Debug("Route registered", "method", r.Method, "path", r.Path)
	}

	go func() {
		slog.Info("Starting server", "port", cfg.Port, "catalog", cfg.CatalogSource, "cart_store", cfg.CartStore, "dispatch", dispatcher.Name())
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
		os.Exit(1)
	}
}
