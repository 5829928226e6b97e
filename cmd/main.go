package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pkbmadmin/internal/config"
	"pkbmadmin/internal/handlers"
	"pkbmadmin/internal/middleware"
	"pkbmadmin/internal/observability"
	"pkbmadmin/internal/repositories"
	"pkbmadmin/internal/rpc"
	"pkbmadmin/internal/services"
	"pkbmadmin/internal/storage"
	"pkbmadmin/internal/throttle"
	"pkbmadmin/pkg/database"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const version = "1.0.0"

func main() {
	migrateOnly := flag.Bool("migrate", false, "run the schema migration and exit")
	flag.Parse()

	cfg, err := config.Load()
	log := observability.NewLogger("info", "text")
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	log = observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}
	if cfg.UsingDefaultSalt() {
		log.Warn("AUTH_SECRET is not set, using the built-in password salt")
	}
	if cfg.JWTGenerated {
		log.Warn("JWT_SECRET is not set, using a generated secret; sessions will not survive a restart")
	}
	if cfg.AllowQuickLogin {
		log.Warn("Quick login is enabled for demo accounts")
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer pool.Close()

	metrics := observability.NewMetrics()
	hasher := services.NewPasswordHasher(cfg.AuthSecret)
	migrator := database.NewMigrator(pool, hasher.Hash, log, metrics)

	if *migrateOnly {
		if err := migrator.Run(ctx); err != nil {
			log.WithError(err).Error("Migration failed")
			pool.Close()
			os.Exit(1)
		}
		log.Info("Migration completed")
		return
	}

	store := repositories.NewStore(pool)

	var limiter services.LoginLimiter = throttle.NopLimiter{}
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = throttle.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		defer redisClient.Close()
		limiter = throttle.NewRedisLimiter(redisClient, cfg.Login.MaxAttempts, cfg.Login.Window)
	}

	var logos services.LogoStore
	if cfg.Minio.Enabled() {
		logoStore, err := storage.NewMinioLogoStore(ctx, cfg.Minio, log)
		if err != nil {
			log.WithError(err).Warn("Logo storage unavailable, uploads are disabled")
		} else {
			logos = logoStore
		}
	}

	sessions := services.NewSessionService(cfg.JWTSecret, cfg.SessionTTL)
	rbacService := services.NewRBACService(store.RolePermissions, store.Permissions, log)
	dashboardService := services.NewDashboardService(store, migrator, log)

	registry := rpc.NewRegistry(rpc.Services{
		Auth: services.NewAuthService(store.Users, store.Tenants, rbacService, hasher, sessions, limiter, services.AuthOptions{
			AllowQuickLogin: cfg.AllowQuickLogin,
			DefaultTenantID: cfg.DefaultTenantID,
		}, log),
		Dashboard: dashboardService,
		Users:     services.NewUserService(store, hasher),
		Students:  services.NewStudentService(store),
		Tutors:    services.NewTutorService(store, hasher),
		Academic:  services.NewAcademicService(store.Subjects, store.Lessons, store.Exams),
		Finance:   services.NewFinanceService(store.Payments),
		Reports:   services.NewReportService(store.Reports),
		Tenants:   services.NewTenantService(store.Tenants, logos),
		RBAC:      rbacService,
		Metrics:   metrics,
	})
	rpcHandlers := handlers.NewRPCHandlers(rpc.NewDispatcher(registry, log, metrics), dashboardService)

	var redisPinger handlers.Pinger
	if redisClient != nil {
		redisPinger = handlers.PingFunc(func(ctx context.Context) error { return redisClient.Ping(ctx).Err() })
	}
	healthHandlers := handlers.NewHealthHandlers(pool, redisPinger)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLogger(log))
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.BodyLimit("4M"))
	e.Use(middleware.SessionMiddleware(sessions, log))

	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	api := e.Group("/api")
	api.POST("/rpc", rpcHandlers.Call)
	api.GET("/migrate", rpcHandlers.Migrate)

	go func() {
		log.WithFields(logrus.Fields{"version": version, "port": cfg.Port, "env": cfg.AppEnv}).Info("PKBM admin server starting")
		if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
	log.Info("Server stopped")
}
