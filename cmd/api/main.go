package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-inventory-ledger/internal/cache"
	"go-inventory-ledger/internal/config"
	"go-inventory-ledger/internal/logger"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/internal/router"
	"go-inventory-ledger/internal/service"
	"go-inventory-ledger/internal/ws"
	"go-inventory-ledger/pkg/database"
	"go-inventory-ledger/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	// 1. Load config
	cfg, dotenv, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer log.Sync() //nolint:errcheck
	if !dotenv {
		log.Warn(".env file not found, relying on process environment")
	}

	// 2. Setup database
	db, err := database.ConnectDB(database.Options{
		DSN:           cfg.DSN(),
		LogLevel:      cfg.LogLevel,
		SlowThreshold: 200 * time.Millisecond,
	}, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	// 3. Seed default privileges, roles, and admin user
	if err := service.Seed(userRepo, roleRepo, privilegeRepo, log, service.SeedOptions{
		AdminEmail:    cfg.SeedAdminEmail,
		AdminPassword: cfg.SeedAdminPassword,
	}); err != nil {
		log.Warn("seeding incomplete", zap.Error(err))
	}

	// 4. Dashboard cache and WebSocket hub
	var dashCache cache.Cache = cache.NoopCache{}
	if cfg.CacheEnabled() {
		rc := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rc.Ping(ctx); err != nil {
			log.Warn("redis unavailable, dashboard cache disabled", zap.String("addr", cfg.RedisAddr), zap.Error(err))
			_ = rc.Close()
		} else {
			dashCache = rc
			defer rc.Close()
		}
		cancel()
	}

	wsHub := ws.NewHub(log)
	go wsHub.Run()

	// 5. Dependency injection
	tokens := jwt.NewManager(cfg.JWTSecret, cfg.JWTTTL)
	repos := repository.NewRepositories(db)

	deps := router.Deps{
		Auth:      service.NewAuthService(userRepo, tokens, wsHub, log, service.AuthOptions{IdleTimeout: cfg.SessionIdleTimeout}),
		Users:     service.NewUserService(userRepo, privilegeRepo, roleRepo),
		Products:  service.NewProductService(repos.Products, log),
		Suppliers: service.NewSupplierService(repos.Suppliers, log),
		Ledger: service.NewLedgerService(repository.NewUnitOfWork(db), repos, wsHub, dashCache, log,
			service.LedgerOptions{AuditPurchases: cfg.LedgerAuditPurchases}),
		Dashboard: service.NewDashboardService(repository.NewAnalyticsRepo(db), dashCache, log,
			service.DashboardOptions{LowStockThreshold: cfg.LowStockThreshold, CacheTTL: cfg.DashboardCacheTTL}),
		Roles:      roleRepo,
		Privileges: privilegeRepo,
		Hub:        wsHub,
	}

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// 7. Routes
	router.Setup(app, deps)

	// 8. Graceful shutdown
	go func() {
		if err := app.Listen(cfg.Address()); err != nil {
			log.Panic("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}
	log.Info("server exited")
}
