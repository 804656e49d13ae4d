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
	catalogapp "github.com/stockpile/backend/internal/application/catalog"
	"github.com/stockpile/backend/internal/application/crud"
	identityapp "github.com/stockpile/backend/internal/application/identity"
	partnerapp "github.com/stockpile/backend/internal/application/partner"
	"github.com/stockpile/backend/internal/application/projection"
	purchasingapp "github.com/stockpile/backend/internal/application/purchasing"
	"github.com/stockpile/backend/internal/application/validation"
	"github.com/stockpile/backend/internal/domain/identity"
	"github.com/stockpile/backend/internal/domain/shared"
	"github.com/stockpile/backend/internal/infrastructure/auth"
	"github.com/stockpile/backend/internal/infrastructure/cache"
	"github.com/stockpile/backend/internal/infrastructure/config"
	"github.com/stockpile/backend/internal/infrastructure/logger"
	"github.com/stockpile/backend/internal/infrastructure/persistence"
	"github.com/stockpile/backend/internal/infrastructure/telemetry"
	"github.com/stockpile/backend/internal/interfaces/http/handler"
	"github.com/stockpile/backend/internal/interfaces/http/middleware"
	"github.com/stockpile/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const revocationKeyPrefix = "stockpile:revoked:"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	baseLog, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()
	providers, err := telemetry.Setup(ctx, cfg.Telemetry, cfg.Profiling, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	log := providers.Logs.Bridge(baseLog, logger.ParseLevel(cfg.Log.Level))
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting stockpile backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(cfg.Database, persistence.Options{
		Logger:         log,
		LogLevel:       logger.MapGormLogLevel(cfg.Log.Level),
		SlowThreshold:  cfg.Telemetry.DBSlowQueryThresh,
		ConnectTimeout: 30 * time.Second,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBName:          cfg.Database.DBName,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully")

	store, err := cache.NewStoreFactory(cfg.Cache, cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.IsProduction()),
	).Create(ctx)
	if err != nil {
		log.Fatal("Failed to initialize permission cache", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing cache store", zap.Error(err))
		}
	}()

	var revoked auth.RevocationList = auth.NewMemoryRevocationList()
	if store.Client != nil {
		revoked = auth.NewRedisRevocationList(store.Client, revocationKeyPrefix)
	}

	// Identity
	roleRepo := persistence.NewGormRoleRepository(db.DB)
	permissionRepo := persistence.NewGormPermissionRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	registry := identityapp.NewRegistry(store.SnapshotStore, identityapp.NewRepositoryLoader(roleRepo, permissionRepo),
		identityapp.WithRegistryLogger(log),
		identityapp.WithMeter(providers.Meter.Meter("stockpile/permission-cache")),
	)
	invalidator := identityapp.NewCacheInvalidator(registry, log)
	authorizer := identityapp.NewAuthorizer(registry, userRepo)
	roleService := identityapp.NewRoleService(roleRepo, permissionRepo, userRepo, log, invalidator)
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, authorizer, jwtService, revoked, log)

	resources := newResources(db.DB, log, invalidator)

	middleware.SetupValidator()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine, err := router.NewEngine(router.EngineConfig{
		Config: cfg,
		Logger: log,
		Meter:  providers.Meter.Meter("stockpile/http"),
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	auths := []gin.HandlerFunc{middleware.JWTAuth(middleware.JWTConfig{
		JWTService: jwtService,
		Revoked:    revoked,
		Logger:     log,
	})}
	if cfg.Telemetry.Enabled {
		auths = append(auths, middleware.SpanAttributes())
	}

	api := router.API{
		Health: handler.NewHealthHandler(cfg.App.Name,
			handler.HealthCheck{Name: "database", Pinger: db},
			handler.HealthCheck{Name: "cache", Pinger: store},
		),
		Auth:        handler.NewAuthHandler(authService),
		Roles:       handler.NewRoleHandler(roleService, authorizer, identity.DefaultGuard),
		Resources:   resources,
		Permissions: middleware.NewPermissions(authorizer, identity.DefaultGuard, log),
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		api.LoginLimit = middleware.RateLimit(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
	}
	router.NewRouter(engine, router.WithAPIVersion("v1"), router.WithAuth(auths...)).
		Mount(api).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Warn("Telemetry shutdown incomplete", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}

// newResources builds the CRUD service of every administered resource in
// route order. Role and permission writes clear the permission cache.
func newResources(db *gorm.DB, log *zap.Logger, invalidator crud.Hook) []router.Resource {
	v := validation.New(persistence.NewGormRecordChecker(db))
	refs := persistence.NewGormRefResolver(db)

	return []router.Resource{
		{Prefix: "/brands", Service: service(catalogapp.BrandDefinition(), persistence.NewBrandRepository(db), v, refs, log)},
		{Prefix: "/categories", Service: service(catalogapp.CategoryDefinition(), persistence.NewCategoryRepository(db), v, refs, log)},
		{Prefix: "/sub-categories", Service: service(catalogapp.SubCategoryDefinition(), persistence.NewSubCategoryRepository(db), v, refs, log)},
		{Prefix: "/models", Service: service(catalogapp.ModelDefinition(), persistence.NewModelRepository(db), v, refs, log)},
		{Prefix: "/units", Service: service(catalogapp.UnitDefinition(), persistence.NewUnitRepository(db), v, refs, log)},
		{Prefix: "/products", Service: service(catalogapp.ProductDefinition(), persistence.NewProductRepository(db), v, refs, log)},
		{Prefix: "/lookups", Service: service(catalogapp.LookupDefinition(), persistence.NewLookupRepository(db), v, refs, log)},
		{Prefix: "/companies", Service: service(partnerapp.CompanyDefinition(), persistence.NewCompanyRepository(db), v, refs, log)},
		{Prefix: "/stores", Service: service(partnerapp.StoreDefinition(), persistence.NewStoreRepository(db), v, refs, log)},
		{Prefix: "/locations", Service: service(partnerapp.LocationDefinition(), persistence.NewLocationRepository(db), v, refs, log)},
		{Prefix: "/purchase-prices", Service: service(purchasingapp.PurchasePriceDefinition(), persistence.NewPurchasePriceRepository(db), v, refs, log)},
		{Prefix: "/customer-contacts", Service: service(partnerapp.CustomerContactDefinition(), persistence.NewCustomerContactRepository(db), v, refs, log)},
		{Prefix: "/roles", Service: service(identityapp.RoleDefinition(), persistence.NewGormRoleRepository(db), v, refs, log, invalidator)},
		{Prefix: "/permissions", Service: service(identityapp.PermissionDefinition(), persistence.NewGormPermissionRepository(db), v, refs, log, invalidator)},
	}
}

func service[T any](
	def crud.Definition[T],
	repo shared.Repository[T],
	v *validation.Validator,
	refs projection.RefResolver,
	log *zap.Logger,
	hooks ...crud.Hook,
) *crud.Service[T] {
	return crud.NewService(def, repo, v, refs, crud.WithLogger[T](log), crud.WithHooks[T](hooks...))
}
