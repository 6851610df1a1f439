// Package v1 provides HTTP API version 1.
package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"medstock/internal/core/entity"
	"medstock/internal/core/id"
	"medstock/internal/domain"
	"medstock/internal/domain/auth"
	"medstock/internal/domain/catalogs/manufacturer"
	"medstock/internal/domain/catalogs/medicine"
	"medstock/internal/domain/ledger"
	"medstock/internal/domain/reports"
	"medstock/internal/infrastructure/http/v1/handlers"
	"medstock/internal/infrastructure/http/v1/middleware"
	"medstock/internal/infrastructure/storage/postgres"
	"medstock/internal/infrastructure/storage/postgres/catalog_repo"
	"medstock/internal/infrastructure/storage/postgres/ledger_repo"
	"medstock/internal/infrastructure/storage/postgres/report_repo"
	"medstock/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks)
	Pool *postgres.Pool

	// TxManager coordinates database transactions
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	// Audit records catalog mutations and ledger writes (optional)
	Audit *postgres.AuditService
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	api := router.Group("/api/v1")
	{
		registerAuthRoutes(api, cfg)

		// Protected endpoints: every record is scoped to the token's user
		protected := api.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		registerCatalogRoutes(protected, cfg)
		registerLedgerRoutes(protected, cfg)
		registerReportRoutes(protected, cfg)
	}

	return router
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	// Public auth endpoints (no JWT required)
	publicAuth := rg.Group("/auth")

	// Protected auth endpoints (JWT required)
	protectedAuth := rg.Group("/auth")
	protectedAuth.Use(middleware.Auth(cfg.JWTValidator))

	authHandler.RegisterRoutes(publicAuth, protectedAuth)
}

// registerCatalogRoutes registers catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	// --- MANUFACTURERS ---
	{
		repo := catalog_repo.NewManufacturerRepo(cfg.TxManager)
		service := manufacturer.NewService(repo, cfg.TxManager)

		if cfg.Audit != nil {
			registerAuditHooks(service.Hooks(), cfg.Audit, "manufacturer",
				func(m *manufacturer.Manufacturer) (id.ID, map[string]any) {
					return m.ID, postgres.StructToMap(m)
				})
		}

		handler := handlers.NewManufacturerHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/manufacturers"), handler)
	}

	// --- MEDICINES ---
	{
		repo := catalog_repo.NewMedicineRepo(cfg.TxManager)
		service := medicine.NewService(repo, cfg.TxManager)

		if cfg.Audit != nil {
			registerAuditHooks(service.Hooks(), cfg.Audit, "medicine",
				func(m *medicine.Medicine) (id.ID, map[string]any) {
					return m.ID, postgres.StructToMap(m)
				})
		}

		handler := handlers.NewMedicineHandler(baseHandler, service)

		group := catalogs.Group("/medicines")
		// Fixed paths must be registered before the :id wildcard.
		group.GET("/summary", handler.Summary)
		group.GET("/by-code/:code", handler.GetByCode)
		RegisterCatalogRoutes(group, handler)
	}
}

// registerAuditHooks attaches audit logging to a catalog service lifecycle.
// After-hooks run outside the write transaction; failures are logged by the
// service and never surfaced to the caller.
func registerAuditHooks[T entity.Validatable](
	hooks *domain.HookRegistry[T],
	audit *postgres.AuditService,
	entityType string,
	snapshot func(T) (id.ID, map[string]any),
) {
	record := func(action postgres.AuditAction) domain.Hook[T] {
		return func(ctx context.Context, ent T) error {
			entityID, state := snapshot(ent)
			return audit.LogChange(ctx, entityType, entityID, action, state)
		}
	}

	hooks.OnAfterCreate(record(postgres.AuditActionCreate))
	hooks.OnAfterUpdate(record(postgres.AuditActionUpdate))
	hooks.OnAfterDelete(record(postgres.AuditActionDelete))
}

// registerLedgerRoutes registers transaction endpoints.
func registerLedgerRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	ledgerRepo := ledger_repo.NewLedgerRepo(cfg.TxManager)
	medicineRepo := catalog_repo.NewMedicineRepo(cfg.TxManager)
	service := ledger.NewService(ledgerRepo, medicineRepo, cfg.TxManager)
	if cfg.Audit != nil {
		service.OnRecorded(func(ctx context.Context, txn *ledger.Transaction) error {
			return cfg.Audit.LogChange(ctx, "transaction", txn.ID,
				postgres.AuditActionRecord, postgres.StructToMap(txn))
		})
	}
	handler := handlers.NewLedgerHandler(baseHandler, service)

	group := rg.Group("/transactions")
	group.POST("", handler.Record)
	group.GET("", handler.List)
	group.GET("/recent", handler.Recent)
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	medicineRepo := catalog_repo.NewMedicineRepo(cfg.TxManager)
	ledgerRepo := ledger_repo.NewLedgerRepo(cfg.TxManager)
	reader := report_repo.NewReportReader(medicineRepo, ledgerRepo)
	service := reports.NewService(reader)
	handler := handlers.NewReportsHandler(baseHandler, service)

	group := rg.Group("/reports")
	group.GET("/dashboard", handler.Dashboard)
}
