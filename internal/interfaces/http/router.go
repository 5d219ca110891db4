package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appanalytics "github.com/jhoicas/almacen-api/internal/application/analytics"
	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/purchase"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	InboundUC   *inventory.InboundUseCase
	OutboundUC  *inventory.OutboundUseCase
	Stocktaking *inventory.StocktakingUseCase
	Ledger      *inventory.LedgerQuery
	PurchaseUC  *purchase.BridgeUseCase
	DashboardUC *appanalytics.DashboardUseCase
	Metrics     prometheus.Gatherer // nil = prometheus.DefaultGatherer
	Log         *logger.Logger
	AppName     string
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	gatherer := deps.Metrics
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, log.Component("http.auth"))
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Lectura: cualquier rol. Movimientos: admin y bodeguero. Borrados: solo admin.
	anyRole := RequireRole()
	writers := RequireRole(RoleAdmin, RoleBodeguero)
	admins := RequireRole(RoleAdmin)

	orderHandler := NewOrderHandler(deps.InboundUC, deps.OutboundUC, log.Component("http.orders"))

	inbound := protected.Group("/inbound-orders")
	inbound.Post("/", writers, orderHandler.CreateInbound)
	inbound.Get("/:id", anyRole, orderHandler.GetInbound)
	inbound.Get("/:id/pdf", anyRole, orderHandler.InboundPDF)
	inbound.Delete("/:id", admins, orderHandler.DeleteInbound)

	outbound := protected.Group("/outbound-orders")
	outbound.Post("/", writers, orderHandler.CreateOutbound)
	outbound.Get("/:id", anyRole, orderHandler.GetOutbound)
	outbound.Get("/:id/pdf", anyRole, orderHandler.OutboundPDF)
	outbound.Delete("/:id", admins, orderHandler.DeleteOutbound)

	stocktaking := protected.Group("/stocktaking-orders")
	stocktakingHandler := NewStocktakingHandler(deps.Stocktaking, log.Component("http.stocktaking"))
	stocktaking.Post("/", writers, stocktakingHandler.Create)
	stocktaking.Post("/import", writers, stocktakingHandler.Import)
	stocktaking.Get("/:id", anyRole, stocktakingHandler.Get)
	stocktaking.Get("/:id/export", anyRole, stocktakingHandler.Export)
	stocktaking.Delete("/:id", admins, stocktakingHandler.Delete)

	purchases := protected.Group("/purchase-orders")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC, log.Component("http.purchase"))
	purchases.Post("/", writers, purchaseHandler.Create)
	purchases.Post("/:id/confirm", writers, purchaseHandler.Confirm)
	purchases.Delete("/:id", admins, purchaseHandler.Delete)

	ledger := protected.Group("/inventory")
	ledgerHandler := NewLedgerHandler(deps.Ledger, log.Component("http.ledger"))
	ledger.Get("/:productId/logs", anyRole, ledgerHandler.ListLogs)
	ledger.Get("/:productId/logs/export", anyRole, ledgerHandler.Export)
	ledger.Get("/:productId/verify", anyRole, ledgerHandler.Verify)

	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, log.Component("http.dashboard"))
	dashboard.Get("/summary", anyRole, dashboardHandler.GetSummary)
}
