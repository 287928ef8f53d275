package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/purchase"
	"github.com/jhoicas/Almacen-api/internal/application/replenishment"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC    *inventory.CatalogUseCase
	LedgerUC     *inventory.LedgerUseCase
	PurchaseUC   *purchase.UseCase
	SuggestionUC *replenishment.SuggestionUseCase
	AuthUC       *auth.AuthUseCase
	ProductRepo  repository.ProductRepository
	PDFGen       *pdf.PurchaseOrderGenerator
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo de productos (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Ledger de stock y reposición (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.SuggestionUC)
	invGroup.Post("/movements", inventoryHandler.RecordMovement)
	invGroup.Get("/movements", inventoryHandler.GetHistory)
	invGroup.Get("/products/:product_id/replenishment-suggestion", inventoryHandler.GetSuggestion)

	// Solicitudes de compra (protegido)
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC, deps.ProductRepo, deps.PDFGen)
	requests := protected.Group("/purchase-requests")
	requests.Post("/", purchaseHandler.Create)
	requests.Get("/", purchaseHandler.List)
	requests.Get("/:id", purchaseHandler.GetByID)
	requests.Post("/:id/submit", purchaseHandler.Submit)
	requests.Post("/:id/cancel", purchaseHandler.Cancel)
	requests.Get("/:id/pdf", purchaseHandler.DownloadPDF)

	// Decisiones de aprobación: solo roles con autoridad en la cadena.
	approvals := protected.Group("/approvals",
		RequireRole(entity.RoleSupervisor, entity.RoleGerente, entity.RoleAdmin))
	approvals.Post("/:id/decide", purchaseHandler.Decide)
}
