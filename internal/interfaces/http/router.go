package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hanbit-parts/warehouse-api/internal/application/auth"
	"github.com/hanbit-parts/warehouse-api/internal/application/catalog"
	"github.com/hanbit-parts/warehouse-api/internal/application/export"
	"github.com/hanbit-parts/warehouse-api/internal/application/receiving"
	"github.com/hanbit-parts/warehouse-api/internal/application/shipping"
	"github.com/hanbit-parts/warehouse-api/internal/application/stock"
	"github.com/hanbit-parts/warehouse-api/internal/application/warehouse"
	"github.com/hanbit-parts/warehouse-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReceivingUC *receiving.UseCase
	ShippingUC  *shipping.UseCase
	StockUC     *stock.UseCase
	CatalogUC   *catalog.UseCase
	WarehouseUC *warehouse.UseCase
	ExportUC    *export.UseCase
	AuthUC      *auth.UseCase
	JWTSecret   string
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

	// Recepciones (protegido)
	receivings := protected.Group("/receivings")
	receivingHandler := NewReceivingHandler(deps.ReceivingUC)
	receivings.Post("/", receivingHandler.Create)
	receivings.Get("/", receivingHandler.ListNotDone)
	receivings.Get("/done", receivingHandler.ListDone)
	receivings.Get("/:id", receivingHandler.GetDetail)
	receivings.Put("/:id/lines/:lineId", receivingHandler.UpdateLine)
	receivings.Post("/:id/complete", receivingHandler.Complete)
	receivings.Delete("/:id", receivingHandler.Delete)

	// Despachos (protegido)
	shipments := protected.Group("/shipments")
	shippingHandler := NewShippingHandler(deps.ShippingUC, deps.ExportUC)
	shipments.Post("/", shippingHandler.Create)
	shipments.Get("/", shippingHandler.ListNotDone)
	shipments.Get("/done", shippingHandler.ListDone)
	shipments.Get("/:id", shippingHandler.GetDetail)
	shipments.Get("/:id/picking-list", shippingHandler.PickingList)
	shipments.Put("/:id/lines/:lineId", shippingHandler.UpdateLine)
	shipments.Post("/:id/complete", shippingHandler.Complete)
	shipments.Delete("/:id", shippingHandler.Delete)

	// Exportes (protegido)
	exports := protected.Group("/exports")
	exports.Get("/done-notes", shippingHandler.ExportDone)

	// Stock (protegido; el ajuste manual es de manager/admin)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Get("/", stockHandler.List)
	stockGroup.Post("/adjustments", RequireRole(entity.RoleAdmin, entity.RoleManager), stockHandler.Adjust)

	// Catálogo de repuestos y categorías (protegido)
	parts := protected.Group("/parts")
	partHandler := NewPartHandler(deps.CatalogUC)
	parts.Post("/", partHandler.Create)
	parts.Get("/", partHandler.List)
	parts.Get("/:id", partHandler.GetByID)
	parts.Delete("/:id", partHandler.Delete)

	categories := protected.Group("/categories")
	categories.Post("/", partHandler.CreateCategory)
	categories.Get("/", partHandler.ListCategories)

	// Bodegas (protegido; creación solo admin)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", RequireRole(entity.RoleAdmin), warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:code", warehouseHandler.GetByCode)
}
