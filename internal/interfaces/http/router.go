package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-alerts-api/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProvisionProduct *inventory.ProvisionProductUseCase
	LowStockAlerts   *inventory.LowStockAlertUseCase
	LowStockReport   *inventory.LowStockReportUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProvisionProduct)
	products.Post("/", productHandler.Create)

	alerts := api.Group("/companies/:company_id/alerts")
	alertHandler := NewAlertHandler(deps.LowStockAlerts, deps.LowStockReport)
	alerts.Get("/low-stock", alertHandler.LowStock)
	if deps.LowStockReport != nil {
		alerts.Get("/low-stock/report.pdf", alertHandler.LowStockReport)
	}
}
