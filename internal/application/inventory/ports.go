package inventory

import (
	"context"

	"github.com/jhoicas/stock-alerts-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil; Rollback en cualquier otro caso. Garantiza que producto e inventario
// inicial se persisten juntos o no se persisten.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		inventoryRepo repository.InventoryRepository,
	) error) error
}

// AlertReportGenerator genera la representación PDF de una evaluación de stock bajo.
type AlertReportGenerator interface {
	GenerateLowStockReport(ctx context.Context, eval *LowStockEvaluation) ([]byte, error)
}

// AlertPublisher publica el resumen de una evaluación para consumidores externos (compras, notificaciones).
// Devuelve el ID asignado a la entrada publicada.
type AlertPublisher interface {
	PublishLowStock(ctx context.Context, eval *LowStockEvaluation) (string, error)
}
