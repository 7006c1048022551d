package repository

import (
	"context"

	"github.com/jhoicas/stock-alerts-api/internal/domain/inventory"
)

// SupplierRef datos de contacto del proveedor en una fila candidata.
type SupplierRef struct {
	ID           int64
	Name         string
	ContactEmail *string
}

// LowStockCandidate resultado crudo del repositorio: una fila inventario × proveedor en o bajo el umbral.
type LowStockCandidate struct {
	ProductID       int64
	ProductName     string
	SKU             string
	WarehouseID     int64
	WarehouseName   string
	Quantity        int
	Threshold       int
	TotalSoldRecent int64
	Supplier        *SupplierRef // nil si el producto no tiene proveedor
}

// LowStockRepository consulta de solo lectura que cruza inventario con ventas recientes.
type LowStockRepository interface {
	// ListLowStockCandidates devuelve, para las bodegas de la empresa, las filas de inventario cuyo
	// Quantity <= umbral del tipo de producto y cuyo producto tiene ventas de la empresa dentro de
	// window (inner join). Un producto con varios proveedores produce una fila por proveedor.
	// Orden: producto, bodega, proveedor (sin proveedor primero).
	ListLowStockCandidates(ctx context.Context, companyID int64, window inventory.SalesWindow) ([]LowStockCandidate, error)
}
