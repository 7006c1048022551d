package dto

// SupplierDTO contacto de reposición de un producto.
type SupplierDTO struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	ContactEmail *string `json:"contact_email"`
}

// LowStockAlertDTO una combinación producto/bodega en o por debajo del umbral de su tipo.
type LowStockAlertDTO struct {
	ProductID         int64        `json:"product_id"`
	ProductName       string       `json:"product_name"`
	SKU               string       `json:"sku"`
	WarehouseID       int64        `json:"warehouse_id"`
	WarehouseName     string       `json:"warehouse_name"`
	CurrentStock      int          `json:"current_stock"`
	Threshold         int          `json:"threshold"`
	DaysUntilStockout *int         `json:"days_until_stockout"` // null si no hay venta diaria positiva
	Supplier          *SupplierDTO `json:"supplier"`            // null si el producto no tiene proveedor
}

// LowStockAlertsResponse lista completa de alertas de la empresa (sin paginación).
type LowStockAlertsResponse struct {
	Alerts      []LowStockAlertDTO `json:"alerts"`
	TotalAlerts int                `json:"total_alerts"`
}
