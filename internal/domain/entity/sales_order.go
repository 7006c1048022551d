package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesOrder orden de venta de una empresa. Las crea el proceso externo de despacho.
type SalesOrder struct {
	ID        int64
	CompanyID int64
	CreatedAt time.Time
}

// SalesOrderItem línea de una orden. PriceAtSale es el precio histórico, no el actual del producto.
type SalesOrderItem struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	Quantity    int
	PriceAtSale decimal.Decimal
}
