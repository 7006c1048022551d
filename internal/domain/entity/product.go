package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo. SKU es único en todo el sistema.
// ProductTypeID es opcional; sin tipo el producto no participa en alertas de stock bajo.
type Product struct {
	ID            int64
	CompanyID     int64
	ProductTypeID *int64
	SKU           string
	Name          string
	Price         decimal.Decimal // NUMERIC(10,2), nunca float
}
