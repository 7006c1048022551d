package entity

// DefaultLowStockThreshold umbral usado cuando el tipo de producto no define uno.
const DefaultLowStockThreshold = 10

// ProductType agrupa productos de una empresa y define su umbral de stock bajo.
type ProductType struct {
	ID                int64
	CompanyID         int64
	Name              string
	LowStockThreshold int
}
