package entity

// Warehouse representa una bodega donde se almacena inventario (multi-bodega).
type Warehouse struct {
	ID        int64
	CompanyID int64
	Name      string
}
