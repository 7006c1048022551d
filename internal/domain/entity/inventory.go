package entity

// Inventory cantidad de un producto en una bodega. Máximo una fila por (ProductID, WarehouseID).
type Inventory struct {
	ID          int64
	ProductID   int64
	WarehouseID int64
	Quantity    int
}
