package entity

// Supplier proveedor independiente; se asocia a productos vía ProductSupplier.
type Supplier struct {
	ID           int64
	Name         string
	ContactEmail *string
}

// ProductSupplier asociación muchos a muchos producto-proveedor.
type ProductSupplier struct {
	ProductID  int64
	SupplierID int64
}
