package entity

// Company representa una organización/tenant del sistema. Bodegas, productos,
// tipos de producto y órdenes de venta cuelgan de ella.
type Company struct {
	ID   int64
	Name string
}
