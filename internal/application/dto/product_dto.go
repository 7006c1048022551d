package dto

import "encoding/json"

// CreateProductRequest body de POST /api/products. Los campos llegan crudos: la presencia se valida
// con `validate:"required"` y el tipo se interpreta después, para reportar todos los faltantes juntos.
// Un valor JSON null cuenta como ausente.
type CreateProductRequest struct {
	Name            *json.RawMessage `json:"name" validate:"required" swaggertype:"string"`
	SKU             *json.RawMessage `json:"sku" validate:"required" swaggertype:"string"`
	Price           *json.RawMessage `json:"price" validate:"required" swaggertype:"string"`
	WarehouseID     *json.RawMessage `json:"warehouse_id" validate:"required" swaggertype:"integer"`
	InitialQuantity *json.RawMessage `json:"initial_quantity" validate:"required" swaggertype:"integer"`
	ProductTypeID   *json.RawMessage `json:"product_type_id,omitempty" swaggertype:"integer"`
}

// CreateProductResponse salida de la creación de producto + inventario inicial.
type CreateProductResponse struct {
	Message   string `json:"message"`
	ProductID int64  `json:"product_id"`
}
