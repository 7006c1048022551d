package repository

import (
	"context"

	"github.com/jhoicas/stock-alerts-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// Create inserta el producto y devuelve el ID generado. La empresa del producto se toma
	// de la bodega seedWarehouseID; si la bodega no existe el motor rechaza la fila.
	// Un SKU repetido devuelve domain.ErrDuplicateSKU; otras restricciones domain.ErrIntegrity.
	Create(ctx context.Context, product *entity.Product, seedWarehouseID int64) (int64, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
}
