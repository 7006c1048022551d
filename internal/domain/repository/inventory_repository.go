package repository

import (
	"context"

	"github.com/jhoicas/stock-alerts-api/internal/domain/entity"
)

// InventoryRepository define el puerto para filas de inventario por producto+bodega (DIP).
type InventoryRepository interface {
	// Create inserta la fila y devuelve el ID generado. Un par (producto, bodega) repetido
	// o una referencia inexistente devuelven domain.ErrIntegrity.
	Create(ctx context.Context, inv *entity.Inventory) (int64, error)
	ListByProduct(ctx context.Context, productID int64) ([]*entity.Inventory, error)
}
