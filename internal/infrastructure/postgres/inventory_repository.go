package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-alerts-api/internal/domain/entity"
	"github.com/jhoicas/stock-alerts-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Acepta pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create inserta la fila (producto, bodega). Unicidad, FK y quantity >= 0 los garantiza el esquema.
func (r *InventoryRepo) Create(ctx context.Context, inv *entity.Inventory) (int64, error) {
	err := r.q.QueryRow(ctx,
		`INSERT INTO inventory (product_id, warehouse_id, quantity) VALUES ($1, $2, $3) RETURNING id`,
		inv.ProductID, inv.WarehouseID, inv.Quantity,
	).Scan(&inv.ID)
	if err != nil {
		return 0, classifyWriteError("insert inventory", err)
	}
	return inv.ID, nil
}

func (r *InventoryRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.Inventory, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, warehouse_id, quantity
		FROM inventory WHERE product_id = $1
		ORDER BY warehouse_id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list inventory by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.Inventory
	for rows.Next() {
		var inv entity.Inventory
		if err := rows.Scan(&inv.ID, &inv.ProductID, &inv.WarehouseID, &inv.Quantity); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}
