package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-alerts-api/internal/domain/inventory"
	"github.com/jhoicas/stock-alerts-api/internal/domain/repository"
)

var _ repository.LowStockRepository = (*LowStockRepo)(nil)

// LowStockRepo consulta de solo lectura que alimenta el motor de alertas.
type LowStockRepo struct {
	q Querier
}

// NewLowStockRepository construye el adaptador.
func NewLowStockRepository(q Querier) *LowStockRepo {
	return &LowStockRepo{q: q}
}

// ListLowStockCandidates una sola consulta:
//   - recent_sales: unidades vendidas por producto en órdenes de la empresa dentro de la ventana
//     (ambos extremos inclusive)
//   - inner join con recent_sales: sin ventas recientes no hay fila
//   - left join con proveedores: una fila por proveedor, o una sola con proveedor NULL
func (r *LowStockRepo) ListLowStockCandidates(ctx context.Context, companyID int64, window inventory.SalesWindow) ([]repository.LowStockCandidate, error) {
	query := `
		WITH recent_sales AS (
			SELECT soi.product_id, SUM(soi.quantity)::bigint AS total_sold
			FROM sales_order_items soi
			JOIN sales_orders so ON so.id = soi.order_id
			WHERE so.company_id = $1
			  AND so.created_at >= $2
			  AND so.created_at <= $3
			GROUP BY soi.product_id
		)
		SELECT
			p.id,
			p.name,
			p.sku,
			w.id,
			w.name,
			i.quantity,
			pt.low_stock_threshold,
			rs.total_sold,
			s.id,
			s.name,
			s.contact_email
		FROM inventory i
		JOIN warehouses w     ON w.id = i.warehouse_id
		JOIN products p       ON p.id = i.product_id
		JOIN product_types pt ON pt.id = p.product_type_id
		JOIN recent_sales rs  ON rs.product_id = p.id
		LEFT JOIN product_suppliers ps ON ps.product_id = p.id
		LEFT JOIN suppliers s          ON s.id = ps.supplier_id
		WHERE w.company_id = $1
		  AND i.quantity <= pt.low_stock_threshold
		ORDER BY p.id, w.id, s.id NULLS FIRST`

	rows, err := r.q.Query(ctx, query, companyID, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("list low stock candidates: %w", err)
	}
	defer rows.Close()

	var out []repository.LowStockCandidate
	for rows.Next() {
		var (
			c            repository.LowStockCandidate
			supplierID   *int64
			supplierName *string
			contactEmail *string
		)
		if err := rows.Scan(
			&c.ProductID, &c.ProductName, &c.SKU,
			&c.WarehouseID, &c.WarehouseName,
			&c.Quantity, &c.Threshold, &c.TotalSoldRecent,
			&supplierID, &supplierName, &contactEmail,
		); err != nil {
			return nil, fmt.Errorf("scan low stock candidate: %w", err)
		}
		if supplierID != nil {
			c.Supplier = &repository.SupplierRef{ID: *supplierID, ContactEmail: contactEmail}
			if supplierName != nil {
				c.Supplier.Name = *supplierName
			}
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
