package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-alerts-api/internal/domain/entity"
	"github.com/jhoicas/stock-alerts-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create inserta el producto tomando company_id de la bodega semilla. Si la bodega no existe la
// subconsulta es NULL y el motor rechaza la fila (23502), lo que llega como *domain.IntegrityError.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product, seedWarehouseID int64) (int64, error) {
	query := `
		INSERT INTO products (company_id, product_type_id, sku, name, price)
		VALUES ((SELECT company_id FROM warehouses WHERE id = $1), $2, $3, $4, $5)
		RETURNING id, company_id`
	err := r.q.QueryRow(ctx, query,
		seedWarehouseID, product.ProductTypeID, product.SKU, product.Name, product.Price,
	).Scan(&product.ID, &product.CompanyID)
	if err != nil {
		return 0, classifyWriteError("insert product", err)
	}
	return product.ID, nil
}

// GetBySKU obtiene un producto por SKU (único global). Devuelve nil si no existe.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	query := `
		SELECT id, company_id, product_type_id, sku, name, price
		FROM products WHERE sku = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, sku).Scan(&p.ID, &p.CompanyID, &p.ProductTypeID, &p.SKU, &p.Name, &p.Price)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return &p, nil
}
