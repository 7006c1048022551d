// Package memory implementa el motor de almacenamiento en memoria: mismos puertos y mismas
// señales de error que PostgreSQL (SKU duplicado, integridad referencial, unicidad producto+bodega).
// Las transacciones trabajan sobre una copia del estado y la publican solo en Commit.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-alerts-api/internal/application/inventory"
	"github.com/jhoicas/stock-alerts-api/internal/domain"
	"github.com/jhoicas/stock-alerts-api/internal/domain/entity"
	invdomain "github.com/jhoicas/stock-alerts-api/internal/domain/inventory"
	"github.com/jhoicas/stock-alerts-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner            = (*Store)(nil)
	_ repository.CompanyRepository  = (*Store)(nil)
	_ repository.LowStockRepository = (*Store)(nil)
)

// Store motor en memoria seguro para uso concurrente. Las transacciones se serializan.
type Store struct {
	mu sync.RWMutex
	st *state
}

type state struct {
	nextID           map[string]int64
	companies        map[int64]entity.Company
	warehouses       map[int64]entity.Warehouse
	productTypes     map[int64]entity.ProductType
	products         map[int64]entity.Product
	inventory        map[int64]entity.Inventory
	suppliers        map[int64]entity.Supplier
	productSuppliers []entity.ProductSupplier
	orders           map[int64]entity.SalesOrder
	orderItems       map[int64]entity.SalesOrderItem
}

// NewStore construye un motor vacío.
func NewStore() *Store {
	return &Store{st: &state{
		nextID:       make(map[string]int64),
		companies:    make(map[int64]entity.Company),
		warehouses:   make(map[int64]entity.Warehouse),
		productTypes: make(map[int64]entity.ProductType),
		products:     make(map[int64]entity.Product),
		inventory:    make(map[int64]entity.Inventory),
		suppliers:    make(map[int64]entity.Supplier),
		orders:       make(map[int64]entity.SalesOrder),
		orderItems:   make(map[int64]entity.SalesOrderItem),
	}}
}

func (s *state) next(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

// forTx copia las tablas que una transacción puede modificar; el resto se comparte (solo lectura).
func (s *state) forTx() *state {
	cp := *s
	cp.nextID = make(map[string]int64, len(s.nextID))
	for k, v := range s.nextID {
		cp.nextID[k] = v
	}
	cp.products = make(map[int64]entity.Product, len(s.products))
	for k, v := range s.products {
		cp.products[k] = v
	}
	cp.inventory = make(map[int64]entity.Inventory, len(s.inventory))
	for k, v := range s.inventory {
		cp.inventory[k] = v
	}
	return &cp
}

// Run ejecuta fn sobre una copia del estado; si fn devuelve nil la copia reemplaza al estado (Commit),
// si no se descarta (Rollback).
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.st.forTx()
	if err := fn(&productRepo{st: staged}, &inventoryRepo{st: staged}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	s.st = staged
	return nil
}

// GetByID implementa repository.CompanyRepository.
func (s *Store) GetByID(_ context.Context, id int64) (*entity.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.st.companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// ListIDs implementa repository.CompanyRepository.
func (s *Store) ListIDs(_ context.Context) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int64, 0, len(s.st.companies))
	for id := range s.st.companies {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// ListLowStockCandidates reproduce la consulta SQL: agregado de ventas de la empresa en la ventana
// (inner join), inventario de sus bodegas en o bajo el umbral, left join a proveedores.
func (s *Store) ListLowStockCandidates(ctx context.Context, companyID int64, window invdomain.SalesWindow) ([]repository.LowStockCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.st

	soldRecent := make(map[int64]int64)
	for _, item := range st.orderItems {
		order, ok := st.orders[item.OrderID]
		if !ok || order.CompanyID != companyID || !window.Contains(order.CreatedAt) {
			continue
		}
		soldRecent[item.ProductID] += int64(item.Quantity)
	}

	suppliersByProduct := make(map[int64][]entity.Supplier)
	for _, link := range st.productSuppliers {
		if sup, ok := st.suppliers[link.SupplierID]; ok {
			suppliersByProduct[link.ProductID] = append(suppliersByProduct[link.ProductID], sup)
		}
	}

	rows := make([]entity.Inventory, 0, len(st.inventory))
	for _, inv := range st.inventory {
		rows = append(rows, inv)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ProductID != rows[j].ProductID {
			return rows[i].ProductID < rows[j].ProductID
		}
		return rows[i].WarehouseID < rows[j].WarehouseID
	})

	var out []repository.LowStockCandidate
	for _, inv := range rows {
		wh, ok := st.warehouses[inv.WarehouseID]
		if !ok || wh.CompanyID != companyID {
			continue
		}
		p, ok := st.products[inv.ProductID]
		if !ok || p.ProductTypeID == nil {
			continue
		}
		pt, ok := st.productTypes[*p.ProductTypeID]
		if !ok {
			continue
		}
		total, sold := soldRecent[p.ID]
		if !sold || !invdomain.IsLowStock(inv.Quantity, pt.LowStockThreshold) {
			continue
		}
		base := repository.LowStockCandidate{
			ProductID:       p.ID,
			ProductName:     p.Name,
			SKU:             p.SKU,
			WarehouseID:     wh.ID,
			WarehouseName:   wh.Name,
			Quantity:        inv.Quantity,
			Threshold:       pt.LowStockThreshold,
			TotalSoldRecent: total,
		}
		sups := suppliersByProduct[p.ID]
		if len(sups) == 0 {
			out = append(out, base)
			continue
		}
		sort.Slice(sups, func(i, j int) bool { return sups[i].ID < sups[j].ID })
		for _, sup := range sups {
			row := base
			row.Supplier = &repository.SupplierRef{ID: sup.ID, Name: sup.Name, ContactEmail: sup.ContactEmail}
			out = append(out, row)
		}
	}
	return out, nil
}

// productRepo ProductRepository atado a una transacción en curso.
type productRepo struct {
	st *state
}

func (r *productRepo) Create(_ context.Context, product *entity.Product, seedWarehouseID int64) (int64, error) {
	wh, ok := r.st.warehouses[seedWarehouseID]
	if !ok {
		return 0, fmt.Errorf("insert product: %w", &domain.IntegrityError{Reason: "company_id not null"})
	}
	if product.ProductTypeID != nil {
		if _, ok := r.st.productTypes[*product.ProductTypeID]; !ok {
			return 0, fmt.Errorf("insert product: %w", &domain.IntegrityError{Reason: "products_product_type_id_fkey"})
		}
	}
	for _, existing := range r.st.products {
		if existing.SKU == product.SKU {
			return 0, fmt.Errorf("insert product: %w", domain.ErrDuplicateSKU)
		}
	}
	p := *product
	p.ID = r.st.next("products")
	p.CompanyID = wh.CompanyID
	r.st.products[p.ID] = p
	product.ID = p.ID
	product.CompanyID = p.CompanyID
	return p.ID, nil
}

func (r *productRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range r.st.products {
		if p.SKU == sku {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

// inventoryRepo InventoryRepository atado a una transacción en curso.
type inventoryRepo struct {
	st *state
}

func (r *inventoryRepo) Create(_ context.Context, inv *entity.Inventory) (int64, error) {
	if _, ok := r.st.products[inv.ProductID]; !ok {
		return 0, fmt.Errorf("insert inventory: %w", &domain.IntegrityError{Reason: "inventory_product_id_fkey"})
	}
	if _, ok := r.st.warehouses[inv.WarehouseID]; !ok {
		return 0, fmt.Errorf("insert inventory: %w", &domain.IntegrityError{Reason: "inventory_warehouse_id_fkey"})
	}
	if inv.Quantity < 0 {
		return 0, fmt.Errorf("insert inventory: %w", &domain.IntegrityError{Reason: "inventory_quantity_check"})
	}
	for _, existing := range r.st.inventory {
		if existing.ProductID == inv.ProductID && existing.WarehouseID == inv.WarehouseID {
			return 0, fmt.Errorf("insert inventory: %w", &domain.IntegrityError{Reason: "inventory_product_warehouse_key"})
		}
	}
	row := *inv
	row.ID = r.st.next("inventory")
	r.st.inventory[row.ID] = row
	inv.ID = row.ID
	return row.ID, nil
}

func (r *inventoryRepo) ListByProduct(_ context.Context, productID int64) ([]*entity.Inventory, error) {
	return listInventory(r.st, productID), nil
}

func listInventory(st *state, productID int64) []*entity.Inventory {
	var list []*entity.Inventory
	for _, inv := range st.inventory {
		if inv.ProductID == productID {
			row := inv
			list = append(list, &row)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].WarehouseID < list[j].WarehouseID })
	return list
}

// ── Lecturas de verificación ──────────────────────────────────────────────────

// ProductBySKU devuelve el producto confirmado con ese SKU, o nil.
func (s *Store) ProductBySKU(sku string) *entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, _ := (&productRepo{st: s.st}).GetBySKU(context.Background(), sku)
	return p
}

// InventoryByProduct devuelve las filas de inventario confirmadas del producto.
func (s *Store) InventoryByProduct(productID int64) []*entity.Inventory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listInventory(s.st, productID)
}

// Counts número de productos y filas de inventario confirmados.
func (s *Store) Counts() (products, inventoryRows int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.st.products), len(s.st.inventory)
}

// ── Fixtures (datos que en producción crean otros procesos) ───────────────────

// CreateCompany registra una empresa.
func (s *Store) CreateCompany(name string) entity.Company {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := entity.Company{ID: s.st.next("companies"), Name: name}
	s.st.companies[c.ID] = c
	return c
}

// CreateWarehouse registra una bodega de la empresa.
func (s *Store) CreateWarehouse(companyID int64, name string) entity.Warehouse {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := entity.Warehouse{ID: s.st.next("warehouses"), CompanyID: companyID, Name: name}
	s.st.warehouses[w.ID] = w
	return w
}

// CreateProductType registra un tipo de producto; threshold < 0 usa el umbral por defecto.
func (s *Store) CreateProductType(companyID int64, name string, threshold int) entity.ProductType {
	s.mu.Lock()
	defer s.mu.Unlock()
	if threshold < 0 {
		threshold = entity.DefaultLowStockThreshold
	}
	pt := entity.ProductType{ID: s.st.next("product_types"), CompanyID: companyID, Name: name, LowStockThreshold: threshold}
	s.st.productTypes[pt.ID] = pt
	return pt
}

// CreateSupplier registra un proveedor; email vacío se guarda como NULL.
func (s *Store) CreateSupplier(name, email string) entity.Supplier {
	s.mu.Lock()
	defer s.mu.Unlock()
	sup := entity.Supplier{ID: s.st.next("suppliers"), Name: name}
	if email != "" {
		sup.ContactEmail = &email
	}
	s.st.suppliers[sup.ID] = sup
	return sup
}

// LinkSupplier asocia proveedor y producto.
func (s *Store) LinkSupplier(productID, supplierID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.st.products[productID]; !ok {
		return &domain.IntegrityError{Reason: "product_suppliers_product_id_fkey"}
	}
	if _, ok := s.st.suppliers[supplierID]; !ok {
		return &domain.IntegrityError{Reason: "product_suppliers_supplier_id_fkey"}
	}
	for _, l := range s.st.productSuppliers {
		if l.ProductID == productID && l.SupplierID == supplierID {
			return &domain.IntegrityError{Reason: "product_suppliers_pkey"}
		}
	}
	s.st.productSuppliers = append(s.st.productSuppliers, entity.ProductSupplier{ProductID: productID, SupplierID: supplierID})
	return nil
}

// SaleLine línea de venta para RecordSale.
type SaleLine struct {
	ProductID   int64
	Quantity    int
	PriceAtSale decimal.Decimal
}

// RecordSale registra una orden de venta con sus líneas y devuelve el ID de la orden.
func (s *Store) RecordSale(companyID int64, createdAt time.Time, lines ...SaleLine) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	order := entity.SalesOrder{ID: s.st.next("sales_orders"), CompanyID: companyID, CreatedAt: createdAt}
	s.st.orders[order.ID] = order
	for _, l := range lines {
		item := entity.SalesOrderItem{
			ID:          s.st.next("sales_order_items"),
			OrderID:     order.ID,
			ProductID:   l.ProductID,
			Quantity:    l.Quantity,
			PriceAtSale: l.PriceAtSale,
		}
		s.st.orderItems[item.ID] = item
	}
	return order.ID
}
