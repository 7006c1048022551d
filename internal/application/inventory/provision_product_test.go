package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-alerts-api/internal/application/inventory"
	"github.com/jhoicas/stock-alerts-api/internal/domain"
	"github.com/jhoicas/stock-alerts-api/internal/domain/repository"
	"github.com/jhoicas/stock-alerts-api/internal/infrastructure/memory"
	"github.com/jhoicas/stock-alerts-api/pkg/logger"
)

func newProvisioning(t *testing.T) (*inventory.ProvisionProductUseCase, *memory.Store, int64) {
	t.Helper()
	store := memory.NewStore()
	company := store.CreateCompany("Acme")
	wh := store.CreateWarehouse(company.ID, "Principal")
	return inventory.NewProvisionProductUseCase(store, logger.Nop()), store, wh.ID
}

func TestProvisionProduct_CreaProductoEInventario(t *testing.T) {
	uc, store, whID := newProvisioning(t)
	body := fmt.Sprintf(`{"name":"Widget","sku":"W-1","price":"19.999","warehouse_id":%d,"initial_quantity":15}`, whID)

	resp, err := uc.Create(context.Background(), decodeRequest(t, body))
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NotZero(t, resp.ProductID)
	assert.Equal(t, "producto e inventario inicial creados", resp.Message)

	p := store.ProductBySKU("W-1")
	require.NotNil(t, p)
	assert.Equal(t, resp.ProductID, p.ID)
	assert.True(t, decimal.RequireFromString("20.00").Equal(p.Price), "el precio se redondea a 2 decimales")

	rows := store.InventoryByProduct(p.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, whID, rows[0].WarehouseID)
	assert.Equal(t, 15, rows[0].Quantity)
}

func TestProvisionProduct_SKUDuplicadoNoModificaElOriginal(t *testing.T) {
	uc, store, whID := newProvisioning(t)
	ctx := context.Background()

	first, err := uc.Create(ctx, decodeRequest(t,
		fmt.Sprintf(`{"name":"Original","sku":"DUP","price":1,"warehouse_id":%d,"initial_quantity":3}`, whID)))
	require.NoError(t, err)

	_, err = uc.Create(ctx, decodeRequest(t,
		fmt.Sprintf(`{"name":"Copia","sku":"DUP","price":9,"warehouse_id":%d,"initial_quantity":99}`, whID)))
	require.Error(t, err)

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "DUP", conflict.SKU)
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)

	products, rows := store.Counts()
	assert.Equal(t, 1, products)
	assert.Equal(t, 1, rows)
	p := store.ProductBySKU("DUP")
	require.NotNil(t, p)
	assert.Equal(t, first.ProductID, p.ID)
	assert.Equal(t, "Original", p.Name)
	assert.Equal(t, 3, store.InventoryByProduct(p.ID)[0].Quantity)
}

func TestProvisionProduct_BodegaInexistenteRevierte(t *testing.T) {
	uc, store, _ := newProvisioning(t)

	_, err := uc.Create(context.Background(), decodeRequest(t,
		`{"name":"Widget","sku":"NOWH","price":1,"warehouse_id":999,"initial_quantity":1}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIntegrity)

	products, rows := store.Counts()
	assert.Zero(t, products)
	assert.Zero(t, rows)
}

func TestProvisionProduct_ValidacionNoAbreTransaccion(t *testing.T) {
	runner := &failingRunner{err: errors.New("no debería llamarse")}
	uc := inventory.NewProvisionProductUseCase(runner, logger.Nop())

	_, err := uc.Create(context.Background(), decodeRequest(t,
		`{"name":"A","sku":"A","price":1,"warehouse_id":1,"initial_quantity":-1}`))
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domain.ValidationNegativeQuantity, verr.Kind)
	assert.Zero(t, runner.calls)
}

func TestProvisionProduct_FallaInesperadaEsInterna(t *testing.T) {
	cause := errors.New("conexión perdida")
	uc := inventory.NewProvisionProductUseCase(&failingRunner{err: cause}, logger.Nop())

	_, err := uc.Provision(context.Background(), inventory.ProvisionCommand{
		Name: "A", SKU: "A", Price: decimal.NewFromInt(1), WarehouseID: 1, InitialQuantity: 1,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInternal)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "error interno", err.Error(), "el mensaje no expone la causa")
}

func TestProvisionProduct_IntegridadSinDetalle(t *testing.T) {
	uc := inventory.NewProvisionProductUseCase(
		&failingRunner{err: fmt.Errorf("insert: %w", domain.ErrIntegrity)}, logger.Nop())

	_, err := uc.Provision(context.Background(), inventory.ProvisionCommand{SKU: "A", WarehouseID: 1})
	var integrity *domain.IntegrityError
	require.ErrorAs(t, err, &integrity)
}

// failingRunner TxRunner que siempre falla sin invocar fn.
type failingRunner struct {
	err   error
	calls int
}

func (r *failingRunner) Run(_ context.Context, _ func(repository.ProductRepository, repository.InventoryRepository) error) error {
	r.calls++
	return r.err
}
