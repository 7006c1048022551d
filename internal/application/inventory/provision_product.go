package inventory

import (
	"context"
	"errors"

	"github.com/jhoicas/stock-alerts-api/internal/application/dto"
	"github.com/jhoicas/stock-alerts-api/internal/domain"
	"github.com/jhoicas/stock-alerts-api/internal/domain/entity"
	"github.com/jhoicas/stock-alerts-api/internal/domain/repository"
	"github.com/jhoicas/stock-alerts-api/pkg/logger"
)

const opProvisionProduct = "provision_product"

// ProvisionProductUseCase crea un producto y su inventario inicial como una sola unidad atómica.
// La existencia de la bodega no se verifica antes: la rechaza el motor de BD y llega como IntegrityError.
type ProvisionProductUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewProvisionProductUseCase construye el caso de uso.
func NewProvisionProductUseCase(txRunner TxRunner, log *logger.Logger) *ProvisionProductUseCase {
	return &ProvisionProductUseCase{txRunner: txRunner, log: log}
}

// Create valida el payload (sin abrir transacción) y luego ejecuta Provision.
func (uc *ProvisionProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.CreateProductResponse, error) {
	cmd, verr := ValidateCreateProduct(in)
	if verr != nil {
		return nil, verr
	}
	productID, err := uc.Provision(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return &dto.CreateProductResponse{
		Message:   "producto e inventario inicial creados",
		ProductID: productID,
	}, nil
}

// Provision inserta Product, obtiene su ID e inserta Inventory(product, bodega, cantidad inicial)
// en la misma transacción. Errores posibles, siempre tras Rollback:
// *domain.ConflictError (SKU repetido), *domain.IntegrityError, *domain.InternalError.
func (uc *ProvisionProductUseCase) Provision(ctx context.Context, cmd ProvisionCommand) (int64, error) {
	var productID int64
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		inventoryRepo repository.InventoryRepository,
	) error {
		product := &entity.Product{
			SKU:           cmd.SKU,
			Name:          cmd.Name,
			Price:         cmd.Price.Round(2),
			ProductTypeID: cmd.ProductTypeID,
		}
		id, err := productRepo.Create(ctx, product, cmd.WarehouseID)
		if err != nil {
			return err
		}
		if _, err := inventoryRepo.Create(ctx, &entity.Inventory{
			ProductID:   id,
			WarehouseID: cmd.WarehouseID,
			Quantity:    cmd.InitialQuantity,
		}); err != nil {
			return err
		}
		productID = id
		return nil
	})
	if err == nil {
		return productID, nil
	}

	if errors.Is(err, domain.ErrDuplicateSKU) {
		return 0, &domain.ConflictError{SKU: cmd.SKU}
	}
	var integrityErr *domain.IntegrityError
	if errors.As(err, &integrityErr) {
		uc.log.Warn().
			Str("op", opProvisionProduct).
			Str("sku", cmd.SKU).
			Int64("warehouse_id", cmd.WarehouseID).
			Str("reason", integrityErr.Reason).
			Msg("transacción revertida por integridad")
		return 0, integrityErr
	}
	if errors.Is(err, domain.ErrIntegrity) {
		return 0, &domain.IntegrityError{}
	}
	uc.log.Error().
		Err(err).
		Str("op", opProvisionProduct).
		Str("sku", cmd.SKU).
		Int64("warehouse_id", cmd.WarehouseID).
		Msg("error creando producto")
	return 0, &domain.InternalError{Op: opProvisionProduct, Cause: err}
}
