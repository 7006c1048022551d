package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-alerts-api/internal/application/dto"
	"github.com/jhoicas/stock-alerts-api/internal/domain"
	"github.com/jhoicas/stock-alerts-api/internal/domain/entity"
	invdomain "github.com/jhoicas/stock-alerts-api/internal/domain/inventory"
	"github.com/jhoicas/stock-alerts-api/internal/domain/repository"
	"github.com/jhoicas/stock-alerts-api/pkg/logger"
)

const opLowStockAlerts = "low_stock_alerts"

// AlertConfig parámetros del motor de alertas. Clock permite fijar "ahora" en tests.
type AlertConfig struct {
	WindowDays int
	Clock      func() time.Time
}

// LowStockEvaluation resultado de una evaluación: empresa, ventana usada y alertas.
type LowStockEvaluation struct {
	Company     *entity.Company
	Window      invdomain.SalesWindow
	GeneratedAt time.Time
	Result      dto.LowStockAlertsResponse
}

// LowStockAlertUseCase calcula las alertas de stock bajo de una empresa cruzando inventario
// con la velocidad de venta de los últimos WindowDays días.
type LowStockAlertUseCase struct {
	companyRepo  repository.CompanyRepository
	lowStockRepo repository.LowStockRepository
	log          *logger.Logger
	windowDays   int
	now          func() time.Time
}

// NewLowStockAlertUseCase construye el motor de alertas.
func NewLowStockAlertUseCase(
	companyRepo repository.CompanyRepository,
	lowStockRepo repository.LowStockRepository,
	log *logger.Logger,
	cfg AlertConfig,
) *LowStockAlertUseCase {
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = invdomain.DefaultWindowDays
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &LowStockAlertUseCase{
		companyRepo:  companyRepo,
		lowStockRepo: lowStockRepo,
		log:          log,
		windowDays:   cfg.WindowDays,
		now:          cfg.Clock,
	}
}

// Compute devuelve la lista completa de alertas y su total. Empresa inexistente → *domain.NotFoundError.
func (uc *LowStockAlertUseCase) Compute(ctx context.Context, companyID int64) (*dto.LowStockAlertsResponse, error) {
	eval, err := uc.Evaluate(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return &eval.Result, nil
}

// Evaluate ejecuta el cálculo completo (todo o nada):
//  1. resolver la empresa; si no existe se corta antes de consultar inventario
//  2. ventana [ahora - WindowDays, ahora]
//  3. filas candidatas: inventario <= umbral con ventas recientes (inner join), × proveedores
//  4. proyección de días hasta agotar stock por fila
func (uc *LowStockAlertUseCase) Evaluate(ctx context.Context, companyID int64) (*LowStockEvaluation, error) {
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		uc.log.Error().Err(err).Str("op", opLowStockAlerts).Int64("company_id", companyID).Msg("resolver empresa")
		return nil, &domain.InternalError{Op: opLowStockAlerts, Cause: err}
	}
	if company == nil {
		return nil, &domain.NotFoundError{Resource: "company", ID: companyID}
	}

	now := uc.now()
	window := invdomain.NewSalesWindow(now, uc.windowDays)

	rows, err := uc.lowStockRepo.ListLowStockCandidates(ctx, companyID, window)
	if err != nil {
		uc.log.Error().Err(err).Str("op", opLowStockAlerts).Int64("company_id", companyID).Msg("consultar candidatos de stock bajo")
		return nil, &domain.InternalError{Op: opLowStockAlerts, Cause: err}
	}

	alerts := make([]dto.LowStockAlertDTO, 0, len(rows))
	for _, row := range rows {
		alerts = append(alerts, toLowStockAlertDTO(row, window.Days))
	}

	return &LowStockEvaluation{
		Company:     company,
		Window:      window,
		GeneratedAt: now,
		Result: dto.LowStockAlertsResponse{
			Alerts:      alerts,
			TotalAlerts: len(alerts),
		},
	}, nil
}

func toLowStockAlertDTO(row repository.LowStockCandidate, windowDays int) dto.LowStockAlertDTO {
	alert := dto.LowStockAlertDTO{
		ProductID:         row.ProductID,
		ProductName:       row.ProductName,
		SKU:               row.SKU,
		WarehouseID:       row.WarehouseID,
		WarehouseName:     row.WarehouseName,
		CurrentStock:      row.Quantity,
		Threshold:         row.Threshold,
		DaysUntilStockout: invdomain.DaysUntilStockout(row.Quantity, row.TotalSoldRecent, windowDays),
	}
	if row.Supplier != nil {
		alert.Supplier = &dto.SupplierDTO{
			ID:           row.Supplier.ID,
			Name:         row.Supplier.Name,
			ContactEmail: row.Supplier.ContactEmail,
		}
	}
	return alert
}
