package inventory

import (
	"context"

	"github.com/jhoicas/stock-alerts-api/internal/domain"
	"github.com/jhoicas/stock-alerts-api/pkg/logger"
)

const opLowStockReport = "low_stock_report"

// LowStockReportUseCase genera el reporte PDF de alertas de stock bajo de una empresa.
type LowStockReportUseCase struct {
	alerts    *LowStockAlertUseCase
	generator AlertReportGenerator
	log       *logger.Logger
}

// NewLowStockReportUseCase construye el caso de uso de reporte.
func NewLowStockReportUseCase(alerts *LowStockAlertUseCase, generator AlertReportGenerator, log *logger.Logger) *LowStockReportUseCase {
	return &LowStockReportUseCase{alerts: alerts, generator: generator, log: log}
}

// Generate evalúa las alertas y devuelve los bytes del PDF.
func (uc *LowStockReportUseCase) Generate(ctx context.Context, companyID int64) ([]byte, error) {
	eval, err := uc.alerts.Evaluate(ctx, companyID)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.generator.GenerateLowStockReport(ctx, eval)
	if err != nil {
		uc.log.Error().Err(err).Str("op", opLowStockReport).Int64("company_id", companyID).Msg("generar PDF")
		return nil, &domain.InternalError{Op: opLowStockReport, Cause: err}
	}
	return pdf, nil
}
