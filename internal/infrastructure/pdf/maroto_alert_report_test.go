package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-alerts-api/internal/application/dto"
	"github.com/jhoicas/stock-alerts-api/internal/application/inventory"
	"github.com/jhoicas/stock-alerts-api/internal/domain/entity"
	invdomain "github.com/jhoicas/stock-alerts-api/internal/domain/inventory"
	"github.com/jhoicas/stock-alerts-api/internal/infrastructure/pdf"
)

func evaluation(alerts ...dto.LowStockAlertDTO) *inventory.LowStockEvaluation {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	return &inventory.LowStockEvaluation{
		Company:     &entity.Company{ID: 1, Name: "Acme"},
		Window:      invdomain.NewSalesWindow(now, 30),
		GeneratedAt: now,
		Result:      dto.LowStockAlertsResponse{Alerts: alerts, TotalAlerts: len(alerts)},
	}
}

func TestGenerateLowStockReport_ConAlertas(t *testing.T) {
	days := 3
	email := "ventas@a.co"
	eval := evaluation(
		dto.LowStockAlertDTO{
			ProductID: 1, ProductName: "Widget", SKU: "W-1", WarehouseID: 1, WarehouseName: "Principal",
			CurrentStock: 7, Threshold: 10, DaysUntilStockout: &days,
			Supplier: &dto.SupplierDTO{ID: 1, Name: "Proveedor A", ContactEmail: &email},
		},
		dto.LowStockAlertDTO{
			ProductID: 1, ProductName: "Widget", SKU: "W-1", WarehouseID: 1, WarehouseName: "Principal",
			CurrentStock: 1200, Threshold: 1500,
		},
	)

	out, err := pdf.NewMarotoAlertReportGenerator().GenerateLowStockReport(context.Background(), eval)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida debe ser un PDF")
}

func TestGenerateLowStockReport_SinAlertas(t *testing.T) {
	out, err := pdf.NewMarotoAlertReportGenerator().GenerateLowStockReport(context.Background(), evaluation())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateLowStockReport_SinEmpresa(t *testing.T) {
	_, err := pdf.NewMarotoAlertReportGenerator().GenerateLowStockReport(context.Background(), &inventory.LowStockEvaluation{})
	assert.Error(t, err)
}
