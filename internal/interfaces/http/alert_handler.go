package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-alerts-api/internal/application/dto"
	"github.com/jhoicas/stock-alerts-api/internal/application/inventory"
)

// AlertHandler expone las alertas de stock bajo por empresa.
type AlertHandler struct {
	alerts *inventory.LowStockAlertUseCase
	report *inventory.LowStockReportUseCase
}

// NewAlertHandler construye el handler. report puede ser nil (ruta PDF deshabilitada).
func NewAlertHandler(alerts *inventory.LowStockAlertUseCase, report *inventory.LowStockReportUseCase) *AlertHandler {
	return &AlertHandler{alerts: alerts, report: report}
}

// LowStock godoc
// @Summary      Alertas de stock bajo
// @Description  Productos en o bajo el umbral de su tipo con ventas en los últimos 30 días, una fila por proveedor.
// @Tags         alerts
// @Produce      json
// @Param        company_id  path  int  true  "ID de la empresa"
// @Success      200  {object}  dto.LowStockAlertsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/companies/{company_id}/alerts/low-stock [get]
func (h *AlertHandler) LowStock(c *fiber.Ctx) error {
	companyID, ok := companyIDParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "company_id debe ser un entero positivo"})
	}
	out, err := h.alerts.Compute(c.Context(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// LowStockReport godoc
// @Summary      Reporte PDF de alertas de stock bajo
// @Tags         alerts
// @Produce      application/pdf
// @Param        company_id  path  int  true  "ID de la empresa"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/companies/{company_id}/alerts/low-stock/report.pdf [get]
func (h *AlertHandler) LowStockReport(c *fiber.Ctx) error {
	companyID, ok := companyIDParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "company_id debe ser un entero positivo"})
	}
	pdf, err := h.report.Generate(c.Context(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="stock-bajo-%d.pdf"`, companyID))
	return c.Send(pdf)
}

func companyIDParam(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("company_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
