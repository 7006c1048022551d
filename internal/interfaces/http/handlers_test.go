package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-alerts-api/internal/application/dto"
	"github.com/jhoicas/stock-alerts-api/internal/application/inventory"
	"github.com/jhoicas/stock-alerts-api/internal/domain/entity"
	"github.com/jhoicas/stock-alerts-api/internal/infrastructure/memory"
	"github.com/jhoicas/stock-alerts-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/stock-alerts-api/internal/interfaces/http"
	"github.com/jhoicas/stock-alerts-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var testNow = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	app       *fiber.App
	store     *memory.Store
	company   entity.Company
	warehouse entity.Warehouse
	ptype     entity.ProductType
}

// buildTestApp arma la app Fiber completa sobre el motor en memoria con una empresa, una bodega y
// un tipo de producto de umbral 10.
func buildTestApp(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	company := store.CreateCompany("Acme")
	env := &testEnv{
		store:     store,
		company:   company,
		warehouse: store.CreateWarehouse(company.ID, "Principal"),
		ptype:     store.CreateProductType(company.ID, "General", 10),
	}

	log := logger.Nop()
	alerts := inventory.NewLowStockAlertUseCase(store, store, log, inventory.AlertConfig{
		WindowDays: 30,
		Clock:      func() time.Time { return testNow },
	})
	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		ProvisionProduct: inventory.NewProvisionProductUseCase(store, log),
		LowStockAlerts:   alerts,
		LowStockReport:   inventory.NewLowStockReportUseCase(alerts, pdf.NewMarotoAlertReportGenerator(), log),
	})
	env.app = app
	return env
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decodeError(t *testing.T, raw []byte) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/products
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_201(t *testing.T) {
	env := buildTestApp(t)
	body := fmt.Sprintf(`{"name":"Widget","sku":"W-1","price":19.99,"warehouse_id":%d,"initial_quantity":15}`, env.warehouse.ID)

	resp, raw := doJSON(t, env.app, http.MethodPost, "/api/products", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

	var out dto.CreateProductResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.NotZero(t, out.ProductID)
	assert.NotEmpty(t, out.Message)
	require.NotNil(t, env.store.ProductBySKU("W-1"))
}

func TestCreateProduct_Errores(t *testing.T) {
	env := buildTestApp(t)
	wh := env.warehouse.ID
	cases := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"faltantes", `{"name":"A","warehouse_id":1,"initial_quantity":1}`, fiber.StatusBadRequest, "MISSING_FIELDS"},
		{"tipo inválido", fmt.Sprintf(`{"name":"A","sku":"A","price":1,"warehouse_id":%d,"initial_quantity":"abc"}`, wh), fiber.StatusBadRequest, "INVALID_TYPE"},
		{"cantidad negativa", fmt.Sprintf(`{"name":"A","sku":"A","price":1,"warehouse_id":%d,"initial_quantity":-1}`, wh), fiber.StatusBadRequest, "NEGATIVE_QUANTITY"},
		{"json inválido", `{"name":`, fiber.StatusBadRequest, "INVALID_BODY"},
		{"bodega inexistente", `{"name":"A","sku":"A","price":1,"warehouse_id":999,"initial_quantity":1}`, fiber.StatusInternalServerError, "INTEGRITY_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, raw := doJSON(t, env.app, http.MethodPost, "/api/products", tc.body)
			assert.Equal(t, tc.status, resp.StatusCode, string(raw))
			assert.Equal(t, tc.code, decodeError(t, raw).Code)
		})
	}

	products, rows := env.store.Counts()
	assert.Zero(t, products)
	assert.Zero(t, rows)
}

func TestCreateProduct_FaltantesEnElMensaje(t *testing.T) {
	env := buildTestApp(t)
	_, raw := doJSON(t, env.app, http.MethodPost, "/api/products", `{"name":"A","warehouse_id":1,"initial_quantity":1}`)
	msg := decodeError(t, raw).Message
	assert.Contains(t, msg, "sku")
	assert.Contains(t, msg, "price")
}

func TestCreateProduct_SKUDuplicado409(t *testing.T) {
	env := buildTestApp(t)
	body := fmt.Sprintf(`{"name":"A","sku":"DUP","price":1,"warehouse_id":%d,"initial_quantity":1}`, env.warehouse.ID)

	resp, _ := doJSON(t, env.app, http.MethodPost, "/api/products", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, raw := doJSON(t, env.app, http.MethodPost, "/api/products", body)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	out := decodeError(t, raw)
	assert.Equal(t, "DUPLICATE_SKU", out.Code)
	assert.Contains(t, out.Message, "DUP")
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/companies/:company_id/alerts/low-stock
// ──────────────────────────────────────────────────────────────────────────────

func (env *testEnv) lowStockProduct(t *testing.T, sku string, qty, sold int) int64 {
	t.Helper()
	typeID := env.ptype.ID
	id, err := inventory.NewProvisionProductUseCase(env.store, logger.Nop()).Provision(context.Background(), inventory.ProvisionCommand{
		Name: "Producto " + sku, SKU: sku, Price: decimal.NewFromInt(5),
		WarehouseID: env.warehouse.ID, InitialQuantity: qty, ProductTypeID: &typeID,
	})
	require.NoError(t, err)
	env.store.RecordSale(env.company.ID, testNow.AddDate(0, 0, -2), memory.SaleLine{ProductID: id, Quantity: sold})
	return id
}

func TestLowStock_200(t *testing.T) {
	env := buildTestApp(t)
	env.lowStockProduct(t, "W-1", 7, 60)

	resp, raw := doJSON(t, env.app, http.MethodGet, fmt.Sprintf("/api/companies/%d/alerts/low-stock", env.company.ID), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))

	var generic map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))
	assert.EqualValues(t, 1, generic["total_alerts"])
	alert := generic["alerts"].([]any)[0].(map[string]any)
	assert.EqualValues(t, 3, alert["days_until_stockout"])
	assert.EqualValues(t, 7, alert["current_stock"])
	assert.Nil(t, alert["supplier"], "sin proveedor se serializa null")
	_, present := alert["supplier"]
	assert.True(t, present)
}

func TestLowStock_SinAlertasListaVacia(t *testing.T) {
	env := buildTestApp(t)
	_, raw := doJSON(t, env.app, http.MethodGet, fmt.Sprintf("/api/companies/%d/alerts/low-stock", env.company.ID), "")
	assert.JSONEq(t, `{"alerts":[],"total_alerts":0}`, string(raw))
}

func TestLowStock_EmpresaInexistente404(t *testing.T) {
	env := buildTestApp(t)
	resp, raw := doJSON(t, env.app, http.MethodGet, "/api/companies/999/alerts/low-stock", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, raw).Code)
}

func TestLowStock_IDInvalido400(t *testing.T) {
	env := buildTestApp(t)
	for _, id := range []string{"abc", "0", "-3"} {
		resp, raw := doJSON(t, env.app, http.MethodGet, "/api/companies/"+id+"/alerts/low-stock", "")
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, id)
		assert.Equal(t, "INVALID_ID", decodeError(t, raw).Code)
	}
}

func TestLowStockReport_PDF(t *testing.T) {
	env := buildTestApp(t)
	env.lowStockProduct(t, "W-1", 7, 60)

	resp, raw := doJSON(t, env.app, http.MethodGet, fmt.Sprintf("/api/companies/%d/alerts/low-stock/report.pdf", env.company.ID), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestRequestLogger_RespetaRequestID(t *testing.T) {
	env := buildTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/companies/999/alerts/low-stock", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req-123")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "req-123", resp.Header.Get(fiber.HeaderXRequestID))
}
