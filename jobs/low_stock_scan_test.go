package jobs_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-alerts-api/internal/application/inventory"
	"github.com/jhoicas/stock-alerts-api/internal/infrastructure/memory"
	"github.com/jhoicas/stock-alerts-api/jobs"
	"github.com/jhoicas/stock-alerts-api/pkg/logger"
)

type recordingPublisher struct {
	mu    sync.Mutex
	evals []*inventory.LowStockEvaluation
	err   error
}

func (p *recordingPublisher) PublishLowStock(_ context.Context, eval *inventory.LowStockEvaluation) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.evals = append(p.evals, eval)
	return "1-0", nil
}

func (p *recordingPublisher) companies() map[int64]int {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[int64]int)
	for _, e := range p.evals {
		out[e.Company.ID] = e.Result.TotalAlerts
	}
	return out
}

// seedCompany crea una empresa con lowStock productos en alerta (stock 1, con ventas de ayer).
func seedCompany(t *testing.T, store *memory.Store, name string, lowStock int) int64 {
	t.Helper()
	c := store.CreateCompany(name)
	wh := store.CreateWarehouse(c.ID, "Principal")
	pt := store.CreateProductType(c.ID, "General", 10)
	uc := inventory.NewProvisionProductUseCase(store, logger.Nop())
	for i := 0; i < lowStock; i++ {
		typeID := pt.ID
		id, err := uc.Provision(context.Background(), inventory.ProvisionCommand{
			Name: "P", SKU: name + "-" + string(rune('A'+i)), Price: decimal.NewFromInt(1),
			WarehouseID: wh.ID, InitialQuantity: 1, ProductTypeID: &typeID,
		})
		require.NoError(t, err)
		store.RecordSale(c.ID, time.Now().AddDate(0, 0, -1), memory.SaleLine{ProductID: id, Quantity: 5})
	}
	return c.ID
}

func newScanJob(store *memory.Store, pub inventory.AlertPublisher) *jobs.LowStockScanJob {
	alerts := inventory.NewLowStockAlertUseCase(store, store, logger.Nop(), inventory.AlertConfig{WindowDays: 30})
	return jobs.NewLowStockScanJob(alerts, store, pub, logger.Nop(), 2)
}

func scanTask(t *testing.T, companyID int64) *asynq.Task {
	t.Helper()
	task, err := jobs.NewLowStockScanTask(jobs.LowStockScanPayload{CompanyID: companyID, ScheduledFor: time.Now()})
	require.NoError(t, err)
	return task
}

func TestLowStockScan_TodasLasEmpresas(t *testing.T) {
	store := memory.NewStore()
	a := seedCompany(t, store, "A", 2)
	seedCompany(t, store, "B", 0)
	c := seedCompany(t, store, "C", 1)
	pub := &recordingPublisher{}

	err := newScanJob(store, pub).Handle(context.Background(), scanTask(t, 0))
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{a: 2, c: 1}, pub.companies(), "solo se publican empresas con alertas")
}

func TestLowStockScan_UnaEmpresa(t *testing.T) {
	store := memory.NewStore()
	seedCompany(t, store, "A", 1)
	b := seedCompany(t, store, "B", 3)
	pub := &recordingPublisher{}

	require.NoError(t, newScanJob(store, pub).Handle(context.Background(), scanTask(t, b)))
	assert.Equal(t, map[int64]int{b: 3}, pub.companies())
}

func TestLowStockScan_EmpresaInexistenteNoReintenta(t *testing.T) {
	store := memory.NewStore()
	err := newScanJob(store, &recordingPublisher{}).Handle(context.Background(), scanTask(t, 99))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestLowStockScan_PayloadInvalido(t *testing.T) {
	store := memory.NewStore()
	job := newScanJob(store, &recordingPublisher{})

	err := job.Handle(context.Background(), asynq.NewTask(jobs.TaskLowStockScan, []byte("{no-json")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	data, _ := json.Marshal(map[string]any{"company_id": -1})
	err = job.Handle(context.Background(), asynq.NewTask(jobs.TaskLowStockScan, data))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestLowStockScan_FallaDePublicacionSeReintenta(t *testing.T) {
	store := memory.NewStore()
	a := seedCompany(t, store, "A", 1)
	cause := errors.New("redis caído")

	err := newScanJob(store, &recordingPublisher{err: cause}).Handle(context.Background(), scanTask(t, a))
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}
