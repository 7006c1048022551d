package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault cola por defecto de las tareas en segundo plano.
	QueueDefault = "default"
	// TaskLowStockScan evalúa alertas de stock bajo y publica los resúmenes.
	TaskLowStockScan = "inventory:low_stock_scan"
)

// LowStockScanPayload parámetros del escaneo. CompanyID 0 evalúa todas las empresas.
type LowStockScanPayload struct {
	CompanyID    int64     `json:"company_id"`
	ScheduledFor time.Time `json:"scheduled_for,omitempty"`
}

// NewLowStockScanTask construye la tarea asynq.
func NewLowStockScanTask(payload LowStockScanPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockScan, data, asynq.Queue(QueueDefault), asynq.MaxRetry(3)), nil
}
