package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/stock-alerts-api/internal/application/inventory"
)

var _ inventory.AlertPublisher = (*AlertStreamPublisher)(nil)

// DefaultStreamMaxLen longitud aproximada máxima del stream (XADD MAXLEN ~).
const DefaultStreamMaxLen int64 = 10000

// AlertStreamPublisher publica cada evaluación como una entrada de un Redis Stream.
// Campos: company_id, company_name, total_alerts, window_days, generated_at (RFC3339), alerts (JSON).
type AlertStreamPublisher struct {
	client goredis.Cmdable
	stream string
	maxLen int64
}

// NewAlertStreamPublisher construye el publicador sobre el stream indicado.
func NewAlertStreamPublisher(client goredis.Cmdable, stream string) *AlertStreamPublisher {
	return &AlertStreamPublisher{client: client, stream: stream, maxLen: DefaultStreamMaxLen}
}

// PublishLowStock agrega la evaluación al stream y devuelve el ID de la entrada.
func (p *AlertStreamPublisher) PublishLowStock(ctx context.Context, eval *inventory.LowStockEvaluation) (string, error) {
	if eval == nil || eval.Company == nil {
		return "", errors.New("redis: evaluación sin empresa")
	}
	alerts, err := json.Marshal(eval.Result.Alerts)
	if err != nil {
		return "", fmt.Errorf("redis: serializar alertas: %w", err)
	}
	id, err := p.client.XAdd(ctx, &goredis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]any{
			"company_id":   eval.Company.ID,
			"company_name": eval.Company.Name,
			"total_alerts": eval.Result.TotalAlerts,
			"window_days":  eval.Window.Days,
			"generated_at": eval.GeneratedAt.UTC().Format(time.RFC3339),
			"alerts":       string(alerts),
		},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("redis: xadd %s: %w", p.stream, err)
	}
	return id, nil
}
