package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stock-alerts-api/internal/application/inventory"
	"github.com/jhoicas/stock-alerts-api/internal/domain"
	"github.com/jhoicas/stock-alerts-api/internal/domain/repository"
	"github.com/jhoicas/stock-alerts-api/pkg/logger"
)

// Evaluator calcula la evaluación de stock bajo de una empresa.
type Evaluator interface {
	Evaluate(ctx context.Context, companyID int64) (*inventory.LowStockEvaluation, error)
}

// LowStockScanJob procesa TaskLowStockScan: evalúa cada empresa en paralelo (limitado) y publica
// un resumen por empresa con al menos una alerta.
type LowStockScanJob struct {
	evaluator   Evaluator
	companies   repository.CompanyRepository
	publisher   inventory.AlertPublisher
	log         *logger.Logger
	concurrency int
}

// NewLowStockScanJob construye el handler. concurrency <= 0 equivale a 1.
func NewLowStockScanJob(
	evaluator Evaluator,
	companies repository.CompanyRepository,
	publisher inventory.AlertPublisher,
	log *logger.Logger,
	concurrency int,
) *LowStockScanJob {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &LowStockScanJob{
		evaluator:   evaluator,
		companies:   companies,
		publisher:   publisher,
		log:         log.Named("low_stock_scan"),
		concurrency: concurrency,
	}
}

// Handle implementa asynq.HandlerFunc. Payload inválido o empresa inexistente no se reintentan;
// fallas de almacenamiento o de publicación sí.
func (j *LowStockScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload LowStockScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("payload inválido: %v: %w", err, asynq.SkipRetry)
	}
	if payload.CompanyID < 0 {
		return fmt.Errorf("company_id negativo: %d: %w", payload.CompanyID, asynq.SkipRetry)
	}

	start := time.Now()
	ids := []int64{payload.CompanyID}
	if payload.CompanyID == 0 {
		var err error
		if ids, err = j.companies.ListIDs(ctx); err != nil {
			j.log.Error().Err(err).Msg("listar empresas")
			return fmt.Errorf("listar empresas: %w", err)
		}
	}

	var published, alerts atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.concurrency)
	for _, id := range ids {
		g.Go(func() error {
			eval, err := j.evaluator.Evaluate(gctx, id)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					if payload.CompanyID != 0 {
						return fmt.Errorf("empresa %d: %w", id, asynq.SkipRetry)
					}
					// eliminada entre el listado y la evaluación
					j.log.Warn().Int64("company_id", id).Msg("empresa no encontrada durante el escaneo")
					return nil
				}
				return fmt.Errorf("evaluar empresa %d: %w", id, err)
			}
			if eval.Result.TotalAlerts == 0 {
				return nil
			}
			entryID, err := j.publisher.PublishLowStock(gctx, eval)
			if err != nil {
				return fmt.Errorf("publicar empresa %d: %w", id, err)
			}
			published.Add(1)
			alerts.Add(int64(eval.Result.TotalAlerts))
			j.log.Debug().Int64("company_id", id).Str("entry_id", entryID).Int("total_alerts", eval.Result.TotalAlerts).Msg("resumen publicado")
			return nil
		})
	}
	err := g.Wait()

	var ev *zerolog.Event
	if err != nil && !errors.Is(err, asynq.SkipRetry) {
		ev = j.log.Error().Err(err)
	} else {
		ev = j.log.Info()
	}
	ev.Int("companies", len(ids)).
		Int64("published", published.Load()).
		Int64("alerts", alerts.Load()).
		Dur("duration", time.Since(start)).
		Msg("escaneo de stock bajo finalizado")
	return err
}
