package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/stock-alerts-api/internal/application/inventory"
	"github.com/jhoicas/stock-alerts-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/stock-alerts-api/internal/infrastructure/redis"
	"github.com/jhoicas/stock-alerts-api/jobs"
	"github.com/jhoicas/stock-alerts-api/pkg/config"
	"github.com/jhoicas/stock-alerts-api/pkg/logger"
)

func main() {
	enqueue := flag.Int64("enqueue", -1, "encola un escaneo inmediato (0 = todas las empresas) y termina")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	redisOpts := asynq.RedisClientOpt{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}

	if *enqueue >= 0 {
		client := jobs.NewClient(redisOpts)
		defer client.Close()
		info, err := client.EnqueueLowStockScan(context.Background(), jobs.LowStockScanPayload{
			CompanyID:    *enqueue,
			ScheduledFor: time.Now().UTC(),
		})
		if err != nil {
			log.Fatal().Err(err).Msg("encolar escaneo")
		}
		log.Info().Str("task_id", info.ID).Int64("company_id", *enqueue).Msg("escaneo encolado")
		return
	}

	if cfg.DB.Driver != config.DriverPostgres {
		log.Fatal().Str("db_driver", cfg.DB.Driver).Msg("el worker requiere DB_DRIVER=postgres")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	rdb, err := infraredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer rdb.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	alertsUC := inventory.NewLowStockAlertUseCase(companyRepo, postgres.NewLowStockRepository(pool), log.Named("alerts"), inventory.AlertConfig{
		WindowDays: cfg.Alerts.WindowDays,
	})
	scanJob := jobs.NewLowStockScanJob(
		alertsUC,
		companyRepo,
		infraredis.NewAlertStreamPublisher(rdb, cfg.Redis.AlertStream),
		log,
		cfg.Alerts.ScanConcurrency,
	)

	scheduled, err := jobs.NewLowStockScanTask(jobs.LowStockScanPayload{})
	if err != nil {
		log.Fatal().Err(err).Msg("tarea programada")
	}
	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: redisOpts,
		Logger:    log,
		Handlers:  []jobs.TaskHandler{{Type: jobs.TaskLowStockScan, Handler: scanJob.Handle}},
		Cron:      []jobs.CronRegistration{{Spec: cfg.Alerts.ScanCron, Task: scheduled}},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configurar worker")
	}

	log.Info().
		Str("cron", cfg.Alerts.ScanCron).
		Str("stream", cfg.Redis.AlertStream).
		Msg("worker iniciado")
	if err := worker.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("worker")
	}
	log.Info().Msg("worker detenido")
}
