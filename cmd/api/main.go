package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	_ "github.com/jhoicas/stock-alerts-api/docs"
	"github.com/jhoicas/stock-alerts-api/internal/application/inventory"
	"github.com/jhoicas/stock-alerts-api/internal/domain/entity"
	"github.com/jhoicas/stock-alerts-api/internal/domain/repository"
	"github.com/jhoicas/stock-alerts-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/stock-alerts-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-alerts-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stock-alerts-api/internal/interfaces/http"
	"github.com/jhoicas/stock-alerts-api/pkg/config"
	"github.com/jhoicas/stock-alerts-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		txRunner     inventory.TxRunner
		companyRepo  repository.CompanyRepository
		lowStockRepo repository.LowStockRepository
	)
	switch cfg.DB.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		seedDemo(ctx, store, log)
		txRunner, companyRepo, lowStockRepo = store, store, store
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner = postgres.NewTxRunner(pool)
		companyRepo = postgres.NewCompanyRepository(pool)
		lowStockRepo = postgres.NewLowStockRepository(pool)
	}

	provisionUC := inventory.NewProvisionProductUseCase(txRunner, log.Named("provision"))
	alertsUC := inventory.NewLowStockAlertUseCase(companyRepo, lowStockRepo, log.Named("alerts"), inventory.AlertConfig{
		WindowDays: cfg.Alerts.WindowDays,
	})
	reportUC := inventory.NewLowStockReportUseCase(alertsUC, infrapdf.NewMarotoAlertReportGenerator(), log.Named("report"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Alerts API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProvisionProduct: provisionUC,
		LowStockAlerts:   alertsUC,
		LowStockReport:   reportUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Fatal().Err(err).Msg("servidor HTTP")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

// seedDemo deja datos de demostración para probar la API sin base de datos: un producto
// bajo el umbral, con ventas recientes y un proveedor vinculado.
func seedDemo(ctx context.Context, store *memory.Store, log *logger.Logger) {
	company := store.CreateCompany("Demo")
	wh := store.CreateWarehouse(company.ID, "Principal")
	pt := store.CreateProductType(company.ID, "General", entity.DefaultLowStockThreshold)

	typeID := pt.ID
	productID, err := inventory.NewProvisionProductUseCase(store, log.Named("seed")).Provision(ctx, inventory.ProvisionCommand{
		Name:            "Tornillo 3/8",
		SKU:             "DEMO-001",
		Price:           decimal.RequireFromString("1500.00"),
		WarehouseID:     wh.ID,
		InitialQuantity: 8,
		ProductTypeID:   &typeID,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("sembrar producto de demostración")
	}
	supplier := store.CreateSupplier("Ferretería Central", "compras@ferreteria.example")
	if err := store.LinkSupplier(productID, supplier.ID); err != nil {
		log.Fatal().Err(err).Msg("vincular proveedor de demostración")
	}
	store.RecordSale(company.ID, time.Now().Add(-72*time.Hour),
		memory.SaleLine{ProductID: productID, Quantity: 24, PriceAtSale: decimal.RequireFromString("1500.00")})

	log.Info().
		Int64("company_id", company.ID).
		Int64("warehouse_id", wh.ID).
		Int64("product_type_id", pt.ID).
		Int64("product_id", productID).
		Msg("motor en memoria con datos de demostración")
}
