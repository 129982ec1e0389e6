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

	"github.com/hanbit-parts/warehouse-api/internal/application/auth"
	"github.com/hanbit-parts/warehouse-api/internal/application/catalog"
	"github.com/hanbit-parts/warehouse-api/internal/application/export"
	"github.com/hanbit-parts/warehouse-api/internal/application/receiving"
	"github.com/hanbit-parts/warehouse-api/internal/application/sequence"
	"github.com/hanbit-parts/warehouse-api/internal/application/shipping"
	"github.com/hanbit-parts/warehouse-api/internal/application/stock"
	"github.com/hanbit-parts/warehouse-api/internal/application/warehouse"
	infrapdf "github.com/hanbit-parts/warehouse-api/internal/infrastructure/pdf"
	"github.com/hanbit-parts/warehouse-api/internal/infrastructure/postgres"
	infraredis "github.com/hanbit-parts/warehouse-api/internal/infrastructure/redis"
	httpRouter "github.com/hanbit-parts/warehouse-api/internal/interfaces/http"
	"github.com/hanbit-parts/warehouse-api/pkg/clock"
	"github.com/hanbit-parts/warehouse-api/pkg/config"
	"github.com/hanbit-parts/warehouse-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool (lecturas sueltas); las mutaciones de
	// workflow corren sobre repos atados a tx vía el TxRunner.
	receivingRepo := postgres.NewReceivingNoteRepository(pool)
	shippingRepo := postgres.NewShippingNoteRepository(pool)
	bucketRepo := postgres.NewInventoryBucketRepository(pool)
	partRepo := postgres.NewPartRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	clk := clock.System{}
	allocator := sequence.NewAllocator()

	// Publicador de eventos de catálogo (opcional, REDIS_ADDR lo activa)
	var eventPublisher catalog.EventPublisher
	if cfg.Redis.Addr != "" {
		publisher := infraredis.NewPublisher(cfg.Redis)
		if err := publisher.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis inaccesible, eventos de catálogo desactivados")
		} else {
			eventPublisher = publisher
			defer publisher.Close()
		}
	}

	receivingUC := receiving.NewUseCase(txRunner, receivingRepo, partRepo, warehouseRepo, allocator, clk)
	shippingUC := shipping.NewUseCase(
		txRunner, shippingRepo, bucketRepo, partRepo, warehouseRepo,
		allocator, infrapdf.NewPickingListGenerator(), clk,
	)
	stockUC := stock.NewUseCase(bucketRepo, txRunner, clk)
	catalogUC := catalog.NewUseCase(partRepo, categoryRepo, eventPublisher, clk, log)
	warehouseUC := warehouse.NewUseCase(warehouseRepo, clk)
	exportUC := export.NewUseCase(receivingRepo, shippingRepo)
	authUC := auth.NewUseCase(userRepo, warehouseRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, clk)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs. El middleware entra
	// en pánico si el archivo no existe, así que solo se registra cuando
	// docs/swagger.json fue generado (swag init).
	const swaggerFile = "./docs/swagger.json"
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Warehouse API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, UI de documentación deshabilitada")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ReceivingUC: receivingUC,
		ShippingUC:  shippingUC,
		StockUC:     stockUC,
		CatalogUC:   catalogUC,
		WarehouseUC: warehouseUC,
		ExportUC:    exportUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
