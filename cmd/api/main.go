// @title           Semáforo de Stock API
// @version         1.0
// @description     Tablero de estado de inventario: semáforos por producto, movimientos e importación de catálogo.
// @BasePath        /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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

	"github.com/jhoicas/semaforo-stock/docs"
	"github.com/jhoicas/semaforo-stock/internal/application/auth"
	"github.com/jhoicas/semaforo-stock/internal/application/dashboard"
	"github.com/jhoicas/semaforo-stock/internal/application/ingest"
	"github.com/jhoicas/semaforo-stock/internal/application/inventory"
	"github.com/jhoicas/semaforo-stock/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/semaforo-stock/internal/infrastructure/pdf"
	"github.com/jhoicas/semaforo-stock/internal/infrastructure/sheets"
	"github.com/jhoicas/semaforo-stock/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/semaforo-stock/internal/interfaces/http"
	"github.com/jhoicas/semaforo-stock/pkg/config"
	"github.com/jhoicas/semaforo-stock/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Store.Driver).
		Bool("auth", cfg.JWT.Enabled()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer st.Close()

	// Caché de planillas: Redis si REDIS_URL está definido, si no en proceso
	var snapshots interface {
		ingest.SnapshotCache
		httpRouter.Pinger
	}
	if cfg.Redis.URL != "" {
		rc, err := cache.NewRedis(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rc.Close()
		snapshots = rc
	} else {
		snapshots = cache.NewMemoryCache()
	}

	fetcher := sheets.NewHTTPFetcher(cfg.Sheets.Timeout)
	sources := ingest.NewSourcePolicy(cfg.Sheets.ProductsURL)

	registerMovementUC := inventory.NewRegisterMovementUseCase(st.Tx, log.Component("ledger"))
	historyUC := inventory.NewHistoryUseCase(st.Movements, cfg.History.DefaultWindow)
	importUC := ingest.NewImportUseCase(st.Tx, fetcher, sources, log.Component("ingest"))
	previewUC := ingest.NewPreviewUseCase(fetcher, snapshots, cfg.Sheets.CacheTTL, sources, log.Component("ingest"))

	reportGenerator := infrapdf.NewMarotoReportGenerator("Semáforo de Stock", cfg.App.PublicURL)
	dashboardUC := dashboard.NewDashboardUseCase(st.Products, reportGenerator)

	authUC := auth.NewAuthUseCase(
		auth.Credentials{Username: cfg.Auth.Username, PasswordHash: cfg.Auth.PasswordHash},
		auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer},
	)
	if cfg.JWT.Enabled() && !authUC.Enabled() {
		log.Warn().Msg("JWT_SECRET definido sin AUTH_PASSWORD_HASH: el login siempre fallará")
	}

	if cfg.Store.SeedDemo {
		res, seeded, err := ingest.SeedDemo(ctx, st.Products, importUC)
		if err != nil {
			log.Fatal().Err(err).Msg("carga de datos de demostración")
		}
		if seeded {
			log.Info().Int("created", res.Created).Msg("catálogo de demostración cargado")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    10 << 20,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Host = cfg.HTTP.Addr()
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Semáforo de Stock API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Dashboard:        dashboardUC,
		RegisterMovement: registerMovementUC,
		History:          historyUC,
		Import:           importUC,
		Preview:          previewUC,
		AuthUC:           authUC,
		JWTSecret:        cfg.JWT.Secret,
		SheetsURL:        cfg.Sheets.ProductsURL,
		Health: map[string]httpRouter.Pinger{
			"store": st,
			"cache": snapshots,
		},
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
