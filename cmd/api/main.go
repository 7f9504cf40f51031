package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/multitenant-inventory/docs"
	"github.com/jhoicas/multitenant-inventory/internal/application/auth"
	"github.com/jhoicas/multitenant-inventory/internal/application/report"
	"github.com/jhoicas/multitenant-inventory/internal/application/usecase"
	"github.com/jhoicas/multitenant-inventory/internal/domain/authz"
	"github.com/jhoicas/multitenant-inventory/internal/infrastructure/mail"
	"github.com/jhoicas/multitenant-inventory/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/multitenant-inventory/internal/infrastructure/pdf"
	"github.com/jhoicas/multitenant-inventory/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/multitenant-inventory/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/multitenant-inventory/internal/interfaces/http"
	"github.com/jhoicas/multitenant-inventory/pkg/config"
	"github.com/jhoicas/multitenant-inventory/pkg/jwt"
	"github.com/jhoicas/multitenant-inventory/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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

	redisClient, err := infraredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer redisClient.Close()
	blacklist := infraredis.NewTokenBlacklist(redisClient)

	issuer, err := jwt.NewIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration, cfg.JWT.RefreshExpiration)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración JWT")
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	// Informe: PDF en memoria (descarga) o en archivo temporal adjunto (correo).
	renderer := infrapdf.NewReportGenerator(cfg.App.Name, cfg.Report.Compress)
	mailer := mail.NewSMTPMailer(cfg.SMTP)
	reportUC := report.NewUseCase(inventoryRepo, renderer, mailer, cfg.Report.TempDir)

	m := metrics.New(prometheus.NewRegistry())

	app := httpRouter.NewApp(httpRouter.AppOptions{Name: cfg.App.Name, Log: log, Metrics: m})

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: docs.SwaggerJSON,
		Path:        "docs",
		Title:       "Multitenant Inventory API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:   usecase.NewCompanyUseCase(companyRepo),
		ProductUC:   usecase.NewProductUseCase(productRepo, companyRepo),
		InventoryUC: usecase.NewInventoryUseCase(inventoryRepo, companyRepo, productRepo),
		UserUC:      usecase.NewUserUseCase(userRepo),
		AuthUC:      auth.NewAuthUseCase(userRepo, issuer, blacklist),
		ReportUC:    reportUC,
		Issuer:      issuer,
		Policy:      authz.DefaultPolicy(),
		Metrics:     m,
		Health: map[string]httpRouter.Pinger{
			"postgres": pool,
			"redis":    blacklist,
		},
		Log: log,
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
