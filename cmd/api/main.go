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

	"github.com/jhoicas/prisma-api/docs"
	appanalytics "github.com/jhoicas/prisma-api/internal/application/analytics"
	"github.com/jhoicas/prisma-api/internal/application/auth"
	"github.com/jhoicas/prisma-api/internal/application/blog"
	"github.com/jhoicas/prisma-api/internal/application/portal"
	"github.com/jhoicas/prisma-api/internal/application/sales"
	"github.com/jhoicas/prisma-api/internal/domain/seo"
	"github.com/jhoicas/prisma-api/internal/infrastructure/mail"
	"github.com/jhoicas/prisma-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/prisma-api/internal/infrastructure/pdf"
	"github.com/jhoicas/prisma-api/internal/infrastructure/postgres"
	"github.com/jhoicas/prisma-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/prisma-api/internal/interfaces/http"
	"github.com/jhoicas/prisma-api/pkg/config"
	"github.com/jhoicas/prisma-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

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

	if err := postgres.ApplySchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}

	laudos, err := storage.NewLocalStorage(cfg.Storage.MediaRoot)
	if err != nil {
		log.Fatal().Err(err).Str("media_root", cfg.Storage.MediaRoot).Msg("storage de laudos")
	}
	notifier := mail.NewSMTPNotifier(cfg.SMTP)
	if cfg.SMTP.Host == "" {
		log.Warn().Msg("SMTP_HOST vacío: los mensajes de soporte fallarán")
	}
	events := metrics.Recorder{}

	site := seo.Site{
		Name:            cfg.Site.CompanyName,
		Domain:          cfg.Site.Domain,
		Description:     cfg.Site.Description,
		DefaultKeywords: cfg.Site.DefaultKeywords,
		AnalyticsID:     cfg.Site.AnalyticsID,
		Phone:           cfg.Site.WhatsApp,
		Email:           cfg.Site.ContactEmail,
	}

	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	articleRepo := postgres.NewArticleRepository(pool)
	seoRepo := postgres.NewSEORepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	customerUC := sales.NewCustomerUseCase(customerRepo)
	saleUC := sales.NewSaleUseCase(saleRepo, customerRepo, laudos, events, log)
	provisioner := portal.NewCredentialProvisioner(customerRepo, txRunner, log)
	portalUC := portal.NewUseCase(portal.Deps{
		Customers: customerRepo,
		Sales:     saleRepo,
		Users:     userRepo,
		Tx:        txRunner,
		Storage:   laudos,
		Notifier:  notifier,
		Events:    events,
		JWT: portal.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		Log: log,
	})
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, saleRepo, cfg.Site.AdminTitle)
	reportUC := appanalytics.NewReportUseCase(dashboardUC, infrapdf.NewMarotoPDFGenerator(), cfg.Site.CompanyName)
	articleUC := blog.NewArticleUseCase(articleRepo, seoRepo, site, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    25 << 20,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(metrics.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Prisma Avaliações API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", metrics.Handler())
	app.Get("/api/docs.json", func(c *fiber.Ctx) error {
		c.Type("json")
		return c.SendString(docs.SwaggerInfo.ReadDoc())
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CustomerUC:  customerUC,
		SaleUC:      saleUC,
		Provisioner: provisioner,
		PortalUC:    portalUC,
		DashboardUC: dashboardUC,
		ReportUC:    reportUC,
		ArticleUC:   articleUC,
		Site:        httpRouter.NewSiteHandler(cfg.Site, site),
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
