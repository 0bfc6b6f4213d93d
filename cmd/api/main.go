package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/passport-api/internal/application/artifacts"
	"github.com/jhoicas/passport-api/internal/application/audit"
	"github.com/jhoicas/passport-api/internal/application/catalog"
	"github.com/jhoicas/passport-api/internal/application/cbam"
	"github.com/jhoicas/passport-api/internal/application/compliance"
	"github.com/jhoicas/passport-api/internal/application/jobs"
	"github.com/jhoicas/passport-api/internal/application/org"
	"github.com/jhoicas/passport-api/internal/application/passport"
	"github.com/jhoicas/passport-api/internal/application/reports"
	"github.com/jhoicas/passport-api/internal/application/summary"
	"github.com/jhoicas/passport-api/internal/application/tenancy"
	"github.com/jhoicas/passport-api/internal/domain/repository"
	"github.com/jhoicas/passport-api/internal/infrastructure/export"
	"github.com/jhoicas/passport-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/passport-api/internal/infrastructure/pdf"
	"github.com/jhoicas/passport-api/internal/infrastructure/postgres"
	"github.com/jhoicas/passport-api/internal/infrastructure/qr"
	"github.com/jhoicas/passport-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/passport-api/internal/interfaces/http"
	"github.com/jhoicas/passport-api/pkg/config"
	"github.com/jhoicas/passport-api/pkg/logger"

	_ "github.com/jhoicas/passport-api/docs"
)

// @title                       Passport API
// @version                     1.0
// @description                 Pasaportes digitales de baterías, catálogo, CBAM y registros de cumplimiento multi-organización.
// @BasePath                    /
// @securityDefinitions.apikey  ApiKey
// @in                          header
// @name                        X-API-Key
// @securityDefinitions.apikey  AdminToken
// @in                          header
// @name                        X-Admin-Token
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
		Str("db_driver", cfg.DB.Driver).
		Str("storage", cfg.Storage.Mode).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// ── Persistencia ──
	var tx repository.TxRunner
	switch cfg.DB.Driver {
	case "memory":
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		tx = memory.NewStore(log)
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.ApplySchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
		if cfg.DB.EnforceRLS {
			n := postgres.EnsureRLSPolicies(ctx, pool, log)
			log.Info().Int("tables", n).Msg("políticas RLS aplicadas")
		}
		tx = postgres.NewTxRunner(pool, log)
	}

	// ── Almacenamiento de artefactos ──
	var (
		objectStore artifacts.ObjectStore
		uploads     *storage.LocalStore
	)
	ttl := time.Duration(cfg.Storage.UploadTokenTTL) * time.Minute
	switch cfg.Storage.Mode {
	case "s3":
		s3, err := storage.NewS3Store(ctx, storage.S3Config{
			Endpoint:   cfg.Storage.S3Endpoint,
			AccessKey:  cfg.Storage.S3AccessKey,
			SecretKey:  cfg.Storage.S3SecretKey,
			UseSSL:     cfg.Storage.S3UseSSL,
			Bucket:     cfg.Storage.Bucket,
			PublicURL:  cfg.Storage.S3PublicURL,
			PresignTTL: ttl,
		}, log)
		if err != nil {
			log.Fatal().Err(err).Msg("almacenamiento S3")
		}
		objectStore = s3
	default:
		if cfg.Storage.UploadSecret == "" {
			log.Warn().Msg("UPLOAD_TOKEN_SECRET vacío: las URLs de subida prefirmadas no son seguras")
		}
		local, err := storage.NewLocalStore(cfg.Storage.LocalPath, cfg.HTTP.PublicAPIURL, cfg.Storage.UploadSecret, ttl, log)
		if err != nil {
			log.Fatal().Err(err).Msg("almacenamiento local")
		}
		objectStore, uploads = local, local
	}

	// ── Renderers y casos de uso ──
	csvRenderer := export.NewCSVRenderer()
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	reportUC := reports.NewUseCase(tx, reports.Renderers{
		CbamCSV: csvRenderer,
		CbamXML: export.NewCbamXMLRenderer(),
		CbamPDF: pdfGenerator,
		DopPDF:  pdfGenerator,
	}, log)

	deps := httpRouter.RouterDeps{
		Resolver:       tenancy.NewResolver(tx),
		AdminTokenHash: cfg.Admin.TokenHash,
		OrgUC:          org.NewUseCase(tx, log),
		CatalogUC:      catalog.NewUseCase(tx),
		PassportUC:     passport.NewUseCase(tx, export.NewLinkedData(), qr.NewGenerator(), cfg.App.BasePublicURL, log),
		ArtifactUC:     artifacts.NewUseCase(tx, objectStore, log),
		CbamUC:         cbam.NewUseCase(tx, decimal.NewFromFloat(cfg.CBAM.CertificatePricePerTonne), log),
		ComplianceUC:   compliance.NewUseCase(tx),
		JobUC:          jobs.NewUseCase(tx, csvRenderer, log),
		ReportUC:       reportUC,
		AuditUC:        audit.NewUseCase(tx),
		SummaryUC:      summary.NewUseCase(tx),
	}
	if uploads != nil {
		deps.Uploads = uploads
	}
	if cfg.Admin.TokenHash == "" {
		log.Warn().Msg("ADMIN_TOKEN_HASH vacío: rutas de organizaciones y API keys deshabilitadas")
	}

	// ── HTTP ──
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    artifacts.MaxUploadBytes + 1<<20,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.HTTP.CORSOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, X-API-Key, X-Admin-Token",
		AllowMethods: "GET,POST,PUT,PATCH,OPTIONS",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Passport API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, deps)

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
