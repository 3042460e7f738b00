package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"capsterapi/docs"
	"capsterapi/internal/auth"
	"capsterapi/internal/config"
	"capsterapi/internal/database"
	"capsterapi/internal/database/migration"
	handlers "capsterapi/internal/http/handler"
	"capsterapi/internal/http/middleware"
	"capsterapi/internal/inference"
	"capsterapi/internal/otel"
	"capsterapi/internal/repository/postgres"
	"capsterapi/internal/service"
	"capsterapi/internal/storage"
)

// @title Capster API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("invalid timezone %q: %v", cfg.Timezone, err)
	}

	ctx := context.Background()

	// Initialize OpenTelemetry tracing (no-op when OTEL_SDK_DISABLED=true)
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run code-driven migrations if the schema is not in place yet
	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Gateway to the hosted captioning model
	gateway := inference.NewHuggingFace(cfg.Inference)

	// Token verifier for the external identity provider
	verifier, err := auth.NewVerifier(cfg.Auth)
	if err != nil {
		log.Fatalf("failed to initialize token verifier: %v", err)
	}

	// Initialize repositories and services
	postRepo := postgres.NewPostPostgres(db)
	bookingRepo := postgres.NewBookingPostgres(db)
	technicianRepo := postgres.NewTechnicianPostgres(db)
	serviceRepo := postgres.NewServicePostgres(db)
	profileRepo := postgres.NewProfilePostgres(db)

	contentSvc := service.NewContentService(objStore, postRepo, gateway)
	bookingSvc := service.NewBookingService(bookingRepo, technicianRepo, serviceRepo)
	dirSvc := service.NewDirectoryService(technicianRepo, serviceRepo, profileRepo)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.LoggerWithWriter(os.Stdout, loc))
	// HTTP server spans
	app.Use(otelfiber.Middleware())

	// Prometheus request counter plus /metrics exposition
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMw, err := middleware.NewPrometheusMiddleware(registry)
	if err != nil {
		log.Fatalf("failed to initialize metrics: %v", err)
	}
	app.Use(promMw.Handler())

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, verifier, contentSvc, bookingSvc, dirSvc)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
