package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"expenseapi/docs"
	"expenseapi/internal/config"
	"expenseapi/internal/database"
	"expenseapi/internal/database/migration"
	"expenseapi/internal/events"
	handlers "expenseapi/internal/http/handler"
	"expenseapi/internal/http/middleware"
	"expenseapi/internal/logger"
	"expenseapi/internal/otel"
	"expenseapi/internal/repository"
	"expenseapi/internal/repository/mongodb"
	"expenseapi/internal/repository/postgres"
	"expenseapi/internal/service"
	"expenseapi/internal/storage"
)

// @title Expense API
// @version 1.0
// @description Records expenses and lists them by calendar month.
// @BasePath /
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "expense-api: %v\n", err)
		os.Exit(1)
	}
}

// publisher is the event sink handed to the expense service and closed on shutdown.
type publisher interface {
	service.EventPublisher
	Close() error
}

func run() error {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}

	repo, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}

	pub, err := openPublisher(cfg.AMQP, log)
	if err != nil {
		closeStore(context.Background())
		return err
	}

	expenseSvc := service.NewExpenseService(repo, log, service.WithPublisher(pub))

	// Report export is only wired when object storage is configured.
	var reportSvc service.ReportService
	if cfg.MinIO.Enabled() {
		objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			pub.Close()
			closeStore(context.Background())
			return fmt.Errorf("init object storage: %w", err)
		}
		reportSvc = service.NewReportService(repo, objStore, cfg.MinIO.URLExpiry)
		log.Info("report export enabled", zap.String("bucket", cfg.MinIO.Bucket))
	}

	metrics, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		pub.Close()
		closeStore(context.Background())
		return fmt.Errorf("register metrics: %w", err)
	}

	app := newApp(cfg, log, metrics)
	handlers.RegisterRoutes(app, repo, expenseSvc, reportSvc)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + cfg.Port
		log.Info("server listening", zap.String("addr", addr), zap.String("store_backend", cfg.StoreBackend))
		return app.Listen(addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
		return app.ShutdownWithTimeout(cfg.ShutdownTimeout)
	})
	serveErr := g.Wait()

	cleanupCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := shutdownTracing(cleanupCtx); err != nil {
		log.Warn("tracer shutdown failed", zap.Error(err))
	}
	if err := closeStore(cleanupCtx); err != nil {
		log.Warn("store close failed", zap.Error(err))
	}
	if err := pub.Close(); err != nil {
		log.Warn("event publisher close failed", zap.Error(err))
	}

	if serveErr != nil {
		log.Error("server stopped with error", zap.Error(serveErr))
		return serveErr
	}
	log.Info("server stopped")
	return nil
}

func newApp(cfg *config.AppConfig, log *zap.Logger, metrics *middleware.PrometheusMiddleware) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept," + middleware.RequestIDHeader,
	}))
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == middleware.MetricsPath || strings.HasPrefix(c.Path(), "/health")
	})))
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(metrics.Handler())

	app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

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

	return app
}

// openStore connects the configured backend and returns its repository with a matching close func.
func openStore(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (repository.ExpenseRepository, func(context.Context) error, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		dsn, err := database.BuildPostgresDSN(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := migration.Up(dsn, log); err != nil {
			return nil, nil, fmt.Errorf("migrate database: %w", err)
		}
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		log.Info("store connected", zap.String("backend", config.BackendPostgres), zap.String("host", cfg.Database.Host))
		return postgres.NewExpensePostgres(db), closeSQL(db), nil

	default:
		client, err := database.NewMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to mongo: %w", err)
		}
		log.Info("store connected",
			zap.String("backend", config.BackendMongo),
			zap.String("database", cfg.Mongo.Database),
			zap.String("collection", cfg.Mongo.Collection),
		)
		return mongodb.NewExpenseMongo(database.MongoCollection(client, cfg.Mongo)), disconnectMongo(client), nil
	}
}

func closeSQL(db *sql.DB) func(context.Context) error {
	return func(context.Context) error { return db.Close() }
}

func disconnectMongo(client *mongo.Client) func(context.Context) error {
	return client.Disconnect
}

func openPublisher(cfg config.AMQPConfig, log *zap.Logger) (publisher, error) {
	if !cfg.Enabled() {
		return events.Noop{}, nil
	}
	p, err := events.NewPublisher(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}
	log.Info("expense events enabled", zap.String("exchange", cfg.Exchange), zap.String("queue", cfg.Queue))
	return p, nil
}
