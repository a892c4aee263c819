package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"hospital-admin-api/config"
	"hospital-admin-api/internal/application/jobs"
	"hospital-admin-api/internal/application/ports"
	"hospital-admin-api/internal/application/services"
	"hospital-admin-api/internal/domain/catalog"
	"hospital-admin-api/internal/infrastructure/catalogfile"
	"hospital-admin-api/internal/infrastructure/db/memory"
	"hospital-admin-api/internal/infrastructure/db/postgres"
	pgstore "hospital-admin-api/internal/infrastructure/db/postgres/store"
	"hospital-admin-api/internal/infrastructure/jwt"
	"hospital-admin-api/internal/infrastructure/metrics"
	"hospital-admin-api/internal/infrastructure/mq"
	"hospital-admin-api/internal/interface/api/rest"
	"hospital-admin-api/internal/interface/api/rest/middleware"
	"hospital-admin-api/pkg/rmqconsumer"
)

const (
	shutdownTimeout = 5 * time.Second
	healthTimeout   = 2 * time.Second
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	store      ports.Store
	catalog    catalog.Provider
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	gauges     *jobs.AccountsGauges
	scheduler  *jobs.Scheduler
	publisher  ports.EventPublisher
	mq         ports.RabbitMQ
	mqConsumer ports.RMQConsumer
}

// LoadConfig reads .env (if present) and the environment.
func LoadConfig() (config.Config, error) {
	if err := config.LoadEnvFile(".env"); err != nil {
		return config.Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func NewApp(ctx context.Context, logger *zap.Logger, cfg config.Config) (*App, error) {
	a := &App{
		logger:    logger,
		cfg:       cfg,
		mCounter:  metrics.NewCounter(),
		publisher: mq.Discard,
	}

	// catalog
	provider, err := catalogfile.Load(cfg.App.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	a.catalog = provider
	logger.Info("catalog loaded",
		zap.String("path", cfg.App.CatalogPath),
		zap.String("version", provider.Version()),
	)

	// storage
	switch cfg.App.StorageDriver {
	case config.StorageDriverMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		a.store = memory.New(nil)
	default:
		dbDsn, err := cfg.DBDSN()
		if err != nil {
			return nil, fmt.Errorf("DB config: %w", err)
		}
		a.db, err = postgres.New(ctx, logger, dbDsn, cfg.DB.MaxConns)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.store = pgstore.New(a.db)
	}

	// rabbitMQ
	if cfg.MQ.Enabled {
		if err = a.initMQ(ctx); err != nil {
			a.Close()
			return nil, err
		}
	} else {
		logger.Warn("rabbitMQ disabled, audit events are not published")
	}

	// jobs
	a.gauges = jobs.NewAccountsGauges(a.store, metrics.NewAccountsGauge(), logger)
	a.scheduler = jobs.NewScheduler(logger)
	if err = a.scheduler.Add("accounts_gauges", cfg.App.GaugeSchedule, a.gauges); err != nil {
		a.Close()
		return nil, err
	}

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	a.router = gin.New()
	a.router.Use(gin.Recovery())
	// doctor creation answers with a plaintext password
	a.router.Use(middleware.RequestLogGin(logger, a.mCounter, rest.RouteDoctors))

	// httpServer
	a.httpSrv = &http.Server{
		Addr:              cfg.App.Host + ":" + cfg.App.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return a, nil
}

func (a *App) initMQ(ctx context.Context) error {
	rabbitDsn, err := a.cfg.AMQPDSN()
	if err != nil {
		return fmt.Errorf("RabbitMQ config: %w", err)
	}

	rbMQ := mq.New(a.cfg.MQ, a.logger)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		return fmt.Errorf("connect to rabbitMQ: %w", err)
	}
	a.mq = rbMQ
	if err = rbMQ.Init(); err != nil {
		return fmt.Errorf("init rabbitMQ: %w", err)
	}
	a.publisher = rbMQ

	// rmqConsumer
	consumer := rmqconsumer.New(a.cfg.MQ, a.logger, rbMQ.GetConn())
	if err = consumer.Connect(rabbitDsn); err != nil {
		return fmt.Errorf("connect rabbitMQ consumer: %w", err)
	}
	if err = consumer.Init(); err != nil {
		return fmt.Errorf("init rabbitMQ consumer: %w", err)
	}
	a.mqConsumer = consumer

	return nil
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.mq != nil && a.mq.GetConn() != nil {
		_ = a.mq.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	if a.mq != nil {
		g.Go(func() error {
			a.mq.PublisherWorker(ctx)
			return nil
		})

		g.Go(func() error {
			a.mqConsumer.DeliveryWorker(ctx)
			return nil
		})
	}

	g.Go(func() error {
		a.gauges.Run()
		a.scheduler.Run(ctx)
		return nil
	})

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
		return err
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	// services
	jwtService := jwt.New(a.cfg.App.JWTSecret)
	credentials := services.NewCredentialGenerator(a.cfg.App.EmailDomain)
	lifecycleService := services.NewLifecycleService(a.store, a.catalog, credentials, a.publisher, a.mCounter, a.logger)
	auditService := services.NewAuditService(a.store)
	statisticsService := services.NewStatisticsService(a.store, a.catalog, a.cfg.App.RecentActivity)

	// controllers
	rest.NewAccountController(a.router, lifecycleService, a.logger, jwtService)
	rest.NewAuditController(a.router, auditService, a.logger, jwtService)
	rest.NewStatisticsController(a.router, statisticsService, a.logger, jwtService)
	rest.NewCatalogController(a.router, a.catalog, jwtService)

	// ops
	a.router.GET(rest.RouteHealth, a.healthHandler)
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) healthHandler(c *gin.Context) {
	if a.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		if err := a.db.Ping(ctx); err != nil {
			a.logger.Warn("health check: database unreachable", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"catalog_version": a.catalog.Version(),
	})
}

func (a *App) Logger() *zap.Logger { return a.logger }
