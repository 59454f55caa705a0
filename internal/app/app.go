package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/stpnv0/EventRegistry/internal/auth"
	"github.com/stpnv0/EventRegistry/internal/config"
	"github.com/stpnv0/EventRegistry/internal/handler"
	"github.com/stpnv0/EventRegistry/internal/metrics"
	"github.com/stpnv0/EventRegistry/internal/middleware"
	"github.com/stpnv0/EventRegistry/internal/repository"
	"github.com/stpnv0/EventRegistry/internal/repository/memory"
	"github.com/stpnv0/EventRegistry/internal/router"
	"github.com/stpnv0/EventRegistry/internal/scheduler"
	"github.com/stpnv0/EventRegistry/internal/service"
	"github.com/stpnv0/EventRegistry/internal/service/ports"
	"github.com/stpnv0/EventRegistry/migrations"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/logger"
)

const appName = "EventRegistry"

type App struct {
	cfg         *config.Config
	log         logger.Logger
	db          *dbpg.DB
	rdb         *redis.Client
	httpServer  *http.Server
	scheduler   *scheduler.Scheduler
	rateLimiter *middleware.RateLimiter
}

type backend struct {
	events        ports.EventRepo
	registrations ports.RegistrationRepo
	locker        ports.EventLocker
}

func New(cfg *config.Config) (*App, error) {
	app := &App{cfg: cfg}

	log, err := logger.InitLogger(
		cfg.Logger.LogEngine(),
		appName,
		cfg.Gin.Mode,
		logger.WithLevel(cfg.Logger.LogLevel()),
	)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	app.log = log

	store, err := app.initStorage()
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	if err = app.initRedis(); err != nil {
		return nil, fmt.Errorf("init redis: %w", err)
	}

	if err = app.initServices(store); err != nil {
		return nil, fmt.Errorf("init services: %w", err)
	}

	return app, nil
}

func (a *App) initStorage() (backend, error) {
	if a.cfg.Storage.InMemory() {
		a.log.Warn("using in-memory storage, data is lost on restart")
		s := memory.New()
		return backend{events: s, registrations: s, locker: s}, nil
	}

	if err := a.runMigrations(); err != nil {
		return backend{}, fmt.Errorf("migrations: %w", err)
	}

	if err := a.initDB(); err != nil {
		return backend{}, fmt.Errorf("init db: %w", err)
	}

	return backend{
		events:        repository.NewEventRepo(a.db),
		registrations: repository.NewRegistrationRepo(a.db),
		locker:        repository.NewEventLocker(a.db),
	}, nil
}

func (a *App) initDB() error {
	db, err := dbpg.New(
		a.cfg.Postgres.DSN(),
		nil,
		&dbpg.Options{
			MaxOpenConns: a.cfg.Postgres.MaxOpenConns,
			MaxIdleConns: a.cfg.Postgres.MaxIdleConns,
		},
	)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	db.Master.SetConnMaxLifetime(a.cfg.Postgres.ConnMaxLifetime)

	if err := db.Master.PingContext(context.Background()); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	a.db = db
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "database connected",
		logger.String("host", a.cfg.Postgres.Host),
		logger.Int("port", a.cfg.Postgres.Port),
		logger.String("database", a.cfg.Postgres.Database),
	)

	return nil
}

// initRedis connects the quota store. Without an address the quota is off.
func (a *App) initRedis() error {
	if a.cfg.Redis.Addr == "" {
		a.log.Info("redis address not set, daily registration quota disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     a.cfg.Redis.Addr,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		_ = rdb.Close()
		return fmt.Errorf("pinging redis: %w", err)
	}

	a.rdb = rdb
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "redis connected",
		logger.String("addr", a.cfg.Redis.Addr),
		logger.Int("daily_quota", a.cfg.Redis.DailyQuota),
	)

	return nil
}

func (a *App) initServices(store backend) error {
	var (
		recorder ports.OutcomeRecorder = metrics.Nop{}
		guards   router.Guards
	)
	if !a.cfg.Metrics.Disabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m := metrics.New(reg)
		recorder = m
		guards.Metrics = m.Handler()
	}

	verifier, err := auth.NewVerifier(
		a.cfg.Auth.JWTSecret,
		auth.WithIssuer(a.cfg.Auth.Issuer),
		auth.WithLeeway(a.cfg.Auth.Leeway),
	)
	if err != nil {
		return fmt.Errorf("init token verifier: %w", err)
	}
	guards.Authenticated = middleware.Authenticate(verifier, true)
	guards.OptionalAuth = middleware.Authenticate(verifier, false)

	a.rateLimiter = middleware.NewRateLimiter(middleware.RateLimitConfig{
		RPS:     a.cfg.RateLimit.RPS,
		Burst:   a.cfg.RateLimit.Burst,
		IdleTTL: a.cfg.RateLimit.IdleTTL,
	})
	guards.Throttle = a.rateLimiter.Middleware(middleware.ByUserOrIP)

	if a.rdb != nil {
		guards.Quota = middleware.Quota(a.rdb, middleware.QuotaRule{
			Name:  "register",
			Limit: a.cfg.Redis.DailyQuota,
			KeyFn: middleware.UserKey,
		}, a.log)
	}

	registrationService := service.NewRegistrationService(
		store.locker,
		store.events,
		recorder,
		service.Policy{
			BlockPastEvents:          !a.cfg.Policy.AllowPastRegistration,
			AttendanceRequiresActive: !a.cfg.Policy.AllowCancelledAttendance,
		},
		a.log,
	)
	eventService := service.NewEventService(store.events, store.locker, registrationService, a.log)
	queryService := service.NewQueryService(store.events, store.registrations)

	a.scheduler = scheduler.New(
		registrationService,
		a.cfg.Scheduler.Interval,
		a.log,
	)

	h := handler.NewHandler(eventService, registrationService, queryService)
	r := router.InitRouter(
		a.cfg.Gin.Mode,
		h,
		guards,
		middleware.RequestID(),
		middleware.RequestLogger(a.log),
		middleware.Recovery(a.log),
	)

	a.httpServer = &http.Server{
		Addr:         a.cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	return nil
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.scheduler.Start(ctx)
	go a.rateLimiter.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.log.LogAttrs(ctx, logger.InfoLevel, "HTTP server starting",
			logger.String("addr", a.httpServer.Addr),
			logger.String("storage", a.cfg.Storage.Driver),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.shutdown()
}

func (a *App) shutdown() error {
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		a.cfg.Server.WriteTimeout,
	)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "HTTP server stopped")

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			return fmt.Errorf("close redis: %w", err)
		}
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "redis connection closed")
	}

	if a.db != nil {
		if err := a.db.Master.Close(); err != nil {
			return fmt.Errorf("close db: %w", err)
		}
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "database connection closed")
	}

	a.log.LogAttrs(context.Background(), logger.InfoLevel, "app stopped")

	return nil
}

func (a *App) runMigrations() error {
	db, err := sql.Open("postgres", a.cfg.Postgres.DSN())
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	a.log.Info("migrations applied successfully")
	return nil
}
