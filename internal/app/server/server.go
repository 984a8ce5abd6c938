package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"hrpay/internal/domain/audit"
	"hrpay/internal/domain/core"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/domain/records"
	"hrpay/internal/platform/config"
	cryptoutil "hrpay/internal/platform/crypto"
	"hrpay/internal/platform/db"
	"hrpay/internal/platform/logging"
	"hrpay/internal/platform/metrics"
	"hrpay/internal/transport/http/api"
	audithandler "hrpay/internal/transport/http/handlers/audit"
	employeeshandler "hrpay/internal/transport/http/handlers/employees"
	recordshandler "hrpay/internal/transport/http/handlers/records"
	salarieshandler "hrpay/internal/transport/http/handlers/salaries"
	"hrpay/internal/transport/http/middleware"
)

type App struct {
	Config    config.Config
	DB        *db.Pool
	Router    http.Handler
	Metrics   *metrics.Collector
	Employees *core.Service
	Records   *records.Service
	Salaries  *payroll.Service
	Audit     *audit.Service
}

// New wires stores, services and the router. Without DATABASE_URL every store
// lives in memory.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	crypto, err := cryptoutil.New(cfg.DataEncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("encryption key: %w", err)
	}

	app := &App{Config: cfg, Metrics: metrics.New()}

	var (
		employeeStore core.StoreAPI
		recordStore   records.StoreAPI
		salaryStore   payroll.StoreAPI
		auditStore    audit.StoreAPI
	)
	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		app.DB = pool
		if cfg.RunMigrations {
			if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrations: %w", err)
			}
		}
		employeeStore = core.NewPGStore(pool, crypto)
		recordStore = records.NewPGStore(pool)
		salaryStore = payroll.NewPGStore(pool)
		auditStore = audit.NewPGStore(pool)
	} else {
		log.Warn().Msg("DATABASE_URL not set, using in-memory stores")
		employeeStore = core.NewMemoryStore()
		recordStore = records.NewMemoryStore()
		salaryStore = payroll.NewMemoryStore()
		auditStore = audit.NewMemoryStore()
	}

	calendar := payroll.Calendar{WorkDaysPerMonth: cfg.WorkDaysPerMonth, WorkHoursPerDay: cfg.WorkHoursPerDay}
	app.Employees = core.NewService(employeeStore, cfg.SocialTaxRate, cfg.INPSTaxRate)
	app.Records = records.NewService(recordStore, app.Employees, calendar)
	app.Salaries = payroll.NewService(app.Employees, recordStore, salaryStore, calendar, cfg.PayrollWorkers)
	app.Salaries.Observe = app.Metrics.RecordCalculations
	app.Audit = audit.New(auditStore)
	app.Employees.OnDelete(app.Records.DeleteByEmployee)
	app.Employees.OnDelete(app.Salaries.DeleteByEmployee)

	if cfg.RunSeed {
		if err := Seed(ctx, app.Employees, app.Records); err != nil {
			app.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	app.Router = app.routes()
	return app, nil
}

func (a *App) routes() http.Handler {
	cfg := a.Config
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(a.Metrics))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-Total-Count", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.Employees.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, a.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

		employeesHandler := employeeshandler.NewHandler(a.Employees, a.Records, a.Metrics, cfg.MaxBodyBytes)
		employeesHandler.Audit = a.Audit
		employeesHandler.RegisterRoutes(r)

		recordsHandler := recordshandler.NewHandler(a.Records)
		recordsHandler.Audit = a.Audit
		recordsHandler.RegisterRoutes(r)

		salariesHandler := salarieshandler.NewHandler(a.Salaries, payroll.PayslipOptions{
			Currency: cfg.Currency,
			Locale:   cfg.ReportLocale,
		})
		salariesHandler.Audit = a.Audit
		salariesHandler.RegisterRoutes(r)

		auditHandler := audithandler.NewHandler(a.Audit)
		auditHandler.RegisterRoutes(r)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusNotFound, "not_found", "route not found", middleware.GetRequestID(r.Context()))
	})
	return router
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

// Run loads configuration, serves until SIGINT or SIGTERM and then drains
// in-flight requests.
func Run() error {
	cfg := config.Load()
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("env", cfg.Environment).Msg("hrpay server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
