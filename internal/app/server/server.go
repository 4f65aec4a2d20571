package server

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrms/internal/domain/attendance"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/learning"
	"hrms/internal/domain/leave"
	"hrms/internal/domain/notifications"
	"hrms/internal/domain/payroll"
	"hrms/internal/domain/performance"
	"hrms/internal/domain/recruitment"
	"hrms/internal/domain/reports"
	"hrms/internal/domain/succession"
	"hrms/internal/domain/timetracking"
	"hrms/internal/platform/config"
	"hrms/internal/platform/db"
	"hrms/internal/platform/metrics"
	"hrms/internal/propagation"
	adminhandler "hrms/internal/transport/http/handlers/admin"
	attendancehandler "hrms/internal/transport/http/handlers/attendance"
	authhandler "hrms/internal/transport/http/handlers/auth"
	employeehandler "hrms/internal/transport/http/handlers/employees"
	learninghandler "hrms/internal/transport/http/handlers/learning"
	leavehandler "hrms/internal/transport/http/handlers/leave"
	notificationshandler "hrms/internal/transport/http/handlers/notifications"
	payrollhandler "hrms/internal/transport/http/handlers/payroll"
	performancehandler "hrms/internal/transport/http/handlers/performance"
	recruitmenthandler "hrms/internal/transport/http/handlers/recruitment"
	reportshandler "hrms/internal/transport/http/handlers/reports"
	successionhandler "hrms/internal/transport/http/handlers/succession"
	timetrackinghandler "hrms/internal/transport/http/handlers/timetracking"
	"hrms/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	Pool    *pgxpool.Pool
	Router  http.Handler
	Metrics *metrics.Collector

	bus  *propagation.Bus
	subs []*propagation.Subscription
}

// New wires the whole application: database, change feed, dispatcher,
// services, and the HTTP router.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect failed: %w", err)
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations failed: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed failed: %w", err)
		}
	}

	collector := metrics.New()

	// Change feed and dispatcher. Services publish to the bus; the
	// dispatcher's handlers write through stores only, so derived writes
	// never re-enter the feed.
	bus := propagation.NewBus(ctx, cfg.PropagationQueueLen, collector)

	attendanceStore := attendance.NewStore(pool, cfg.WorkDayHours)
	performanceStore := performance.NewStore(pool)
	learningStore := learning.NewStore(pool)

	dispatcher := propagation.NewDispatcher(collector)
	dispatcher.Register(propagation.DomainEmployee, propagation.NewEmployeeHandler(performanceStore))
	dispatcher.Register(propagation.DomainTimeTracking, propagation.NewTimeTrackingHandler(attendanceStore))
	dispatcher.Register(propagation.DomainLeave, propagation.NewLeaveHandler(attendanceStore))
	dispatcher.Register(propagation.DomainPerformance, propagation.NewPerformanceHandler(learningStore))
	dispatcher.Register(propagation.DomainLearning, propagation.NewLearningHandler(performanceStore))
	subs := dispatcher.Attach(bus)

	authStore := auth.NewStore(pool)
	notifySvc := notifications.NewService(notifications.NewStore(pool))
	employeeSvc := employee.NewService(employee.NewStore(pool), bus)
	attendanceSvc := attendance.NewService(attendanceStore, cfg.LateAfter)
	timetrackingSvc := timetracking.NewService(timetracking.NewStore(pool), bus)
	leaveSvc := leave.NewService(leave.NewStore(pool), bus, notifySvc)
	performanceSvc := performance.NewService(performanceStore, bus)
	learningSvc := learning.NewService(learningStore, bus)
	payrollSvc := payroll.NewService(payroll.NewStore(pool))
	recruitmentSvc := recruitment.NewService(recruitment.NewStore(pool))
	successionSvc := succession.NewService(succession.NewStore(pool))
	reportsSvc := reports.NewService(employeeSvc, attendanceSvc, payrollSvc)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

		authhandler.NewHandler(authStore, cfg.JWTSecret, cfg.TokenTTL, cfg.RateLimitPerMinute).RegisterRoutes(r)
		employeehandler.NewHandler(employeeSvc).RegisterRoutes(r)
		attendancehandler.NewHandler(attendanceSvc).RegisterRoutes(r)
		timetrackinghandler.NewHandler(timetrackingSvc).RegisterRoutes(r)
		leavehandler.NewHandler(leaveSvc).RegisterRoutes(r)
		performancehandler.NewHandler(performanceSvc).RegisterRoutes(r)
		learninghandler.NewHandler(learningSvc).RegisterRoutes(r)
		payrollhandler.NewHandler(payrollSvc).RegisterRoutes(r)
		recruitmenthandler.NewHandler(recruitmentSvc).RegisterRoutes(r)
		successionhandler.NewHandler(successionSvc).RegisterRoutes(r)
		notificationshandler.NewHandler(notifySvc).RegisterRoutes(r)
		reportshandler.NewHandler(reportsSvc).RegisterRoutes(r)
		if cfg.MetricsEnabled {
			adminhandler.NewHandler(collector).RegisterRoutes(r)
		}
	})

	return &App{
		Config:  cfg,
		Pool:    pool,
		Router:  router,
		Metrics: collector,
		bus:     bus,
		subs:    subs,
	}, nil
}

// Close stops event delivery and releases the database pool.
func (a *App) Close() {
	for _, sub := range a.subs {
		sub.Close()
	}
	a.bus.Close()
	a.Pool.Close()
}

func Run() {
	cfg := config.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app, err := New(ctx, cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("server shutdown", "err", err)
		}
	}()

	slog.Info("server listening", "addr", cfg.Addr, "env", cfg.Environment)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server failed: %v", err)
	}
}
