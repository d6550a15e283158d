package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"

	"github.com/2beens/trainingcoach/internal/auth"
	"github.com/2beens/trainingcoach/internal/config"
	"github.com/2beens/trainingcoach/internal/db"
	"github.com/2beens/trainingcoach/internal/middleware"
	"github.com/2beens/trainingcoach/internal/misc"
	"github.com/2beens/trainingcoach/internal/telemetry/metrics"
	"github.com/2beens/trainingcoach/internal/telemetry/tracing"
	"github.com/2beens/trainingcoach/internal/training/adaptation"
	"github.com/2beens/trainingcoach/internal/training/checkout"
	"github.com/2beens/trainingcoach/internal/training/engine"
	trainingmcp "github.com/2beens/trainingcoach/internal/training/mcp"
	"github.com/2beens/trainingcoach/internal/training/readiness"
	"github.com/2beens/trainingcoach/internal/training/session"
)

const (
	maxRequestBodyBytes    = 1 << 20
	authScanAndCleanPeriod = 8 * time.Hour
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	mcpSecret         string
	versionInfo       string

	config *config.Config
	dbPool *pgxpool.Pool

	redisClient     *redis.Client
	loginChecker    *auth.LoginChecker
	studentResolver *auth.StudentResolver
	authService     *auth.Service

	checkinsRepo *readiness.Repo
	rulesRepo    *adaptation.Repo
	ruleStore    *adaptation.RuleStore
	sessionsRepo *checkout.Repo
	engine       *engine.Engine

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()

	cancelBackground context.CancelFunc
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	AdminUsername           string
	AdminPasswordHash       string
	DBUser                  string
	DBPassword              string
	RedisPassword           string
	MCPSecret               string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config
	dbParams := db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         params.DBUser,
		DBPassword:     params.DBPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	}

	if cfg.RunMigrations {
		if err := db.RunMigrations(dbParams.ConnString()); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	dbPool, err := db.NewDBPool(ctx, dbParams)
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(params.VersionInfo, pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "training", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "training-backend", rdb)
	if err != nil {
		dbPool.Close()
		return nil, err
	}

	authService := auth.NewAuthService(&auth.Admin{
		Username:     params.AdminUsername,
		PasswordHash: params.AdminPasswordHash,
	}, auth.DefaultTTL, rdb)

	checkinsRepo := readiness.NewRepo(dbPool)
	rulesRepo := adaptation.NewRepo(dbPool)
	ruleStore := adaptation.NewRuleStore(
		rulesRepo,
		cfg.Adaptation.RuleCacheSizeMB,
		time.Duration(cfg.Adaptation.RuleCacheTTLSeconds)*time.Second,
	)
	sessionsRepo := checkout.NewRepo(dbPool)

	trainingEngine := engine.New(engine.Params{
		Scorer:   readiness.NewScorer(scorerConfig(cfg.Readiness)),
		Checkins: checkinsRepo,
		Rules:    ruleStore,
		Persister: checkout.NewPersister(
			sessionsRepo,
			metricsManager,
			cfg.Checkout.PersistMaxAttempts,
			cfg.Checkout.PersistTimeout(),
		),
		Registry:       session.NewRegistry(),
		MetricsManager: metricsManager,
		Clock:          session.SystemClock(),
		Location:       cfg.Location(),
	})

	return &Server{
		config:      cfg,
		dbPool:      dbPool,
		mcpSecret:   params.MCPSecret,
		versionInfo: params.VersionInfo,

		redisClient:     rdb,
		authService:     authService,
		loginChecker:    auth.NewLoginChecker(auth.DefaultTTL, rdb),
		studentResolver: auth.NewStudentResolver(rdb),

		checkinsRepo: checkinsRepo,
		rulesRepo:    rulesRepo,
		ruleStore:    ruleStore,
		sessionsRepo: sessionsRepo,
		engine:       trainingEngine,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func scorerConfig(r config.Readiness) readiness.ScorerConfig {
	return readiness.ScorerConfig{
		Weights: readiness.Weights{
			SleepQuality: r.SleepQualityWeight,
			SleepHours:   r.SleepHoursWeight,
			Soreness:     r.SorenessWeight,
			Stress:       r.StressWeight,
			Energy:       r.EnergyWeight,
		},
		OptimalSleepHours:   r.OptimalSleepHours,
		SleepPenaltyPerHour: r.SleepPenaltyPerHr,
		GreenThreshold:      r.GreenThreshold,
		YellowThreshold:     r.YellowThreshold,
	}
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("training-router"))

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	miscHandler := misc.NewHandler(s.versionInfo, s.authService)
	miscHandler.SetupRoutes(r, reqRateLimiter, s.metricsManager, s.config.LoginRateLimit, s.config.AllowedOrigins)

	trainingRouter := r.PathPrefix("/training").Subrouter()

	engineHandler := engine.NewHandler(s.engine)
	engineHandler.SetupRoutes(
		trainingRouter,
		middleware.RateLimit(reqRateLimiter, s.metricsManager, "checkin", s.config.CheckinRateLimit),
	)

	checkinsHandler := readiness.NewHandler(s.checkinsRepo, s.config.Location())
	trainingRouter.HandleFunc("/checkins", checkinsHandler.HandleList).Methods("GET").Name("list-checkins")

	sessionsHandler := checkout.NewHandler(s.sessionsRepo)
	trainingRouter.HandleFunc("/sessions/list/page/{page}/size/{size}", sessionsHandler.HandleList).Methods("GET").Name("list-sessions")

	rulesHandler := adaptation.NewHandler(s.rulesRepo, s.ruleStore)
	trainingRouter.HandleFunc("/adaptation/rules", rulesHandler.HandleList).Methods("GET").Name("list-rules")
	trainingRouter.HandleFunc("/adaptation/rules/{level}", rulesHandler.HandleUpdate).Methods("PUT").Name("update-rule")

	mcpServer := trainingmcp.NewServer(s.dbPool, s.checkinsRepo, s.sessionsRepo)
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return mcpServer
	}, nil)
	r.PathPrefix("/mcp").Handler(otelhttp.NewHandler(mcpHandler, "mcp")).Name("mcp")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(
		s.mcpSecret,
		s.loginChecker,
		s.studentResolver,
	)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.LimitAndDrainRequest(maxRequestBodyBytes))

	return r, nil
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(host, strconv.Itoa(s.config.MetricsPort))
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	if s.config.MetricsPort > 0 {
		go func() {
			log.Debugf(" > metrics listening on: [%s]", metricsAddr)
			err := s.metricsHttpServer.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("metrics service, listen and serve: %s", err)
			}
		}()
	}

	bgCtx, cancel := context.WithCancel(ctx)
	s.cancelBackground = cancel
	go s.sweepIdleSessions(bgCtx, s.config.Session.SweepInterval(), s.config.Session.IdleTimeout())
	go s.cleanAdminSessions(bgCtx, authScanAndCleanPeriod)

	s.metricsManager.GaugeLifeSignal.Set(1)
}

// sweepIdleSessions abandons in-progress sessions nobody touched for idleTimeout.
func (s *Server) sweepIdleSessions(ctx context.Context, interval, idleTimeout time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if swept := s.engine.SweepIdle(idleTimeout); swept > 0 {
				log.Infof("idle sweep: abandoned %d session(s)", swept)
			}
		}
	}
}

func (s *Server) cleanAdminSessions(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.authService.ScanAndClean(ctx)
		}
	}
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)
	if s.cancelBackground != nil {
		s.cancelBackground()
	}

	if active := s.engine.ActiveSessions(); active > 0 {
		log.Warnf("shutting down with %d in-progress session(s), they will be lost", active)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var shutdownErr error
	if s.httpServer != nil {
		shutdownErr = multierr.Append(shutdownErr, s.httpServer.Shutdown(ctx))
		log.Warnln("server shut down")
	}
	if s.metricsHttpServer != nil {
		shutdownErr = multierr.Append(shutdownErr, s.metricsHttpServer.Shutdown(ctx))
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		shutdownErr = multierr.Append(shutdownErr, s.redisClient.Close())
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	for _, err := range multierr.Errors(shutdownErr) {
		log.Errorf(" >>> graceful shutdown: %s", err)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
