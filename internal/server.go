package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"

	"github.com/2beens/repvision/internal/analysis"
	"github.com/2beens/repvision/internal/config"
	"github.com/2beens/repvision/internal/db"
	"github.com/2beens/repvision/internal/delivery"
	"github.com/2beens/repvision/internal/exercise"
	"github.com/2beens/repvision/internal/jobs"
	"github.com/2beens/repvision/internal/landmarks"
	"github.com/2beens/repvision/internal/middleware"
	"github.com/2beens/repvision/internal/telemetry/metrics"
	"github.com/2beens/repvision/internal/telemetry/tracing"
	"github.com/2beens/repvision/pkg"
)

const megabyte = 1024 * 1024

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	apiTokenHash      string // bcrypt hash of the API bearer token, empty disables auth
	versionInfo       string

	config          *config.Config
	dbPool          *pgxpool.Pool
	redisClient     *redis.Client
	analysisService *analysis.Service
	consumer        *jobs.Consumer
	consumerDone    chan struct{}

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	APITokenHash            string
	PostgresPassword        string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	registry, err := exercise.NewDefaultRegistry(cfg.Exercises)
	if err != nil {
		return nil, fmt.Errorf("exercise registry: %w", err)
	}
	for _, profile := range registry.Profiles() {
		log.Debugf("exercise [%s]: extend %.0f, contract %.0f, margin %.0f",
			profile.Name, profile.ExtendThreshold, profile.ContractThreshold, profile.Margin)
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBPassword:     params.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	} else if err := db.EnsureSchema(ctx, dbPool); err != nil {
		log.Errorf("%s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("repvision", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})
	if params.HoneycombTracingEnabled {
		rdb.AddHook(redisotel.NewTracingHook())
	}

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "repvision")
	if err != nil {
		dbPool.Close()
		return nil, err
	}

	analysisService := analysis.NewService(
		analysis.NewAnalyzer(registry, metricsManager),
		analysis.NewRepo(dbPool),
		cfg.CacheSizeMB*megabyte,
	)

	s := &Server{
		config:          cfg,
		dbPool:          dbPool,
		redisClient:     rdb,
		apiTokenHash:    params.APITokenHash,
		versionInfo:     params.VersionInfo,
		analysisService: analysisService,
		consumerDone:    make(chan struct{}),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	if cfg.JobsEnabled() {
		tracedHttpClient := &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   10 * time.Minute,
		}
		resultsURL := delivery.BackendResultsURL(cfg.BackendHost, cfg.BackendPort, cfg.BackendResultsPath)
		log.Debugf("delivering job results to: %s", resultsURL)

		s.consumer = jobs.NewConsumer(jobs.ConsumerParams{
			Source:         jobs.NewQueue(rdb, cfg.QueueName, time.Duration(cfg.PopTimeoutSeconds)*time.Second),
			Fetcher:        landmarks.NewFetcher(tracedHttpClient),
			Service:        analysisService,
			Deliverer:      delivery.NewClient(resultsURL, tracedHttpClient),
			MetricsManager: metricsManager,
			Workers:        cfg.Workers,
		})
	} else {
		log.Warnln("backend host not set, jobs consumer disabled")
	}

	return s, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("repvision-router"))

	r.HandleFunc("/", s.handleRoot).Methods("GET")
	r.HandleFunc("/health", s.handleHealth).Methods("GET")

	analysisHandler := analysis.NewHandler(s.analysisService)
	analysisHandler.SetupRoutes(r)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.apiTokenHash)
	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.CorsAllowedOrigins...))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.RateLimit(reqRateLimiter, s.metricsManager, "analyze", s.config.AnalyzeRateLimitPerMinute))
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "repvision")
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Jobs    bool   `json:"jobs"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respJson, err := json.Marshal(healthResponse{
		Status:  "ok",
		Version: s.versionInfo,
		Jobs:    s.consumer != nil,
	})
	if err != nil {
		log.Errorf("marshal health response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
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
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", metrics.Handler(s.promRegistry))
	metricsAddr := net.JoinHostPort(s.config.MetricsHost, strconv.Itoa(s.config.MetricsPort))
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

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	if s.consumer != nil {
		go func() {
			defer close(s.consumerDone)
			s.consumer.Run(ctx)
		}()
	} else {
		close(s.consumerDone)
	}

	s.metricsManager.GaugeLifeSignal.Set(1)
}

// GracefulShutdown expects the context given to Serve to be cancelled already,
// so the jobs consumer is on its way out.
func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var shutdownErr error
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			shutdownErr = multierr.Append(shutdownErr, fmt.Errorf("http server: %w", err))
		}
		log.Warnln("server shut down")
	}

	select {
	case <-s.consumerDone:
		log.Debugln("jobs consumer stopped")
	case <-ctx.Done():
		shutdownErr = multierr.Append(shutdownErr, errors.New("jobs consumer did not stop in time"))
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			shutdownErr = multierr.Append(shutdownErr, fmt.Errorf("close redis client: %w", err))
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			shutdownErr = multierr.Append(shutdownErr, fmt.Errorf("metrics http server: %w", err))
		}
		log.Warnln("metrics server shut down")
	}

	for _, err := range multierr.Errors(shutdownErr) {
		log.Errorf(" >>> shutdown: %s", err)
	}
}
