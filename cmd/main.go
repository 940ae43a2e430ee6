package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/school-payments-console/internal/facades"
	"github.com/sbilibin2017/school-payments-console/internal/handlers"
	"github.com/sbilibin2017/school-payments-console/internal/jwt"
	"github.com/sbilibin2017/school-payments-console/internal/logger"
	"github.com/sbilibin2017/school-payments-console/internal/middlewares"
	"github.com/sbilibin2017/school-payments-console/internal/models"
	"github.com/sbilibin2017/school-payments-console/internal/query"
	"github.com/sbilibin2017/school-payments-console/internal/repositories"
	"github.com/sbilibin2017/school-payments-console/internal/services"
	"github.com/sbilibin2017/school-payments-console/internal/session"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// Session storage backends.
const (
	sessionBackendFile   = "file"
	sessionBackendRedis  = "redis"
	sessionBackendMemory = "memory"
)

// config holds everything parseConfig reads from the environment.
type config struct {
	appHost  string
	appPort  string
	logLevel string

	apiURL     string
	apiTimeout time.Duration
	pageLimit  int

	sessionBackend string
	sessionFile    string

	redisHost      string
	redisPort      int
	redisDB        int
	redisPassword  string
	redisKeyPrefix string

	kafkaBrokers []string
	kafkaTopic   string

	defaultSchoolID    string
	defaultCallbackURL string
	schoolViewTTL      time.Duration
}

func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application, collaborator, session, Redis, Kafka and payment form settings.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	cfg.appHost = getEnv("APP_HOST", "localhost")
	cfg.appPort = getEnv("APP_PORT", "8080")
	cfg.logLevel = getEnv("APP_LOG_LEVEL", "info")

	// Collaborator API config
	cfg.apiURL = strings.TrimRight(getEnv("API_URL", "http://localhost:5000"), "/")
	timeoutSecond, err := strconv.Atoi(getEnv("API_TIMEOUT_SECOND", "10"))
	if err != nil {
		return cfg, fmt.Errorf("API_TIMEOUT_SECOND: %w", err)
	}
	cfg.apiTimeout = time.Duration(timeoutSecond) * time.Second
	if cfg.pageLimit, err = strconv.Atoi(getEnv("PAGE_LIMIT", strconv.Itoa(models.DefaultPageLimit))); err != nil {
		return cfg, fmt.Errorf("PAGE_LIMIT: %w", err)
	}

	// Session config
	cfg.sessionBackend = strings.ToLower(getEnv("SESSION_BACKEND", sessionBackendFile))
	switch cfg.sessionBackend {
	case sessionBackendFile, sessionBackendRedis, sessionBackendMemory:
	default:
		return cfg, fmt.Errorf("SESSION_BACKEND: unsupported backend %q", cfg.sessionBackend)
	}
	cfg.sessionFile = getEnv("SESSION_FILE", ".session.json")

	// Redis config
	cfg.redisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.redisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return cfg, fmt.Errorf("REDIS_PORT: %w", err)
	}
	if cfg.redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return cfg, fmt.Errorf("REDIS_DB: %w", err)
	}
	cfg.redisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.redisKeyPrefix = getEnv("REDIS_KEY_PREFIX", "school-payments:")

	// Kafka config
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.kafkaBrokers = append(cfg.kafkaBrokers, b)
			}
		}
	}
	cfg.kafkaTopic = getEnv("KAFKA_TOPIC", "payment-requests")

	// Payment form and school view config
	cfg.defaultSchoolID = getEnv("DEFAULT_SCHOOL_ID", "65b0e6293e9f76a9694d84b4")
	cfg.defaultCallbackURL = getEnv("DEFAULT_CALLBACK_URL", "https://google.com")
	ttlSecond, err := strconv.Atoi(getEnv("SCHOOL_VIEW_TTL_SECOND", "600"))
	if err != nil {
		return cfg, fmt.Errorf("SCHOOL_VIEW_TTL_SECOND: %w", err)
	}
	cfg.schoolViewTTL = time.Duration(ttlSecond) * time.Second

	return cfg, nil
}

// newSessionStorage opens the configured session backend. The returned
// close func is never nil.
func newSessionStorage(ctx context.Context, cfg config) (session.Storage, func() error, error) {
	switch cfg.sessionBackend {
	case sessionBackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.redisHost, cfg.redisPort),
			Password: cfg.redisPassword,
			DB:       cfg.redisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("redis connection error: %w", err)
		}
		return repositories.NewSessionRedisRepository(rdb, cfg.redisKeyPrefix), rdb.Close, nil
	case sessionBackendMemory:
		return repositories.NewSessionMemoryRepository(), func() error { return nil }, nil
	default:
		return repositories.NewSessionFileRepository(cfg.sessionFile), func() error { return nil }, nil
	}
}

// newRouter mounts the console routes. Everything except login and
// registration requires a session.
func newRouter(
	store *session.Store,
	dashboard *services.TransactionsView,
	location *query.MemoryLocation,
	schools *services.SchoolViews,
	status *services.StatusLookup,
	payment *services.PaymentSubmitter,
) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Named("http")))

	// Public routes
	r.Post("/login", handlers.NewLoginHandler(store))
	r.Post("/register", handlers.NewRegisterHandler(store))

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middlewares.SessionGuard(store, "/login", time.Now))

		r.Post("/logout", handlers.NewLogoutHandler(store))

		r.Get("/dashboard", handlers.NewDashboardHandler(dashboard, location))
		r.Post("/dashboard/filter", handlers.NewDashboardFilterHandler(dashboard, location))
		r.Post("/dashboard/page", handlers.NewDashboardPageHandler(dashboard, location))
		r.Post("/dashboard/refresh", handlers.NewDashboardRefreshHandler(dashboard, location))

		r.Get("/transactions/school/{schoolId}", handlers.NewSchoolTransactionsHandler(schools))
		r.Get("/transaction-status", handlers.NewTransactionStatusHandler(status))

		r.Get("/create-payment", handlers.NewGetPaymentFormHandler(payment))
		r.Put("/create-payment", handlers.NewUpdatePaymentFormHandler(payment))
		r.Post("/create-payment", handlers.NewSubmitPaymentHandler(payment))
		r.Delete("/create-payment", handlers.NewResetPaymentFormHandler(payment))
	})

	return r
}

// run initializes the logger, collaborator facades, session store, views and
// HTTP server. It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.logLevel)

	// Collaborator facades
	client := facades.NewClient(cfg.apiURL, cfg.apiTimeout)
	authFacade := facades.NewAuthHTTPFacade(client)
	transactionsFacade := facades.NewTransactionsHTTPFacade(client)
	paymentFacade := facades.NewPaymentHTTPFacade(client)
	logger.Log.Infof("Using payments API at %s", cfg.apiURL)

	// Session store
	storage, closeStorage, err := newSessionStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStorage()

	store := session.NewStore(authFacade, storage, jwt.New())
	if err := store.Restore(ctx); err != nil {
		logger.Log.Warnw("failed to restore session", "backend", cfg.sessionBackend, "error", err)
	}

	// Kafka writer, optional
	var kafkaWriter services.KafkaWriter
	if len(cfg.kafkaBrokers) > 0 {
		w := &kafka.Writer{
			Addr:         kafka.TCP(cfg.kafkaBrokers...),
			Topic:        cfg.kafkaTopic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
		}
		defer w.Close()
		kafkaWriter = w
		logger.Log.Infof("Publishing payment events to %s on %v", cfg.kafkaTopic, cfg.kafkaBrokers)
	}

	// Views
	dashboard := services.NewTransactionsView(transactionsFacade, store, cfg.pageLimit)
	location := query.NewMemoryLocation("/dashboard")
	defer dashboard.BindURL(location)()

	schools := services.NewSchoolViews(transactionsFacade, store, cfg.pageLimit, cfg.schoolViewTTL)
	status := services.NewStatusLookup(transactionsFacade, store)
	payment := services.NewPaymentSubmitter(paymentFacade, store, kafkaWriter, models.PaymentRequest{
		SchoolID:    cfg.defaultSchoolID,
		CallbackURL: cfg.defaultCallbackURL,
	})

	defer services.ResetOnSessionChange(store, dashboard, schools, status, payment)()

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.appHost, cfg.appPort),
		Handler: newRouter(store, dashboard, location, schools, status, payment),
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.appHost, cfg.appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
