package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/sync/errgroup"

	"newspaper/internal/config"
	"newspaper/internal/infra/adapter/persistence/instrumented"
	"newspaper/internal/infra/adapter/persistence/memory"
	pgRepo "newspaper/internal/infra/adapter/persistence/postgres"
	"newspaper/internal/infra/adapter/persistence/redisstore"
	"newspaper/internal/infra/db"
	"newspaper/internal/infra/worker"
	"newspaper/internal/observability/logging"
	"newspaper/internal/observability/tracing"
	"newspaper/internal/repository"
	"newspaper/internal/resilience/circuitbreaker"
	cfgpkg "newspaper/pkg/config"

	artUC "newspaper/internal/usecase/article"

	hhttp "newspaper/internal/handler/http"
	harticle "newspaper/internal/handler/http/article"
	"newspaper/internal/handler/http/pathutil"
	"newspaper/internal/handler/http/requestid"
	"newspaper/internal/handler/http/respond"

	_ "newspaper/docs" // swagger docs
)

// @title           Newspaper API
// @version         1.0
// @description     新聞記事の作成・取得・検索・バージョン付き更新・論理削除を提供する REST API

// @contact.name   API Support

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "path to YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath, cfgpkg.NewConfigMetrics("api", nil))
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := initLogger(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited with error", slog.String("error", respond.SanitizeError(err)))
		os.Exit(1)
	}
}

// initLogger creates the JSON logger and installs it as the slog default.
func initLogger(level string) *slog.Logger {
	logger := logging.NewLogger(level)
	slog.SetDefault(logger)
	return logger
}

// storeComponents is the assembled article store plus the handles the
// health check and shutdown need.
type storeComponents struct {
	Store   repository.ArticleStore
	DB      *sql.DB
	Breaker hhttp.BreakerState
	closers []io.Closer
}

func (s *storeComponents) Close(logger *slog.Logger) {
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			logger.Error("failed to close store connection", slog.Any("error", err))
		}
	}
}

// openStore connects the configured backend and stacks the instrumentation
// and circuit breaker decorators on top of it.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storeComponents, error) {
	sc := &storeComponents{}

	var base repository.ArticleStore
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		database, err := db.Open(ctx, cfg.Store.DatabaseURL, cfg.Store.Pool)
		if err != nil {
			return nil, err
		}
		sc.closers = append(sc.closers, database)
		if err := db.MigrateUp(ctx, database); err != nil {
			sc.Close(logger)
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		sc.DB = database
		base = pgRepo.NewArticleRepo(database)
	case config.DriverRedis:
		client, err := db.OpenRedis(ctx, cfg.Store.Redis)
		if err != nil {
			return nil, err
		}
		sc.closers = append(sc.closers, client)
		base = redisstore.NewArticleStore(client)
	case config.DriverMemory:
		logger.Warn("using in-memory article store; data is lost on restart")
		base = memory.NewArticleStore()
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	sc.Store = instrumented.NewArticleStore(base)
	if cfg.Store.CircuitBreakerEnabled {
		breaker := circuitbreaker.NewStore(sc.Store)
		sc.Store = breaker
		sc.Breaker = breaker
	}

	logger.Info("article store ready",
		slog.String("driver", cfg.Store.Driver),
		slog.Bool("circuit_breaker", cfg.Store.CircuitBreakerEnabled))
	return sc, nil
}

// run wires every component and blocks until ctx is canceled or a component fails.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	tp, err := tracing.InitProvider(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Error("tracer provider shutdown failed", slog.Any("error", err))
		}
	}()

	stores, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer stores.Close(logger)

	svc := artUC.Service{
		Store:      stores.Store,
		Events:     &artUC.LogEventRecorder{Logger: logger},
		Pagination: cfg.Pagination,
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           applyMiddleware(cfg, logger, setupRoutes(cfg, logger, svc, stores)),
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTP.Addr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})

	if cfg.Stats.Schedule != "" {
		refresher := &worker.StatsRefresher{
			Counter:  &svc,
			Schedule: cfg.Stats.Schedule,
			Timeout:  cfg.Stats.Timeout,
			Logger:   logger,
			Metrics:  worker.NewJobMetrics("articles_stats_refresh", nil),
		}
		g.Go(func() error { return refresher.Run(gctx) })
	}

	return g.Wait()
}

// setupRoutes registers the article API and the operational endpoints.
func setupRoutes(cfg *config.Config, logger *slog.Logger, svc artUC.Service, stores *storeComponents) *http.ServeMux {
	mux := http.NewServeMux()

	// ヘルスチェックエンドポイント
	mux.Handle("GET /health", &hhttp.HealthHandler{
		Store:   stores.Store,
		DB:      stores.DB,
		Breaker: stores.Breaker,
		Version: cfg.Version,
	})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{Store: stores.Store})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	// Swagger UI
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// レート制限: 検索エンドポイントのみトークンバケットで制限
	throttle := hhttp.NewThrottle(cfg.Search.RateLimit, cfg.Search.Burst)
	if cfg.Search.RateLimit <= 0 {
		logger.Warn("search throttling is DISABLED")
	}

	harticle.Register(mux, svc, harticle.Options{
		Pagination:       cfg.Pagination,
		Logger:           logger,
		SearchMiddleware: throttle.Middleware,
	})

	return mux
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: Request ID → Recovery → Logging → Input Validation → Body Limit → Tracing → Metrics → Timeout
func applyMiddleware(cfg *config.Config, logger *slog.Logger, handler http.Handler) http.Handler {
	spanName := func(r *http.Request) string {
		return r.Method + " " + pathutil.NormalizePath(r.URL.Path)
	}

	return hhttp.Chain(handler,
		requestid.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.InputValidation(),
		hhttp.LimitRequestBody(cfg.HTTP.MaxBodyBytes),
		tracing.MiddlewareWithSpanName(spanName),
		hhttp.NewHTTPMetrics(nil).Middleware,
		hhttp.Timeout(cfg.HTTP.RequestTimeout),
	)
}
