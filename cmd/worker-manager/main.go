// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"readiness-workers/internal/catalog"
	"readiness-workers/internal/common/cache"
	"readiness-workers/internal/common/camunda"
	"readiness-workers/internal/common/config"
	"readiness-workers/internal/common/database"
	"readiness-workers/internal/common/logger"
	"readiness-workers/internal/common/observability"
	"readiness-workers/internal/platform"
	"readiness-workers/internal/readiness"
	"readiness-workers/internal/resume"
	"readiness-workers/internal/storage"

	ar "readiness-workers/internal/workers/readiness/analyze-resume"
	fpd "readiness-workers/internal/workers/readiness/fetch-platform-data"
	pr "readiness-workers/internal/workers/readiness/predict-readiness"
	qa "readiness-workers/internal/workers/readiness/query-analyses"
	sa "readiness-workers/internal/workers/readiness/save-analysis"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs := observability.New(cfg.Observability.ServiceName)
	defer obs.Shutdown()

	shutdownTracer, err := observability.InitTracer(ctx, cfg.Observability.ServiceName, cfg.App.Version, cfg.Observability.JaegerEndpoint)
	if err != nil {
		zapLog.Fatal("tracer init failed", zap.Error(err))
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		_ = shutdownTracer(flushCtx)
	}()

	// --- Zeebe ---
	zeebe, err := camunda.Connect(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: true,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
	}, log)
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	defer zeebe.Close()
	zapLog.Info("Zeebe client connected successfully")

	// --- PostgreSQL (optional) ---
	var pg *database.PostgresClient
	if cfg.Database.Postgres.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		zapLog.Info("PostgreSQL connected successfully")
	}

	// --- Elasticsearch (optional) ---
	var esClient *database.ElasticsearchClient
	if cfg.Database.Elasticsearch.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")
	}

	// --- Redis (optional, falls back to the in-process cache) ---
	var platformCache cache.Cache
	if cfg.Database.Redis.Enabled {
		var redisClient *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redisClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redisClient.Close()
		platformCache = cache.NewRedisCache(redisClient.Client)
		zapLog.Info("Redis connected successfully")
	} else {
		memory := cache.NewMemoryCache(cache.SystemClock())
		memory.StartPurger(ctx, 10*time.Minute)
		platformCache = memory
	}

	// --- Engine ---
	cat, err := catalog.Load(ctx, catalogSource(cfg, pg, esClient), log)
	if err != nil {
		zapLog.Fatal("catalog load failed", zap.Error(err))
	}

	provider, err := platform.NewProviderForMode(cfg.Platforms, platformCache, log)
	if err != nil {
		zapLog.Fatal("platform provider failed", zap.Error(err))
	}

	var analyzer resume.Analyzer
	if cfg.Resume.Enabled {
		analyzer = resume.NewKeywordAnalyzer(cfg.Resume.SoftSkills)
	}

	engineOpts := []readiness.Option{readiness.WithObservability(obs)}
	if analyzer != nil {
		engineOpts = append(engineOpts, readiness.WithResumeAnalyzer(analyzer))
	}
	engine, err := readiness.NewEngine(provider, cat, log, engineOpts...)
	if err != nil {
		zapLog.Fatal("engine init failed", zap.Error(err))
	}

	var store *storage.AnalysisStore
	if pg != nil {
		store = storage.NewAnalysisStore(pg.DB)
	}

	// --- Workers ---
	client := zeebe.Zeebe()
	var workers []*camunda.JobWorker
	register := func(taskType string, handle camunda.HandlerFunc) {
		if w := camunda.StartWorker(client, taskType, config.GetWorkerConfig(cfg, taskType), handle, obs, log); w != nil {
			workers = append(workers, w)
		}
	}

	if config.IsWorkerEnabled(cfg, fpd.TaskType) {
		handler := fpd.NewHandler(
			&fpd.Config{Timeout: workerTimeout(cfg, fpd.TaskType)},
			provider, log,
		)
		register(fpd.TaskType, handler.Handle)
	}

	if config.IsWorkerEnabled(cfg, pr.TaskType) {
		handler := pr.NewHandler(
			&pr.Config{Timeout: workerTimeout(cfg, pr.TaskType)},
			engine, log,
		)
		register(pr.TaskType, handler.Handle)
	}

	if config.IsWorkerEnabled(cfg, ar.TaskType) {
		handler := ar.NewHandler(
			&ar.Config{Timeout: workerTimeout(cfg, ar.TaskType)},
			analyzer, log,
		)
		register(ar.TaskType, handler.Handle)
	}

	if store == nil {
		zapLog.Warn("postgres disabled, analysis persistence workers not registered")
	} else {
		if config.IsWorkerEnabled(cfg, sa.TaskType) {
			handler := sa.NewHandler(
				&sa.Config{Timeout: workerTimeout(cfg, sa.TaskType)},
				store, log,
			)
			register(sa.TaskType, handler.Handle)
		}

		if config.IsWorkerEnabled(cfg, qa.TaskType) {
			handler := qa.NewHandler(
				&qa.Config{Timeout: workerTimeout(cfg, qa.TaskType)},
				store, log,
			)
			register(qa.TaskType, handler.Handle)
		}
	}

	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- Health & metrics server ---
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           healthMux(zeebe, pg),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health server listening", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("health server error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	for _, w := range workers {
		w.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("health server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped")
}

func workerTimeout(cfg *config.Config, taskType string) time.Duration {
	return config.GetDuration(config.GetWorkerConfig(cfg, taskType).Timeout)
}

// catalogSource maps catalog.source to a loader. Database sources need their
// client; config validation guarantees it is enabled.
func catalogSource(cfg *config.Config, pg *database.PostgresClient, es *database.ElasticsearchClient) catalog.Source {
	switch cfg.Catalog.Source {
	case config.CatalogSourceFile:
		return catalog.FileSource{Path: cfg.Catalog.Path}
	case config.CatalogSourcePostgres:
		if pg != nil {
			return catalog.NewPostgresSource(pg.DB)
		}
	case config.CatalogSourceElasticsearch:
		if es != nil {
			return catalog.NewElasticsearchSource(es.Client, cfg.Catalog.CourseIndex, cfg.Catalog.OpportunityIndex)
		}
	}
	return catalog.BuiltinSource{}
}

func healthMux(zeebe *camunda.Client, pg *database.PostgresClient) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]string{"zeebe": "ok"}
		status := http.StatusOK
		if err := zeebe.HealthCheck(ctx); err != nil {
			checks["zeebe"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if pg != nil {
			checks["postgres"] = "ok"
			if err := pg.Ping(ctx); err != nil {
				checks["postgres"] = err.Error()
				status = http.StatusServiceUnavailable
			}
		}

		checks["status"] = "ready"
		if status != http.StatusOK {
			checks["status"] = "not ready"
		}
		writeStatus(w, status, checks)
	})

	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func writeStatus(w http.ResponseWriter, status int, body map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
