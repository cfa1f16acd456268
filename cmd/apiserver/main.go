package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/sbgnqual/internal/application/compile"
	"github.com/turtacn/sbgnqual/internal/config"
	"github.com/turtacn/sbgnqual/internal/infrastructure/database/neo4j"
	"github.com/turtacn/sbgnqual/internal/infrastructure/database/postgres"
	"github.com/turtacn/sbgnqual/internal/infrastructure/database/redis"
	"github.com/turtacn/sbgnqual/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/sbgnqual/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/sbgnqual/internal/infrastructure/search/opensearch"
	"github.com/turtacn/sbgnqual/internal/infrastructure/storage/minio"
	sbgnhttp "github.com/turtacn/sbgnqual/internal/interfaces/http"
	"github.com/turtacn/sbgnqual/internal/interfaces/http/handlers"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := os.Getenv("SBGNQUAL_CONFIG")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		cfg, err = config.LoadFromEnv()
		if err != nil {
			fmt.Fprintf(os.Stderr, "config initialization failed: %v\n", err)
			os.Exit(1)
		}
	}

	logger, err := logging.NewLogger(logging.LogConfig{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger initialization failed: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("postgres unavailable, audit logging disabled", logging.Err(err))
	}
	var runRepo *postgres.CompileRunRepository
	if pool != nil {
		if cfg.Database.MigrationPath != "" {
			dbURL := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
				cfg.Database.User, cfg.Database.Password, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName, cfg.Database.SSLMode)
			if err := postgres.RunMigrations(dbURL, cfg.Database.MigrationPath); err != nil {
				logger.Error("running migrations failed", logging.Err(err))
			}
		}
		runRepo = postgres.NewCompileRunRepository(pool)
		defer pool.Close()
	}

	cache := redis.NewCache(cfg.Redis)
	defer cache.Close()

	var graphDriver *neo4j.Driver
	if cfg.Neo4j.URI != "" {
		graphDriver, err = neo4j.NewDriver(ctx, cfg.Neo4j, logger)
		if err != nil {
			logger.Error("neo4j unavailable, influence graph sink disabled", logging.Err(err))
		} else {
			defer graphDriver.Close(context.Background())
		}
	}

	var indexer *opensearch.Indexer
	if len(cfg.OpenSearch.Addresses) > 0 {
		indexer, err = opensearch.NewIndexer(cfg.OpenSearch)
		if err != nil {
			logger.Error("opensearch unavailable, species search index disabled", logging.Err(err))
		}
	}

	var artifacts *minio.ArtifactStore
	if cfg.MinIO.Endpoint != "" {
		artifacts, err = minio.NewArtifactStore(ctx, cfg.MinIO, logger)
		if err != nil {
			logger.Error("minio unavailable, artifact uploads disabled", logging.Err(err))
		}
	}

	metricsCollector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{Namespace: "sbgnqual"}, logger)
	if err != nil {
		logger.Error("metrics collector initialization failed", logging.Err(err))
	}
	stageMetrics := prometheus.NewStageMetrics(metricsCollector)

	service := compile.NewService(logger.Named("compile"), stageMetrics)

	compileHandler := &handlers.CompileHandler{
		Service:   service,
		Cache:     cache,
		Runs:      runRepo,
		Artifacts: artifacts,
		Index:     indexer,
		Graph:     graphDriver,
		Logger:    logger.Named("apiserver"),
	}

	var checkers []handlers.HealthChecker
	checkers = append(checkers, handlers.FuncChecker{CheckerName: "redis", Ping: cache.Ping})
	if graphDriver != nil {
		checkers = append(checkers, handlers.FuncChecker{CheckerName: "neo4j", Ping: graphDriver.VerifyConnectivity})
	}
	healthHandler := handlers.NewHealthHandler("sbgnqual-apiserver", checkers...)

	routerCfg := sbgnhttp.RouterConfig{
		CompileHandler: compileHandler,
		HealthHandler:  healthHandler,
		Logger:         logger.Named("http"),
	}
	if metricsCollector != nil {
		routerCfg.MetricsHandler = gin.WrapH(metricsCollector.Handler())
	}
	router := sbgnhttp.NewRouter(routerCfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	readTimeout := cfg.Server.ReadTimeout
	writeTimeout := cfg.Server.WriteTimeout
	if readTimeout == 0 {
		readTimeout = 30 * time.Second
	}
	if writeTimeout == 0 {
		writeTimeout = 60 * time.Second
	}
	srv := sbgnhttp.NewServer(addr, router, readTimeout, writeTimeout, cfg.Server.ShutdownTimeout, logger)

	logger.Info("sbgnqual apiserver starting", logging.String("addr", addr))
	if err := srv.Start(ctx); err != nil {
		logger.Error("apiserver stopped with error", logging.Err(err))
		os.Exit(1)
	}
}
