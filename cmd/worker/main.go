// Command worker runs the asynchronous compile worker: it consumes
// CompileRequest messages off the compile.request Kafka topic, drives
// the same application/compile.Service the CLI and apiserver use, and
// publishes one StageEvent per request lifecycle transition onto
// compile.events so a caller can track progress without polling.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/turtacn/sbgnqual/internal/application/compile"
	"github.com/turtacn/sbgnqual/internal/config"
	"github.com/turtacn/sbgnqual/internal/domain/model"
	"github.com/turtacn/sbgnqual/internal/infrastructure/database/neo4j"
	"github.com/turtacn/sbgnqual/internal/infrastructure/database/postgres"
	"github.com/turtacn/sbgnqual/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/sbgnqual/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/sbgnqual/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/sbgnqual/internal/infrastructure/search/opensearch"
	"github.com/turtacn/sbgnqual/internal/infrastructure/storage/minio"
	"github.com/turtacn/sbgnqual/internal/io/reader/celldesigner"
	"github.com/turtacn/sbgnqual/internal/io/writer/sbmlqual"
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
	logger = logger.Named("worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("postgres unavailable, audit logging disabled", logging.Err(err))
	}
	var runRepo *postgres.CompileRunRepository
	if pool != nil {
		runRepo = postgres.NewCompileRunRepository(pool)
		defer pool.Close()
	}

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

	events := kafka.NewEventProducer(kafka.ProducerConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.EventTopic,
	}, logger)
	defer events.Close()

	consumer := kafka.NewRequestConsumer(kafka.ConsumerConfig{
		Brokers: cfg.Kafka.Brokers,
		GroupID: cfg.Kafka.GroupID,
		Topic:   cfg.Kafka.RequestTopic,
	}, logger)
	defer consumer.Close()

	w := &worker{
		service:   service,
		events:    events,
		runs:      runRepo,
		artifacts: artifacts,
		index:     indexer,
		graph:     graphDriver,
		logger:    logger,
	}

	logger.Info("sbgnqual worker starting", logging.String("topic", cfg.Kafka.RequestTopic), logging.String("group_id", cfg.Kafka.GroupID))
	if err := consumer.Run(ctx, w.handle); err != nil {
		logger.Error("worker stopped with error", logging.Err(err))
		os.Exit(1)
	}
}

// worker adapts one decoded kafka.CompileRequest into a full compile
// pipeline run, mirroring handlers.CompileHandler's orchestration of the
// same Service plus optional infrastructure sinks (SPEC_FULL.md E.2).
type worker struct {
	service   *compile.Service
	events    *kafka.EventProducer
	runs      *postgres.CompileRunRepository
	artifacts *minio.ArtifactStore
	index     *opensearch.Indexer
	graph     *neo4j.Driver
	logger    logging.Logger
}

func (w *worker) handle(ctx context.Context, req kafka.CompileRequest) error {
	w.publish(ctx, req.RunID, "dispatched", "started", nil)
	start := time.Now()

	in, err := os.Open(req.InputPath)
	if err != nil {
		return w.fail(ctx, req, start, fmt.Errorf("opening %s: %w", req.InputPath, err))
	}
	defer in.Close()

	var m *model.Model
	m, err = celldesigner.Read(in)
	if err != nil {
		return w.fail(ctx, req, start, fmt.Errorf("reading %s: %w", req.InputPath, err))
	}

	result, err := w.service.Compile(ctx, m, compile.Params{
		ComponentThreshold: req.ComponentThreshold,
		UpstreamNames:      req.UpstreamNames,
		DownstreamNames:    req.DownstreamNames,
		PreferNamesAsID:    req.PreferNamesAsID,
	})
	if err != nil {
		return w.fail(ctx, req, start, fmt.Errorf("compile: %w", err))
	}

	out, err := os.Create(req.OutputPath)
	if err != nil {
		return w.fail(ctx, req, start, fmt.Errorf("creating %s: %w", req.OutputPath, err))
	}
	writeErr := sbmlqual.Write(out, result.Model, req.RunID)
	closeErr := out.Close()
	if writeErr != nil {
		return w.fail(ctx, req, start, fmt.Errorf("writing %s: %w", req.OutputPath, writeErr))
	}
	if closeErr != nil {
		return w.fail(ctx, req, start, fmt.Errorf("closing %s: %w", req.OutputPath, closeErr))
	}

	if w.artifacts != nil {
		if f, err := os.Open(req.OutputPath); err == nil {
			info, statErr := f.Stat()
			if statErr == nil {
				if err := w.artifacts.Put(ctx, result.RunID, "model.sbml", f, info.Size(), "application/xml"); err != nil {
					w.logger.Warn("uploading compile artifact failed", logging.Err(err))
				}
			}
			f.Close()
		}
	}
	if w.index != nil {
		if err := w.index.IndexRun(ctx, result.RunID, result.Model); err != nil {
			w.logger.Warn("indexing species catalog failed", logging.Err(err))
		}
	}
	if w.graph != nil {
		if err := w.graph.WriteInfluenceGraph(ctx, result.RunID, result.Model, result.Influences); err != nil {
			w.logger.Warn("writing influence graph failed", logging.Err(err))
		}
	}

	w.recordRun(ctx, req, result, start, nil)
	w.publish(ctx, req.RunID, "compiled", "completed", nil)
	return nil
}

func (w *worker) fail(ctx context.Context, req kafka.CompileRequest, start time.Time, err error) error {
	w.recordRun(ctx, req, nil, start, err)
	w.publish(ctx, req.RunID, "compiled", "failed", err)
	return err
}

func (w *worker) publish(ctx context.Context, runID, stage, state string, err error) {
	ev := kafka.StageEvent{RunID: runID, Stage: stage, State: state}
	if err != nil {
		ev.Error = err.Error()
	}
	if pubErr := w.events.PublishStageEvent(ctx, ev); pubErr != nil {
		w.logger.Warn("publishing stage event failed", logging.Err(pubErr))
	}
}

func (w *worker) recordRun(ctx context.Context, req kafka.CompileRequest, result *compile.Result, start time.Time, runErr error) {
	if w.runs == nil {
		return
	}
	run := postgres.CompileRun{
		RunID:      req.RunID,
		InputPath:  req.InputPath,
		OutputPath: req.OutputPath,
		StartedAt:  start,
		FinishedAt: time.Now(),
		Succeeded:  runErr == nil,
	}
	if runErr != nil {
		run.ErrorMessage = runErr.Error()
	} else if result != nil {
		run.SpeciesCount = result.Model.SpeciesCount()
		run.ReactionCount = result.Model.ReactionCount()
		run.WarningCount = len(result.Warnings)
	}
	if err := w.runs.Insert(ctx, run); err != nil {
		w.logger.Warn("recording compile run failed", logging.Err(err))
	}
}
