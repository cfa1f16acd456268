// Package postgres provides the compile-run audit log: a pgx connection
// pool plus a repository recording one row per compile invocation
// (SPEC_FULL.md E.2 domain stack, "Postgres audit log").
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/turtacn/sbgnqual/internal/config"
	"github.com/turtacn/sbgnqual/internal/infrastructure/monitoring/logging"
	cerrors "github.com/turtacn/sbgnqual/pkg/errors"
)

const (
	maxRetries        = 5
	initialRetryDelay = 1 * time.Second
)

// NewPool creates a pgxpool.Pool from cfg with exponential-backoff retry,
// verifying connectivity with a ping before returning.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger logging.Logger) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.SSLMode)

	poolCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.CodeDBConnectionError, "postgres: parsing connection string", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = int32(cfg.MinConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}

	delay := initialRetryDelay
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = pool.Ping(pingCtx)
			cancel()
			if err == nil {
				logger.Info("postgres connection established",
					logging.String("host", cfg.Host), logging.Int("port", cfg.Port))
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err
		logger.Warn("postgres connection attempt failed",
			logging.Int("attempt", attempt), logging.Err(err))
		if attempt < maxRetries {
			time.Sleep(delay)
			delay *= 2
		}
	}
	return nil, cerrors.Wrap(cerrors.CodeDBConnectionError,
		fmt.Sprintf("postgres: failed to connect after %d attempts", maxRetries), lastErr)
}
