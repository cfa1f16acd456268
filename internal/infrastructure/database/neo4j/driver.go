// Package neo4j wraps the neo4j-go-driver to sink a compiled model's
// influence graph into Neo4j for interactive exploration (SPEC_FULL.md
// E.2 domain stack, "influence-graph exploration sink").
package neo4j

import (
	"context"
	"time"

	neo4jdriver "github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/turtacn/sbgnqual/internal/config"
	"github.com/turtacn/sbgnqual/internal/infrastructure/monitoring/logging"
	cerrors "github.com/turtacn/sbgnqual/pkg/errors"
)

// Driver wraps a neo4j DriverWithContext bound to a single database.
type Driver struct {
	driver neo4jdriver.DriverWithContext
	dbName string
	logger logging.Logger
}

// NewDriver connects to cfg.URI and verifies connectivity.
func NewDriver(ctx context.Context, cfg config.Neo4jConfig, logger logging.Logger) (*Driver, error) {
	auth := neo4jdriver.BasicAuth(cfg.User, cfg.Password, "")
	drv, err := neo4jdriver.NewDriverWithContext(cfg.URI, auth, func(c *neo4jdriver.Config) {
		if cfg.MaxConnectionPoolSize > 0 {
			c.MaxConnectionPoolSize = cfg.MaxConnectionPoolSize
		}
		if cfg.ConnectionTimeout > 0 {
			c.ConnectionAcquisitionTimeout = cfg.ConnectionTimeout
		}
	})
	if err != nil {
		return nil, cerrors.Wrap(cerrors.CodeGraphStoreError, "neo4j: creating driver", err)
	}

	verifyCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := drv.VerifyConnectivity(verifyCtx); err != nil {
		return nil, cerrors.Wrap(cerrors.CodeGraphStoreError, "neo4j: verifying connectivity", err)
	}

	dbName := cfg.Database
	if dbName == "" {
		dbName = "neo4j"
	}
	logger.Info("neo4j connection established", logging.String("uri", cfg.URI), logging.String("database", dbName))
	return &Driver{driver: drv, dbName: dbName, logger: logger}, nil
}

// Close releases the driver's connection pool.
func (d *Driver) Close(ctx context.Context) error {
	return d.driver.Close(ctx)
}

// VerifyConnectivity checks that the driver can still reach the server,
// for use by a health check.
func (d *Driver) VerifyConnectivity(ctx context.Context) error {
	if err := d.driver.VerifyConnectivity(ctx); err != nil {
		return cerrors.Wrap(cerrors.CodeGraphStoreError, "neo4j: verifying connectivity", err)
	}
	return nil
}

func (d *Driver) writeSession(ctx context.Context) neo4jdriver.SessionWithContext {
	return d.driver.NewSession(ctx, neo4jdriver.SessionConfig{
		DatabaseName: d.dbName,
		AccessMode:   neo4jdriver.AccessModeWrite,
	})
}
