package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/turtacn/sbgnqual/internal/infrastructure/monitoring/logging"
)

// Server wraps net/http.Server with graceful-shutdown lifecycle
// management.
type Server struct {
	httpServer *http.Server
	logger     logging.Logger
	started    atomic.Bool
	shutdownAt time.Duration
}

// NewServer constructs a Server listening on addr with the given
// handler. shutdownTimeout bounds how long Start waits for active
// requests to finish once its context is cancelled.
func NewServer(addr string, handler http.Handler, readTimeout, writeTimeout, shutdownTimeout time.Duration, logger logging.Logger) *Server {
	if shutdownTimeout == 0 {
		shutdownTimeout = 30 * time.Second
	}
	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		logger:     logger,
		shutdownAt: shutdownTimeout,
	}
}

// Start blocks, serving until ctx is cancelled, then shuts down
// gracefully. It returns nil on a clean shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.started.Store(true)
	serveErr := make(chan error, 1)

	go func() {
		s.logger.Info("http server listening", logging.String("addr", s.httpServer.Addr))
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownAt)
		defer cancel()
		err := s.httpServer.Shutdown(shutdownCtx)
		<-serveErr
		s.started.Store(false)
		return err
	case err := <-serveErr:
		s.started.Store(false)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	}
}

// IsRunning reports whether the server is currently accepting
// connections.
func (s *Server) IsRunning() bool { return s.started.Load() }
