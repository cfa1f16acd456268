package kafka

import (
	"context"
	"encoding/json"
	"time"

	segmentio "github.com/segmentio/kafka-go"

	"github.com/turtacn/sbgnqual/internal/infrastructure/monitoring/logging"
	cerrors "github.com/turtacn/sbgnqual/pkg/errors"
)

// ConsumerConfig configures a RequestConsumer.
type ConsumerConfig struct {
	Brokers []string
	GroupID string
	Topic   string
}

// RequestConsumer reads CompileRequest messages off the compile.request
// topic using consumer-group offset commits.
type RequestConsumer struct {
	reader *segmentio.Reader
	logger logging.Logger
}

// NewRequestConsumer constructs a RequestConsumer bound to cfg.Topic.
func NewRequestConsumer(cfg ConsumerConfig, logger logging.Logger) *RequestConsumer {
	return &RequestConsumer{
		reader: segmentio.NewReader(segmentio.ReaderConfig{
			Brokers:  cfg.Brokers,
			GroupID:  cfg.GroupID,
			Topic:    cfg.Topic,
			MinBytes: 1,
			MaxBytes: 10e6,
		}),
		logger: logger,
	}
}

// Handler processes one decoded CompileRequest.
type Handler func(ctx context.Context, req CompileRequest) error

// Run fetches messages until ctx is cancelled, invoking handle for each
// and committing its offset once handle has returned, whether or not it
// succeeded. A message that fails is logged and skipped rather than
// retried in place — the caller is expected to re-publish on a durable
// failure if a retry is warranted.
func (c *RequestConsumer) Run(ctx context.Context, handle Handler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return cerrors.Wrap(cerrors.CodeMessagingError, "kafka: fetch message", err)
		}

		var req CompileRequest
		if err := json.Unmarshal(msg.Value, &req); err != nil {
			c.logger.Error("discarding malformed compile request", logging.Err(err))
			_ = c.reader.CommitMessages(ctx, msg)
			continue
		}

		handleCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		err = handle(handleCtx, req)
		cancel()

		if err != nil {
			c.logger.Error("compile request failed", logging.String("run_id", req.RunID), logging.Err(err))
		}
		if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
			c.logger.Error("commit offset failed", logging.Err(commitErr))
		}
	}
}

// Close releases the underlying reader.
func (c *RequestConsumer) Close() error {
	return c.reader.Close()
}
