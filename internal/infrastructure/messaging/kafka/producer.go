package kafka

import (
	"context"
	"encoding/json"
	"time"

	segmentio "github.com/segmentio/kafka-go"

	"github.com/turtacn/sbgnqual/internal/infrastructure/monitoring/logging"
	cerrors "github.com/turtacn/sbgnqual/pkg/errors"
)

// ProducerConfig configures an EventProducer.
type ProducerConfig struct {
	Brokers      []string
	Topic        string
	BatchTimeout time.Duration
}

// EventProducer publishes messages to the single topic named in its
// ProducerConfig; the worker binds it to the compile.events topic and
// publishes StageEvent messages through it.
type EventProducer struct {
	writer *segmentio.Writer
	logger logging.Logger
}

// NewEventProducer constructs an EventProducer bound to cfg.Topic.
func NewEventProducer(cfg ProducerConfig, logger logging.Logger) *EventProducer {
	batchTimeout := cfg.BatchTimeout
	if batchTimeout == 0 {
		batchTimeout = 100 * time.Millisecond
	}
	return &EventProducer{
		writer: &segmentio.Writer{
			Addr:         segmentio.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &segmentio.Hash{},
			BatchTimeout: batchTimeout,
			RequiredAcks: segmentio.RequireOne,
		},
		logger: logger,
	}
}

// PublishStageEvent emits a single stage-transition event.
func (p *EventProducer) PublishStageEvent(ctx context.Context, ev StageEvent) error {
	payload, err := ev.marshal()
	if err != nil {
		return cerrors.Wrap(cerrors.CodeMessagingError, "kafka: marshal stage event", err)
	}
	if err := p.writer.WriteMessages(ctx, segmentio.Message{
		Key:   []byte(ev.RunID),
		Value: payload,
	}); err != nil {
		return cerrors.Wrap(cerrors.CodeMessagingError, "kafka: publish stage event", err)
	}
	return nil
}

// PublishRequest enqueues a CompileRequest onto the producer's topic
// (ProducerConfig.Topic), keyed by run id; the worker pool picks it up
// when that topic is the one its RequestConsumer reads.
func (p *EventProducer) PublishRequest(ctx context.Context, req CompileRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return cerrors.Wrap(cerrors.CodeMessagingError, "kafka: marshal compile request", err)
	}
	if err := p.writer.WriteMessages(ctx, segmentio.Message{
		Key:   []byte(req.RunID),
		Value: payload,
	}); err != nil {
		return cerrors.Wrap(cerrors.CodeMessagingError, "kafka: publish compile request", err)
	}
	return nil
}

// Close flushes and releases the underlying writer.
func (p *EventProducer) Close() error {
	return p.writer.Close()
}
