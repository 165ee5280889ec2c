package events

import (
	"context"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/genesis-ledger/internal/domain"
	"github.com/feral-file/genesis-ledger/internal/logger"
	"github.com/feral-file/genesis-ledger/internal/messaging"
)

// Config holds dispatcher configuration
type Config struct {
	// PoolSize is the number of concurrent publish workers
	PoolSize int
	// QueueSize bounds the number of pending events
	QueueSize int
	// MaxElapsedTime limits the total retry time per event
	MaxElapsedTime time.Duration
}

// Dispatcher pushes committed ledger events to the message broker off the
// serialized call path. Publishing is retried with exponential backoff;
// an event that exhausts its retries is logged and dropped, never fed back
// into the call that produced it.
type Dispatcher struct {
	publisher messaging.Publisher
	pool      pond.Pool
	cfg       Config
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewDispatcher creates a dispatcher with a bounded worker pool
func NewDispatcher(publisher messaging.Publisher, cfg Config) *Dispatcher {
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if cfg.MaxElapsedTime == 0 {
		cfg.MaxElapsedTime = 5 * time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		publisher: publisher,
		pool: pond.NewPool(
			cfg.PoolSize,
			pond.WithQueueSize(cfg.QueueSize),
			pond.WithContext(ctx),
		),
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Dispatch queues events for asynchronous publication
func (d *Dispatcher) Dispatch(evts []domain.LedgerEvent) {
	for _, evt := range evts {
		event := evt
		d.pool.Submit(func() {
			d.publishWithRetry(&event)
		})
	}
}

func (d *Dispatcher) publishWithRetry(event *domain.LedgerEvent) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = d.cfg.MaxElapsedTime
	b.RandomizationFactor = 0.5

	operation := func() error {
		return d.publisher.PublishEvent(d.ctx, event)
	}

	var attemptCount int
	notifyOnError := func(err error, duration time.Duration) {
		attemptCount++
		logger.Warn("Event publish failed, retrying",
			zap.Error(err),
			zap.String("event_id", event.EventID),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", duration),
		)
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, d.ctx), notifyOnError); err != nil {
		logger.Error(err,
			zap.String("event_id", event.EventID),
			zap.String("event_type", string(event.EventType)),
			zap.String("message", "dropping event after exhausting retries"),
		)
	}
}

// Close drains the queue and releases the workers
func (d *Dispatcher) Close() {
	d.pool.StopAndWait()
	d.cancel()
}
