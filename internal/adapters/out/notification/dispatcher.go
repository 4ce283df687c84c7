// Package notification turns committed domain events into buyer and admin
// notifications. Delivery is asynchronous and never fails the command that
// raised the events.
package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultQueueSize     = 256
	DefaultRetryInterval = 500 * time.Millisecond
	DefaultMaxRetries    = 3
)

// Config tunes the dispatcher. Zero values fall back to the defaults.
type Config struct {
	QueueSize     int
	RetryInterval time.Duration
	MaxRetries    uint64
}

// Dispatcher is the ports.EventPublisher of the application. Published events
// go into a bounded queue drained by a single worker, which renders them and
// hands them to the notifier, retrying failed deliveries with exponential
// backoff. Events that do not fit into the queue, or whose delivery keeps
// failing, are logged and dropped.
type Dispatcher struct {
	notifier ports.Notifier
	logger   *slog.Logger
	config   Config

	queue  chan kernel.DomainEvent
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

var _ ports.EventPublisher = (*Dispatcher)(nil)

func NewDispatcher(notifier ports.Notifier, config Config, logger *slog.Logger) *Dispatcher {
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultQueueSize
	}
	if config.RetryInterval <= 0 {
		config.RetryInterval = DefaultRetryInterval
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = DefaultMaxRetries
	}

	return &Dispatcher{
		notifier: notifier,
		logger:   logger.With("component", "notification_dispatcher"),
		config:   config,
		queue:    make(chan kernel.DomainEvent, config.QueueSize),
	}
}

// Start launches the worker. Calling Start on a running dispatcher does nothing.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	d.wg.Add(1)
	go d.work(runCtx)
}

// Stop cancels the worker and waits for it to return. Events still queued
// are dropped.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// Publish enqueues events without blocking.
func (d *Dispatcher) Publish(ctx context.Context, events ...kernel.DomainEvent) {
	for _, event := range events {
		select {
		case d.queue <- event:
		default:
			d.logger.WarnContext(ctx, "notification queue is full, event dropped",
				slog.String("event", event.EventName()),
				slog.String("aggregate_id", event.AggregateID().String()),
			)
		}
	}
}

func (d *Dispatcher) work(ctx context.Context) {
	defer d.wg.Done()

	for {
		select {
		case <-ctx.Done():
			if pending := len(d.queue); pending > 0 {
				d.logger.Warn("dispatcher stopped with queued events", slog.Int("dropped", pending))
			}
			return
		case event := <-d.queue:
			d.dispatch(ctx, event)
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, event kernel.DomainEvent) {
	deliver, ok := d.delivery(event)
	if !ok {
		return
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = d.config.RetryInterval

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		return deliver(ctx)
	}, backoff.WithContext(backoff.WithMaxRetries(policy, d.config.MaxRetries), ctx))
	if err != nil {
		d.logger.ErrorContext(ctx, "notification delivery failed",
			slog.String("event", event.EventName()),
			slog.String("aggregate_id", event.AggregateID().String()),
			slog.Int("attempts", attempt),
			slog.String("error", err.Error()),
		)
		return
	}

	d.logger.DebugContext(ctx, "notification delivered",
		slog.String("event", event.EventName()),
		slog.String("aggregate_id", event.AggregateID().String()),
	)
}

// delivery selects the notifier call for an event.
func (d *Dispatcher) delivery(event kernel.DomainEvent) (func(context.Context) error, bool) {
	if summary, ok := RenderAdminSummary(event); ok {
		return func(ctx context.Context) error {
			return d.notifier.NotifyAdmins(ctx, summary)
		}, true
	}

	if n, ok := RenderBuyerNotification(event); ok {
		return func(ctx context.Context) error {
			return d.notifier.NotifyBuyer(ctx, n.BuyerID, n.Title, n.Message, n.Payload)
		}, true
	}

	d.logger.Debug("no notification for event", slog.String("event", event.EventName()))
	return nil, false
}
