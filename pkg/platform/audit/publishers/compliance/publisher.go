// Package compliance provides a fail-closed audit publisher for regulatory events.
//
// Events are appended synchronously and the caller blocks until the write
// succeeds. If the write fails, an error is returned and the calling
// operation MUST fail.
//
// Use for: <right>_request, <right>_completed, processing_attempt, restriction_lifted
package compliance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	audit "custodian/pkg/platform/audit"
	"custodian/pkg/platform/sentinel"
)

// Sink receives every event after it is durably appended. Sink failures are
// logged and counted; they never fail the business operation.
type Sink interface {
	Publish(ctx context.Context, event audit.Event) error
}

// Publisher emits compliance events with fail-closed semantics.
type Publisher struct {
	store   audit.Store
	sink    Sink
	logger  *slog.Logger
	metrics *Metrics
	closed  atomic.Bool
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithLogger sets a logger for error reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// WithSink streams appended events to a secondary destination.
func WithSink(s Sink) Option {
	return func(p *Publisher) {
		p.sink = s
	}
}

// New creates a compliance publisher over store.
func New(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store: store,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit synchronously appends event and returns the stored copy. Its ID is the
// handle for a later Amend.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) (audit.Event, error) {
	start := time.Now()

	if p.closed.Load() {
		return audit.Event{}, fmt.Errorf("compliance publisher: %w", sentinel.ErrClosed)
	}
	if event.Action == "" {
		return audit.Event{}, errors.New("compliance event requires Action")
	}
	if event.EntityID == "" {
		return audit.Event{}, errors.New("compliance event requires EntityID")
	}

	stored, err := p.store.Append(ctx, event)
	if err != nil {
		p.metrics.IncPersistFailures()
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "CRITICAL: compliance audit failed",
				"action", event.Action,
				"entity_id", event.EntityID,
				"error", err,
			)
		}
		return audit.Event{}, fmt.Errorf("compliance audit persistence failed: %w", err)
	}

	p.metrics.ObservePersistDuration(time.Since(start))
	p.metrics.IncEventsEmitted(stored.Action)

	if p.sink != nil {
		if err := p.sink.Publish(ctx, stored); err != nil {
			p.metrics.IncSinkFailures()
			if p.logger != nil {
				p.logger.WarnContext(ctx, "audit sink publish failed",
					"event_id", stored.ID,
					"action", stored.Action,
					"error", err,
				)
			}
		}
	}
	return stored, nil
}

// Amend downgrades a previously emitted event to failed.
func (p *Publisher) Amend(ctx context.Context, eventID uuid.UUID, errMsg string) error {
	if err := p.store.Amend(ctx, eventID, errMsg); err != nil {
		p.metrics.IncPersistFailures()
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "CRITICAL: compliance audit amendment failed",
				"event_id", eventID,
				"error", err,
			)
		}
		return fmt.Errorf("compliance audit amendment failed: %w", err)
	}
	p.metrics.IncAmendments()
	p.publishAmendment(ctx, eventID, errMsg)
	return nil
}

// publishAmendment streams the amended event so sink consumers see the
// downgrade. The store copy is preferred; a bare amendment record stands in
// when it cannot be read back.
func (p *Publisher) publishAmendment(ctx context.Context, eventID uuid.UUID, errMsg string) {
	if p.sink == nil {
		return
	}
	amended := audit.Event{
		ID:      eventID,
		Success: false,
		Error:   errMsg,
		Amended: &audit.Amendment{At: time.Now().UTC(), Error: errMsg},
	}
	if events, err := p.store.Query(ctx, audit.Filter{ID: eventID}); err == nil && len(events) == 1 {
		amended = events[0]
	}
	if err := p.sink.Publish(ctx, amended); err != nil {
		p.metrics.IncSinkFailures()
		if p.logger != nil {
			p.logger.WarnContext(ctx, "audit sink amendment publish failed",
				"event_id", eventID,
				"error", err,
			)
		}
	}
}

// Query reads back the trail.
func (p *Publisher) Query(ctx context.Context, filter audit.Filter) ([]audit.Event, error) {
	return p.store.Query(ctx, filter)
}

// Close stops accepting events. Emit fails afterwards so no operation can
// complete unaudited during shutdown. Amend and Query keep working.
func (p *Publisher) Close() error {
	p.closed.Store(true)
	return nil
}
