// Package enforcement decides whether a processing attempt on a subject's
// data is allowed given the subject's active restriction or objection.
package enforcement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"custodian/internal/compliance/metrics"
	"custodian/internal/compliance/models"
	"custodian/internal/compliance/store"
	dErrors "custodian/pkg/domain-errors"
	"custodian/pkg/platform/audit"
	"custodian/pkg/platform/sentinel"
	"custodian/pkg/requestcontext"
)

// AuditPort records enforcement decisions. Emit must fail closed.
type AuditPort interface {
	Emit(ctx context.Context, event audit.Event) (audit.Event, error)
}

// Engine evaluates processing attempts. Safe for concurrent use.
type Engine struct {
	restrictions store.Repository[models.Restriction]
	objections   store.Repository[models.Objection]
	auditor      AuditPort
	logger       *slog.Logger
	metrics      *metrics.Metrics
	tracer       trace.Tracer
}

// Option configures the Engine.
type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		e.tracer = t
	}
}

// New creates an Engine reading from the restriction and objection repositories.
func New(
	restrictions store.Repository[models.Restriction],
	objections store.Repository[models.Objection],
	auditor AuditPort,
	opts ...Option,
) *Engine {
	e := &Engine{
		restrictions: restrictions,
		objections:   objections,
		auditor:      auditor,
		tracer:       otel.Tracer("custodian/compliance/enforcement"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AttemptProcessing decides whether attempt may proceed for subjectID and
// records the decision as a processing_attempt audit event. An error means
// no decision was reached; callers must treat it as blocked.
func (e *Engine) AttemptProcessing(ctx context.Context, subjectID string, attempt models.ProcessingAttempt) (models.EnforcementDecision, error) {
	ctx, span := e.tracer.Start(ctx, "Engine.AttemptProcessing",
		trace.WithAttributes(
			attribute.String("subject.id", subjectID),
			attribute.String("operation", attempt.Operation),
		),
	)
	defer span.End()

	if strings.TrimSpace(subjectID) == "" {
		return models.EnforcementDecision{}, dErrors.New(dErrors.CodeValidation, "subject id is required")
	}
	if strings.TrimSpace(attempt.Operation) == "" {
		return models.EnforcementDecision{}, dErrors.New(dErrors.CodeValidation, "operation is required")
	}
	if attempt.Timestamp.IsZero() {
		attempt.Timestamp = requestcontext.Now(ctx)
	}

	restriction, err := lookup(ctx, e.restrictions, subjectID)
	if err != nil {
		return e.fail(ctx, span, subjectID, err)
	}
	var objection *models.Objection
	if restriction == nil || !restriction.IsActive() {
		objection, err = lookup(ctx, e.objections, subjectID)
		if err != nil {
			return e.fail(ctx, span, subjectID, err)
		}
	}

	decision, basis := Decide(restriction, objection, attempt.Operation)
	span.SetAttributes(
		attribute.Bool("decision.blocked", decision.Blocked),
		attribute.String("decision.basis", string(basis)),
	)

	if _, err := e.auditor.Emit(ctx, audit.Event{
		Action:     string(audit.EventProcessingAttempt),
		EntityType: audit.EntityDataSubject,
		EntityID:   subjectID,
		UserID:     requestcontext.ActorID(ctx),
		RequestID:  requestcontext.RequestID(ctx),
		Success:    true,
		Details: audit.MarshalDetails(map[string]any{
			"attempt":  attempt,
			"decision": decision,
			"basis":    basis,
		}),
	}); err != nil {
		return e.fail(ctx, span, subjectID, err)
	}

	e.metrics.IncEnforcementDecision(decision.Blocked, string(basis))
	if decision.Blocked && e.logger != nil {
		e.logger.InfoContext(ctx, "processing attempt blocked",
			"subject_id", subjectID,
			"operation", attempt.Operation,
			"basis", basis,
			"override_available", decision.OverrideAvailable,
		)
	}
	return decision, nil
}

func (e *Engine) fail(ctx context.Context, span trace.Span, subjectID string, err error) (models.EnforcementDecision, error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, "enforcement failed")
	if e.logger != nil {
		e.logger.ErrorContext(ctx, "enforcement decision failed",
			"subject_id", subjectID,
			"error", err,
		)
	}
	return models.EnforcementDecision{}, dErrors.Wrap(err, dErrors.CodeInternal, "enforcement decision failed")
}

// lookup returns nil when the subject has no record of this kind.
func lookup[T any](ctx context.Context, repo store.Repository[T], subjectID string) (*T, error) {
	rec, err := repo.Get(ctx, store.SubjectKey(subjectID))
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load record: %w", err)
	}
	return &rec, nil
}
