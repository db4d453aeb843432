package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"custodian/internal/compliance/metrics"
	"custodian/internal/compliance/models"
	"custodian/internal/compliance/validator"
	"custodian/pkg/domain"
	dErrors "custodian/pkg/domain-errors"
	"custodian/pkg/platform/audit"
	"custodian/pkg/requestcontext"
)

// job describes one rights request to the pipeline.
type job[R any] struct {
	right      domain.Right
	subjectID  string
	entityType string
	request    any
	options    models.Options
	// validate checks the request shape after the identity check passed.
	validate func() validator.Result
	// execute runs under the subject lock and fills the right-specific fields.
	execute func(ctx context.Context, res *R) error
	// summary is recorded on the completion event. It must not carry
	// personal data.
	summary func(res *R) map[string]any
}

// run drives a rights request through validation, auditing and execution.
// Fatal conditions return an error; shape failures return a result with
// Success=false.
func run[R any, PR interface {
	*R
	models.Result
}](ctx context.Context, s *Service, j job[R]) (*R, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "Service."+j.right.String(),
		trace.WithAttributes(
			attribute.String("right", j.right.String()),
			attribute.String("subject.id", j.subjectID),
		),
	)
	defer span.End()

	if err := s.guard(j.right); err != nil {
		return nil, s.fatal(ctx, span, j.right, j.subjectID, err)
	}
	if err := s.checkIdentity(j.subjectID); err != nil {
		return nil, s.fatal(ctx, span, j.right, j.subjectID, err)
	}

	res := new(R)
	base := PR(res).Base()

	if shape := j.validate(); !shape.Valid {
		reqEvent, err := s.record(ctx, j.baseEvent(ctx), j.right.RequestAction(), uuid.Nil, map[string]any{
			"request":          j.request,
			"options":          j.options,
			"validationErrors": shape.Errors,
		})
		if err != nil {
			return nil, s.fatal(ctx, span, j.right, j.subjectID, err)
		}
		base.Success = false
		base.Errors = shape.Errors
		s.finish(ctx, base, j.right, reqEvent, start)
		s.metrics.IncRequest(j.right.String(), metrics.OutcomeInvalid)
		return res, nil
	}

	var reqEvent audit.Event
	err := s.locks.withSubject(ctx, j.subjectID, func(ctx context.Context) error {
		var err error
		reqEvent, err = s.record(ctx, j.baseEvent(ctx), j.right.RequestAction(), uuid.Nil, map[string]any{
			"request": j.request,
			"options": j.options,
		})
		if err != nil {
			return err
		}

		if err := j.execute(ctx, res); err != nil {
			return s.amend(ctx, reqEvent, err)
		}

		completed := map[string]any{"requestId": reqEvent.ID.String()}
		if j.summary != nil {
			completed["summary"] = j.summary(res)
		}
		if _, err := s.record(ctx, j.baseEvent(ctx), j.right.CompletedAction(), reqEvent.ID, completed); err != nil {
			return s.amend(ctx, reqEvent, err)
		}
		return nil
	})
	if err != nil {
		return nil, s.fatal(ctx, span, j.right, j.subjectID, err)
	}

	base.Success = true
	s.finish(ctx, base, j.right, reqEvent, start)
	s.metrics.IncRequest(j.right.String(), metrics.OutcomeSuccess)
	return res, nil
}

func (s *Service) finish(ctx context.Context, base *models.ResultBase, right domain.Right, reqEvent audit.Event, start time.Time) {
	base.RequestID = reqEvent.ID.String()
	base.ProcessedAt = requestcontext.Now(ctx).UTC()
	elapsed := time.Since(start)
	base.ResponseTime = float64(elapsed.Microseconds()) / 1000.0
	base.Transparency = transparencyFor(right, s.contact())
	s.metrics.ObserveProcessingLatency(right.String(), elapsed)
}

// baseEvent is the audit event skeleton shared by a request's events.
func (j job[R]) baseEvent(ctx context.Context) audit.Event {
	return audit.Event{
		EntityType: j.entityType,
		EntityID:   j.subjectID,
		UserID:     requestcontext.ActorID(ctx),
		RequestID:  requestcontext.RequestID(ctx),
		Success:    true,
	}
}

// record appends ev as action. A non-nil correlation links it to an earlier
// request event.
func (s *Service) record(ctx context.Context, ev audit.Event, action string, correlation uuid.UUID, details map[string]any) (audit.Event, error) {
	ev.Action = action
	ev.CorrelationID = correlation
	ev.Details = audit.MarshalDetails(details)
	return s.auditor.Emit(ctx, ev)
}

// amend downgrades reqEvent after cause and returns cause, joined with the
// amendment failure if there was one. The amendment outlives cancellation
// of ctx so a timed-out request still leaves a consistent trail.
func (s *Service) amend(ctx context.Context, reqEvent audit.Event, cause error) error {
	if err := s.auditor.Amend(context.WithoutCancel(ctx), reqEvent.ID, cause.Error()); err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "failed to amend request event",
				"event_id", reqEvent.ID,
				"action", reqEvent.Action,
				"error", err,
			)
		}
		return errors.Join(cause, err)
	}
	return cause
}

// fatal records a request that produced no result and returns it as a coded error.
func (s *Service) fatal(ctx context.Context, span trace.Span, right domain.Right, subjectID string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, "request failed")
	s.metrics.IncRequest(right.String(), metrics.OutcomeError)

	var coded *dErrors.Error
	if !errors.As(err, &coded) {
		err = dErrors.Wrap(err, dErrors.CodeInternal, right.String()+" request failed")
	}
	if s.logger != nil {
		level := slog.LevelWarn
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			level = slog.LevelError
		}
		s.logger.Log(ctx, level, "rights request failed",
			"right", right.String(),
			"subject_id", subjectID,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	return err
}

func (s *Service) contact() string {
	if s.cfg.ContactEmail != "" {
		return s.cfg.ContactEmail
	}
	return defaultContactEmail
}
