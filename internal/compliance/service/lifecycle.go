package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"custodian/internal/compliance/models"
	"custodian/internal/compliance/store"
	"custodian/pkg/domain"
	dErrors "custodian/pkg/domain-errors"
	"custodian/pkg/platform/audit"
	"custodian/pkg/platform/sentinel"
	"custodian/pkg/requestcontext"
)

// LiftRestriction ends the subject's active restriction. Processing the
// restriction blocked is allowed again afterwards.
func (s *Service) LiftRestriction(ctx context.Context, subjectID, reason string) (*models.Restriction, error) {
	var lifted models.Restriction
	err := s.transition(ctx, domain.RightRestriction, subjectID, string(audit.EventRestrictionLifted),
		func(ctx context.Context) (map[string]any, error) {
			rec, err := s.stores.Restrictions.Get(ctx, store.SubjectKey(subjectID))
			if err != nil {
				return nil, err
			}
			if !rec.IsActive() {
				return nil, dErrors.New(dErrors.CodeConflict, "restriction is not active")
			}
			now := requestcontext.Now(ctx).UTC()
			rec.Status = models.StatusLifted
			rec.UpdatedAt = now
			rec.LiftedAt = &now
			rec.LiftReason = reason
			lifted = rec
			return map[string]any{"restrictionId": rec.ID, "reason": reason}, nil
		},
		func(ctx context.Context) error {
			return s.stores.Restrictions.Set(ctx, store.SubjectKey(subjectID), lifted)
		},
	)
	if err != nil {
		return nil, err
	}
	return &lifted, nil
}

// WithdrawObjection ends the subject's active objection.
func (s *Service) WithdrawObjection(ctx context.Context, subjectID string) (*models.Objection, error) {
	var withdrawn models.Objection
	err := s.transition(ctx, domain.RightObjection, subjectID, string(audit.EventObjectionWithdrawn),
		func(ctx context.Context) (map[string]any, error) {
			rec, err := s.stores.Objections.Get(ctx, store.SubjectKey(subjectID))
			if err != nil {
				return nil, err
			}
			if !rec.IsActive() {
				return nil, dErrors.New(dErrors.CodeConflict, "objection is not active")
			}
			now := requestcontext.Now(ctx).UTC()
			rec.Status = models.StatusWithdrawn
			rec.UpdatedAt = now
			rec.WithdrawnAt = &now
			rec.ProcessingStopped = false
			withdrawn = rec
			return map[string]any{"objectionId": rec.ID, "objectionType": rec.ObjectionType}, nil
		},
		func(ctx context.Context) error {
			return s.stores.Objections.Set(ctx, store.SubjectKey(subjectID), withdrawn)
		},
	)
	if err != nil {
		return nil, err
	}
	return &withdrawn, nil
}

// transition moves a record through its lifecycle under the subject lock.
// prepare validates and computes the new record; commit persists it after
// the audit event is written.
func (s *Service) transition(
	ctx context.Context,
	right domain.Right,
	subjectID, action string,
	prepare func(ctx context.Context) (map[string]any, error),
	commit func(ctx context.Context) error,
) error {
	ctx, span := s.tracer.Start(ctx, "Service."+action,
		trace.WithAttributes(attribute.String("subject.id", subjectID)),
	)
	defer span.End()

	fail := func(err error) error {
		span.RecordError(err)
		span.SetStatus(codes.Error, action+" failed")
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeNotFound, "no "+right.String()+" recorded for subject")
		}
		var coded *dErrors.Error
		if !errors.As(err, &coded) {
			return dErrors.Wrap(err, dErrors.CodeInternal, action+" failed")
		}
		return err
	}

	if err := s.guard(right); err != nil {
		return fail(err)
	}
	if err := s.checkIdentity(subjectID); err != nil {
		return fail(err)
	}

	err := s.locks.withSubject(ctx, subjectID, func(ctx context.Context) error {
		details, err := prepare(ctx)
		if err != nil {
			return err
		}
		ev, err := s.record(ctx, audit.Event{
			EntityType: audit.EntityDataSubject,
			EntityID:   subjectID,
			UserID:     requestcontext.ActorID(ctx),
			RequestID:  requestcontext.RequestID(ctx),
			Success:    true,
		}, action, uuid.Nil, details)
		if err != nil {
			return err
		}
		if err := commit(ctx); err != nil {
			return s.amend(ctx, ev, fmt.Errorf("save %s: %w", right.String(), err))
		}
		return nil
	})
	if err != nil {
		return fail(err)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "compliance record transitioned",
			"action", action,
			"subject_id", subjectID,
		)
	}
	return nil
}
