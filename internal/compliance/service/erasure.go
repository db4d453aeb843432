package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"custodian/internal/compliance/models"
	"custodian/internal/compliance/ports"
	"custodian/internal/compliance/store"
	"custodian/internal/compliance/validator"
	"custodian/pkg/domain"
	"custodian/pkg/platform/audit"
	"custodian/pkg/platform/sentinel"
	pstrings "custodian/pkg/platform/strings"
	"custodian/pkg/requestcontext"
)

const (
	notificationRetryDelay = 24 * time.Hour
	notificationMaxRetries = 3
)

// exceptionRetainedCategories are kept whenever an erasure exception applies.
var exceptionRetainedCategories = []string{
	models.CategoryLegalObligationData,
	models.CategoryPublicInterestData,
}

var backupLimitation = models.TechnicalLimitation{
	Description:        "Personal data in immutable backups cannot be selectively erased",
	AlternativeMeasure: "Backups are access-restricted and the data expires under the standard backup rotation",
}

// Erase logically removes a subject's personal data. Later personal data
// lookups honor the erasure.
func (s *Service) Erase(ctx context.Context, req models.ErasureRequest, opts models.Options) (*models.ErasureResult, error) {
	return run(ctx, s, job[models.ErasureResult]{
		right:      domain.RightErasure,
		subjectID:  req.DataSubjectID,
		entityType: audit.EntityDataSubject,
		request:    req,
		options:    opts,
		validate:   func() validator.Result { return s.validator.ValidateErasure(req) },
		execute: func(ctx context.Context, res *models.ErasureResult) error {
			return s.erase(ctx, req, opts, res)
		},
		summary: func(res *models.ErasureResult) map[string]any {
			return map[string]any{
				"erasureId":          res.ErasureID,
				"erasedCategories":   res.ErasedCategories,
				"retainedCategories": res.RetainedCategories,
				"retryScheduled":     res.RetryScheduled,
			}
		},
	})
}

func (s *Service) erase(ctx context.Context, req models.ErasureRequest, opts models.Options, res *models.ErasureResult) error {
	now := requestcontext.Now(ctx).UTC()
	scope := req.Scope
	if scope == "" {
		scope = models.ScopeAllPersonalData
	}

	erased, retained := partitionCategories(scope, req.DataCategories)
	exceptions := pstrings.DedupeAndTrim(req.Exceptions)
	if exceptions == nil {
		exceptions = []string{}
	}
	if len(exceptions) > 0 {
		retained = pstrings.DedupeAndTrim(append(retained, exceptionRetainedCategories...))
	}

	res.ErasureID = uuid.NewString()
	res.Scope = scope
	res.ErasedCategories = erased
	res.RetainedCategories = retained
	res.ExceptionsApplied = exceptions

	if req.NotifyThirdParties {
		if err := s.notifyRecipients(ctx, req.DataSubjectID, erased, opts, now, res); err != nil {
			return err
		}
	}
	if opts.SimulateTechnicalLimitations {
		res.TechnicalLimitations = []models.TechnicalLimitation{backupLimitation}
		s.metrics.IncDegradedSideEffect("technical_limitation")
	}

	record := models.Erasure{
		RecordMeta: models.RecordMeta{
			ID:        res.ErasureID,
			SubjectID: req.DataSubjectID,
			Reason:    string(req.Reason),
			Status:    models.StatusCompleted,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Scope:              scope,
		ErasedCategories:   erased,
		RetainedCategories: retained,
		ExceptionsApplied:  exceptions,
	}
	prev, err := s.stores.Erasures.Get(ctx, store.SubjectKey(req.DataSubjectID))
	switch {
	case err == nil:
		record = mergeErasures(prev, record)
	case !errors.Is(err, sentinel.ErrNotFound):
		return fmt.Errorf("load erasure: %w", err)
	}
	if err := s.stores.Erasures.Set(ctx, store.SubjectKey(req.DataSubjectID), record); err != nil {
		return fmt.Errorf("save erasure: %w", err)
	}
	return nil
}

// mergeErasures folds a new erasure into the subject's standing one. Erasure
// only ever widens: a category erased once stays erased.
func mergeErasures(prev, next models.Erasure) models.Erasure {
	merged := next
	merged.CreatedAt = prev.CreatedAt
	if prev.Scope == models.ScopeAllPersonalData || next.Scope == models.ScopeAllPersonalData {
		merged.Scope = models.ScopeAllPersonalData
	}
	merged.ErasedCategories = pstrings.DedupeAndTrim(append(slices.Clone(prev.ErasedCategories), next.ErasedCategories...))
	retained := pstrings.DedupeAndTrim(append(slices.Clone(prev.RetainedCategories), next.RetainedCategories...))
	merged.RetainedCategories = pstrings.Subtract(retained, merged.ErasedCategories)
	merged.ExceptionsApplied = pstrings.DedupeAndTrim(append(slices.Clone(prev.ExceptionsApplied), next.ExceptionsApplied...))
	return merged
}

// notifyRecipients tells every third-party recipient about the erasure.
// Failed notifications become failure records with retry guidance; the
// erasure itself still succeeds.
func (s *Service) notifyRecipients(ctx context.Context, subjectID string, erased []string, opts models.Options, now time.Time, res *models.ErasureResult) error {
	recipients, err := s.catalog.ThirdPartyRecipientsFor(ctx, subjectID)
	if err != nil {
		return fmt.Errorf("load recipients: %w", err)
	}
	scope := ports.NotificationScope{Right: domain.RightErasure.String(), Categories: erased}

	unavailable := opts.SimulateThirdPartyFailure
	for _, r := range recipients {
		if unavailable {
			res.ThirdPartyFailures = append(res.ThirdPartyFailures, notificationFailure(r, "Third-party notification service unavailable", now))
			continue
		}
		rec, err := s.notifier.Notify(ctx, subjectID, r, scope)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			res.ThirdPartyFailures = append(res.ThirdPartyFailures, notificationFailure(r, err.Error(), now))
			// stop fanning out once the notifier is known to be down
			unavailable = errors.Is(err, sentinel.ErrUnavailable)
			continue
		}
		res.ThirdPartyNotifications = append(res.ThirdPartyNotifications, rec)
	}

	if len(res.ThirdPartyFailures) > 0 {
		res.RetryScheduled = true
		s.metrics.IncDegradedSideEffect("third_party_notification")
		if s.logger != nil {
			s.logger.WarnContext(ctx, "third-party erasure notifications failed",
				"subject_id", subjectID,
				"failed", len(res.ThirdPartyFailures),
				"notified", len(res.ThirdPartyNotifications),
			)
		}
	}
	return nil
}

func notificationFailure(r models.Recipient, msg string, now time.Time) models.NotificationFailure {
	return models.NotificationFailure{
		Recipient:  r.Name,
		Error:      msg,
		RetryAt:    now.Add(notificationRetryDelay),
		MaxRetries: notificationMaxRetries,
	}
}
