package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"custodian/internal/compliance/models"
	"custodian/internal/compliance/store"
	"custodian/internal/compliance/validator"
	"custodian/pkg/domain"
	"custodian/pkg/platform/audit"
	"custodian/pkg/requestcontext"
)

// syncTargets are the downstream systems a correction propagates to.
var syncTargets = []string{"primary-database", "crm", "analytics-warehouse"}

const syncFailureTarget = "analytics-warehouse"

// Rectify applies a subject's corrections. Corrections that fail the field
// checks are reported and skipped; the rest are applied.
func (s *Service) Rectify(ctx context.Context, req models.RectificationRequest, opts models.Options) (*models.RectificationResult, error) {
	shape := s.validator.ValidateRectification(req)
	return run(ctx, s, job[models.RectificationResult]{
		right:      domain.RightRectification,
		subjectID:  req.DataSubjectID,
		entityType: audit.EntityDataSubject,
		request:    rectificationAuditView(req),
		options:    opts,
		validate:   func() validator.Result { return shape.Result },
		execute: func(ctx context.Context, res *models.RectificationResult) error {
			return s.rectify(ctx, req, shape.FieldErrors, opts, res)
		},
		summary: func(res *models.RectificationResult) map[string]any {
			fields := make([]string, 0, len(res.AppliedCorrections))
			for f := range res.AppliedCorrections {
				fields = append(fields, f)
			}
			sort.Strings(fields)
			return map[string]any{
				"rectificationId":   res.RectificationID,
				"correctedFields":   fields,
				"rejectedFields":    len(res.FieldErrors),
				"allSystemsUpdated": res.ConsistencyCheck.AllSystemsUpdated,
			}
		},
	})
}

// rectificationAuditView keeps corrected values out of the audit trail.
func rectificationAuditView(req models.RectificationRequest) map[string]any {
	fields := make([]string, 0, len(req.Corrections))
	for f := range req.Corrections {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return map[string]any{
		"dataSubjectId": req.DataSubjectID,
		"fields":        fields,
		"reason":        req.Reason,
		"hasEvidence":   req.Evidence != "",
	}
}

func (s *Service) rectify(ctx context.Context, req models.RectificationRequest, fieldErrors map[string]string, opts models.Options, res *models.RectificationResult) error {
	now := requestcontext.Now(ctx).UTC()
	res.RectificationID = uuid.NewString()
	res.AppliedCorrections = make(map[string]any, len(req.Corrections))

	fields := make([]string, 0, len(req.Corrections))
	for f := range req.Corrections {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	for _, field := range fields {
		if _, rejected := fieldErrors[field]; rejected {
			continue
		}
		record := models.Rectification{
			RecordMeta: models.RecordMeta{
				ID:        uuid.NewString(),
				SubjectID: req.DataSubjectID,
				Reason:    req.Reason,
				Status:    models.StatusCompleted,
				CreatedAt: now,
				UpdatedAt: now,
			},
			Field:    field,
			NewValue: req.Corrections[field],
			Evidence: req.Evidence,
		}
		key := store.Key{SubjectID: req.DataSubjectID, Name: field}
		if err := s.stores.Rectifications.Set(ctx, key, record); err != nil {
			return fmt.Errorf("save rectification of %s: %w", field, err)
		}
		res.AppliedCorrections[field] = record.NewValue
	}

	if len(fieldErrors) > 0 {
		res.FieldErrors = fieldErrors
		res.Errors = validator.FieldErrorList(fieldErrors)
	}
	res.ConsistencyCheck = s.propagate(ctx, req.DataSubjectID, opts)
	return nil
}

// propagate pushes corrections to downstream systems.
func (s *Service) propagate(ctx context.Context, subjectID string, opts models.Options) models.ConsistencyCheck {
	if !opts.SimulateSyncFailure {
		return models.ConsistencyCheck{
			AllSystemsUpdated: true,
			UpdatedSystems:    append([]string(nil), syncTargets...),
		}
	}
	check := models.ConsistencyCheck{FailedSystems: []string{syncFailureTarget}}
	for _, sys := range syncTargets {
		if sys != syncFailureTarget {
			check.UpdatedSystems = append(check.UpdatedSystems, sys)
		}
	}
	s.metrics.IncDegradedSideEffect("sync")
	if s.logger != nil {
		s.logger.WarnContext(ctx, "rectification sync incomplete",
			"subject_id", subjectID,
			"failed_systems", check.FailedSystems,
		)
	}
	return check
}
