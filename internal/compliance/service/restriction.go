package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"custodian/internal/compliance/enforcement"
	"custodian/internal/compliance/models"
	"custodian/internal/compliance/store"
	"custodian/internal/compliance/validator"
	"custodian/pkg/domain"
	"custodian/pkg/platform/audit"
	"custodian/pkg/requestcontext"
)

const reviewPeriod = 30 * 24 * time.Hour

// restrictionRule adds the ground-specific behavior to a restriction.
type restrictionRule func(r *models.Restriction, res *models.RestrictionResult, now time.Time)

var restrictionRules = map[models.RestrictionGround]restrictionRule{
	models.RestrictionAccuracyContested: func(r *models.Restriction, res *models.RestrictionResult, now time.Time) {
		deadline := now.Add(reviewPeriod)
		r.VerificationRequired = true
		r.VerificationDeadline = &deadline
	},
	models.RestrictionUnlawfulProcessing: func(r *models.Restriction, res *models.RestrictionResult, now time.Time) {
		r.LegalReviewRequired = true
		res.ImmediateEffect = true
	},
	models.RestrictionDataSubjectObjection: func(r *models.Restriction, res *models.RestrictionResult, now time.Time) {
		r.ObjectionHandling = &models.ObjectionHandling{
			Status:         "pending-review",
			ReviewDeadline: now.Add(reviewPeriod),
		}
	},
}

// Restrict suspends processing of a subject's data except storage. A new
// restriction replaces any previous one for the subject.
func (s *Service) Restrict(ctx context.Context, req models.RestrictionRequest, opts models.Options) (*models.RestrictionResult, error) {
	return run(ctx, s, job[models.RestrictionResult]{
		right:      domain.RightRestriction,
		subjectID:  req.DataSubjectID,
		entityType: audit.EntityDataSubject,
		request:    req,
		options:    opts,
		validate:   func() validator.Result { return s.validator.ValidateRestriction(req) },
		execute: func(ctx context.Context, res *models.RestrictionResult) error {
			return s.restrict(ctx, req, res)
		},
		summary: func(res *models.RestrictionResult) map[string]any {
			return map[string]any{
				"restrictionId":        res.RestrictionID,
				"restrictedCategories": res.RestrictedCategories,
				"verificationRequired": res.VerificationRequired,
				"legalReviewRequired":  res.LegalReviewRequired,
			}
		},
	})
}

func (s *Service) restrict(ctx context.Context, req models.RestrictionRequest, res *models.RestrictionResult) error {
	now := requestcontext.Now(ctx).UTC()
	restricted, unaffected := partitionCategories(req.Scope, req.DataCategories)

	record := models.Restriction{
		RecordMeta: models.RecordMeta{
			ID:        uuid.NewString(),
			SubjectID: req.DataSubjectID,
			Reason:    string(req.Reason),
			Status:    models.StatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Scope:                string(req.Scope),
		RestrictedCategories: restricted,
		UnaffectedCategories: unaffected,
	}
	if rule, ok := restrictionRules[req.Reason]; ok {
		rule(&record, res, now)
	}

	if err := s.stores.Restrictions.Set(ctx, store.SubjectKey(req.DataSubjectID), record); err != nil {
		return fmt.Errorf("save restriction: %w", err)
	}

	res.RestrictionID = record.ID
	res.Status = record.Status
	res.RestrictedCategories = restricted
	res.UnaffectedCategories = unaffected
	res.VerificationRequired = record.VerificationRequired
	res.VerificationDeadline = record.VerificationDeadline
	res.LegalReviewRequired = record.LegalReviewRequired
	res.ObjectionHandling = record.ObjectionHandling
	res.AllowedOperations = enforcement.RestrictionAllowedOperations()
	return nil
}
