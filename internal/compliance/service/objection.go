package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"custodian/internal/compliance/models"
	"custodian/internal/compliance/store"
	"custodian/internal/compliance/validator"
	"custodian/pkg/domain"
	"custodian/pkg/platform/audit"
	"custodian/pkg/requestcontext"
)

var (
	marketingChannels    = []string{"email", "sms", "telephone", "post", "online-advertising"}
	profilingActivities  = []string{"profiling", "automated-decision-making", "behavioral-analysis"}
	researchRestrictions = []string{
		"no new personal data collected for research",
		"existing research data pseudonymized",
		"subject excluded from future studies",
	}
)

const researchPublicInterestBasis = "Processing necessary for a task carried out in the public interest continues under Article 89 safeguards"

// objectionRule applies the type-specific effect of an objection.
type objectionRule func(rec *models.Objection, res *models.ObjectionResult, opts models.Options, now time.Time)

func compellingGroundsReview(rec *models.Objection, res *models.ObjectionResult, opts models.Options, now time.Time) {
	deadline := now.Add(reviewPeriod)
	review := &models.CompellingGroundsReview{Required: true, Deadline: deadline, Outcome: "pending"}
	rec.ReviewDeadline = &deadline
	rec.ProcessingStopped = true
	if opts.SimulateCompellingGrounds {
		// controller demonstrated overriding grounds; processing continues
		review.Outcome = "compelling-grounds-demonstrated"
		rec.ProcessingStopped = false
		rec.Status = models.StatusCompleted
	}
	res.CompellingGroundsReview = review
}

var objectionRules = map[models.ObjectionType]objectionRule{
	models.ObjectionLegitimateInterests: compellingGroundsReview,
	models.ObjectionPublicInterest:      compellingGroundsReview,
	models.ObjectionDirectMarketing: func(rec *models.Objection, res *models.ObjectionResult, _ models.Options, _ time.Time) {
		rec.ProcessingStopped = true
		res.ImmediateEffect = true
		res.MarketingChannels = append([]string(nil), marketingChannels...)
	},
	models.ObjectionProfiling: func(rec *models.Objection, res *models.ObjectionResult, _ models.Options, _ time.Time) {
		rec.ProcessingStopped = true
		res.ImmediateEffect = true
		res.StoppedActivities = append([]string(nil), profilingActivities...)
	},
	models.ObjectionAutomatedDecisionMaking: func(rec *models.Objection, res *models.ObjectionResult, _ models.Options, _ time.Time) {
		rec.ProcessingStopped = true
		res.ImmediateEffect = true
		res.StoppedActivities = []string{"automated-decision-making"}
	},
	models.ObjectionScientificResearch:  researchObjection,
	models.ObjectionHistoricalResearch:  researchObjection,
	models.ObjectionStatisticalPurposes: researchObjection,
}

func researchObjection(rec *models.Objection, res *models.ObjectionResult, _ models.Options, _ time.Time) {
	rec.ProcessingStopped = true
	res.ResearchRestrictions = append([]string(nil), researchRestrictions...)
	res.PublicInterestBasis = researchPublicInterestBasis
}

// Object records a subject's objection and stops the processing it covers.
// A new objection replaces any previous one for the subject.
func (s *Service) Object(ctx context.Context, req models.ObjectionRequest, opts models.Options) (*models.ObjectionResult, error) {
	return run(ctx, s, job[models.ObjectionResult]{
		right:      domain.RightObjection,
		subjectID:  req.DataSubjectID,
		entityType: audit.EntityDataSubject,
		request:    req,
		options:    opts,
		validate:   func() validator.Result { return s.validator.ValidateObjection(req) },
		execute: func(ctx context.Context, res *models.ObjectionResult) error {
			return s.object(ctx, req, opts, res)
		},
		summary: func(res *models.ObjectionResult) map[string]any {
			return map[string]any{
				"objectionId":       res.ObjectionID,
				"objectionType":     res.ObjectionType,
				"processingStopped": res.ProcessingStopped,
			}
		},
	})
}

func (s *Service) object(ctx context.Context, req models.ObjectionRequest, opts models.Options, res *models.ObjectionResult) error {
	now := requestcontext.Now(ctx).UTC()
	record := models.Objection{
		RecordMeta: models.RecordMeta{
			ID:        uuid.NewString(),
			SubjectID: req.DataSubjectID,
			Reason:    req.Reason,
			Status:    models.StatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		},
		ObjectionType: req.ObjectionType,
	}
	if rule, ok := objectionRules[req.ObjectionType]; ok {
		rule(&record, res, opts, now)
	}

	if err := s.stores.Objections.Set(ctx, store.SubjectKey(req.DataSubjectID), record); err != nil {
		return fmt.Errorf("save objection: %w", err)
	}

	res.ObjectionID = record.ID
	res.ObjectionType = record.ObjectionType
	res.ProcessingStopped = record.ProcessingStopped
	return nil
}
