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

const viewpointReviewPeriod = 14 * 24 * time.Hour

var decisionDetails = map[models.DecisionType]models.DecisionDetails{
	models.DecisionCreditScoring: {
		Description:        "Creditworthiness assessment used to approve or decline credit applications",
		Algorithm:          "gradient-boosted scoring model",
		Criteria:           []string{"payment history", "outstanding debt", "length of credit history", "income verification"},
		LegalEffects:       true,
		SignificantEffects: true,
	},
	models.DecisionEmploymentScreening: {
		Description:        "Automated screening of job applications against role requirements",
		Algorithm:          "rule-based qualification matcher",
		Criteria:           []string{"required qualifications", "relevant experience", "location eligibility"},
		LegalEffects:       false,
		SignificantEffects: true,
	},
	models.DecisionInsurancePricing: {
		Description:        "Premium calculation from risk factors",
		Algorithm:          "actuarial risk model",
		Criteria:           []string{"claims history", "coverage level", "risk category"},
		LegalEffects:       true,
		SignificantEffects: true,
	},
	models.DecisionMarketingProfiling: {
		Description:        "Segmentation for personalized offers",
		Algorithm:          "clustering over engagement signals",
		Criteria:           []string{"purchase history", "engagement", "stated preferences"},
		LegalEffects:       false,
		SignificantEffects: false,
	},
	models.DecisionFraudDetection: {
		Description:        "Transaction risk scoring to block suspected fraud",
		Algorithm:          "anomaly detection model",
		Criteria:           []string{"transaction pattern", "device fingerprint", "location consistency"},
		LegalEffects:       false,
		SignificantEffects: true,
	},
}

var decisionRights = models.DecisionRights{
	Available: []string{
		"obtain human intervention",
		"express point of view",
		"contest the decision",
		"receive an explanation",
	},
	AppealProcess:      "Submit an appeal to the data protection officer within 30 days of the decision",
	ComplaintAuthority: "The competent data protection supervisory authority",
}

func cloneDecisionDetails(d models.DecisionDetails) models.DecisionDetails {
	d.Criteria = append([]string(nil), d.Criteria...)
	return d
}

func cloneDecisionRights() models.DecisionRights {
	r := decisionRights
	r.Available = append([]string(nil), r.Available...)
	return r
}

// ReviewAutomatedDecision handles a subject's objection, review request,
// viewpoint or explanation request about an automated decision.
func (s *Service) ReviewAutomatedDecision(ctx context.Context, req models.AutomatedDecisionRequest, opts models.Options) (*models.AutomatedDecisionResult, error) {
	return run(ctx, s, job[models.AutomatedDecisionResult]{
		right:      domain.RightAutomatedDecision,
		subjectID:  req.DataSubjectID,
		entityType: audit.EntityDataSubject,
		request:    req,
		options:    opts,
		validate:   func() validator.Result { return s.validator.ValidateAutomatedDecision(req) },
		execute: func(ctx context.Context, res *models.AutomatedDecisionResult) error {
			return s.reviewDecision(ctx, req, res)
		},
		summary: func(res *models.AutomatedDecisionResult) map[string]any {
			return map[string]any{
				"reviewId":             res.ReviewID,
				"decisionType":         res.DecisionType,
				"requestType":          res.RequestType,
				"humanReviewRequested": res.HumanReviewRequested,
			}
		},
	})
}

func (s *Service) reviewDecision(ctx context.Context, req models.AutomatedDecisionRequest, res *models.AutomatedDecisionResult) error {
	now := requestcontext.Now(ctx).UTC()
	res.ReviewID = uuid.NewString()
	res.DecisionType = req.DecisionType
	res.RequestType = req.RequestType
	res.DecisionDetails = cloneDecisionDetails(decisionDetails[req.DecisionType])
	res.Rights = cloneDecisionRights()

	var deadline time.Time
	switch req.RequestType {
	case models.DecisionRequestObjection:
		res.HumanReviewRequested = true
		res.ObjectionRecorded = true
		deadline = now.Add(reviewPeriod)
	case models.DecisionRequestHumanIntervention:
		res.HumanReviewRequested = true
		deadline = now.Add(reviewPeriod)
	case models.DecisionRequestExpressViewpoint:
		res.ViewpointRecorded = true
		deadline = now.Add(viewpointReviewPeriod)
	case models.DecisionRequestExplanation:
		res.ExplanationProvided = true
	}
	if !deadline.IsZero() {
		res.ReviewDeadline = &deadline
	}

	status := models.StatusActive
	if res.ReviewDeadline == nil {
		status = models.StatusCompleted
	}
	record := models.DecisionReview{
		RecordMeta: models.RecordMeta{
			ID:        res.ReviewID,
			SubjectID: req.DataSubjectID,
			Reason:    string(req.RequestType),
			Status:    status,
			CreatedAt: now,
			UpdatedAt: now,
		},
		DecisionType:         req.DecisionType,
		RequestType:          req.RequestType,
		HumanReviewRequested: res.HumanReviewRequested,
		ReviewDeadline:       res.ReviewDeadline,
	}
	if err := s.stores.Decisions.Set(ctx, store.SubjectKey(req.DataSubjectID), record); err != nil {
		return fmt.Errorf("save decision review: %w", err)
	}
	return nil
}
