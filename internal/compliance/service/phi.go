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

const (
	phiResponsePeriod  = 30 * 24 * time.Hour
	phiAmendmentPeriod = 60 * 24 * time.Hour
	phiEncryption      = "AES-256"
	phiMarketing       = "marketing"
)

var phiHandling = map[models.PHIRequestType]string{
	models.PHIAccess:                    "Copy of the designated record set prepared for the patient",
	models.PHIDisclosure:                "Disclosure limited to the minimum necessary for the stated purpose",
	models.PHIAmendment:                 "Amendment request forwarded to the record's originator for review",
	models.PHIRestriction:               "Requested restriction on uses and disclosures recorded for review",
	models.PHIConfidentialCommunication: "Alternative communication channel recorded for the patient",
}

var phiSafeguards = models.Safeguards{
	Administrative: []string{"workforce training", "access management", "security incident procedures"},
	Physical:       []string{"facility access controls", "workstation security", "device and media controls"},
	Technical:      []string{"access control", "audit controls", "integrity controls", "transmission security"},
}

func clonePHISafeguards() models.Safeguards {
	return models.Safeguards{
		Administrative: append([]string(nil), phiSafeguards.Administrative...),
		Physical:       append([]string(nil), phiSafeguards.Physical...),
		Technical:      append([]string(nil), phiSafeguards.Technical...),
	}
}

// HandlePHI processes a HIPAA individual-rights request for a patient.
func (s *Service) HandlePHI(ctx context.Context, req models.PHIRequest, opts models.Options) (*models.PHIResult, error) {
	return run(ctx, s, job[models.PHIResult]{
		right:      domain.RightPHI,
		subjectID:  req.PatientID,
		entityType: audit.EntityPatient,
		request:    req,
		options:    opts,
		validate:   func() validator.Result { return s.validator.ValidatePHI(req) },
		execute: func(ctx context.Context, res *models.PHIResult) error {
			return s.handlePHI(ctx, req, res)
		},
		summary: func(res *models.PHIResult) map[string]any {
			summary := map[string]any{
				"phiRequestId":     res.PHIRequestID,
				"requestType":      res.RequestType,
				"minimumNecessary": res.MinimumNecessary,
			}
			if res.Authorization != nil {
				summary["authorizationRequired"] = res.Authorization.Required
			}
			return summary
		},
	})
}

func (s *Service) handlePHI(ctx context.Context, req models.PHIRequest, res *models.PHIResult) error {
	now := requestcontext.Now(ctx).UTC()
	res.PHIRequestID = uuid.NewString()
	res.RequestType = req.RequestType
	res.Handling = phiHandling[req.RequestType]
	res.Safeguards = clonePHISafeguards()
	res.EncryptionApplied = true
	res.EncryptionMethod = phiEncryption

	period := phiResponsePeriod
	if req.RequestType == models.PHIAmendment {
		period = phiAmendmentPeriod
	}
	res.ResponseDeadline = now.Add(period)

	if req.RequestType == models.PHIDisclosure {
		res.MinimumNecessary = true
		if req.Purpose == phiMarketing {
			res.Authorization = &models.Authorization{Required: true, Status: "pending", Purpose: phiMarketing}
		}
	}

	record := models.PHIRequestRecord{
		RecordMeta: models.RecordMeta{
			ID:        res.PHIRequestID,
			SubjectID: req.PatientID,
			Reason:    req.Description,
			Status:    models.StatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		},
		RequestType:           req.RequestType,
		Purpose:               req.Purpose,
		AuthorizationRequired: res.Authorization != nil,
	}
	if err := s.stores.PHI.Set(ctx, store.SubjectKey(req.PatientID), record); err != nil {
		return fmt.Errorf("save phi request: %w", err)
	}
	return nil
}
