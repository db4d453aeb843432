package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"custodian/internal/compliance/export"
	"custodian/internal/compliance/models"
	"custodian/internal/compliance/ports"
	"custodian/internal/compliance/store"
	"custodian/internal/compliance/validator"
	"custodian/pkg/domain"
	"custodian/pkg/platform/audit"
	"custodian/pkg/requestcontext"
)

// portabilityScope fixes which categories an export carries.
type portabilityScope struct {
	included []string
	excluded []models.Exclusion
}

var (
	providedBySubjectScope = portabilityScope{
		included: []string{models.CategoryIdentity, models.CategoryContact, models.CategoryPreferences},
		excluded: []models.Exclusion{
			{Category: "derived-data", Reason: "Created by the controller from provided data; not provided by the subject"},
			{Category: "inferred-data", Reason: "Inferred by analytics; not provided by the subject"},
			{Category: "legitimate-interests-data", Reason: "Processed on legitimate interests rather than consent or contract"},
			{Category: "third-party-data", Reason: "Concerns other individuals whose rights would be affected"},
		},
	}
	allDataScope = portabilityScope{
		included: []string{models.CategoryIdentity, models.CategoryContact, models.CategoryPreferences, models.CategoryUsage},
	}
)

func scopeFor(scope string) portabilityScope {
	if scope == models.PortabilityProvidedBySubject {
		return providedBySubjectScope
	}
	return allDataScope
}

// Export produces a machine-readable copy of a subject's data and optionally
// transmits it to another controller.
func (s *Service) Export(ctx context.Context, req models.PortabilityRequest, opts models.Options) (*models.PortabilityResult, error) {
	return run(ctx, s, job[models.PortabilityResult]{
		right:      domain.RightPortability,
		subjectID:  req.DataSubjectID,
		entityType: audit.EntityDataSubject,
		request:    req,
		options:    opts,
		validate:   func() validator.Result { return s.validator.ValidatePortability(req) },
		execute: func(ctx context.Context, res *models.PortabilityResult) error {
			return s.export(ctx, req, opts, res)
		},
		summary: func(res *models.PortabilityResult) map[string]any {
			summary := map[string]any{
				"exportId": res.ExportID,
				"format":   res.Format,
				"checksum": res.Checksum,
				"size":     res.Size,
			}
			if res.Transmission != nil {
				summary["transmissionStatus"] = res.Transmission.Status
			}
			return summary
		},
	})
}

func (s *Service) export(ctx context.Context, req models.PortabilityRequest, opts models.Options, res *models.PortabilityResult) error {
	now := requestcontext.Now(ctx).UTC()
	scope := scopeFor(req.Scope)

	records, err := s.PersonalData().Fetch(ctx, req.DataSubjectID, ports.FetchOptions{Categories: scope.included})
	if err != nil {
		return fmt.Errorf("fetch personal data: %w", err)
	}
	payload, err := export.Render(req.Format, export.Document{
		SubjectID:   req.DataSubjectID,
		GeneratedAt: now,
		Records:     records,
	})
	if err != nil {
		return fmt.Errorf("render export: %w", err)
	}

	res.ExportID = uuid.NewString()
	res.Format = req.Format
	res.IncludedCategories = append([]string(nil), scope.included...)
	res.ExcludedCategories = append([]models.Exclusion(nil), scope.excluded...)
	res.Data = string(payload)
	res.Checksum = export.Checksum(payload)
	res.ChecksumAlgorithm = export.ChecksumAlgorithm
	res.Size = len(payload)

	if req.TransmissionMethod == models.TransmissionDirectAPI && req.TargetController != "" {
		s.transmit(ctx, req, opts, res)
	}

	record := models.PortabilityExport{
		RecordMeta: models.RecordMeta{
			ID:        res.ExportID,
			SubjectID: req.DataSubjectID,
			Reason:    req.Scope,
			Status:    models.StatusCompleted,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Format:             req.Format,
		Checksum:           res.Checksum,
		IncludedCategories: res.IncludedCategories,
	}
	if res.Transmission != nil {
		record.TransmissionStatus = res.Transmission.Status
	}
	if err := s.stores.Portability.Set(ctx, store.SubjectKey(req.DataSubjectID), record); err != nil {
		return fmt.Errorf("save export: %w", err)
	}
	return nil
}

// transmit sends the export to the target controller. A failed transfer
// leaves the export available for download.
func (s *Service) transmit(ctx context.Context, req models.PortabilityRequest, opts models.Options, res *models.PortabilityResult) {
	res.Transmission = &models.Transmission{
		Method:           req.TransmissionMethod,
		TargetController: req.TargetController,
	}
	if opts.SimulateTransmissionFailure {
		res.Transmission.Status = "failed"
		res.TransmissionError = &models.TransmissionError{
			Message:           "Transmission to " + req.TargetController + " failed",
			AlternativeMethod: models.TransmissionDownload,
			RetryAvailable:    true,
		}
		s.metrics.IncDegradedSideEffect("transmission")
		if s.logger != nil {
			s.logger.WarnContext(ctx, "portability transmission failed",
				"subject_id", req.DataSubjectID,
				"target_controller", req.TargetController,
			)
		}
		return
	}
	completed := requestcontext.Now(ctx).UTC()
	res.Transmission.Status = "completed"
	res.Transmission.CompletedAt = &completed
}
