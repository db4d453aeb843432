package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"custodian/internal/compliance/export"
	"custodian/internal/compliance/models"
	"custodian/internal/compliance/ports"
	"custodian/internal/compliance/validator"
	"custodian/pkg/domain"
	"custodian/pkg/platform/audit"
	"custodian/pkg/requestcontext"
)

// fieldCategories maps rectifiable fields to the category that holds them.
var fieldCategories = map[string]string{
	"name":        models.CategoryIdentity,
	"firstName":   models.CategoryIdentity,
	"lastName":    models.CategoryIdentity,
	"dateOfBirth": models.CategoryIdentity,
	"email":       models.CategoryContact,
	"phone":       models.CategoryContact,
	"address":     models.CategoryContact,
	"city":        models.CategoryContact,
	"postalCode":  models.CategoryContact,
	"country":     models.CategoryContact,
	"preferences": models.CategoryPreferences,
}

// RequestAccess assembles everything held about a subject and how it is
// processed.
func (s *Service) RequestAccess(ctx context.Context, req models.AccessRequest, opts models.Options) (*models.AccessResult, error) {
	return run(ctx, s, job[models.AccessResult]{
		right:      domain.RightAccess,
		subjectID:  req.DataSubjectID,
		entityType: audit.EntityDataSubject,
		request:    req,
		options:    opts,
		validate:   func() validator.Result { return s.validator.ValidateAccess(req) },
		execute: func(ctx context.Context, res *models.AccessResult) error {
			return s.access(ctx, req, res)
		},
		summary: func(res *models.AccessResult) map[string]any {
			categories := make([]string, 0, len(res.PersonalData))
			for _, r := range res.PersonalData {
				categories = append(categories, r.Category)
			}
			return map[string]any{
				"accessId":   res.AccessID,
				"format":     res.Format,
				"categories": categories,
			}
		},
	})
}

func (s *Service) access(ctx context.Context, req models.AccessRequest, res *models.AccessResult) error {
	format := req.Format
	if format == "" {
		format = models.FormatJSON
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recs, err := s.PersonalData().Fetch(gctx, req.DataSubjectID, ports.FetchOptions{})
		if err != nil {
			return fmt.Errorf("fetch personal data: %w", err)
		}
		res.PersonalData = recs
		return nil
	})
	g.Go(func() (err error) {
		res.ProcessingPurposes, err = s.catalog.PurposesFor(gctx, req.DataSubjectID)
		return err
	})
	g.Go(func() (err error) {
		res.LegalBasis, err = s.catalog.LegalBasisFor(gctx, req.DataSubjectID)
		return err
	})
	g.Go(func() (err error) {
		res.RetentionPeriods, err = s.catalog.RetentionPeriodsFor(gctx, req.DataSubjectID)
		return err
	})
	g.Go(func() (err error) {
		res.ErasureCriteria, err = s.catalog.ErasureCriteriaFor(gctx, req.DataSubjectID)
		return err
	})
	g.Go(func() (err error) {
		res.ThirdPartyRecipients, err = s.catalog.ThirdPartyRecipientsFor(gctx, req.DataSubjectID)
		return err
	})
	g.Go(func() (err error) {
		res.Safeguards, err = s.catalog.SafeguardsFor(gctx, req.DataSubjectID)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("assemble access report: %w", err)
	}

	rectifications, err := s.stores.Rectifications.List(ctx, req.DataSubjectID)
	if err != nil {
		return fmt.Errorf("load rectifications: %w", err)
	}
	res.PersonalData = overlayRectifications(res.PersonalData, rectifications)

	res.AccessID = uuid.NewString()
	res.Format = format

	doc := export.Document{
		SubjectID:   req.DataSubjectID,
		GeneratedAt: requestcontext.Now(ctx).UTC(),
		Records:     res.PersonalData,
		Sections:    accessSections(res),
	}
	if format == models.FormatJSON {
		out, err := export.JSON(doc)
		if err != nil {
			return fmt.Errorf("render access report: %w", err)
		}
		res.Output = string(out)
		return nil
	}
	res.Output = string(export.Text(doc))
	return nil
}

// overlayRectifications applies corrected values onto the records that hold
// the field. Corrections for categories with no record are not materialized,
// so erased data stays erased.
func overlayRectifications(recs []models.PersonalDataRecord, rectifications []models.Rectification) []models.PersonalDataRecord {
	if len(rectifications) == 0 {
		return recs
	}
	byCategory := make(map[string]int, len(recs))
	for i, r := range recs {
		byCategory[r.Category] = i
	}
	for _, rect := range rectifications {
		category, ok := fieldCategories[rect.Field]
		if !ok {
			continue
		}
		i, ok := byCategory[category]
		if !ok {
			continue
		}
		if recs[i].Fields == nil {
			recs[i].Fields = make(map[string]any)
		}
		recs[i].Fields[rect.Field] = rect.NewValue
		if rect.UpdatedAt.After(recs[i].LastUpdated) {
			recs[i].LastUpdated = rect.UpdatedAt
		}
		recs[i].Accuracy = "rectified"
	}
	return recs
}

func accessSections(res *models.AccessResult) []export.Section {
	recipients := make([]string, 0, len(res.ThirdPartyRecipients))
	for _, r := range res.ThirdPartyRecipients {
		recipients = append(recipients, fmt.Sprintf("%s (%s, %s)", r.Name, r.Purpose, r.Country))
	}
	return []export.Section{
		{Title: "Processing purposes", Lines: res.ProcessingPurposes},
		{Title: "Legal basis", Lines: keyedLines(res.LegalBasis)},
		{Title: "Retention periods", Lines: keyedLines(res.RetentionPeriods)},
		{Title: "Erasure criteria", Lines: res.ErasureCriteria},
		{Title: "Third-party recipients", Lines: recipients},
		{Title: "Safeguards", Lines: res.Safeguards},
	}
}

func keyedLines(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+": "+m[k])
	}
	return lines
}
