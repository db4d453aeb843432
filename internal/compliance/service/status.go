package service

import (
	"context"
	"errors"
	"fmt"

	"custodian/internal/compliance/models"
	"custodian/internal/compliance/store"
	"custodian/pkg/platform/sentinel"
)

// ComplianceStatus summarizes every record held for a subject.
func (s *Service) ComplianceStatus(ctx context.Context, subjectID string) (*models.ComplianceStatus, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := s.checkIdentity(subjectID); err != nil {
		return nil, err
	}

	key := store.SubjectKey(subjectID)
	status := &models.ComplianceStatus{SubjectID: subjectID}
	var err error
	if status.Restriction, err = optional(ctx, s.stores.Restrictions, key); err != nil {
		return nil, err
	}
	if status.Objection, err = optional(ctx, s.stores.Objections, key); err != nil {
		return nil, err
	}
	if status.Erasure, err = optional(ctx, s.stores.Erasures, key); err != nil {
		return nil, err
	}
	if status.Portability, err = optional(ctx, s.stores.Portability, key); err != nil {
		return nil, err
	}
	if status.DecisionReview, err = optional(ctx, s.stores.Decisions, key); err != nil {
		return nil, err
	}
	if status.PHIRequest, err = optional(ctx, s.stores.PHI, key); err != nil {
		return nil, err
	}
	status.Rectifications, err = s.stores.Rectifications.List(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("load rectifications: %w", err)
	}
	if status.Rectifications == nil {
		status.Rectifications = []models.Rectification{}
	}

	status.Enforcement.Restricted = status.Restriction != nil && status.Restriction.IsActive()
	status.Enforcement.Objected = status.Objection != nil && status.Objection.IsActive()
	return status, nil
}

func optional[T any](ctx context.Context, repo store.Repository[T], key store.Key) (*T, error) {
	v, err := repo.Get(ctx, key)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load record: %w", err)
	}
	return &v, nil
}
