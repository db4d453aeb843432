package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"custodian/internal/compliance/models"
	"custodian/internal/compliance/ports"
	"custodian/internal/compliance/store"
	"custodian/pkg/platform/sentinel"
)

// erasureAwareStore hides erased data from every personal data lookup.
type erasureAwareStore struct {
	next     ports.PersonalDataStore
	erasures store.Repository[models.Erasure]
}

func (e *erasureAwareStore) Fetch(ctx context.Context, subjectID string, opts ports.FetchOptions) ([]models.PersonalDataRecord, error) {
	erasure, err := e.erasures.Get(ctx, store.SubjectKey(subjectID))
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return e.next.Fetch(ctx, subjectID, opts)
	case err != nil:
		return nil, fmt.Errorf("load erasure: %w", err)
	case erasure.Scope == models.ScopeAllPersonalData:
		return []models.PersonalDataRecord{}, nil
	}

	recs, err := e.next.Fetch(ctx, subjectID, opts)
	if err != nil {
		return nil, err
	}
	out := make([]models.PersonalDataRecord, 0, len(recs))
	for _, r := range recs {
		if !slices.Contains(erasure.ErasedCategories, r.Category) {
			out = append(out, r)
		}
	}
	return out, nil
}
