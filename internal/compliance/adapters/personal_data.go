package adapters

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"custodian/internal/compliance/models"
	"custodian/internal/compliance/ports"
)

// SeededPersonalDataStore stands in for the controller's system of record.
// Subjects without explicit seed data get a deterministic synthetic profile.
type SeededPersonalDataStore struct {
	mu      sync.RWMutex
	records map[string][]models.PersonalDataRecord
	now     func() time.Time
}

// NewSeededPersonalDataStore creates an empty store.
func NewSeededPersonalDataStore() *SeededPersonalDataStore {
	return &SeededPersonalDataStore{
		records: make(map[string][]models.PersonalDataRecord),
		now:     time.Now,
	}
}

// Seed replaces the records held for subjectID.
func (s *SeededPersonalDataStore) Seed(subjectID string, records []models.PersonalDataRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[subjectID] = cloneRecords(records)
}

func (s *SeededPersonalDataStore) Fetch(ctx context.Context, subjectID string, opts ports.FetchOptions) ([]models.PersonalDataRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	recs, ok := s.records[subjectID]
	s.mu.RUnlock()
	if !ok {
		recs = syntheticProfile(subjectID, s.now())
	}

	out := make([]models.PersonalDataRecord, 0, len(recs))
	for _, r := range cloneRecords(recs) {
		if len(opts.Categories) > 0 && !slices.Contains(opts.Categories, r.Category) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func syntheticProfile(subjectID string, now time.Time) []models.PersonalDataRecord {
	handle := strings.ReplaceAll(subjectID, "@", ".")
	updated := now.UTC().Truncate(24 * time.Hour)
	rec := func(category string, fields map[string]any, source string) models.PersonalDataRecord {
		return models.PersonalDataRecord{
			Category:    category,
			Fields:      fields,
			Source:      source,
			LastUpdated: updated,
			Accuracy:    "verified",
		}
	}
	return []models.PersonalDataRecord{
		rec(models.CategoryIdentity, map[string]any{
			"subjectId": subjectID,
			"name":      "Subject " + subjectID,
		}, "registration-form"),
		rec(models.CategoryContact, map[string]any{
			"email": handle + "@example.com",
			"phone": "+1-555-0100",
		}, "registration-form"),
		rec(models.CategoryPreferences, map[string]any{
			"language":   "en",
			"newsletter": false,
		}, "account-settings"),
		rec(models.CategoryUsage, map[string]any{
			"lastLogin":  updated.Format(time.RFC3339),
			"loginCount": 42,
		}, "application-logs"),
		rec(models.CategoryMarketing, map[string]any{
			"segment": "standard",
		}, "crm"),
		rec(models.CategoryAnalytics, map[string]any{
			"sessions30d": 12,
		}, "analytics-pipeline"),
	}
}

func cloneRecords(in []models.PersonalDataRecord) []models.PersonalDataRecord {
	out := make([]models.PersonalDataRecord, len(in))
	for i, r := range in {
		r.Fields = maps.Clone(r.Fields)
		out[i] = r
	}
	return out
}
