// Package memory provides in-process compliance record repositories.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"custodian/internal/compliance/models"
	"custodian/internal/compliance/store"
	"custodian/pkg/platform/sentinel"
)

// Repository is a map-backed store.Repository. Records are stored by value;
// callers must not mutate slices or maps of a record after Set.
type Repository[T any] struct {
	mu      sync.RWMutex
	kind    store.Kind
	records map[store.Key]T
}

// NewRepository creates an empty repository for kind.
func NewRepository[T any](kind store.Kind) *Repository[T] {
	return &Repository[T]{
		kind:    kind,
		records: make(map[store.Key]T),
	}
}

// NewStores returns a bundle of empty in-memory repositories.
func NewStores() *store.Stores {
	return &store.Stores{
		Restrictions:   NewRepository[models.Restriction](store.KindRestriction),
		Objections:     NewRepository[models.Objection](store.KindObjection),
		Erasures:       NewRepository[models.Erasure](store.KindErasure),
		Rectifications: NewRepository[models.Rectification](store.KindRectification),
		Portability:    NewRepository[models.PortabilityExport](store.KindPortability),
		Decisions:      NewRepository[models.DecisionReview](store.KindDecision),
		PHI:            NewRepository[models.PHIRequestRecord](store.KindPHI),
	}
}

func (r *Repository[T]) Get(_ context.Context, key store.Key) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[key]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s %s: %w", r.kind, key.SubjectID, sentinel.ErrNotFound)
	}
	return rec, nil
}

func (r *Repository[T]) Set(_ context.Context, key store.Key, record T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[key] = record
	return nil
}

func (r *Repository[T]) Delete(_ context.Context, key store.Key) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[key]; !ok {
		return fmt.Errorf("%s %s: %w", r.kind, key.SubjectID, sentinel.ErrNotFound)
	}
	delete(r.records, key)
	return nil
}

func (r *Repository[T]) List(_ context.Context, subjectID string) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]store.Key, 0)
	for k := range r.records {
		if k.SubjectID == subjectID {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Name < keys[j].Name })
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.records[k])
	}
	return out, nil
}

// Len returns the number of stored records.
func (r *Repository[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
