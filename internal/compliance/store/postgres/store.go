// Package postgres stores compliance records as JSONB rows in the
// compliance_records table.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"custodian/internal/compliance/models"
	"custodian/internal/compliance/store"
	"custodian/pkg/platform/sentinel"
	txcontext "custodian/pkg/platform/tx"
)

// Repository is a PostgreSQL-backed store.Repository.
type Repository[T any] struct {
	db   *sql.DB
	kind store.Kind
}

// NewRepository creates a repository for kind.
func NewRepository[T any](db *sql.DB, kind store.Kind) *Repository[T] {
	return &Repository[T]{db: db, kind: kind}
}

// NewStores returns a bundle of PostgreSQL repositories sharing db.
func NewStores(db *sql.DB) *store.Stores {
	return &store.Stores{
		Restrictions:   NewRepository[models.Restriction](db, store.KindRestriction),
		Objections:     NewRepository[models.Objection](db, store.KindObjection),
		Erasures:       NewRepository[models.Erasure](db, store.KindErasure),
		Rectifications: NewRepository[models.Rectification](db, store.KindRectification),
		Portability:    NewRepository[models.PortabilityExport](db, store.KindPortability),
		Decisions:      NewRepository[models.DecisionReview](db, store.KindDecision),
		PHI:            NewRepository[models.PHIRequestRecord](db, store.KindPHI),
	}
}

// executor uses the caller's transaction when ctx carries one.
func (r *Repository[T]) executor(ctx context.Context) txcontext.Executor {
	return txcontext.ExecutorFor(ctx, r.db)
}

func (r *Repository[T]) Get(ctx context.Context, key store.Key) (T, error) {
	var rec T
	var payload []byte
	err := r.executor(ctx).QueryRowContext(ctx, `
		SELECT payload FROM compliance_records
		WHERE kind = $1 AND subject_id = $2 AND name = $3
	`, string(r.kind), key.SubjectID, key.Name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, fmt.Errorf("%s %s: %w", r.kind, key.SubjectID, sentinel.ErrNotFound)
	}
	if err != nil {
		return rec, fmt.Errorf("get %s: %w", r.kind, err)
	}
	if err := json.Unmarshal(payload, &rec); err != nil {
		return rec, fmt.Errorf("decode %s: %w", r.kind, err)
	}
	return rec, nil
}

func (r *Repository[T]) Set(ctx context.Context, key store.Key, record T) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.kind, err)
	}
	_, err = r.executor(ctx).ExecContext(ctx, `
		INSERT INTO compliance_records (kind, subject_id, name, payload, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (kind, subject_id, name)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
	`, string(r.kind), key.SubjectID, key.Name, payload)
	if err != nil {
		return fmt.Errorf("set %s: %w", r.kind, err)
	}
	return nil
}

func (r *Repository[T]) Delete(ctx context.Context, key store.Key) error {
	res, err := r.executor(ctx).ExecContext(ctx, `
		DELETE FROM compliance_records
		WHERE kind = $1 AND subject_id = $2 AND name = $3
	`, string(r.kind), key.SubjectID, key.Name)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.kind, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.kind, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", r.kind, key.SubjectID, sentinel.ErrNotFound)
	}
	return nil
}

func (r *Repository[T]) List(ctx context.Context, subjectID string) ([]T, error) {
	rows, err := r.executor(ctx).QueryContext(ctx, `
		SELECT payload FROM compliance_records
		WHERE kind = $1 AND subject_id = $2
		ORDER BY name ASC
	`, string(r.kind), subjectID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.kind, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.kind, err)
		}
		var rec T
		if err := json.Unmarshal(payload, &rec); err != nil {
			return nil, fmt.Errorf("decode %s: %w", r.kind, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.kind, err)
	}
	return out, nil
}
