package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	audit "custodian/pkg/platform/audit"
	"custodian/pkg/platform/sentinel"
	txcontext "custodian/pkg/platform/tx"
)

// chainLockKey serializes appends so sequence and prev_hash stay linear
// across processes sharing the database.
const chainLockKey = 0x637573746f6469

// Store implements audit.Store on the audit_events table.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new PostgreSQL audit store.
func New(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

type dbExecutor = txcontext.Executor

// inTx runs fn inside the caller's transaction when ctx carries one,
// otherwise in a new transaction committed on success.
func (s *Store) inTx(ctx context.Context, fn func(dbExecutor) error) error {
	return txcontext.Run(ctx, s.db, func(ctx context.Context) error {
		return fn(txcontext.ExecutorFor(ctx, s.db))
	})
}

const selectColumns = `
	id, correlation_id, sequence, category, ts, action, entity_type, entity_id,
	user_id, request_id, details, success, error, amended_at, amended_error,
	prev_hash, hash`

// Append writes event at the head of the chain.
func (s *Store) Append(ctx context.Context, event audit.Event) (audit.Event, error) {
	var stored audit.Event
	err := s.inTx(ctx, func(q dbExecutor) error {
		if _, err := q.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, chainLockKey); err != nil {
			return fmt.Errorf("lock audit chain: %w", err)
		}

		var (
			lastSeq  int64
			lastHash string
		)
		err := q.QueryRowContext(ctx,
			`SELECT sequence, hash FROM audit_events ORDER BY sequence DESC LIMIT 1`,
		).Scan(&lastSeq, &lastHash)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("read audit head: %w", err)
		}

		stored = audit.Prepare(event, lastSeq+1, lastHash, s.now())
		_, err = q.ExecContext(ctx, `
			INSERT INTO audit_events (
				id, correlation_id, sequence, category, ts, action, entity_type, entity_id,
				user_id, request_id, details, success, error, prev_hash, hash
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			stored.ID,
			stored.CorrelationID,
			stored.Sequence,
			string(stored.Category),
			stored.Timestamp,
			stored.Action,
			stored.EntityType,
			stored.EntityID,
			stored.UserID,
			stored.RequestID,
			nullableJSON(stored.Details),
			stored.Success,
			stored.Error,
			stored.PrevHash,
			stored.Hash,
		)
		if err != nil {
			return fmt.Errorf("insert audit event: %w", err)
		}
		return nil
	})
	if err != nil {
		return audit.Event{}, err
	}
	return stored, nil
}

// Query returns matching events in sequence order.
func (s *Store) Query(ctx context.Context, filter audit.Filter) ([]audit.Event, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if filter.ID != uuid.Nil {
		add("id = $%d", filter.ID)
	}
	if filter.Action != "" {
		add("action = $%d", filter.Action)
	}
	if len(filter.Actions) > 0 {
		add("action = ANY($%d)", pq.Array(filter.Actions))
	}
	if filter.EntityID != "" {
		add("entity_id = $%d", filter.EntityID)
	}
	if filter.CorrelationID != uuid.Nil {
		add("correlation_id = $%d", filter.CorrelationID)
	}

	query := `SELECT ` + selectColumns + ` FROM audit_events`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY sequence ASC`

	rows, err := txcontext.ExecutorFor(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// Amend downgrades the event with eventID.
func (s *Store) Amend(ctx context.Context, eventID uuid.UUID, errMsg string) error {
	return s.inTx(ctx, func(q dbExecutor) error {
		return s.amendRow(ctx, q, q.QueryRowContext(ctx,
			`SELECT `+selectColumns+` FROM audit_events WHERE id = $1 FOR UPDATE`, eventID,
		), errMsg)
	})
}

// AmendLastMatching downgrades the newest event for entityID and action.
func (s *Store) AmendLastMatching(ctx context.Context, entityID, action, errMsg string) error {
	return s.inTx(ctx, func(q dbExecutor) error {
		return s.amendRow(ctx, q, q.QueryRowContext(ctx,
			`SELECT `+selectColumns+` FROM audit_events
			 WHERE entity_id = $1 AND action = $2
			 ORDER BY sequence DESC LIMIT 1 FOR UPDATE`, entityID, action,
		), errMsg)
	})
}

func (s *Store) amendRow(ctx context.Context, q dbExecutor, row *sql.Row, errMsg string) error {
	current, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load audit event: %w", err)
	}
	amended, err := audit.Amend(current, errMsg, s.now())
	if err != nil {
		return err
	}
	if current.Amended != nil {
		return nil
	}
	_, err = q.ExecContext(ctx, `
		UPDATE audit_events
		SET success = $2, error = $3, amended_at = $4, amended_error = $5
		WHERE id = $1 AND amended_at IS NULL`,
		amended.ID, amended.Success, amended.Error, amended.Amended.At, amended.Amended.Error,
	)
	if err != nil {
		return fmt.Errorf("amend audit event: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (audit.Event, error) {
	var (
		e            audit.Event
		category     string
		details      []byte
		amendedAt    sql.NullTime
		amendedError sql.NullString
	)
	err := row.Scan(
		&e.ID,
		&e.CorrelationID,
		&e.Sequence,
		&category,
		&e.Timestamp,
		&e.Action,
		&e.EntityType,
		&e.EntityID,
		&e.UserID,
		&e.RequestID,
		&details,
		&e.Success,
		&e.Error,
		&amendedAt,
		&amendedError,
		&e.PrevHash,
		&e.Hash,
	)
	if err != nil {
		return audit.Event{}, err
	}
	e.Category = audit.EventCategory(category)
	e.Timestamp = e.Timestamp.UTC()
	if len(details) > 0 {
		e.Details = details
	}
	if amendedAt.Valid {
		e.Amended = &audit.Amendment{At: amendedAt.Time.UTC(), Error: amendedError.String}
	}
	return e, nil
}

func scanEvents(rows *sql.Rows) ([]audit.Event, error) {
	events := make([]audit.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}

func nullableJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
