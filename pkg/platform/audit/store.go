package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"custodian/pkg/platform/sentinel"
)

// ErrAlreadyAmended is returned when an event that was already downgraded is
// amended again with a different error.
var ErrAlreadyAmended = fmt.Errorf("audit event already amended: %w", sentinel.ErrInvalidState)

// Store is the append-only audit trail.
//
// Append assigns ID, sequence, timestamp and hash and returns the stored event;
// the returned ID is the handle for Amend. Query returns copies in insertion
// order. Amend and AmendLastMatching are the only mutation paths and only ever
// touch Success, Error and Amended.
type Store interface {
	Append(ctx context.Context, event Event) (Event, error)
	Query(ctx context.Context, filter Filter) ([]Event, error)
	Amend(ctx context.Context, eventID uuid.UUID, errMsg string) error
	AmendLastMatching(ctx context.Context, entityID, action, errMsg string) error
}
