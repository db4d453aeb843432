package audit

import (
	"bytes"
	"encoding/json"
	"slices"
	"time"

	"github.com/google/uuid"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies, storage backends, and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with legal/regulatory significance.
	// These require tamper-evident storage and long retention.
	// Examples: rights requests and completions, enforcement decisions.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers events useful for debugging and operational visibility.
	CategoryOperations EventCategory = "operations"
)

// Event is one entry in the append-only audit trail. Apart from the single
// permitted outcome amendment, an appended event never changes.
type Event struct {
	ID uuid.UUID
	// CorrelationID links the request and completion events of one rights
	// request. Defaults to ID when not supplied.
	CorrelationID uuid.UUID
	// Sequence is assigned by the store and is strictly increasing.
	Sequence   int64
	Category   EventCategory
	Timestamp  time.Time
	Action     string
	EntityType string
	EntityID   string // subject or patient id
	UserID     string // actor that submitted the request
	RequestID  string
	Details    json.RawMessage

	// Outcome. Excluded from the hash chain; see Amendment.
	Success bool
	Error   string
	Amended *Amendment

	PrevHash string
	Hash     string
}

// Amendment records the one permitted in-place downgrade of an event's outcome.
type Amendment struct {
	At    time.Time
	Error string
}

// Entity types recorded on events.
const (
	EntityDataSubject = "data_subject"
	EntityPatient     = "patient"
)

type AuditEvent string

const (
	EventProcessingAttempt  AuditEvent = "processing_attempt"
	EventRestrictionLifted  AuditEvent = "restriction_lifted"
	EventObjectionWithdrawn AuditEvent = "objection_withdrawn"
	EventChainVerified      AuditEvent = "audit_chain_verified"
)

// eventCategories overrides the default compliance category. Rights request
// and completion actions are not listed: they are always compliance events.
var eventCategories = map[AuditEvent]EventCategory{
	EventChainVerified: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryCompliance so nothing regulatory is
// accidentally routed to a sampled sink.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryCompliance
}

// Filter selects events by exact match on every non-empty field.
// Actions, when set, matches any of the listed actions.
type Filter struct {
	ID            uuid.UUID
	Action        string
	Actions       []string
	EntityID      string
	CorrelationID uuid.UUID
}

// Matches reports whether e satisfies all populated filter fields.
func (f Filter) Matches(e Event) bool {
	if f.ID != uuid.Nil && e.ID != f.ID {
		return false
	}
	if f.Action != "" && e.Action != f.Action {
		return false
	}
	if len(f.Actions) > 0 && !slices.Contains(f.Actions, e.Action) {
		return false
	}
	if f.EntityID != "" && e.EntityID != f.EntityID {
		return false
	}
	if f.CorrelationID != uuid.Nil && e.CorrelationID != f.CorrelationID {
		return false
	}
	return true
}

// MarshalDetails encodes an arbitrary payload for Event.Details. Marshal
// failures degrade to an error marker rather than dropping the event.
func MarshalDetails(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		raw, _ = json.Marshal(map[string]string{"marshal_error": err.Error()})
	}
	return raw
}

// Clone returns a deep copy so callers cannot mutate stored state.
func (e Event) Clone() Event {
	out := e
	if e.Details != nil {
		out.Details = bytes.Clone(e.Details)
	}
	if e.Amended != nil {
		a := *e.Amended
		out.Amended = &a
	}
	return out
}

// Prepare fills the store-assigned fields of a new event: ID, correlation,
// timestamp, category, sequence and chain hash.
func Prepare(e Event, seq int64, prevHash string, now time.Time) Event {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CorrelationID == uuid.Nil {
		e.CorrelationID = e.ID
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = now
	}
	// Microsecond precision survives a round trip through PostgreSQL, which
	// keeps recomputed hashes stable.
	e.Timestamp = e.Timestamp.UTC().Truncate(time.Microsecond)
	if e.Category == "" {
		e.Category = AuditEvent(e.Action).Category()
	}
	e.Sequence = seq
	e.PrevHash = prevHash
	e.Hash = ComputeHash(e)
	return e
}

// Amend applies the single permitted outcome downgrade to e. A repeat
// amendment with the same message is a no-op; a conflicting one returns
// ErrAlreadyAmended and leaves e unchanged.
func Amend(e Event, errMsg string, at time.Time) (Event, error) {
	if e.Amended != nil {
		if e.Amended.Error == errMsg {
			return e, nil
		}
		return e, ErrAlreadyAmended
	}
	e.Success = false
	e.Error = errMsg
	e.Amended = &Amendment{At: at.UTC().Truncate(time.Microsecond), Error: errMsg}
	return e, nil
}
