package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"time"
)

// chainRecord fixes field order for hashing. Outcome fields are deliberately
// absent: they may be amended once after append.
type chainRecord struct {
	ID            string          `json:"id"`
	CorrelationID string          `json:"correlation_id"`
	Sequence      int64           `json:"sequence"`
	Category      string          `json:"category"`
	Timestamp     string          `json:"ts"`
	Action        string          `json:"action"`
	EntityType    string          `json:"entity_type"`
	EntityID      string          `json:"entity_id"`
	UserID        string          `json:"user_id"`
	RequestID     string          `json:"request_id"`
	Details       json.RawMessage `json:"details,omitempty"`
	PrevHash      string          `json:"prev_hash"`
}

// ComputeHash returns the chain hash of e given its PrevHash.
func ComputeHash(e Event) string {
	rec := chainRecord{
		ID:            e.ID.String(),
		CorrelationID: e.CorrelationID.String(),
		Sequence:      e.Sequence,
		Category:      string(e.Category),
		Timestamp:     e.Timestamp.UTC().Format(time.RFC3339Nano),
		Action:        e.Action,
		EntityType:    e.EntityType,
		EntityID:      e.EntityID,
		UserID:        e.UserID,
		RequestID:     e.RequestID,
		Details:       e.Details,
		PrevHash:      e.PrevHash,
	}
	raw, _ := json.Marshal(rec)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// BreakType categorizes a detected chain break.
type BreakType string

const (
	BreakHashMismatch    BreakType = "hash_mismatch"
	BreakMissingPrevious BreakType = "missing_previous"
	BreakSequenceGap     BreakType = "sequence_gap"
)

// ChainBreak describes one inconsistency in the trail.
type ChainBreak struct {
	EventID  string    `json:"event_id"`
	Sequence int64     `json:"sequence"`
	Type     BreakType `json:"type"`
	Expected string    `json:"expected"`
	Actual   string    `json:"actual"`
}

// ChainReport is the result of VerifyChain.
type ChainReport struct {
	Valid          bool         `json:"valid"`
	EventsVerified int          `json:"events_verified"`
	HeadHash       string       `json:"head_hash"`
	Breaks         []ChainBreak `json:"breaks,omitempty"`
}

// VerifyChain walks a full trail in sequence order and reports every event
// whose hash or link to its predecessor does not hold.
func VerifyChain(events []Event) ChainReport {
	report := ChainReport{Valid: true}
	var prev *Event
	for i := range events {
		e := events[i]
		report.EventsVerified++

		expectedPrev := ""
		if prev != nil {
			expectedPrev = prev.Hash
			if e.Sequence != prev.Sequence+1 {
				report.Breaks = append(report.Breaks, ChainBreak{
					EventID:  e.ID.String(),
					Sequence: e.Sequence,
					Type:     BreakSequenceGap,
					Expected: strconv.FormatInt(prev.Sequence+1, 10),
					Actual:   strconv.FormatInt(e.Sequence, 10),
				})
			}
		}
		if e.PrevHash != expectedPrev {
			report.Breaks = append(report.Breaks, ChainBreak{
				EventID:  e.ID.String(),
				Sequence: e.Sequence,
				Type:     BreakMissingPrevious,
				Expected: expectedPrev,
				Actual:   e.PrevHash,
			})
		}
		if recomputed := ComputeHash(e); recomputed != e.Hash {
			report.Breaks = append(report.Breaks, ChainBreak{
				EventID:  e.ID.String(),
				Sequence: e.Sequence,
				Type:     BreakHashMismatch,
				Expected: recomputed,
				Actual:   e.Hash,
			})
		}
		prev = &events[i]
	}
	if prev != nil {
		report.HeadHash = prev.Hash
	}
	report.Valid = len(report.Breaks) == 0
	return report
}
