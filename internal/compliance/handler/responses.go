package handler

import (
	"encoding/json"
	"time"

	"custodian/pkg/platform/audit"
)

// AuditEventResponse is the wire form of an audit event.
type AuditEventResponse struct {
	ID            string          `json:"id"`
	CorrelationID string          `json:"correlationId"`
	Sequence      int64           `json:"sequence"`
	Category      string          `json:"category"`
	Timestamp     time.Time       `json:"timestamp"`
	Action        string          `json:"action"`
	EntityType    string          `json:"entityType"`
	EntityID      string          `json:"entityId"`
	UserID        string          `json:"userId"`
	RequestID     string          `json:"requestId,omitempty"`
	Details       json.RawMessage `json:"details,omitempty"`
	Success       bool            `json:"success"`
	Error         string          `json:"error,omitempty"`
	AmendedAt     *time.Time      `json:"amendedAt,omitempty"`
	PrevHash      string          `json:"prevHash"`
	Hash          string          `json:"hash"`
}

// AuditLogResponse wraps a query result.
type AuditLogResponse struct {
	Events []AuditEventResponse `json:"events"`
	Total  int                  `json:"total"`
}

func FromEvents(events []audit.Event) AuditLogResponse {
	out := make([]AuditEventResponse, 0, len(events))
	for _, e := range events {
		resp := AuditEventResponse{
			ID:            e.ID.String(),
			CorrelationID: e.CorrelationID.String(),
			Sequence:      e.Sequence,
			Category:      string(e.Category),
			Timestamp:     e.Timestamp,
			Action:        e.Action,
			EntityType:    e.EntityType,
			EntityID:      e.EntityID,
			UserID:        e.UserID,
			RequestID:     e.RequestID,
			Details:       e.Details,
			Success:       e.Success,
			Error:         e.Error,
			PrevHash:      e.PrevHash,
			Hash:          e.Hash,
		}
		if e.Amended != nil {
			at := e.Amended.At
			resp.AmendedAt = &at
		}
		out = append(out, resp)
	}
	return AuditLogResponse{Events: out, Total: len(out)}
}
