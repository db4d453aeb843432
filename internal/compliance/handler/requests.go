package handler

import (
	"strings"
	"time"

	"custodian/internal/compliance/models"
	dErrors "custodian/pkg/domain-errors"
)

const maxSubjectIDLen = 256

// RightsRequest is the body of every POST /rights/* call. Shape rules are
// enforced by the service so failures come back as structured results.
type RightsRequest[T models.Request] struct {
	Request T              `json:"request"`
	Options models.Options `json:"options"`
}

// Validate implements httputil.Validatable.
func (r *RightsRequest[T]) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Request.Subject()) > maxSubjectIDLen {
		return dErrors.New(dErrors.CodeValidation, "subject id is too long")
	}
	return nil
}

// ProcessingAttemptRequest is the body of POST /subjects/{id}/processing-attempts.
type ProcessingAttemptRequest struct {
	Operation      string     `json:"operation" validate:"required,max=64"`
	DataCategories []string   `json:"dataCategories" validate:"max=32,dive,max=64"`
	Timestamp      *time.Time `json:"timestamp,omitempty"`
}

func (r *ProcessingAttemptRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Operation = strings.TrimSpace(r.Operation)
	if r.Operation == "" {
		return dErrors.New(dErrors.CodeValidation, "operation is required")
	}
	return nil
}

func (r *ProcessingAttemptRequest) toModel(now time.Time) models.ProcessingAttempt {
	ts := now
	if r.Timestamp != nil {
		ts = *r.Timestamp
	}
	return models.ProcessingAttempt{
		Operation:      r.Operation,
		DataCategories: r.DataCategories,
		Timestamp:      ts,
	}
}

// LiftRestrictionRequest is the body of POST /subjects/{id}/restriction/lift.
type LiftRestrictionRequest struct {
	Reason string `json:"reason" validate:"required,max=512"`
}

func (r *LiftRestrictionRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Reason = strings.TrimSpace(r.Reason)
	if r.Reason == "" {
		return dErrors.New(dErrors.CodeValidation, "reason is required")
	}
	return nil
}
