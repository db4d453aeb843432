// Package models holds the compliance engine's records, requests and results.
package models

import "time"

// Status is the lifecycle position of a compliance record.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusWithdrawn Status = "withdrawn"
	StatusLifted    Status = "lifted"
)

// RecordMeta is shared by every compliance record.
type RecordMeta struct {
	ID        string    `json:"id"`
	SubjectID string    `json:"subjectId"`
	Reason    string    `json:"reason"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsActive reports whether the record currently constrains processing.
func (m RecordMeta) IsActive() bool {
	return m.Status == StatusActive
}

// Restriction marks a subject's data as retained but not processed.
type Restriction struct {
	RecordMeta
	Scope                string             `json:"scope"`
	RestrictedCategories []string           `json:"restrictedCategories"`
	UnaffectedCategories []string           `json:"unaffectedCategories,omitempty"`
	VerificationRequired bool               `json:"verificationRequired"`
	VerificationDeadline *time.Time         `json:"verificationDeadline,omitempty"`
	LegalReviewRequired  bool               `json:"legalReviewRequired"`
	ObjectionHandling    *ObjectionHandling `json:"objectionHandling,omitempty"`
	LiftedAt             *time.Time         `json:"liftedAt,omitempty"`
	LiftReason           string             `json:"liftReason,omitempty"`
}

// ObjectionHandling is the review opened when a restriction is requested
// pending an objection decision.
type ObjectionHandling struct {
	Status         string    `json:"status"`
	ReviewDeadline time.Time `json:"reviewDeadline"`
}

// Objection records a subject's refusal of some processing.
type Objection struct {
	RecordMeta
	ObjectionType     ObjectionType `json:"objectionType"`
	ProcessingStopped bool          `json:"processingStopped"`
	ReviewDeadline    *time.Time    `json:"reviewDeadline,omitempty"`
	WithdrawnAt       *time.Time    `json:"withdrawnAt,omitempty"`
}

// Erasure marks a subject's data as logically removed. Personal-data lookups
// honor it by returning no records for erased categories.
type Erasure struct {
	RecordMeta
	Scope              ErasureScope `json:"scope"`
	ErasedCategories   []string     `json:"erasedCategories"`
	RetainedCategories []string     `json:"retainedCategories"`
	ExceptionsApplied  []string     `json:"exceptionsApplied,omitempty"`
}

// Rectification is one corrected field. Keyed by (subject, field).
type Rectification struct {
	RecordMeta
	Field    string `json:"field"`
	NewValue any    `json:"newValue"`
	Evidence string `json:"evidence"`
}

// PortabilityExport records a completed export.
type PortabilityExport struct {
	RecordMeta
	Format             ExportFormat `json:"format"`
	Checksum           string       `json:"checksum"`
	IncludedCategories []string     `json:"includedCategories"`
	TransmissionStatus string       `json:"transmissionStatus,omitempty"`
}

// DecisionReview tracks a request about an automated decision.
type DecisionReview struct {
	RecordMeta
	DecisionType         DecisionType        `json:"decisionType"`
	RequestType          DecisionRequestType `json:"requestType"`
	HumanReviewRequested bool                `json:"humanReviewRequested"`
	ReviewDeadline       *time.Time          `json:"reviewDeadline,omitempty"`
}

// PHIRequestRecord tracks a HIPAA individual-rights request.
type PHIRequestRecord struct {
	RecordMeta
	RequestType           PHIRequestType `json:"requestType"`
	Purpose               string         `json:"purpose,omitempty"`
	AuthorizationRequired bool           `json:"authorizationRequired"`
}

// ComplianceStatus summarizes every record held for a subject.
type ComplianceStatus struct {
	SubjectID      string             `json:"subjectId"`
	Restriction    *Restriction       `json:"restriction,omitempty"`
	Objection      *Objection         `json:"objection,omitempty"`
	Erasure        *Erasure           `json:"erasure,omitempty"`
	Rectifications []Rectification    `json:"rectifications"`
	Portability    *PortabilityExport `json:"portability,omitempty"`
	DecisionReview *DecisionReview    `json:"decisionReview,omitempty"`
	PHIRequest     *PHIRequestRecord  `json:"phiRequest,omitempty"`
	Enforcement    EnforcementPosture `json:"enforcement"`
}

// EnforcementPosture says which record, if any, gates processing.
type EnforcementPosture struct {
	Restricted bool `json:"restricted"`
	Objected   bool `json:"objected"`
}
