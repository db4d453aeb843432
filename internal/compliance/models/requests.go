package models

// Options are per-call branch toggles that simulate degraded collaborators.
// They are passed by value and never stored.
type Options struct {
	SimulateThirdPartyFailure    bool `json:"simulateThirdPartyFailure,omitempty"`
	SimulateSyncFailure          bool `json:"simulateSyncFailure,omitempty"`
	SimulateTransmissionFailure  bool `json:"simulateTransmissionFailure,omitempty"`
	SimulateTechnicalLimitations bool `json:"simulateTechnicalLimitations,omitempty"`
	SimulateCompellingGrounds    bool `json:"simulateCompellingGrounds,omitempty"`
}

// Request is implemented by every rights request.
type Request interface {
	Subject() string
}

type AccessRequest struct {
	DataSubjectID string       `json:"dataSubjectId"`
	Format        ExportFormat `json:"format,omitempty"`
}

func (r AccessRequest) Subject() string { return r.DataSubjectID }

type RectificationRequest struct {
	DataSubjectID string         `json:"dataSubjectId"`
	Corrections   map[string]any `json:"corrections"`
	Evidence      string         `json:"evidence"`
	Reason        string         `json:"reason,omitempty"`
}

func (r RectificationRequest) Subject() string { return r.DataSubjectID }

type ErasureRequest struct {
	DataSubjectID      string        `json:"dataSubjectId"`
	Reason             ErasureGround `json:"reason"`
	Evidence           string        `json:"evidence"`
	Scope              ErasureScope  `json:"scope,omitempty"`
	DataCategories     []string      `json:"dataCategories,omitempty"`
	Exceptions         []string      `json:"exceptions,omitempty"`
	NotifyThirdParties bool          `json:"notifyThirdParties,omitempty"`
}

func (r ErasureRequest) Subject() string { return r.DataSubjectID }

type RestrictionRequest struct {
	DataSubjectID  string            `json:"dataSubjectId"`
	Reason         RestrictionGround `json:"reason"`
	Evidence       string            `json:"evidence"`
	Scope          ErasureScope      `json:"scope,omitempty"`
	DataCategories []string          `json:"dataCategories,omitempty"`
}

func (r RestrictionRequest) Subject() string { return r.DataSubjectID }

type PortabilityRequest struct {
	DataSubjectID      string       `json:"dataSubjectId"`
	Format             ExportFormat `json:"format"`
	Scope              string       `json:"scope,omitempty"`
	TransmissionMethod string       `json:"transmissionMethod,omitempty"`
	TargetController   string       `json:"targetController,omitempty"`
}

func (r PortabilityRequest) Subject() string { return r.DataSubjectID }

type ObjectionRequest struct {
	DataSubjectID string        `json:"dataSubjectId"`
	ObjectionType ObjectionType `json:"objectionType"`
	Reason        string        `json:"reason"`
}

func (r ObjectionRequest) Subject() string { return r.DataSubjectID }

type AutomatedDecisionRequest struct {
	DataSubjectID string              `json:"dataSubjectId"`
	DecisionType  DecisionType        `json:"decisionType"`
	RequestType   DecisionRequestType `json:"requestType"`
	DecisionID    string              `json:"decisionId,omitempty"`
	Viewpoint     string              `json:"viewpoint,omitempty"`
}

func (r AutomatedDecisionRequest) Subject() string { return r.DataSubjectID }

// PHIRequest is a HIPAA request keyed by patient rather than data subject.
type PHIRequest struct {
	PatientID   string         `json:"patientId"`
	RequestType PHIRequestType `json:"requestType"`
	Purpose     string         `json:"purpose,omitempty"`
	Recipient   string         `json:"recipient,omitempty"`
	Description string         `json:"description,omitempty"`
}

func (r PHIRequest) Subject() string { return r.PatientID }
