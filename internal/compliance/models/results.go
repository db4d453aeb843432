package models

import "time"

// Transparency is the fixed explanation attached to every result.
type Transparency struct {
	ProcessDescription string `json:"processDescription"`
	Timeline           string `json:"timeline"`
	NextSteps          string `json:"nextSteps"`
	ContactInformation string `json:"contactInformation"`
}

// ResultBase carries the fields every rights result shares.
type ResultBase struct {
	Success      bool         `json:"success"`
	RequestID    string       `json:"requestId"`
	ProcessedAt  time.Time    `json:"processedAt"`
	ResponseTime float64      `json:"responseTimeMs"`
	Errors       []string     `json:"errors,omitempty"`
	Transparency Transparency `json:"transparency"`
}

// Base exposes the shared fields to the processing pipeline.
func (b *ResultBase) Base() *ResultBase { return b }

// Result is implemented by a pointer to every rights result.
type Result interface {
	Base() *ResultBase
}

// PersonalDataRecord is one category of a subject's personal data.
type PersonalDataRecord struct {
	Category    string         `json:"category"`
	Fields      map[string]any `json:"fields"`
	Source      string         `json:"source"`
	LastUpdated time.Time      `json:"lastUpdated"`
	Accuracy    string         `json:"accuracy"`
}

// Recipient is a third party personal data is disclosed to.
type Recipient struct {
	Name    string `json:"name"`
	Purpose string `json:"purpose"`
	Country string `json:"country"`
}

type AccessResult struct {
	ResultBase
	AccessID             string               `json:"accessId"`
	Format               ExportFormat         `json:"format"`
	PersonalData         []PersonalDataRecord `json:"personalData"`
	ProcessingPurposes   []string             `json:"processingPurposes"`
	LegalBasis           map[string]string    `json:"legalBasis"`
	RetentionPeriods     map[string]string    `json:"retentionPeriods"`
	ErasureCriteria      []string             `json:"erasureCriteria"`
	ThirdPartyRecipients []Recipient          `json:"thirdPartyRecipients"`
	Safeguards           []string             `json:"safeguards"`
	// Output is the serialized report: JSON for FormatJSON, text otherwise.
	Output string `json:"output,omitempty"`
}

// ConsistencyCheck reports propagation of a rectification to downstream systems.
type ConsistencyCheck struct {
	AllSystemsUpdated bool     `json:"allSystemsUpdated"`
	UpdatedSystems    []string `json:"updatedSystems"`
	FailedSystems     []string `json:"failedSystems,omitempty"`
}

type RectificationResult struct {
	ResultBase
	RectificationID    string            `json:"rectificationId"`
	AppliedCorrections map[string]any    `json:"appliedCorrections"`
	FieldErrors        map[string]string `json:"fieldErrors,omitempty"`
	ConsistencyCheck   ConsistencyCheck  `json:"consistencyCheck"`
}

// NotificationRecord confirms a third party was told about an erasure.
type NotificationRecord struct {
	Recipient   string    `json:"recipient"`
	Status      string    `json:"status"`
	NotifiedAt  time.Time `json:"notifiedAt"`
	ConfirmedAt time.Time `json:"confirmedAt"`
}

// NotificationFailure is a third party notification that did not go through.
type NotificationFailure struct {
	Recipient  string    `json:"recipient"`
	Error      string    `json:"error"`
	RetryAt    time.Time `json:"retryAt"`
	MaxRetries int       `json:"maxRetries"`
}

// TechnicalLimitation pairs a constraint on erasure with the measure taken instead.
type TechnicalLimitation struct {
	Description        string `json:"description"`
	AlternativeMeasure string `json:"alternativeMeasure"`
}

type ErasureResult struct {
	ResultBase
	ErasureID               string                `json:"erasureId"`
	Scope                   ErasureScope          `json:"scope"`
	ErasedCategories        []string              `json:"erasedCategories"`
	RetainedCategories      []string              `json:"retainedCategories"`
	ExceptionsApplied       []string              `json:"exceptionsApplied"`
	ThirdPartyNotifications []NotificationRecord  `json:"thirdPartyNotifications,omitempty"`
	ThirdPartyFailures      []NotificationFailure `json:"thirdPartyFailures,omitempty"`
	RetryScheduled          bool                  `json:"retryScheduled"`
	TechnicalLimitations    []TechnicalLimitation `json:"technicalLimitations,omitempty"`
}

type RestrictionResult struct {
	ResultBase
	RestrictionID        string             `json:"restrictionId"`
	Status               Status             `json:"status"`
	RestrictedCategories []string           `json:"restrictedCategories"`
	UnaffectedCategories []string           `json:"unaffectedCategories"`
	ImmediateEffect      bool               `json:"immediateEffect"`
	VerificationRequired bool               `json:"verificationRequired"`
	VerificationDeadline *time.Time         `json:"verificationDeadline,omitempty"`
	LegalReviewRequired  bool               `json:"legalReviewRequired"`
	ObjectionHandling    *ObjectionHandling `json:"objectionHandling,omitempty"`
	AllowedOperations    []string           `json:"allowedOperations"`
}

// CompellingGroundsReview is opened for legitimate-interests objections.
type CompellingGroundsReview struct {
	Required bool      `json:"required"`
	Deadline time.Time `json:"deadline"`
	Outcome  string    `json:"outcome"`
}

type ObjectionResult struct {
	ResultBase
	ObjectionID             string                   `json:"objectionId"`
	ObjectionType           ObjectionType            `json:"objectionType"`
	ImmediateEffect         bool                     `json:"immediateEffect"`
	ProcessingStopped       bool                     `json:"processingStopped"`
	CompellingGroundsReview *CompellingGroundsReview `json:"compellingGroundsReview,omitempty"`
	MarketingChannels       []string                 `json:"marketingChannels,omitempty"`
	StoppedActivities       []string                 `json:"stoppedActivities,omitempty"`
	ResearchRestrictions    []string                 `json:"researchRestrictions,omitempty"`
	PublicInterestBasis     string                   `json:"publicInterestBasis,omitempty"`
}

// Exclusion names a category left out of a portability export and why.
type Exclusion struct {
	Category string `json:"category"`
	Reason   string `json:"reason"`
}

// Transmission describes a direct controller-to-controller transfer.
type Transmission struct {
	Method           string     `json:"method"`
	TargetController string     `json:"targetController"`
	Status           string     `json:"status"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
}

// TransmissionError is returned alongside a successful export whose transfer failed.
type TransmissionError struct {
	Message           string `json:"message"`
	AlternativeMethod string `json:"alternativeMethod"`
	RetryAvailable    bool   `json:"retryAvailable"`
}

type PortabilityResult struct {
	ResultBase
	ExportID           string             `json:"exportId"`
	Format             ExportFormat       `json:"format"`
	IncludedCategories []string           `json:"includedCategories"`
	ExcludedCategories []Exclusion        `json:"excludedCategories,omitempty"`
	Data               string             `json:"data"`
	Checksum           string             `json:"checksum"`
	ChecksumAlgorithm  string             `json:"checksumAlgorithm"`
	Size               int                `json:"size"`
	Transmission       *Transmission      `json:"transmission,omitempty"`
	TransmissionError  *TransmissionError `json:"transmissionError,omitempty"`
}

// DecisionDetails describes the logic behind an automated decision.
type DecisionDetails struct {
	Description        string   `json:"description"`
	Algorithm          string   `json:"algorithm"`
	Criteria           []string `json:"criteria"`
	LegalEffects       bool     `json:"legalEffects"`
	SignificantEffects bool     `json:"significantEffects"`
}

// DecisionRights is attached to every automated decision result.
type DecisionRights struct {
	Available          []string `json:"available"`
	AppealProcess      string   `json:"appealProcess"`
	ComplaintAuthority string   `json:"complaintAuthority"`
}

type AutomatedDecisionResult struct {
	ResultBase
	ReviewID             string              `json:"reviewId"`
	DecisionType         DecisionType        `json:"decisionType"`
	RequestType          DecisionRequestType `json:"requestType"`
	DecisionDetails      DecisionDetails     `json:"decisionDetails"`
	HumanReviewRequested bool                `json:"humanReviewRequested"`
	ObjectionRecorded    bool                `json:"objectionRecorded"`
	ViewpointRecorded    bool                `json:"viewpointRecorded"`
	ExplanationProvided  bool                `json:"explanationProvided"`
	ReviewDeadline       *time.Time          `json:"reviewDeadline,omitempty"`
	Rights               DecisionRights      `json:"rights"`
}

// Authorization is the HIPAA authorization a marketing disclosure needs.
type Authorization struct {
	Required bool   `json:"required"`
	Status   string `json:"status"`
	Purpose  string `json:"purpose"`
}

// Safeguards are the HIPAA security rule safeguard families.
type Safeguards struct {
	Administrative []string `json:"administrative"`
	Physical       []string `json:"physical"`
	Technical      []string `json:"technical"`
}

type PHIResult struct {
	ResultBase
	PHIRequestID      string         `json:"phiRequestId"`
	RequestType       PHIRequestType `json:"requestType"`
	Handling          string         `json:"handling"`
	ResponseDeadline  time.Time      `json:"responseDeadline"`
	MinimumNecessary  bool           `json:"minimumNecessary"`
	Authorization     *Authorization `json:"authorization,omitempty"`
	Safeguards        Safeguards     `json:"safeguards"`
	EncryptionApplied bool           `json:"encryptionApplied"`
	EncryptionMethod  string         `json:"encryptionMethod"`
}
