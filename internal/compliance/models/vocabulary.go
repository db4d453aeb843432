package models

// ErasureGround is the legal ground for an erasure request.
type ErasureGround string

const (
	ErasureWithdrawalOfConsent  ErasureGround = "withdrawal-of-consent"
	ErasureNoLongerNecessary    ErasureGround = "data-no-longer-necessary"
	ErasureUnlawfulProcessing   ErasureGround = "unlawful-processing"
	ErasureLegalObligation      ErasureGround = "legal-obligation"
	ErasureDataSubjectObjection ErasureGround = "data-subject-objection"
	ErasurePublicInterest       ErasureGround = "public-interest"
	ErasureLegitimateInterests  ErasureGround = "legitimate-interests"
)

// ErasureGrounds lists every accepted erasure ground.
var ErasureGrounds = []ErasureGround{
	ErasureWithdrawalOfConsent, ErasureNoLongerNecessary, ErasureUnlawfulProcessing,
	ErasureLegalObligation, ErasureDataSubjectObjection, ErasurePublicInterest,
	ErasureLegitimateInterests,
}

// RestrictionGround is the legal ground for a restriction request.
type RestrictionGround string

const (
	RestrictionAccuracyContested    RestrictionGround = "accuracy-contested"
	RestrictionUnlawfulProcessing   RestrictionGround = "unlawful-processing"
	RestrictionNoLongerNecessary    RestrictionGround = "data-no-longer-necessary"
	RestrictionDataSubjectObjection RestrictionGround = "data-subject-objection"
	RestrictionPendingVerification  RestrictionGround = "pending-verification"
	RestrictionLegalClaim           RestrictionGround = "legal-claim"
	RestrictionPublicInterest       RestrictionGround = "public-interest"
)

var RestrictionGrounds = []RestrictionGround{
	RestrictionAccuracyContested, RestrictionUnlawfulProcessing, RestrictionNoLongerNecessary,
	RestrictionDataSubjectObjection, RestrictionPendingVerification, RestrictionLegalClaim,
	RestrictionPublicInterest,
}

// ErasureScope selects which categories an erasure or restriction covers.
type ErasureScope string

const (
	ScopeAllPersonalData    ErasureScope = "all-personal-data"
	ScopeSpecificCategories ErasureScope = "specific-categories"
)

// ObjectionType is the kind of processing objected to.
type ObjectionType string

const (
	ObjectionLegitimateInterests     ObjectionType = "legitimate-interests"
	ObjectionDirectMarketing         ObjectionType = "direct-marketing"
	ObjectionProfiling               ObjectionType = "profiling"
	ObjectionScientificResearch      ObjectionType = "scientific-research"
	ObjectionHistoricalResearch      ObjectionType = "historical-research"
	ObjectionStatisticalPurposes     ObjectionType = "statistical-purposes"
	ObjectionPublicInterest          ObjectionType = "public-interest"
	ObjectionAutomatedDecisionMaking ObjectionType = "automated-decision-making"
)

var ObjectionTypes = []ObjectionType{
	ObjectionLegitimateInterests, ObjectionDirectMarketing, ObjectionProfiling,
	ObjectionScientificResearch, ObjectionHistoricalResearch, ObjectionStatisticalPurposes,
	ObjectionPublicInterest, ObjectionAutomatedDecisionMaking,
}

// ExportFormat is a portability or access output format.
type ExportFormat string

const (
	FormatJSON ExportFormat = "JSON"
	FormatCSV  ExportFormat = "CSV"
	FormatXML  ExportFormat = "XML"
	FormatPDF  ExportFormat = "PDF"
	FormatXLSX ExportFormat = "XLSX"
)

var ExportFormats = []ExportFormat{FormatJSON, FormatCSV, FormatXML, FormatPDF, FormatXLSX}

// Portability scopes and transmission methods.
const (
	PortabilityProvidedBySubject = "provided-by-subject"
	PortabilityAllData           = "all-data"
	TransmissionDirectAPI        = "direct-api"
	TransmissionDownload         = "download"
)

// DecisionType identifies the automated decision under review.
type DecisionType string

const (
	DecisionCreditScoring       DecisionType = "credit-scoring"
	DecisionEmploymentScreening DecisionType = "employment-screening"
	DecisionInsurancePricing    DecisionType = "insurance-pricing"
	DecisionMarketingProfiling  DecisionType = "marketing-profiling"
	DecisionFraudDetection      DecisionType = "fraud-detection"
)

var DecisionTypes = []DecisionType{
	DecisionCreditScoring, DecisionEmploymentScreening, DecisionInsurancePricing,
	DecisionMarketingProfiling, DecisionFraudDetection,
}

// DecisionRequestType is what the subject asks for about the decision.
type DecisionRequestType string

const (
	DecisionRequestObjection         DecisionRequestType = "objection"
	DecisionRequestHumanIntervention DecisionRequestType = "human-intervention"
	DecisionRequestExpressViewpoint  DecisionRequestType = "express-viewpoint"
	DecisionRequestExplanation       DecisionRequestType = "explanation"
)

var DecisionRequestTypes = []DecisionRequestType{
	DecisionRequestObjection, DecisionRequestHumanIntervention,
	DecisionRequestExpressViewpoint, DecisionRequestExplanation,
}

// PHIRequestType is a HIPAA individual right.
type PHIRequestType string

const (
	PHIAccess                    PHIRequestType = "access"
	PHIDisclosure                PHIRequestType = "disclosure"
	PHIAmendment                 PHIRequestType = "amendment"
	PHIRestriction               PHIRequestType = "restriction"
	PHIConfidentialCommunication PHIRequestType = "confidential-communication"
)

var PHIRequestTypes = []PHIRequestType{
	PHIAccess, PHIDisclosure, PHIAmendment, PHIRestriction, PHIConfidentialCommunication,
}

// Data categories. CategoryUniverse is the set erasure and restriction
// partition into affected and retained.
const (
	CategoryIdentity    = "identity"
	CategoryContact     = "contact"
	CategoryMarketing   = "marketing"
	CategoryAnalytics   = "analytics"
	CategoryPreferences = "preferences"
	CategoryUsage       = "usage"

	CategoryLegalObligationData = "legal-obligation-data"
	CategoryPublicInterestData  = "public-interest-data"
)

var CategoryUniverse = []string{
	CategoryIdentity, CategoryContact, CategoryMarketing, CategoryAnalytics, CategoryPreferences,
}
