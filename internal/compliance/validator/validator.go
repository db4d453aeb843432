// Package validator checks the shape of rights requests.
//
// Validation never fails hard: every method returns a Result whose Errors
// are safe to show to the requester. The one exception is the identity
// check, which the service treats as fatal.
package validator

import (
	"slices"
	"sort"
	"strings"

	"custodian/internal/compliance/models"
)

// Messages returned to requesters.
const (
	MsgSubjectNotFound       = "Data subject not found"
	MsgErasureEvidence       = "Evidence is required for erasure"
	MsgErasureGround         = "Invalid erasure ground"
	MsgRestrictionEvidence   = "Evidence is required for restriction"
	MsgRestrictionGround     = "Invalid restriction ground"
	MsgRectificationEvidence = "Evidence is required for rectification"
	MsgCorrectionsRequired   = "At least one correction is required"
	MsgInvalidEmail          = "Invalid email format"
	MsgObjectionReason       = "Reason is required for objection"
	MsgObjectionType         = "Invalid objection type"
	MsgPortabilityFormat     = "Invalid export format"
	MsgDecisionType          = "Invalid decision type"
	MsgDecisionRequestType   = "Invalid request type"
	MsgPHIRequestType        = "Invalid PHI request type"
)

// invalidSubjects are ids upstream systems use to mean "no such person".
var invalidSubjects = map[string]struct{}{
	"invalid-id":      {},
	"non-existent-id": {},
	"unknown-subject": {},
}

// knownFields is the personal data schema rectifications may touch.
var knownFields = map[string]struct{}{
	"name": {}, "firstName": {}, "lastName": {}, "email": {}, "phone": {},
	"address": {}, "city": {}, "postalCode": {}, "country": {},
	"dateOfBirth": {}, "preferences": {},
}

// Result is the outcome of a shape check.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

func (r *Result) fail(msg string) {
	r.Valid = false
	r.Errors = append(r.Errors, msg)
}

func ok() Result {
	return Result{Valid: true}
}

// Validator is stateless and safe for concurrent use.
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateIdentity rejects empty and sentinel subject ids.
func (v *Validator) ValidateIdentity(subjectID string) Result {
	res := ok()
	id := strings.TrimSpace(subjectID)
	if id == "" {
		res.fail(MsgSubjectNotFound)
		return res
	}
	if _, bad := invalidSubjects[id]; bad {
		res.fail(MsgSubjectNotFound)
	}
	return res
}

// IsKnownField reports whether field belongs to the rectifiable schema.
func IsKnownField(field string) bool {
	_, known := knownFields[field]
	return known
}

func (v *Validator) ValidateAccess(req models.AccessRequest) Result {
	res := ok()
	if req.Format != "" && !slices.Contains(models.ExportFormats, req.Format) {
		res.fail(MsgPortabilityFormat)
	}
	return res
}

func (v *Validator) ValidateErasure(req models.ErasureRequest) Result {
	res := ok()
	if strings.TrimSpace(req.Evidence) == "" {
		res.fail(MsgErasureEvidence)
	}
	if !slices.Contains(models.ErasureGrounds, req.Reason) {
		res.fail(MsgErasureGround)
	}
	return res
}

func (v *Validator) ValidateRestriction(req models.RestrictionRequest) Result {
	res := ok()
	if strings.TrimSpace(req.Evidence) == "" {
		res.fail(MsgRestrictionEvidence)
	}
	if !slices.Contains(models.RestrictionGrounds, req.Reason) {
		res.fail(MsgRestrictionGround)
	}
	return res
}

// RectificationResult separates request-level errors from per-field errors.
// A request is rejected outright only on request-level errors or when every
// correction is rejected.
type RectificationResult struct {
	Result
	FieldErrors map[string]string
}

func (v *Validator) ValidateRectification(req models.RectificationRequest) RectificationResult {
	res := RectificationResult{Result: ok()}
	if strings.TrimSpace(req.Evidence) == "" {
		res.fail(MsgRectificationEvidence)
	}
	if len(req.Corrections) == 0 {
		res.fail(MsgCorrectionsRequired)
		return res
	}
	for field, value := range req.Corrections {
		if msg := checkCorrection(field, value); msg != "" {
			if res.FieldErrors == nil {
				res.FieldErrors = make(map[string]string)
			}
			res.FieldErrors[field] = msg
		}
	}
	if len(res.FieldErrors) == len(req.Corrections) {
		for _, msg := range FieldErrorList(res.FieldErrors) {
			res.fail(msg)
		}
	}
	return res
}

// unknownFieldPrefix starts messages that already name their field.
const unknownFieldPrefix = "Unknown field: "

func checkCorrection(field string, value any) string {
	if !IsKnownField(field) {
		return unknownFieldPrefix + field
	}
	if field == "email" {
		s, isString := value.(string)
		if !isString || !strings.Contains(s, "@") {
			return MsgInvalidEmail
		}
	}
	return ""
}

// FieldErrorList flattens per-field errors in field order.
func FieldErrorList(fieldErrors map[string]string) []string {
	fields := make([]string, 0, len(fieldErrors))
	for f := range fieldErrors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		msg := fieldErrors[f]
		if !strings.HasPrefix(msg, unknownFieldPrefix) {
			msg = f + ": " + msg
		}
		out = append(out, msg)
	}
	return out
}

func (v *Validator) ValidateObjection(req models.ObjectionRequest) Result {
	res := ok()
	if strings.TrimSpace(req.Reason) == "" {
		res.fail(MsgObjectionReason)
	}
	if !slices.Contains(models.ObjectionTypes, req.ObjectionType) {
		res.fail(MsgObjectionType)
	}
	return res
}

func (v *Validator) ValidatePortability(req models.PortabilityRequest) Result {
	res := ok()
	if !slices.Contains(models.ExportFormats, req.Format) {
		res.fail(MsgPortabilityFormat)
	}
	return res
}

func (v *Validator) ValidateAutomatedDecision(req models.AutomatedDecisionRequest) Result {
	res := ok()
	if !slices.Contains(models.DecisionTypes, req.DecisionType) {
		res.fail(MsgDecisionType)
	}
	if !slices.Contains(models.DecisionRequestTypes, req.RequestType) {
		res.fail(MsgDecisionRequestType)
	}
	return res
}

func (v *Validator) ValidatePHI(req models.PHIRequest) Result {
	res := ok()
	if !slices.Contains(models.PHIRequestTypes, req.RequestType) {
		res.fail(MsgPHIRequestType)
	}
	return res
}
