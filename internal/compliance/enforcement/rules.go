package enforcement

import (
	"slices"
	"strings"

	"custodian/internal/compliance/models"
)

// Basis names the record that decided an attempt.
type Basis string

const (
	BasisRestriction Basis = "restriction"
	BasisObjection   Basis = "objection"
	BasisNone        Basis = "none"
)

// policy is the rule table for one kind of active record. Operations not
// listed in either set are blocked.
type policy struct {
	reason   string
	override bool
	// exempt operations are allowed before any other list is consulted
	exempt        []string
	exemptAllowed []string
	blocked       []string
	allowed       []string
}

var restrictionPolicy = policy{
	reason:        models.ReasonRestricted,
	override:      true,
	exempt:        []string{"data-storage", "storage"},
	exemptAllowed: []string{"storage"},
	blocked:       []string{"data-analysis", "analysis", "marketing", "profiling"},
	allowed:       []string{"storage", "backup", "security"},
}

var objectionPolicy = policy{
	reason:   models.ReasonObjected,
	override: false,
	blocked:  []string{"analytics", "marketing", "profiling", "behavioral-analysis"},
	allowed:  []string{"service-provision", "authentication", "storage"},
}

// evaluate applies p to an operation. This is pure domain logic.
func (p policy) evaluate(operation string) models.EnforcementDecision {
	op := normalizeOperation(operation)
	switch {
	case slices.Contains(p.exempt, op):
		return models.EnforcementDecision{AllowedOperations: slices.Clone(p.exemptAllowed)}
	case slices.Contains(p.blocked, op):
		return p.block(slices.Clone(p.blocked))
	case slices.Contains(p.allowed, op):
		return models.EnforcementDecision{AllowedOperations: slices.Clone(p.allowed)}
	default:
		// fail closed on operations the table does not know
		return p.block(append(slices.Clone(p.blocked), op))
	}
}

func (p policy) block(blockedOps []string) models.EnforcementDecision {
	return models.EnforcementDecision{
		Blocked:           true,
		Reason:            p.reason,
		BlockedOperations: blockedOps,
		AllowedOperations: slices.Clone(p.allowed),
		OverrideAvailable: p.override,
	}
}

// unrestricted is the decision when no active record applies.
func unrestricted() models.EnforcementDecision {
	return models.EnforcementDecision{AllowedOperations: []string{"all"}}
}

// Decide evaluates an operation against the subject's active records.
// Restriction takes precedence; exactly one record is consulted.
func Decide(restriction *models.Restriction, objection *models.Objection, operation string) (models.EnforcementDecision, Basis) {
	if restriction != nil && restriction.IsActive() {
		return restrictionPolicy.evaluate(operation), BasisRestriction
	}
	if objection != nil && objection.IsActive() {
		return objectionPolicy.evaluate(operation), BasisObjection
	}
	return unrestricted(), BasisNone
}

func normalizeOperation(op string) string {
	return strings.ToLower(strings.TrimSpace(op))
}

// RestrictionAllowedOperations lists what an active restriction still permits.
func RestrictionAllowedOperations() []string {
	return slices.Clone(restrictionPolicy.allowed)
}
