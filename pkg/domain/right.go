package domain

import dErrors "custodian/pkg/domain-errors"

// Right names a data-subject or patient right the engine processes.
type Right string

const (
	RightAccess            Right = "access"
	RightRectification     Right = "rectification"
	RightErasure           Right = "erasure"
	RightRestriction       Right = "restriction"
	RightPortability       Right = "portability"
	RightObjection         Right = "objection"
	RightAutomatedDecision Right = "automated_decision"
	RightPHI               Right = "phi"
)

// Regime is the regulation a right belongs to; each regime is toggled by config.
type Regime string

const (
	RegimeGDPR  Regime = "GDPR"
	RegimeHIPAA Regime = "HIPAA"
)

var rightRegimes = map[Right]Regime{
	RightAccess:            RegimeGDPR,
	RightRectification:     RegimeGDPR,
	RightErasure:           RegimeGDPR,
	RightRestriction:       RegimeGDPR,
	RightPortability:       RegimeGDPR,
	RightObjection:         RegimeGDPR,
	RightAutomatedDecision: RegimeGDPR,
	RightPHI:               RegimeHIPAA,
}

// ParseRight validates a right name taken from a route or message.
func ParseRight(s string) (Right, error) {
	r := Right(s)
	if _, ok := rightRegimes[r]; !ok {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unsupported right: "+s)
	}
	return r, nil
}

// Regime returns the regulation governing r.
func (r Right) Regime() Regime {
	return rightRegimes[r]
}

// RequestAction is the audit action logged when a request for r is accepted.
func (r Right) RequestAction() string {
	return string(r) + "_request"
}

// CompletedAction is the audit action logged when r has been processed.
func (r Right) CompletedAction() string {
	return string(r) + "_completed"
}

func (r Right) String() string {
	return string(r)
}
