package domain

import (
	"strings"
	"unicode/utf8"

	dErrors "custodian/pkg/domain-errors"
)

// SubjectID identifies a data subject or patient. Unlike internal record IDs it
// is supplied by the controller's own systems, so it is an opaque string rather
// than a UUID.
//
// Invariant: non-empty, at most maxSubjectIDLen bytes, valid UTF-8, and drawn
// from a conservative character set safe to embed in store keys.
type SubjectID string

const maxSubjectIDLen = 128

// ParseSubjectID constructs a SubjectID from external input.
//
// Errors: returns CodeInvalidInput when the value is empty, oversized, or
// contains characters outside [A-Za-z0-9._@-].
func ParseSubjectID(s string) (SubjectID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "subject id cannot be empty")
	}
	if len(s) > maxSubjectIDLen || !utf8.ValidString(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "subject id is malformed")
	}
	for _, r := range s {
		if !isSubjectIDRune(r) {
			return "", dErrors.New(dErrors.CodeInvalidInput, "subject id contains invalid characters")
		}
	}
	return SubjectID(s), nil
}

func isSubjectIDRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-', r == '_', r == '.', r == '@':
		return true
	}
	return false
}

func (id SubjectID) String() string {
	return string(id)
}

// IsNil reports whether the id is the zero value.
func (id SubjectID) IsNil() bool {
	return id == ""
}
