package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "custodian/pkg/domain-errors"
)

// TestParseSubjectID_SecurityInvariants validates parsing at the trust boundary.
// Subject ids end up inside store keys, so anything that could forge a key
// separator sequence or escape a path must be rejected.
func TestParseSubjectID_SecurityInvariants(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"SQL injection attempt", "'; DROP TABLE users;--", true},
		{"Path traversal", "../../../etc/passwd", true},
		{"Key separator", "user:restriction", true},
		{"Null byte injection", "user\x00admin", true},
		{"Oversized input", strings.Repeat("a", 1000), true},
		{"Unicode zero-width space", "user\u200B1", true},

		{"Empty string", "", true},
		{"Whitespace only", "   ", true},

		{"Plain id", "user-123", false},
		{"Email-like id", "jane.doe@example.com", false},
		{"Padded id is trimmed", "  patient_42  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSubjectID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestParseSubjectID_Trims(t *testing.T) {
	id, err := ParseSubjectID("  patient_42  ")
	require.NoError(t, err)
	assert.Equal(t, SubjectID("patient_42"), id)
	assert.False(t, id.IsNil())
}

func TestParseRight(t *testing.T) {
	t.Run("known rights map to their regime", func(t *testing.T) {
		r, err := ParseRight("erasure")
		require.NoError(t, err)
		assert.Equal(t, RegimeGDPR, r.Regime())

		r, err = ParseRight("phi")
		require.NoError(t, err)
		assert.Equal(t, RegimeHIPAA, r.Regime())
	})

	t.Run("unknown right rejected", func(t *testing.T) {
		_, err := ParseRight("forgetfulness")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("audit actions derive from the right", func(t *testing.T) {
		assert.Equal(t, "restriction_request", RightRestriction.RequestAction())
		assert.Equal(t, "automated_decision_completed", RightAutomatedDecision.CompletedAction())
	})
}
