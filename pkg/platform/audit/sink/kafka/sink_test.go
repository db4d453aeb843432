package kafka

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "custodian/pkg/platform/audit"
)

func TestNewPseudonymizer(t *testing.T) {
	_, err := NewPseudonymizer(nil)
	assert.Error(t, err)

	_, err = NewPseudonymizer([]byte(strings.Repeat("k", 65)))
	assert.Error(t, err)

	_, err = NewPseudonymizer([]byte(strings.Repeat("k", 64)))
	assert.NoError(t, err)
}

func TestPseudonym(t *testing.T) {
	p, err := NewPseudonymizer([]byte("secret"))
	require.NoError(t, err)
	other, err := NewPseudonymizer([]byte("different"))
	require.NoError(t, err)

	a := p.Pseudonym("subject-1")
	assert.Len(t, a, 64)
	assert.Equal(t, a, p.Pseudonym("subject-1"), "stable for the same key")
	assert.NotEqual(t, a, p.Pseudonym("subject-2"))
	assert.NotEqual(t, a, other.Pseudonym("subject-1"), "depends on the key")
}

func TestEncodeHidesSubject(t *testing.T) {
	p, err := NewPseudonymizer([]byte("secret"))
	require.NoError(t, err)

	event := audit.Prepare(audit.Event{
		Action:     "erasure_request",
		EntityType: audit.EntityDataSubject,
		EntityID:   "subject-1",
		UserID:     "dpo@example.com",
		Details:    audit.MarshalDetails(map[string]string{"dataSubjectId": "subject-1"}),
		Success:    true,
	}, 1, "", time.Now())

	key, value, err := p.Encode(event)
	require.NoError(t, err)
	assert.Equal(t, p.Pseudonym("subject-1"), string(key))
	assert.NotContains(t, string(value), "subject-1")

	var payload Payload
	require.NoError(t, json.Unmarshal(value, &payload))
	assert.Equal(t, event.ID.String(), payload.ID)
	assert.Equal(t, event.Hash, payload.Hash)
	assert.Equal(t, "erasure_request", payload.Action)
	assert.True(t, payload.Success)
}

func TestEncodeAmendment(t *testing.T) {
	p, err := NewPseudonymizer([]byte("secret"))
	require.NoError(t, err)

	event := audit.Prepare(audit.Event{
		Action:     "erasure_request",
		EntityType: audit.EntityDataSubject,
		EntityID:   "subject-1",
		Success:    true,
	}, 1, "", time.Now())

	_, value, err := p.Encode(event)
	require.NoError(t, err)
	assert.NotContains(t, string(value), "amended_at")

	amended, err := audit.Amend(event, "third party unreachable", time.Now())
	require.NoError(t, err)
	_, value, err = p.Encode(amended)
	require.NoError(t, err)

	var payload Payload
	require.NoError(t, json.Unmarshal(value, &payload))
	assert.Equal(t, event.ID.String(), payload.ID)
	assert.False(t, payload.Success)
	assert.Equal(t, "third party unreachable", payload.Error)
	require.NotNil(t, payload.AmendedAt)
	assert.True(t, payload.AmendedAt.Equal(amended.Amended.At))
}
