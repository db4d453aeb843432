package audit

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildChain(t *testing.T, n int) []Event {
	t.Helper()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	events := make([]Event, 0, n)
	prev := ""
	for i := range n {
		e := Prepare(Event{
			Action:   "access_request",
			EntityID: "subject",
			Details:  MarshalDetails(map[string]int{"i": i}),
			Success:  true,
		}, int64(i+1), prev, now.Add(time.Duration(i)*time.Second))
		prev = e.Hash
		events = append(events, e)
	}
	return events
}

func TestPrepare(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 999999999, time.FixedZone("X", 3600))
	e := Prepare(Event{Action: "erasure_request", EntityID: "s"}, 7, "abc", now)

	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.Equal(t, e.ID, e.CorrelationID)
	assert.Equal(t, int64(7), e.Sequence)
	assert.Equal(t, "abc", e.PrevHash)
	assert.Equal(t, time.UTC, e.Timestamp.Location())
	assert.Equal(t, 0, e.Timestamp.Nanosecond()%1000)
	assert.Equal(t, CategoryCompliance, e.Category)
	assert.Equal(t, ComputeHash(e), e.Hash)

	ops := Prepare(Event{Action: string(EventChainVerified), EntityID: "s"}, 1, "", now)
	assert.Equal(t, CategoryOperations, ops.Category)
}

func TestHashIgnoresOutcome(t *testing.T) {
	e := buildChain(t, 1)[0]
	amended, err := Amend(e, "failed", time.Now())
	require.NoError(t, err)
	assert.Equal(t, ComputeHash(e), ComputeHash(amended))
}

func TestAmend(t *testing.T) {
	e := buildChain(t, 1)[0]

	first, err := Amend(e, "boom", time.Now())
	require.NoError(t, err)
	assert.False(t, first.Success)
	assert.Equal(t, "boom", first.Error)
	require.NotNil(t, first.Amended)

	again, err := Amend(first, "boom", time.Now())
	require.NoError(t, err)
	assert.Equal(t, first.Amended.At, again.Amended.At)

	_, err = Amend(first, "different", time.Now())
	assert.ErrorIs(t, err, ErrAlreadyAmended)
}

func TestVerifyChain(t *testing.T) {
	t.Run("empty trail is valid", func(t *testing.T) {
		report := VerifyChain(nil)
		assert.True(t, report.Valid)
		assert.Zero(t, report.EventsVerified)
	})

	t.Run("intact chain", func(t *testing.T) {
		events := buildChain(t, 4)
		report := VerifyChain(events)
		assert.True(t, report.Valid)
		assert.Equal(t, 4, report.EventsVerified)
		assert.Equal(t, events[3].Hash, report.HeadHash)
	})

	t.Run("edited details", func(t *testing.T) {
		events := buildChain(t, 3)
		events[1].Details = MarshalDetails(map[string]int{"i": 99})
		report := VerifyChain(events)
		require.False(t, report.Valid)
		assert.Equal(t, BreakHashMismatch, report.Breaks[0].Type)
		assert.Equal(t, int64(2), report.Breaks[0].Sequence)
	})

	t.Run("deleted event", func(t *testing.T) {
		events := buildChain(t, 3)
		events = append(events[:1], events[2:]...)
		report := VerifyChain(events)
		require.False(t, report.Valid)
		types := []BreakType{}
		for _, b := range report.Breaks {
			types = append(types, b.Type)
		}
		assert.Contains(t, types, BreakSequenceGap)
		assert.Contains(t, types, BreakMissingPrevious)
	})
}

func TestFilterMatches(t *testing.T) {
	e := Event{ID: uuid.New(), Action: "access_request", EntityID: "s1", CorrelationID: uuid.New()}
	assert.True(t, Filter{}.Matches(e))
	assert.True(t, Filter{Action: "access_request", EntityID: "s1"}.Matches(e))
	assert.False(t, Filter{Action: "access_request", EntityID: "s2"}.Matches(e))
	assert.True(t, Filter{Actions: []string{"x", "access_request"}}.Matches(e))
	assert.False(t, Filter{Actions: []string{"x"}}.Matches(e))
	assert.False(t, Filter{CorrelationID: uuid.New()}.Matches(e))
	assert.True(t, Filter{ID: e.ID}.Matches(e))
	assert.False(t, Filter{ID: uuid.New()}.Matches(e))
}

func TestCloneIsDeep(t *testing.T) {
	e := buildChain(t, 1)[0]
	e.Amended = &Amendment{Error: "x"}
	c := e.Clone()
	c.Details[0] = 'X'
	c.Amended.Error = "y"
	assert.NotEqual(t, c.Details[0], e.Details[0])
	assert.Equal(t, "x", e.Amended.Error)
}
