package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"custodian/internal/compliance/mocks"
	"custodian/internal/compliance/models"
	"custodian/internal/compliance/ports"
	"custodian/pkg/platform/circuit"
	"custodian/pkg/platform/sentinel"
)

func TestSeededPersonalDataStore(t *testing.T) {
	ctx := context.Background()
	store := NewSeededPersonalDataStore()

	t.Run("synthetic profile is scoped to the subject", func(t *testing.T) {
		recs, err := store.Fetch(ctx, "alice", ports.FetchOptions{})
		require.NoError(t, err)
		require.NotEmpty(t, recs)
		assert.Equal(t, "alice", recs[0].Fields["subjectId"])
	})

	t.Run("category filter", func(t *testing.T) {
		recs, err := store.Fetch(ctx, "alice", ports.FetchOptions{Categories: []string{models.CategoryContact}})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, models.CategoryContact, recs[0].Category)
	})

	t.Run("seeded data is copied in and out", func(t *testing.T) {
		seed := []models.PersonalDataRecord{{Category: models.CategoryIdentity, Fields: map[string]any{"name": "Bob"}}}
		store.Seed("bob", seed)
		seed[0].Fields["name"] = "Mallory"

		recs, err := store.Fetch(ctx, "bob", ports.FetchOptions{})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "Bob", recs[0].Fields["name"])

		recs[0].Fields["name"] = "Eve"
		again, _ := store.Fetch(ctx, "bob", ports.FetchOptions{})
		assert.Equal(t, "Bob", again[0].Fields["name"])
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := store.Fetch(cctx, "alice", ports.FetchOptions{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestStaticCatalogReturnsCopies(t *testing.T) {
	ctx := context.Background()
	cat := NewStaticCatalog()

	purposes, err := cat.PurposesFor(ctx, "s1")
	require.NoError(t, err)
	purposes[0] = "tampered"

	again, _ := cat.PurposesFor(ctx, "s1")
	assert.Equal(t, "service-provision", again[0])

	basis, _ := cat.LegalBasisFor(ctx, "s1")
	assert.Equal(t, "consent", basis["marketing"])
}

func TestSimulatedNotifier(t *testing.T) {
	n := NewSimulatedNotifier()
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	n.now = func() time.Time { return fixed }

	rec, err := n.Notify(context.Background(), "s1", models.Recipient{Name: "email-service"}, ports.NotificationScope{Right: "erasure"})
	require.NoError(t, err)
	assert.Equal(t, "email-service", rec.Recipient)
	assert.Equal(t, "confirmed", rec.Status)
	assert.Equal(t, fixed, rec.NotifiedAt)
}

func TestBreakerNotifier(t *testing.T) {
	ctx := context.Background()
	recipient := models.Recipient{Name: "crm"}
	scope := ports.NotificationScope{Right: "erasure"}

	t.Run("passes through successes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		next := mocks.NewMockThirdPartyNotifier(ctrl)
		next.EXPECT().Notify(gomock.Any(), "s1", recipient, scope).
			Return(models.NotificationRecord{Recipient: "crm", Status: "confirmed"}, nil)

		n := NewBreakerNotifier(next, circuit.New("notifier"), nil)
		rec, err := n.Notify(ctx, "s1", recipient, scope)
		require.NoError(t, err)
		assert.Equal(t, "confirmed", rec.Status)
	})

	t.Run("reports unavailable once open", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		next := mocks.NewMockThirdPartyNotifier(ctrl)
		boom := errors.New("connection refused")
		next.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(models.NotificationRecord{}, boom).Times(2)

		breaker := circuit.New("notifier", circuit.WithFailureThreshold(2))
		n := NewBreakerNotifier(next, breaker, nil)

		_, err := n.Notify(ctx, "s1", recipient, scope)
		require.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, sentinel.ErrUnavailable)

		_, err = n.Notify(ctx, "s1", recipient, scope)
		require.ErrorIs(t, err, sentinel.ErrUnavailable)
		assert.ErrorIs(t, err, boom)
		assert.True(t, breaker.IsOpen())
	})

	t.Run("closes after successes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		next := mocks.NewMockThirdPartyNotifier(ctrl)
		gomock.InOrder(
			next.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(models.NotificationRecord{}, errors.New("down")),
			next.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(models.NotificationRecord{Status: "confirmed"}, nil),
		)
		breaker := circuit.New("notifier", circuit.WithFailureThreshold(1), circuit.WithSuccessThreshold(1))
		n := NewBreakerNotifier(next, breaker, nil)

		_, err := n.Notify(ctx, "s1", recipient, scope)
		require.ErrorIs(t, err, sentinel.ErrUnavailable)
		_, err = n.Notify(ctx, "s1", recipient, scope)
		require.NoError(t, err)
		assert.False(t, breaker.IsOpen())
	})
}
