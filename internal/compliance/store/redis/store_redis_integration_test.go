//go:build integration

package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"custodian/internal/compliance/models"
	"custodian/internal/compliance/store"
	"custodian/pkg/testutil/containers"
)

func TestRedisRepositoryAgainstRealRedis(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()
	stores := NewStores(rc.Client, "it")

	require.NoError(t, stores.Decisions.Set(ctx, store.SubjectKey("s1"), models.DecisionReview{
		RecordMeta:           models.RecordMeta{ID: "d1", SubjectID: "s1", Status: models.StatusActive},
		DecisionType:         models.DecisionCreditScoring,
		HumanReviewRequested: true,
	}))

	got, err := stores.Decisions.Get(ctx, store.SubjectKey("s1"))
	require.NoError(t, err)
	require.Equal(t, models.DecisionCreditScoring, got.DecisionType)

	list, err := stores.Decisions.List(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, rc.FlushAll(ctx))
}
