//go:build integration

package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"custodian/internal/compliance/models"
	"custodian/internal/compliance/store"
	"custodian/pkg/platform/sentinel"
	"custodian/pkg/testutil/containers"
)

type PostgresRepositorySuite struct {
	suite.Suite
	pg     *containers.PostgresContainer
	stores *store.Stores
}

func TestPostgresRepositorySuite(t *testing.T) {
	suite.Run(t, new(PostgresRepositorySuite))
}

func (s *PostgresRepositorySuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.stores = NewStores(s.pg.DB)
}

func (s *PostgresRepositorySuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate(context.Background(), "compliance_records"))
}

func (s *PostgresRepositorySuite) TestUpsertAndGet() {
	ctx := context.Background()
	key := store.SubjectKey("s1")
	rec := models.Erasure{
		RecordMeta:       models.RecordMeta{ID: "e1", SubjectID: "s1", Status: models.StatusCompleted},
		Scope:            models.ScopeAllPersonalData,
		ErasedCategories: []string{"identity", "contact"},
	}
	s.Require().NoError(s.stores.Erasures.Set(ctx, key, rec))

	rec.ID = "e2"
	s.Require().NoError(s.stores.Erasures.Set(ctx, key, rec))

	got, err := s.stores.Erasures.Get(ctx, key)
	s.Require().NoError(err)
	s.Equal("e2", got.ID)
	s.Equal([]string{"identity", "contact"}, got.ErasedCategories)
}

func (s *PostgresRepositorySuite) TestListAndDelete() {
	ctx := context.Background()
	for _, f := range []string{"phone", "city", "email"} {
		s.Require().NoError(s.stores.Rectifications.Set(ctx,
			store.Key{SubjectID: "s1", Name: f}, models.Rectification{Field: f}))
	}
	got, err := s.stores.Rectifications.List(ctx, "s1")
	s.Require().NoError(err)
	s.Require().Len(got, 3)
	s.Equal("city", got[0].Field)

	s.Require().NoError(s.stores.Rectifications.Delete(ctx, store.Key{SubjectID: "s1", Name: "city"}))
	s.ErrorIs(s.stores.Rectifications.Delete(ctx, store.Key{SubjectID: "s1", Name: "city"}), sentinel.ErrNotFound)
}

func (s *PostgresRepositorySuite) TestMissing() {
	_, err := s.stores.Objections.Get(context.Background(), store.SubjectKey("ghost"))
	s.ErrorIs(err, sentinel.ErrNotFound)
}
