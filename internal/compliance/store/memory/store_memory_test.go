package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"custodian/internal/compliance/models"
	"custodian/internal/compliance/store"
	"custodian/pkg/platform/sentinel"
)

type RepositorySuite struct {
	suite.Suite
	ctx    context.Context
	stores *store.Stores
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.stores = NewStores()
}

func (s *RepositorySuite) TestGetMissingReturnsNotFound() {
	_, err := s.stores.Restrictions.Get(s.ctx, store.SubjectKey("s1"))
	s.Require().Error(err)
	s.True(errors.Is(err, sentinel.ErrNotFound))
}

func (s *RepositorySuite) TestSetOverwrites() {
	key := store.SubjectKey("s1")
	first := models.Objection{RecordMeta: models.RecordMeta{ID: "a", SubjectID: "s1", Status: models.StatusActive}}
	second := models.Objection{RecordMeta: models.RecordMeta{ID: "b", SubjectID: "s1", Status: models.StatusWithdrawn}}

	s.Require().NoError(s.stores.Objections.Set(s.ctx, key, first))
	s.Require().NoError(s.stores.Objections.Set(s.ctx, key, second))

	got, err := s.stores.Objections.Get(s.ctx, key)
	s.Require().NoError(err)
	s.Equal("b", got.ID)
	s.Equal(models.StatusWithdrawn, got.Status)
}

func (s *RepositorySuite) TestKindsAreIsolated() {
	key := store.SubjectKey("s1")
	s.Require().NoError(s.stores.Erasures.Set(s.ctx, key, models.Erasure{RecordMeta: models.RecordMeta{ID: "e"}}))

	_, err := s.stores.Restrictions.Get(s.ctx, key)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RepositorySuite) TestListIsScopedAndOrdered() {
	for _, field := range []string{"phone", "email", "city"} {
		s.Require().NoError(s.stores.Rectifications.Set(s.ctx,
			store.Key{SubjectID: "s1", Name: field},
			models.Rectification{Field: field}))
	}
	s.Require().NoError(s.stores.Rectifications.Set(s.ctx,
		store.Key{SubjectID: "s2", Name: "email"}, models.Rectification{Field: "email"}))

	got, err := s.stores.Rectifications.List(s.ctx, "s1")
	s.Require().NoError(err)
	s.Require().Len(got, 3)
	s.Equal("city", got[0].Field)
	s.Equal("email", got[1].Field)
	s.Equal("phone", got[2].Field)

	none, err := s.stores.Rectifications.List(s.ctx, "s3")
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *RepositorySuite) TestDelete() {
	key := store.SubjectKey("s1")
	s.Require().NoError(s.stores.PHI.Set(s.ctx, key, models.PHIRequestRecord{}))
	s.Require().NoError(s.stores.PHI.Delete(s.ctx, key))
	s.ErrorIs(s.stores.PHI.Delete(s.ctx, key), sentinel.ErrNotFound)
}

func (s *RepositorySuite) TestConcurrentWriters() {
	repo := NewRepository[models.Restriction](store.KindRestriction)
	var wg sync.WaitGroup
	for i := range 64 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", i)
			_ = repo.Set(s.ctx, store.SubjectKey(id), models.Restriction{RecordMeta: models.RecordMeta{SubjectID: id}})
		}(i)
	}
	wg.Wait()
	s.Equal(64, repo.Len())
}
