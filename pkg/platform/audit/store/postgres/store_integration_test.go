//go:build integration

package postgres

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	audit "custodian/pkg/platform/audit"
	"custodian/pkg/platform/sentinel"
	"custodian/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *Store
	ctx   context.Context
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = New(s.pg.DB)
	s.ctx = context.Background()
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate(s.ctx, "audit_events"))
}

func (s *PostgresStoreSuite) TestRoundTripKeepsChainValid() {
	details := audit.MarshalDetails(map[string]any{"scope": "all-personal-data", "n": 1})
	first, err := s.store.Append(s.ctx, audit.Event{Action: "erasure_request", EntityID: "s1", Details: details, Success: true})
	s.Require().NoError(err)
	_, err = s.store.Append(s.ctx, audit.Event{Action: "erasure_completed", EntityID: "s1", CorrelationID: first.CorrelationID, Success: true})
	s.Require().NoError(err)

	events, err := s.store.Query(s.ctx, audit.Filter{})
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal(first.ID, events[0].ID)
	s.JSONEq(string(details), string(events[0].Details))
	s.True(audit.VerifyChain(events).Valid)
}

func (s *PostgresStoreSuite) TestQueryFilters() {
	for _, e := range []audit.Event{
		{Action: "access_request", EntityID: "s1"},
		{Action: "access_request", EntityID: "s2"},
		{Action: "access_completed", EntityID: "s1"},
	} {
		_, err := s.store.Append(s.ctx, e)
		s.Require().NoError(err)
	}

	events, err := s.store.Query(s.ctx, audit.Filter{EntityID: "s1", Action: "access_request"})
	s.Require().NoError(err)
	s.Len(events, 1)

	events, err = s.store.Query(s.ctx, audit.Filter{Actions: []string{"access_request", "access_completed"}, EntityID: "s1"})
	s.Require().NoError(err)
	s.Len(events, 2)
}

func (s *PostgresStoreSuite) TestAmend() {
	e, err := s.store.Append(s.ctx, audit.Event{Action: "erasure_request", EntityID: "s1", Success: true})
	s.Require().NoError(err)

	s.Require().NoError(s.store.Amend(s.ctx, e.ID, "boom"))
	s.Require().NoError(s.store.Amend(s.ctx, e.ID, "boom"))
	s.ErrorIs(s.store.Amend(s.ctx, e.ID, "other"), audit.ErrAlreadyAmended)
	s.ErrorIs(s.store.Amend(s.ctx, uuid.New(), "boom"), sentinel.ErrNotFound)

	events, err := s.store.Query(s.ctx, audit.Filter{CorrelationID: e.ID})
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.False(events[0].Success)
	s.Equal("boom", events[0].Error)
	s.Require().NotNil(events[0].Amended)
	s.Equal(e.Hash, events[0].Hash)
}

func (s *PostgresStoreSuite) TestConcurrentAppends() {
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.Append(s.ctx, audit.Event{Action: "access_request", EntityID: "s1"})
			s.NoError(err)
		}()
	}
	wg.Wait()

	events, err := s.store.Query(s.ctx, audit.Filter{})
	s.Require().NoError(err)
	s.Len(events, 20)
	s.True(audit.VerifyChain(events).Valid)
}
