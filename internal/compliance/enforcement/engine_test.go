package enforcement

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"custodian/internal/compliance/metrics"
	"custodian/internal/compliance/models"
	"custodian/internal/compliance/store"
	storememory "custodian/internal/compliance/store/memory"
	dErrors "custodian/pkg/domain-errors"
	"custodian/pkg/platform/audit"
	"custodian/pkg/platform/audit/publishers/compliance"
	auditmemory "custodian/pkg/platform/audit/store/memory"
	"custodian/pkg/platform/sentinel"
)

type EngineSuite struct {
	suite.Suite
	ctx     context.Context
	stores  *store.Stores
	audit   *auditmemory.InMemoryStore
	metrics *metrics.Metrics
	engine  *Engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.ctx = context.Background()
	s.stores = storememory.NewStores()
	s.audit = auditmemory.NewInMemoryStore()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.engine = New(s.stores.Restrictions, s.stores.Objections, compliance.New(s.audit), WithMetrics(s.metrics))
}

func (s *EngineSuite) restrict(subject string) {
	s.Require().NoError(s.stores.Restrictions.Set(s.ctx, store.SubjectKey(subject), models.Restriction{
		RecordMeta: models.RecordMeta{ID: "r-" + subject, SubjectID: subject, Status: models.StatusActive},
	}))
}

func (s *EngineSuite) TestStorageNeverBlockedUnderRestriction() {
	s.restrict("s1")
	for _, op := range []string{"data-storage", "storage"} {
		d, err := s.engine.AttemptProcessing(s.ctx, "s1", models.ProcessingAttempt{Operation: op})
		s.Require().NoError(err)
		s.False(d.Blocked, op)
		s.Equal([]string{"storage"}, d.AllowedOperations)
	}
}

func (s *EngineSuite) TestRestrictedAnalysisBlocked() {
	s.restrict("s1")
	d, err := s.engine.AttemptProcessing(s.ctx, "s1", models.ProcessingAttempt{Operation: "data-analysis"})
	s.Require().NoError(err)
	s.True(d.Blocked)
	s.Equal(models.ReasonRestricted, d.Reason)
	s.True(d.OverrideAvailable)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.EnforcementDecisions.WithLabelValues("blocked", "restriction")))
}

func (s *EngineSuite) TestOtherSubjectsUnaffected() {
	s.restrict("s1")
	d, err := s.engine.AttemptProcessing(s.ctx, "s2", models.ProcessingAttempt{Operation: "marketing"})
	s.Require().NoError(err)
	s.False(d.Blocked)
	s.Equal([]string{"all"}, d.AllowedOperations)
}

func (s *EngineSuite) TestDecisionIsAudited() {
	s.Require().NoError(s.stores.Objections.Set(s.ctx, store.SubjectKey("s1"), models.Objection{
		RecordMeta: models.RecordMeta{SubjectID: "s1", Status: models.StatusActive},
	}))
	_, err := s.engine.AttemptProcessing(s.ctx, "s1", models.ProcessingAttempt{Operation: "profiling"})
	s.Require().NoError(err)

	events, err := s.audit.Query(s.ctx, audit.Filter{Action: string(audit.EventProcessingAttempt), EntityID: "s1"})
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.True(events[0].Success)

	var details struct {
		Basis    string                     `json:"basis"`
		Decision models.EnforcementDecision `json:"decision"`
	}
	s.Require().NoError(json.Unmarshal(events[0].Details, &details))
	s.Equal("objection", details.Basis)
	s.True(details.Decision.Blocked)
	s.Equal(models.ReasonObjected, details.Decision.Reason)
}

func (s *EngineSuite) TestValidation() {
	_, err := s.engine.AttemptProcessing(s.ctx, "", models.ProcessingAttempt{Operation: "storage"})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = s.engine.AttemptProcessing(s.ctx, "s1", models.ProcessingAttempt{})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *EngineSuite) TestStoreFailureIsAnError() {
	engine := New(failingRepo[models.Restriction]{}, s.stores.Objections, compliance.New(s.audit))
	_, err := engine.AttemptProcessing(s.ctx, "s1", models.ProcessingAttempt{Operation: "storage"})
	s.Require().Error(err)
	s.True(errors.Is(err, sentinel.ErrUnavailable))
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

type failingRepo[T any] struct{}

func (failingRepo[T]) Get(context.Context, store.Key) (T, error) {
	var zero T
	return zero, sentinel.ErrUnavailable
}
func (failingRepo[T]) Set(context.Context, store.Key, T) error { return sentinel.ErrUnavailable }
func (failingRepo[T]) Delete(context.Context, store.Key) error { return sentinel.ErrUnavailable }
func (failingRepo[T]) List(context.Context, string) ([]T, error) {
	return nil, sentinel.ErrUnavailable
}
