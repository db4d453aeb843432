package compliance

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	audit "custodian/pkg/platform/audit"
	"custodian/pkg/platform/audit/store/memory"
	"custodian/pkg/platform/sentinel"
)

type failingStore struct {
	audit.Store
}

func (failingStore) Append(context.Context, audit.Event) (audit.Event, error) {
	return audit.Event{}, sentinel.ErrUnavailable
}

type recordingSink struct {
	events []audit.Event
	err    error
}

func (r *recordingSink) Publish(_ context.Context, e audit.Event) error {
	r.events = append(r.events, e)
	return r.err
}

type PublisherSuite struct {
	suite.Suite
	ctx     context.Context
	metrics *Metrics
	logger  *slog.Logger
}

func TestPublisherSuite(t *testing.T) {
	suite.Run(t, new(PublisherSuite))
}

func (s *PublisherSuite) SetupTest() {
	s.ctx = context.Background()
	s.metrics = NewMetrics(prometheus.NewRegistry())
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *PublisherSuite) TestEmit() {
	s.Run("returns stored event", func() {
		p := New(memory.NewInMemoryStore(), WithMetrics(s.metrics))
		stored, err := p.Emit(s.ctx, audit.Event{Action: "access_request", EntityID: "s1", Success: true})
		s.Require().NoError(err)
		s.NotEqual(uuid.Nil, stored.ID)
		s.NotEmpty(stored.Hash)
		s.Equal(1.0, testutil.ToFloat64(s.metrics.EventsEmitted.WithLabelValues("access_request")))
	})

	s.Run("requires action and entity", func() {
		p := New(memory.NewInMemoryStore())
		_, err := p.Emit(s.ctx, audit.Event{EntityID: "s1"})
		s.Error(err)
		_, err = p.Emit(s.ctx, audit.Event{Action: "access_request"})
		s.Error(err)
	})

	s.Run("fails closed when the store fails", func() {
		p := New(failingStore{}, WithMetrics(s.metrics), WithLogger(s.logger))
		_, err := p.Emit(s.ctx, audit.Event{Action: "access_request", EntityID: "s1"})
		s.ErrorIs(err, sentinel.ErrUnavailable)
		s.Equal(1.0, testutil.ToFloat64(s.metrics.PersistFailures))
	})

	s.Run("sink failure does not fail the emit", func() {
		sink := &recordingSink{err: errors.New("broker down")}
		p := New(memory.NewInMemoryStore(), WithSink(sink), WithMetrics(s.metrics), WithLogger(s.logger))
		stored, err := p.Emit(s.ctx, audit.Event{Action: "access_request", EntityID: "s1"})
		s.Require().NoError(err)
		s.Require().Len(sink.events, 1)
		s.Equal(stored.ID, sink.events[0].ID)
		s.Equal(1.0, testutil.ToFloat64(s.metrics.SinkFailures))
	})
}

func (s *PublisherSuite) TestAmend() {
	store := memory.NewInMemoryStore()
	p := New(store, WithMetrics(s.metrics))
	stored, err := p.Emit(s.ctx, audit.Event{Action: "erasure_request", EntityID: "s1", Success: true})
	s.Require().NoError(err)

	s.Require().NoError(p.Amend(s.ctx, stored.ID, "boom"))
	events, err := p.Query(s.ctx, audit.Filter{EntityID: "s1"})
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.False(events[0].Success)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Amendments))

	s.ErrorIs(p.Amend(s.ctx, uuid.New(), "boom"), sentinel.ErrNotFound)
}

func (s *PublisherSuite) TestAmendStreamsToSink() {
	s.Run("amended event follows the original", func() {
		sink := &recordingSink{}
		p := New(memory.NewInMemoryStore(), WithSink(sink), WithMetrics(s.metrics))
		stored, err := p.Emit(s.ctx, audit.Event{Action: "erasure_request", EntityID: "s1", Success: true})
		s.Require().NoError(err)

		s.Require().NoError(p.Amend(s.ctx, stored.ID, "third party unreachable"))
		s.Require().Len(sink.events, 2)
		s.Nil(sink.events[0].Amended)
		got := sink.events[1]
		s.Equal(stored.ID, got.ID)
		s.Equal("erasure_request", got.Action)
		s.False(got.Success)
		s.Require().NotNil(got.Amended)
		s.Equal("third party unreachable", got.Amended.Error)
	})

	s.Run("failed amendment is not streamed", func() {
		sink := &recordingSink{}
		p := New(memory.NewInMemoryStore(), WithSink(sink), WithMetrics(s.metrics))
		s.Error(p.Amend(s.ctx, uuid.New(), "boom"))
		s.Empty(sink.events)
	})

	s.Run("sink failure does not fail the amend", func() {
		sink := &recordingSink{}
		p := New(memory.NewInMemoryStore(), WithSink(sink), WithMetrics(s.metrics), WithLogger(s.logger))
		stored, err := p.Emit(s.ctx, audit.Event{Action: "erasure_request", EntityID: "s2", Success: true})
		s.Require().NoError(err)
		before := testutil.ToFloat64(s.metrics.SinkFailures)

		sink.err = errors.New("broker down")
		s.NoError(p.Amend(s.ctx, stored.ID, "boom"))
		s.Len(sink.events, 2)
		s.Equal(before+1, testutil.ToFloat64(s.metrics.SinkFailures))
	})
}

func (s *PublisherSuite) TestEmitAfterCloseFails() {
	p := New(memory.NewInMemoryStore(), WithMetrics(s.metrics))
	stored, err := p.Emit(s.ctx, audit.Event{Action: "access_request", EntityID: "s1", Success: true})
	s.Require().NoError(err)
	s.Require().NoError(p.Close())

	_, err = p.Emit(s.ctx, audit.Event{Action: "access_completed", EntityID: "s1", Success: true})
	s.ErrorIs(err, sentinel.ErrClosed)
	s.NoError(p.Amend(s.ctx, stored.ID, "shutdown"))
}
