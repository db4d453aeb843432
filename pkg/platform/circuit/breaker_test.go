package circuit

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
)

type BreakerSuite struct {
	suite.Suite
}

func TestBreakerSuite(t *testing.T) {
	suite.Run(t, new(BreakerSuite))
}

func (s *BreakerSuite) TestInitialState() {
	b := New("notifier")
	s.False(b.IsOpen())
	s.Equal(StateClosed, b.State())
	s.Equal("notifier", b.Name())
}

func (s *BreakerSuite) TestOpening() {
	s.Run("opens on the threshold failure", func() {
		b := New("notifier", WithFailureThreshold(3))

		for range 2 {
			useFallback, change := b.RecordFailure()
			s.False(useFallback)
			s.False(change.Opened)
		}

		useFallback, change := b.RecordFailure()
		s.True(useFallback)
		s.True(change.Opened)
		s.True(b.IsOpen())
	})

	s.Run("further failures while open report no transition", func() {
		b := New("notifier", WithFailureThreshold(1))
		b.RecordFailure()

		useFallback, change := b.RecordFailure()
		s.True(useFallback)
		s.False(change.Opened)
	})

	s.Run("success resets the failure streak", func() {
		b := New("notifier", WithFailureThreshold(3))
		b.RecordFailure()
		b.RecordFailure()
		b.RecordSuccess()
		b.RecordFailure()
		b.RecordFailure()
		s.False(b.IsOpen())

		b.RecordFailure()
		s.True(b.IsOpen())
	})

	s.Run("non-positive thresholds keep defaults", func() {
		b := New("notifier", WithFailureThreshold(0), WithSuccessThreshold(-1))
		for range defaultFailureThreshold - 1 {
			b.RecordFailure()
		}
		s.False(b.IsOpen())
		b.RecordFailure()
		s.True(b.IsOpen())
	})
}

func (s *BreakerSuite) TestClosing() {
	s.Run("closes after the success threshold", func() {
		b := New("notifier", WithFailureThreshold(1), WithSuccessThreshold(2))
		b.RecordFailure()
		s.Require().True(b.IsOpen())

		usePrimary, change := b.RecordSuccess()
		s.False(usePrimary)
		s.False(change.Closed)

		usePrimary, change = b.RecordSuccess()
		s.True(usePrimary)
		s.True(change.Closed)
		s.False(b.IsOpen())
	})

	s.Run("failure while open restarts the success streak", func() {
		b := New("notifier", WithFailureThreshold(1), WithSuccessThreshold(3))
		b.RecordFailure()
		b.RecordSuccess()
		b.RecordSuccess()
		b.RecordFailure()
		b.RecordSuccess()
		b.RecordSuccess()
		s.True(b.IsOpen())
		b.RecordSuccess()
		s.False(b.IsOpen())
	})

	s.Run("reset forces closed", func() {
		b := New("notifier", WithFailureThreshold(1))
		b.RecordFailure()
		b.Reset()
		s.Equal(StateClosed, b.State())
	})
}

func (s *BreakerSuite) TestConcurrentRecording() {
	b := New("notifier", WithFailureThreshold(50))
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.RecordFailure()
		}()
	}
	wg.Wait()
	s.True(b.IsOpen())
}
