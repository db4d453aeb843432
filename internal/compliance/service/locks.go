package service

import (
	"context"
	"hash/fnv"
	"time"

	dErrors "custodian/pkg/domain-errors"
)

// Requests for one subject serialize on a shard chosen by FNV-1a of the
// subject id; different subjects mostly land on different shards.
const numSubjectShards = 128

// defaultLockTimeout bounds how long a request waits for its subject.
const defaultLockTimeout = 5 * time.Second

// subjectLocks is a sharded set of binary semaphores. Channels rather than
// mutexes so a waiter can give up when its context ends.
type subjectLocks struct {
	shards  [numSubjectShards]chan struct{}
	timeout time.Duration
}

func newSubjectLocks(timeout time.Duration) *subjectLocks {
	if timeout <= 0 {
		timeout = defaultLockTimeout
	}
	l := &subjectLocks{timeout: timeout}
	for i := range l.shards {
		l.shards[i] = make(chan struct{}, 1)
	}
	return l
}

// withSubject runs fn while holding subjectID's shard.
func (l *subjectLocks) withSubject(ctx context.Context, subjectID string, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "request aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	shard := l.shards[shardFor(subjectID)]
	select {
	case shard <- struct{}{}:
	case <-ctx.Done():
		return dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "request aborted: subject is busy")
	}
	defer func() { <-shard }()

	// Check again after acquiring the shard
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "request aborted: context cancelled")
	}
	return fn(ctx)
}

func shardFor(subjectID string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(subjectID))
	return h.Sum32() % numSubjectShards
}
