// Package lock provides scoped exclusive access to a store file.
//
// A Locker is held for the whole read-modify-write cycle of an append. Flock
// is backed by the host's advisory file locks and therefore serializes
// independent processes as well as goroutines. Mutex only serializes callers
// that share the same value and is meant for single-process deployments.
package lock

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"
)

// ErrTimeout is returned when a bounded wait for the lock expires.
var ErrTimeout = errors.New("timed out waiting for exclusive lock")

// Locker grants exclusive access to an open store file.
type Locker interface {
	Lock(ctx context.Context, f *os.File) error
	Unlock(f *os.File) error
}

const defaultPollInterval = 10 * time.Millisecond

// Flock locks the file with an exclusive advisory lock.
//
// With a zero Timeout Lock blocks until the lock is granted and ignores ctx.
// With a positive Timeout it retries a non-blocking attempt every
// PollInterval until the lock is granted, the timeout passes or ctx is done.
type Flock struct {
	Timeout      time.Duration
	PollInterval time.Duration
}

func (l Flock) pollInterval() time.Duration {
	if l.PollInterval <= 0 {
		return defaultPollInterval
	}
	return l.PollInterval
}

// Mutex serializes callers within one process. The file argument is ignored.
type Mutex struct {
	mu sync.Mutex
}

func (m *Mutex) Lock(_ context.Context, _ *os.File) error {
	m.mu.Lock()
	return nil
}

func (m *Mutex) Unlock(_ *os.File) error {
	m.mu.Unlock()
	return nil
}
