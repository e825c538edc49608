//go:build !unix

package lock

import (
	"context"
	"os"
)

// Hosts without flock(2) fall back to a process-wide mutex.
var fallback Mutex

func (l Flock) Lock(ctx context.Context, f *os.File) error {
	return fallback.Lock(ctx, f)
}

func (l Flock) Unlock(f *os.File) error {
	return fallback.Unlock(f)
}
