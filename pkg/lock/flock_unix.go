//go:build unix

package lock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

func (l Flock) Lock(ctx context.Context, f *os.File) error {
	fd := int(f.Fd())
	if l.Timeout <= 0 {
		for {
			err := unix.Flock(fd, unix.LOCK_EX)
			if err == nil {
				return nil
			}
			if !errors.Is(err, unix.EINTR) {
				return fmt.Errorf("flock %s: %w", f.Name(), err)
			}
		}
	}

	deadline := time.NewTimer(l.Timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(l.pollInterval())
	defer ticker.Stop()

	for {
		err := unix.Flock(fd, unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			return nil
		}
		if !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, unix.EINTR) {
			return fmt.Errorf("flock %s: %w", f.Name(), err)
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("flock %s: %w", f.Name(), ctx.Err())
		case <-deadline.C:
			return fmt.Errorf("flock %s after %s: %w", f.Name(), l.Timeout, ErrTimeout)
		case <-ticker.C:
		}
	}
}

func (l Flock) Unlock(f *os.File) error {
	if err := unix.Flock(int(f.Fd()), unix.LOCK_UN); err != nil {
		return fmt.Errorf("unlock %s: %w", f.Name(), err)
	}
	return nil
}
