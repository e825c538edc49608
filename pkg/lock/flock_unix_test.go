//go:build unix

package lock

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openHandle(t *testing.T, path string) *os.File {
	t.Helper()
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestFlockTimesOutWhileHeld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	holder := openHandle(t, path)
	waiter := openHandle(t, path)

	require.NoError(t, Flock{}.Lock(context.Background(), holder))
	defer Flock{}.Unlock(holder)

	start := time.Now()
	err := Flock{Timeout: 50 * time.Millisecond, PollInterval: 5 * time.Millisecond}.Lock(context.Background(), waiter)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestFlockHonoursContextDuringBoundedWait(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	holder := openHandle(t, path)
	waiter := openHandle(t, path)

	require.NoError(t, Flock{}.Lock(context.Background(), holder))
	defer Flock{}.Unlock(holder)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Flock{Timeout: time.Minute}.Lock(ctx, waiter)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestFlockAcquiredAfterRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	holder := openHandle(t, path)
	waiter := openHandle(t, path)

	require.NoError(t, Flock{}.Lock(context.Background(), holder))

	acquired := make(chan error, 1)
	go func() {
		acquired <- Flock{}.Lock(context.Background(), waiter)
	}()

	select {
	case <-acquired:
		t.Fatal("lock granted while still held")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, Flock{}.Unlock(holder))
	select {
	case err := <-acquired:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("lock not granted after release")
	}
	require.NoError(t, Flock{}.Unlock(waiter))
}

func TestLockersProvideMutualExclusion(t *testing.T) {
	lockers := map[string]Locker{
		"flock": Flock{},
		"mutex": &Mutex{},
	}

	for name, l := range lockers {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "store.json")
			var inside, maxInside atomic.Int32
			var wg sync.WaitGroup

			for i := 0; i < 16; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
					if !assert.NoError(t, err) {
						return
					}
					defer f.Close()

					if !assert.NoError(t, l.Lock(context.Background(), f)) {
						return
					}
					n := inside.Add(1)
					for {
						m := maxInside.Load()
						if n <= m || maxInside.CompareAndSwap(m, n) {
							break
						}
					}
					time.Sleep(2 * time.Millisecond)
					inside.Add(-1)
					assert.NoError(t, l.Unlock(f))
				}()
			}
			wg.Wait()
			assert.Equal(t, int32(1), maxInside.Load())
		})
	}
}
