package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	km := NewKeyedMutex()
	var counter, max, active int
	var mu sync.Mutex

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := km.Lock(context.Background(), "class-1")
			require.NoError(t, err)
			defer release()

			mu.Lock()
			active++
			if active > max {
				max = active
			}
			counter++
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Equal(t, 32, counter)
	require.Equal(t, 1, max)
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	km := NewKeyedMutex()

	releaseA, err := km.Lock(context.Background(), "class-a")
	require.NoError(t, err)
	defer releaseA()

	done := make(chan struct{})
	go func() {
		releaseB, err := km.Lock(context.Background(), "class-b")
		require.NoError(t, err)
		releaseB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("lock on an unrelated key blocked")
	}
}

func TestKeyedMutexContextCancelled(t *testing.T) {
	km := NewKeyedMutex()

	release, err := km.Lock(context.Background(), "class-1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = km.Lock(ctx, "class-1")
	require.ErrorIs(t, err, context.DeadlineExceeded)

	release()

	// The key must be usable again after the failed waiter gave up.
	release2, err := km.Lock(context.Background(), "class-1")
	require.NoError(t, err)
	release2()
}
