package queue

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_FIFO(t *testing.T) {
	q := New[string]()

	for _, s := range []string{"A", "B", "C"} {
		require.True(t, q.Enqueue(s))
	}

	for _, want := range []string{"A", "B", "C"} {
		got, ok := q.TryDequeue()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := q.TryDequeue()
	assert.False(t, ok, "dequeue from empty queue should return false")
}

func TestQueue_EnqueueAfterClose(t *testing.T) {
	q := New[int]()
	q.Close()

	assert.False(t, q.Enqueue(1))
	assert.True(t, q.Drained())
}

func TestQueue_CloseKeepsQueuedItems(t *testing.T) {
	q := New[int]()
	q.Enqueue(1)
	q.Close()

	assert.False(t, q.Drained())
	v, ok := q.TryDequeue()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.True(t, q.Drained())
}

func TestQueue_WaitSignals(t *testing.T) {
	q := New[int]()
	q.Enqueue(1)

	select {
	case <-q.Wait():
	case <-time.After(time.Second):
		t.Fatal("expected signal after enqueue")
	}
}

func TestQueue_CloseIdempotent(t *testing.T) {
	q := New[int]()
	q.Close()
	q.Close()
	assert.True(t, q.Drained())
}

func TestWorker_HandlesInOrder(t *testing.T) {
	var mu sync.Mutex
	var got []int

	w := NewWorker(func(v int) {
		mu.Lock()
		got = append(got, v)
		mu.Unlock()
	})

	for i := 0; i < 100; i++ {
		require.True(t, w.Submit(i))
	}
	w.Close()

	select {
	case <-w.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not drain")
	}

	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestWorker_SingleConcurrency(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32

	w := NewWorker(func(int) {
		n := inFlight.Add(1)
		for {
			m := maxInFlight.Load()
			if n <= m || maxInFlight.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		inFlight.Add(-1)
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				w.Submit(i*10 + j)
			}
		}(i)
	}
	wg.Wait()
	w.Close()
	<-w.Done()

	assert.Equal(t, int32(1), maxInFlight.Load())
}

func TestWorker_SubmitAfterClose(t *testing.T) {
	w := NewWorker(func(int) {})
	w.Close()
	<-w.Done()
	assert.False(t, w.Submit(1))
}
