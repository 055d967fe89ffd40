package pubsub

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collector struct {
	mu  sync.Mutex
	got []int
}

func (c *collector) add(v int) {
	c.mu.Lock()
	c.got = append(c.got, v)
	c.mu.Unlock()
}

func (c *collector) values() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int(nil), c.got...)
}

func TestBus_FanOutToAllSubscribers(t *testing.T) {
	b := New[int]()
	var a, c collector
	subA := b.Subscribe(a.add)
	subC := b.Subscribe(c.add)

	for i := 0; i < 10; i++ {
		assert.Equal(t, 2, b.Publish(i))
	}
	subA.Close()
	subC.Close()
	<-subA.Done()
	<-subC.Done()

	want := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	assert.Equal(t, want, a.values())
	assert.Equal(t, want, c.values())
}

func TestBus_PublishDoesNotBlockOnSlowSubscriber(t *testing.T) {
	b := New[int]()
	release := make(chan struct{})
	sub := b.Subscribe(func(int) { <-release })

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			b.Publish(i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
	close(release)
	sub.Close()
	<-sub.Done()
}

func TestBus_UnsubscribedReceivesNothingNew(t *testing.T) {
	b := New[int]()
	var c collector
	sub := b.Subscribe(c.add)

	b.Publish(1)
	sub.Close()
	<-sub.Done()
	assert.Equal(t, 0, b.Publish(2))

	assert.Equal(t, []int{1}, c.values())
}

func TestBus_CloseDrainsAndRejectsNewSubscribers(t *testing.T) {
	b := New[int]()
	var c collector
	sub := b.Subscribe(c.add)
	b.Publish(1)
	b.Close()
	<-sub.Done()

	late := b.Subscribe(c.add)
	assert.Equal(t, 0, b.Publish(2))
	<-late.Done()

	require.Equal(t, []int{1}, c.values())
}
