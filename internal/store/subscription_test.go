package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGateDeliversUntilClosed(t *testing.T) {
	g := &gate{}
	var count int

	g.deliver(func() { count++ })
	g.deliver(func() { count++ })
	assert.Equal(t, 2, count)

	g.close()
	g.deliver(func() { count++ })
	assert.Equal(t, 2, count, "no delivery may run after close")
}

func TestGateCloseWaitsForInflightDelivery(t *testing.T) {
	g := &gate{}
	entered := make(chan struct{})
	release := make(chan struct{})
	var delivered bool

	go g.deliver(func() {
		close(entered)
		<-release
		delivered = true
	})

	<-entered
	closed := make(chan struct{})
	go func() {
		g.close()
		close(closed)
	}()

	select {
	case <-closed:
		t.Fatal("close returned while a delivery was in flight")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	<-closed
	assert.True(t, delivered)
}

func TestGateConcurrentDeliveriesAreSerialized(t *testing.T) {
	g := &gate{}
	var active, maxActive int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.deliver(func() {
				mu.Lock()
				active++
				if active > maxActive {
					maxActive = active
				}
				mu.Unlock()
				time.Sleep(time.Millisecond)
				mu.Lock()
				active--
				mu.Unlock()
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxActive, "deliveries must not overlap")
}
