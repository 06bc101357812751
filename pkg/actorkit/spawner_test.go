package actorkit

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSemaphoreSpawnerBoundsConcurrency(t *testing.T) {
	sp := NewSemaphoreSpawner(1)

	var running atomic.Int32
	var maxRunning atomic.Int32
	done := make(chan struct{}, 2)

	work := func() {
		n := running.Add(1)
		for {
			cur := maxRunning.Load()
			if n <= cur || maxRunning.CompareAndSwap(cur, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		running.Add(-1)
		done <- struct{}{}
	}

	sp.Spawn(work)
	sp.Spawn(work)

	<-done
	<-done

	assert.Equal(t, int32(1), maxRunning.Load())
}

func TestGoSpawnerRunsConcurrently(t *testing.T) {
	sp := GoSpawner{}

	var running atomic.Int32
	var sawBoth atomic.Bool
	done := make(chan struct{}, 2)
	release := make(chan struct{})

	work := func() {
		n := running.Add(1)
		if n == 2 {
			sawBoth.Store(true)
		}
		<-release
		running.Add(-1)
		done <- struct{}{}
	}

	sp.Spawn(work)
	sp.Spawn(work)

	time.Sleep(10 * time.Millisecond)
	close(release)
	<-done
	<-done

	assert.True(t, sawBoth.Load())
}
