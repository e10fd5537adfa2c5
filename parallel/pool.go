// Package parallel runs closures on a fixed number of goroutines.
package parallel

import (
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"
)

type (
	WorkerFunc func(func())
	WaitFunc   func(done bool)
	CancelFunc func()
)

// Pool hands work to its workers through Do. With a single worker Do runs the
// closure on the calling goroutine. Wait(true) stops accepting work and waits
// for the queue to drain; Do must not be called after that.
type Pool struct {
	wg      sync.WaitGroup
	workers int
	Do      WorkerFunc
	Wait    WaitFunc
	Cancel  CancelFunc
}

func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		workers: numWorkers,
		Do:      run,
		Wait:    func(bool) {},
		Cancel:  func() {},
	}

	if numWorkers > 1 {
		workChan := make(chan func(), numWorkers)

		for range numWorkers {
			pool.wg.Go(func() {
				for f := range workChan {
					run(f)
				}
			})
		}

		pool.Do = func(f func()) {
			workChan <- f
		}

		pool.Wait = func(done bool) {
			if done {
				pool.Cancel()
			}
			pool.wg.Wait()
		}
		pool.Cancel = sync.OnceFunc(func() { close(workChan) })
	}

	return pool
}

func (p *Pool) Workers() int {
	return p.workers
}

// run calls f and logs a panic instead of letting it take the process down.
func run(f func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("task panicked", "panic", r, "stack", string(debug.Stack()))
		}
	}()
	f()
}
