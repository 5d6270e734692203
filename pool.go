// Copyright 2026 The qpool Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package qpool

import (
	"math"
	"runtime"
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// semaphoreMaxPermits bounds the Pool's counting semaphore well above
// any realistic combination of queue capacity, worker count, and
// shutdown sentinel releases — it must exceed the largest number of
// outstanding tasks the pool will ever observe plus its worker count.
const semaphoreMaxPermits = math.MaxInt32

// State describes where a Pool sits in its Running → Draining →
// Terminated lifecycle.
type State int32

const (
	// StateRunning is the pool's initial state: workers are dequeuing
	// and running tasks normally.
	StateRunning State = iota
	// StateDraining holds from the first successful Shutdown call
	// until the last worker goroutine exits. Submit's behavior during
	// this window is intentionally unspecified (this pool still tries
	// the fast path first, and a task enqueued now may be discarded
	// without running); callers should not rely on it.
	StateDraining
	// StateTerminated holds once every worker goroutine has exited.
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Pool is a bounded worker pool: a fixed number of worker goroutines
// draining a shared MPMC queue, woken on submission (and on shutdown)
// through a counting semaphore.
//
// A Pool must not be copied after first use.
type Pool struct {
	queue      *MPMC[func()]
	sem        *Semaphore
	workers    int
	wg         sync.WaitGroup
	cfg        poolConfig
	shutdownAt atomix.Int32 // 0 == running, CAS to 1 == shutdown requested
	terminated atomix.Bool  // set once every worker has exited
}

// NewPool constructs a pool with the given number of worker goroutines
// and a queue of the given capacity (rounded up to the next power of
// two), then spawns the workers. workers must be at least 1.
func NewPool(workers, queueCapacity int, opts ...PoolOption) *Pool {
	if workers < 1 {
		panic("qpool: NewPool workers must be >= 1")
	}
	cfg := defaultPoolConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	p := &Pool{
		queue:   NewMPMC[func()](queueCapacity),
		sem:     NewSemaphore(semaphoreMaxPermits),
		workers: workers,
		cfg:     cfg,
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.workerLoop()
	}
	return p
}

// Submit hands task to the pool. If the queue has room, task is
// enqueued and a worker is woken to run it (the fast path); Submit
// always returns true in this case. If the queue is full, Submit
// applies the configured full-queue policy — by default, caller-runs:
// task is executed synchronously on the calling goroutine before
// Submit returns, and true is still returned (the task ran, it was
// just not scheduled onto a worker).
//
// While the pool is draining, Submit behaves as it does while running:
// the fast path is tried first, and a task enqueued then may be
// discarded by Shutdown without running. Once the pool has terminated,
// Submit returns false without running task.
func (p *Pool) Submit(task func()) bool {
	if p.terminated.LoadAcquire() {
		return false
	}
	if p.queue.TryEnqueue(task) {
		p.sem.Release(1)
		return true
	}

	switch p.cfg.policy {
	case policySpinYield:
		sw := spin.Wait{}
		for attempt := 0; attempt < p.cfg.spinAttempts; attempt++ {
			if p.queue.TryEnqueue(task) {
				p.sem.Release(1)
				return true
			}
			sw.Once()
		}
	}

	// Caller-runs fallback: also reached when spin-yield exhausts its
	// attempts without finding room.
	p.runTask(task)
	return true
}

// Shutdown requests that the pool stop accepting new work onto its
// workers and blocks until every worker goroutine has exited. It is
// safe to call more than once: only the first call has any effect.
// Tasks still sitting in the queue are discarded without running;
// tasks a worker had already dequeued run to completion first.
func (p *Pool) Shutdown() {
	if !p.shutdownAt.CompareAndSwapAcqRel(0, 1) {
		return // already shut down (or shutting down)
	}
	p.sem.Release(p.workers) // one wake-up permit per worker
	p.wg.Wait()
	p.terminated.StoreRelease(true)
}

// State reports the pool's current lifecycle state.
func (p *Pool) State() State {
	if p.shutdownAt.LoadAcquire() == 0 {
		return StateRunning
	}
	if !p.terminated.LoadAcquire() {
		return StateDraining
	}
	return StateTerminated
}

func (p *Pool) workerLoop() {
	defer p.wg.Done()
	for {
		p.sem.Acquire()

		if p.shutdownAt.LoadAcquire() != 0 {
			return
		}

		sw := spin.Wait{}
		for {
			task, ok := p.queue.TryDequeue()
			if ok {
				p.runTask(task)
				break
			}
			if p.shutdownAt.LoadAcquire() != 0 {
				return
			}
			sw.Once()
		}
	}
}

// runTask executes task, recovering and reporting any panic rather
// than letting it take down the worker goroutine. Task panics are never
// propagated to the pool or to Submit's caller.
func (p *Pool) runTask(task func()) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			p.cfg.panicHandler(r, stack[:n])
		}
	}()
	task()
}
