// Copyright 2026 The qpool Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package qpool provides wait-free and lock-free bounded queues for
// shared-memory task dispatch, plus a bounded worker pool built on top
// of them.
//
// Three building blocks:
//
//   - SPSCRing: a wait-free ring buffer for exactly one producer and
//     one consumer goroutine.
//   - MPMC: a lock-free bounded queue for any number of producer and
//     consumer goroutines, using per-slot sequence numbers to hand off
//     slots without a CAS-retry loop.
//   - Semaphore: a counting semaphore used to sleep idle workers and
//     wake them on submission.
//
// Pool wires an MPMC queue and a Semaphore into a fixed set of worker
// goroutines:
//
//	p := qpool.NewPool(16, 256)
//	defer p.Shutdown()
//
//	p.Submit(func() {
//	    process(job)
//	})
//
// # Queue contracts
//
// Both queue types expose non-blocking try-operations that report
// success as a boolean rather than an error; "full" and "empty" are
// normal control-flow outcomes, not failures:
//
//	q := qpool.NewMPMC[int](1024)
//
//	if ok := q.TryEnqueue(42); !ok {
//	    // queue full, caller decides what to do
//	}
//
//	v, ok := q.TryDequeue()
//	if !ok {
//	    // queue empty
//	}
//
// Capacity always rounds up to the next power of two; effective SPSC
// capacity is one less than the slot count (the classic "one slot
// wasted" convention that distinguishes full from empty without a
// separate size counter).
//
// # Worker pool overflow policy
//
// Submit's default full-queue policy is caller-runs: when the queue has
// no room, the task executes synchronously on the submitting goroutine
// instead of blocking. This gives natural backpressure without ever
// blocking Submit, but a task that itself calls Submit on the same pool
// can recurse arbitrarily deep under sustained overflow — don't do
// that. WithSpinYield configures an alternative policy that retries the
// enqueue a bounded number of times, yielding between attempts, before
// falling back to caller-runs.
//
// # Shutdown
//
// Shutdown is safe to call more than once (only the first call has any
// effect) and blocks until every worker goroutine has exited. Tasks
// still sitting in the queue when Shutdown runs are discarded without
// executing; tasks already dequeued by a worker run to completion
// before that worker exits.
//
// # Panics in tasks
//
// A task that panics does not crash the pool or the worker: the worker
// loop recovers the panic, reports it through the pool's PanicHandler
// (a no-op by default), and moves on to the next task.
package qpool
