// Copyright 2026 The qpool Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package qpool

import "code.hybscloud.com/atomix"

// SPSCRing is a wait-free ring buffer for exactly one producer
// goroutine and exactly one consumer goroutine. Calling TryPush from
// more than one goroutine, or TryPop from more than one goroutine, is
// undefined behavior — SPSCRing enforces no such constraint at
// runtime.
//
// Based on Lamport's ring buffer: the producer owns tail and only
// reads head, the consumer owns head and only reads tail, so each side
// can use a relaxed load of its own counter and only needs an acquire
// load of the counter it doesn't own. The release store on the way out
// publishes the slot write (push) or the slot's vacancy (pop) to the
// other side.
type SPSCRing[T any] struct {
	_    pad
	head atomix.Uint64 // consumer-owned writer, producer-reader
	_    pad
	tail atomix.Uint64 // producer-owned writer, consumer-reader
	_    pad
	buf  []T
	mask uint64
}

// NewSPSCRing creates a ring of the given capacity, rounded up to the
// next power of two (minimum 2). Effective capacity — the maximum
// number of unmatched successful pushes outstanding at once — is one
// less than the slot count, so that head == tail can mean "empty"
// without a separate size counter.
func NewSPSCRing[T any](capacity int) *SPSCRing[T] {
	if capacity < 2 {
		panic("qpool: SPSCRing capacity must be >= 2")
	}
	n := uint64(roundToPow2(capacity))
	return &SPSCRing[T]{
		buf:  make([]T, n),
		mask: n - 1,
	}
}

// TryPush appends v to the ring (producer only). Returns false if the
// ring is full.
func (q *SPSCRing[T]) TryPush(v T) bool {
	tail := q.tail.LoadRelaxed()
	next := (tail + 1) & q.mask
	if next == q.head.LoadAcquire() {
		return false
	}
	q.buf[tail&q.mask] = v
	q.tail.StoreRelease(next)
	return true
}

// TryPop removes and returns the oldest value (consumer only).
// Returns (zero-value, false) if the ring is empty.
func (q *SPSCRing[T]) TryPop() (T, bool) {
	head := q.head.LoadRelaxed()
	if head == q.tail.LoadAcquire() {
		var zero T
		return zero, false
	}
	v := q.buf[head&q.mask]
	var zero T
	q.buf[head&q.mask] = zero // drop the reference so the GC can reclaim it
	q.head.StoreRelease((head + 1) & q.mask)
	return v, true
}

// Empty reports whether the ring has no pending values. Exact under
// quiescence (no concurrent push/pop in flight); otherwise it reflects
// a snapshot that may be stale by the time the caller observes it.
func (q *SPSCRing[T]) Empty() bool {
	return q.head.LoadAcquire() == q.tail.LoadAcquire()
}

// ApproxLen returns an approximation of the number of pending values.
// Exact under quiescence; otherwise bounded but possibly stale, since
// head and tail are read independently with no shared snapshot.
func (q *SPSCRing[T]) ApproxLen() int {
	tail := q.tail.LoadAcquire()
	head := q.head.LoadAcquire()
	return int((tail - head) & q.mask)
}

// Cap returns the ring's effective capacity: the number of slots minus
// one.
func (q *SPSCRing[T]) Cap() int {
	return int(q.mask)
}
