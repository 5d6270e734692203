// Copyright 2026 The qpool Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package qpool

import "code.hybscloud.com/atomix"

// MPMC is a lock-free bounded queue safe for any number of concurrent
// producer and consumer goroutines.
//
// Each slot carries its own sequence number (the Vyukov ticketed-slot
// design): a producer claims a ticket with a single fetch-and-add on
// tail, inspects the slot that ticket maps to, and either publishes
// into it (if the slot's sequence matches the ticket) or abandons the
// ticket (if it doesn't — the queue is full from this producer's
// point of view). Dequeue is the mirror image on head. Neither side
// retries internally: an abandoned ticket is abandoned for good, and
// since tail/head still advanced past it, any consumer (producer)
// ticket matched to it will also observe a mismatch and abandon in
// turn. Callers that need "retry until it fits" semantics build that
// on top — under its default policy the worker pool in this package
// does not retry a failed TryEnqueue; it runs the task on the caller
// instead (WithSpinYield retries a bounded number of times first).
type MPMC[T any] struct {
	_        pad
	tail     atomix.Uint64 // producer ticketer
	_        pad
	head     atomix.Uint64 // consumer ticketer
	_        pad
	buf      []mpmcSlot[T]
	mask     uint64
	capacity uint64
}

type mpmcSlot[T any] struct {
	seq  atomix.Uint64
	data T
	_    padShort
}

// NewMPMC creates an MPMC queue whose capacity rounds up to the next
// power of two (minimum 2). Slot i is initialized with seq == i, so
// that the first producer ticket to visit it (ticket i) finds it
// immediately free.
func NewMPMC[T any](capacity int) *MPMC[T] {
	if capacity < 2 {
		panic("qpool: MPMC capacity must be >= 2")
	}
	n := uint64(roundToPow2(capacity))
	q := &MPMC[T]{
		buf:      make([]mpmcSlot[T], n),
		mask:     n - 1,
		capacity: n,
	}
	for i := uint64(0); i < n; i++ {
		q.buf[i].seq.StoreRelaxed(i)
	}
	return q
}

// TryEnqueue claims the next producer ticket and attempts to publish v
// into the slot it maps to. Returns false if that slot isn't free yet
// (the queue is full from this ticket's point of view); the ticket is
// consumed either way and is not retried.
func (q *MPMC[T]) TryEnqueue(v T) bool {
	k := q.tail.AddAcqRel(1) - 1
	slot := &q.buf[k&q.mask]
	seq := slot.seq.LoadAcquire()
	if seq != k {
		return false
	}
	slot.data = v
	slot.seq.StoreRelease(k + 1)
	return true
}

// TryDequeue claims the next consumer ticket and attempts to take the
// value out of the slot it maps to. Returns (zero-value, false) if
// that slot isn't published yet (empty from this ticket's point of
// view); the ticket is consumed either way and is not retried.
func (q *MPMC[T]) TryDequeue() (T, bool) {
	k := q.head.AddAcqRel(1) - 1
	slot := &q.buf[k&q.mask]
	seq := slot.seq.LoadAcquire()
	if seq != k+1 {
		var zero T
		return zero, false
	}
	v := slot.data
	var zero T
	slot.data = zero // drop the reference so the GC can reclaim it
	slot.seq.StoreRelease(k + q.capacity)
	return v, true
}

// Empty is a racy observer: true means the queue looked empty at the
// instant head and tail were read, which may no longer hold by the
// time the caller acts on it. It reports ApproxLen() <= 0, so
// abandoned enqueue tickets can make it report false for a queue that
// holds no items.
func (q *MPMC[T]) Empty() bool {
	return q.ApproxLen() <= 0
}

// ApproxLen approximates the number of items currently in the queue as
// tail minus head (0 if head is ahead). Every TryEnqueue and TryDequeue
// call advances its counter, including calls that return false, so
// abandoned tickets are counted too and the value can differ from the
// number of stored items even under quiescence: four successful and
// two failed TryEnqueue calls on an empty queue of capacity 4 make it
// report 6. Under concurrent access it may additionally be off by up
// to the number of producers and consumers currently mid-operation, in
// either direction — head and tail are read independently with no
// shared snapshot.
func (q *MPMC[T]) ApproxLen() int {
	tail := q.tail.LoadAcquire()
	head := q.head.LoadAcquire()
	if tail < head {
		return 0
	}
	return int(tail - head)
}

// Cap returns the queue's capacity.
func (q *MPMC[T]) Cap() int {
	return int(q.capacity)
}
