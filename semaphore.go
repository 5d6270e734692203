// Copyright 2026 The qpool Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package qpool

// Semaphore is a counting semaphore used to put idle workers to sleep
// and wake them when work (or a shutdown request) becomes available.
// Permits start at zero; Release adds permits and Acquire blocks until
// one is available, then consumes it. Wake order is not FIFO and is
// not required to be.
//
// Realized as a buffered channel of empty structs: Release sends,
// Acquire receives. A channel of a zero-size element type carries no
// per-slot storage, so a large buffer costs essentially nothing beyond
// its counters.
//
// The zero value is not usable; construct with NewSemaphore.
type Semaphore struct {
	permits chan struct{}
}

// NewSemaphore creates a semaphore starting at zero permits. max
// bounds the permit count the semaphore will ever need to hold; pass a
// value comfortably larger than the largest number of outstanding
// tasks the caller expects plus its worker count — Release blocks if
// the permit count would exceed max.
func NewSemaphore(max int64) *Semaphore {
	if max < 1 {
		panic("qpool: NewSemaphore max must be >= 1")
	}
	return &Semaphore{permits: make(chan struct{}, max)}
}

// Acquire blocks until a permit is available, then consumes it. There
// is no cancellation or timeout at this layer.
func (s *Semaphore) Acquire() {
	<-s.permits
}

// Release adds n permits, waking up to n waiters.
func (s *Semaphore) Release(n int) {
	for i := 0; i < n; i++ {
		s.permits <- struct{}{}
	}
}
