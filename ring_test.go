// Copyright 2026 The qpool Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package qpool_test

import (
	"sync"
	"testing"

	"github.com/ringwell-go/qpool"
)

func TestSPSCRingFillDrain(t *testing.T) {
	q := qpool.NewSPSCRing[int](4)

	if got := q.Cap(); got != 3 {
		t.Fatalf("Cap: got %d, want 3", got)
	}

	for i := 1; i <= 3; i++ {
		if ok := q.TryPush(i); !ok {
			t.Fatalf("TryPush(%d): want true", i)
		}
	}
	if ok := q.TryPush(4); ok {
		t.Fatalf("TryPush(4) on full ring: want false")
	}

	for i := 1; i <= 3; i++ {
		v, ok := q.TryPop()
		if !ok {
			t.Fatalf("TryPop() at i=%d: want ok", i)
		}
		if v != i {
			t.Fatalf("TryPop() at i=%d: got %d, want %d", i, v, i)
		}
	}
	if _, ok := q.TryPop(); ok {
		t.Fatalf("TryPop() on empty ring: want false")
	}
}

func TestSPSCRingWrapAround(t *testing.T) {
	q := qpool.NewSPSCRing[int](4)

	for i := 1; i <= 4; i++ {
		if ok := q.TryPush(i); !ok {
			t.Fatalf("TryPush(%d): want true", i)
		}
		v, ok := q.TryPop()
		if !ok || v != i {
			t.Fatalf("TryPop() after push %d: got (%d, %v), want (%d, true)", i, v, ok, i)
		}
	}

	if !q.Empty() {
		t.Fatalf("Empty(): want true")
	}
	if got := q.ApproxLen(); got != 0 {
		t.Fatalf("ApproxLen(): got %d, want 0", got)
	}
}

func TestSPSCRingRoundsUpCapacity(t *testing.T) {
	q := qpool.NewSPSCRing[int](3)
	if got := q.Cap(); got != 3 {
		t.Fatalf("Cap: got %d, want 3 (capacity 3 already rounds to 4 slots)", got)
	}
}

func TestSPSCRingPanicsOnTooSmallCapacity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("NewSPSCRing(1): want panic")
		}
	}()
	qpool.NewSPSCRing[int](1)
}

// TestSPSCRingConcurrentFIFO runs one producer and one consumer
// goroutine concurrently and checks that the consumed sequence is
// exactly the prefix of the produced sequence, in order.
func TestSPSCRingConcurrentFIFO(t *testing.T) {
	const n = 200_000
	q := qpool.NewSPSCRing[int](256)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			for !q.TryPush(i) {
				// busy-retry: producer owns tail exclusively
			}
		}
	}()

	got := make([]int, 0, n)
	go func() {
		defer wg.Done()
		for len(got) < n {
			if v, ok := q.TryPop(); ok {
				got = append(got, v)
			}
		}
	}()

	wg.Wait()

	for i, v := range got {
		if v != i {
			t.Fatalf("out of order at index %d: got %d, want %d", i, v, i)
		}
	}
}
