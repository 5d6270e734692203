// Copyright 2026 The qpool Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package qpool_test

import (
	"testing"

	"github.com/ringwell-go/qpool"
)

func BenchmarkSPSCRingPushPop(b *testing.B) {
	q := qpool.NewSPSCRing[int](1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.TryPush(i)
		q.TryPop()
	}
}

func BenchmarkMPMCEnqueueDequeueSingleThread(b *testing.B) {
	q := qpool.NewMPMC[int](1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.TryEnqueue(i)
		q.TryDequeue()
	}
}

func BenchmarkMPMCParallel(b *testing.B) {
	q := qpool.NewMPMC[int](4096)
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if q.TryEnqueue(i) {
				i++
			}
			q.TryDequeue()
		}
	})
}

func BenchmarkPoolSubmit(b *testing.B) {
	p := qpool.NewPool(8, 1024)
	defer p.Shutdown()

	done := make(chan struct{}, b.N)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Submit(func() { done <- struct{}{} })
	}
	for i := 0; i < b.N; i++ {
		<-done
	}
}
