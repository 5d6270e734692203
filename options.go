// Copyright 2026 The qpool Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package qpool

// PanicHandler is invoked when a task submitted to a Pool panics.
// recovered is the value passed to panic; stack is the goroutine stack
// captured at the moment of recovery. The default PanicHandler is a
// no-op: the core never logs on the caller's behalf — a task panic is a
// user error, not a library failure, so it's surfaced to whichever
// handler the caller installs rather than written to a log the core
// chose.
type PanicHandler func(recovered any, stack []byte)

type fullQueuePolicy int

const (
	policyCallerRuns fullQueuePolicy = iota
	policySpinYield
)

type poolConfig struct {
	policy       fullQueuePolicy
	spinAttempts int
	panicHandler PanicHandler
}

func defaultPoolConfig() poolConfig {
	return poolConfig{
		policy:       policyCallerRuns,
		panicHandler: func(any, []byte) {},
	}
}

// PoolOption configures a Pool at construction time.
type PoolOption func(*poolConfig)

// WithCallerRuns selects the default full-queue policy: a submission
// that can't be enqueued runs synchronously on the submitting
// goroutine. This is the default even without specifying it explicitly
// — it exists so callers can name the policy they want at a call site.
func WithCallerRuns() PoolOption {
	return func(c *poolConfig) { c.policy = policyCallerRuns }
}

// WithSpinYield selects the alternative full-queue policy: Submit
// spins (yielding between attempts) trying to enqueue for up to
// attempts tries before falling back to caller-runs. It trades
// Submit's non-blocking guarantee for a chance at avoiding caller-runs'
// stack-growth risk when a task resubmits to its own pool.
func WithSpinYield(attempts int) PoolOption {
	if attempts < 1 {
		panic("qpool: WithSpinYield attempts must be >= 1")
	}
	return func(c *poolConfig) {
		c.policy = policySpinYield
		c.spinAttempts = attempts
	}
}

// WithPanicHandler installs h as the Pool's PanicHandler, replacing
// the default no-op.
func WithPanicHandler(h PanicHandler) PoolOption {
	if h == nil {
		panic("qpool: WithPanicHandler handler must not be nil")
	}
	return func(c *poolConfig) { c.panicHandler = h }
}
