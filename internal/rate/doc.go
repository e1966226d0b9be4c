// Package rate implements the sliding-window attempt limiter that guards the
// login and register flows against brute-force and signup-spam traffic.
//
// # Window semantics
//
// Every Check call records one attempt. The first attempt for a key opens a
// window; attempts inside the window increment a counter; the first attempt at
// or past the window boundary resets the counter to one and opens a fresh
// window. A key is blocked while its counter exceeds the budget, and unblocks
// on its own when the window expires. Clear removes a key immediately, which
// the engine does after a successful attempt.
//
// Counting is attempt-based, not failure-based: a blocked caller who keeps
// retrying keeps the window pressure up.
//
// # Stores
//
// State lives behind the [Store] interface. [MemoryStore] is the default for
// single-process deployments and owns a background sweep that drops idle keys.
// [RedisStore] shares counters across replicas using INCR with a window TTL.
//
// # What this package must NOT do
//
//   - Decide which operations are limited or what the budgets are.
//   - Emit audit events or metrics; the engine observes decisions itself.
package rate
