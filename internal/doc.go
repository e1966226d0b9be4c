// Package internal groups helpers that are intentionally private to the
// authentication gateway.
//
// # Sub-packages
//
//   - audit — async event dispatch (Dispatcher + Sink implementations)
//   - rate — sliding-window attempt limiter with memory and Redis stores
//
// # What this package must NOT do
//
//   - Export types reachable from the public API other than through aliases
//     declared at the root.
//   - Be imported by any package outside this module.
package internal
