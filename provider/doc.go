// Package provider abstracts the external identity service that verifies
// credentials and owns sessions. The core never inspects provider-internal
// token formats; it branches on presence/absence of sessions and on the
// tagged [Error] kinds this package produces.
//
// # Architecture boundaries
//
// [Client] is the only seam between authgate and the identity provider.
// [HTTPClient] implements it against a GoTrue-compatible HTTP API; tests and
// the example binary substitute in-memory fakes.
//
// # What this package must NOT do
//
//   - Leak raw provider wording upward: every failure is classified into an
//     [ErrorKind] and the original text is kept only in [Error].Detail for
//     operator logs.
//   - Retry failed calls.
package provider
