// Package authgate is the access-control core of the alx-polly application:
// it decides who may register, sign in, hold a session, and reach protected
// pages. Credential verification itself is delegated to an external identity
// provider; authgate composes input validation, per-caller rate limiting, and
// provider error translation into four user-facing actions (login, register,
// logout, resend-verification) plus a request-gating middleware.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// authgate is the public surface. It exposes [Engine], [Builder], [Config],
// and value types (LoginResult, RegisterResult, Principal). Rate limiting and
// audit dispatch live under internal/ and are never exported; the identity
// provider abstraction lives in the provider subpackage; HTTP enforcement
// lives in the middleware subpackage.
//
// # What this package must NOT do
//
//   - Hash, store, or otherwise handle password material beyond passing the
//     plaintext to the identity provider over the injected client.
//   - Surface raw provider error text to callers. Every failure is translated
//     into the closed vocabulary in errors.go.
//   - Retry provider calls. Recovery is always user-initiated.
package authgate
