// Package middleware exposes the HTTP request gate built on top of the
// authentication engine.
//
// # Gate
//
// [Gate.Wrap] runs on every request. It stamps the response with the
// application's security headers, keeps the session fresh by rotating the
// token cookies when the access token has expired, classifies the path as
// public or protected, and redirects anonymous callers of protected paths to
// the login page with a redirect parameter carrying the original destination.
//
// # Architecture boundaries
//
// This package translates HTTP semantics (cookies, headers, redirects) into
// engine calls. It does NOT implement authentication logic itself; session
// and principal decisions are delegated to the engine.
//
// # What this package must NOT do
//
//   - Parse or verify tokens directly (delegates to the engine).
//   - Talk to the identity provider.
//   - Gate individual poll permissions; it only separates anonymous from
//     authenticated traffic.
package middleware
