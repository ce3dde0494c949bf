// Package backdrop provides an authenticated HTTP client for a Backdrop
// CMS admin API.
//
// # Overview
//
// The package owns the whole client-side contract: normalizing a
// user-entered site address into a base URL, establishing a session via
// the login endpoint, attaching the session cookie (and, for bare-IP
// sites, a virtual-host Host header) to every request, and decoding the
// fixed {success, message, data} response envelope into typed results.
//
// # Address Normalization
//
// NormalizeAddress accepts whatever an operator types:
//
//   - "example.com"            → https://example.com
//   - "http://example.com"     → http://example.com (explicit scheme kept)
//   - "192.168.30.85"          → http://192.168.30.85 + Host override
//   - "https://192.168.30.85"  → http://192.168.30.85 (forced downgrade;
//     bare-IP servers present self-signed certificates)
//
// When the host is a literal IPv4 address the real virtual host is
// recovered from the input where possible, otherwise a configured
// compatibility hostname is used.
//
// # Session Lifecycle
//
//	Unauthenticated → Login → Authenticated → Logout → Unauthenticated
//
// Login POSTs form credentials and scans the response (and the cookie jar
// as a fallback) for a cookie whose name starts with "SESS". There are no
// intermediate states: either the session is fully established or the
// client stays unauthenticated. Only Login and Logout mutate the session;
// every other method reads it under a lock, so an in-flight request can
// never observe a half-updated session.
//
// # Request Pipeline
//
// Every feature caller goes through the same pipeline: join the fixed
// /api/admin/ prefix with the endpoint path against the session base URL,
// attach headers and cookie, execute, validate the status code, and hand
// the raw bytes to the envelope decoder. Non-2xx responses are mapped to
// *ServerError when the body carries the structured {error, message, code}
// shape, and to *HTTPError otherwise.
//
// An atomic counter tracks outstanding requests; InFlight is true while
// any call is running, so overlapping calls cannot re-enable the UI early.
//
// # Envelope Decoding
//
// Decoding is strict and fail-closed: unknown fields anywhere in the
// envelope or payload surface as ErrInvalidResponse rather than being
// silently dropped, and so do trailing bytes after the envelope.
// decodeEnvelope is for callers that require data, decodeOptional for
// operations like cron runs where null data means "done, nothing to
// report". Decoding is a pure transform: the same bytes always decode to
// the same result.
//
// # Error Taxonomy
//
//   - ErrInvalidAddress: the site address could not be normalized
//   - ErrLoginFailed: no session cookie came back, whatever the status
//   - ErrNotAuthenticated: a call was made before login; no I/O happened
//   - ErrInvalidResponse: the response violated the envelope schema
//   - *HTTPError: non-2xx status with no decodable error body
//   - *ServerError: the server reported a failure in its own words
//
// Every error is terminal for the triggering call. Nothing in this package
// retries, caches, or paginates on its own; list callers pass page and
// limit through (clamped to 1..100) and hand back the server's Page.
package backdrop
