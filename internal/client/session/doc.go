// Package session is the authenticated HTTP client of the surveillance
// backend.
//
// # Overview
//
// A Client owns one credential pair (access + refresh token). It mirrors the
// pair to a tokenstore.Store so a restarted process picks the session up
// again, attaches "Authorization: Bearer <access>" to every request while an
// access token is held, and recovers from an expired access token by
// refreshing it once and resending the request once.
//
// Refresh & retry
//
//  1. Send the request with the current access token (no header without one).
//  2. On 401 with a refresh token present, POST it to the refresh path.
//  3. On a successful refresh, store the new access token and resend once.
//     Whatever the resend returns is final, even another 401.
//  4. On 401 without a refresh token, or when the refresh is rejected, both
//     tokens are cleared and an *AuthenticationError is returned.
//
// The refresh token is never rotated; only the access token is replaced.
//
// # Error Handling
//
// Failures are typed and can be matched with errors.As:
// *AuthenticationError (also errors.Is ErrUnauthorized), *APIError,
// *RefreshError and *TransportError.
//
// Concurrency & Contexts
//
// A Client is safe for concurrent use. The credential pair is guarded by a
// mutex and no lock is held across network I/O, so two requests that both
// receive 401 refresh independently and the last refresh wins. The client
// defines no timeouts of its own; callers bound requests with their context.
package session
