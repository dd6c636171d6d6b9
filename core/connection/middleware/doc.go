// Package middleware provides built-in middleware implementations for the
// backend connection. Each middleware is constructed via a New* function that
// returns a [connection.Middleware] ready to be passed to
// [connection.WithMiddleware].
//
// # Available Middleware
//
//   - [NewRetryMiddleware]: Retries failed backend calls with exponential
//     backoff and jitter. Useful for transient HTTP 429 / 5xx errors.
//
//   - [NewTimeoutMiddleware]: Adds a per-request deadline via
//     context.WithTimeout, ensuring a stalled backend call does not block the
//     caller indefinitely.
//
//   - [NewLoggingMiddleware]: Emits structured slog log entries before and
//     after every backend call, with three verbosity levels (Minimal,
//     Standard, Verbose).
//
// Middlewares execute outermost-first: the first entry passed to
// WithMiddleware is the outermost wrapper, meaning it runs first on the way
// in and last on the way out:
//
//	Timeout (first) → Retry → Logging → backend
package middleware
