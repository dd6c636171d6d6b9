package middleware

import "errors"

// ErrRetryExhausted is returned by the retry middleware when all retry
// attempts have been consumed without a successful response from the backend.
// The error is wrapped with the last underlying error so callers can use
// [errors.Is] / [errors.As] to inspect the root cause.
var ErrRetryExhausted = errors.New("openeo: all retry attempts exhausted")
