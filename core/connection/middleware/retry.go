package middleware

import (
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/openeo/openeo-go/core/connection"
)

// RetryConfig holds the tuning parameters for the retry middleware. Zero
// values are replaced with the defaults documented below when
// NewRetryMiddleware is called.
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts after the first
	// failure. A value of 3 means the backend is called at most 4 times
	// (1 original + 3 retries). Default: 3.
	MaxRetries int

	// InitialBackoff is the wait duration before the first retry attempt.
	// Default: 1s.
	InitialBackoff time.Duration

	// MaxBackoff caps the computed backoff so it never exceeds this value.
	// Default: 30s.
	MaxBackoff time.Duration

	// BackoffFactor is the exponential growth multiplier applied to
	// InitialBackoff on successive retries
	// (backoff = min(InitialBackoff * BackoffFactor^attempt, MaxBackoff)).
	// Default: 2.0.
	BackoffFactor float64

	// JitterFraction adds random noise to the computed backoff in the range
	// [0, JitterFraction * backoff] to avoid thundering-herd problems.
	// Default: 0.1 (10% jitter).
	JitterFraction float64

	// RetryableFunc decides whether a response or transport error should
	// trigger a retry. The default retries transport errors and HTTP status
	// codes 429, 500, 502, 503, and 529.
	RetryableFunc func(res *http.Response, err error) bool
}

// defaultRetryableFunc retries transport errors and transient HTTP statuses.
func defaultRetryableFunc(res *http.Response, err error) bool {
	if err != nil {
		return true
	}
	switch res.StatusCode {
	case http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, 529:
		return true
	}
	return false
}

// applyRetryDefaults fills in zero-valued fields in config.
func applyRetryDefaults(config *RetryConfig) {
	if config.MaxRetries == 0 {
		config.MaxRetries = 3
	}
	if config.InitialBackoff == 0 {
		config.InitialBackoff = time.Second
	}
	if config.MaxBackoff == 0 {
		config.MaxBackoff = 30 * time.Second
	}
	if config.BackoffFactor == 0 {
		config.BackoffFactor = 2.0
	}
	if config.JitterFraction == 0 {
		config.JitterFraction = 0.1
	}
	if config.RetryableFunc == nil {
		config.RetryableFunc = defaultRetryableFunc
	}
}

// computeBackoff returns the backoff duration for the given attempt
// (0-indexed): min(InitialBackoff * BackoffFactor^attempt, MaxBackoff) + jitter.
func computeBackoff(config RetryConfig, attempt int) time.Duration {
	base := float64(config.InitialBackoff) * math.Pow(config.BackoffFactor, float64(attempt))
	if base > float64(config.MaxBackoff) {
		base = float64(config.MaxBackoff)
	}

	jitter := base * config.JitterFraction * rand.Float64() //nolint:gosec // non-cryptographic jitter is intentional
	return time.Duration(base + jitter)
}

// NewRetryMiddleware constructs a middleware that retries failed backend
// requests according to the supplied RetryConfig. Zero-valued fields in
// config are replaced with safe defaults (see RetryConfig documentation).
//
// Requests whose body cannot be replayed (GetBody is nil on a request with a
// body) are never retried. On exhaustion the returned error wraps both
// [ErrRetryExhausted] and the last underlying error, allowing callers to
// unwrap either.
func NewRetryMiddleware(config RetryConfig) connection.Middleware {
	applyRetryDefaults(&config)

	return func(next connection.SendFunc) connection.SendFunc {
		return func(req *http.Request) (*http.Response, error) {
			if req.Body != nil && req.GetBody == nil {
				return next(req)
			}

			var lastErr error

			for attempt := 0; attempt <= config.MaxRetries; attempt++ {
				if attempt > 0 {
					// Respect context cancellation between retries.
					backoff := computeBackoff(config, attempt-1)
					select {
					case <-req.Context().Done():
						return nil, req.Context().Err()
					case <-time.After(backoff):
					}
				}

				res, err := next(cloneRequest(req))
				if err == nil && !config.RetryableFunc(res, nil) {
					return res, nil
				}

				if err != nil {
					lastErr = err
					if !config.RetryableFunc(nil, err) {
						return nil, err
					}
					continue
				}

				// Retryable status: drain the body so the connection can be
				// reused, then remember the status as the failure cause.
				lastErr = fmt.Errorf("openeo: backend returned status %d", res.StatusCode)
				_, _ = io.Copy(io.Discard, res.Body)
				_ = res.Body.Close()
			}

			return nil, fmt.Errorf("%w after %d retries: %w", ErrRetryExhausted, config.MaxRetries, lastErr)
		}
	}
}

// cloneRequest returns a replayable copy of the request with a fresh body.
func cloneRequest(req *http.Request) *http.Request {
	clone := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err == nil {
			clone.Body = body
		}
	}
	return clone
}
