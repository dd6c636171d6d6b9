package middleware

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/openeo/openeo-go/core/connection"
)

// NewTimeoutMiddleware creates a middleware that enforces a per-request
// deadline on every backend call.
//
// The deadline covers the full lifetime of the response, not just the time to
// first byte: the cancel function is not released until the response body is
// closed. If the caller supplies a context that already has a shorter
// deadline, that shorter deadline wins as per normal context semantics.
func NewTimeoutMiddleware(timeout time.Duration) connection.Middleware {
	return func(next connection.SendFunc) connection.SendFunc {
		return func(req *http.Request) (*http.Response, error) {
			ctx, cancel := context.WithTimeout(req.Context(), timeout)

			res, err := next(req.WithContext(ctx))
			if err != nil {
				cancel()
				return nil, err
			}

			// Keep the context alive while the caller reads the body.
			res.Body = &cancelOnClose{ReadCloser: res.Body, cancel: cancel}
			return res, nil
		}
	}
}

// cancelOnClose releases the request context once the body is closed.
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelOnClose) Close() error {
	defer b.cancel()
	return b.ReadCloser.Close()
}
