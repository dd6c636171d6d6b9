package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/openeo/openeo-go/core/connection"
	"github.com/openeo/openeo-go/providers/observability"
)

// LogLevel controls how much detail the logging middleware emits per request.
type LogLevel int

const (
	// LogLevelMinimal logs only method, URL, status, and duration. Use this
	// when you want lightweight audit trails without noise.
	LogLevelMinimal LogLevel = iota

	// LogLevelStandard logs everything in Minimal plus request and response
	// body sizes. This is the recommended default for most applications.
	LogLevelStandard

	// LogLevelVerbose logs everything in Standard plus the request payload,
	// truncated to 500 characters.
	//
	// WARNING: DO NOT use LogLevelVerbose in production. Request payloads may
	// contain credentials or other sensitive data. It is intended solely for
	// local debugging and development.
	LogLevelVerbose
)

// truncateLen is the maximum payload length included in verbose log output.
const truncateLen = 500

// NewLoggingMiddleware creates a middleware that emits structured slog log
// entries before and after every backend call.
//
// The logger parameter must not be nil. Use slog.Default() if you have not
// configured a custom logger.
func NewLoggingMiddleware(logger *slog.Logger, level LogLevel) connection.Middleware {
	return func(next connection.SendFunc) connection.SendFunc {
		return func(req *http.Request) (*http.Response, error) {
			ctx := req.Context()
			logger.InfoContext(ctx, "backend request", requestAttrs(req, level)...)

			start := time.Now()
			res, err := next(req)
			elapsed := time.Since(start)

			if err != nil {
				logger.ErrorContext(ctx, "backend request failed",
					slog.String("method", req.Method),
					slog.String("url", req.URL.String()),
					slog.Duration("duration", elapsed),
					slog.String("error", err.Error()),
				)
				return nil, err
			}

			logger.InfoContext(ctx, "backend request completed", responseAttrs(req, res, elapsed, level)...)
			return res, nil
		}
	}
}

// requestAttrs returns slog attributes for an outgoing request, expanding
// detail according to the requested verbosity level.
func requestAttrs(req *http.Request, level LogLevel) []any {
	attrs := []any{
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
	}

	if level >= LogLevelStandard && req.ContentLength > 0 {
		attrs = append(attrs, slog.Int64("request_size", req.ContentLength))
	}

	if level >= LogLevelVerbose && req.GetBody != nil {
		if body, err := req.GetBody(); err == nil {
			payload, readErr := io.ReadAll(body)
			_ = body.Close()
			if readErr == nil {
				attrs = append(attrs, slog.String("request_payload",
					observability.TruncateString(string(payload), truncateLen)))
			}
		}
	}

	return attrs
}

// responseAttrs returns slog attributes for a completed response.
func responseAttrs(req *http.Request, res *http.Response, elapsed time.Duration, level LogLevel) []any {
	attrs := []any{
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.Int("status", res.StatusCode),
		slog.Duration("duration", elapsed),
	}

	if level >= LogLevelStandard && res.ContentLength >= 0 {
		attrs = append(attrs, slog.Int64("response_size", res.ContentLength))
	}

	return attrs
}
