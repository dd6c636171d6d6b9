package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/openeo/openeo-go/providers/observability"
)

// Doer abstracts the HTTP executor so callers can pass either a plain
// *http.Client or a middleware-wrapped transport.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DoJSON performs a synchronous HTTP request with an optional JSON body and
// returns the raw response together with its fully-read body. It handles
// observability tracing, extra headers, and proper resource cleanup.
//
// Error Handling Strategy:
//   - Context errors (timeout, cancellation) are propagated immediately
//   - Transport errors (connection failures) return the error
//   - Non-2xx responses return the response and body along with an error so
//     callers can inspect the backend's error document
//   - Response body close errors are logged but don't override primary errors
//
// A nil body sends no payload; any other value is JSON-marshaled and sent with
// a Content-Type: application/json header.
func DoJSON(ctx context.Context, client Doer, method, url string, header http.Header, body any) (*http.Response, []byte, error) {
	// Get the span from context if the caller is being traced.
	span := observability.SpanFromContext(ctx)

	var httpClient Doer = client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	var payload io.Reader
	var payloadSize int
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("error marshaling body: %w", err)
		}
		payload = bytes.NewReader(jsonBody)
		payloadSize = len(jsonBody)
	}

	if span != nil {
		span.AddEvent("http.request.prepared",
			observability.String(observability.AttrHTTPMethod, method),
			observability.String(observability.AttrHTTPURL, url),
			observability.Int(observability.AttrHTTPRequestBodySize, payloadSize),
		)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	requestStart := time.Now()
	res, err := httpClient.Do(req)
	requestDuration := time.Since(requestStart)

	if err != nil {
		if span != nil {
			span.AddEvent("http.request.error",
				observability.Error(err),
				observability.Duration(observability.AttrHTTPRequestDuration, requestDuration),
			)
		}
		return res, nil, fmt.Errorf("error sending request: %w", err)
	}
	defer func(responseBody io.ReadCloser) {
		if closeErr := responseBody.Close(); closeErr != nil {
			// Log the close error, but don't override the main error.
			slog.Warn("failed to close response body", "error", closeErr.Error(), "url", url)
		}
	}(res.Body)

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return res, nil, fmt.Errorf("error reading response body: %w", err)
	}

	if span != nil {
		span.AddEvent("http.response.received",
			observability.Int(observability.AttrHTTPStatusCode, res.StatusCode),
			observability.Int(observability.AttrHTTPResponseBodySize, len(respBody)),
			observability.Duration(observability.AttrHTTPRequestDuration, requestDuration),
		)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return res, respBody, fmt.Errorf("non-2xx status %d: %s", res.StatusCode, observability.TruncateString(string(respBody), observability.DefaultMaxStringLength))
	}

	return res, respBody, nil
}

// DoJSONAs performs DoJSON and unmarshals a 2xx response body into
// OutputStruct. JSON parsing errors include a response preview for debugging.
func DoJSONAs[OutputStruct any](ctx context.Context, client Doer, method, url string, header http.Header, body any) (*http.Response, *OutputStruct, error) {
	res, respBody, err := DoJSON(ctx, client, method, url, header, body)
	if err != nil {
		return res, nil, err
	}

	var resStruct OutputStruct
	if err = json.Unmarshal(respBody, &resStruct); err != nil {
		return res, nil, fmt.Errorf("error unmarshaling response body (status %d): %w\nResponse preview: %s", res.StatusCode, err, observability.TruncateString(string(respBody), observability.DefaultMaxStringLength))
	}

	return res, &resStruct, nil
}
