package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/openeo/openeo-go/core/connection"
)

func fastRetryConfig(maxRetries int) RetryConfig {
	return RetryConfig{
		MaxRetries:     maxRetries,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	}
}

// TestRetrySucceedsAfterTransientFailure verifies a 503 is retried and the
// eventual success is returned.
func TestRetrySucceedsAfterTransientFailure(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	send := NewRetryMiddleware(fastRetryConfig(3))(server.Client().Do)
	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	res, err := send(req)
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Errorf("unexpected status %d", res.StatusCode)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 calls, got %d", calls.Load())
	}
}

// TestRetryExhausted verifies the exhaustion error wraps ErrRetryExhausted.
func TestRetryExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	send := NewRetryMiddleware(fastRetryConfig(2))(server.Client().Do)
	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	if _, err := send(req); !errors.Is(err, ErrRetryExhausted) {
		t.Errorf("expected ErrRetryExhausted, got %v", err)
	}
}

// TestRetryNonRetryableStatus verifies a 404 is returned immediately.
func TestRetryNonRetryableStatus(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	send := NewRetryMiddleware(fastRetryConfig(3))(server.Client().Do)
	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	res, err := send(req)
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("unexpected status %d", res.StatusCode)
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 call, got %d", calls.Load())
	}
}

// TestRetryReplaysBody verifies each attempt sends the full request payload.
func TestRetryReplaysBody(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, _ := io.ReadAll(r.Body)
		if string(payload) != `{"process_graph": {}}` {
			t.Errorf("attempt %d got payload %q", calls.Load(), payload)
		}
		if calls.Add(1) < 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	send := NewRetryMiddleware(fastRetryConfig(3))(server.Client().Do)
	req, _ := http.NewRequest(http.MethodPost, server.URL,
		bytes.NewReader([]byte(`{"process_graph": {}}`)))
	res, err := send(req)
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Errorf("unexpected status %d", res.StatusCode)
	}
}

// TestRetryTransportError verifies transport failures are retried and the
// last error is surfaced on exhaustion.
func TestRetryTransportError(t *testing.T) {
	var calls atomic.Int32
	var send connection.SendFunc = func(req *http.Request) (*http.Response, error) {
		calls.Add(1)
		return nil, errors.New("connection refused")
	}
	send = NewRetryMiddleware(fastRetryConfig(2))(send)

	req, _ := http.NewRequest(http.MethodGet, "http://backend.test/", nil)
	if _, err := send(req); !errors.Is(err, ErrRetryExhausted) {
		t.Errorf("expected ErrRetryExhausted, got %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 calls, got %d", calls.Load())
	}
}

// TestComputeBackoffGrowth verifies exponential growth under the cap.
func TestComputeBackoffGrowth(t *testing.T) {
	config := RetryConfig{
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     time.Second,
		BackoffFactor:  2.0,
		JitterFraction: 0.0001,
	}
	applyRetryDefaults(&config)

	prev := time.Duration(0)
	for attempt := 0; attempt < 3; attempt++ {
		backoff := computeBackoff(config, attempt)
		if backoff <= prev {
			t.Errorf("attempt %d: expected growth, got %v after %v", attempt, backoff, prev)
		}
		prev = backoff
	}
	if capped := computeBackoff(config, 10); capped > time.Second+time.Millisecond {
		t.Errorf("expected cap near 1s, got %v", capped)
	}
}
