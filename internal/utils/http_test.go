package utils

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// TestDoJSONGet verifies a simple GET round trip with extra headers.
func TestDoJSONGet(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"api_version": "1.0.0"}`))
	}))
	defer server.Close()

	header := http.Header{}
	header.Set("Authorization", "Bearer t0ken")
	res, body, err := DoJSON(context.Background(), server.Client(), "GET", server.URL+"/", header, nil)
	if err != nil {
		t.Fatalf("DoJSON failed: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", res.StatusCode)
	}
	if gotAuth != "Bearer t0ken" {
		t.Errorf("expected auth header to be forwarded, got %q", gotAuth)
	}
	if !strings.Contains(string(body), "api_version") {
		t.Errorf("unexpected body %q", body)
	}
}

// TestDoJSONPostBody verifies the body is JSON-marshaled with the right content type.
func TestDoJSONPostBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json, got %q", ct)
		}
		payload, _ := io.ReadAll(r.Body)
		var decoded map[string]any
		if err := json.Unmarshal(payload, &decoded); err != nil {
			t.Errorf("body is not valid JSON: %v", err)
		}
		if decoded["title"] != "evi job" {
			t.Errorf("unexpected body %v", decoded)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"job_id": "job-123"}`))
	}))
	defer server.Close()

	_, result, err := DoJSONAs[map[string]string](context.Background(), server.Client(), "POST", server.URL+"/jobs", nil, map[string]any{"title": "evi job"})
	if err != nil {
		t.Fatalf("DoJSONAs failed: %v", err)
	}
	if (*result)["job_id"] != "job-123" {
		t.Errorf("unexpected result %v", *result)
	}
}

// TestDoJSONNon2xx verifies error reporting keeps the response body available.
func TestDoJSONNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code": "CollectionNotFound"}`))
	}))
	defer server.Close()

	res, body, err := DoJSON(context.Background(), server.Client(), "GET", server.URL+"/collections/NOPE", nil, nil)
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if res == nil || res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 response, got %v", res)
	}
	if !strings.Contains(string(body), "CollectionNotFound") {
		t.Errorf("expected error body to be returned, got %q", body)
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("expected status in error, got %v", err)
	}
}

// TestDoJSONContextCancellation verifies context deadlines abort the request.
func TestDoJSONContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, _, err := DoJSON(ctx, server.Client(), "GET", server.URL, nil, nil)
	if err == nil {
		t.Fatal("expected timeout error")
	}
}

// TestDoJSONAsBadPayload verifies unmarshal errors include a response preview.
func TestDoJSONAsBadPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	_, _, err := DoJSONAs[map[string]any](context.Background(), server.Client(), "GET", server.URL, nil, nil)
	if err == nil {
		t.Fatal("expected unmarshal error")
	}
	if !strings.Contains(err.Error(), "Response preview") {
		t.Errorf("expected response preview in error, got %v", err)
	}
}
