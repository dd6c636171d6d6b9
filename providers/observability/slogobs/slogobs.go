// Package slogobs implements the observability facade on top of the standard
// library log/slog: span start/end and events become structured log records.
package slogobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/openeo/openeo-go/providers/observability"
)

// Observer implements observability.Tracer using Go's standard library slog.
// Span starts are logged at debug level, span ends and events at info level.
type Observer struct {
	logger *slog.Logger
}

// New creates a new slog-based observer. A nil logger falls back to
// slog.Default().
func New(logger *slog.Logger) *Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Observer{logger: logger}
}

var _ observability.Tracer = (*Observer)(nil)

// StartSpan starts a span and attaches it to the returned context.
func (o *Observer) StartSpan(ctx context.Context, name string, attrs ...observability.Attribute) (context.Context, observability.Span) {
	span := &slogSpan{
		name:      name,
		startTime: time.Now(),
		logger:    o.logger,
		attrs:     attrs,
	}

	logAttrs := []slog.Attr{
		slog.String("span", name),
		slog.String("event", "span.start"),
	}
	for _, attr := range attrs {
		logAttrs = append(logAttrs, slog.Any(attr.Key, attr.Value))
	}
	o.logger.LogAttrs(ctx, slog.LevelDebug, "span started", logAttrs...)

	return observability.ContextWithSpan(ctx, span), span
}

type slogSpan struct {
	name      string
	startTime time.Time
	logger    *slog.Logger
	mu        sync.Mutex
	attrs     []observability.Attribute
	status    observability.StatusCode
	statusMsg string
}

func (s *slogSpan) End() {
	s.mu.Lock()
	defer s.mu.Unlock()

	level := slog.LevelInfo
	logAttrs := []slog.Attr{
		slog.String("span", s.name),
		slog.String("event", "span.end"),
		slog.Duration("duration", time.Since(s.startTime)),
	}
	if s.status == observability.StatusError {
		level = slog.LevelError
		logAttrs = append(logAttrs, slog.String("status", s.statusMsg))
	}
	for _, attr := range s.attrs {
		logAttrs = append(logAttrs, slog.Any(attr.Key, attr.Value))
	}
	s.logger.LogAttrs(context.Background(), level, "span ended", logAttrs...)
}

func (s *slogSpan) SetAttributes(attrs ...observability.Attribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attrs = append(s.attrs, attrs...)
}

func (s *slogSpan) SetStatus(code observability.StatusCode, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = code
	s.statusMsg = description
}

func (s *slogSpan) RecordError(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = observability.StatusError
	s.statusMsg = err.Error()
	s.logger.LogAttrs(context.Background(), slog.LevelError, "span error",
		slog.String("span", s.name),
		slog.String("error", err.Error()),
	)
}

func (s *slogSpan) AddEvent(name string, attrs ...observability.Attribute) {
	logAttrs := []slog.Attr{
		slog.String("span", s.name),
		slog.String("event", name),
	}
	for _, attr := range attrs {
		logAttrs = append(logAttrs, slog.Any(attr.Key, attr.Value))
	}
	s.logger.LogAttrs(context.Background(), slog.LevelInfo, name, logAttrs...)
}
