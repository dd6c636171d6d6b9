// Package observability defines a minimal tracing facade used by the HTTP
// helpers and connection middleware: a [Tracer] starts [Span] values that carry
// [Attribute] metadata, and spans travel through the call chain via
// [ContextWithSpan] / [SpanFromContext].
//
// The facade is deliberately dependency-free; the slogobs subpackage provides
// a ready-to-use implementation on top of the standard library log/slog.
// Code that instruments itself only checks for a span in the context and emits
// events on it when present, so tracing stays strictly opt-in.
package observability
