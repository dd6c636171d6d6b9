// Package openeo is a Go client for OpenEO backends: it builds process
// graphs client side, compiles band arithmetic into reducer callbacks, and
// talks to the backend's REST API for discovery, execution, and batch jobs.
//
// The root package is a thin facade; the layers underneath are importable on
// their own:
//
//   - core/graph: process graph sessions, builders, and the expression layer
//   - core/cube: collection metadata and the band-math facade
//   - core/connection: the HTTP session with a backend, with middleware
//   - providers/auth: authentication providers and private credential storage
//   - providers/observability: tracing hooks with a slog-backed implementation
//
// Typical use:
//
//	conn, err := openeo.Connect(ctx, "https://openeo.example")
//	if err != nil { ... }
//	s2, err := conn.LoadCollection(ctx, "SENTINEL2_RADIOMETRY_10M")
//	if err != nil { ... }
//	ndvi := s2.Band("nir").Subtract(s2.Band("red")).
//	    Divide(s2.Band("nir").Add(s2.Band("red")))
//	fg, err := ndvi.Graph()
//	if err != nil { ... }
//	result, err := conn.Execute(ctx, fg)
package openeo

import (
	"context"

	"github.com/openeo/openeo-go/core/connection"
	"github.com/openeo/openeo-go/core/cube"
	"github.com/openeo/openeo-go/core/graph"
)

// Connect probes an OpenEO backend and returns a ready connection. See
// [connection.Connect] for the available options.
func Connect(ctx context.Context, baseURL string, opts ...connection.Option) (*connection.Connection, error) {
	return connection.Connect(ctx, baseURL, opts...)
}

// NewSession creates a standalone node id session for building graphs without
// a backend connection.
func NewSession() *graph.Session {
	return graph.NewSession()
}

// ParseFlatGraph decodes a flat process graph from JSON text, tolerating the
// quoting and literal quirks of graphs pasted from notebooks.
func ParseFlatGraph(content string) (graph.FlatGraph, error) {
	return graph.ParseFlatGraph(content)
}

// Re-exported core types, so simple programs only import the root package.
type (
	Connection = connection.Connection
	Job        = connection.Job
	DataCube   = cube.DataCube
	BandExpr   = cube.BandExpr
	FlatGraph  = graph.FlatGraph
	Session    = graph.Session
)

// Graph-schema generations a backend can speak.
const (
	V040 = cube.V040
	V100 = cube.V100
)
