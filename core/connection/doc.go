// Package connection manages the HTTP session with an OpenEO backend:
// capability probing, collection and process discovery, synchronous graph
// execution, and batch job management.
//
// Connect probes the backend's capabilities document and pins the
// graph-schema generation every cube loaded through the connection compiles
// to. Requests flow through a configurable middleware chain (see
// [Middleware] and the middleware subpackage for logging, retry, and timeout
// implementations).
//
// Example:
//
//	conn, err := connection.Connect(ctx, "https://openeo.example",
//	    connection.WithMiddleware(
//	        middleware.NewTimeoutMiddleware(30*time.Second),
//	        middleware.NewRetryMiddleware(middleware.RetryConfig{}),
//	    ),
//	)
//	if err != nil { ... }
//	s2, err := conn.LoadCollection(ctx, "SENTINEL2_RADIOMETRY_10M")
package connection
