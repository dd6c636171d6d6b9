package observability

// Semantic conventions for observability attributes.
// These constants define standard attribute names to ensure consistency
// across different components of the library.

// --- HTTP Attributes ---

const (
	// AttrHTTPMethod is the HTTP request method (e.g., "GET", "POST")
	AttrHTTPMethod = "http.method"

	// AttrHTTPURL is the full request URL
	AttrHTTPURL = "http.url"

	// AttrHTTPStatusCode is the HTTP response status code
	AttrHTTPStatusCode = "http.status_code"

	// AttrHTTPRequestBodySize is the request body size in bytes
	AttrHTTPRequestBodySize = "http.request.body.size"

	// AttrHTTPResponseBodySize is the response body size in bytes
	AttrHTTPResponseBodySize = "http.response.body.size"

	// AttrHTTPRequestDuration is the wall-clock duration of the request
	AttrHTTPRequestDuration = "http.request.duration"
)

// --- OpenEO Backend Attributes ---

const (
	// AttrBackendURL is the root URL of the OpenEO backend
	AttrBackendURL = "openeo.backend.url"

	// AttrBackendVersion is the API version reported by the backend capabilities document
	AttrBackendVersion = "openeo.backend.api_version"

	// AttrCollectionID is the collection identifier of a request
	AttrCollectionID = "openeo.collection.id"

	// AttrProcessID is the process identifier of a request
	AttrProcessID = "openeo.process.id"

	// AttrJobID is the batch job identifier of a request
	AttrJobID = "openeo.job.id"

	// AttrGraphNodeCount is the number of nodes in a submitted process graph
	AttrGraphNodeCount = "openeo.graph.node_count"
)
