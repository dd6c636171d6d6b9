package connection

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openeo/openeo-go/core/cube"
	"github.com/openeo/openeo-go/core/graph"
	"github.com/openeo/openeo-go/internal/docutil"
	"github.com/openeo/openeo-go/internal/parse"
	"github.com/openeo/openeo-go/internal/utils"
	"github.com/openeo/openeo-go/providers/auth"
	"github.com/openeo/openeo-go/providers/observability"
)

// ErrNotFound is returned when the backend has no entity under the requested
// id.
var ErrNotFound = errors.New("openeo: not found")

// Connection is an authenticated HTTP session with one OpenEO backend. It
// owns the node id session shared by all cubes loaded through it, so graphs
// built from several collections of the same connection can be merged without
// id collisions.
//
// A Connection is safe for concurrent REST calls, but the graph session
// underneath is not: build one process graph at a time.
type Connection struct {
	baseURL      string
	capabilities Capabilities
	version      cube.APIVersion
	session      *graph.Session

	client      *http.Client
	middlewares []Middleware
	send        utils.Doer
	auth        auth.Provider
	tracer      observability.Tracer
}

// Option configures a Connection before the capabilities probe.
type Option func(*Connection)

// WithHTTPClient sets the HTTP client backing the middleware chain.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Connection) { c.client = client }
}

// WithMiddleware appends middlewares to the request chain, outermost first.
func WithMiddleware(middlewares ...Middleware) Option {
	return func(c *Connection) { c.middlewares = append(c.middlewares, middlewares...) }
}

// WithAuth sets the initial authentication provider. AuthenticateBasic
// replaces it with the bearer token obtained from the backend.
func WithAuth(provider auth.Provider) Option {
	return func(c *Connection) { c.auth = provider }
}

// WithTracer enables span creation around backend operations.
func WithTracer(tracer observability.Tracer) Option {
	return func(c *Connection) { c.tracer = tracer }
}

// Connect probes the backend's capabilities document and returns a ready
// connection pinned to the graph-schema generation the backend speaks.
func Connect(ctx context.Context, baseURL string, opts ...Option) (*Connection, error) {
	c := &Connection{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  http.DefaultClient,
		session: graph.NewSession(),
		auth:    auth.None{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.send = chainDoer{send: buildChain(c.client, c.middlewares)}

	ctx, span := c.startSpan(ctx, "openeo.connect",
		observability.String(observability.AttrBackendURL, c.baseURL))
	defer c.endSpan(span)

	capabilities, err := requestAs[Capabilities](ctx, c, http.MethodGet, "/", nil)
	if err != nil {
		return nil, c.failSpan(span, fmt.Errorf("probing capabilities of %s: %w", c.baseURL, err))
	}
	version, err := cube.ParseAPIVersion(capabilities.APIVersion)
	if err != nil {
		return nil, c.failSpan(span, err)
	}
	c.capabilities = *capabilities
	c.version = version

	if span != nil {
		span.SetAttributes(observability.String(observability.AttrBackendVersion, capabilities.APIVersion))
	}
	return c, nil
}

// Capabilities returns the backend's root document.
func (c *Connection) Capabilities() Capabilities {
	return c.capabilities
}

// APIVersion returns the graph-schema generation the backend speaks.
func (c *Connection) APIVersion() cube.APIVersion {
	return c.version
}

// Session returns the node id session shared by this connection's cubes.
func (c *Connection) Session() *graph.Session {
	return c.session
}

// AuthenticateBasic exchanges username and password for a bearer token at the
// backend's basic credentials endpoint and uses it for all further requests.
func (c *Connection) AuthenticateBasic(ctx context.Context, username, password string) error {
	credentials := auth.BasicCredentials{Username: username, Password: password}
	_, token, err := utils.DoJSONAs[tokenDocument](ctx, c.send, http.MethodGet,
		c.baseURL+"/credentials/basic", credentials.AuthHeaders(), nil)
	if err != nil {
		return fmt.Errorf("basic authentication against %s failed: %w", c.baseURL, err)
	}
	if token.AccessToken == "" {
		return fmt.Errorf("openeo: basic authentication against %s returned no access token", c.baseURL)
	}
	c.auth = auth.BearerToken{Token: token.AccessToken}
	return nil
}

// ListCollections returns the backend's collection listing.
func (c *Connection) ListCollections(ctx context.Context) ([]Collection, error) {
	doc, err := requestAs[collectionsDocument](ctx, c, http.MethodGet, "/collections", nil)
	if err != nil {
		return nil, err
	}
	return doc.Collections, nil
}

// DescribeCollection returns the full collection document.
func (c *Connection) DescribeCollection(ctx context.Context, collectionID string) (map[string]any, error) {
	doc, err := requestAs[map[string]any](ctx, c, http.MethodGet, "/collections/"+collectionID, nil)
	if err != nil {
		return nil, err
	}
	return *doc, nil
}

// LoadCollection fetches the collection's band metadata and starts a cube
// lineage on this connection's session.
func (c *Connection) LoadCollection(ctx context.Context, collectionID string) (*cube.DataCube, error) {
	ctx, span := c.startSpan(ctx, "openeo.load_collection",
		observability.String(observability.AttrCollectionID, collectionID))
	defer c.endSpan(span)

	doc, err := c.DescribeCollection(ctx, collectionID)
	if err != nil {
		return nil, c.failSpan(span, err)
	}
	metadata := cube.ParseCollectionMetadata(collectionID, doc)
	return cube.LoadCollection(c.session, c.version, metadata), nil
}

// ListProcesses returns the backend's process listing.
func (c *Connection) ListProcesses(ctx context.Context) ([]Process, error) {
	doc, err := requestAs[processesDocument](ctx, c, http.MethodGet, "/processes", nil)
	if err != nil {
		return nil, err
	}
	return doc.Processes, nil
}

// DescribeProcess returns one process from the backend's listing, with its
// description rendered to markdown when the backend serves HTML.
func (c *Connection) DescribeProcess(ctx context.Context, processID string) (*Process, error) {
	processes, err := c.ListProcesses(ctx)
	if err != nil {
		return nil, err
	}
	for _, process := range processes {
		if process.ID != processID {
			continue
		}
		process.Description = docutil.DescriptionToMarkdown(process.Description)
		return &process, nil
	}
	return nil, fmt.Errorf("%w: process %q", ErrNotFound, processID)
}

// Execute runs a process graph synchronously and returns the raw result
// bytes.
func (c *Connection) Execute(ctx context.Context, fg graph.FlatGraph) ([]byte, error) {
	ctx, span := c.startSpan(ctx, "openeo.execute",
		observability.Int(observability.AttrGraphNodeCount, len(fg)))
	defer c.endSpan(span)

	_, body, err := utils.DoJSON(ctx, c.send, http.MethodPost,
		c.baseURL+"/result", c.authHeaders(), c.wrapGraph(fg))
	if err != nil {
		return nil, c.failSpan(span, err)
	}
	return body, nil
}

// CreateJob registers a process graph as a batch job without starting it.
func (c *Connection) CreateJob(ctx context.Context, fg graph.FlatGraph, title string) (*Job, error) {
	ctx, span := c.startSpan(ctx, "openeo.create_job",
		observability.Int(observability.AttrGraphNodeCount, len(fg)))
	defer c.endSpan(span)

	payload := c.wrapGraph(fg)
	if title != "" {
		payload["title"] = title
	}
	res, body, err := utils.DoJSON(ctx, c.send, http.MethodPost, c.baseURL+"/jobs", c.authHeaders(), payload)
	if err != nil {
		return nil, c.failSpan(span, err)
	}

	jobID := res.Header.Get("OpenEO-Identifier")
	if jobID == "" && len(body) > 0 {
		// Older backends return the id in the body, some under the legacy
		// job_id key.
		if doc, err := parse.As[map[string]any](string(body)); err == nil {
			jobID, _ = doc["id"].(string)
			if jobID == "" {
				jobID, _ = doc["job_id"].(string)
			}
		}
	}
	if jobID == "" {
		return nil, c.failSpan(span, fmt.Errorf("openeo: backend returned no job id for created job"))
	}
	if span != nil {
		span.SetAttributes(observability.String(observability.AttrJobID, jobID))
	}
	return &Job{conn: c, id: jobID}, nil
}

// Job returns the handle for an existing batch job.
func (c *Connection) Job(jobID string) *Job {
	return &Job{conn: c, id: jobID}
}

// UserJobs lists the batch jobs of the authenticated user.
func (c *Connection) UserJobs(ctx context.Context) ([]JobInfo, error) {
	doc, err := requestAs[jobsDocument](ctx, c, http.MethodGet, "/jobs", nil)
	if err != nil {
		return nil, err
	}
	return doc.Jobs, nil
}

// wrapGraph embeds a flat graph in the submission payload of this
// connection's generation.
func (c *Connection) wrapGraph(fg graph.FlatGraph) map[string]any {
	if c.version == cube.V040 {
		return map[string]any{"process_graph": fg}
	}
	return map[string]any{"process": map[string]any{"process_graph": fg}}
}

func (c *Connection) authHeaders() http.Header {
	if c.auth == nil {
		return nil
	}
	return c.auth.AuthHeaders()
}

// requestAs performs a JSON request against a backend path and decodes the
// response.
func requestAs[Doc any](ctx context.Context, c *Connection, method, path string, body any) (*Doc, error) {
	_, doc, err := utils.DoJSONAs[Doc](ctx, c.send, method, c.baseURL+path, c.authHeaders(), body)
	return doc, err
}

func (c *Connection) startSpan(ctx context.Context, name string, attrs ...observability.Attribute) (context.Context, observability.Span) {
	if c.tracer == nil {
		return ctx, nil
	}
	ctx, span := c.tracer.StartSpan(ctx, name, attrs...)
	return observability.ContextWithSpan(ctx, span), span
}

func (c *Connection) endSpan(span observability.Span) {
	if span != nil {
		span.End()
	}
}

func (c *Connection) failSpan(span observability.Span, err error) error {
	if span != nil {
		span.RecordError(err)
	}
	return err
}
