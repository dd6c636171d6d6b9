package cube

import (
	"fmt"

	"github.com/openeo/openeo-go/core/graph"
)

// DataCube is the client-side handle for one raster cube lineage, rooted at a
// load_collection node. Cube operations never mutate the cube they are called
// on: each returns a new cube whose graph absorbs the parent lineage, so one
// loaded collection can fan out into many expressions.
//
// Errors from band resolution or incompatible combinations stick to the
// returned value and surface when the graph is materialized, keeping the API
// fluent (same pattern as the expression layer underneath).
type DataCube struct {
	session  *graph.Session
	version  APIVersion
	metadata CollectionMetadata
	builder  *graph.Builder
	err      error
}

// LoadCollection starts a cube lineage with a load_collection node for the
// described collection. Spatial and temporal extents are left open (null).
func LoadCollection(session *graph.Session, version APIVersion, metadata CollectionMetadata) *DataCube {
	builder := graph.FromProcess(session, "load_collection", map[string]any{
		"id":              metadata.ID,
		"spatial_extent":  nil,
		"temporal_extent": nil,
	})
	return &DataCube{session: session, version: version, metadata: metadata, builder: builder}
}

// Metadata returns the cube's collection metadata.
func (c *DataCube) Metadata() CollectionMetadata {
	return c.metadata
}

// Version returns the graph-schema generation this cube compiles to.
func (c *DataCube) Version() APIVersion {
	return c.version
}

// Err returns the first construction error, or nil.
func (c *DataCube) Err() error {
	return c.err
}

// FlatGraph materializes the cube's own lineage with its tip node as result.
func (c *DataCube) FlatGraph() (graph.FlatGraph, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.builder.FlatGraph()
}

// Band returns the band-math expression handle for one band, identified by
// positional index, band name, or common name ("red"). The expression is
// rooted at an array_element node inside the reducer callback that
// materialization will wrap around it.
func (c *DataCube) Band(band any) *BandExpr {
	index, err := c.metadata.BandIndex(band)
	if c.err != nil {
		err = c.err
	}
	expr := graph.Process(c.session, "array_element", map[string]any{
		"data":  graph.Parameter("data"),
		"index": index,
	})
	return &BandExpr{cube: c, expr: expr, err: err}
}

// FilterBands restricts the cube to the given bands (names or common names)
// with a filter_bands node, narrowing the metadata accordingly.
func (c *DataCube) FilterBands(bands ...string) *DataCube {
	resolved := make([]string, len(bands))
	var firstErr error
	for i, band := range bands {
		index, err := c.metadata.BandIndex(band)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		resolved[i] = c.metadata.Bands[index].Name
	}
	restricted, err := c.metadata.subset(resolved)
	if firstErr == nil {
		firstErr = err
	}
	if c.err != nil {
		firstErr = c.err
	}

	builder := graph.FromProcess(c.session, "filter_bands", map[string]any{
		"data":  c.builder,
		"bands": toAnySlice(resolved),
	})
	return &DataCube{session: c.session, version: c.version, metadata: restricted, builder: builder, err: firstErr}
}

// Merge combines two cubes with a merge_cubes node. The overlap resolver,
// when given, names the process resolving overlapping values ("or", "sum").
// Both cubes must compile to the same schema generation.
func (c *DataCube) Merge(other *DataCube, overlapResolver string) *DataCube {
	err := c.err
	if err == nil {
		err = other.err
	}
	if err == nil && c.version != other.version {
		err = fmt.Errorf("%w: cannot merge cubes targeting api versions %s and %s", ErrBandMath, c.version, other.version)
	}

	arguments := map[string]any{
		"cube1": c.builder,
		"cube2": other.builder,
	}
	if overlapResolver != "" {
		arguments["overlap_resolver"] = overlapResolver
	}
	builder := graph.FromProcess(c.session, "merge_cubes", arguments)
	return &DataCube{session: c.session, version: c.version, metadata: c.metadata, builder: builder, err: err}
}

// ReduceBands reduces the bands dimension with a user callback traced into
// the reducer argument. The callback takes one *graph.ProcessBuilder bound to
// the "data" parameter.
func (c *DataCube) ReduceBands(fn any) *DataCube {
	callback, err := graph.CallbackGraph(c.session, fn, []string{"data"})
	if c.err != nil {
		err = c.err
	}
	sch := c.version.schema()
	builder := graph.FromProcess(c.session, sch.reduceProcessID, map[string]any{
		"data":      c.builder,
		"reducer":   map[string]any{sch.wrapKey: callback},
		"dimension": bandsDimension,
	})
	return &DataCube{session: c.session, version: c.version, metadata: c.metadata, builder: builder, err: err}
}

// Reduce applies a raw one-node reducer document along the given dimension
// using an arbitrary reduce process. The reducer document has the shape
// {"process_id": ..., "arguments": ...}; it is allocated a node id and wrapped
// as this cube's generation demands.
func (c *DataCube) Reduce(processID, dimension string, reducer map[string]any) *DataCube {
	err := c.err
	reducerProcess, _ := reducer["process_id"].(string)
	reducerArguments, _ := reducer["arguments"].(map[string]any)
	if reducerProcess == "" {
		if err == nil {
			err = fmt.Errorf("%w: raw reducer document lacks a process_id", ErrBandMath)
		}
		reducerProcess = "unknown"
	}

	callback, callbackErr := graph.FromProcess(c.session, reducerProcess, reducerArguments).FlatGraph()
	if err == nil {
		err = callbackErr
	}

	sch := c.version.schema()
	builder := graph.FromProcess(c.session, processID, map[string]any{
		"data":      c.builder,
		"reducer":   map[string]any{sch.wrapKey: callback},
		"dimension": dimension,
	})
	return &DataCube{session: c.session, version: c.version, metadata: c.metadata, builder: builder, err: err}
}

// Apply applies a unary user callback to every pixel with an apply node. The
// callback takes one *graph.ProcessBuilder bound to the "x" parameter.
func (c *DataCube) Apply(fn any) *DataCube {
	callback, err := graph.CallbackGraph(c.session, fn, []string{"x"})
	if c.err != nil {
		err = c.err
	}
	sch := c.version.schema()
	builder := graph.FromProcess(c.session, sch.applyProcessID, map[string]any{
		"data":    c.builder,
		"process": map[string]any{sch.wrapKey: callback},
	})
	return &DataCube{session: c.session, version: c.version, metadata: c.metadata, builder: builder, err: err}
}

func toAnySlice(values []string) []any {
	result := make([]any, len(values))
	for i, value := range values {
		result[i] = value
	}
	return result
}
