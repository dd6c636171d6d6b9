package graph

import "errors"

// ErrNoResultNode is returned by flat-graph materialization when the builder
// holds no nodes or no tip node is set, so no node can carry the result flag.
var ErrNoResultNode = errors.New("openeo: flat graph has no result node")

// ErrIDCollision is returned when merging two graphs that contain distinct
// nodes under the same id. This cannot happen for graphs built from one
// Session; it indicates expressions from two different sessions were combined.
var ErrIDCollision = errors.New("openeo: node id collision while merging graphs")

// ErrNoParameters is returned by the callback binder when a user callback
// declares no usable parameters but the call site expects at least one.
var ErrNoParameters = errors.New("openeo: callback declares no usable parameters")
