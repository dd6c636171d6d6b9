// Package graph builds OpenEO process graphs: flat mappings of node id to
// process invocation, with exactly one node carrying the result flag, ready to
// be serialized to JSON and submitted to a backend.
//
// Construction happens in three layers:
//   - [Session] allocates deterministic, human-readable node ids
//     ("loadcollection1", "add2", ...) scoped to one construction lifetime.
//   - [Builder] accumulates nodes into a single flat graph, tracks the tip
//     (candidate result) node, and merges graphs when an expression combines
//     values from more than one lineage.
//   - [ProcessBuilder] is the lazy expression handle: each arithmetic,
//     comparison, or logical method emits exactly one new node referencing the
//     previous one, so chains like b.Add(3).Multiply(2) compile to sequential
//     binary nodes.
//
// Callbacks (reducers for higher-order processes such as reduce_dimension) are
// ordinary Go funcs over *ProcessBuilder; [CallbackGraph] traces them into a
// nested flat graph with {"from_argument": name} leaves.
//
// Example:
//
//	s := graph.NewSession()
//	b := graph.Process(s, "array_element", map[string]any{
//	    "data":  graph.FromParameter(s, "data"),
//	    "index": 2,
//	})
//	fg, err := b.Add(3).FlatGraph()
//
// Construction is synchronous and session-scoped: a Session (and every Builder
// allocated from it) must not be shared between goroutines without external
// synchronization. Use one Session per graph-construction lifetime.
package graph
