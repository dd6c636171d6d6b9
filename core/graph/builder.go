package graph

import "fmt"

// Builder accumulates the nodes of one flat graph and tracks its tip node,
// the candidate result. A Builder exclusively owns the graph it accumulates;
// expression handles ([ProcessBuilder]) hold only node references into it.
//
// Errors encountered during construction (id collisions on merge, callbacks
// without parameters) are recorded on the builder and reported when the graph
// is materialized, so expression chains stay fluent. The first error wins and
// later operations on a failed builder are inert.
type Builder struct {
	session *Session

	// nodes stores all accumulated nodes keyed by their id.
	nodes map[string]*Node

	// order preserves node insertion order for deterministic merges.
	order []string

	// tip is the id of the most recently added node, the candidate result.
	tip string

	// err is the first construction error, reported at materialization.
	err error
}

// NewBuilder creates an empty builder allocating ids from the given session.
func NewBuilder(session *Session) *Builder {
	return &Builder{
		session: session,
		nodes:   map[string]*Node{},
	}
}

// FromProcess creates a builder whose sole content is one node invoking the
// given process, marked as the builder's tip. Argument values that are
// themselves builders or expression handles are normalized into node
// references; literals pass through unchanged.
func FromProcess(session *Session, processID string, arguments map[string]any) *Builder {
	builder := NewBuilder(session)
	builder.addNode(processID, "", arguments)
	return builder
}

// FromProcessNS is FromProcess with a process namespace.
func FromProcessNS(session *Session, processID, namespace string, arguments map[string]any) *Builder {
	builder := NewBuilder(session)
	builder.addNode(processID, namespace, arguments)
	return builder
}

// Session returns the session this builder allocates ids from.
func (b *Builder) Session() *Session {
	return b.session
}

// Err returns the first construction error, or nil.
func (b *Builder) Err() error {
	return b.err
}

// FlatGraph returns all accumulated nodes with exactly the tip node's result
// flag set. It fails if the builder holds no nodes or no tip. Repeated calls
// return structurally identical graphs.
func (b *Builder) FlatGraph() (FlatGraph, error) {
	return b.flatGraphWithResult(b.tip)
}

// flatGraphWithResult serializes the graph with the given node as result.
func (b *Builder) flatGraphWithResult(resultID string) (FlatGraph, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.nodes) == 0 || resultID == "" {
		return nil, ErrNoResultNode
	}
	if _, ok := b.nodes[resultID]; !ok {
		return nil, fmt.Errorf("%w: result node %q is not part of this graph", ErrNoResultNode, resultID)
	}
	fg := make(FlatGraph, len(b.nodes))
	for id, node := range b.nodes {
		fg[id] = node.toMap(id == resultID)
	}
	return fg, nil
}

// addNode normalizes the arguments (merging any referenced graphs into this
// builder), allocates an id, and appends the node as the new tip.
func (b *Builder) addNode(processID, namespace string, arguments map[string]any) *Node {
	normalized := make(map[string]any, len(arguments))
	for name, value := range arguments {
		normalized[name] = b.normalize(value)
	}

	node := &Node{
		id:        b.session.NextID(processID),
		processID: processID,
		namespace: namespace,
		arguments: normalized,
	}
	b.nodes[node.id] = node
	b.order = append(b.order, node.id)
	b.tip = node.id
	return node
}

// normalize converts an argument value to its wire shape. Expression handles
// and builders become {"from_node": id} references after their graphs are
// absorbed into this builder; parameter references become {"from_argument":
// name}; slices and maps are normalized recursively; everything else passes
// through as a literal.
func (b *Builder) normalize(value any) any {
	switch v := value.(type) {
	case *ProcessBuilder:
		if v == nil {
			return nil
		}
		b.absorb(v.builder)
		return b.normalize(v.ref)
	case *Builder:
		if v == nil {
			return nil
		}
		b.absorb(v)
		if v.tip == "" {
			b.fail(fmt.Errorf("%w: empty graph used as argument", ErrNoResultNode))
			return nil
		}
		return nodeRef{id: v.tip}.toMap()
	case nodeRef:
		return v.toMap()
	case ParameterRef:
		return v.toMap()
	case []any:
		normalized := make([]any, len(v))
		for i, item := range v {
			normalized[i] = b.normalize(item)
		}
		return normalized
	case map[string]any:
		normalized := make(map[string]any, len(v))
		for key, item := range v {
			normalized[key] = b.normalize(item)
		}
		return normalized
	default:
		return value
	}
}

// absorb unions another builder's nodes into this one. Same-handle absorption
// is a no-op, which is what keeps shared ancestor lineages from being
// duplicated: whether a real merge is needed is decided by handle identity of
// the builder, not by comparing node ids. Distinct nodes under the same id
// fail with ErrIDCollision.
func (b *Builder) absorb(other *Builder) {
	if other == nil || other == b {
		return
	}
	if other.err != nil {
		b.fail(other.err)
		return
	}
	for _, id := range other.order {
		node := other.nodes[id]
		if existing, ok := b.nodes[id]; ok {
			if existing != node {
				b.fail(fmt.Errorf("%w: id %q held by two distinct nodes", ErrIDCollision, id))
				return
			}
			continue
		}
		b.nodes[id] = node
		b.order = append(b.order, id)
	}
}

// fail records the first construction error.
func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}
