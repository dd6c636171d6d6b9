package graph

// FlatGraph is the submission format of a process graph: a mapping of node id
// to serialized node. Key order is irrelevant; every {"from_node": id}
// reference inside a node's arguments resolves to a key of the same mapping.
type FlatGraph map[string]map[string]any

// Node is one process invocation in a graph. Nodes are immutable once built:
// construction allocates a fresh id from the session, so building an
// equivalent node twice yields two distinct nodes.
type Node struct {
	id        string
	processID string
	namespace string
	arguments map[string]any
}

// ID returns the node's session-unique id.
func (n *Node) ID() string {
	return n.id
}

// ProcessID returns the process this node invokes.
func (n *Node) ProcessID() string {
	return n.processID
}

// FlatGraphView returns the single-entry flat graph {id: node} without the
// result flag set.
func (n *Node) FlatGraphView() FlatGraph {
	return FlatGraph{n.id: n.toMap(false)}
}

// ResultView returns the single-entry flat graph {id: node} with the result
// flag set.
func (n *Node) ResultView() FlatGraph {
	return FlatGraph{n.id: n.toMap(true)}
}

// toMap serializes the node to its wire shape. The arguments mapping is shared
// with the node, which is safe because arguments are normalized literals and
// reference maps that nothing mutates after construction.
func (n *Node) toMap(result bool) map[string]any {
	m := map[string]any{
		"process_id": n.processID,
		"arguments":  n.arguments,
	}
	if n.namespace != "" {
		m["namespace"] = n.namespace
	}
	if result {
		m["result"] = true
	}
	return m
}

// ParameterRef is an argument value referencing a named parameter of the
// enclosing callback, serialized as {"from_argument": name}.
type ParameterRef struct {
	Name string
}

// Parameter returns an argument value referencing a named callback parameter.
func Parameter(name string) ParameterRef {
	return ParameterRef{Name: name}
}

// nodeRef is an argument value referencing another node of the same graph,
// serialized as {"from_node": id}.
type nodeRef struct {
	id string
}

func (r nodeRef) toMap() map[string]any {
	return map[string]any{"from_node": r.id}
}

func (r ParameterRef) toMap() map[string]any {
	return map[string]any{"from_argument": r.Name}
}
