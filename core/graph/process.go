package graph

// ProcessBuilder is the lazy expression handle over a graph under
// construction: it wraps the node reference (or literal, or parameter
// reference) representing "the value so far". Every arithmetic, comparison,
// or logical method emits exactly one new node taking the previous value as
// its x argument, so chained expressions compile to sequential binary nodes,
// never to a single n-ary one.
//
// The binary methods accept either a plain Go literal or another
// *ProcessBuilder as the right operand. The R-prefixed variants are the
// reflected forms for a literal on the left (3 + b compiles as b.RAdd(3):
// x=3, y=b).
type ProcessBuilder struct {
	session *Session
	builder *Builder
	ref     any
}

// Process creates a builder for a single invocation of the given process.
// Arguments referencing other expressions are normalized into node
// references; literals pass through.
func Process(session *Session, processID string, arguments map[string]any) *ProcessBuilder {
	builder := NewBuilder(session)
	node := builder.addNode(processID, "", arguments)
	return &ProcessBuilder{session: session, builder: builder, ref: nodeRef{id: node.id}}
}

// ProcessNS is Process with a process namespace.
func ProcessNS(session *Session, processID, namespace string, arguments map[string]any) *ProcessBuilder {
	builder := NewBuilder(session)
	node := builder.addNode(processID, namespace, arguments)
	return &ProcessBuilder{session: session, builder: builder, ref: nodeRef{id: node.id}}
}

// FromParameter returns an expression handle bound to a named parameter of an
// enclosing callback, serialized as {"from_argument": name}. It owns an empty
// graph: nodes only appear once operations are applied to it.
func FromParameter(session *Session, name string) *ProcessBuilder {
	return &ProcessBuilder{session: session, builder: NewBuilder(session), ref: ParameterRef{Name: name}}
}

// FromNode returns an expression handle for the tip node of the given builder.
func FromNode(builder *Builder) *ProcessBuilder {
	return &ProcessBuilder{session: builder.session, builder: builder, ref: nodeRef{id: builder.tip}}
}

// Builder returns the graph builder this expression appends to.
func (pb *ProcessBuilder) Builder() *Builder {
	return pb.builder
}

// Err returns the first construction error of the underlying graph, or nil.
func (pb *ProcessBuilder) Err() error {
	return pb.builder.err
}

// FlatGraph materializes the graph with this expression's node as the result.
func (pb *ProcessBuilder) FlatGraph() (FlatGraph, error) {
	if pb.builder.err != nil {
		return nil, pb.builder.err
	}
	ref, ok := pb.ref.(nodeRef)
	if !ok {
		return nil, ErrNoResultNode
	}
	return pb.builder.flatGraphWithResult(ref.id)
}

// Process appends one invocation of an arbitrary process to this expression's
// graph and returns the handle for its output. The expression itself is not
// implicitly bound: pass it in arguments under the parameter name the process
// expects.
func (pb *ProcessBuilder) Process(processID string, arguments map[string]any) *ProcessBuilder {
	node := pb.builder.addNode(processID, "", arguments)
	return &ProcessBuilder{session: pb.session, builder: pb.builder, ref: nodeRef{id: node.id}}
}

// Add emits an add node with x=self, y=other.
func (pb *ProcessBuilder) Add(other any) *ProcessBuilder { return pb.binary("add", pb, other) }

// RAdd emits an add node with x=other, y=self (literal on the left).
func (pb *ProcessBuilder) RAdd(other any) *ProcessBuilder { return pb.binary("add", other, pb) }

// Subtract emits a subtract node with x=self, y=other.
func (pb *ProcessBuilder) Subtract(other any) *ProcessBuilder {
	return pb.binary("subtract", pb, other)
}

// RSubtract emits a subtract node with x=other, y=self (literal on the left).
func (pb *ProcessBuilder) RSubtract(other any) *ProcessBuilder {
	return pb.binary("subtract", other, pb)
}

// Multiply emits a multiply node with x=self, y=other.
func (pb *ProcessBuilder) Multiply(other any) *ProcessBuilder {
	return pb.binary("multiply", pb, other)
}

// RMultiply emits a multiply node with x=other, y=self (literal on the left).
func (pb *ProcessBuilder) RMultiply(other any) *ProcessBuilder {
	return pb.binary("multiply", other, pb)
}

// Divide emits a divide node with x=self, y=other.
func (pb *ProcessBuilder) Divide(other any) *ProcessBuilder { return pb.binary("divide", pb, other) }

// RDivide emits a divide node with x=other, y=self (literal on the left).
func (pb *ProcessBuilder) RDivide(other any) *ProcessBuilder {
	return pb.binary("divide", other, pb)
}

// Eq emits an eq node comparing self to other.
func (pb *ProcessBuilder) Eq(other any) *ProcessBuilder { return pb.binary("eq", pb, other) }

// Neq emits a neq node comparing self to other.
func (pb *ProcessBuilder) Neq(other any) *ProcessBuilder { return pb.binary("neq", pb, other) }

// Gt emits a gt node comparing self to other.
func (pb *ProcessBuilder) Gt(other any) *ProcessBuilder { return pb.binary("gt", pb, other) }

// Gte emits a gte node comparing self to other.
func (pb *ProcessBuilder) Gte(other any) *ProcessBuilder { return pb.binary("gte", pb, other) }

// Lt emits an lt node comparing self to other.
func (pb *ProcessBuilder) Lt(other any) *ProcessBuilder { return pb.binary("lt", pb, other) }

// Lte emits an lte node comparing self to other.
func (pb *ProcessBuilder) Lte(other any) *ProcessBuilder { return pb.binary("lte", pb, other) }

// And emits an and node with x=self, y=other.
func (pb *ProcessBuilder) And(other any) *ProcessBuilder { return pb.binary("and", pb, other) }

// Or emits an or node with x=self, y=other.
func (pb *ProcessBuilder) Or(other any) *ProcessBuilder { return pb.binary("or", pb, other) }

// Not emits a not node with x=self.
func (pb *ProcessBuilder) Not() *ProcessBuilder {
	node := pb.builder.addNode("not", "", map[string]any{"x": pb})
	return &ProcessBuilder{session: pb.session, builder: pb.builder, ref: nodeRef{id: node.id}}
}

// Neg negates the expression as a single multiply-by-minus-one node.
func (pb *ProcessBuilder) Neg() *ProcessBuilder {
	return pb.binary("multiply", pb, -1)
}

// binary emits one binary node. When both operands are expressions, x is the
// left operand's reference and y the right one's; graphs of all involved
// expressions are merged into this expression's builder first.
func (pb *ProcessBuilder) binary(processID string, x, y any) *ProcessBuilder {
	node := pb.builder.addNode(processID, "", map[string]any{"x": x, "y": y})
	return &ProcessBuilder{session: pb.session, builder: pb.builder, ref: nodeRef{id: node.id}}
}
