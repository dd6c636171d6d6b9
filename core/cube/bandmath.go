package cube

import (
	"fmt"

	"github.com/openeo/openeo-go/core/graph"
)

// BandExpr is a band-math expression over one source cube. Its operator
// methods mirror the expression layer ([graph.ProcessBuilder]) and accept
// either a plain literal or another *BandExpr of the same cube as the right
// operand; the R-prefixed variants put the literal on the left.
//
// Materializing with Graph wraps the traced expression into the cube's
// reduce node as the reducer callback.
type BandExpr struct {
	cube *DataCube
	expr *graph.ProcessBuilder
	err  error
}

// Err returns the first construction error, or nil.
func (e *BandExpr) Err() error {
	if e.err != nil {
		return e.err
	}
	return e.expr.Err()
}

// Graph materializes the full submission graph: the cube lineage plus a
// reduce node over the bands dimension whose reducer holds the traced
// expression. A cross-collection or band-resolution error fails here and
// produces no graph.
func (e *BandExpr) Graph() (graph.FlatGraph, error) {
	if err := e.Err(); err != nil {
		return nil, err
	}
	callback, err := e.expr.FlatGraph()
	if err != nil {
		return nil, err
	}
	sch := e.cube.version.schema()
	reduced := graph.FromProcess(e.cube.session, sch.reduceProcessID, map[string]any{
		"data":      e.cube.builder,
		"reducer":   map[string]any{sch.wrapKey: callback},
		"dimension": bandsDimension,
	})
	return reduced.FlatGraph()
}

// Add emits an add node with x=self, y=other.
func (e *BandExpr) Add(other any) *BandExpr { return e.binary((*graph.ProcessBuilder).Add, other) }

// RAdd emits an add node with x=other, y=self (literal on the left).
func (e *BandExpr) RAdd(other any) *BandExpr { return e.binary((*graph.ProcessBuilder).RAdd, other) }

// Subtract emits a subtract node with x=self, y=other.
func (e *BandExpr) Subtract(other any) *BandExpr {
	return e.binary((*graph.ProcessBuilder).Subtract, other)
}

// RSubtract emits a subtract node with x=other, y=self (literal on the left).
func (e *BandExpr) RSubtract(other any) *BandExpr {
	return e.binary((*graph.ProcessBuilder).RSubtract, other)
}

// Multiply emits a multiply node with x=self, y=other.
func (e *BandExpr) Multiply(other any) *BandExpr {
	return e.binary((*graph.ProcessBuilder).Multiply, other)
}

// RMultiply emits a multiply node with x=other, y=self (literal on the left).
func (e *BandExpr) RMultiply(other any) *BandExpr {
	return e.binary((*graph.ProcessBuilder).RMultiply, other)
}

// Divide emits a divide node with x=self, y=other.
func (e *BandExpr) Divide(other any) *BandExpr {
	return e.binary((*graph.ProcessBuilder).Divide, other)
}

// RDivide emits a divide node with x=other, y=self (literal on the left).
func (e *BandExpr) RDivide(other any) *BandExpr {
	return e.binary((*graph.ProcessBuilder).RDivide, other)
}

// Eq emits an eq node comparing self to other.
func (e *BandExpr) Eq(other any) *BandExpr { return e.binary((*graph.ProcessBuilder).Eq, other) }

// Neq emits a neq node comparing self to other.
func (e *BandExpr) Neq(other any) *BandExpr { return e.binary((*graph.ProcessBuilder).Neq, other) }

// Gt emits a gt node comparing self to other.
func (e *BandExpr) Gt(other any) *BandExpr { return e.binary((*graph.ProcessBuilder).Gt, other) }

// Gte emits a gte node comparing self to other.
func (e *BandExpr) Gte(other any) *BandExpr { return e.binary((*graph.ProcessBuilder).Gte, other) }

// Lt emits an lt node comparing self to other.
func (e *BandExpr) Lt(other any) *BandExpr { return e.binary((*graph.ProcessBuilder).Lt, other) }

// Lte emits an lte node comparing self to other.
func (e *BandExpr) Lte(other any) *BandExpr { return e.binary((*graph.ProcessBuilder).Lte, other) }

// And emits an and node with x=self, y=other.
func (e *BandExpr) And(other any) *BandExpr { return e.binary((*graph.ProcessBuilder).And, other) }

// Or emits an or node with x=self, y=other.
func (e *BandExpr) Or(other any) *BandExpr { return e.binary((*graph.ProcessBuilder).Or, other) }

// Not emits a not node with x=self.
func (e *BandExpr) Not() *BandExpr {
	return &BandExpr{cube: e.cube, expr: e.expr.Not(), err: e.err}
}

// Neg negates the expression as a single multiply-by-minus-one node.
func (e *BandExpr) Neg() *BandExpr {
	return &BandExpr{cube: e.cube, expr: e.expr.Neg(), err: e.err}
}

// LinearScaleRange rescales the expression from the input range to the output
// range with a linear_scale_range node.
func (e *BandExpr) LinearScaleRange(inputMin, inputMax, outputMin, outputMax float64) *BandExpr {
	scaled := e.expr.Process("linear_scale_range", map[string]any{
		"x":         e.expr,
		"inputMin":  inputMin,
		"inputMax":  inputMax,
		"outputMin": outputMin,
		"outputMax": outputMax,
	})
	return &BandExpr{cube: e.cube, expr: scaled, err: e.err}
}

// binary applies one binary operator. Combining bands that originate from two
// different cubes fails with ErrBandMath before any node is emitted: a single
// reducer callback can only read one collection.
func (e *BandExpr) binary(apply func(*graph.ProcessBuilder, any) *graph.ProcessBuilder, other any) *BandExpr {
	operand := other
	if otherExpr, ok := other.(*BandExpr); ok {
		if otherExpr.cube != e.cube {
			err := e.err
			if err == nil {
				err = fmt.Errorf("%w: cannot combine bands from collections %q and %q in one expression",
					ErrBandMath, e.cube.metadata.ID, otherExpr.cube.metadata.ID)
			}
			return &BandExpr{cube: e.cube, expr: e.expr, err: err}
		}
		if e.err == nil && otherExpr.err != nil {
			return &BandExpr{cube: e.cube, expr: e.expr, err: otherExpr.err}
		}
		operand = otherExpr.expr
	}
	return &BandExpr{cube: e.cube, expr: apply(e.expr, operand), err: e.err}
}
