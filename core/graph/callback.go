package graph

import (
	"fmt"
	"reflect"
)

// Callbacks for higher-order processes (reducers, apply functions) are plain
// Go funcs taking *ProcessBuilder parameters and returning a *ProcessBuilder,
// for example:
//
//	func(data *graph.ProcessBuilder) *graph.ProcessBuilder { return data.Multiply(2) }
//
// Go reflection exposes a func's parameter count but not its parameter names,
// so binding works positionally against the parameter names the call site
// offers ("data" for reduce_dimension, "x"/"y" for binary reducers). A
// callback that needs to bind out of order wraps itself in [NamedCallback].

// NamedParameters lets a callback declare its parameter names explicitly
// instead of relying on positional binding.
type NamedParameters interface {
	ParameterNames() []string
}

// NamedCallback pairs a callback func with explicit parameter names, bound in
// the declared order.
type NamedCallback struct {
	Names []string
	Fn    any
}

// ParameterNames returns the declared names.
func (nc NamedCallback) ParameterNames() []string { return nc.Names }

var _ NamedParameters = NamedCallback{}

// ParameterNames resolves the parameter names a callback will be bound to, in
// declaration order. Plain funcs bind positionally to a prefix of available;
// a [NamedParameters] callback uses its declared names, which must all be
// offered by the call site. Variadic catch-all parameters are excluded.
//
// It fails with ErrNoParameters when the callback declares no usable
// parameters but the call site offers at least one.
func ParameterNames(fn any, available []string) ([]string, error) {
	if named, ok := fn.(NamedParameters); ok {
		names := named.ParameterNames()
		if len(names) == 0 && len(available) > 0 {
			return nil, fmt.Errorf("%w (expected up to %d of %v)", ErrNoParameters, len(available), available)
		}
		offered := make(map[string]bool, len(available))
		for _, name := range available {
			offered[name] = true
		}
		for _, name := range names {
			if !offered[name] {
				return nil, fmt.Errorf("openeo: callback parameter %q is not offered by the call site (available: %v)", name, available)
			}
		}
		return names, nil
	}

	arity, err := callbackArity(fn)
	if err != nil {
		return nil, err
	}
	if arity == 0 && len(available) > 0 {
		return nil, fmt.Errorf("%w (expected up to %d of %v)", ErrNoParameters, len(available), available)
	}
	if arity > len(available) {
		return nil, fmt.Errorf("openeo: callback declares %d parameters but the call site only offers %v", arity, available)
	}
	return available[:arity], nil
}

// CallbackGraph traces a callback into a nested flat graph: one placeholder
// expression per resolved parameter name is synthesized (each bound to a
// {"from_argument": name} reference), the callback is invoked with them, and
// the returned expression is materialized with its node as the single result.
func CallbackGraph(session *Session, fn any, available []string) (FlatGraph, error) {
	names, err := ParameterNames(fn, available)
	if err != nil {
		return nil, err
	}

	callable := fn
	if named, ok := fn.(NamedCallback); ok {
		callable = named.Fn
	}
	fixed, err := callbackArity(callable)
	if err != nil {
		return nil, err
	}
	fnValue := reflect.ValueOf(callable)
	if fixed != len(names) {
		return nil, fmt.Errorf("openeo: callback declares %d parameters but %d names resolved (%v)", fixed, len(names), names)
	}

	args := make([]reflect.Value, len(names))
	for i, name := range names {
		args[i] = reflect.ValueOf(FromParameter(session, name))
	}

	out := fnValue.Call(args)
	if len(out) != 1 {
		return nil, fmt.Errorf("openeo: callback must return exactly one *ProcessBuilder, got %d values", len(out))
	}
	result, ok := out[0].Interface().(*ProcessBuilder)
	if !ok || result == nil {
		return nil, fmt.Errorf("openeo: callback must return a *ProcessBuilder, got %v", out[0].Type())
	}
	return result.FlatGraph()
}

// callbackArity returns the number of usable parameters of a callback func:
// its *ProcessBuilder parameters in declaration order, excluding a variadic
// catch-all.
func callbackArity(fn any) (int, error) {
	fnType := reflect.TypeOf(fn)
	if fnType == nil || fnType.Kind() != reflect.Func {
		return 0, fmt.Errorf("openeo: callback must be a func, got %T", fn)
	}
	count := fnType.NumIn()
	if fnType.IsVariadic() {
		count--
	}
	builderType := reflect.TypeOf((*ProcessBuilder)(nil))
	for i := 0; i < count; i++ {
		if fnType.In(i) != builderType {
			return 0, fmt.Errorf("openeo: callback parameter %d must be *ProcessBuilder, got %v", i, fnType.In(i))
		}
	}
	return count, nil
}
