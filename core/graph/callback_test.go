package graph

import (
	"errors"
	"reflect"
	"testing"
)

// TestParameterNamesPositional verifies positional binding to the offered
// names, excluding a variadic catch-all.
func TestParameterNamesPositional(t *testing.T) {
	addStuff := func(foo, bar *ProcessBuilder, rest ...*ProcessBuilder) *ProcessBuilder {
		return foo.Add(bar)
	}
	names, err := ParameterNames(addStuff, []string{"foo", "bar", "baz"})
	if err != nil {
		t.Fatalf("ParameterNames failed: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"foo", "bar"}) {
		t.Errorf("expected [foo bar], got %v", names)
	}
}

// TestParameterNamesZeroParams verifies the configuration error when a
// callback declares no parameters but the call site expects at least one.
func TestParameterNamesZeroParams(t *testing.T) {
	constant := func() *ProcessBuilder { return nil }
	_, err := ParameterNames(constant, []string{"data"})
	if !errors.Is(err, ErrNoParameters) {
		t.Errorf("expected ErrNoParameters, got %v", err)
	}
}

// TestParameterNamesTooMany verifies a callback cannot demand more parameters
// than the call site offers.
func TestParameterNamesTooMany(t *testing.T) {
	binary := func(x, y *ProcessBuilder) *ProcessBuilder { return x.Add(y) }
	if _, err := ParameterNames(binary, []string{"data"}); err == nil {
		t.Error("expected error for excess parameters")
	}
}

// TestParameterNamesNamedCallback verifies explicit names bind out of order.
func TestParameterNamesNamedCallback(t *testing.T) {
	nc := NamedCallback{
		Names: []string{"y", "x"},
		Fn:    func(y, x *ProcessBuilder) *ProcessBuilder { return x.Subtract(y) },
	}
	names, err := ParameterNames(nc, []string{"x", "y"})
	if err != nil {
		t.Fatalf("ParameterNames failed: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"y", "x"}) {
		t.Errorf("expected declared order [y x], got %v", names)
	}

	if _, err := ParameterNames(NamedCallback{Names: []string{"nope"}, Fn: nc.Fn}, []string{"x", "y"}); err == nil {
		t.Error("expected error for a name the call site does not offer")
	}
}

// TestCallbackGraphUnary verifies tracing a single-parameter reducer.
func TestCallbackGraphUnary(t *testing.T) {
	s := NewSession()
	fg, err := CallbackGraph(s, func(data *ProcessBuilder) *ProcessBuilder {
		return data.Multiply(2)
	}, []string{"data"})
	if err != nil {
		t.Fatalf("CallbackGraph failed: %v", err)
	}
	want := FlatGraph{
		"multiply1": {
			"process_id": "multiply",
			"arguments":  map[string]any{"x": map[string]any{"from_argument": "data"}, "y": 2},
			"result":     true,
		},
	}
	if !reflect.DeepEqual(fg, want) {
		t.Errorf("expected %v, got %v", want, fg)
	}
}

// TestCallbackGraphBinary verifies tracing a two-parameter reducer with
// from_argument leaves for both parameters.
func TestCallbackGraphBinary(t *testing.T) {
	s := NewSession()
	fg, err := CallbackGraph(s, func(x, y *ProcessBuilder) *ProcessBuilder {
		return x.Add(y)
	}, []string{"x", "y"})
	if err != nil {
		t.Fatalf("CallbackGraph failed: %v", err)
	}
	want := FlatGraph{
		"add1": {
			"process_id": "add",
			"arguments": map[string]any{
				"x": map[string]any{"from_argument": "x"},
				"y": map[string]any{"from_argument": "y"},
			},
			"result": true,
		},
	}
	if !reflect.DeepEqual(fg, want) {
		t.Errorf("expected %v, got %v", want, fg)
	}
}

// TestCallbackGraphRejectsNonFunc verifies a descriptive error for non-funcs.
func TestCallbackGraphRejectsNonFunc(t *testing.T) {
	s := NewSession()
	if _, err := CallbackGraph(s, 42, []string{"data"}); err == nil {
		t.Error("expected error for non-func callback")
	}
}

// TestCallbackGraphSingleResult verifies a multi-node callback marks exactly
// its final node as result.
func TestCallbackGraphSingleResult(t *testing.T) {
	s := NewSession()
	fg, err := CallbackGraph(s, func(data *ProcessBuilder) *ProcessBuilder {
		return data.Add(1).Multiply(3)
	}, []string{"data"})
	if err != nil {
		t.Fatalf("CallbackGraph failed: %v", err)
	}
	resultCount := 0
	for _, node := range fg {
		if node["result"] == true {
			resultCount++
		}
	}
	if resultCount != 1 {
		t.Errorf("expected exactly one result node, got %d in %v", resultCount, fg)
	}
	if fg["multiply1"]["result"] != true {
		t.Errorf("expected multiply1 to be the result, got %v", fg)
	}
}
