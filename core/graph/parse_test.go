package graph

import (
	"errors"
	"testing"
)

func TestParseFlatGraph(t *testing.T) {
	fg, err := ParseFlatGraph(`{"add1": {"process_id": "add", "arguments": {"x": 1, "y": 2}, "result": true}}`)
	if err != nil {
		t.Fatalf("ParseFlatGraph: %v", err)
	}
	node, ok := fg["add1"]
	if !ok {
		t.Fatalf("missing node add1 in %v", fg)
	}
	if got := node["process_id"]; got != "add" {
		t.Errorf("process_id = %v, want add", got)
	}
}

func TestParseFlatGraphLenient(t *testing.T) {
	fg, err := ParseFlatGraph(`{'neg1': {'process_id': 'multiply', 'arguments': {'x': 3, 'y': -1}, 'result': True}}`)
	if err != nil {
		t.Fatalf("ParseFlatGraph: %v", err)
	}
	if _, ok := fg["neg1"]; !ok {
		t.Fatalf("missing node neg1 in %v", fg)
	}
}

func TestParseFlatGraphNoResult(t *testing.T) {
	_, err := ParseFlatGraph(`{"add1": {"process_id": "add", "arguments": {}}}`)
	if !errors.Is(err, ErrNoResultNode) {
		t.Fatalf("err = %v, want ErrNoResultNode", err)
	}
}

func TestParseFlatGraphMultipleResults(t *testing.T) {
	_, err := ParseFlatGraph(`{
		"add1": {"process_id": "add", "arguments": {}, "result": true},
		"add2": {"process_id": "add", "arguments": {}, "result": true}
	}`)
	if err == nil {
		t.Fatal("expected error for two result nodes")
	}
}
