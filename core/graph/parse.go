package graph

import (
	"fmt"

	"github.com/openeo/openeo-go/internal/parse"
)

// ParseFlatGraph decodes a flat process graph from JSON text. Input is parsed
// leniently, so graphs pasted from notebooks or Python output with single
// quotes or True/None literals still decode. The decoded graph must contain
// exactly one node with the result flag set.
func ParseFlatGraph(content string) (FlatGraph, error) {
	fg, err := parse.As[FlatGraph](content)
	if err != nil {
		return nil, fmt.Errorf("decoding flat graph: %w", err)
	}

	results := 0
	for _, node := range fg {
		if isResult, ok := node["result"].(bool); ok && isResult {
			results++
		}
	}
	switch {
	case results == 0:
		return nil, ErrNoResultNode
	case results > 1:
		return nil, fmt.Errorf("openeo: flat graph has %d result nodes, expected one", results)
	}
	return fg, nil
}
