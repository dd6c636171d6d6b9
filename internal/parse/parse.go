package parse

import (
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonrepair"
)

// As parses a JSON string into the target type T. Strict parsing is attempted
// first; on failure the input is run through jsonrepair and parsed again.
// The lenient fallback exists because process graphs are commonly pasted from
// notebooks, docs, or Python REPL output where single quotes, trailing commas,
// and Python literals (True/None) creep in.
//
// Example usage:
//
//	graph, err := parse.As[map[string]any](`{'foo1': {'process_id': 'foo', 'result': True}}`)
func As[T any](content string) (T, error) {
	var result T

	err := json.Unmarshal([]byte(content), &result)
	if err == nil {
		return result, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(content)
	if repairErr != nil {
		return result, fmt.Errorf("failed to unmarshal content as %T and failed to repair JSON: unmarshal error: %w, repair error: %v", result, err, repairErr)
	}

	if err = json.Unmarshal([]byte(repaired), &result); err != nil {
		return result, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w (repaired: %s)", result, err, repaired)
	}
	return result, nil
}
