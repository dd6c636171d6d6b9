package cube

import (
	"fmt"
	"strings"
)

// APIVersion identifies the graph-schema generation of a backend. It is
// selected once per cube (from the backend capabilities document) and never
// varies per node.
type APIVersion string

const (
	// V040 is the 0.4.x generation: reduce nodes with a
	// {"callback": ...} reducer wrapper.
	V040 APIVersion = "0.4.0"

	// V100 is the 1.x generation: reduce_dimension nodes with a
	// {"process_graph": ...} reducer wrapper.
	V100 APIVersion = "1.0.0"
)

// ParseAPIVersion maps a backend-reported version string to the graph-schema
// generation it speaks.
func ParseAPIVersion(reported string) (APIVersion, error) {
	switch {
	case strings.HasPrefix(reported, "0.4"):
		return V040, nil
	case strings.HasPrefix(reported, "1."):
		return V100, nil
	default:
		return "", fmt.Errorf("openeo: unsupported api_version %q", reported)
	}
}

// bandsDimension is the name of the spectral bands dimension in reduce nodes.
// TODO: read the dimension name from cube:dimensions instead of hardcoding it.
const bandsDimension = "spectral_bands"

// schema captures everything that differs between the two generations when
// wrapping a traced reducer callback.
type schema struct {
	reduceProcessID string
	applyProcessID  string
	wrapKey         string
}

func (v APIVersion) schema() schema {
	if v == V040 {
		return schema{reduceProcessID: "reduce", applyProcessID: "apply", wrapKey: "callback"}
	}
	return schema{reduceProcessID: "reduce_dimension", applyProcessID: "apply", wrapKey: "process_graph"}
}
