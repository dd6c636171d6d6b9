// Package cube provides the raster-cube façade over the graph layer: loading
// a collection, accessing its bands, and compiling band arithmetic into a
// reducer callback wrapped in a reduce node.
//
// Two OpenEO graph-schema generations exist side by side ([V040] and [V100]);
// the generation is chosen once per cube and only affects how the traced
// callback is wrapped (reduce vs reduce_dimension, callback vs process_graph
// key). The expression layer underneath is generation-agnostic.
//
// Example:
//
//	s := graph.NewSession()
//	c := cube.LoadCollection(s, cube.V100, metadata)
//	evi := c.Band("B08").Subtract(c.Band("B04")).Multiply(2.5)
//	fg, err := evi.Graph()
//
// Combining bands of two different source collections in one expression is
// not representable in a single reducer callback and fails with
// [ErrBandMath].
package cube
