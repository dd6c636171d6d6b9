// Package utils contains internal helpers shared across the library,
// primarily the instrumented JSON-over-HTTP request functions used by the
// connection layer.
package utils
