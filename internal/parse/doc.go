// Package parse provides lenient JSON parsing for values that originate
// outside the library: process graphs pasted from notebooks and error
// documents returned by backends. Strict encoding/json is always tried first;
// jsonrepair is only a fallback.
package parse
