package cube

import "errors"

// ErrBandMath is returned when a band-math expression cannot be represented,
// most prominently when bands of two different source collections are
// combined in one expression.
var ErrBandMath = errors.New("openeo: unsupported band math operation")

// ErrUnknownBand is returned when a band reference does not resolve against
// the collection metadata.
var ErrUnknownBand = errors.New("openeo: unknown band")
