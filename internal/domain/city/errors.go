package city

import "errors"

// Sentinel kinds for city errors.
var (
	ErrUnknownCity = errors.New("unknown city")
)
