package generators

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is returned synchronously for parameters outside a
// generator's domain (negative length, min > max, non-positive step, period
// or frequency, odd swap budget, inversion count out of range).
// These are programmer errors and are never retried.
var ErrInvalidParameter = errors.New("invalid parameter")

// ErrInsufficientRange is returned by the strict noise samplers when the
// scaled range cannot supply the requested number of unique values.
// The default samplers clamp to the available count instead.
var ErrInsufficientRange = errors.New("insufficient range")

// ErrUnknownGenerator is returned by Lookup for names not in the registry.
var ErrUnknownGenerator = errors.New("unknown generator")

func invalidf(method string, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s: %w", method, fmt.Sprintf(format, args...), ErrInvalidParameter)
}
