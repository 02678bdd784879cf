// Package ferrors defines the sentinel error kinds used across the flight
// controller so callers can classify failures with errors.Is/errors.As
// instead of string matching.
package ferrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the five recognized failure kinds. Wrap these with
// fmt.Errorf("...: %w", ErrX) to add context while keeping errors.Is working.
var (
	// ErrNormalization marks a zero-magnitude vector that could not be
	// normalized during an AHRS update.
	ErrNormalization = errors.New("ferrors: normalization error")
	// ErrDeviceIO marks a transient read/write failure against a device.
	ErrDeviceIO = errors.New("ferrors: device i/o error")
	// ErrParse marks malformed wire data (e.g. an SBUS header/footer/flag
	// mismatch).
	ErrParse = errors.New("ferrors: parse error")
	// ErrConfig marks a missing or out-of-range configuration value.
	ErrConfig = errors.New("ferrors: configuration error")
	// ErrChannelClosed marks an upstream worker that has exited, closing
	// its outbound channel.
	ErrChannelClosed = errors.New("ferrors: channel closed")
)

// Wrap attaches a message to a sentinel error kind while preserving
// errors.Is compatibility.
func Wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), kind)
}
