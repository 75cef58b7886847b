package device

import "errors"

// Domain errors for the device package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, device.ErrDeviceNotFound) {
//	    // handle not found case
//	}
var (
	// ErrDeviceNotFound is returned when a device ID does not exist.
	ErrDeviceNotFound = errors.New("device: not found")

	// ErrMissingField is returned when a required field is empty.
	// All six non-id fields are required on create and update.
	ErrMissingField = errors.New("device: missing required field")

	// ErrInvalidID is returned when an ID is absent, zero, or does not
	// parse as an integer.
	ErrInvalidID = errors.New("device: invalid id")

	// ErrInvalidPower is returned when a power rating does not parse as a
	// non-negative number.
	ErrInvalidPower = errors.New("device: invalid power rating")
)
