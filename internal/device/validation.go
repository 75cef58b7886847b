package device

import (
	"fmt"
	"strconv"
	"strings"
)

// maxFieldLength caps text fields to keep accidental payload bloat out of
// the catalog.
const maxFieldLength = 200

// ValidateNew checks a candidate record for creation. All six non-id fields
// must be present and non-empty, and power must parse as a non-negative
// number. The ID is ignored: the store assigns it.
//
// Returns an error describing the first validation failure found.
func ValidateNew(d *Device) error {
	if d == nil {
		return fmt.Errorf("%w: device is nil", ErrMissingField)
	}

	fields := []struct {
		name  string
		value string
	}{
		{"name", d.Name},
		{"type", d.Type},
		{"power", d.Power},
		{"room", d.Room},
		{"category", d.Category},
		{"image", d.Image},
	}

	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
		if len(f.value) > maxFieldLength {
			return fmt.Errorf("%w: %s exceeds %d characters", ErrMissingField, f.name, maxFieldLength)
		}
	}

	if err := ValidatePower(d.Power); err != nil {
		return err
	}

	return nil
}

// ValidateExisting checks a full record for update. It applies the same
// field rules as ValidateNew and additionally requires a positive ID.
// A missing ID is a validation failure, distinct from the not-found case
// for a well-formed ID with no matching row.
func ValidateExisting(d *Device) error {
	if d == nil {
		return fmt.Errorf("%w: device is nil", ErrMissingField)
	}
	if d.ID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, d.ID)
	}
	return ValidateNew(d)
}

// ValidatePower checks that a power rating parses as a non-negative number.
func ValidatePower(power string) error {
	value, err := strconv.ParseFloat(strings.TrimSpace(power), 64)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidPower, power)
	}
	if value < 0 {
		return fmt.Errorf("%w: %q is negative", ErrInvalidPower, power)
	}
	return nil
}

// PowerValue parses a device's power rating. The second return value is
// false when the rating is not a number.
func PowerValue(power string) (float64, bool) {
	value, err := strconv.ParseFloat(strings.TrimSpace(power), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// Matches reports whether a device satisfies the filter. Query terms match
// case-insensitively against name, type, room, and category. Power bounds
// exclude devices whose rating is not numeric.
func (f Filter) Matches(d *Device) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		haystack := strings.ToLower(d.Name + " " + d.Type + " " + d.Room + " " + d.Category)
		if !strings.Contains(haystack, q) {
			return false
		}
	}

	if f.PowerMin != nil || f.PowerMax != nil {
		value, ok := PowerValue(d.Power)
		if !ok {
			return false
		}
		if f.PowerMin != nil && value < *f.PowerMin {
			return false
		}
		if f.PowerMax != nil && value > *f.PowerMax {
			return false
		}
	}

	return true
}
