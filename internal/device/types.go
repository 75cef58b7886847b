package device

// DefaultImage is the sentinel image path used when a device has no usable
// image reference.
const DefaultImage = "images/default.png"

// Device represents a single smart-home appliance record in the catalog.
// This matches the database schema in migrations/20260301_120000_create_devices.up.sql.
type Device struct {
	// ID is assigned by the store on creation and never supplied by clients
	// on create.
	ID int64 `json:"id"`

	// Name is the display name, e.g. "Lamp".
	Name string `json:"name"`

	// Type is the appliance kind label, e.g. "Light".
	Type string `json:"type"`

	// Power is the power rating in watts. It is stored as text exactly as
	// submitted but must parse as a non-negative number.
	Power string `json:"power"`

	// Room is the room the device is located in.
	Room string `json:"room"`

	// Category is the catalog category, e.g. "Lighting".
	Category string `json:"category"`

	// Image is the path to the device image, e.g. "images/lamp.png".
	Image string `json:"image"`
}

// Filter holds optional criteria for listing devices.
// The zero value matches all devices.
type Filter struct {
	// Query is matched case-insensitively as a substring against name,
	// type, room, and category.
	Query string

	// PowerMin and PowerMax bound the numeric power rating (inclusive).
	// Devices whose power does not parse as a number never match a bounded
	// filter.
	PowerMin *float64
	PowerMax *float64
}

// IsZero reports whether the filter matches all devices.
func (f Filter) IsZero() bool {
	return f.Query == "" && f.PowerMin == nil && f.PowerMax == nil
}
