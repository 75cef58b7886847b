package client

import (
	"strings"

	"github.com/homielabs/homie-registry/internal/device"
)

// NormalizeImagePath turns free-form user input into a catalogue image path.
//
// Rules, in order:
//  1. A name without a file extension gets ".png" appended.
//  2. A name without a path separator is placed under "images/".
//  3. An empty name falls back to the default image.
//
// Examples:
//
//	"lamp"            → "images/lamp.png"
//	"lamp.jpg"        → "images/lamp.jpg"
//	"assets/lamp.png" → "assets/lamp.png"
//	""                → "images/default.png"
func NormalizeImagePath(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return device.DefaultImage
	}

	if !strings.Contains(name, ".") {
		name += ".png"
	}

	if !strings.Contains(name, "/") {
		name = "images/" + name
	}

	return name
}

// FilterDevices returns the devices matching a search query and power range.
//
// The query matches case-insensitively against name, type, room, and
// category. Power bounds are inclusive; devices whose power rating is
// not numeric are excluded from range filtering. Nil bounds are open.
//
// The result is always non-nil.
func FilterDevices(devices []device.Device, query string, powerMin, powerMax *float64) []device.Device {
	filter := device.Filter{
		Query:    query,
		PowerMin: powerMin,
		PowerMax: powerMax,
	}

	matched := []device.Device{}
	for i := range devices {
		if filter.Matches(&devices[i]) {
			matched = append(matched, devices[i])
		}
	}
	return matched
}
