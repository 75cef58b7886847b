// Package device provides the catalog's device entity, its validation
// rules, and SQLite-backed persistence.
//
// # Architecture
//
// The package follows a repository pattern:
//
//	Repository (interface) ← SQLiteRepository (implementation)
//
// The HTTP API consumes the Repository interface, so tests can substitute
// an in-memory fake without a database.
//
// # Validation
//
// All six non-id fields (name, type, power, room, category, image) are
// required on create and update; power must parse as a non-negative number.
// Validation happens before any store access.
//
// # Errors
//
// Sentinel errors (ErrDeviceNotFound, ErrMissingField, ErrInvalidID,
// ErrInvalidPower) support errors.Is() checks at the API boundary, where
// they are mapped onto HTTP status codes.
package device
