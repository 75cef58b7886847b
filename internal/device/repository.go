package device

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Repository defines the interface for device persistence operations.
// This abstraction allows for different implementations (SQLite, mock, etc.)
// and enables unit testing without database dependencies.
type Repository interface {
	// GetByID retrieves a device by its unique identifier.
	// Returns ErrDeviceNotFound if the device does not exist.
	GetByID(ctx context.Context, id int64) (*Device, error)

	// List retrieves all devices matching the filter. A zero filter
	// returns every device in store order.
	List(ctx context.Context, filter Filter) ([]Device, error)

	// Create inserts a new device. The store assigns the ID, which is
	// written back to the passed device.
	Create(ctx context.Context, device *Device) error

	// Update replaces all six non-id fields of an existing device.
	// Returns ErrDeviceNotFound if the device does not exist.
	Update(ctx context.Context, device *Device) error

	// Delete removes a device by ID.
	// Returns ErrDeviceNotFound if the device does not exist.
	Delete(ctx context.Context, id int64) error

	// Count returns the number of devices in the catalog.
	Count(ctx context.Context) (int, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
// The db parameter should be an open SQLite connection.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const deviceColumns = "id, name, type, power, room, category, image"

// GetByID retrieves a device by its unique identifier.
func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*Device, error) {
	query := "SELECT " + deviceColumns + " FROM devices WHERE id = ?"

	var d Device
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.Name, &d.Type, &d.Power, &d.Room, &d.Category, &d.Image,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDeviceNotFound
		}
		return nil, fmt.Errorf("querying device by id: %w", err)
	}
	return &d, nil
}

// List retrieves all devices matching the filter.
//
// The query substring match runs in SQL; power range bounds are applied in
// Go because the power column is text and non-numeric values must be
// excluded rather than coerced to zero.
func (r *SQLiteRepository) List(ctx context.Context, filter Filter) ([]Device, error) {
	query := "SELECT " + deviceColumns + " FROM devices"
	var args []any

	if q := strings.ToLower(strings.TrimSpace(filter.Query)); q != "" {
		query += ` WHERE LOWER(name) LIKE ? OR LOWER(type) LIKE ?
			OR LOWER(room) LIKE ? OR LOWER(category) LIKE ?`
		pattern := "%" + q + "%"
		args = append(args, pattern, pattern, pattern, pattern)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying devices: %w", err)
	}
	defer rows.Close()

	var devices []Device
	for rows.Next() {
		var d Device
		if err := rows.Scan(&d.ID, &d.Name, &d.Type, &d.Power, &d.Room, &d.Category, &d.Image); err != nil {
			return nil, fmt.Errorf("scanning device: %w", err)
		}
		if filter.PowerMin != nil || filter.PowerMax != nil {
			rangeOnly := Filter{PowerMin: filter.PowerMin, PowerMax: filter.PowerMax}
			if !rangeOnly.Matches(&d) {
				continue
			}
		}
		devices = append(devices, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating devices: %w", err)
	}

	return devices, nil
}

// Create inserts a new device and assigns the store-generated ID.
func (r *SQLiteRepository) Create(ctx context.Context, device *Device) error {
	query := `
		INSERT INTO devices (name, type, power, room, category, image)
		VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		device.Name,
		device.Type,
		device.Power,
		device.Room,
		device.Category,
		device.Image,
	)
	if err != nil {
		return fmt.Errorf("inserting device: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inserted id: %w", err)
	}
	device.ID = id

	return nil
}

// Update replaces all six non-id fields of an existing device.
func (r *SQLiteRepository) Update(ctx context.Context, device *Device) error {
	query := `
		UPDATE devices
		SET name = ?, type = ?, power = ?, room = ?, category = ?, image = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		device.Name,
		device.Type,
		device.Power,
		device.Room,
		device.Category,
		device.Image,
		device.ID,
	)
	if err != nil {
		return fmt.Errorf("updating device: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrDeviceNotFound
	}

	return nil
}

// Delete removes a device by ID.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM devices WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting device: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrDeviceNotFound
	}

	return nil
}

// Count returns the number of devices in the catalog.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM devices").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting devices: %w", err)
	}
	return count, nil
}
