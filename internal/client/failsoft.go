package client

import (
	"context"

	"github.com/homielabs/homie-registry/internal/device"
	"github.com/homielabs/homie-registry/internal/infrastructure/logging"
)

// FailSoft wraps a Client with a degraded-operation policy: a UI built
// on it keeps rendering when the registry is down.
//
// Reads return empty results on failure (never nil slices), mutations
// become no-ops. Every swallowed failure is logged so operators can
// still see what went wrong.
type FailSoft struct {
	client *Client
	logger *logging.Logger
}

// NewFailSoft wraps the given client with the fail-soft policy.
func NewFailSoft(client *Client, logger *logging.Logger) *FailSoft {
	return &FailSoft{
		client: client,
		logger: logger,
	}
}

// FetchAll retrieves every device, falling back to an empty (non-nil)
// slice when the registry is unreachable or failing.
func (f *FailSoft) FetchAll(ctx context.Context) []device.Device {
	devices, err := f.client.FetchAll(ctx)
	if err != nil {
		f.logger.Warn("fetch all devices failed, returning empty list", "error", err)
		return []device.Device{}
	}
	return devices
}

// Get retrieves a device by ID, returning nil when it does not exist
// or the registry is failing.
func (f *FailSoft) Get(ctx context.Context, id int64) *device.Device {
	dev, err := f.client.Get(ctx, id)
	if err != nil {
		f.logger.Warn("fetch device failed, returning nil", "device_id", id, "error", err)
		return nil
	}
	return dev
}

// Create adds a device; failures are logged and otherwise ignored.
func (f *FailSoft) Create(ctx context.Context, dev device.Device) {
	if err := f.client.Create(ctx, dev); err != nil {
		f.logger.Warn("create device failed", "name", dev.Name, "error", err)
	}
}

// Update replaces a device; failures are logged and otherwise ignored.
func (f *FailSoft) Update(ctx context.Context, dev device.Device) {
	if err := f.client.Update(ctx, dev); err != nil {
		f.logger.Warn("update device failed", "device_id", dev.ID, "error", err)
	}
}

// Delete removes a device; failures are logged and otherwise ignored.
func (f *FailSoft) Delete(ctx context.Context, id int64) {
	if err := f.client.Delete(ctx, id); err != nil {
		f.logger.Warn("delete device failed", "device_id", id, "error", err)
	}
}
