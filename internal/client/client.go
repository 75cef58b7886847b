// Package client provides a Go client for the device registry API.
//
// Two access styles are offered. Client reports every failure through
// explicit error returns. FailSoft wraps a Client with the degraded-UI
// policy of the original web frontend: reads fall back to empty results
// and mutations become silent no-ops, with failures logged for
// diagnostics rather than surfaced to the caller.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/homielabs/homie-registry/internal/device"
)

// defaultTimeout bounds each HTTP request made by the client.
const defaultTimeout = 10 * time.Second

// Sentinel errors for registry client operations.
// Use errors.Is() to check for these conditions.
var (
	// ErrNotFound indicates the requested device does not exist.
	ErrNotFound = errors.New("client: device not found")

	// ErrBadRequest indicates the server rejected the request payload.
	ErrBadRequest = errors.New("client: bad request")

	// ErrServerFailure indicates a 5xx response from the registry.
	ErrServerFailure = errors.New("client: server failure")
)

// Client is a strict HTTP client for the registry API.
// All failures are reported as errors.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a registry client for the given base URL
// (e.g. "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// FetchAll retrieves every device in the catalogue.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - []device.Device: All devices (possibly empty)
//   - error: If the request or decoding fails
func (c *Client) FetchAll(ctx context.Context) ([]device.Device, error) {
	var devices []device.Device
	if err := c.doJSON(ctx, http.MethodGet, "/api/devices", nil, &devices); err != nil {
		return nil, err
	}
	if devices == nil {
		devices = []device.Device{}
	}
	return devices, nil
}

// Get retrieves a single device by ID.
//
// Returns:
//   - *device.Device: The device
//   - error: ErrNotFound if no such device, or the transport failure
func (c *Client) Get(ctx context.Context, id int64) (*device.Device, error) {
	var dev device.Device
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/devices/%d", id), nil, &dev); err != nil {
		return nil, err
	}
	return &dev, nil
}

// Create adds a new device to the catalogue.
//
// The server does not return the generated ID; callers needing it
// should re-fetch the list.
func (c *Client) Create(ctx context.Context, dev device.Device) error {
	return c.doJSON(ctx, http.MethodPost, "/api/devices", dev, nil)
}

// Update replaces the device identified by dev.ID.
func (c *Client) Update(ctx context.Context, dev device.Device) error {
	return c.doJSON(ctx, http.MethodPut, "/api/devices", dev, nil)
}

// Delete removes the device with the given ID.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/devices", map[string]int64{"id": id}, nil)
}

// doJSON performs a JSON request against the registry and decodes the
// response into out (when out is non-nil).
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s %s: %w", method, path, err)
	}
	defer func() {
		//nolint:errcheck // Drain and close; nothing useful to do on failure
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if err := statusError(resp.StatusCode); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

// statusError maps an HTTP status code to a client sentinel error.
func statusError(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound:
		return ErrNotFound
	case status >= 400 && status < 500:
		return fmt.Errorf("%w: status %d", ErrBadRequest, status)
	default:
		return fmt.Errorf("%w: status %d", ErrServerFailure, status)
	}
}
