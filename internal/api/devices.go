package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/homielabs/homie-registry/internal/device"
)

// handleListDevices returns all devices, with optional query filters.
//
// Query parameters:
//   - q: case-insensitive substring match on name, type, room, category
//   - powermin: minimum power rating (inclusive)
//   - powermax: maximum power rating (inclusive)
//
// Devices whose power rating is not numeric are excluded from range
// filtering rather than causing an error.
func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	devices, err := s.repo.List(r.Context(), filter)
	if err != nil {
		s.logger.Error("failed to list devices", "error", err,
			"request_id", r.Context().Value(ctxKeyRequestID))
		writeInternalError(w, "failed to list devices")
		return
	}

	if devices == nil {
		devices = []device.Device{}
	}

	s.updateDeviceGauge(r.Context())
	writeJSON(w, http.StatusOK, devices)
}

// parseListFilter extracts the optional list filter from query parameters.
func parseListFilter(r *http.Request) (device.Filter, error) {
	var filter device.Filter

	filter.Query = r.URL.Query().Get("q")

	if v := r.URL.Query().Get("powermin"); v != "" {
		minVal, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return device.Filter{}, errors.New("powermin must be numeric")
		}
		filter.PowerMin = &minVal
	}

	if v := r.URL.Query().Get("powermax"); v != "" {
		maxVal, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return device.Filter{}, errors.New("powermax must be numeric")
		}
		filter.PowerMax = &maxVal
	}

	return filter, nil
}

// handleGetDevice returns a single device by ID from the URL path.
func (s *Server) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeBadRequest(w, "invalid device id")
		return
	}

	dev, err := s.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, device.ErrDeviceNotFound) {
			writeNotFound(w, "device not found")
			return
		}
		s.logger.Error("failed to get device", "error", err, "device_id", id,
			"request_id", r.Context().Value(ctxKeyRequestID))
		writeInternalError(w, "failed to get device")
		return
	}

	writeJSON(w, http.StatusOK, dev)
}

// handleCreateDevice creates a new device from the request body.
//
// The generated ID is not included in the response; clients re-fetch
// the list to pick up new rows.
func (s *Server) handleCreateDevice(w http.ResponseWriter, r *http.Request) {
	var dev device.Device
	if err := json.NewDecoder(r.Body).Decode(&dev); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if err := device.ValidateNew(&dev); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := s.repo.Create(r.Context(), &dev); err != nil {
		s.logger.Error("failed to create device", "error", err, "name", dev.Name,
			"request_id", r.Context().Value(ctxKeyRequestID))
		writeInternalError(w, "failed to create device")
		return
	}

	s.publishDeviceEvent(r.Context(), eventCreated, &dev)
	s.updateDeviceGauge(r.Context())
	writeJSON(w, http.StatusCreated, map[string]string{"message": "device created"})
}

// handleUpdateDevice replaces a device identified by the id in the request body.
func (s *Server) handleUpdateDevice(w http.ResponseWriter, r *http.Request) {
	var dev device.Device
	if err := json.NewDecoder(r.Body).Decode(&dev); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if err := device.ValidateExisting(&dev); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := s.repo.Update(r.Context(), &dev); err != nil {
		if errors.Is(err, device.ErrDeviceNotFound) {
			writeNotFound(w, "device not found")
			return
		}
		s.logger.Error("failed to update device", "error", err, "device_id", dev.ID,
			"request_id", r.Context().Value(ctxKeyRequestID))
		writeInternalError(w, "failed to update device")
		return
	}

	s.publishDeviceEvent(r.Context(), eventUpdated, &dev)
	writeJSON(w, http.StatusOK, map[string]string{"message": "device updated"})
}

// deleteDeviceRequest is the body of a DELETE /api/devices request.
type deleteDeviceRequest struct {
	ID json.Number `json:"id"`
}

// handleDeleteDevice removes a device identified by the id in the request body.
func (s *Server) handleDeleteDevice(w http.ResponseWriter, r *http.Request) {
	var req deleteDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	id, err := req.ID.Int64()
	if err != nil || id <= 0 {
		writeBadRequest(w, "id must be a positive integer")
		return
	}

	if err := s.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, device.ErrDeviceNotFound) {
			writeNotFound(w, "device not found")
			return
		}
		s.logger.Error("failed to delete device", "error", err, "device_id", id,
			"request_id", r.Context().Value(ctxKeyRequestID))
		writeInternalError(w, "failed to delete device")
		return
	}

	s.publishDeviceEvent(r.Context(), eventDeleted, &device.Device{ID: id})
	s.updateDeviceGauge(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"message": "device deleted"})
}
