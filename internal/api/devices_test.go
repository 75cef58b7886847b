package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/homielabs/homie-registry/internal/device"
)

// lampJSON is a valid create payload used across tests.
const lampJSON = `{
	"name": "Lamp",
	"type": "Light",
	"power": "60",
	"room": "Living Room",
	"category": "Lighting",
	"image": "images/lamp.png"
}`

func TestDeviceLifecycle(t *testing.T) {
	srv, _ := testServer(t)

	// Create
	rec := doRequest(t, srv, http.MethodPost, "/api/devices", lampJSON)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}
	var created map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding create response: %v", err)
	}
	if created["message"] == "" {
		t.Error("expected a message in create response")
	}
	if _, ok := created["id"]; ok {
		t.Error("create response must not include the generated id")
	}

	// List to discover the assigned id
	rec = doRequest(t, srv, http.MethodGet, "/api/devices", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var devices []device.Device
	if err := json.Unmarshal(rec.Body.Bytes(), &devices); err != nil {
		t.Fatalf("decoding list response: %v", err)
	}
	if len(devices) != 1 {
		t.Fatalf("expected 1 device, got %d", len(devices))
	}
	id := devices[0].ID
	if id <= 0 {
		t.Fatalf("expected positive id, got %d", id)
	}

	// Update power rating
	update := fmt.Sprintf(`{"id": %d, "name": "Lamp", "type": "Light", "power": "75",
		"room": "Living Room", "category": "Lighting", "image": "images/lamp.png"}`, id)
	rec = doRequest(t, srv, http.MethodPut, "/api/devices", update)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	// Get by id reflects the update
	rec = doRequest(t, srv, http.MethodGet, fmt.Sprintf("/api/devices/%d", id), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}
	var fetched device.Device
	if err := json.Unmarshal(rec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("decoding get response: %v", err)
	}
	if fetched.Power != "75" {
		t.Errorf("power = %q, want 75", fetched.Power)
	}

	// Delete
	rec = doRequest(t, srv, http.MethodDelete, "/api/devices", fmt.Sprintf(`{"id": %d}`, id))
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	// Gone
	rec = doRequest(t, srv, http.MethodGet, fmt.Sprintf("/api/devices/%d", id), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestListDevices_Empty(t *testing.T) {
	srv, _ := testServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/devices", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	// Must be a JSON array, not null
	if got := rec.Body.String(); got[0] != '[' {
		t.Errorf("expected JSON array body, got %q", got)
	}
}

func TestListDevices_Filtered(t *testing.T) {
	srv, db := testServer(t)

	seed := []string{
		`{"name": "Desk Lamp", "type": "Light", "power": "40", "room": "Office", "category": "Lighting", "image": "images/lamp.png"}`,
		`{"name": "Heater", "type": "Climate", "power": "1500", "room": "Bedroom", "category": "Heating", "image": "images/heater.png"}`,
	}
	for _, body := range seed {
		if rec := doRequest(t, srv, http.MethodPost, "/api/devices", body); rec.Code != http.StatusCreated {
			t.Fatalf("seed create failed: %d %s", rec.Code, rec.Body.String())
		}
	}

	// Legacy rows may carry non-numeric power ratings; the API no longer
	// accepts them, so seed one directly.
	_, err := db.Exec(`INSERT INTO devices (name, type, power, room, category, image)
		VALUES ('Sensor', 'Sensor', 'n/a', 'Hallway', 'Security', 'images/sensor.png')`)
	if err != nil {
		t.Fatalf("seeding legacy row: %v", err)
	}

	tests := []struct {
		name      string
		query     string
		wantNames []string
	}{
		{
			name:      "substring on name",
			query:     "?q=lamp",
			wantNames: []string{"Desk Lamp"},
		},
		{
			name:      "substring on room",
			query:     "?q=bedroom",
			wantNames: []string{"Heater"},
		},
		{
			name:      "power range excludes non-numeric",
			query:     "?powermin=10&powermax=100",
			wantNames: []string{"Desk Lamp"},
		},
		{
			name:      "open-ended minimum",
			query:     "?powermin=1000",
			wantNames: []string{"Heater"},
		},
		{
			name:      "no match",
			query:     "?q=garage",
			wantNames: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodGet, "/api/devices"+tt.query, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			var devices []device.Device
			if err := json.Unmarshal(rec.Body.Bytes(), &devices); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if len(devices) != len(tt.wantNames) {
				t.Fatalf("got %d devices, want %d", len(devices), len(tt.wantNames))
			}
			for i, want := range tt.wantNames {
				if devices[i].Name != want {
					t.Errorf("device[%d].Name = %q, want %q", i, devices[i].Name, want)
				}
			}
		})
	}
}

func TestListDevices_InvalidFilter(t *testing.T) {
	srv, _ := testServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/devices?powermin=abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateDevice_MissingFields(t *testing.T) {
	srv, _ := testServer(t)

	fields := []string{"name", "type", "power", "room", "category", "image"}
	full := map[string]string{
		"name":     "Lamp",
		"type":     "Light",
		"power":    "60",
		"room":     "Living Room",
		"category": "Lighting",
		"image":    "images/lamp.png",
	}

	for _, missing := range fields {
		t.Run("missing "+missing, func(t *testing.T) {
			payload := make(map[string]string, len(full)-1)
			for k, v := range full {
				if k != missing {
					payload[k] = v
				}
			}
			body, _ := json.Marshal(payload)

			rec := doRequest(t, srv, http.MethodPost, "/api/devices", string(body))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}

	// No partial rows were written
	rec := doRequest(t, srv, http.MethodGet, "/api/devices", "")
	var devices []device.Device
	if err := json.Unmarshal(rec.Body.Bytes(), &devices); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	if len(devices) != 0 {
		t.Errorf("expected no devices after failed creates, got %d", len(devices))
	}
}

func TestCreateDevice_InvalidPower(t *testing.T) {
	srv, _ := testServer(t)

	tests := []struct {
		name  string
		power string
	}{
		{"non-numeric", "lots"},
		{"negative", "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := fmt.Sprintf(`{"name": "Lamp", "type": "Light", "power": %q,
				"room": "Living Room", "category": "Lighting", "image": "images/lamp.png"}`, tt.power)
			rec := doRequest(t, srv, http.MethodPost, "/api/devices", body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestCreateDevice_InvalidJSON(t *testing.T) {
	srv, _ := testServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/devices", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateDevice_NotFound(t *testing.T) {
	srv, _ := testServer(t)

	body := `{"id": 999999, "name": "Ghost", "type": "Light", "power": "1",
		"room": "Nowhere", "category": "Lighting", "image": "images/ghost.png"}`
	rec := doRequest(t, srv, http.MethodPut, "/api/devices", body)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestUpdateDevice_MissingID(t *testing.T) {
	srv, _ := testServer(t)

	rec := doRequest(t, srv, http.MethodPut, "/api/devices", lampJSON)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDeleteDevice_BadID(t *testing.T) {
	srv, _ := testServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing id", `{}`},
		{"non-integer id", `{"id": "abc"}`},
		{"fractional id", `{"id": 1.5}`},
		{"negative id", `{"id": -1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodDelete, "/api/devices", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestDeleteDevice_NotFound(t *testing.T) {
	srv, _ := testServer(t)

	rec := doRequest(t, srv, http.MethodDelete, "/api/devices", `{"id": 424242}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGetDevice_BadID(t *testing.T) {
	srv, _ := testServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/devices/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDeviceEvents(t *testing.T) {
	srv, _ := testServer(t)
	pub := &fakePublisher{}
	srv.events = pub

	// A failed validation must not publish
	rec := doRequest(t, srv, http.MethodPost, "/api/devices", `{"name": ""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := pub.published(); len(got) != 0 {
		t.Fatalf("expected no events after validation failure, got %v", got)
	}

	// Create, update, delete publish one event each
	if rec := doRequest(t, srv, http.MethodPost, "/api/devices", lampJSON); rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", rec.Code)
	}

	update := `{"id": 1, "name": "Lamp", "type": "Light", "power": "75",
		"room": "Living Room", "category": "Lighting", "image": "images/lamp.png"}`
	if rec := doRequest(t, srv, http.MethodPut, "/api/devices", update); rec.Code != http.StatusOK {
		t.Fatalf("update failed: %d", rec.Code)
	}

	if rec := doRequest(t, srv, http.MethodDelete, "/api/devices", `{"id": 1}`); rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d", rec.Code)
	}

	want := []string{
		"homie/catalog/device/created",
		"homie/catalog/device/updated",
		"homie/catalog/device/deleted",
	}
	got := pub.published()
	if len(got) != len(want) {
		t.Fatalf("published %d events, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event[%d] topic = %q, want %q", i, got[i], want[i])
		}
	}

	// Events carry the acting device id
	var evt struct {
		EventID  string `json:"event_id"`
		DeviceID int64  `json:"device_id"`
	}
	if err := json.Unmarshal(pub.bodies[2], &evt); err != nil {
		t.Fatalf("decoding event payload: %v", err)
	}
	if evt.DeviceID != 1 {
		t.Errorf("event device_id = %d, want 1", evt.DeviceID)
	}
	if evt.EventID == "" {
		t.Error("expected event_id to be set")
	}
}
