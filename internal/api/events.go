package api

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/homielabs/homie-registry/internal/device"
	"github.com/homielabs/homie-registry/internal/infrastructure/mqtt"
)

// EventPublisher publishes catalogue events to an MQTT broker.
// *mqtt.Client satisfies this interface; tests substitute a fake.
type EventPublisher interface {
	Publish(topic string, payload []byte, retained bool) error
}

// Catalogue event kinds, mirrored from the mqtt package topic layout.
const (
	eventCreated = mqtt.EventCreated
	eventUpdated = mqtt.EventUpdated
	eventDeleted = mqtt.EventDeleted
)

// deviceEvent is the JSON payload published on catalogue mutations.
type deviceEvent struct {
	EventID   string         `json:"event_id"`
	Kind      string         `json:"kind"`
	DeviceID  int64          `json:"device_id"`
	Device    *device.Device `json:"device,omitempty"`
	Timestamp string         `json:"timestamp"`
}

// publishDeviceEvent announces a successful mutation on the catalogue topic.
//
// Events are best-effort: publish failures are logged and never affect the
// HTTP response. Deleted events carry only the device ID.
func (s *Server) publishDeviceEvent(ctx context.Context, kind string, dev *device.Device) {
	if s.events == nil {
		return
	}

	evt := deviceEvent{
		EventID:   uuid.NewString(),
		Kind:      kind,
		DeviceID:  dev.ID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if kind != eventDeleted {
		evt.Device = dev
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		s.logger.Error("failed to marshal device event", "error", err, "kind", kind)
		return
	}

	if err := s.events.Publish(mqtt.CatalogTopic(kind), payload, false); err != nil {
		s.logger.Warn("failed to publish device event",
			"error", err,
			"kind", kind,
			"device_id", dev.ID,
			"request_id", ctx.Value(ctxKeyRequestID),
		)
	}
}
