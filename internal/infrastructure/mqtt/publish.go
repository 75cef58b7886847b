package mqtt

import "fmt"

// Publish sends a message to an MQTT topic with the configured QoS.
//
// The publish is validated before hitting the network: topic must be
// non-empty, QoS must be 0-2, and the payload must fit the size cap.
//
// Parameters:
//   - topic: MQTT topic to publish to
//   - payload: Message body
//   - retained: Whether the broker should retain the message
//
// Returns:
//   - error: If validation fails, the client is disconnected, or the
//     publish does not complete within the timeout
func (c *Client) Publish(topic string, payload []byte, retained bool) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if c.cfg.QoS < 0 || c.cfg.QoS > maxQoS {
		return fmt.Errorf("%w: %d", ErrInvalidQoS, c.cfg.QoS)
	}
	if len(payload) > maxPayloadSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrPayloadTooLarge, len(payload), maxPayloadSize)
	}

	if !c.IsConnected() {
		return ErrNotConnected
	}

	token := c.client.Publish(topic, byte(c.cfg.QoS), retained, payload)
	if !token.WaitTimeout(defaultPublishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, defaultPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	return nil
}
