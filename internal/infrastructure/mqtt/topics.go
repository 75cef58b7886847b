package mqtt

import "fmt"

// Topic layout for the registry.
//
// System status:
//   - homie/system/status (retained, includes LWT)
//
// Catalog events, published on successful mutations:
//   - homie/catalog/device/created
//   - homie/catalog/device/updated
//   - homie/catalog/device/deleted
const (
	// TopicSystemStatus carries the registry's online/offline status.
	TopicSystemStatus = "homie/system/status"

	// topicCatalogPrefix is the root for catalog mutation events.
	topicCatalogPrefix = "homie/catalog/device"
)

// Catalog event kinds.
const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// CatalogTopic returns the topic for a catalog event kind.
//
// Parameters:
//   - kind: One of EventCreated, EventUpdated, EventDeleted
func CatalogTopic(kind string) string {
	return fmt.Sprintf("%s/%s", topicCatalogPrefix, kind)
}

// buildOnlinePayload returns the retained online status message.
func buildOnlinePayload(clientID string) string {
	return fmt.Sprintf(`{"status":"online","client_id":"%s"}`, clientID)
}

// buildOfflinePayload returns the graceful offline status message.
func buildOfflinePayload(clientID string) string {
	return fmt.Sprintf(`{"status":"offline","client_id":"%s"}`, clientID)
}

// buildCrashedPayload returns the LWT message published by the broker
// when the connection drops without a graceful disconnect.
func buildCrashedPayload(clientID string) string {
	return fmt.Sprintf(`{"status":"crashed","client_id":"%s"}`, clientID)
}
