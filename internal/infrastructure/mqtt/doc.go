// Package mqtt provides a publish-only MQTT client for catalog events.
//
// The registry announces device mutations on homie/catalog/device/{created,
// updated,deleted} so downstream consumers (dashboards, automations) can
// react without polling the REST API. A retained status message on
// homie/system/status, backed by a Last Will and Testament, lets consumers
// distinguish a graceful shutdown from a crash.
//
// The client wraps eclipse/paho.mqtt.golang with connection management,
// auto-reconnect with exponential backoff, and pre-publish validation.
// The broker is optional: when disabled in configuration the service runs
// without this package ever being initialised.
package mqtt
