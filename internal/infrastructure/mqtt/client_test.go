package mqtt

import (
	"bytes"
	"errors"
	"testing"

	"github.com/homielabs/homie-registry/internal/infrastructure/config"
)

func testConfig() config.MQTTConfig {
	return config.MQTTConfig{
		Enabled: true,
		Broker: config.MQTTBrokerConfig{
			Host:     "localhost",
			Port:     1883,
			ClientID: "homie-registry-test",
		},
		QoS: 1,
		Reconnect: config.MQTTReconnectConfig{
			InitialDelay: 1,
			MaxDelay:     60,
		},
	}
}

func TestBuildClientOptions(t *testing.T) {
	cfg := testConfig()
	opts := buildClientOptions(cfg)

	if len(opts.Servers) != 1 {
		t.Fatalf("expected 1 broker, got %d", len(opts.Servers))
	}
	if got := opts.Servers[0].String(); got != "tcp://localhost:1883" {
		t.Errorf("broker URL = %q, want tcp://localhost:1883", got)
	}
	if opts.ClientID != "homie-registry-test" {
		t.Errorf("client ID = %q, want homie-registry-test", opts.ClientID)
	}
	if !opts.AutoReconnect {
		t.Error("expected auto-reconnect enabled")
	}
	if !opts.CleanSession {
		t.Error("expected clean session enabled")
	}
}

func TestBuildClientOptions_TLS(t *testing.T) {
	cfg := testConfig()
	cfg.Broker.TLS = true
	cfg.Broker.Port = 8883

	opts := buildClientOptions(cfg)

	if got := opts.Servers[0].Scheme; got != "ssl" {
		t.Errorf("scheme = %q, want ssl", got)
	}
	if opts.TLSConfig == nil {
		t.Fatal("expected TLS config to be set")
	}
}

func TestBuildClientOptions_Auth(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.Username = "registry"
	cfg.Auth.Password = "secret"

	opts := buildClientOptions(cfg)

	if opts.Username != "registry" {
		t.Errorf("username = %q, want registry", opts.Username)
	}
	if opts.Password != "secret" {
		t.Errorf("password = %q, want secret", opts.Password)
	}
}

func TestConfigureLWT(t *testing.T) {
	opts := buildClientOptions(testConfig())
	configureLWT(opts, "homie-registry-test")

	if !opts.WillEnabled {
		t.Fatal("expected will to be enabled")
	}
	if opts.WillTopic != TopicSystemStatus {
		t.Errorf("will topic = %q, want %q", opts.WillTopic, TopicSystemStatus)
	}
	if !bytes.Contains(opts.WillPayload, []byte("crashed")) {
		t.Errorf("will payload = %q, want crashed status", opts.WillPayload)
	}
	if !opts.WillRetained {
		t.Error("expected will to be retained")
	}
}

func TestCatalogTopic(t *testing.T) {
	tests := []struct {
		kind string
		want string
	}{
		{EventCreated, "homie/catalog/device/created"},
		{EventUpdated, "homie/catalog/device/updated"},
		{EventDeleted, "homie/catalog/device/deleted"},
	}

	for _, tt := range tests {
		if got := CatalogTopic(tt.kind); got != tt.want {
			t.Errorf("CatalogTopic(%q) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPublish_Validation(t *testing.T) {
	c := &Client{cfg: testConfig()}

	tests := []struct {
		name    string
		topic   string
		payload []byte
		qos     int
		wantErr error
	}{
		{
			name:    "empty topic",
			topic:   "",
			payload: []byte("{}"),
			qos:     1,
			wantErr: ErrInvalidTopic,
		},
		{
			name:    "invalid QoS",
			topic:   TopicSystemStatus,
			payload: []byte("{}"),
			qos:     3,
			wantErr: ErrInvalidQoS,
		},
		{
			name:    "payload too large",
			topic:   TopicSystemStatus,
			payload: make([]byte, maxPayloadSize+1),
			qos:     1,
			wantErr: ErrPayloadTooLarge,
		},
		{
			name:    "not connected",
			topic:   TopicSystemStatus,
			payload: []byte("{}"),
			qos:     1,
			wantErr: ErrNotConnected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.cfg.QoS = tt.qos
			err := c.Publish(tt.topic, tt.payload, false)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Publish() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestHealthCheck_NotConnected(t *testing.T) {
	c := &Client{cfg: testConfig()}

	err := c.HealthCheck(t.Context())
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("HealthCheck() error = %v, want %v", err, ErrNotConnected)
	}
}
