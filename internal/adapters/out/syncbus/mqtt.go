package syncbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	topicPrefix     = "runplanner/"
	topicSuffix     = "/refresh"
	refreshWildcard = topicPrefix + "+" + topicSuffix
	publishTimeout  = 5 * time.Second
)

var (
	ErrInvalidWorkspaceTopic = errors.New("workspace cannot be used in an MQTT topic")
	ErrPublishTimeout        = errors.New("mqtt publish timed out")
)

// MQTTClient is the part of the paho client the transport uses.
type MQTTClient interface {
	IsConnected() bool
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token
}

// NewMQTTClient connects to broker. optsFunc may adjust the options before
// connecting.
func NewMQTTClient(broker, clientID string, optsFunc func(*mqtt.ClientOptions)) (MQTTClient, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetConnectTimeout(5 * time.Second).
		SetAutoReconnect(true)

	if optsFunc != nil {
		optsFunc(opts)
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return client, nil
}

// RefreshTopic is the topic refresh signals of the workspace are sent on.
func RefreshTopic(workspace string) string {
	return topicPrefix + workspace + topicSuffix
}

func workspaceFromTopic(topic string) (string, bool) {
	if !strings.HasPrefix(topic, topicPrefix) || !strings.HasSuffix(topic, topicSuffix) {
		return "", false
	}
	ws := strings.TrimSuffix(strings.TrimPrefix(topic, topicPrefix), topicSuffix)
	if ws == "" || strings.Contains(ws, "/") {
		return "", false
	}
	return ws, true
}

// MQTTTransport relays refresh signals through an MQTT broker. Signals
// published here come back through the wildcard subscription and reach the
// local hub the same way as signals from other instances.
type MQTTTransport struct {
	client MQTTClient
	hub    *Hub
	qos    byte
	logger *slog.Logger
}

func NewMQTTTransport(client MQTTClient, hub *Hub, qos byte, logger *slog.Logger) *MQTTTransport {
	return &MQTTTransport{
		client: client,
		hub:    hub,
		qos:    qos,
		logger: logger.With("component", "mqtt_sync_transport"),
	}
}

// Start subscribes to the refresh topics of all workspaces.
func (t *MQTTTransport) Start() error {
	token := t.client.Subscribe(refreshWildcard, t.qos, t.onMessage)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("subscribe %s: %w", refreshWildcard, err)
	}
	t.logger.Info("subscribed to refresh topics", "topic", refreshWildcard)
	return nil
}

func (t *MQTTTransport) onMessage(_ mqtt.Client, msg mqtt.Message) {
	ws, ok := workspaceFromTopic(msg.Topic())
	if !ok {
		t.logger.Warn("ignoring message on unexpected topic", "topic", msg.Topic())
		return
	}
	_ = t.hub.Publish(context.Background(), ws)
}

func (t *MQTTTransport) Publish(ctx context.Context, workspace string) error {
	if workspace == "" || strings.ContainsAny(workspace, "/+#") {
		return fmt.Errorf("%w: %q", ErrInvalidWorkspaceTopic, workspace)
	}

	token := t.client.Publish(RefreshTopic(workspace), t.qos, false, []byte{})

	timeout := publishTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if !token.WaitTimeout(timeout) {
		return ErrPublishTimeout
	}
	return token.Error()
}

func (t *MQTTTransport) Subscribe(workspace string) (<-chan struct{}, func()) {
	return t.hub.Subscribe(workspace)
}

func (t *MQTTTransport) Close() {
	if t.client.IsConnected() {
		t.client.Disconnect(250)
	}
}
