package statestream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/shbatm/ha-mcp-sub002/internal/infrastructure/config"
	"github.com/shbatm/ha-mcp-sub002/internal/infrastructure/logging"
	"github.com/shbatm/ha-mcp-sub002/internal/search"
)

var (
	// ErrNotConnected indicates the broker connection is down and no
	// snapshot can be served.
	ErrNotConnected = errors.New("statestream: not connected to broker")

	// ErrConnectTimeout indicates the initial connection did not complete
	// in time.
	ErrConnectTimeout = errors.New("statestream: connection timed out")
)

// Mirror maintains an in-memory copy of entity state from the topic tree
// published by Home Assistant's mqtt_statestream integration. Each entity
// publishes its state and every attribute on retained per-leaf topics:
//
//	<base>/<domain>/<object_id>/state
//	<base>/<domain>/<object_id>/<attribute>
//
// After the retained backlog replays, FetchStates serves snapshots from
// memory without touching the Home Assistant REST API.
//
// Thread Safety:
//   - All methods are safe for concurrent use.
type Mirror struct {
	cfg    config.StatestreamConfig
	client mqtt.Client
	log    *logging.Logger

	mu       sync.RWMutex
	entities map[string]*entityState
}

type entityState struct {
	state      string
	attributes map[string]any
}

// New creates a Mirror for the configured broker. Call Connect before use.
func New(cfg config.StatestreamConfig, log *logging.Logger) *Mirror {
	m := &Mirror{
		cfg:      cfg,
		log:      log.With("component", "statestream"),
		entities: make(map[string]*entityState),
	}

	opts := mqtt.NewClientOptions()
	scheme := "tcp"
	if cfg.Broker.TLS {
		scheme = "ssl"
	}
	opts.AddBroker(fmt.Sprintf("%s://%s:%d", scheme, cfg.Broker.Host, cfg.Broker.Port))
	opts.SetClientID(cfg.Broker.ClientID)
	if cfg.Auth.Username != "" {
		opts.SetUsername(cfg.Auth.Username)
		opts.SetPassword(cfg.Auth.Password)
	}
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(time.Duration(cfg.Reconnect.InitialDelay) * time.Second)
	opts.SetMaxReconnectInterval(time.Duration(cfg.Reconnect.MaxDelay) * time.Second)
	opts.SetOrderMatters(false)

	opts.SetOnConnectHandler(func(c mqtt.Client) {
		m.log.Info("connected to broker", "host", cfg.Broker.Host, "port", cfg.Broker.Port)
		m.subscribe(c)
	})
	opts.SetConnectionLostHandler(func(c mqtt.Client, err error) {
		m.log.Warn("broker connection lost", "error", err)
	})

	m.client = mqtt.NewClient(opts)
	return m
}

// Connect establishes the broker connection and waits for it (or the
// context) to complete. Subscription happens in the connect handler so it
// survives reconnects.
func (m *Mirror) Connect(ctx context.Context) error {
	token := m.client.Connect()

	done := make(chan struct{})
	go func() {
		token.Wait()
		close(done)
	}()

	select {
	case <-done:
		if err := token.Error(); err != nil {
			return fmt.Errorf("statestream: connecting: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrConnectTimeout, ctx.Err())
	}
}

// Close disconnects from the broker, allowing in-flight work to finish.
func (m *Mirror) Close() {
	m.client.Disconnect(250)
}

// Connected reports whether the broker connection is currently up.
func (m *Mirror) Connected() bool {
	return m.client.IsConnectionOpen()
}

func (m *Mirror) subscribe(c mqtt.Client) {
	topic := strings.TrimRight(m.cfg.BaseTopic, "/") + "/#"
	token := c.Subscribe(topic, byte(m.cfg.QoS), func(_ mqtt.Client, msg mqtt.Message) {
		m.apply(msg.Topic(), msg.Payload())
	})
	go func() {
		token.Wait()
		if err := token.Error(); err != nil {
			m.log.Error("subscribe failed", "topic", topic, "error", err)
		}
	}()
}

// apply folds one statestream message into the mirror. Topics that do not
// match <base>/<domain>/<object_id>/<leaf> are ignored.
func (m *Mirror) apply(topic string, payload []byte) {
	base := strings.TrimRight(m.cfg.BaseTopic, "/") + "/"
	if !strings.HasPrefix(topic, base) {
		return
	}

	parts := strings.Split(strings.TrimPrefix(topic, base), "/")
	if len(parts) != 3 {
		return
	}
	domain, objectID, leaf := parts[0], parts[1], parts[2]
	if domain == "" || objectID == "" || leaf == "" {
		return
	}
	entityID := domain + "." + objectID

	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entities[entityID]
	if !ok {
		e = &entityState{attributes: make(map[string]any)}
		m.entities[entityID] = e
	}

	if leaf == "state" {
		e.state = string(payload)
		return
	}
	e.attributes[leaf] = decodeAttribute(payload)
}

// decodeAttribute parses a statestream attribute payload. Statestream
// publishes attributes JSON-encoded; anything that fails to parse is kept
// as the raw string.
func decodeAttribute(payload []byte) any {
	var v any
	if err := json.Unmarshal(payload, &v); err != nil {
		return string(payload)
	}
	return v
}

// FetchStates returns a snapshot of the mirrored entities. It satisfies
// the same contract as the REST states fetch so the two sources are
// interchangeable. Returns ErrNotConnected while the broker link is down,
// letting the caller degrade rather than serve stale silence.
func (m *Mirror) FetchStates(ctx context.Context) ([]search.Entity, error) {
	if !m.client.IsConnectionOpen() {
		return nil, ErrNotConnected
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]search.Entity, 0, len(m.entities))
	for entityID, e := range m.entities {
		attrs := make(map[string]any, len(e.attributes))
		for k, v := range e.attributes {
			attrs[k] = v
		}
		out = append(out, search.Entity{
			EntityID:   entityID,
			State:      e.state,
			Attributes: attrs,
		})
	}
	return out, nil
}

// Len returns the number of entities currently mirrored.
func (m *Mirror) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entities)
}
