package haclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shbatm/ha-mcp-sub002/internal/registry"
)

// WebSocket command types for the registry list calls.
const (
	wsAreaRegistryList   = "config/area_registry/list"
	wsEntityRegistryList = "config/entity_registry/list"
	wsDeviceRegistryList = "config/device_registry/list"
)

// FetchAreas retrieves the area registry over the WebSocket API.
func (c *Client) FetchAreas(ctx context.Context) ([]registry.Area, error) {
	var areas []registry.Area
	if err := c.wsCommand(ctx, wsAreaRegistryList, &areas); err != nil {
		return nil, fmt.Errorf("fetching area registry: %w", err)
	}
	return areas, nil
}

// FetchEntityRegistry retrieves the entity registry over the WebSocket API.
func (c *Client) FetchEntityRegistry(ctx context.Context) ([]registry.EntityEntry, error) {
	var entries []registry.EntityEntry
	if err := c.wsCommand(ctx, wsEntityRegistryList, &entries); err != nil {
		return nil, fmt.Errorf("fetching entity registry: %w", err)
	}
	return entries, nil
}

// FetchDeviceRegistry retrieves the device registry over the WebSocket API.
func (c *Client) FetchDeviceRegistry(ctx context.Context) ([]registry.DeviceEntry, error) {
	var devices []registry.DeviceEntry
	if err := c.wsCommand(ctx, wsDeviceRegistryList, &devices); err != nil {
		return nil, fmt.Errorf("fetching device registry: %w", err)
	}
	return devices, nil
}

// wsMessage covers every frame shape the handshake and command exchange
// produce.
type wsMessage struct {
	ID      int             `json:"id,omitempty"`
	Type    string          `json:"type"`
	Success bool            `json:"success,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *wsError        `json:"error,omitempty"`

	AccessToken string `json:"access_token,omitempty"`
}

type wsError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// wsCommand opens an authenticated WebSocket session, issues one command
// and decodes its result into out. The session is closed afterwards;
// registry fetches are rare enough that connection reuse is not worth the
// reconnect state machine.
func (c *Client) wsCommand(ctx context.Context, msgType string, out any) error {
	wsURL, err := c.websocketURL()
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("dialing %s: %w", wsURL, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(c.wsTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	conn.SetReadDeadline(deadline)
	conn.SetWriteDeadline(deadline)

	if err := c.authenticate(conn); err != nil {
		return err
	}

	const commandID = 1
	if err := conn.WriteJSON(wsMessage{ID: commandID, Type: msgType}); err != nil {
		return fmt.Errorf("sending %s: %w", msgType, err)
	}

	// Skip unsolicited frames (events, pings) until our result arrives.
	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return fmt.Errorf("reading %s result: %w", msgType, err)
		}
		if msg.Type != "result" || msg.ID != commandID {
			continue
		}
		if !msg.Success {
			if msg.Error != nil {
				return fmt.Errorf("%s: %w: %s (%s)", msgType, ErrCommandFailed, msg.Error.Message, msg.Error.Code)
			}
			return fmt.Errorf("%s: %w", msgType, ErrCommandFailed)
		}
		if err := json.Unmarshal(msg.Result, out); err != nil {
			return fmt.Errorf("decoding %s result: %w", msgType, err)
		}
		return nil
	}
}

// authenticate runs the auth_required/auth/auth_ok handshake.
func (c *Client) authenticate(conn *websocket.Conn) error {
	var hello wsMessage
	if err := conn.ReadJSON(&hello); err != nil {
		return fmt.Errorf("reading auth challenge: %w", err)
	}
	if hello.Type != "auth_required" {
		return fmt.Errorf("unexpected handshake frame %q", hello.Type)
	}

	if err := conn.WriteJSON(wsMessage{Type: "auth", AccessToken: c.token}); err != nil {
		return fmt.Errorf("sending auth: %w", err)
	}

	var reply wsMessage
	if err := conn.ReadJSON(&reply); err != nil {
		return fmt.Errorf("reading auth reply: %w", err)
	}
	switch reply.Type {
	case "auth_ok":
		return nil
	case "auth_invalid":
		return ErrUnauthorized
	default:
		return fmt.Errorf("unexpected auth reply %q", reply.Type)
	}
}

// websocketURL derives the ws:// or wss:// endpoint from the base URL.
func (c *Client) websocketURL() (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/api/websocket"
	return u.String(), nil
}
