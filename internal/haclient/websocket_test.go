package haclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/websocket"
)

// fakeHA speaks just enough of the Home Assistant WebSocket protocol for the
// registry list commands.
func fakeHA(t *testing.T, token string, result string) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/websocket" {
			http.NotFound(w, r)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		conn.WriteJSON(map[string]any{"type": "auth_required", "ha_version": "2024.6.0"})

		var auth map[string]any
		if err := conn.ReadJSON(&auth); err != nil {
			return
		}
		if auth["access_token"] != token {
			conn.WriteJSON(map[string]any{"type": "auth_invalid", "message": "Invalid access token"})
			return
		}
		conn.WriteJSON(map[string]any{"type": "auth_ok", "ha_version": "2024.6.0"})

		var cmd map[string]any
		if err := conn.ReadJSON(&cmd); err != nil {
			return
		}

		// Unsolicited frames must be skipped by the client.
		conn.WriteJSON(map[string]any{"id": 99, "type": "event"})

		conn.WriteMessage(websocket.TextMessage, []byte(
			`{"id": 1, "type": "result", "success": true, "result": `+result+`}`))
	}))
}

func TestFetchAreasWebSocket(t *testing.T) {
	srv := fakeHA(t, "test-token", `[
		{"area_id": "salon", "name": "Salon"},
		{"area_id": "cuisine", "name": "Cuisine"}
	]`)
	defer srv.Close()

	c := testClient(srv.URL, "test-token")
	areas, err := c.FetchAreas(context.Background())
	if err != nil {
		t.Fatalf("FetchAreas: %v", err)
	}
	if len(areas) != 2 || areas[0].AreaID != "salon" || areas[1].Name != "Cuisine" {
		t.Errorf("areas = %+v", areas)
	}
}

func TestFetchEntityRegistryWebSocket(t *testing.T) {
	srv := fakeHA(t, "test-token", `[
		{"entity_id": "light.salon", "area_id": "salon"},
		{"entity_id": "sensor.temp", "device_id": "dev-1", "disabled_by": "user"}
	]`)
	defer srv.Close()

	c := testClient(srv.URL, "test-token")
	entries, err := c.FetchEntityRegistry(context.Background())
	if err != nil {
		t.Fatalf("FetchEntityRegistry: %v", err)
	}
	if len(entries) != 2 || entries[0].AreaID != "salon" || entries[1].DisabledBy != "user" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestFetchDeviceRegistryWebSocket(t *testing.T) {
	srv := fakeHA(t, "test-token", `[
		{"id": "dev-1", "area_id": "cuisine", "name": "Oven"}
	]`)
	defer srv.Close()

	c := testClient(srv.URL, "test-token")
	devices, err := c.FetchDeviceRegistry(context.Background())
	if err != nil {
		t.Fatalf("FetchDeviceRegistry: %v", err)
	}
	if len(devices) != 1 || devices[0].AreaID != "cuisine" {
		t.Errorf("devices = %+v", devices)
	}
}

func TestWebSocketAuthInvalid(t *testing.T) {
	srv := fakeHA(t, "right-token", `[]`)
	defer srv.Close()

	c := testClient(srv.URL, "wrong-token")
	_, err := c.FetchAreas(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestWebSocketCommandFailure(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		conn.WriteJSON(map[string]any{"type": "auth_required"})
		var auth map[string]any
		conn.ReadJSON(&auth)
		conn.WriteJSON(map[string]any{"type": "auth_ok"})

		var cmd map[string]any
		conn.ReadJSON(&cmd)
		conn.WriteJSON(map[string]any{
			"id": 1, "type": "result", "success": false,
			"error": map[string]any{"code": "unknown_command", "message": "Unknown command"},
		})
	}))
	defer srv.Close()

	c := testClient(srv.URL, "test-token")
	_, err := c.FetchAreas(context.Background())
	if !errors.Is(err, ErrCommandFailed) {
		t.Errorf("err = %v, want ErrCommandFailed", err)
	}
}
