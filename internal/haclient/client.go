package haclient

import (
	"net/http"
	"strings"
	"time"

	"github.com/shbatm/ha-mcp-sub002/internal/infrastructure/config"
	"github.com/shbatm/ha-mcp-sub002/internal/infrastructure/logging"
)

// Client talks to a Home Assistant instance over its REST and WebSocket
// APIs using a long-lived access token. One Client serves both transports;
// REST calls share a pooled http.Client while each WebSocket command opens
// a short-lived authenticated session.
//
// Thread Safety:
//   - All methods are safe for concurrent use.
type Client struct {
	baseURL   string
	token     string
	http      *http.Client
	wsTimeout time.Duration
	log       *logging.Logger
}

// New creates a Client from the Home Assistant connection settings.
func New(cfg config.HomeAssistantConfig, log *logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		token:   cfg.Token,
		http: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		wsTimeout: time.Duration(cfg.WebSocketTimeout) * time.Second,
		log:       log,
	}
}

// BaseURL returns the configured Home Assistant base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}
