// hamcp - Home Assistant entity search sidecar
//
// This is the main entry point for the sidecar. It serves fuzzy entity
// search, area resolution and installation overviews over a small REST API,
// backed by a Home Assistant instance's REST and WebSocket APIs (optionally
// by an MQTT statestream mirror).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shbatm/ha-mcp-sub002/internal/api"
	"github.com/shbatm/ha-mcp-sub002/internal/haclient"
	"github.com/shbatm/ha-mcp-sub002/internal/infrastructure/config"
	"github.com/shbatm/ha-mcp-sub002/internal/infrastructure/database"
	"github.com/shbatm/ha-mcp-sub002/internal/infrastructure/logging"
	"github.com/shbatm/ha-mcp-sub002/internal/infrastructure/metrics"
	"github.com/shbatm/ha-mcp-sub002/internal/infrastructure/statestream"
	"github.com/shbatm/ha-mcp-sub002/internal/registry"
	"github.com/shbatm/ha-mcp-sub002/internal/search"
	"github.com/shbatm/ha-mcp-sub002/internal/usage"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// tokenExpiryWarning is how far ahead of token expiry startup warns.
const tokenExpiryWarning = 30 * 24 * time.Hour

// statestreamConnectTimeout bounds the initial broker connection.
const statestreamConnectTimeout = 30 * time.Second

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting hamcp",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	warnTokenExpiry(cfg.HomeAssistant.Token, log)

	// Home Assistant client (REST states + WebSocket registries)
	ha := haclient.New(cfg.HomeAssistant, log)
	if err := checkUpstream(ctx, ha); err != nil {
		// Startup proceeds; every read path degrades gracefully.
		log.Warn("Home Assistant unreachable at startup", "url", cfg.HomeAssistant.URL, "error", err)
	} else {
		log.Info("Home Assistant reachable", "url", cfg.HomeAssistant.URL)
	}

	// State source: REST by default, statestream mirror when enabled.
	var states registry.StateSource = ha
	if cfg.Statestream.Enabled {
		mirror := statestream.New(cfg.Statestream, log)
		connectCtx, cancel := context.WithTimeout(ctx, statestreamConnectTimeout)
		err := mirror.Connect(connectCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("connecting statestream: %w", err)
		}
		defer func() {
			log.Info("disconnecting statestream")
			mirror.Close()
		}()
		log.Info("statestream connected",
			"broker", fmt.Sprintf("%s:%d", cfg.Statestream.Broker.Host, cfg.Statestream.Broker.Port),
			"base_topic", cfg.Statestream.BaseTopic,
		)
		states = mirror
	}

	// Open database and usage log
	db, err := database.Open(cfg.Database, log)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database ready", "path", cfg.Database.Path)

	usageRepo := usage.NewSQLiteRepository(db)

	// Metrics recorder (inert when disabled)
	recorder := metrics.New(cfg.InfluxDB, log)
	defer recorder.Close()
	if cfg.InfluxDB.Enabled {
		log.Info("metrics enabled",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
	} else {
		log.Info("metrics disabled")
	}

	// Search engine and area resolver
	engine := search.NewEngine(cfg.Search.FuzzyThreshold)
	resolver := registry.NewResolver(states, ha, log)

	// API server
	server, err := api.New(api.Deps{
		Config:    cfg.API,
		SearchCfg: cfg.Search,
		Logger:    log,
		Engine:    engine,
		States:    states,
		Resolver:  resolver,
		Upstream:  ha,
		Usage:     usageRepo,
		Metrics:   recorder,
		Version:   version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("initialisation complete, waiting for shutdown signal")

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	log.Info("hamcp stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses HAMCP_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("HAMCP_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// upstreamCheckTimeout bounds the startup connectivity probe.
const upstreamCheckTimeout = 5 * time.Second

// checkUpstream probes the Home Assistant REST API once.
func checkUpstream(ctx context.Context, ha *haclient.Client) error {
	probeCtx, cancel := context.WithTimeout(ctx, upstreamCheckTimeout)
	defer cancel()
	return ha.CheckAPI(probeCtx)
}

// warnTokenExpiry decodes the access token's claims and warns when it is
// expired or about to expire. Opaque tokens are skipped silently; Home
// Assistant will reject them at request time if they are bad.
func warnTokenExpiry(token string, log *logging.Logger) {
	info, err := haclient.InspectToken(token)
	if err != nil {
		log.Debug("token is not introspectable", "error", err)
		return
	}
	switch {
	case info.Expired():
		log.Error("access token has expired", "expired_at", info.ExpiresAt)
	case info.ExpiresWithin(tokenExpiryWarning):
		log.Warn("access token expires soon", "expires_at", info.ExpiresAt)
	}
}
