// Package config handles loading and validating the search sidecar's
// configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables (HAMCP_* prefix)
//   - Validation of required fields
//   - Default value handling
//
// Security Considerations:
//   - Sensitive values (the Home Assistant token, MQTT and InfluxDB
//     credentials) should be set via environment variables
//   - The config file should have restricted permissions (0600)
//
// Performance Characteristics:
//   - Configuration is loaded once at startup
//   - No runtime overhead after initial load
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.HomeAssistant.URL)
package config
