// Package logging provides structured logging built on log/slog.
//
// This package manages:
//   - JSON (production) and text (development) output formats
//   - Level-based filtering (debug, info, warn, error)
//   - Default fields attached to every record (service, version)
//
// Usage:
//
//	log := logging.New(cfg.Logging, version)
//	log.Info("search served", "query", q, "matches", n)
package logging
