// Package metrics records search telemetry to InfluxDB: request rates,
// match counts, score distribution and latency. Recording is fire-and-forget
// and optional; a disabled recorder is a no-op.
package metrics
