package metrics

import (
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/shbatm/ha-mcp-sub002/internal/infrastructure/config"
	"github.com/shbatm/ha-mcp-sub002/internal/infrastructure/logging"
)

// Recorder writes search telemetry to InfluxDB through the non-blocking
// batch API. A disabled Recorder is valid and drops everything, so call
// sites never need to branch on configuration.
//
// Thread Safety:
//   - All methods are safe for concurrent use.
type Recorder struct {
	client influxdb2.Client
	write  api.WriteAPI
	log    *logging.Logger
}

// New creates a Recorder. With cfg.Enabled false the Recorder is inert.
func New(cfg config.InfluxDBConfig, log *logging.Logger) *Recorder {
	r := &Recorder{log: log.With("component", "metrics")}
	if !cfg.Enabled {
		return r
	}

	opts := influxdb2.DefaultOptions()
	if cfg.BatchSize > 0 {
		opts.SetBatchSize(uint(cfg.BatchSize))
	}
	if cfg.FlushInterval > 0 {
		opts.SetFlushInterval(uint(cfg.FlushInterval * 1000))
	}

	r.client = influxdb2.NewClientWithOptions(cfg.URL, cfg.Token, opts)
	r.write = r.client.WriteAPI(cfg.Org, cfg.Bucket)

	// Batch write failures surface on a channel; they are telemetry, so
	// log and move on.
	go func() {
		for err := range r.write.Errors() {
			r.log.Warn("metric write failed", "error", err)
		}
	}()

	return r
}

// RecordSearch writes one point per served search request.
func (r *Recorder) RecordSearch(searchType, domainFilter string, queryLength, totalMatches, bestScore int, duration time.Duration) {
	if r.write == nil {
		return
	}

	tags := map[string]string{"search_type": searchType}
	if domainFilter != "" {
		tags["domain"] = domainFilter
	}

	p := influxdb2.NewPoint("search",
		tags,
		map[string]any{
			"query_length":  queryLength,
			"total_matches": totalMatches,
			"best_score":    bestScore,
			"duration_ms":   float64(duration.Microseconds()) / 1000.0,
		},
		time.Now(),
	)
	r.write.WritePoint(p)
}

// RecordAreaLookup writes one point per area resolution request.
func (r *Recorder) RecordAreaLookup(matched bool, entityCount int, duration time.Duration) {
	if r.write == nil {
		return
	}

	p := influxdb2.NewPoint("area_lookup",
		map[string]string{"matched": boolTag(matched)},
		map[string]any{
			"entity_count": entityCount,
			"duration_ms":  float64(duration.Microseconds()) / 1000.0,
		},
		time.Now(),
	)
	r.write.WritePoint(p)
}

func boolTag(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// Close flushes pending points and shuts the client down.
func (r *Recorder) Close() {
	if r.client == nil {
		return
	}
	r.write.Flush()
	r.client.Close()
}
