// Package metrics records build counters on a private Prometheus registry and
// writes them in the node_exporter textfile format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "nhlfeat"

// Build holds the counters of one pipeline run.
type Build struct {
	registry *prometheus.Registry

	gamesProcessed prometheus.Counter
	gamesFailed    prometheus.Counter
	gamesSkipped   prometheus.Counter
	eventsTotal    prometheus.Counter
	extractSeconds *prometheus.HistogramVec
	lastSuccess    prometheus.Gauge
}

// NewBuild registers the build metrics on a fresh registry.
func NewBuild() *Build {
	b := &Build{
		registry: prometheus.NewRegistry(),
		gamesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "build", Name: "games_processed_total",
			Help: "Games whose features were extracted.",
		}),
		gamesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "build", Name: "games_failed_total",
			Help: "Game files that could not be loaded.",
		}),
		gamesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "build", Name: "games_skipped_total",
			Help: "Games already stored with the same source hash.",
		}),
		eventsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "build", Name: "events_total",
			Help: "Play-by-play events read.",
		}),
		extractSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "build", Name: "extract_duration_seconds",
			Help:    "Per-game time spent in each extractor stage.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"stage"}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "build", Name: "last_success_timestamp_seconds",
			Help: "Unix time the last build finished without failures.",
		}),
	}
	b.registry.MustRegister(b.gamesProcessed, b.gamesFailed, b.gamesSkipped,
		b.eventsTotal, b.extractSeconds, b.lastSuccess)
	return b
}

// Registry exposes the underlying registry for tests and custom exporters.
func (b *Build) Registry() *prometheus.Registry { return b.registry }

// GameProcessed records one extracted game.
func (b *Build) GameProcessed(events int) {
	b.gamesProcessed.Inc()
	b.eventsTotal.Add(float64(events))
}

// GameFailed records one load failure.
func (b *Build) GameFailed() { b.gamesFailed.Inc() }

// GameSkipped records one unchanged, already-stored game.
func (b *Build) GameSkipped() { b.gamesSkipped.Inc() }

// ObserveStage records how long stage took for one game.
func (b *Build) ObserveStage(stage string, d time.Duration) {
	b.extractSeconds.WithLabelValues(stage).Observe(d.Seconds())
}

// MarkSuccess stamps the completion time of a clean build.
func (b *Build) MarkSuccess(t time.Time) {
	b.lastSuccess.Set(float64(t.Unix()))
}

// WriteTextfile writes all metrics to path atomically.
func (b *Build) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, b.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
