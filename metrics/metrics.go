// Package metrics exposes a terrain engine's counters to Prometheus.
// The core does not depend on this package; hosts that want scraping
// register a Collector explicitly:
//
//	reg := prometheus.NewRegistry()
//	reg.MustRegister(metrics.NewCollector(eng))
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/RealRui/osgearth/terrain"
)

// StaleCounter is implemented by engine implementations that track a
// stale tile set (see terrain/gridengine).
type StaleCounter interface {
	StaleCount() int
}

// Collector samples a terrain engine on scrape. Only the dirty counter
// is read atomically; the other values are best-effort samples, which is
// acceptable for gauges.
type Collector struct {
	engine *terrain.Engine

	dirtyTotal *prometheus.Desc
	effects    *prometheus.Desc
	state      *prometheus.Desc
	staleTiles *prometheus.Desc
}

// Compile-time check against the prometheus contract.
var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector over the given engine.
func NewCollector(e *terrain.Engine) *Collector {
	return &Collector{
		engine: e,
		dirtyTotal: prometheus.NewDesc(
			"osgearth_terrain_dirty_total",
			"Total redraw requests funneled through the engine.",
			nil, nil),
		effects: prometheus.NewDesc(
			"osgearth_terrain_effects",
			"Number of effects currently in the stack.",
			nil, nil),
		state: prometheus.NewDesc(
			"osgearth_terrain_lifecycle_state",
			"Engine lifecycle state (0=None, 1=PreInitDone, 2=PostInitDone).",
			nil, nil),
		staleTiles: prometheus.NewDesc(
			"osgearth_terrain_stale_tiles",
			"Built tiles currently marked stale, when the engine tracks them.",
			nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.dirtyTotal
	ch <- c.effects
	ch <- c.state
	ch <- c.staleTiles
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.dirtyTotal, prometheus.CounterValue,
		float64(c.engine.DirtyCount()))
	ch <- prometheus.MustNewConstMetric(c.effects, prometheus.GaugeValue,
		float64(c.engine.NumEffects()))
	ch <- prometheus.MustNewConstMetric(c.state, prometheus.GaugeValue,
		float64(c.engine.State()))
	if sc, ok := c.engine.Impl().(StaleCounter); ok {
		ch <- prometheus.MustNewConstMetric(c.staleTiles, prometheus.GaugeValue,
			float64(sc.StaleCount()))
	}
}
