package kit

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments the load and render pipeline. All methods are safe on
// a nil receiver so uninstrumented callers can pass nil.
type Metrics struct {
	PagesFetched prometheus.Counter
	FetchErrors  prometheus.Counter
	CacheHits    prometheus.Counter
	CacheMisses  prometheus.Counter
	ItemsLoaded  prometheus.Gauge
	Renders      prometheus.Counter
	Chunks       prometheus.Counter
	FetchLatency prometheus.Histogram
}

func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		PagesFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catalog_pages_fetched_total",
			Help: "Catalog pages fetched successfully",
		}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catalog_fetch_errors_total",
			Help: "Catalog page fetches that failed",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catalog_cache_hits_total",
			Help: "Catalog cache reads that returned a fresh snapshot",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catalog_cache_misses_total",
			Help: "Catalog cache reads that returned absent",
		}),
		ItemsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_items_loaded",
			Help: "Products currently held in the in-memory catalog",
		}),
		Renders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "render_frames_total",
			Help: "Paint frames executed by the render scheduler",
		}),
		Chunks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "render_chunks_total",
			Help: "Grid append chunks emitted",
		}),
		FetchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "catalog_fetch_duration_seconds",
			Help: "Catalog page fetch latency",
		}),
	}

	reg.MustRegister(
		m.PagesFetched, m.FetchErrors,
		m.CacheHits, m.CacheMisses,
		m.ItemsLoaded, m.Renders, m.Chunks,
		m.FetchLatency,
	)
	return m
}

func (m *Metrics) PageFetched(d time.Duration) {
	if m == nil {
		return
	}
	m.PagesFetched.Inc()
	m.FetchLatency.Observe(d.Seconds())
}

func (m *Metrics) FetchFailed() {
	if m == nil {
		return
	}
	m.FetchErrors.Inc()
}

func (m *Metrics) CacheRead(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHits.Inc()
	} else {
		m.CacheMisses.Inc()
	}
}

func (m *Metrics) SetItemsLoaded(n int) {
	if m == nil {
		return
	}
	m.ItemsLoaded.Set(float64(n))
}

func (m *Metrics) RenderFrame() {
	if m == nil {
		return
	}
	m.Renders.Inc()
}

func (m *Metrics) ChunkAppended() {
	if m == nil {
		return
	}
	m.Chunks.Inc()
}
