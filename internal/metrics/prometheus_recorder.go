package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "sitebuilder"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	phaseDuration     *prom.HistogramVec
	buildDuration     prom.Histogram
	buildOutcome      *prom.CounterVec
	pages             prom.Counter
	indexes           prom.Counter
	assets            prom.Counter
	skipped           prom.Counter
	highlighted       prom.Counter
	rebuildTriggers   prom.Counter
	liveReloadClients prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg.
// A nil reg gets a private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		phaseDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "phase_duration_seconds",
			Help:      "Duration of individual build phases",
			Buckets:   prom.DefBuckets,
		}, []string{"phase"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		pages: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "pages_rendered_total",
			Help:      "Content pages rendered",
		}),
		indexes: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "indexes_rendered_total",
			Help:      "Directory index pages rendered",
		}),
		assets: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "assets_copied_total",
			Help:      "Files copied verbatim into the output tree",
		}),
		skipped: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "pages_skipped_total",
			Help:      "Invalid pages skipped in lenient mode",
		}),
		highlighted: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "code_blocks_highlighted_total",
			Help:      "Fenced code blocks rendered with syntax highlighting",
		}),
		rebuildTriggers: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "rebuild_triggers_total",
			Help:      "Debounced filesystem changes that triggered a rebuild",
		}),
		liveReloadClients: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "livereload_clients",
			Help:      "Connected live reload clients",
		}),
	}
	reg.MustRegister(pr.phaseDuration, pr.buildDuration, pr.buildOutcome, pr.pages, pr.indexes,
		pr.assets, pr.skipped, pr.highlighted, pr.rebuildTriggers, pr.liveReloadClients)
	return pr
}

func (p *PrometheusRecorder) ObservePhaseDuration(phase string, d time.Duration) {
	if p == nil {
		return
	}
	p.phaseDuration.WithLabelValues(phase).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) AddPages(n int) {
	if p == nil {
		return
	}
	addCount(p.pages, n)
}

func (p *PrometheusRecorder) AddIndexes(n int) {
	if p == nil {
		return
	}
	addCount(p.indexes, n)
}

func (p *PrometheusRecorder) AddAssets(n int) {
	if p == nil {
		return
	}
	addCount(p.assets, n)
}

func (p *PrometheusRecorder) AddSkippedPages(n int) {
	if p == nil {
		return
	}
	addCount(p.skipped, n)
}

func (p *PrometheusRecorder) AddHighlightedBlocks(n int) {
	if p == nil {
		return
	}
	addCount(p.highlighted, n)
}

func (p *PrometheusRecorder) IncRebuildTrigger() {
	if p == nil {
		return
	}
	p.rebuildTriggers.Inc()
}

func (p *PrometheusRecorder) SetLiveReloadClients(n int) {
	if p == nil {
		return
	}
	p.liveReloadClients.Set(float64(n))
}

func addCount(c prom.Counter, n int) {
	if n > 0 {
		c.Add(float64(n))
	}
}
