// Package metrics provides build and serve metrics for sitebuilder.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so code paths never check for nil:
//
//	type Orchestrator struct {
//	    recorder metrics.Recorder
//	}
//
//	func NewOrchestrator() *Orchestrator {
//	    return &Orchestrator{recorder: metrics.NoopRecorder{}}
//	}
//
// The serve command swaps in a PrometheusRecorder backed by its own registry
// and exposes it with HTTPHandler on /metrics:
//
//	reg := prom.NewRegistry()
//	recorder := metrics.NewPrometheusRecorder(reg)
//	mux.Handle("/metrics", metrics.HTTPHandler(reg))
//
// One-shot builds keep the NoopRecorder.
package metrics
