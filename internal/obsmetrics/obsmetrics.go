// Package obsmetrics registers Prometheus collectors for the
// read-only statistics the engine already tracks (atom counts,
// attention funds, inference iteration counts). No HTTP exporter is
// wired here — an embedding application registers Collectors against
// its own registry and/or serves them, mirroring the teacher's
// internal/metrics package, which main.go wires but the cognitive
// package itself never imports.
package obsmetrics

import "github.com/prometheus/client_golang/prometheus"

// Collectors bundles every gauge/counter this module exposes.
type Collectors struct {
	AtomCount        prometheus.Gauge
	NodeCount        prometheus.Gauge
	LinkCount        prometheus.Gauge
	TotalSTI         prometheus.Gauge
	MaxSTI           prometheus.Gauge
	MinSTI           prometheus.Gauge
	InferenceRuns    prometheus.Counter
	InferenceIters   prometheus.Histogram
	ForgettingEvents prometheus.Counter
}

// New constructs a fresh Collectors set and registers it against reg.
func New(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		AtomCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hyperspace_atom_count", Help: "Live atoms in the space.",
		}),
		NodeCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hyperspace_node_count", Help: "Live node atoms.",
		}),
		LinkCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hyperspace_link_count", Help: "Live link atoms.",
		}),
		TotalSTI: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hyperspace_total_sti", Help: "Sum of STI across all atoms.",
		}),
		MaxSTI: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hyperspace_max_sti", Help: "Maximum STI across all atoms.",
		}),
		MinSTI: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hyperspace_min_sti", Help: "Minimum STI across all atoms.",
		}),
		InferenceRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hyperspace_inference_runs_total", Help: "Forward/backward chaining runs started.",
		}),
		InferenceIters: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "hyperspace_inference_iterations", Help: "Iterations per forward-chaining run.",
			Buckets: prometheus.LinearBuckets(1, 5, 20),
		}),
		ForgettingEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hyperspace_forgetting_events_total", Help: "Atoms removed by the forgetting agent.",
		}),
	}
	reg.MustRegister(
		c.AtomCount, c.NodeCount, c.LinkCount,
		c.TotalSTI, c.MaxSTI, c.MinSTI,
		c.InferenceRuns, c.InferenceIters, c.ForgettingEvents,
	)
	return c
}
