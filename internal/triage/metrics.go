package triage

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus metrics for the triage subsystem.
type Metrics struct {
	SubmitsTotal     *prometheus.CounterVec
	CasesTotal       *prometheus.CounterVec
	ClassifyDuration prometheus.Histogram
	NotifyTotal      *prometheus.CounterVec
}

// NewMetrics registers and returns triage metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SubmitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "docket_submits_total",
			Help: "Total complaint submissions by result.",
		}, []string{"result"}),
		CasesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "docket_cases_total",
			Help: "Total accepted cases by category and priority.",
		}, []string{"category", "priority"}),
		ClassifyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "docket_classify_duration_seconds",
			Help:    "Duration of classifier runs in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.000001, 4, 10), // 1us .. ~0.26s
		}),
		NotifyTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "docket_notify_total",
			Help: "Total case notifications by delivery status.",
		}, []string{"status"}),
	}

	reg.MustRegister(
		m.SubmitsTotal,
		m.CasesTotal,
		m.ClassifyDuration,
		m.NotifyTotal,
	)

	return m
}
