package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LeadMetrics exposes counters/histograms for lead store operations.
type LeadMetrics struct {
	operationsTotal  *prometheus.CounterVec
	operationLatency *prometheus.HistogramVec
	collectionSize   prometheus.Gauge
	alertsTotal      *prometheus.CounterVec
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		operationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadmanager",
			Subsystem: "leads",
			Name:      "operations_total",
			Help:      "Total remote lead operations by outcome",
		}, []string{"op", "outcome"}),
		operationLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "leadmanager",
			Subsystem: "leads",
			Name:      "operation_latency_seconds",
			Help:      "Latency of remote lead operations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		collectionSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "leadmanager",
			Subsystem: "leads",
			Name:      "collection_size",
			Help:      "Number of leads in the working set",
		}),
		alertsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadmanager",
			Subsystem: "notify",
			Name:      "alerts_total",
			Help:      "New-lead alert deliveries by status",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.operationsTotal, m.operationLatency, m.collectionSize, m.alertsTotal)
	return m
}

func (m *LeadMetrics) ObserveOperation(op, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.operationsTotal.WithLabelValues(op, outcome).Inc()
	m.operationLatency.WithLabelValues(op).Observe(d.Seconds())
}

func (m *LeadMetrics) SetCollectionSize(n int) {
	if m == nil {
		return
	}
	m.collectionSize.Set(float64(n))
}

func (m *LeadMetrics) ObserveAlert(status string) {
	if m == nil {
		return
	}
	m.alertsTotal.WithLabelValues(status).Inc()
}
