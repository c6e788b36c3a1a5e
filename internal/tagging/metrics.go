package tagging

import "github.com/prometheus/client_golang/prometheus"

const metricsNamespace = "doc_tagging"

var (
	// Gather là registry riêng cho metrics của tagging, được expose qua /metrics
	Gather = prometheus.NewRegistry()

	AggregationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "aggregation",
			Name:      "runs_total",
			Help:      "Counter of tag aggregation runs.",
		}, []string{"collection", "result"})

	AggregationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "aggregation",
			Name:      "duration_seconds",
			Help:      "Bucketed histogram of tag aggregation time.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 16),
		}, []string{"collection"})

	CoalescedTriggerCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "aggregation",
			Name:      "coalesced_total",
			Help:      "Counter of aggregation triggers folded into a pending run.",
		}, []string{"collection"})

	CacheRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "cache",
			Name:      "requests_total",
			Help:      "Counter of aggregate cache lookups.",
		}, []string{"result"})
)

func init() {
	Gather.MustRegister(AggregationCounter)
	Gather.MustRegister(AggregationHistogram)
	Gather.MustRegister(CoalescedTriggerCounter)
	Gather.MustRegister(CacheRequestCounter)
}
