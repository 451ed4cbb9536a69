package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	metricNamespace = "linkbench"
	containerLabel  = "container"
)

// Counters.
var (
	//nolint:gochecknoglobals
	pushesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:      "pushes_total",
		Help:      "Total number of elements pushed.",
		Namespace: metricNamespace,
	}, []string{containerLabel})

	//nolint:gochecknoglobals
	popsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:      "pops_total",
		Help:      "Total number of elements popped.",
		Namespace: metricNamespace,
	}, []string{containerLabel})

	//nolint:gochecknoglobals
	emptyPopsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:      "empty_pops_total",
		Help:      "Total number of pops on an empty container.",
		Namespace: metricNamespace,
	}, []string{containerLabel})
)

// Gauges.
var (
	//nolint:gochecknoglobals
	containerSize = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name:      "container_size",
		Help:      "Number of elements held at the end of the run.",
		Namespace: metricNamespace,
	}, []string{containerLabel})

	//nolint:gochecknoglobals
	peakSize = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name:      "peak_size",
		Help:      "Largest number of elements held during the run.",
		Namespace: metricNamespace,
	}, []string{containerLabel})

	//nolint:gochecknoglobals
	runDurationSeconds = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name:      "run_duration_seconds",
		Help:      "Wall time of the workload in seconds.",
		Namespace: metricNamespace,
	}, []string{containerLabel})
)

// Init registers the metrics with reg.
func Init(reg prometheus.Registerer) {
	reg.MustRegister(collectors.NewGoCollector())

	reg.MustRegister(
		pushesTotal,
		popsTotal,
		emptyPopsTotal,

		containerSize,
		peakSize,
		runDurationSeconds,
	)
}

// AddPushes increments the pushed elements counter.
func AddPushes(container string, v int) {
	pushesTotal.WithLabelValues(container).Add(float64(v))
}

// AddPops increments the popped elements counter.
func AddPops(container string, v int) {
	popsTotal.WithLabelValues(container).Add(float64(v))
}

// AddEmptyPops increments the empty pops counter.
func AddEmptyPops(container string, v int) {
	emptyPopsTotal.WithLabelValues(container).Add(float64(v))
}

// SetSize sets the container size gauge.
func SetSize(container string, v int) {
	containerSize.WithLabelValues(container).Set(float64(v))
}

// SetPeakSize sets the peak size gauge.
func SetPeakSize(container string, v int) {
	peakSize.WithLabelValues(container).Set(float64(v))
}

// SetRunDuration sets the run duration gauge.
func SetRunDuration(container string, dur time.Duration) {
	runDurationSeconds.WithLabelValues(container).Set(dur.Seconds())
}
