package seed

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records seed runs. A nil *Metrics records nothing.
type Metrics struct {
	runs     *prometheus.CounterVec
	rows     *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetrics creates the seeder instruments and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seeder_runs_total",
			Help: "Seed runs by result.",
		}, []string{"result"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seeder_rows_total",
			Help: "Insert statements completed, by table. Skipped conflicts count too.",
		}, []string{"table"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "seeder_run_duration_seconds",
			Help:    "Wall time of a seed run, including connect and close.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.runs, m.rows, m.duration)
	return m
}

func (m *Metrics) rowDone(table string) {
	if m == nil {
		return
	}
	m.rows.WithLabelValues(table).Inc()
}

func (m *Metrics) runDone(err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(resultLabel(err)).Inc()
	m.duration.Observe(elapsed.Seconds())
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrConnection):
		return "connection"
	case errors.Is(err, ErrSchema):
		return "schema"
	case errors.Is(err, ErrInsert):
		return "insert"
	default:
		return "unknown"
	}
}
