package node

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	verdicts   *prometheus.CounterVec
	groupCells *prometheus.HistogramVec
}

// NewMetrics registers the evaluator metrics on reg. A nil reg leaves them
// unregistered but usable.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sudt_verdicts_total",
			Help: "sUDT group verdicts by exit status",
		}, []string{"status"}),
		groupCells: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sudt_group_cells",
			Help:    "Cells per sUDT group channel",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"side"}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.verdicts, m.groupCells} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(status int8, inputs, outputs int) {
	m.verdicts.WithLabelValues(strconv.Itoa(int(status))).Inc()
	m.groupCells.WithLabelValues("input").Observe(float64(inputs))
	m.groupCells.WithLabelValues("output").Observe(float64(outputs))
}
