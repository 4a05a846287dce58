package setcover

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects figures about runs on a private registry. A batch tool
// has nobody to scrape it, so the usual way out is WriteTextfile, for the
// node exporter's textfile collector.
type Metrics struct {
	reg *prometheus.Registry

	Variables     prometheus.Gauge
	AuxVariables  prometheus.Gauge
	Clauses       prometheus.Gauge
	ChosenSets    prometheus.Gauge
	Uncovered     prometheus.Gauge
	SolveDuration prometheus.Histogram
	Verdicts      *prometheus.CounterVec
}

// NewMetrics creates a Metrics with its own registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		Variables: f.NewGauge(prometheus.GaugeOpts{
			Name: "setcover_variables",
			Help: "Variables in the last encoded formula.",
		}),
		AuxVariables: f.NewGauge(prometheus.GaugeOpts{
			Name: "setcover_auxiliary_variables",
			Help: "Counter variables introduced by the at-most-k encoding.",
		}),
		Clauses: f.NewGauge(prometheus.GaugeOpts{
			Name: "setcover_clauses",
			Help: "Clauses in the last encoded formula.",
		}),
		ChosenSets: f.NewGauge(prometheus.GaugeOpts{
			Name: "setcover_chosen_sets",
			Help: "Sets selected by the last satisfying model.",
		}),
		Uncovered: f.NewGauge(prometheus.GaugeOpts{
			Name: "setcover_uncovered_elements",
			Help: "Elements the last satisfying model failed to cover (always 0 unless something is broken).",
		}),
		SolveDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "setcover_solve_duration_seconds",
			Help:    "Time spent in the SAT solver.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		Verdicts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "setcover_verdicts_total",
			Help: "Solver verdicts by kind.",
		}, []string{"verdict"}),
	}
}

// Gatherer exposes the registry, for tests and for embedding in a server.
func (m *Metrics) Gatherer() prometheus.Gatherer { return m.reg }

// WriteTextfile writes the current values to filename in the text
// exposition format.
func (m *Metrics) WriteTextfile(filename string) error {
	return prometheus.WriteToTextfile(filename, m.reg)
}

func (m *Metrics) observeFormula(inst *Instance, f *Formula) {
	m.Variables.Set(float64(f.NumVars))
	m.AuxVariables.Set(float64(f.NumVars - inst.SetCount()))
	m.Clauses.Set(float64(len(f.Clauses)))
}

func (m *Metrics) observeReport(r *Report) {
	m.Verdicts.WithLabelValues(r.Verdict.String()).Inc()
	if r.Verdict == Satisfiable {
		m.ChosenSets.Set(float64(len(r.Chosen)))
		m.Uncovered.Set(float64(len(r.Missing)))
	}
}
