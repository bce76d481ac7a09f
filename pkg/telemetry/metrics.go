// Package telemetry implements the orchestrator.Telemetry sink and the
// metrics/health HTTP surface (§5, §6), modelled on the observability
// server idiom: a private prometheus.Registry plus standard Go/process
// collectors, never the global default registry.
package telemetry

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/coolbeans/ukleg-register/pkg/orchestrator"
)

// NewRegistry creates a private prometheus.Registry with the standard
// Go/process collectors attached, never the global default registry.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// Metrics holds the Prometheus instruments the staged parser emits into and
// doubles as the orchestrator.Telemetry sink: every event it receives is
// both folded into these aggregate instruments and logged verbatim under
// its §6 event name, so the named-field schema survives even though
// Prometheus's own instruments only carry label cardinality, not a fixed
// per-event field set.
type Metrics struct {
	StagesTotal       *prometheus.CounterVec
	StageDurationHist *prometheus.HistogramVec
	ParsesTotal       prometheus.Counter
	ParseDurationHist prometheus.Histogram
	ParseErrors       prometheus.Counter
	CascadePending    prometheus.Gauge

	TaxaDurationHist *prometheus.HistogramVec

	logger *slog.Logger
}

// NewMetrics creates and registers the parser's custom metrics against reg.
// A nil logger falls back to slog.Default().
func NewMetrics(reg prometheus.Registerer, logger *slog.Logger) *Metrics {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Metrics{
		StagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ukleg_stage_runs_total",
			Help: "Total stage runs by stage name and outcome status.",
		}, []string{"stage", "status"}),
		StageDurationHist: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ukleg_stage_duration_seconds",
			Help:    "Per-stage wall-clock duration.",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage"}),
		ParsesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ukleg_parses_total",
			Help: "Total completed parses.",
		}),
		ParseDurationHist: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ukleg_parse_duration_seconds",
			Help:    "Total wall-clock duration of a full seven-stage parse.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
		ParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ukleg_parse_errors_total",
			Help: "Total parses that completed with has_errors=true.",
		}),
		CascadePending: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ukleg_cascade_pending",
			Help: "Current number of pending cascade entries across sessions.",
		}),
		TaxaDurationHist: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ukleg_taxa_substage_duration_seconds",
			Help:    "Taxa pipeline substage wall-clock duration.",
			Buckets: prometheus.DefBuckets,
		}, []string{"substage"}),

		logger: logger,
	}

	reg.MustRegister(m.StagesTotal, m.StageDurationHist, m.ParsesTotal, m.ParseDurationHist, m.ParseErrors, m.CascadePending, m.TaxaDurationHist)
	return m
}

// StageComplete implements orchestrator.Telemetry, emitting the §6
// staged_parser.stage.complete event.
func (m *Metrics) StageComplete(e orchestrator.StageCompleteEvent) {
	m.StagesTotal.WithLabelValues(string(e.Stage), string(e.Status)).Inc()
	m.StageDurationHist.WithLabelValues(string(e.Stage)).Observe(microsToSeconds(e.DurationUs))

	m.logger.Info("staged_parser.stage.complete",
		"duration_us", e.DurationUs,
		"stage", e.Stage, "status", e.Status, "law_name", e.LawName, "type_code", e.TypeCode,
	)
}

// TaxaComplete implements orchestrator.Telemetry, emitting the §6
// taxa.classify.complete event.
func (m *Metrics) TaxaComplete(e orchestrator.TaxaCompleteEvent) {
	m.TaxaDurationHist.WithLabelValues("actor").Observe(microsToSeconds(e.ActorDurationUs))
	m.TaxaDurationHist.WithLabelValues("duty_type").Observe(microsToSeconds(e.DutyTypeDurationUs))
	m.TaxaDurationHist.WithLabelValues("popimar").Observe(microsToSeconds(e.PopimarDurationUs))
	m.TaxaDurationHist.WithLabelValues("purpose").Observe(microsToSeconds(e.PurposeDurationUs))

	m.logger.Info("taxa.classify.complete",
		"duration_us", e.DurationUs,
		"actor_duration_us", e.ActorDurationUs,
		"duty_type_duration_us", e.DutyTypeDurationUs,
		"popimar_duration_us", e.PopimarDurationUs,
		"purpose_duration_us", e.PurposeDurationUs,
		"text_length", e.TextLength,
		"law_name", e.LawName, "source", e.Source,
		"actor_count", e.ActorCount, "duty_type_count", e.DutyTypeCount,
		"popimar_count", e.PopimarCount, "popimar_skipped", e.PopimarSkipped,
	)
}

// ParseComplete implements orchestrator.Telemetry, emitting the §6
// staged_parser.parse.complete event.
func (m *Metrics) ParseComplete(e orchestrator.ParseCompleteEvent) {
	m.ParsesTotal.Inc()
	m.ParseDurationHist.Observe(microsToSeconds(e.DurationUs))
	if e.HasErrors {
		m.ParseErrors.Inc()
	}

	m.logger.Info("staged_parser.parse.complete",
		"duration_us", e.DurationUs,
		"metadata_duration_us", e.MetadataDurationUs,
		"extent_duration_us", e.ExtentDurationUs,
		"enacted_by_duration_us", e.EnactedByDurationUs,
		"amending_duration_us", e.AmendingDurationUs,
		"amended_by_duration_us", e.AmendedByDurationUs,
		"repeal_revoke_duration_us", e.RepealRevokeDurationUs,
		"taxa_duration_us", e.TaxaDurationUs,
		"stages_run", e.StagesRun, "errors_count", e.ErrorsCount,
		"law_name", e.LawName, "type_code", e.TypeCode, "has_errors", e.HasErrors, "cancelled", e.Cancelled,
	)
}

func microsToSeconds(us int64) float64 {
	return float64(us) / 1e6
}

// SetCascadePending updates the cascade backlog gauge.
func (m *Metrics) SetCascadePending(n int) {
	m.CascadePending.Set(float64(n))
}
