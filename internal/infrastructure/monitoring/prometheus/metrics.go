package prometheus

import "time"

// DefaultStageDurationBuckets covers a single-file compile run, which
// finishes in milliseconds for small maps and low seconds for the
// largest CellDesigner exports seen in practice.
var DefaultStageDurationBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}

// StageMetrics tracks per-pipeline-stage duration and the number of
// species the Reducer and Pruner remove, one histogram/counter
// pair per stage name (reducer, abstracter, rulebuilder, pruner, namer,
// overrides, simplifier — SPEC_FULL.md §2's A-H components).
type StageMetrics struct {
	stageDuration  HistogramVec
	speciesDropped CounterVec
}

// NewStageMetrics registers the compiler's metrics against collector. A
// nil collector yields a StageMetrics that records nothing, for CLI
// invocations that never start an exporter.
func NewStageMetrics(collector MetricsCollector) *StageMetrics {
	if collector == nil {
		return &StageMetrics{stageDuration: &noopHistogramVec{}, speciesDropped: &noopCounterVec{}}
	}
	return &StageMetrics{
		stageDuration: collector.RegisterHistogram(
			"compile_stage_duration_seconds", "Duration of one compiler pipeline stage",
			DefaultStageDurationBuckets, "stage"),
		speciesDropped: collector.RegisterCounter(
			"compile_species_dropped_total", "Species removed by a pipeline stage",
			"stage"),
	}
}

// StartStage returns a function that records the elapsed time under the
// named stage's histogram when called; callers use it with defer.
func (m *StageMetrics) StartStage(name string) func() {
	start := time.Now()
	return func() {
		m.stageDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}
}

// RecordDropped increments the species-dropped counter for the named
// stage (Reducer or Pruner) by n.
func (m *StageMetrics) RecordDropped(stage string, n int) {
	if n <= 0 {
		return
	}
	m.speciesDropped.WithLabelValues(stage).Add(float64(n))
}
