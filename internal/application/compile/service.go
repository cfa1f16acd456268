// Package compile orchestrates the full species-reduction-to-logical-
// model pipeline (SPEC_FULL.md §2 data flow: Reader → A → B → C → D → E
// → F → G → H → Writer). The Service owns stage sequencing, warning
// accumulation, and per-stage metrics/logging; it does not itself read
// or write files.
package compile

import (
	"context"

	"github.com/google/uuid"

	"github.com/turtacn/sbgnqual/internal/domain/abstracter"
	"github.com/turtacn/sbgnqual/internal/domain/model"
	"github.com/turtacn/sbgnqual/internal/domain/namer"
	"github.com/turtacn/sbgnqual/internal/domain/overrides"
	"github.com/turtacn/sbgnqual/internal/domain/pruner"
	"github.com/turtacn/sbgnqual/internal/domain/reducer"
	"github.com/turtacn/sbgnqual/internal/domain/rulebuilder"
	"github.com/turtacn/sbgnqual/internal/domain/simplify"
	"github.com/turtacn/sbgnqual/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/sbgnqual/internal/infrastructure/monitoring/prometheus"
	cerrors "github.com/turtacn/sbgnqual/pkg/errors"
)

// Params bundles every user-controllable knob across the Pruner, Namer,
// and Overrides stages (SPEC_FULL.md §6 CLI surface).
type Params struct {
	ComponentThreshold int
	UpstreamNames      []string
	DownstreamNames    []string
	PreferNamesAsID    bool
	FixedOverrides     []overrides.Override
}

// Result is everything a writer needs, plus the accumulated non-fatal
// warnings a caller should surface (SPEC_FULL.md §7).
type Result struct {
	RunID      string
	Model      *model.Model
	Influences []model.Influence
	Warnings   []error
}

// Service runs the compile pipeline.
type Service struct {
	logger  logging.Logger
	metrics *prometheus.StageMetrics
}

// NewService constructs a Service. logger and metrics may be nil, in
// which case a no-op logger and an unregistered metrics collector are
// used.
func NewService(logger logging.Logger, metrics *prometheus.StageMetrics) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if metrics == nil {
		metrics = prometheus.NewStageMetrics(nil)
	}
	return &Service{logger: logger, metrics: metrics}
}

// Compile runs the reducer through simplifier stages against m in
// place, which must already hold the species/reactions produced by a
// Reader. It returns the Result whether or not warnings occurred;
// MalformedInput is the reader's concern and never reaches this stage.
// A DanglingReference detected after reduction aborts the run.
func (s *Service) Compile(ctx context.Context, m *model.Model, p Params) (*Result, error) {
	runID := uuid.NewString()
	logger := s.logger.With(logging.String("run_id", runID))

	result := &Result{RunID: runID, Model: m}

	before := m.SpeciesCount()
	s.timedStage("reducer", func() { reducer.Reduce(m, logger) })
	s.metrics.RecordDropped("reducer", before-m.SpeciesCount())

	if bad := m.CheckReferentialIntegrity(); len(bad) > 0 {
		return nil, cerrors.New(cerrors.CodeDanglingReference, danglingRefMessage(bad))
	}

	var influences []model.Influence
	s.timedStage("abstracter", func() { influences = abstracter.Abstract(m) })
	result.Influences = influences

	s.timedStage("rulebuilder", func() { rulebuilder.Build(m) })

	if p.ComponentThreshold != 0 || len(p.UpstreamNames) > 0 || len(p.DownstreamNames) > 0 {
		before = m.SpeciesCount()
		s.timedStage("pruner", func() {
			pruner.Prune(m, influences, pruner.Params{
				ComponentThreshold: p.ComponentThreshold,
				UpstreamNames:      p.UpstreamNames,
				DownstreamNames:    p.DownstreamNames,
			}, logger)
		})
		s.metrics.RecordDropped("pruner", before-m.SpeciesCount())
	}

	s.timedStage("namer", func() { namer.Name(m, namer.Params{PreferNamesAsID: p.PreferNamesAsID}) })

	if len(p.FixedOverrides) > 0 {
		var unresolved []error
		s.timedStage("overrides", func() { unresolved = overrides.Apply(m, p.FixedOverrides) })
		result.Warnings = append(result.Warnings, unresolved...)
		for _, w := range unresolved {
			logger.Warn("override unresolved", logging.Err(w))
		}
	}

	s.timedStage("simplifier", func() {
		for _, sp := range m.AllSpecies() {
			if sp.Function != nil {
				sp.Function = simplify.Simplify(sp.Function)
			}
		}
	})

	if m.SpeciesCount() == 0 {
		w := cerrors.New(cerrors.CodeEmptyModel, "model has no surviving species")
		result.Warnings = append(result.Warnings, w)
		logger.Warn("empty model after compile pipeline")
	}

	logger.Info("compile run complete",
		logging.Int("species", m.SpeciesCount()),
		logging.Int("reactions", m.ReactionCount()),
		logging.Int("warnings", len(result.Warnings)))

	return result, nil
}

func (s *Service) timedStage(name string, fn func()) {
	stop := s.metrics.StartStage(name)
	defer stop()
	fn()
}

func danglingRefMessage(bad []model.DanglingRef) string {
	msg := "dangling references after reduction:"
	for i, b := range bad {
		if i > 0 {
			msg += ","
		}
		msg += " " + b.ReactionID + "->" + b.SpeciesID
	}
	return msg
}
