// Package reducer implements the four confluent rewrite rules that
// collapse redundant species out of a reaction hypergraph (component B,
// SPEC_FULL.md §4.B). Each rule is applied exactly once, in fixed order,
// over a snapshot of reactions taken before that rule's pass begins —
// this is what makes the reducer terminating and confluent: selection
// criteria never see the effects of rewrites made earlier in the same
// pass, while the rewrites themselves are applied to the live model so
// later rules and later pipeline stages see a consistent graph.
package reducer

import (
	"github.com/turtacn/sbgnqual/internal/domain/model"
	"github.com/turtacn/sbgnqual/internal/infrastructure/monitoring/logging"
)

// Reduce runs R1 through R4, in order, once each, against m.
func Reduce(m *model.Model, logger logging.Logger) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	before := m.SpeciesCount()

	applyR1(m, logger)
	applyR2(m, logger)
	applyR3(m, logger)
	applyR4(m, logger)

	logger.Info("reducer pass complete",
		logging.Int("species_before", before),
		logging.Int("species_after", m.SpeciesCount()))
}

// roleSummary captures where a species appears across a fixed reaction
// snapshot, excluding its reactant role in one named reaction.
type roleSummary struct {
	reactantElsewhere bool
	modifierAnywhere  bool
	productAnywhere   bool
}

func summarizeRoles(snapshot []*model.Reaction, speciesID, exceptReactionID string) roleSummary {
	var s roleSummary
	for _, r := range snapshot {
		if r.HasProduct(speciesID) {
			s.productAnywhere = true
		}
		if r.HasModifier(speciesID) {
			s.modifierAnywhere = true
		}
		if r.HasReactant(speciesID) && r.ID != exceptReactionID {
			s.reactantElsewhere = true
		}
	}
	return s
}

// onlyAsReactantIn reports whether speciesID's sole role anywhere in the
// snapshot is as a reactant of r (used by R1 and R3: "appears only as
// reactant in r").
func onlyAsReactantIn(snapshot []*model.Reaction, speciesID string, r *model.Reaction) bool {
	if !r.HasReactant(speciesID) {
		return false
	}
	s := summarizeRoles(snapshot, speciesID, r.ID)
	return !s.reactantElsewhere && !s.modifierAnywhere && !s.productAnywhere
}

// noOtherReactantOrModifierRole reports whether speciesID appears as a
// reactant nowhere else and as a modifier nowhere at all, while allowing
// it to appear as a product elsewhere (used by R2 and R4).
func noOtherReactantOrModifierRole(snapshot []*model.Reaction, speciesID string, r *model.Reaction) bool {
	if !r.HasReactant(speciesID) {
		return false
	}
	s := summarizeRoles(snapshot, speciesID, r.ID)
	return !s.reactantElsewhere && !s.modifierAnywhere
}

// applyR1 implements the receptor-association collapse.
func applyR1(m *model.Model, logger logging.Logger) {
	snapshot := m.ReactionsSnapshot()

	type candidate struct {
		reaction *model.Reaction
		receptor string
		product  string
	}
	var candidates []candidate

	for _, r := range snapshot {
		if r.Type != model.ReactionHeterodimerAssociation {
			continue
		}
		if len(r.Reactants) != 2 || len(r.Products) != 1 || len(r.Modifiers) != 0 {
			continue
		}
		a, b := r.Reactants[0], r.Reactants[1]
		p := r.Products[0]

		sa, okA := m.Lookup(a)
		sb, okB := m.Lookup(b)
		if !okA || !okB {
			continue
		}
		aIsReceptor := sa.Type == model.TypeReceptor
		bIsReceptor := sb.Type == model.TypeReceptor
		if aIsReceptor == bIsReceptor {
			continue // need exactly one receptor
		}

		receptor, nonReceptor := a, b
		if bIsReceptor {
			receptor, nonReceptor = b, a
		}

		if onlyAsReactantIn(snapshot, receptor, r) && onlyAsReactantIn(snapshot, nonReceptor, r) {
			candidates = append(candidates, candidate{reaction: r, receptor: receptor, product: p})
		}
	}

	for _, c := range candidates {
		if err := m.TransferAnnotations(c.receptor, c.product); err != nil {
			logger.Warn("R1: annotation transfer failed", logging.Err(err))
			continue
		}
		c.reaction.RemoveReactant(c.receptor)
		if err := m.DeleteSpecies(c.receptor, model.RequireDetached); err != nil {
			logger.Warn("R1: delete receptor failed", logging.Err(err))
			continue
		}
		logger.Debug("R1 applied", logging.String("reaction", c.reaction.ID), logging.String("receptor", c.receptor))
	}
}

// applyR2 implements complex formation.
func applyR2(m *model.Model, logger logging.Logger) {
	snapshot := m.ReactionsSnapshot()

	type candidate struct {
		reaction *model.Reaction
		a, b, p  string
	}
	var candidates []candidate

	for _, r := range snapshot {
		if r.Type != model.ReactionHeterodimerAssociation {
			continue
		}
		if len(r.Reactants) != 2 || len(r.Products) != 1 || len(r.Modifiers) != 0 {
			continue
		}
		a, b := r.Reactants[0], r.Reactants[1]
		p := r.Products[0]

		sa, okA := m.Lookup(a)
		sb, okB := m.Lookup(b)
		if !okA || !okB {
			continue
		}
		if sa.Type == model.TypeReceptor || sb.Type == model.TypeReceptor {
			continue
		}
		if noOtherReactantOrModifierRole(snapshot, a, r) && noOtherReactantOrModifierRole(snapshot, b, r) {
			candidates = append(candidates, candidate{reaction: r, a: a, b: b, p: p})
		}
	}

	for _, c := range candidates {
		m.RewireProductReferences(c.a, c.p)
		m.RewireProductReferences(c.b, c.p)

		if err := m.TransferAnnotations(c.a, c.p); err != nil {
			logger.Warn("R2: annotation transfer failed", logging.Err(err))
			continue
		}
		if err := m.TransferAnnotations(c.b, c.p); err != nil {
			logger.Warn("R2: annotation transfer failed", logging.Err(err))
			continue
		}

		c.reaction.RemoveReactant(c.a)
		c.reaction.RemoveReactant(c.b)

		if err := m.MergeInto(c.a, c.p); err != nil {
			logger.Warn("R2: merge failed", logging.Err(err))
		}
		if err := m.MergeInto(c.b, c.p); err != nil {
			logger.Warn("R2: merge failed", logging.Err(err))
		}

		if err := m.DeleteSpecies(c.a, model.RequireDetached); err != nil {
			logger.Warn("R2: delete a failed", logging.Err(err))
		}
		if err := m.DeleteSpecies(c.b, model.RequireDetached); err != nil {
			logger.Warn("R2: delete b failed", logging.Err(err))
		}
		logger.Debug("R2 applied", logging.String("reaction", c.reaction.ID), logging.String("product", c.p))
	}
}

// applyR3 implements the same-name passthrough delete.
func applyR3(m *model.Model, logger logging.Logger) {
	snapshot := m.ReactionsSnapshot()

	type candidate struct {
		reactionID string
		a, p       string
	}
	var candidates []candidate

	for _, r := range snapshot {
		if len(r.Reactants) != 1 || len(r.Products) != 1 {
			continue
		}
		a, p := r.Reactants[0], r.Products[0]
		sa, okA := m.Lookup(a)
		sp, okP := m.Lookup(p)
		if !okA || !okP {
			continue
		}
		if sa.Name != sp.Name {
			continue
		}
		if onlyAsReactantIn(snapshot, a, r) {
			candidates = append(candidates, candidate{reactionID: r.ID, a: a, p: p})
		}
	}

	for _, c := range candidates {
		if err := m.TransferAnnotations(c.a, c.p); err != nil {
			logger.Warn("R3: annotation transfer failed", logging.Err(err))
			continue
		}
		m.DeleteReaction(c.reactionID)
		if err := m.DeleteSpecies(c.a, model.RequireDetached); err != nil {
			logger.Warn("R3: delete failed", logging.Err(err))
			continue
		}
		logger.Debug("R3 applied", logging.String("reaction", c.reactionID), logging.String("deleted", c.a))
	}
}

// applyR4 implements transport merge.
func applyR4(m *model.Model, logger logging.Logger) {
	snapshot := m.ReactionsSnapshot()

	type candidate struct {
		reactionID string
		a, p       string
	}
	var candidates []candidate

	for _, r := range snapshot {
		if r.Type != model.ReactionTransport {
			continue
		}
		if len(r.Reactants) != 1 || len(r.Products) != 1 {
			continue
		}
		a, p := r.Reactants[0], r.Products[0]
		sa, okA := m.Lookup(a)
		sp, okP := m.Lookup(p)
		if !okA || !okP {
			continue
		}
		if sa.Name != sp.Name {
			continue
		}
		if noOtherReactantOrModifierRole(snapshot, a, r) {
			candidates = append(candidates, candidate{reactionID: r.ID, a: a, p: p})
		}
	}

	for _, c := range candidates {
		m.RewireProductReferences(c.a, c.p)
		if err := m.TransferAnnotations(c.a, c.p); err != nil {
			logger.Warn("R4: annotation transfer failed", logging.Err(err))
			continue
		}
		if err := m.MergeInto(c.a, c.p); err != nil {
			logger.Warn("R4: merge failed", logging.Err(err))
		}
		m.DeleteReaction(c.reactionID)
		if err := m.DeleteSpecies(c.a, model.RequireDetached); err != nil {
			logger.Warn("R4: delete failed", logging.Err(err))
			continue
		}
		logger.Debug("R4 applied", logging.String("reaction", c.reactionID), logging.String("deleted", c.a))
	}
}
