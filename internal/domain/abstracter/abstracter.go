// Package abstracter derives the signed influence graph from the
// surviving reactions of a reduced model (component C, SPEC_FULL.md
// §4.C): the PD→AF (process-description to activity-flow) structural
// abstraction.
package abstracter

import "github.com/turtacn/sbgnqual/internal/domain/model"

// Abstract returns, for every surviving reaction, the arcs
//
//	{(x, y, +) : x ∈ reactants(r) ∪ positiveModifiers(r), y ∈ products(r)}
//	∪ {(x, y, -) : x ∈ negativeModifiers(r), y ∈ products(r)}
//
// Mutual inhibition between co-reactants is deliberately not generated.
// Arcs are deduplicated per (source, target, sign) — not per reaction —
// since downstream consumers (Pruner, SIF writer) only care whether an
// arc exists at all.
func Abstract(m *model.Model) []model.Influence {
	seen := make(map[[3]string]bool)
	var out []model.Influence

	add := func(source, target string, sign model.Sign) {
		key := [3]string{source, target, sign.String()}
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, model.Influence{Source: source, Target: target, Sign: sign})
	}

	for _, r := range m.AllReactions() {
		positiveSources := make([]string, 0, len(r.Reactants)+len(r.Modifiers))
		positiveSources = append(positiveSources, r.Reactants...)
		for _, mod := range r.PositiveModifiers() {
			positiveSources = append(positiveSources, mod.SpeciesID)
		}
		negativeSources := make([]string, 0, len(r.Modifiers))
		for _, mod := range r.NegativeModifiers() {
			negativeSources = append(negativeSources, mod.SpeciesID)
		}

		for _, target := range r.Products {
			for _, source := range positiveSources {
				add(source, target, model.Positive)
			}
			for _, source := range negativeSources {
				add(source, target, model.Negative)
			}
		}
	}
	return out
}
