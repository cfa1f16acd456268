// Package rulebuilder synthesizes, for every surviving species that is
// produced by at least one reaction, the Boolean formula describing its
// activation (component D, SPEC_FULL.md §4.D).
package rulebuilder

import (
	"sort"

	"github.com/turtacn/sbgnqual/internal/domain/expr"
	"github.com/turtacn/sbgnqual/internal/domain/model"
)

// Build attaches s.Function to every species y for which R(y), the set
// of reactions producing y, is non-empty. Species with R(y) = ∅ are free
// inputs and are left with a nil Function.
func Build(m *model.Model) {
	reactionsByProduct := make(map[string][]*model.Reaction)
	for _, r := range m.AllReactions() {
		for _, p := range r.Products {
			reactionsByProduct[p] = append(reactionsByProduct[p], r)
		}
	}

	for _, s := range m.AllSpecies() {
		rs := reactionsByProduct[s.ID]
		if len(rs) == 0 {
			continue
		}
		// Rule clause ordering is an observable iteration order
		// (SPEC_FULL.md §5); reactions carry no Handle, so ascending
		// string id is the determinism axis here.
		sort.Slice(rs, func(i, j int) bool { return rs[i].ID < rs[j].ID })

		clauses := make([]*expr.Expr, 0, len(rs))
		for _, r := range rs {
			clauses = append(clauses, reactionClause(r))
		}
		s.Function = expr.Or(clauses...)
	}
}

// reactionClause builds the clause for one reaction r:
//
//	(OR over Pos(r)) AND (AND over In(r)) AND (AND over Neg(r) of NOT v)
//
// Each of the three parts is TRUE (the AND identity) when its underlying
// set is empty, per SPEC_FULL.md §4.D; rather than conjoining literal
// TRUE operands and relying on the Rule Simplifier (component H) to
// strip them back out, empty parts are simply omitted here, so a
// reaction with nothing but reactants yields a bare AND of those
// reactants instead of "TRUE AND ... AND TRUE". A clause with every part
// empty (no reactants, modifiers) collapses to TRUE via And's own
// empty-operand identity.
func reactionClause(r *model.Reaction) *expr.Expr {
	var parts []*expr.Expr
	if pos := sortedModifierVars(r.PositiveModifiers()); len(pos) > 0 {
		parts = append(parts, expr.Or(pos...))
	}
	if in := sortedReactantVars(r.Reactants); len(in) > 0 {
		parts = append(parts, expr.And(in...))
	}
	if neg := negatedSortedModifierVars(r.NegativeModifiers()); len(neg) > 0 {
		parts = append(parts, expr.And(neg...))
	}
	return expr.And(parts...)
}

func sortedModifierVars(mods []model.Modifier) []*expr.Expr {
	ids := make([]string, len(mods))
	for i, mod := range mods {
		ids[i] = mod.SpeciesID
	}
	sort.Strings(ids)
	out := make([]*expr.Expr, len(ids))
	for i, id := range ids {
		out[i] = expr.Var(id)
	}
	return out
}

func negatedSortedModifierVars(mods []model.Modifier) []*expr.Expr {
	ids := make([]string, len(mods))
	for i, mod := range mods {
		ids[i] = mod.SpeciesID
	}
	sort.Strings(ids)
	out := make([]*expr.Expr, len(ids))
	for i, id := range ids {
		out[i] = expr.Not(expr.Var(id))
	}
	return out
}

func sortedReactantVars(reactants []string) []*expr.Expr {
	ids := append([]string(nil), reactants...)
	sort.Strings(ids)
	out := make([]*expr.Expr, len(ids))
	for i, id := range ids {
		out[i] = expr.Var(id)
	}
	return out
}
