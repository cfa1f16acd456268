package model

// Modifier is a (species id, role) pair attached to a reaction.
type Modifier struct {
	SpeciesID string
	Kind      ModifierKind
}

// Reaction is a hyperedge (spec.md §3): an ordered set of reactant
// species ids, an ordered set of product species ids, and a set of
// modifiers, all referencing species by id (never by Handle — ids
// survive reduction via the Model's redirection map, Handles do not
// need to).
type Reaction struct {
	ID        string
	Type      ReactionType
	Reactants []string
	Products  []string
	Modifiers []Modifier

	deleted bool
}

// PositiveModifiers returns the modifiers of r classified positive by
// SPEC_FULL.md §3, in the order they appear on the reaction.
func (r *Reaction) PositiveModifiers() []Modifier {
	var out []Modifier
	for _, m := range r.Modifiers {
		if m.Kind.IsPositive() {
			out = append(out, m)
		}
	}
	return out
}

// NegativeModifiers returns the modifiers of r classified negative.
func (r *Reaction) NegativeModifiers() []Modifier {
	var out []Modifier
	for _, m := range r.Modifiers {
		if m.Kind.IsNegative() {
			out = append(out, m)
		}
	}
	return out
}

// HasReactant reports whether id appears in r's reactant list.
func (r *Reaction) HasReactant(id string) bool {
	for _, x := range r.Reactants {
		if x == id {
			return true
		}
	}
	return false
}

// HasProduct reports whether id appears in r's product list.
func (r *Reaction) HasProduct(id string) bool {
	for _, x := range r.Products {
		if x == id {
			return true
		}
	}
	return false
}

// HasModifier reports whether id appears as a modifier (of any kind) on r.
func (r *Reaction) HasModifier(id string) bool {
	for _, m := range r.Modifiers {
		if m.SpeciesID == id {
			return true
		}
	}
	return false
}

// RemoveReactant deletes id from r's reactant list, if present.
func (r *Reaction) RemoveReactant(id string) {
	r.removeReactant(id)
}

// removeReactant deletes id from r's reactant list, if present.
func (r *Reaction) removeReactant(id string) {
	out := r.Reactants[:0]
	for _, x := range r.Reactants {
		if x != id {
			out = append(out, x)
		}
	}
	r.Reactants = out
}

// replaceProduct rewrites every occurrence of from in r's product list
// to to, deduplicating afterwards.
func (r *Reaction) replaceProduct(from, to string) {
	seen := map[string]bool{}
	out := r.Products[:0]
	for _, x := range r.Products {
		if x == from {
			x = to
		}
		if !seen[x] {
			seen[x] = true
			out = append(out, x)
		}
	}
	r.Products = out
}
