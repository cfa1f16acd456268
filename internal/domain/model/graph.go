package model

import (
	"fmt"

	cerrors "github.com/turtacn/sbgnqual/pkg/errors"
)

// DeletePolicy selects what DeleteSpecies does with reactions that still
// reference the species being removed (spec.md §4.A: "callers must
// pick").
type DeletePolicy int

const (
	// DropIncidentReactions deletes any reaction still referencing the
	// species (as reactant, product, or modifier) along with the species
	// itself.
	DropIncidentReactions DeletePolicy = iota

	// RequireDetached asserts no live reaction references the species;
	// DeleteSpecies returns a DanglingReference-coded error if one does.
	// Rewrite rules use this after they have already scrubbed every
	// reference themselves (e.g. R1 removes the receptor from
	// r.Reactants before deleting it).
	RequireDetached
)

// Model is the in-memory reaction hypergraph (component A). Species and
// reactions live in two arrays indexed by small integer Handles; merges
// are recorded lazily in a union-find redirection array so rewiring
// never costs more than O(α(n)) per lookup (SPEC_FULL.md §9).
type Model struct {
	species    []*Species
	parent     []Handle
	idToHandle map[string]Handle

	reactions         []*Reaction
	reactionIDToIndex map[string]int
}

// NewModel returns an empty Model.
func NewModel() *Model {
	return &Model{
		idToHandle:        make(map[string]Handle),
		reactionIDToIndex: make(map[string]int),
	}
}

// AddSpecies inserts s and returns its Handle. The id must be unique.
func (m *Model) AddSpecies(s *Species) Handle {
	if s.Annotations == nil {
		s.Annotations = NewAnnotationBag()
	}
	h := Handle(len(m.species))
	m.species = append(m.species, s)
	m.parent = append(m.parent, h)
	m.idToHandle[s.ID] = h
	return h
}

// AddReaction appends r to the model.
func (m *Model) AddReaction(r *Reaction) {
	m.reactions = append(m.reactions, r)
	m.reactionIDToIndex[r.ID] = len(m.reactions) - 1
}

// find resolves h through the union-find redirection array with path
// compression.
func (m *Model) find(h Handle) Handle {
	for m.parent[h] != h {
		m.parent[h] = m.parent[m.parent[h]]
		h = m.parent[h]
	}
	return h
}

// Resolve follows merge redirection and returns the id of the species
// that id currently refers to (itself, if never merged).
func (m *Model) Resolve(id string) (string, bool) {
	h, ok := m.idToHandle[id]
	if !ok {
		return "", false
	}
	r := m.find(h)
	return m.species[r].ID, true
}

// Lookup returns the live species that id resolves to, following any
// merge redirection. Returns false if id is unknown, if id's own species
// has been deleted (also after being merged into a survivor; Resolve
// still follows its redirection), or if id resolves to a deleted species.
func (m *Model) Lookup(id string) (*Species, bool) {
	h, ok := m.idToHandle[id]
	if !ok || m.species[h].deleted {
		return nil, false
	}
	s := m.species[m.find(h)]
	if s.deleted {
		return nil, false
	}
	return s, true
}

// MustLookup is Lookup but panics on failure; reserved for call sites
// where absence indicates a prior-stage invariant violation (I1) rather
// than a recoverable condition.
func (m *Model) MustLookup(id string) *Species {
	s, ok := m.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("model: MustLookup(%q): species not found", id))
	}
	return s
}

// MergeInto redirects `from` to resolve to `to` from now on: any later
// Lookup/Resolve(from) returns to's species. It is idempotent (merging
// an already-merged species into the same target is a no-op) and fails
// if `to` has itself already been merged away — the caller must call
// Resolve(to) first to chase forwardings (spec.md §4.A).
func (m *Model) MergeInto(from, to string) error {
	hf, ok := m.idToHandle[from]
	if !ok {
		return cerrors.New(cerrors.CodeDanglingReference, fmt.Sprintf("MergeInto: unknown species %q", from))
	}
	ht, ok := m.idToHandle[to]
	if !ok {
		return cerrors.New(cerrors.CodeDanglingReference, fmt.Sprintf("MergeInto: unknown target species %q", to))
	}
	rt := m.find(ht)
	if rt != ht || m.species[rt].deleted {
		return cerrors.New(cerrors.CodeMergedReference,
			fmt.Sprintf("MergeInto: target %q has itself been merged away; resolve it first", to))
	}
	rf := m.find(hf)
	if rf == rt {
		return nil
	}
	m.parent[rf] = rt
	return nil
}

// TransferAnnotations merges fromID's annotation bag into toID's
// (commutative for the resulting URI set, idempotent). Fails if toID
// resolves to a species that has itself been merged away.
func (m *Model) TransferAnnotations(fromID, toID string) error {
	hf, ok := m.idToHandle[fromID]
	if !ok {
		return cerrors.New(cerrors.CodeDanglingReference, fmt.Sprintf("TransferAnnotations: unknown species %q", fromID))
	}
	to, ok := m.Lookup(toID)
	if !ok {
		return cerrors.New(cerrors.CodeMergedReference,
			fmt.Sprintf("TransferAnnotations: target %q is absent or has been merged away; resolve it first", toID))
	}
	from := m.species[m.find(hf)]
	to.Annotations.MergeFrom(from.Annotations)
	return nil
}

// DeleteSpecies removes the species named id from the model according
// to policy. Returns a DanglingReference-coded error under
// RequireDetached if a live reaction still references id.
func (m *Model) DeleteSpecies(id string, policy DeletePolicy) error {
	h, ok := m.idToHandle[id]
	if !ok {
		return cerrors.New(cerrors.CodeDanglingReference, fmt.Sprintf("DeleteSpecies: unknown species %q", id))
	}
	s := m.species[h]
	if s.deleted {
		return nil
	}

	referencing := func(r *Reaction) bool {
		return !r.deleted && (r.HasReactant(id) || r.HasProduct(id) || r.HasModifier(id))
	}

	switch policy {
	case RequireDetached:
		for _, r := range m.reactions {
			if referencing(r) {
				return cerrors.New(cerrors.CodeDanglingReference,
					fmt.Sprintf("DeleteSpecies(%q, RequireDetached): still referenced by reaction %q", id, r.ID))
			}
		}
	case DropIncidentReactions:
		for _, r := range m.reactions {
			if referencing(r) {
				r.deleted = true
			}
		}
	}
	s.deleted = true
	return nil
}

// DeleteReaction removes r by id, independent of the species it touches.
func (m *Model) DeleteReaction(id string) {
	if idx, ok := m.reactionIDToIndex[id]; ok {
		m.reactions[idx].deleted = true
	}
}

// AllSpecies returns every live species in ascending Handle order
// (insertion order, the model's determinism axis per SPEC_FULL.md §9).
func (m *Model) AllSpecies() []*Species {
	out := make([]*Species, 0, len(m.species))
	for _, h := range m.liveHandlesAscending() {
		out = append(out, m.species[h])
	}
	return out
}

// liveHandlesAscending returns the handle of every live species that has
// not been merged away (a redirection root), in ascending Handle order.
func (m *Model) liveHandlesAscending() []Handle {
	seen := make(map[Handle]bool, len(m.species))
	out := make([]Handle, 0, len(m.species))
	for h := range m.species {
		root := m.find(Handle(h))
		if root != Handle(h) || m.species[root].deleted || seen[root] {
			continue
		}
		seen[root] = true
		out = append(out, root)
	}
	return out
}

// AllReactions returns every live reaction in insertion order.
func (m *Model) AllReactions() []*Reaction {
	out := make([]*Reaction, 0, len(m.reactions))
	for _, r := range m.reactions {
		if !r.deleted {
			out = append(out, r)
		}
	}
	return out
}

// ReactionsSnapshot returns the current live reactions as a fixed slice
// that will not grow as the caller appends new reactions to the model —
// this is what makes the Reducer's single-pass-per-rule strategy
// terminating and confluent (SPEC_FULL.md §4.B).
func (m *Model) ReactionsSnapshot() []*Reaction {
	return m.AllReactions()
}

// SpeciesCount returns the number of live species.
func (m *Model) SpeciesCount() int { return len(m.liveHandlesAscending()) }

// ReactionCount returns the number of live reactions.
func (m *Model) ReactionCount() int { return len(m.AllReactions()) }

// RewireProductReferences replaces every occurrence of from with to in
// every live reaction's product list, deduplicating afterwards. Used by
// R2 and R4 to keep the live model consistent after a merge
// (SPEC_FULL.md §4.B).
func (m *Model) RewireProductReferences(from, to string) {
	for _, r := range m.AllReactions() {
		if r.HasProduct(from) {
			r.replaceProduct(from, to)
		}
	}
}

// CheckReferentialIntegrity verifies invariant I1: every id referenced
// from any live reaction resolves to some live species. Returns the
// offending (reactionID, speciesID) pairs, if any.
func (m *Model) CheckReferentialIntegrity() []DanglingRef {
	var bad []DanglingRef
	check := func(rID, sID string) {
		if _, ok := m.Lookup(sID); !ok {
			bad = append(bad, DanglingRef{ReactionID: rID, SpeciesID: sID})
		}
	}
	for _, r := range m.AllReactions() {
		for _, s := range r.Reactants {
			check(r.ID, s)
		}
		for _, s := range r.Products {
			check(r.ID, s)
		}
		for _, mod := range r.Modifiers {
			check(r.ID, mod.SpeciesID)
		}
	}
	return bad
}

// DanglingRef identifies one invariant-I1 violation.
type DanglingRef struct {
	ReactionID string
	SpeciesID  string
}
