// Package overrides applies user-supplied fixed-value rows (knock-outs,
// knock-ins, fixed inputs) onto a model's species formulae (component G,
// SPEC_FULL.md §4.G).
package overrides

import (
	"github.com/turtacn/sbgnqual/internal/domain/expr"
	"github.com/turtacn/sbgnqual/internal/domain/model"
	cerrors "github.com/turtacn/sbgnqual/pkg/errors"
)

// Override is one row of the two-column fixed-values table: a species
// name and a constant value in {0, 1}.
type Override struct {
	Name  string
	Value int
}

// Apply replaces the formula of every species matched by an Override
// row with the corresponding Boolean constant and records its
// FixedValue. Matching is against PublicName: whether to match pre- or
// post-Namer names is an open question (decision recorded in DESIGN.md
// under Open Questions); this pipeline always runs the
// Namer before Overrides (SPEC_FULL.md §2 data flow), so the
// post-naming public name is the one a user running the tool
// end-to-end would actually see and reference.
//
// Rows that match no species are returned as unresolved, coded
// CodeOverrideUnresolved; the caller decides whether to treat them as
// fatal or as warnings (SPEC_FULL.md §7 "Error Handling Design").
func Apply(m *model.Model, table []Override) []error {
	byPublicName := make(map[string][]*model.Species)
	for _, s := range m.AllSpecies() {
		byPublicName[s.PublicName] = append(byPublicName[s.PublicName], s)
	}

	var unresolved []error
	for _, row := range table {
		targets, ok := byPublicName[row.Name]
		if !ok || len(targets) == 0 {
			unresolved = append(unresolved, cerrors.New(cerrors.CodeOverrideUnresolved,
				"fixed-value override names unknown species \""+row.Name+"\""))
			continue
		}
		value := row.Value != 0
		for _, s := range targets {
			v := 0
			if value {
				v = 1
			}
			s.FixedValue = &v
			s.Function = expr.Const(value)
		}
	}
	return unresolved
}
