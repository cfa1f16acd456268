package model

import "github.com/turtacn/sbgnqual/internal/domain/expr"

// Layout carries the subset of GUI layout CellDesigner provides that
// this compiler preserves verbatim (SPEC_FULL.md: Non-goals exclude any
// further layout computation).
type Layout struct {
	X, Y, W, H float64
	Color      string // optional, "" if absent in the source
}

// Handle is a small-integer reference to a Species, stable for the
// lifetime of a Model (SPEC_FULL.md §9 "Graph representation"). It is
// never reused after a species is deleted.
type Handle int

// Species is a biochemical entity in the map (spec.md §3).
type Species struct {
	ID            string
	Name          string
	Compartment   string
	Type          SpeciesType
	Modifications []Modification
	Layout        Layout
	Function      *expr.Expr // nil until the Rule Builder runs; nil thereafter means "free input"
	Annotations   *AnnotationBag
	FixedValue    *int // nil, or points to 0/1 once overrides applied

	// PublicName and ExportID are populated by the Namer (component F);
	// both are empty until then.
	PublicName string
	ExportID   string

	deleted bool
}

// HasModification reports whether m is among this species' modifications.
func (s *Species) HasModification(m Modification) bool {
	for _, x := range s.Modifications {
		if x == m {
			return true
		}
	}
	return false
}
