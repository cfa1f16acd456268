// Package expr implements the tagged-variant Boolean formula tree used
// for every species' synthesized logical rule (SPEC_FULL.md §4.D, §9
// "Tagged variants for formulae"). Expressions are immutable trees with
// owned children; no cycles are possible so plain value ownership
// suffices (no arena, no interning).
package expr

import (
	"fmt"
	"sort"
	"strings"
)

// Kind discriminates the Expr variant.
type Kind int

const (
	KindConst Kind = iota
	KindVar
	KindNot
	KindAnd
	KindOr
)

// Expr is a Boolean formula: Const(bool) | Var(id) | Not(Expr) |
// And([Expr]) | Or([Expr]).
type Expr struct {
	Kind     Kind
	BoolVal  bool     // valid when Kind == KindConst
	VarID    string   // valid when Kind == KindVar (a species id)
	Operand  *Expr    // valid when Kind == KindNot
	Operands []*Expr  // valid when Kind == KindAnd or KindOr
}

// Const constructs a Boolean constant leaf.
func Const(b bool) *Expr { return &Expr{Kind: KindConst, BoolVal: b} }

// True is the constant TRUE.
func True() *Expr { return Const(true) }

// False is the constant FALSE.
func False() *Expr { return Const(false) }

// Var constructs a reference to the species identified by id.
func Var(id string) *Expr { return &Expr{Kind: KindVar, VarID: id} }

// Not constructs the negation of e.
func Not(e *Expr) *Expr { return &Expr{Kind: KindNot, Operand: e} }

// And constructs a conjunction of operands. An empty slice is the
// identity for AND, i.e. TRUE (SPEC_FULL.md §4.H).
func And(operands ...*Expr) *Expr {
	if len(operands) == 0 {
		return True()
	}
	if len(operands) == 1 {
		return operands[0]
	}
	return &Expr{Kind: KindAnd, Operands: operands}
}

// Or constructs a disjunction of operands. An empty slice is the
// identity for OR, i.e. FALSE.
func Or(operands ...*Expr) *Expr {
	if len(operands) == 0 {
		return False()
	}
	if len(operands) == 1 {
		return operands[0]
	}
	return &Expr{Kind: KindOr, Operands: operands}
}

// IsConst reports whether e is a Const and, if so, its value.
func (e *Expr) IsConst() (bool, bool) {
	if e == nil || e.Kind != KindConst {
		return false, false
	}
	return e.BoolVal, true
}

// Eval evaluates e under the given variable assignment. Variables absent
// from assignment default to false.
func (e *Expr) Eval(assignment map[string]bool) bool {
	if e == nil {
		return false
	}
	switch e.Kind {
	case KindConst:
		return e.BoolVal
	case KindVar:
		return assignment[e.VarID]
	case KindNot:
		return !e.Operand.Eval(assignment)
	case KindAnd:
		for _, o := range e.Operands {
			if !o.Eval(assignment) {
				return false
			}
		}
		return true
	case KindOr:
		for _, o := range e.Operands {
			if o.Eval(assignment) {
				return true
			}
		}
		return false
	}
	return false
}

// Vars returns the set of distinct variable ids referenced by e, sorted
// ascending for determinism.
func (e *Expr) Vars() []string {
	seen := map[string]bool{}
	var walk func(*Expr)
	walk = func(n *Expr) {
		if n == nil {
			return
		}
		switch n.Kind {
		case KindVar:
			seen[n.VarID] = true
		case KindNot:
			walk(n.Operand)
		case KindAnd, KindOr:
			for _, o := range n.Operands {
				walk(o)
			}
		}
	}
	walk(e)
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Substitute returns a copy of e with every Var(id) for which replace
// returns (value, true) replaced by Const(value). Variables for which
// replace returns false are left untouched.
func Substitute(e *Expr, replace func(id string) (bool, bool)) *Expr {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case KindConst:
		return Const(e.BoolVal)
	case KindVar:
		if v, ok := replace(e.VarID); ok {
			return Const(v)
		}
		return Var(e.VarID)
	case KindNot:
		return Not(Substitute(e.Operand, replace))
	case KindAnd:
		ops := make([]*Expr, len(e.Operands))
		for i, o := range e.Operands {
			ops[i] = Substitute(o, replace)
		}
		return &Expr{Kind: KindAnd, Operands: ops}
	case KindOr:
		ops := make([]*Expr, len(e.Operands))
		for i, o := range e.Operands {
			ops[i] = Substitute(o, replace)
		}
		return &Expr{Kind: KindOr, Operands: ops}
	}
	return e
}

// String renders e in conventional infix Boolean notation (e.g. used by
// BNet export): "A AND B", "A AND NOT B", "(A AND B) OR C".
func (e *Expr) String() string {
	if e == nil {
		return "FALSE"
	}
	switch e.Kind {
	case KindConst:
		if e.BoolVal {
			return "TRUE"
		}
		return "FALSE"
	case KindVar:
		return e.VarID
	case KindNot:
		return "NOT " + parenthesize(e.Operand, e)
	case KindAnd:
		parts := make([]string, len(e.Operands))
		for i, o := range e.Operands {
			parts[i] = parenthesize(o, e)
		}
		return strings.Join(parts, " AND ")
	case KindOr:
		parts := make([]string, len(e.Operands))
		for i, o := range e.Operands {
			parts[i] = parenthesize(o, e)
		}
		return strings.Join(parts, " OR ")
	}
	return fmt.Sprintf("<invalid Expr kind %d>", e.Kind)
}

// parenthesize wraps child's rendering in parentheses whenever child is a
// compound (AND/OR) expression nested under a differently-kinded compound
// parent, so mixed AND/OR/NOT trees never rely on operator precedence to
// read back unambiguously.
func parenthesize(child, parent *Expr) string {
	if child == nil {
		return "FALSE"
	}
	needsParens := false
	switch parent.Kind {
	case KindAnd:
		needsParens = child.Kind == KindOr
	case KindOr:
		needsParens = child.Kind == KindAnd
	case KindNot:
		needsParens = child.Kind == KindOr || child.Kind == KindAnd
	}
	s := child.String()
	if needsParens {
		return "(" + s + ")"
	}
	return s
}

// Equal reports structural equality between a and b (not logical
// equivalence — used by the simplifier's deduplication step).
func Equal(a, b *Expr) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindConst:
		return a.BoolVal == b.BoolVal
	case KindVar:
		return a.VarID == b.VarID
	case KindNot:
		return Equal(a.Operand, b.Operand)
	case KindAnd, KindOr:
		if len(a.Operands) != len(b.Operands) {
			return false
		}
		for i := range a.Operands {
			if !Equal(a.Operands[i], b.Operands[i]) {
				return false
			}
		}
		return true
	}
	return false
}
