// Package simplify applies the standard Boolean identities to an Expr
// tree until fixpoint (component H, SPEC_FULL.md §4.H): x AND TRUE → x,
// x AND FALSE → FALSE, x OR TRUE → TRUE, x OR FALSE → x, NOT TRUE →
// FALSE, NOT FALSE → TRUE, NOT NOT x → x, flattening of nested same-
// operator AND/OR, deduplication of structurally equal operands, and the
// empty-AND/OR identities (TRUE, FALSE respectively).
package simplify

import "github.com/turtacn/sbgnqual/internal/domain/expr"

// Simplify rewrites e to fixpoint and returns the result. e itself is
// never mutated; a (possibly identical-looking) new tree is returned.
func Simplify(e *expr.Expr) *expr.Expr {
	for {
		next := simplifyOnce(e)
		if expr.Equal(next, e) {
			return next
		}
		e = next
	}
}

func simplifyOnce(e *expr.Expr) *expr.Expr {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case expr.KindConst, expr.KindVar:
		return e
	case expr.KindNot:
		o := simplifyOnce(e.Operand)
		if v, ok := o.IsConst(); ok {
			return expr.Const(!v)
		}
		if o.Kind == expr.KindNot {
			return o.Operand
		}
		return expr.Not(o)
	case expr.KindAnd:
		return simplifyAssoc(e, expr.KindAnd)
	case expr.KindOr:
		return simplifyAssoc(e, expr.KindOr)
	}
	return e
}

// simplifyAssoc simplifies an AND or OR node: operands are first
// simplified and flattened (nested nodes of the same kind are merged
// into the parent), constants are folded (dropping the kind's identity
// value, short-circuiting on the kind's absorbing value), and the
// remaining operands are deduplicated by structural equality, preserving
// first-occurrence order for determinism.
func simplifyAssoc(e *expr.Expr, kind expr.Kind) *expr.Expr {
	var flat []*expr.Expr
	var flatten func(x *expr.Expr)
	flatten = func(x *expr.Expr) {
		sx := simplifyOnce(x)
		if sx.Kind == kind {
			for _, o := range sx.Operands {
				flatten(o)
			}
			return
		}
		flat = append(flat, sx)
	}
	for _, o := range e.Operands {
		flatten(o)
	}

	var folded []*expr.Expr
	for _, x := range flat {
		v, isConst := x.IsConst()
		if !isConst {
			folded = append(folded, x)
			continue
		}
		if kind == expr.KindAnd {
			if !v {
				return expr.False()
			}
			continue // drop TRUE from AND
		}
		if v {
			return expr.True()
		}
		continue // drop FALSE from OR
	}

	var deduped []*expr.Expr
	for _, x := range folded {
		dup := false
		for _, y := range deduped {
			if expr.Equal(x, y) {
				dup = true
				break
			}
		}
		if !dup {
			deduped = append(deduped, x)
		}
	}

	if kind == expr.KindAnd {
		return expr.And(deduped...)
	}
	return expr.Or(deduped...)
}
