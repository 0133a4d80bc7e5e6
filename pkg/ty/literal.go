package ty

import (
	"cmp"
	"slices"

	"github.com/hashicorp/go-set/v3"
)

type literalState int

const (
	literalVacant literalState = iota
	literalSome
	literalAny
)

// LiteralAble tracks the literals of one primitive kind inside a union.
// The zero value is Vacant (kind absent); Add moves it to a finite literal
// set; Widen collapses it to the whole kind. Widening is absorbing: once
// Any, literal adds are no-ops and the set never comes back.
type LiteralAble[L cmp.Ordered] struct {
	state    literalState
	literals *set.Set[L]
}

// Add records one literal. Duplicate values collapse via set semantics.
func (l *LiteralAble[L]) Add(literal L) {
	switch l.state {
	case literalVacant:
		l.literals = set.New[L](1)
		l.literals.Insert(literal)
		l.state = literalSome
	case literalSome:
		l.literals.Insert(literal)
	case literalAny:
	}
}

// Widen collapses the container to the whole primitive kind.
func (l *LiteralAble[L]) Widen() {
	l.state = literalAny
	l.literals = nil
}

// ForEach visits the concrete types this container currently represents:
// nothing when Vacant, the widened kind once when Any, one constructed
// literal type per distinct value (ascending order) otherwise.
func (l *LiteralAble[L]) ForEach(widened Ty, ctor func(L) Ty, visit func(Ty)) {
	switch l.state {
	case literalVacant:
	case literalSome:
		values := l.literals.Slice()
		slices.Sort(values)
		for _, v := range values {
			visit(ctor(v))
		}
	case literalAny:
		visit(widened)
	}
}
