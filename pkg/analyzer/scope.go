package analyzer

import (
	"slices"

	"tyflow/analyzer-go/pkg/ty"
)

// ScopeKind classifies how a control-flow frame merges into its parent.
type ScopeKind int

const (
	// ScopeNormal runs exactly once; its writes propagate unchanged.
	ScopeNormal ScopeKind = iota
	// ScopeIndeterminate may run zero or one times.
	ScopeIndeterminate
	// ScopeLoop may run zero, one, or many times.
	ScopeLoop
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeNormal:
		return "normal"
	case ScopeIndeterminate:
		return "indeterminate"
	case ScopeLoop:
		return "loop"
	default:
		return "invalid"
	}
}

// scopeFrame records what ran inside one control construct: the bindings
// written while the frame was active and the bindings the frame declared.
type scopeFrame struct {
	kind     ScopeKind
	writes   map[string]ty.Ty
	declared map[string]struct{}
}

func newScopeFrame(kind ScopeKind) *scopeFrame {
	return &scopeFrame{
		kind:     kind,
		writes:   make(map[string]ty.Ty),
		declared: make(map[string]struct{}),
	}
}

func (a *Analyzer) PushNormalScope() { a.pushScope(ScopeNormal) }

func (a *Analyzer) PushIndeterminateScope() { a.pushScope(ScopeIndeterminate) }

func (a *Analyzer) PushLoopScope() { a.pushScope(ScopeLoop) }

func (a *Analyzer) pushScope(kind ScopeKind) {
	a.scopes = append(a.scopes, newScopeFrame(kind))
	a.logger.Debug("push scope", "kind", kind, "depth", len(a.scopes))
}

// PopScope removes the top frame and merges its surviving writes into the
// parent. Normal frames ran exactly once, so writes propagate as-is.
// Indeterminate and loop frames may not have run (and loops may have run
// many times), so each write merges as the union of the binding's previous
// visible state and the frame's final state. No fixed point: one merge
// per pop is the whole approximation. Bindings the frame declared die
// here. Popping the root frame is a caller defect.
func (a *Analyzer) PopScope() {
	if len(a.scopes) <= 1 {
		panic("analyzer: PopScope without a matching push")
	}
	frame := a.scopes[len(a.scopes)-1]
	a.scopes = a.scopes[:len(a.scopes)-1]
	parent := a.scopes[len(a.scopes)-1]

	names := make([]string, 0, len(frame.writes))
	for name := range frame.writes {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if _, ok := frame.declared[name]; ok {
			continue
		}
		next := frame.writes[name]
		switch frame.kind {
		case ScopeNormal:
			parent.writes[name] = next
		case ScopeIndeterminate, ScopeLoop:
			prev, ok := a.lookupBinding(name)
			if !ok {
				prev = ty.Undefined
			}
			merged := a.IntoUnion(prev, next)
			parent.writes[name] = merged
			a.logger.Debug("merge binding", "scope", frame.kind, "binding", name)
		}
	}
}

// withScope runs fn inside a fresh frame of the given kind, popping on
// every exit path.
func (a *Analyzer) withScope(kind ScopeKind, fn func()) {
	a.pushScope(kind)
	defer a.PopScope()
	fn()
}

// DeclareBinding introduces name in the current frame; the binding dies
// when the frame pops.
func (a *Analyzer) DeclareBinding(name string, t ty.Ty) {
	top := a.scopes[len(a.scopes)-1]
	top.declared[name] = struct{}{}
	top.writes[name] = t
}

// WriteBinding records an assignment, narrowing name within the current
// frame.
func (a *Analyzer) WriteBinding(name string, t ty.Ty) {
	top := a.scopes[len(a.scopes)-1]
	top.writes[name] = t
}

// ReadBinding resolves name against the innermost frame that wrote it,
// falling back to the ambient globals.
func (a *Analyzer) ReadBinding(name string) (ty.Ty, bool) {
	return a.lookupBinding(name)
}

func (a *Analyzer) lookupBinding(name string) (ty.Ty, bool) {
	for i := len(a.scopes) - 1; i >= 0; i-- {
		if t, ok := a.scopes[i].writes[name]; ok {
			return t, true
		}
	}
	if t, ok := a.globals[name]; ok {
		return t, true
	}
	return nil, false
}

// BindingTypes snapshots the root frame's binding states, the types a
// program's top-level bindings settle into once execution finishes.
func (a *Analyzer) BindingTypes() map[string]ty.Ty {
	root := a.scopes[0]
	out := make(map[string]ty.Ty, len(root.writes))
	for name, t := range root.writes {
		out[name] = t
	}
	return out
}
