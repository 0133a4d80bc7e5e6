package analyzer

import (
	"log/slog"

	"tyflow/analyzer-go/pkg/ast"
	"tyflow/analyzer-go/pkg/ty"
)

// Analyzer drives one flow-sensitive pass over one program. It owns the
// scope stack, records per-node types in its inference map, and implements
// ty.Host so the union algebra can allocate compounds and unwrap generic
// instances through it.
type Analyzer struct {
	arena   *ty.Arena
	logger  *slog.Logger
	scopes  []*scopeFrame
	globals map[string]ty.Ty
	infer   InferenceMap
	diags   []Diagnostic

	// site is the node currently being executed; diagnostics raised from
	// inside type operations attach to it.
	site ast.Node
}

// New constructs an analyzer sharing the given pass arena.
func New(arena *ty.Arena) *Analyzer {
	return &Analyzer{
		arena:   arena,
		logger:  slog.New(slog.DiscardHandler),
		scopes:  []*scopeFrame{newScopeFrame(ScopeNormal)},
		globals: make(map[string]ty.Ty),
		infer:   make(InferenceMap),
	}
}

// SetLogger routes debug traces to the given logger.
func (a *Analyzer) SetLogger(logger *slog.Logger) {
	if logger != nil {
		a.logger = logger
	}
}

// Arena exposes the pass arena so callers can seed shapes.
func (a *Analyzer) Arena() *ty.Arena { return a.arena }

// Inferred returns the per-node type map filled in by execution.
func (a *Analyzer) Inferred() InferenceMap { return a.infer }

// DefineGlobal seeds an ambient binding (host objects, test fixtures).
// Globals sit below the root frame: reads find them, writes shadow them.
func (a *Analyzer) DefineGlobal(name string, t ty.Ty) {
	a.globals[name] = t
}

// AllocUnion implements ty.Host.
func (a *Analyzer) AllocUnion(u *ty.UnionType) ty.Union {
	return a.arena.AllocUnion(u)
}

// UnwrapInstance implements ty.Host. Instances resolve to the concrete
// type memoized at construction; an instance nothing resolved degrades to
// Error so the surrounding union stays honest.
func (a *Analyzer) UnwrapInstance(inst *ty.GenericInstance) ty.Ty {
	if inst == nil || inst.Resolved == nil {
		return ty.Error
	}
	return inst.Resolved
}

// IntoUnion folds members into a single type: none, one, or a full
// builder run.
func (a *Analyzer) IntoUnion(members ...ty.Ty) ty.Ty {
	switch len(members) {
	case 0:
		// FIXME: should be Never; callers currently rely on undefined.
		return ty.Undefined
	case 1:
		return members[0]
	default:
		var b ty.UnionBuilder
		for _, m := range members {
			b.Add(a, m)
		}
		return b.Build(a)
	}
}

// GetOptionalType widens t with undefined when optional.
func (a *Analyzer) GetOptionalType(optional bool, t ty.Ty) ty.Ty {
	if optional {
		return a.IntoUnion(ty.Undefined, t)
	}
	return t
}

// GetUnionProperty distributes property resolution over every member:
// lookup on A | B yields (A.key) | (B.key).
func (a *Analyzer) GetUnionProperty(u *ty.UnionType, key ty.PropertyKey) ty.Ty {
	var b ty.UnionBuilder
	u.ForEach(func(member ty.Ty) {
		b.Add(a, a.GetProperty(member, key))
	})
	return b.Build(a)
}
