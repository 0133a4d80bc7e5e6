package analyzer

import (
	"testing"

	"tyflow/analyzer-go/pkg/ast"
	"tyflow/analyzer-go/pkg/ty"
)

func newAnalyzer() *Analyzer {
	return New(ty.NewArena())
}

func analyze(t *testing.T, program *ast.Program) *Analyzer {
	t.Helper()
	a := newAnalyzer()
	a.ExecProgram(program)
	return a
}

func bindingType(t *testing.T, a *Analyzer, name string) ty.Ty {
	t.Helper()
	got, ok := a.ReadBinding(name)
	if !ok {
		t.Fatalf("missing binding %q", name)
	}
	return got
}

func unionParts(t *testing.T, tt ty.Ty) []ty.Ty {
	t.Helper()
	u, ok := tt.(ty.Union)
	if !ok {
		t.Fatalf("expected union, got %T", tt)
	}
	var members []ty.Ty
	u.Of.ForEach(func(m ty.Ty) {
		members = append(members, m)
	})
	return members
}

func rendered(a *Analyzer, tt ty.Ty) string {
	return ast.RenderType(a.PrintType(tt))
}

func TestIntoUnionEmptyYieldsUndefined(t *testing.T) {
	a := newAnalyzer()
	if got := a.IntoUnion(); got != ty.Undefined {
		t.Fatalf("expected undefined for empty member list, got %v", got)
	}
}

func TestIntoUnionSingleMemberIsIdentity(t *testing.T) {
	a := newAnalyzer()
	rec := a.Arena().NewObject(nil)
	if got := a.IntoUnion(rec); got != rec {
		t.Fatalf("expected the member back unchanged, got %v", got)
	}
	if got := a.IntoUnion(ty.Never); got != ty.Never {
		t.Fatalf("expected never to survive as a singleton, got %v", got)
	}
}

func TestIntoUnionBuildsCompound(t *testing.T) {
	a := newAnalyzer()
	got := a.IntoUnion(ty.NumberLiteral{Value: 1}, ty.StringLiteral{Value: "on"})
	members := unionParts(t, got)
	if len(members) != 2 {
		t.Fatalf("expected two members, got %v", members)
	}
	if members[0] != (ty.StringLiteral{Value: "on"}) {
		t.Fatalf("expected string literal first, got %v", members[0])
	}
	if members[1] != (ty.NumberLiteral{Value: 1}) {
		t.Fatalf("expected number literal second, got %v", members[1])
	}
}

func TestIntoUnionTopTypesDominate(t *testing.T) {
	a := newAnalyzer()
	if got := a.IntoUnion(ty.String, ty.Any, ty.Number); got != ty.Any {
		t.Fatalf("expected any to absorb the union, got %v", got)
	}
	if got := a.IntoUnion(ty.Unknown, ty.Any); got != ty.Unknown {
		t.Fatalf("expected the first top type to win, got %v", got)
	}
}

func TestGetOptionalType(t *testing.T) {
	a := newAnalyzer()
	if got := a.GetOptionalType(false, ty.Number); got != ty.Number {
		t.Fatalf("expected required type unchanged, got %v", got)
	}
	got := a.GetOptionalType(true, ty.Number)
	if r := rendered(a, got); r != "number | undefined" {
		t.Fatalf("expected optional widening, got %q", r)
	}
}

func TestGetUnionPropertyDistributes(t *testing.T) {
	a := newAnalyzer()
	arena := a.Arena()
	first := arena.NewObject([]ty.PropertyDef{{Key: ty.NameKey("kind"), Value: ty.StringLiteral{Value: "a"}}})
	second := arena.NewObject([]ty.PropertyDef{{Key: ty.NameKey("kind"), Value: ty.StringLiteral{Value: "b"}}})
	u, ok := a.IntoUnion(first, second).(ty.Union)
	if !ok {
		t.Fatalf("expected a compound union of records")
	}
	got := a.GetUnionProperty(u.Of, ty.NameKey("kind"))
	if r := rendered(a, got); r != `"a" | "b"` {
		t.Fatalf("expected per-member property union, got %q", r)
	}
}

func TestUnwrapInstance(t *testing.T) {
	a := newAnalyzer()
	arena := a.Arena()
	def := arena.NewGeneric("Box", []string{"T"})
	resolved := arena.NewInstance(def.Def, []ty.Ty{ty.String}, ty.String)
	if got := a.UnwrapInstance(resolved.Inst); got != ty.String {
		t.Fatalf("expected memoized resolution, got %v", got)
	}
	unresolved := arena.NewInstance(def.Def, []ty.Ty{ty.String}, nil)
	if got := a.UnwrapInstance(unresolved.Inst); got != ty.Error {
		t.Fatalf("expected error for an unresolved instance, got %v", got)
	}
}

func TestDefineGlobalSitsBelowRootFrame(t *testing.T) {
	a := newAnalyzer()
	a.DefineGlobal("console", ty.Object)
	if got := bindingType(t, a, "console"); got != ty.Object {
		t.Fatalf("expected global read, got %v", got)
	}
	a.WriteBinding("console", ty.Number)
	if got := bindingType(t, a, "console"); got != ty.Number {
		t.Fatalf("expected frame write to shadow the global, got %v", got)
	}
}
