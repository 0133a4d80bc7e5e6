package analyzer

import (
	"strings"
	"testing"

	"tyflow/analyzer-go/pkg/ast"
	"tyflow/analyzer-go/pkg/ty"
)

func TestExecLiteralBindings(t *testing.T) {
	a := analyze(t, ast.Prog(
		ast.Let("s", ast.Str("hi")),
		ast.Let("n", ast.Num(1)),
		ast.Let("g", ast.Big("10")),
		ast.Let("b", ast.Bool(true)),
		ast.Let("nothing", ast.Null()),
		ast.Let("missing", ast.Undef()),
		ast.Decl(ast.DeclLet, ast.D("bare", nil)),
	))

	if got := bindingType(t, a, "s"); got != (ty.StringLiteral{Value: "hi"}) {
		t.Fatalf("unexpected string binding %v", got)
	}
	if got := bindingType(t, a, "n"); got != (ty.NumberLiteral{Value: 1}) {
		t.Fatalf("unexpected number binding %v", got)
	}
	if got := bindingType(t, a, "g"); got != (ty.BigIntLiteral{Digits: "10"}) {
		t.Fatalf("unexpected bigint binding %v", got)
	}
	if got := bindingType(t, a, "b"); got != (ty.BooleanLiteral{Value: true}) {
		t.Fatalf("unexpected boolean binding %v", got)
	}
	if got := bindingType(t, a, "nothing"); got != ty.Null {
		t.Fatalf("unexpected null binding %v", got)
	}
	if got := bindingType(t, a, "missing"); got != ty.Undefined {
		t.Fatalf("unexpected undefined binding %v", got)
	}
	if got := bindingType(t, a, "bare"); got != ty.Undefined {
		t.Fatalf("expected initializer-free declaration to be undefined, got %v", got)
	}
}

func TestExecWhileMergesLoopWrites(t *testing.T) {
	a := analyze(t, ast.Prog(
		ast.Let("state", ast.Str("idle")),
		ast.While(ast.Bool(true),
			ast.ExprStmt(ast.Assign(ast.ID("state"), ast.Str("running")))),
	))

	if r := rendered(a, bindingType(t, a, "state")); r != `"idle" | "running"` {
		t.Fatalf("expected pre-loop and loop states, got %q", r)
	}
}

func TestExecWhileConditionDoesNotNarrowBody(t *testing.T) {
	a := newAnalyzer()
	a.DefineGlobal("c", ty.Boolean)
	a.ExecProgram(ast.Prog(
		ast.Let("x", ast.Cond(ast.ID("c"), ast.Null(), ast.Str("s"))),
		ast.Let("y", ast.Undef()),
		ast.While(ast.Bin("!==", ast.ID("x"), ast.Null()),
			ast.ExprStmt(ast.Assign(ast.ID("y"), ast.ID("x")))),
	))

	// The test proved x non-null, but the body still sees the full type.
	if r := rendered(a, bindingType(t, a, "y")); r != `"s" | null | undefined` {
		t.Fatalf("expected the unnarrowed type to flow into the body, got %q", r)
	}
}

func TestExecWhileBodySeesMergedTestWrites(t *testing.T) {
	a := analyze(t, ast.Prog(
		ast.Let("x", ast.Num(1)),
		ast.Let("y", ast.Undef()),
		ast.While(ast.Bin("&&", ast.Assign(ast.ID("x"), ast.Str("t")), ast.Bool(true)),
			ast.ExprStmt(ast.Assign(ast.ID("y"), ast.ID("x")))),
	))

	if r := rendered(a, bindingType(t, a, "x")); r != `"t" | 1` {
		t.Fatalf("expected the test write merged indeterminately, got %q", r)
	}
	if r := rendered(a, bindingType(t, a, "y")); r != `"t" | 1 | undefined` {
		t.Fatalf("expected the body to read the merged state, got %q", r)
	}
}

func TestExecDoWhile(t *testing.T) {
	a := analyze(t, ast.Prog(
		ast.Let("done", ast.Bool(false)),
		ast.DoWhile(ast.Un("!", ast.ID("done")),
			ast.ExprStmt(ast.Assign(ast.ID("done"), ast.Bool(true)))),
	))

	if r := rendered(a, bindingType(t, a, "done")); r != "boolean" {
		t.Fatalf("expected both literals to collapse to boolean, got %q", r)
	}
}

func TestExecForLoop(t *testing.T) {
	a := analyze(t, ast.Prog(
		ast.Let("touched", ast.Bool(false)),
		ast.For(ast.Let("i", ast.Num(0)), ast.Bin("<", ast.ID("i"), ast.Num(3)), ast.Inc(ast.ID("i")),
			ast.ExprStmt(ast.Assign(ast.ID("touched"), ast.Bool(true)))),
	))

	if r := rendered(a, bindingType(t, a, "touched")); r != "boolean" {
		t.Fatalf("expected loop write merged with the initial state, got %q", r)
	}
	if _, ok := a.ReadBinding("i"); ok {
		t.Fatalf("expected the loop variable to die with the statement")
	}
}

func TestExecIfElseMergesBranches(t *testing.T) {
	a := newAnalyzer()
	a.DefineGlobal("c", ty.Boolean)
	a.ExecProgram(ast.Prog(
		ast.Let("r", ast.Undef()),
		ast.IfElse(ast.ID("c"),
			ast.Block(ast.ExprStmt(ast.Assign(ast.ID("r"), ast.Str("yes")))),
			ast.Block(ast.ExprStmt(ast.Assign(ast.ID("r"), ast.Num(0))))),
	))

	if r := rendered(a, bindingType(t, a, "r")); r != `"yes" | 0 | undefined` {
		t.Fatalf("expected both branch states and the initial one, got %q", r)
	}
}

func TestExecIfWithoutElse(t *testing.T) {
	a := newAnalyzer()
	a.DefineGlobal("c", ty.Boolean)
	a.ExecProgram(ast.Prog(
		ast.Let("r", ast.Num(0)),
		ast.If(ast.ID("c"), ast.ExprStmt(ast.Assign(ast.ID("r"), ast.Str("set")))),
	))

	if r := rendered(a, bindingType(t, a, "r")); r != `"set" | 0` {
		t.Fatalf("expected the branch write merged with the previous state, got %q", r)
	}
}

func TestExecSwitchMergesCases(t *testing.T) {
	a := newAnalyzer()
	a.DefineGlobal("x", ty.Number)
	a.ExecProgram(ast.Prog(
		ast.Let("mode", ast.Str("none")),
		ast.Switch(ast.ID("x"),
			ast.Case(ast.Num(1), ast.ExprStmt(ast.Assign(ast.ID("mode"), ast.Str("a")))),
			ast.DefaultCase(ast.ExprStmt(ast.Assign(ast.ID("mode"), ast.Str("b"))))),
	))

	if r := rendered(a, bindingType(t, a, "mode")); r != `"a" | "b" | "none"` {
		t.Fatalf("expected every case state to survive, got %q", r)
	}
}

func TestExecBlockScoping(t *testing.T) {
	a := analyze(t, ast.Prog(
		ast.Let("x", ast.Num(1)),
		ast.Block(
			ast.Let("tmp", ast.Str("t")),
			ast.ExprStmt(ast.Assign(ast.ID("x"), ast.Str("a"))),
		),
	))

	// A block runs exactly once; its write replaces the old state.
	if got := bindingType(t, a, "x"); got != (ty.StringLiteral{Value: "a"}) {
		t.Fatalf("expected the block write to propagate unchanged, got %v", got)
	}
	if _, ok := a.ReadBinding("tmp"); ok {
		t.Fatalf("expected the block-scoped binding to die")
	}
}

func TestExecConditionalExpressionUnionsArms(t *testing.T) {
	a := newAnalyzer()
	a.DefineGlobal("c", ty.Boolean)
	a.ExecProgram(ast.Prog(
		ast.Let("v", ast.Cond(ast.ID("c"), ast.Str("s"), ast.Num(2))),
	))

	if r := rendered(a, bindingType(t, a, "v")); r != `"s" | 2` {
		t.Fatalf("expected both arms in the result, got %q", r)
	}
}

func TestExecLogicalOperatorsUnionBothSides(t *testing.T) {
	a := newAnalyzer()
	a.DefineGlobal("m", a.IntoUnion(ty.Null, ty.Number))
	a.ExecProgram(ast.Prog(
		ast.Let("v", ast.Bin("&&", ast.Bool(true), ast.Num(1))),
		ast.Let("w", ast.Bin("??", ast.ID("m"), ast.Str("d"))),
	))

	if r := rendered(a, bindingType(t, a, "v")); r != "1 | true" {
		t.Fatalf("expected both operands in the result, got %q", r)
	}
	// ?? does not strip null from its left side.
	if r := rendered(a, bindingType(t, a, "w")); r != `"d" | number | null` {
		t.Fatalf("expected the unnarrowed union, got %q", r)
	}
}

func TestExecAdditionTypes(t *testing.T) {
	a := newAnalyzer()
	a.DefineGlobal("u", ty.Unknown)
	a.ExecProgram(ast.Prog(
		ast.Let("s", ast.Bin("+", ast.Str("a"), ast.Num(1))),
		ast.Let("n", ast.Bin("+", ast.Num(1), ast.Bool(true))),
		ast.Let("g", ast.Bin("+", ast.Big("1"), ast.Big("2"))),
		ast.Let("m", ast.Bin("+", ast.ID("u"), ast.Num(1))),
	))

	if got := bindingType(t, a, "s"); got != ty.String {
		t.Fatalf("expected concatenation, got %v", got)
	}
	if got := bindingType(t, a, "n"); got != ty.Number {
		t.Fatalf("expected numeric addition, got %v", got)
	}
	if got := bindingType(t, a, "g"); got != ty.BigInt {
		t.Fatalf("expected bigint addition, got %v", got)
	}
	if r := rendered(a, bindingType(t, a, "m")); r != "string | number" {
		t.Fatalf("expected an undecided addition to keep both, got %q", r)
	}
}

func TestExecOperatorResults(t *testing.T) {
	a := analyze(t, ast.Prog(
		ast.Let("cmp", ast.Bin("<", ast.Num(1), ast.Num(2))),
		ast.Let("sub", ast.Bin("-", ast.Num(3), ast.Num(1))),
		ast.Let("neg", ast.Un("-", ast.Num(3))),
		ast.Let("not", ast.Un("!", ast.Str("x"))),
		ast.Let("gone", ast.Un("void", ast.Num(0))),
	))

	if got := bindingType(t, a, "cmp"); got != ty.Boolean {
		t.Fatalf("expected boolean comparison, got %v", got)
	}
	if got := bindingType(t, a, "sub"); got != ty.Number {
		t.Fatalf("expected numeric subtraction, got %v", got)
	}
	if got := bindingType(t, a, "neg"); got != ty.Number {
		t.Fatalf("expected numeric negation, got %v", got)
	}
	if got := bindingType(t, a, "not"); got != ty.Boolean {
		t.Fatalf("expected boolean negation, got %v", got)
	}
	if got := bindingType(t, a, "gone"); got != ty.Undefined {
		t.Fatalf("expected void to produce undefined, got %v", got)
	}
}

func TestExecTypeofOperator(t *testing.T) {
	a := newAnalyzer()
	a.DefineGlobal("f", a.Arena().NewFunction("f", nil, ty.Number))
	a.ExecProgram(ast.Prog(
		ast.Let("t1", ast.Un("typeof", ast.Str("x"))),
		ast.Let("t2", ast.Un("typeof", ast.ID("f"))),
	))

	if got := bindingType(t, a, "t1"); got != (ty.StringLiteral{Value: "string"}) {
		t.Fatalf("expected the string tag, got %v", got)
	}
	if got := bindingType(t, a, "t2"); got != (ty.StringLiteral{Value: "function"}) {
		t.Fatalf("expected the function tag, got %v", got)
	}
}

func TestExecObjectLiteralAndMemberAccess(t *testing.T) {
	a := analyze(t, ast.Prog(
		ast.Let("user", ast.Obj(
			ast.Prop("name", ast.Str("ada")),
			ast.NewObjectProperty(ast.Str("role"), ast.Str("admin"), false, false),
			ast.NewObjectProperty(ast.Num(0), ast.Bool(true), false, false),
		)),
		ast.Let("n", ast.Member(ast.ID("user"), "name")),
		ast.Let("none", ast.Member(ast.ID("user"), "missing")),
	))

	if r := rendered(a, bindingType(t, a, "user")); r != `{ name: "ada"; role: "admin"; 0: true }` {
		t.Fatalf("unexpected record type %q", r)
	}
	if got := bindingType(t, a, "n"); got != (ty.StringLiteral{Value: "ada"}) {
		t.Fatalf("expected the property's literal type, got %v", got)
	}
	if got := bindingType(t, a, "none"); got != ty.Undefined {
		t.Fatalf("expected undefined for a missing property, got %v", got)
	}
}

func TestExecOptionalChainingSkipsNullish(t *testing.T) {
	a := newAnalyzer()
	rec := a.Arena().NewObject([]ty.PropertyDef{{Key: ty.NameKey("x"), Value: ty.Number}})
	a.DefineGlobal("maybe", a.IntoUnion(ty.Null, rec))
	a.ExecProgram(ast.Prog(
		ast.Let("v", ast.OptMember(ast.ID("maybe"), "x")),
	))

	if r := rendered(a, bindingType(t, a, "v")); r != "number | undefined" {
		t.Fatalf("expected the peeled receiver plus undefined, got %q", r)
	}
	if diags := a.Diagnostics(); len(diags) != 0 {
		t.Fatalf("expected optional access to report nothing, got %v", diags)
	}
}

func TestExecMemberAccessOnNullWarns(t *testing.T) {
	a := newAnalyzer()
	a.DefineGlobal("n", ty.Null)
	a.ExecProgram(ast.Prog(
		ast.Let("v", ast.Member(ast.ID("n"), "x")),
	))

	if got := bindingType(t, a, "v"); got != ty.Undefined {
		t.Fatalf("expected undefined from a null receiver, got %v", got)
	}
	diags := a.Diagnostics()
	if len(diags) != 1 || !strings.Contains(diags[0].Message, "property access on null") {
		t.Fatalf("expected a nullish-access warning, got %v", diags)
	}
	if diags[0].Node == nil {
		t.Fatalf("expected the diagnostic to carry the access node")
	}
}

func TestExecUnresolvedIdentifierWarns(t *testing.T) {
	ghost := ast.ID("ghost")
	a := analyze(t, ast.Prog(ast.ExprStmt(ghost)))

	got, ok := a.Inferred().Get(ghost)
	if !ok {
		t.Fatalf("expected an inference entry for the identifier")
	}
	if got.Kind() != ty.KindUnresolved {
		t.Fatalf("expected an unresolved placeholder, got %v", got)
	}
	diags := a.Diagnostics()
	if len(diags) != 1 || !strings.Contains(diags[0].Message, `unresolved name "ghost"`) {
		t.Fatalf("expected an unresolved-name warning, got %v", diags)
	}
}

func TestExecCallExpression(t *testing.T) {
	a := newAnalyzer()
	a.DefineGlobal("f", a.Arena().NewFunction("f", []ty.Ty{ty.Unknown}, ty.Number))
	a.DefineGlobal("num", ty.Number)
	a.ExecProgram(ast.Prog(
		ast.Let("v", ast.Call(ast.ID("f"), ast.Str("arg"))),
		ast.Let("w", ast.Call(ast.ID("num"))),
	))

	if got := bindingType(t, a, "v"); got != ty.Number {
		t.Fatalf("expected the shape's return type, got %v", got)
	}
	if got := bindingType(t, a, "w"); got != ty.Unknown {
		t.Fatalf("expected unknown from a bad callee, got %v", got)
	}
	diags := a.Diagnostics()
	if len(diags) != 1 || !strings.Contains(diags[0].Message, "not a function") {
		t.Fatalf("expected a bad-callee warning, got %v", diags)
	}
}

func TestExecNewExpression(t *testing.T) {
	a := newAnalyzer()
	arena := a.Arena()
	iface := arena.NewInterface("User", nil)
	a.DefineGlobal("User", arena.NewConstructor("User", nil, iface))
	a.DefineGlobal("num", ty.Number)
	a.ExecProgram(ast.Prog(
		ast.Let("u", ast.Ctor(ast.ID("User"))),
		ast.Let("o", ast.Ctor(ast.ID("num"))),
	))

	if got := bindingType(t, a, "u"); got != iface {
		t.Fatalf("expected the constructor's instance type, got %v", got)
	}
	if got := bindingType(t, a, "o"); got != ty.Object {
		t.Fatalf("expected plain object from an unmodeled constructor, got %v", got)
	}
}

func TestExecFunctionDeclaration(t *testing.T) {
	a := analyze(t, ast.Prog(
		ast.FnDecl("greet", []string{"name"}),
		ast.Let("r", ast.Call(ast.ID("greet"), ast.Str("x"))),
	))

	if got := bindingType(t, a, "greet"); got.Kind() != ty.KindFunction {
		t.Fatalf("expected a function shape binding, got %v", got)
	}
	if got := bindingType(t, a, "r"); got != ty.Unknown {
		t.Fatalf("expected unknown from an uninferred body, got %v", got)
	}
}

func TestExecTemplateLiteral(t *testing.T) {
	a := analyze(t, ast.Prog(
		ast.Let("plain", ast.Tmpl([]string{"hi"})),
		ast.Let("mixed", ast.Tmpl([]string{"v=", ""}, ast.Num(1))),
	))

	if got := bindingType(t, a, "plain"); got != (ty.StringLiteral{Value: "hi"}) {
		t.Fatalf("expected a substitution-free literal, got %v", got)
	}
	if got := bindingType(t, a, "mixed"); got != ty.String {
		t.Fatalf("expected string once substituted, got %v", got)
	}
}

func TestExecSequenceAndUpdate(t *testing.T) {
	a := analyze(t, ast.Prog(
		ast.Let("last", ast.Seq(ast.Num(1), ast.Str("x"))),
		ast.Let("i", ast.Num(0)),
		ast.ExprStmt(ast.Inc(ast.ID("i"))),
	))

	if got := bindingType(t, a, "last"); got != (ty.StringLiteral{Value: "x"}) {
		t.Fatalf("expected the final operand's type, got %v", got)
	}
	if got := bindingType(t, a, "i"); got != ty.Number {
		t.Fatalf("expected the update to widen the binding, got %v", got)
	}
}

func TestExecCompoundAssignments(t *testing.T) {
	a := analyze(t, ast.Prog(
		ast.Let("s", ast.Str("a")),
		ast.ExprStmt(ast.AssignOp("+=", ast.ID("s"), ast.Str("b"))),
		ast.Let("k", ast.Num(10)),
		ast.ExprStmt(ast.AssignOp("-=", ast.ID("k"), ast.Num(1))),
		ast.Let("q", ast.Null()),
		ast.ExprStmt(ast.AssignOp("??=", ast.ID("q"), ast.Num(5))),
	))

	if got := bindingType(t, a, "s"); got != ty.String {
		t.Fatalf("expected concatenating assignment, got %v", got)
	}
	if got := bindingType(t, a, "k"); got != ty.Number {
		t.Fatalf("expected numeric compound assignment, got %v", got)
	}
	if r := rendered(a, bindingType(t, a, "q")); r != "5 | null" {
		t.Fatalf("expected the old and assigned states, got %q", r)
	}
}

func TestExecIndexExpression(t *testing.T) {
	a := newAnalyzer()
	arr := a.Arena().NewObject([]ty.PropertyDef{
		{Key: ty.IndexKey(0), Value: ty.String},
		{Key: ty.NameKey("len"), Value: ty.Number},
	})
	a.DefineGlobal("arr", arr)
	a.DefineGlobal("k", ty.Number)
	a.ExecProgram(ast.Prog(
		ast.Let("first", ast.Index(ast.ID("arr"), ast.Num(0))),
		ast.Let("named", ast.Index(ast.ID("arr"), ast.Str("len"))),
		ast.Let("dyn", ast.Index(ast.ID("arr"), ast.ID("k"))),
	))

	if got := bindingType(t, a, "first"); got != ty.String {
		t.Fatalf("expected the numeric index entry, got %v", got)
	}
	if got := bindingType(t, a, "named"); got != ty.Number {
		t.Fatalf("expected the string index entry, got %v", got)
	}
	if got := bindingType(t, a, "dyn"); got != ty.Unknown {
		t.Fatalf("expected unknown for a dynamic key, got %v", got)
	}
}

func TestExecArrayLiteral(t *testing.T) {
	a := analyze(t, ast.Prog(
		ast.Let("xs", ast.Arr(ast.Num(1), ast.Str("x"))),
	))
	if got := bindingType(t, a, "xs"); got != ty.Object {
		t.Fatalf("expected arrays to type as object, got %v", got)
	}
}

func TestExecRecordsInferenceForExpressions(t *testing.T) {
	sum := ast.Bin("+", ast.Num(1), ast.Num(2))
	a := analyze(t, ast.Prog(ast.ExprStmt(sum)))

	got, ok := a.Inferred().Get(sum)
	if !ok {
		t.Fatalf("expected an inference entry for the expression")
	}
	if got != ty.Number {
		t.Fatalf("expected number, got %v", got)
	}
	if _, ok := a.Inferred().Get(ast.Num(99)); ok {
		t.Fatalf("did not expect an entry for an unexecuted node")
	}
}
